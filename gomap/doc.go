// Package gomap converts between Go values and YAML by reflection.
//
// Go values are written through an [encode.Encoder] and read through a
// [decode.Deserializer], so they get the same typing, enum and error
// rules as [ir.Value] trees.
//
// Struct fields are named by their `yaml` tag, in the form
// `yaml:"name,omitempty,inline"`, or by the field name.  A tag of "-"
// skips the field.  Only exported fields are processed and names match
// case-sensitively.  Embedded structs without a tag are inlined.
//
// Enums are Go interface types whose implementations are the variants.
// They are registered with [WithEnums]:
//
//	type Motion interface{ isMotion() }
//	type Stopped struct{}
//	type Moved struct{ X, Y int }
//
//	var motion = gomap.NewEnum[Motion](Stopped{}, Moved{})
//
//	err := gomap.FromValue(v, &m, gomap.WithEnums(motion))
package gomap
