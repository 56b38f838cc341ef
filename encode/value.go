package encode

import (
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/stream"
)

// Value writes v.  Tags are written as they are, so a Value read from
// YAML writes back with the same tags.
func (e *Encoder) Value(v *ir.Value) error {
	if v == nil {
		return e.Null()
	}
	switch v.Type {
	case ir.NullType:
		return e.Null()
	case ir.BoolType:
		return e.Bool(v.Bool)
	case ir.NumberType:
		return e.Number(v.Number)
	case ir.StringType:
		return e.String(v.String)
	case ir.SequenceType:
		if err := e.BeginSeq(len(v.Values)); err != nil {
			return err
		}
		for _, x := range v.Values {
			if err := e.Value(x); err != nil {
				return err
			}
		}
		return e.EndSeq()
	case ir.MappingType:
		if err := e.BeginMap(v.Mapping.Len()); err != nil {
			return err
		}
		for k, x := range v.Mapping.All() {
			if err := e.Value(k); err != nil {
				return err
			}
			if err := e.Value(x); err != nil {
				return err
			}
		}
		return e.EndMap()
	default:
		if err := e.Tag(v.Tagged.Tag); err != nil {
			return err
		}
		if v.Tagged.Value.IsNull() && !v.Tagged.Tag.IsCore() {
			return e.scalar("", stream.Plain)
		}
		return e.Value(v.Tagged.Value)
	}
}
