package variant

import "github.com/signadot/go-yml/ir"

// ToSingletonMap rewrites every non core tagged value in v to the
// singleton map form.  A tagged null becomes the bare name.
func ToSingletonMap(v *ir.Value) *ir.Value {
	if v == nil {
		return nil
	}
	switch v.Type {
	case ir.TaggedType:
		inner := ToSingletonMap(v.Tagged.Value)
		if v.Tagged.Tag.IsCore() {
			return ir.FromTagged(v.Tagged.Tag, inner)
		}
		name := v.Tagged.Tag.Nobang()
		if inner == nil || inner.IsNull() {
			return ir.FromString(name)
		}
		m := ir.NewMapping()
		m.Set(ir.FromString(name), inner)
		return ir.FromMapping(m)
	case ir.SequenceType:
		vs := make([]*ir.Value, len(v.Values))
		for i, e := range v.Values {
			vs[i] = ToSingletonMap(e)
		}
		return ir.FromSlice(vs)
	case ir.MappingType:
		m := ir.NewMapping()
		for k, e := range v.Mapping.All() {
			m.Set(ToSingletonMap(k), ToSingletonMap(e))
		}
		return ir.FromMapping(m)
	default:
		return v.Clone()
	}
}

// ToTagged rewrites single entry mappings with a string key in v to the
// tagged form.  When tables are given, only keys naming a variant of
// one of them are rewritten.
func ToTagged(v *ir.Value, tables ...*Table) *ir.Value {
	if v == nil {
		return nil
	}
	switch v.Type {
	case ir.TaggedType:
		return ir.FromTagged(v.Tagged.Tag, ToTagged(v.Tagged.Value, tables...))
	case ir.SequenceType:
		vs := make([]*ir.Value, len(v.Values))
		for i, e := range v.Values {
			vs[i] = ToTagged(e, tables...)
		}
		return ir.FromSlice(vs)
	case ir.MappingType:
		if v.Mapping.Len() == 1 {
			k, e := v.Mapping.At(0)
			if name, ok := k.AsString(); ok && known(name, tables) {
				return ir.FromTagged(Tag(name), ToTagged(e, tables...))
			}
		}
		m := ir.NewMapping()
		for k, e := range v.Mapping.All() {
			m.Set(ToTagged(k, tables...), ToTagged(e, tables...))
		}
		return ir.FromMapping(m)
	default:
		return v.Clone()
	}
}

func known(name string, tables []*Table) bool {
	if len(tables) == 0 {
		return true
	}
	for _, t := range tables {
		if _, ok := t.Lookup(name); ok {
			return true
		}
	}
	return false
}
