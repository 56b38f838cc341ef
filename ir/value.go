package ir

import (
	"maps"
	"slices"
)

// Value is a YAML value.  Exactly one payload field is meaningful, as
// selected by Type.
type Value struct {
	Type    Type
	Bool    bool
	Number  Number
	String  string
	Values  []*Value
	Mapping *Mapping
	Tagged  *TaggedValue
}

type KeyVal struct {
	Key *Value
	Val *Value
}

func Null() *Value {
	return &Value{Type: NullType}
}

func FromBool(b bool) *Value {
	return &Value{Type: BoolType, Bool: b}
}

func FromInt(i int64) *Value {
	return FromNumber(Int(i))
}

func FromUint(u uint64) *Value {
	return FromNumber(Uint(u))
}

func FromFloat(f float64) *Value {
	return FromNumber(Float(f))
}

func FromNumber(n Number) *Value {
	return &Value{Type: NumberType, Number: n}
}

func FromString(s string) *Value {
	return &Value{Type: StringType, String: s}
}

func FromSlice(vs []*Value) *Value {
	if vs == nil {
		vs = []*Value{}
	}
	return &Value{Type: SequenceType, Values: vs}
}

func FromMapping(m *Mapping) *Value {
	if m == nil {
		m = NewMapping()
	}
	return &Value{Type: MappingType, Mapping: m}
}

// FromKeyVals builds a mapping from kvs in order.  A repeated key
// replaces the earlier value in place.
func FromKeyVals(kvs []KeyVal) *Value {
	m := NewMapping()
	for _, kv := range kvs {
		m.Set(kv.Key, kv.Val)
	}
	return FromMapping(m)
}

// FromMap builds a mapping with string keys in sorted order.
func FromMap(m map[string]*Value) *Value {
	res := NewMapping()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.Set(FromString(k), m[k])
	}
	return FromMapping(res)
}

func FromTagged(tag Tag, v *Value) *Value {
	if v == nil {
		v = Null()
	}
	return &Value{Type: TaggedType, Tagged: &TaggedValue{Tag: tag, Value: v}}
}

// WithTag wraps v in tag.
func (v *Value) WithTag(tag Tag) *Value {
	return FromTagged(tag, v)
}

// Untag returns the innermost untagged value under v.
func (v *Value) Untag() *Value {
	for v != nil && v.Type == TaggedType {
		v = v.Tagged.Value
	}
	return v
}

func (v *Value) IsNull() bool {
	return v == nil || v.Type == NullType
}

func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.Type != BoolType {
		return false, false
	}
	return v.Bool, true
}

func (v *Value) AsString() (string, bool) {
	if v == nil || v.Type != StringType {
		return "", false
	}
	return v.String, true
}

func (v *Value) AsInt64() (int64, bool) {
	if v == nil || v.Type != NumberType {
		return 0, false
	}
	return v.Number.AsInt64()
}

func (v *Value) AsUint64() (uint64, bool) {
	if v == nil || v.Type != NumberType {
		return 0, false
	}
	return v.Number.AsUint64()
}

func (v *Value) AsFloat64() (float64, bool) {
	if v == nil || v.Type != NumberType {
		return 0, false
	}
	return v.Number.AsFloat64()
}

// Len returns the number of elements of a sequence or entries of a
// mapping, and 0 otherwise.
func (v *Value) Len() int {
	switch {
	case v == nil:
		return 0
	case v.Type == SequenceType:
		return len(v.Values)
	case v.Type == MappingType:
		return v.Mapping.Len()
	}
	return 0
}

func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := &Value{
		Type:   v.Type,
		Bool:   v.Bool,
		Number: v.Number,
		String: v.String,
	}
	switch v.Type {
	case SequenceType:
		res.Values = make([]*Value, len(v.Values))
		for i, e := range v.Values {
			res.Values[i] = e.Clone()
		}
	case MappingType:
		res.Mapping = v.Mapping.Clone()
	case TaggedType:
		res.Tagged = &TaggedValue{Tag: v.Tagged.Tag, Value: v.Tagged.Value.Clone()}
	}
	return res
}
