package ir

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// ToAny converts v to plain Go values: nil, bool, int64, uint64,
// float64, string, []any and map[string]any.  Mapping keys that are not
// strings are rendered with their scalar text.  Tags are dropped.
func (v *Value) ToAny() any {
	v = orNull(v.Untag())
	switch v.Type {
	case BoolType:
		return v.Bool
	case NumberType:
		if i, ok := v.Number.AsInt64(); ok {
			return i
		}
		if u, ok := v.Number.AsUint64(); ok {
			return u
		}
		f, _ := v.Number.AsFloat64()
		return f
	case StringType:
		return v.String
	case SequenceType:
		res := make([]any, len(v.Values))
		for i, e := range v.Values {
			res[i] = e.ToAny()
		}
		return res
	case MappingType:
		res := make(map[string]any, v.Mapping.Len())
		for k, e := range v.Mapping.All() {
			res[keyText(k)] = e.ToAny()
		}
		return res
	}
	return nil
}

func keyText(k *Value) string {
	k = orNull(k.Untag())
	switch k.Type {
	case StringType:
		return k.String
	case NumberType:
		return k.Number.String()
	case BoolType:
		if k.Bool {
			return "true"
		}
		return "false"
	case NullType:
		return "null"
	}
	return fmt.Sprint(k.ToAny())
}

// FromAny converts plain Go values, as produced by ToAny or by JSON
// decoding, to a Value.  Map keys are sorted.
func FromAny(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return t, nil
	case bool:
		return FromBool(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case int32:
		return FromInt(int64(t)), nil
	case uint:
		return FromUint(uint64(t)), nil
	case uint64:
		return FromUint(t), nil
	case uint32:
		return FromUint(uint64(t)), nil
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		// JSON numbers arrive as float64
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 && !math.Signbit(t) {
			return FromUint(uint64(t)), nil
		}
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return FromInt(int64(t)), nil
		}
		return FromFloat(t), nil
	case string:
		return FromString(t), nil
	case []any:
		vs := make([]*Value, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vs[i] = ev
		}
		return FromSlice(vs), nil
	case map[string]any:
		m := NewMapping()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			ev, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			m.Set(FromString(k), ev)
		}
		return FromMapping(m), nil
	}
	return nil, fmt.Errorf("cannot convert %T to a value", x)
}
