package ir

import (
	"cmp"
	"strings"
)

var null = &Value{Type: NullType}

func orNull(v *Value) *Value {
	if v == nil {
		return null
	}
	return v
}

// Equal reports whether a and b are structurally equal.  Mapping
// equality depends on entry order, tags are compared without their
// leading '!', and a nil Value is Null.
func Equal(a, b *Value) bool {
	a, b = orNull(a), orNull(b)
	if a == b {
		return true
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return a.Number.Equal(b.Number)
	case StringType:
		return a.String == b.String
	case SequenceType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case MappingType:
		if a.Mapping.Len() != b.Mapping.Len() {
			return false
		}
		for i := range a.Mapping.Len() {
			ak, av := a.Mapping.At(i)
			bk, bv := b.Mapping.At(i)
			if !Equal(ak, bk) || !Equal(av, bv) {
				return false
			}
		}
		return true
	case TaggedType:
		return a.Tagged.Equal(b.Tagged)
	}
	return false
}

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Value) int {
	a, b = orNull(a), orNull(b)
	if a == b {
		return 0
	}
	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return a.Number.Compare(b.Number)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case SequenceType:
		return compareSequences(a, b)
	case MappingType:
		return compareMappings(a.Mapping, b.Mapping)
	case TaggedType:
		if c := strings.Compare(a.Tagged.Tag.Nobang(), b.Tagged.Tag.Nobang()); c != 0 {
			return c
		}
		return Compare(a.Tagged.Value, b.Tagged.Value)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Sequence < Mapping < Tagged
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case SequenceType:
		return 4
	case MappingType:
		return 5
	case TaggedType:
		return 6
	}
	return 100
}

func compareSequences(a, b *Value) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	for i := range min(lenA, lenB) {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareMappings compares entry by entry in order, keys before values,
// and then by length.
func compareMappings(a, b *Mapping) int {
	lenA := a.Len()
	lenB := b.Len()
	for i := range min(lenA, lenB) {
		ak, av := a.At(i)
		bk, bv := b.At(i)
		if c := Compare(ak, bk); c != 0 {
			return c
		}
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
