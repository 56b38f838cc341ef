package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	SequenceType
	MappingType
	TaggedType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:     "Null",
		BoolType:     "Bool",
		NumberType:   "Number",
		StringType:   "String",
		SequenceType: "Sequence",
		MappingType:  "Mapping",
		TaggedType:   "Tagged",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":     NullType,
		"Bool":     BoolType,
		"Number":   NumberType,
		"String":   StringType,
		"Sequence": SequenceType,
		"Mapping":  MappingType,
		"Tagged":   TaggedType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		SequenceType,
		MappingType,
		TaggedType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case SequenceType, MappingType, TaggedType:
		return false
	default:
		return true
	}
}
