package variant

import (
	"fmt"

	"github.com/signadot/go-yml/ir"
)

// Table is the variant table of one enum type.
type Table struct {
	Name     string
	Variants []Variant
}

func NewTable(name string, vs ...Variant) *Table {
	return &Table{Name: name, Variants: vs}
}

func (t *Table) Lookup(name string) (Variant, bool) {
	for _, v := range t.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

func (t *Table) Names() []string {
	res := make([]string, len(t.Variants))
	for i := range t.Variants {
		res[i] = t.Variants[i].Name
	}
	return res
}

// ResolveShape finds the variant called name and checks that a payload
// of type shape fits it.  A unit variant takes no payload, which is
// given as NullType.
func (t *Table) ResolveShape(name string, shape ir.Type) (Variant, error) {
	v, ok := t.Lookup(name)
	if !ok {
		return Variant{}, &UnknownVariantError{Enum: t.Name, Name: name, Expected: t.Names()}
	}
	var fits bool
	switch v.Kind {
	case Unit:
		fits = shape == ir.NullType
	case Newtype:
		fits = true
	case Tuple:
		fits = shape == ir.SequenceType
	case Struct:
		fits = shape == ir.MappingType
	}
	if !fits {
		return Variant{}, &ShapeError{Variant: v, Got: shape}
	}
	return v, nil
}

// ResolveBare finds the variant named by a bare scalar, which must be a
// unit variant.
func (t *Table) ResolveBare(name string) (Variant, error) {
	v, err := t.ResolveShape(name, ir.NullType)
	if err != nil {
		return Variant{}, err
	}
	if v.Kind != Unit {
		return Variant{}, &ShapeError{Variant: v, Got: ir.NullType}
	}
	return v, nil
}

// Resolve is ResolveShape on a payload value, which is nil for a bare
// scalar.  The payload is returned with nil replaced by null.
func (t *Table) Resolve(name string, payload *ir.Value) (Variant, *ir.Value, error) {
	if payload == nil {
		v, err := t.ResolveBare(name)
		if err != nil {
			return Variant{}, nil, err
		}
		return v, ir.Null(), nil
	}
	v, err := t.ResolveShape(name, payload.Type)
	if err != nil {
		return Variant{}, nil, err
	}
	return v, payload, nil
}

// Classify splits an enum representation into a variant name and
// payload.  The payload is nil for a bare scalar.
func Classify(v *ir.Value) (string, *ir.Value, error) {
	if v == nil {
		return "", nil, fmt.Errorf("%w: null", ErrShape)
	}
	switch v.Type {
	case ir.StringType:
		return v.String, nil, nil
	case ir.TaggedType:
		if v.Tagged.Tag.IsCore() {
			return Classify(v.Tagged.Value)
		}
		return v.Tagged.Tag.Nobang(), v.Tagged.Value, nil
	case ir.MappingType:
		if v.Mapping.Len() != 1 {
			return "", nil, fmt.Errorf("%w: map with %d entries", ErrShape, v.Mapping.Len())
		}
		k, p := v.Mapping.At(0)
		name, ok := k.Untag().AsString()
		if !ok {
			return "", nil, fmt.Errorf("%w: map key of type %s", ErrShape, k.Untag().Type)
		}
		return name, p, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrShape, v.Type)
	}
}

// Decode reads the variant represented by v.
func (t *Table) Decode(v *ir.Value) (Variant, *ir.Value, error) {
	name, payload, err := Classify(v)
	if err != nil {
		return Variant{}, nil, err
	}
	return t.Resolve(name, payload)
}

// Encode builds the representation of variant name with payload in the
// given form.  Unit variants ignore payload and are written as bare
// scalars unless tagUnit is set.
func (t *Table) Encode(name string, payload *ir.Value, form Form, tagUnit bool) (*ir.Value, error) {
	v, payload, err := t.Resolve(name, unitPayload(t, name, payload))
	if err != nil {
		return nil, err
	}
	if v.Kind == Unit {
		if tagUnit {
			return ir.FromTagged(Tag(name), ir.Null()), nil
		}
		return ir.FromString(name), nil
	}
	if form == Tagged {
		return ir.FromTagged(Tag(name), payload), nil
	}
	m := ir.NewMapping()
	m.Set(ir.FromString(name), payload)
	return ir.FromMapping(m), nil
}

func unitPayload(t *Table, name string, payload *ir.Value) *ir.Value {
	if v, ok := t.Lookup(name); ok && v.Kind == Unit {
		return nil
	}
	return payload
}

// Tag returns the tag naming variant name.
func Tag(name string) ir.Tag {
	return ir.Tag("!" + name)
}
