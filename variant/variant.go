// Package variant holds the representation policy for enum values: how a
// named variant and its payload map to and from YAML values.
//
// A unit variant is the bare scalar of its name.  A variant carrying data
// is a single entry mapping from its name to the payload, or, in the
// tagged form, the payload tagged with "!" and its name.  Both directions
// go through [Table.ResolveShape] so that they cannot drift apart.
package variant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/go-yml/ir"
)

type Kind int

const (
	Unit Kind = iota
	Newtype
	Tuple
	Struct
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "unit"
	case Newtype:
		return "newtype"
	case Tuple:
		return "tuple"
	case Struct:
		return "struct"
	default:
		return "<unknown variant kind>"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk := Unit; kk <= Struct; kk++ {
		if kk.String() == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized variant kind %q", d)
}

type Variant struct {
	Name string
	Kind Kind
}

// Form selects how data carrying variants are written.
type Form int

const (
	SingletonMap Form = iota
	Tagged
)

func (f Form) String() string {
	switch f {
	case SingletonMap:
		return "singleton-map"
	case Tagged:
		return "tagged"
	default:
		return "<unknown form>"
	}
}

var ErrShape = errors.New("invalid enum representation")

// UnknownVariantError reports a variant name not declared by an enum.
type UnknownVariantError struct {
	Enum     string
	Name     string
	Expected []string
}

func (e *UnknownVariantError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "unknown variant `%s`", e.Name)
	switch len(e.Expected) {
	case 0:
		b.WriteString(", there are no variants")
	case 1:
		fmt.Fprintf(b, ", expected `%s`", e.Expected[0])
	default:
		b.WriteString(", expected one of ")
		for i, n := range e.Expected {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "`%s`", n)
		}
	}
	return b.String()
}

// ShapeError reports a payload whose shape does not fit its variant.
type ShapeError struct {
	Variant Variant
	Got     ir.Type
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s variant %s", e.Got, e.Variant.Kind, e.Variant.Name)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}
