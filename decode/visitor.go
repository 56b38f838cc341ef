package decode

import (
	"fmt"
	"strconv"

	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/variant"
)

// Visitor receives what a Deserializer finds.  Each method is called at
// most once per Deserialize call.
type Visitor interface {
	Expecting() string

	VisitNull() error
	VisitBool(b bool) error
	VisitInt(i int64) error
	VisitUint(u uint64) error
	VisitFloat(f float64) error
	VisitString(s string) error
	VisitSeq(s SeqAccess) error
	VisitMap(m MapAccess) error
	VisitTagged(tag ir.Tag, content Deserializer) error
	VisitVariant(v variant.Variant, payload Deserializer) error
}

// SeqAccess iterates the elements of a sequence.
type SeqAccess interface {
	Len() int
	Next() (Deserializer, bool)
}

// MapAccess iterates the entries of a mapping in order.
type MapAccess interface {
	Len() int
	Next() (key, val Deserializer, ok bool)
}

// InvalidTypeError reports input of a type a Visitor does not accept.
type InvalidTypeError struct {
	Got      string
	Expected string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Got, e.Expected)
}

// BaseVisitor rejects everything.  Visitors embed it and override the
// methods for what they accept.
type BaseVisitor struct {
	Exp string
}

func (b BaseVisitor) Expecting() string {
	if b.Exp == "" {
		return "a value"
	}
	return b.Exp
}

func (b BaseVisitor) invalid(got string) error {
	return &InvalidTypeError{Got: got, Expected: b.Expecting()}
}

func (b BaseVisitor) VisitNull() error {
	return b.invalid("unit value")
}

func (b BaseVisitor) VisitBool(v bool) error {
	return b.invalid(fmt.Sprintf("boolean `%t`", v))
}

func (b BaseVisitor) VisitInt(i int64) error {
	return b.invalid(fmt.Sprintf("integer `%d`", i))
}

func (b BaseVisitor) VisitUint(u uint64) error {
	return b.invalid(fmt.Sprintf("integer `%d`", u))
}

func (b BaseVisitor) VisitFloat(f float64) error {
	return b.invalid(fmt.Sprintf("floating point `%s`", strconv.FormatFloat(f, 'g', -1, 64)))
}

func (b BaseVisitor) VisitString(s string) error {
	return b.invalid(fmt.Sprintf("string %q", s))
}

func (b BaseVisitor) VisitSeq(SeqAccess) error {
	return b.invalid("sequence")
}

func (b BaseVisitor) VisitMap(MapAccess) error {
	return b.invalid("map")
}

func (b BaseVisitor) VisitTagged(tag ir.Tag, _ Deserializer) error {
	return b.invalid(fmt.Sprintf("value tagged %s", tag))
}

func (b BaseVisitor) VisitVariant(v variant.Variant, _ Deserializer) error {
	return b.invalid(fmt.Sprintf("enum variant %s", v.Name))
}
