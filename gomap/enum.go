package gomap

import (
	"fmt"
	"reflect"

	"github.com/signadot/go-yml/variant"
)

// Enum maps a Go interface type to a variant table.  Each variant is a
// type implementing the interface.
type Enum struct {
	typ    reflect.Type
	table  *variant.Table
	byName map[string]reflect.Type
	byType map[reflect.Type]variant.Variant
}

// VariantNamer overrides the variant name, which defaults to the name
// of the variant's type.
type VariantNamer interface {
	VariantName() string
}

// NewEnum returns the enum of interface type T with the given variants.
// The kind of each variant follows from its type: an empty struct is a
// unit variant, a struct a struct variant, an array or slice a tuple
// variant and anything else a newtype variant.  It panics if T is not
// an interface type or a name is used twice.
func NewEnum[T any](variants ...T) *Enum {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Interface {
		panic(fmt.Sprintf("gomap: enum type %s is not an interface", typ))
	}
	e := &Enum{
		typ:    typ,
		table:  variant.NewTable(typ.Name()),
		byName: map[string]reflect.Type{},
		byType: map[reflect.Type]variant.Variant{},
	}
	for _, v := range variants {
		ct := reflect.TypeOf(any(v))
		if ct == nil {
			panic(fmt.Sprintf("gomap: nil variant of enum %s", typ))
		}
		name := baseType(ct).Name()
		if vn, ok := any(v).(VariantNamer); ok {
			name = vn.VariantName()
		}
		if _, dup := e.byName[name]; dup {
			panic(fmt.Sprintf("gomap: variant %s of enum %s declared twice", name, typ))
		}
		vr := variant.Variant{Name: name, Kind: kindOf(baseType(ct))}
		e.table.Variants = append(e.table.Variants, vr)
		e.byName[name] = ct
		e.byType[ct] = vr
	}
	return e
}

func (e *Enum) Type() reflect.Type {
	return e.typ
}

func (e *Enum) Table() *variant.Table {
	return e.table
}

func baseType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func kindOf(t reflect.Type) variant.Kind {
	switch t.Kind() {
	case reflect.Struct:
		if t.NumField() == 0 {
			return variant.Unit
		}
		return variant.Struct
	case reflect.Array, reflect.Slice:
		return variant.Tuple
	default:
		return variant.Newtype
	}
}

func enumFor(enums []*Enum, t reflect.Type) *Enum {
	for _, e := range enums {
		if e.typ == t {
			return e
		}
	}
	return nil
}

func variantFor(enums []*Enum, t reflect.Type) (*Enum, variant.Variant, bool) {
	for _, e := range enums {
		if vr, ok := e.byType[t]; ok {
			return e, vr, true
		}
	}
	return nil, variant.Variant{}, false
}
