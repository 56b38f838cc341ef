package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/signadot/go-yml/decode"
	"github.com/signadot/go-yml/encode"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/parse"
	"github.com/signadot/go-yml/stream"
	"github.com/signadot/go-yml/variant"
)

var (
	irValueType       = reflect.TypeFor[ir.Value]()
	irTaggedType      = reflect.TypeFor[ir.TaggedValue]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Encode writes v to enc.
func Encode(enc *encode.Encoder, v any, opts ...MapOption) error {
	m := &mapper{cfg: newMapConfig(opts), enc: enc, visited: map[uintptr]string{}}
	return m.value(reflect.ValueOf(v), "$")
}

// ToValue converts v to a Value, as if it were written to YAML and
// read back.
func ToValue(v any, opts ...MapOption) (*ir.Value, error) {
	cfg := newMapConfig(opts)
	rec := stream.NewRecorder()
	enc := encode.NewEncoder(rec, cfg.EncodeOptions...)
	if err := Encode(enc, v, opts...); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	doc, err := parse.NewLoader(rec.Reader()).Next()
	if err != nil {
		return nil, err
	}
	return decode.Value(decode.New(doc))
}

type mapper struct {
	cfg     *mapConfig
	enc     *encode.Encoder
	visited map[uintptr]string
}

// value writes val.  fieldPath is used for error reporting.
func (m *mapper) value(val reflect.Value, fieldPath string) error {
	if !val.IsValid() {
		return m.enc.Null()
	}
	typ := val.Type()
	switch typ {
	case irValueType:
		v := val.Interface().(ir.Value)
		return m.enc.Value(&v)
	case irTaggedType:
		tv := val.Interface().(ir.TaggedValue)
		return m.enc.Value(ir.FromTagged(tv.Tag, tv.Value))
	}
	if _, vr, ok := variantFor(m.cfg.enums, typ); ok {
		return m.variant(vr, val, fieldPath)
	}
	switch typ.Kind() {
	case reflect.Interface:
		if val.IsNil() {
			return m.enc.Null()
		}
		return m.value(val.Elem(), fieldPath)
	case reflect.Pointer:
		if val.IsNil() {
			return m.enc.Null()
		}
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			return m.text(tm, fieldPath)
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := m.visited[ptrAddr]; seen {
			return &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
			}
		}
		m.visited[ptrAddr] = fieldPath
		err := m.value(val.Elem(), fieldPath)
		delete(m.visited, ptrAddr)
		return err
	}
	if typ.Implements(textMarshalerType) {
		return m.text(val.Interface().(encoding.TextMarshaler), fieldPath)
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return m.text(tm, fieldPath)
		}
	}
	return m.plain(val, fieldPath)
}

// plain writes val by its kind alone.
func (m *mapper) plain(val reflect.Value, fieldPath string) error {
	switch val.Kind() {
	case reflect.String:
		return m.enc.String(val.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return m.enc.Int(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return m.enc.Uint(val.Uint())
	case reflect.Float32:
		// shortest float32 text, so that 0.1 stays 0.1
		f, _ := strconv.ParseFloat(strconv.FormatFloat(val.Float(), 'g', -1, 32), 64)
		return m.enc.Float(f)
	case reflect.Float64:
		return m.enc.Float(val.Float())
	case reflect.Bool:
		return m.enc.Bool(val.Bool())
	case reflect.Slice:
		if val.Type().Elem().Kind() == reflect.Uint8 {
			return m.enc.Bytes(val.Bytes())
		}
		if val.IsNil() {
			return m.enc.Null()
		}
		return m.seq(val, fieldPath)
	case reflect.Array:
		return m.seq(val, fieldPath)
	case reflect.Map:
		if val.IsNil() {
			return m.enc.Null()
		}
		return m.mapping(val, fieldPath)
	case reflect.Struct:
		return m.structure(val, fieldPath)
	case reflect.Interface, reflect.Pointer:
		return m.value(val, fieldPath)
	default:
		return &MarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("unsupported type %s", val.Type())}
	}
}

func (m *mapper) text(tm encoding.TextMarshaler, fieldPath string) error {
	text, err := tm.MarshalText()
	if err != nil {
		return &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
	}
	return m.enc.String(string(text))
}

func (m *mapper) seq(val reflect.Value, fieldPath string) error {
	n := val.Len()
	if err := m.enc.BeginSeq(n); err != nil {
		return err
	}
	for i := range n {
		if err := m.value(val.Index(i), ir.AppendIndex(fieldPath, i)); err != nil {
			return err
		}
	}
	return m.enc.EndSeq()
}

type entry struct {
	key *ir.Value
	val reflect.Value
}

// mapping writes the entries of a Go map sorted by key.
func (m *mapper) mapping(val reflect.Value, fieldPath string) error {
	entries := make([]entry, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		k, err := m.key(iter.Key(), fieldPath)
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return ir.Compare(a.key, b.key)
	})
	if err := m.enc.BeginMap(len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := m.enc.Value(e.key); err != nil {
			return err
		}
		if err := m.value(e.val, ir.AppendField(fieldPath, keyText(e.key))); err != nil {
			return err
		}
	}
	return m.enc.EndMap()
}

func (m *mapper) key(k reflect.Value, fieldPath string) (*ir.Value, error) {
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return ir.FromString(string(text)), nil
	}
	switch k.Kind() {
	case reflect.String:
		return ir.FromString(k.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(k.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromUint(k.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(k.Float()), nil
	case reflect.Bool:
		return ir.FromBool(k.Bool()), nil
	}
	return ToValue(k.Interface(), enumsOption(m.cfg.enums))
}

func keyText(k *ir.Value) string {
	if s, ok := k.AsString(); ok {
		return s
	}
	if k.Type == ir.NumberType {
		return k.Number.String()
	}
	return "?"
}

func (m *mapper) structure(val reflect.Value, fieldPath string) error {
	si, err := getStructInfo(val.Type())
	if err != nil {
		return &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
	}
	if err := m.enc.BeginMap(-1); err != nil {
		return err
	}
	for _, f := range si.fields {
		fv := val.FieldByIndex(f.Index)
		if f.OmitEmpty && isZeroValue(fv) {
			continue
		}
		if err := m.enc.String(f.Name); err != nil {
			return err
		}
		if err := m.value(fv, ir.AppendField(fieldPath, f.Name)); err != nil {
			return err
		}
	}
	if si.inlineMap != nil {
		im := val.FieldByIndex(si.inlineMap)
		keys := make([]string, 0, im.Len())
		for _, k := range im.MapKeys() {
			if _, known := si.byName[k.String()]; !known {
				keys = append(keys, k.String())
			}
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := m.enc.String(k); err != nil {
				return err
			}
			kv := reflect.ValueOf(k).Convert(im.Type().Key())
			if err := m.value(im.MapIndex(kv), ir.AppendField(fieldPath, k)); err != nil {
				return err
			}
		}
	}
	return m.enc.EndMap()
}

// variant writes val as variant vr.
func (m *mapper) variant(vr variant.Variant, val reflect.Value, fieldPath string) error {
	if vr.Kind == variant.Unit {
		return m.enc.UnitVariant(vr.Name)
	}
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return m.enc.Null()
		}
		val = val.Elem()
	}
	if err := m.enc.BeginVariant(vr.Name); err != nil {
		return err
	}
	if err := m.plain(val, ir.AppendField(fieldPath, vr.Name)); err != nil {
		return err
	}
	return m.enc.EndVariant()
}

func isZeroValue(val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Slice, reflect.Map:
		return val.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return val.IsNil()
	}
	return val.IsZero()
}
