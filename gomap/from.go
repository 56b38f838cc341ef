package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/signadot/go-yml/decode"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/variant"
	"github.com/signadot/go-yml/yamlerr"
)

var (
	irValuePtrType      = reflect.PointerTo(irValueType)
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Decode reads d into the value v points to.
func Decode(d decode.Deserializer, v any, opts ...UnmapOption) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Message: fmt.Sprintf("non-nil pointer required, got %T", v)}
	}
	u := &unmapper{cfg: newUnmapConfig(opts)}
	return u.value(d, rv.Elem())
}

// FromValue reads val into the value v points to.
func FromValue(val *ir.Value, v any, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	return Decode(decode.FromValue(val, cfg.DecodeOptions...), v, opts...)
}

type unmapper struct {
	cfg *unmapConfig
}

func (u *unmapper) value(d decode.Deserializer, val reflect.Value) error {
	typ := val.Type()
	switch typ {
	case irValueType:
		v, err := decode.Value(d)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(*v))
		return nil
	case irValuePtrType:
		v, err := decode.Value(d)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(v))
		return nil
	case irTaggedType:
		v, err := decode.Value(d)
		if err != nil {
			return err
		}
		if v.Type != ir.TaggedType {
			return d.Fail(yamlerr.Message, &decode.InvalidTypeError{Got: v.Type.String(), Expected: "a tagged value"})
		}
		val.Set(reflect.ValueOf(*v.Tagged))
		return nil
	}
	if e := enumFor(u.cfg.enums, typ); e != nil {
		return d.DeserializeEnum(e.table, &enumVisitor{
			BaseVisitor: decode.BaseVisitor{Exp: "enum " + e.table.Name},
			u:           u,
			e:           e,
			val:         val,
		})
	}
	switch typ.Kind() {
	case reflect.Pointer:
		if d.IsNull() {
			val.SetZero()
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return u.value(d, val.Elem())
	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return d.Fail(yamlerr.Message, &UnmarshalError{
				FieldPath: d.Path(),
				Message:   fmt.Sprintf("cannot decode into interface %s", typ),
			})
		}
		if d.IsNull() {
			val.SetZero()
			return nil
		}
		v, err := decode.Value(d)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(v.ToAny()))
		return nil
	}
	if val.CanAddr() && reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return d.Deserialize(decode.HintString, &textVisitor{
			BaseVisitor: decode.BaseVisitor{Exp: "a string"},
			d:           d,
			tu:          val.Addr().Interface().(encoding.TextUnmarshaler),
		})
	}
	return u.plain(d, val)
}

// plain reads val by its kind alone.
func (u *unmapper) plain(d decode.Deserializer, val reflect.Value) error {
	return d.Deserialize(hintFor(val.Type()), &visitor{
		BaseVisitor: decode.BaseVisitor{Exp: expecting(val.Type())},
		u:           u,
		d:           d,
		val:         val,
	})
}

func hintFor(t reflect.Type) decode.Hint {
	switch t.Kind() {
	case reflect.Bool:
		return decode.HintBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decode.HintInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decode.HintUint
	case reflect.Float32, reflect.Float64:
		return decode.HintFloat
	case reflect.String:
		return decode.HintString
	case reflect.Slice:
		return decode.HintSeq
	case reflect.Array:
		return decode.HintTuple
	case reflect.Map:
		return decode.HintMap
	case reflect.Struct:
		return decode.HintStruct
	}
	return decode.HintAny
}

func expecting(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a sequence"
	case reflect.Map:
		return "a map"
	case reflect.Struct:
		return "struct " + t.Name()
	}
	return t.String()
}

type visitor struct {
	decode.BaseVisitor
	u   *unmapper
	d   decode.Deserializer
	val reflect.Value
}

func (v *visitor) overflow(actual string) error {
	return &TypeError{FieldPath: v.d.Path(), Expected: v.val.Type().String(), Actual: actual}
}

func (v *visitor) VisitNull() error {
	switch v.val.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface, reflect.Struct:
		v.val.SetZero()
		return nil
	}
	return v.BaseVisitor.VisitNull()
}

func (v *visitor) VisitBool(b bool) error {
	if v.val.Kind() != reflect.Bool {
		return v.BaseVisitor.VisitBool(b)
	}
	v.val.SetBool(b)
	return nil
}

func (v *visitor) VisitInt(i int64) error {
	switch v.val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.val.OverflowInt(i) {
			return v.overflow(fmt.Sprintf("integer `%d`", i))
		}
		v.val.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i < 0 || v.val.OverflowUint(uint64(i)) {
			return v.overflow(fmt.Sprintf("integer `%d`", i))
		}
		v.val.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		v.val.SetFloat(float64(i))
	default:
		return v.BaseVisitor.VisitInt(i)
	}
	return nil
}

func (v *visitor) VisitUint(x uint64) error {
	switch v.val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if x > math.MaxInt64 || v.val.OverflowInt(int64(x)) {
			return v.overflow(fmt.Sprintf("integer `%d`", x))
		}
		v.val.SetInt(int64(x))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.val.OverflowUint(x) {
			return v.overflow(fmt.Sprintf("integer `%d`", x))
		}
		v.val.SetUint(x)
	case reflect.Float32, reflect.Float64:
		v.val.SetFloat(float64(x))
	default:
		return v.BaseVisitor.VisitUint(x)
	}
	return nil
}

func (v *visitor) VisitFloat(f float64) error {
	switch v.val.Kind() {
	case reflect.Float32, reflect.Float64:
		if !math.IsInf(f, 0) && v.val.OverflowFloat(f) {
			return v.overflow(fmt.Sprintf("floating point `%g`", f))
		}
		v.val.SetFloat(f)
		return nil
	}
	return v.BaseVisitor.VisitFloat(f)
}

func (v *visitor) VisitString(s string) error {
	if v.val.Kind() != reflect.String {
		return v.BaseVisitor.VisitString(s)
	}
	v.val.SetString(s)
	return nil
}

func (v *visitor) VisitSeq(s decode.SeqAccess) error {
	switch v.val.Kind() {
	case reflect.Slice:
		typ := v.val.Type()
		res := reflect.MakeSlice(typ, 0, s.Len())
		for {
			ed, ok := s.Next()
			if !ok {
				break
			}
			ev := reflect.New(typ.Elem()).Elem()
			if err := v.u.value(ed, ev); err != nil {
				return err
			}
			res = reflect.Append(res, ev)
		}
		v.val.Set(res)
		return nil
	case reflect.Array:
		if s.Len() != v.val.Len() {
			return &TypeError{
				FieldPath: v.d.Path(),
				Expected:  fmt.Sprintf("an array of length %d", v.val.Len()),
				Actual:    fmt.Sprintf("sequence of length %d", s.Len()),
			}
		}
		v.val.SetZero()
		for i := 0; ; i++ {
			ed, ok := s.Next()
			if !ok {
				break
			}
			if err := v.u.value(ed, v.val.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return v.BaseVisitor.VisitSeq(s)
}

func (v *visitor) VisitMap(m decode.MapAccess) error {
	switch v.val.Kind() {
	case reflect.Map:
		return v.u.goMap(m, v.val)
	case reflect.Struct:
		return v.u.structure(v.d, m, v.val)
	}
	return v.BaseVisitor.VisitMap(m)
}

func (u *unmapper) goMap(m decode.MapAccess, val reflect.Value) error {
	typ := val.Type()
	res := reflect.MakeMapWithSize(typ, m.Len())
	for {
		kd, vd, ok := m.Next()
		if !ok {
			break
		}
		kv := reflect.New(typ.Key()).Elem()
		if err := u.value(kd, kv); err != nil {
			return err
		}
		if !kv.Comparable() {
			return kd.Fail(yamlerr.Message, &UnmarshalError{FieldPath: kd.Path(), Message: "map key is not comparable"})
		}
		if res.MapIndex(kv).IsValid() {
			return duplicate(kd)
		}
		ev := reflect.New(typ.Elem()).Elem()
		if err := u.value(vd, ev); err != nil {
			return err
		}
		res.SetMapIndex(kv, ev)
	}
	val.Set(res)
	return nil
}

func duplicate(kd decode.Deserializer) error {
	k, err := decode.Value(kd)
	if err != nil {
		return err
	}
	return kd.Fail(yamlerr.DuplicateKey, &ir.DuplicateKeyError{Key: k})
}

func (u *unmapper) structure(d decode.Deserializer, m decode.MapAccess, val reflect.Value) error {
	si, err := getStructInfo(val.Type())
	if err != nil {
		return d.Fail(yamlerr.Message, &UnmarshalError{FieldPath: d.Path(), Message: err.Error(), Err: err})
	}
	seen := make([]bool, len(si.fields))
	for {
		kd, vd, ok := m.Next()
		if !ok {
			break
		}
		sv := &stringVisitor{BaseVisitor: decode.BaseVisitor{Exp: "a field identifier"}}
		if err := kd.Deserialize(decode.HintIdentifier, sv); err != nil {
			return err
		}
		i, ok := si.byName[sv.s]
		if !ok {
			if si.inlineMap != nil {
				if err := u.inline(kd, vd, val.FieldByIndex(si.inlineMap), sv.s); err != nil {
					return err
				}
				continue
			}
			if u.cfg.disallowUnknown {
				return kd.Fail(yamlerr.Message, &UnmarshalError{
					FieldPath: kd.Path(),
					Message:   unknownField(sv.s, si.names()),
				})
			}
			continue
		}
		if seen[i] {
			return duplicate(kd)
		}
		seen[i] = true
		if err := u.value(vd, val.FieldByIndex(si.fields[i].Index)); err != nil {
			return err
		}
	}
	return nil
}

func (u *unmapper) inline(kd, vd decode.Deserializer, im reflect.Value, name string) error {
	typ := im.Type()
	if im.IsNil() {
		im.Set(reflect.MakeMap(typ))
	}
	kv := reflect.ValueOf(name).Convert(typ.Key())
	if im.MapIndex(kv).IsValid() {
		return duplicate(kd)
	}
	ev := reflect.New(typ.Elem()).Elem()
	if err := u.value(vd, ev); err != nil {
		return err
	}
	im.SetMapIndex(kv, ev)
	return nil
}

func unknownField(name string, expected []string) string {
	quoted := make([]string, len(expected))
	for i, e := range expected {
		quoted[i] = "`" + e + "`"
	}
	switch len(quoted) {
	case 0:
		return fmt.Sprintf("unknown field `%s`, there are no fields", name)
	case 1:
		return fmt.Sprintf("unknown field `%s`, expected %s", name, quoted[0])
	case 2:
		return fmt.Sprintf("unknown field `%s`, expected %s or %s", name, quoted[0], quoted[1])
	}
	return fmt.Sprintf("unknown field `%s`, expected one of %s", name, strings.Join(quoted, ", "))
}

type stringVisitor struct {
	decode.BaseVisitor
	s string
}

func (v *stringVisitor) VisitString(s string) error {
	v.s = s
	return nil
}

type textVisitor struct {
	decode.BaseVisitor
	d  decode.Deserializer
	tu encoding.TextUnmarshaler
}

func (v *textVisitor) VisitString(s string) error {
	if err := v.tu.UnmarshalText([]byte(s)); err != nil {
		return &UnmarshalError{FieldPath: v.d.Path(), Message: err.Error(), Err: err}
	}
	return nil
}

type enumVisitor struct {
	decode.BaseVisitor
	u   *unmapper
	e   *Enum
	val reflect.Value
}

func (v *enumVisitor) VisitVariant(vr variant.Variant, payload decode.Deserializer) error {
	ct := v.e.byName[vr.Name]
	nv := reflect.New(baseType(ct))
	if vr.Kind != variant.Unit {
		if err := v.u.plain(payload, nv.Elem()); err != nil {
			return err
		}
	}
	if ct.Kind() == reflect.Pointer {
		v.val.Set(nv)
	} else {
		v.val.Set(nv.Elem())
	}
	return nil
}
