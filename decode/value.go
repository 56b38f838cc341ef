package decode

import (
	"errors"
	"strconv"

	"github.com/signadot/go-yml/debug"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/variant"
	"github.com/signadot/go-yml/yamlerr"
)

// Value decodes whatever d holds.  It fails only on duplicate keys,
// unknown anchors, excessive nesting and invalid core tags.
func Value(d Deserializer) (*ir.Value, error) {
	res, err := value(d)
	if err != nil {
		return nil, err
	}
	if o, ok := d.(optioner); ok && o.options().merge {
		if err := res.ApplyMerge(); err != nil {
			return nil, fail(d, yamlerr.Message, err)
		}
	}
	if debug.Decode() {
		debug.Logf("decoded value at %s: %s\n", d.Path(), res.Type)
		debug.LogAny(res)
	}
	return res, nil
}

func value(d Deserializer) (*ir.Value, error) {
	vv := &valueVisitor{}
	if err := d.Deserialize(HintAny, vv); err != nil {
		return nil, err
	}
	return vv.res, nil
}

type valueVisitor struct {
	res *ir.Value
}

func (vv *valueVisitor) Expecting() string {
	return "any YAML value"
}

func (vv *valueVisitor) VisitNull() error {
	vv.res = ir.Null()
	return nil
}

func (vv *valueVisitor) VisitBool(b bool) error {
	vv.res = ir.FromBool(b)
	return nil
}

func (vv *valueVisitor) VisitInt(i int64) error {
	vv.res = ir.FromInt(i)
	return nil
}

func (vv *valueVisitor) VisitUint(u uint64) error {
	vv.res = ir.FromUint(u)
	return nil
}

func (vv *valueVisitor) VisitFloat(f float64) error {
	vv.res = ir.FromFloat(f)
	return nil
}

func (vv *valueVisitor) VisitString(s string) error {
	vv.res = ir.FromString(s)
	return nil
}

func (vv *valueVisitor) VisitSeq(s SeqAccess) error {
	vs := make([]*ir.Value, 0, s.Len())
	for {
		d, ok := s.Next()
		if !ok {
			break
		}
		e, err := value(d)
		if err != nil {
			return err
		}
		vs = append(vs, e)
	}
	vv.res = ir.FromSlice(vs)
	return nil
}

func (vv *valueVisitor) VisitMap(m MapAccess) error {
	res := ir.NewMapping()
	for {
		kd, vd, ok := m.Next()
		if !ok {
			break
		}
		k, err := value(kd)
		if err != nil {
			return err
		}
		e := res.Entry(k)
		if e.Occupied() {
			return kd.Fail(yamlerr.DuplicateKey, &ir.DuplicateKeyError{Key: k})
		}
		v, err := value(vd)
		if err != nil {
			return err
		}
		if err := e.Insert(v); err != nil {
			return kd.Fail(yamlerr.DuplicateKey, err)
		}
	}
	vv.res = ir.FromMapping(res)
	return nil
}

func (vv *valueVisitor) VisitTagged(tag ir.Tag, content Deserializer) error {
	v, err := value(content)
	if err != nil {
		return err
	}
	vv.res = ir.FromTagged(tag, v)
	return nil
}

func (vv *valueVisitor) VisitVariant(vr variant.Variant, payload Deserializer) error {
	p, err := value(payload)
	if err != nil {
		return err
	}
	vv.res = ir.FromTagged(variant.Tag(vr.Name), p)
	return nil
}

// valueCursor is a Deserializer on a Value.
type valueCursor struct {
	v     *ir.Value
	path  string
	loc   *yamlerr.Location
	depth int
	opts  *decodeOpts
}

// FromValue returns a Deserializer on v.
func FromValue(v *ir.Value, opts ...DecodeOption) Deserializer {
	return &valueCursor{v: v, path: "$", opts: newDecodeOpts(opts)}
}

func (c *valueCursor) options() *decodeOpts {
	return c.opts
}

func (c *valueCursor) Location() *yamlerr.Location {
	return c.loc
}

func (c *valueCursor) Path() string {
	return c.path
}

func (c *valueCursor) Fail(kind yamlerr.Kind, err error) error {
	return fail(c, kind, err)
}

func (c *valueCursor) wrap(err error) error {
	return fail(c, yamlerr.Message, err)
}

func (c *valueCursor) with(v *ir.Value, path string, depth int) *valueCursor {
	return &valueCursor{v: v, path: path, loc: c.loc, depth: depth, opts: c.opts}
}

func (c *valueCursor) value() *ir.Value {
	if c.v == nil {
		return ir.Null()
	}
	return c.v
}

func (c *valueCursor) IsNull() bool {
	v := c.value()
	if v.Type == ir.TaggedType && !v.Tagged.Tag.IsCore() {
		return false
	}
	return v.Untag().IsNull()
}

func (c *valueCursor) Deserialize(h Hint, vis Visitor) error {
	if c.depth > c.opts.limit {
		return tooDeep(c, c.opts.limit)
	}
	v := c.value()
	switch v.Type {
	case ir.NullType:
		return c.wrap(vis.VisitNull())
	case ir.BoolType:
		if h.textual() {
			return c.wrap(vis.VisitString(strconv.FormatBool(v.Bool)))
		}
		return c.wrap(vis.VisitBool(v.Bool))
	case ir.NumberType:
		n := v.Number
		switch {
		case h.textual():
			return c.wrap(vis.VisitString(n.String()))
		case n.IsFloat():
			f, _ := n.AsFloat64()
			return c.wrap(vis.VisitFloat(f))
		case n.IsU64():
			u, _ := n.AsUint64()
			return c.wrap(vis.VisitUint(u))
		default:
			i, _ := n.AsInt64()
			return c.wrap(vis.VisitInt(i))
		}
	case ir.StringType:
		return c.wrap(vis.VisitString(v.String))
	case ir.SequenceType:
		return c.wrap(vis.VisitSeq(&valueSeq{c: c, vs: v.Values}))
	case ir.MappingType:
		return c.wrap(vis.VisitMap(&valueMap{c: c, m: v.Mapping}))
	default:
		inner := c.with(v.Tagged.Value, c.path, c.depth)
		if !v.Tagged.Tag.IsCore() && (h == HintAny || h == HintOption) {
			return c.wrap(vis.VisitTagged(v.Tagged.Tag, inner))
		}
		return inner.Deserialize(h, vis)
	}
}

func (c *valueCursor) DeserializeEnum(t *variant.Table, vis Visitor) error {
	vr, payload, err := t.Decode(c.value())
	if err != nil {
		var uv *variant.UnknownVariantError
		if errors.As(err, &uv) {
			return fail(c, yamlerr.UnknownVariant, err)
		}
		return c.wrap(err)
	}
	return c.wrap(vis.VisitVariant(vr, c.with(payload, c.path, c.depth+1)))
}

type valueSeq struct {
	c  *valueCursor
	vs []*ir.Value
	i  int
}

func (s *valueSeq) Len() int {
	return len(s.vs)
}

func (s *valueSeq) Next() (Deserializer, bool) {
	if s.i >= len(s.vs) {
		return nil, false
	}
	res := s.c.with(s.vs[s.i], ir.AppendIndex(s.c.path, s.i), s.c.depth+1)
	s.i++
	return res, true
}

type valueMap struct {
	c *valueCursor
	m *ir.Mapping
	i int
}

func (m *valueMap) Len() int {
	return m.m.Len()
}

func (m *valueMap) Next() (Deserializer, Deserializer, bool) {
	if m.i >= m.m.Len() {
		return nil, nil, false
	}
	k, v := m.m.At(m.i)
	m.i++
	p := ir.AppendField(m.c.path, keyName(k))
	return m.c.with(k, p, m.c.depth+1), m.c.with(v, p, m.c.depth+1), true
}

func keyName(k *ir.Value) string {
	k = k.Untag()
	switch {
	case k == nil:
		return "null"
	case k.Type == ir.StringType:
		return k.String
	case k.Type == ir.NumberType:
		return k.Number.String()
	}
	return "?"
}
