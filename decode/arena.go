package decode

import (
	"errors"
	"fmt"

	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/parse"
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/variant"
	"github.com/signadot/go-yml/yamlerr"
)

// cursor is a Deserializer on a node of a loaded document.
type cursor struct {
	doc   *parse.Document
	site  int
	path  string
	depth int
	opts  *decodeOpts
	untag bool

	// jumps counts the alias jumps of the whole decode.
	jumps *int
}

// New returns a Deserializer on the root of doc.
func New(doc *parse.Document, opts ...DecodeOption) Deserializer {
	return &cursor{doc: doc, site: doc.Root, path: "$", opts: newDecodeOpts(opts), jumps: new(int)}
}

// expansionLimit bounds the alias jumps of one decode relative to the
// size of the document.
func expansionLimit(doc *parse.Document) int {
	return max(1000, 100*len(doc.Nodes))
}

func (c *cursor) options() *decodeOpts {
	return c.opts
}

func (c *cursor) Location() *yamlerr.Location {
	return c.doc.Location(c.site)
}

func (c *cursor) Path() string {
	return c.path
}

func (c *cursor) Fail(kind yamlerr.Kind, err error) error {
	return fail(c, kind, err)
}

func (c *cursor) wrap(err error) error {
	return fail(c, yamlerr.Message, err)
}

// target follows aliases from the cursor's site.  Every alias jump
// counts as a descent and against the expansion limit.
func (c *cursor) target() (*parse.Node, int, error) {
	n, depth := c.doc.Node(c.site), c.depth
	for n.Kind == parse.AliasNode {
		depth++
		*c.jumps++
		n = c.doc.Node(n.Target)
	}
	if depth > c.opts.limit {
		return nil, 0, tooDeep(c, c.opts.limit)
	}
	if limit := expansionLimit(c.doc); *c.jumps > limit {
		return nil, 0, fail(c, yamlerr.RecursionLimitExceeded,
			yamlerr.Newf(yamlerr.RecursionLimitExceeded, "alias expansion limit of %d exceeded", limit))
	}
	return n, depth, nil
}

func (c *cursor) tag(n *parse.Node) ir.Tag {
	if c.untag || n.Tag == "!" {
		return ""
	}
	return ir.Tag(n.Tag)
}

func (c *cursor) content() *cursor {
	res := *c
	res.untag = true
	return &res
}

func (c *cursor) child(i int, path string, depth int) *cursor {
	return &cursor{doc: c.doc, site: i, path: path, depth: depth + 1, opts: c.opts, jumps: c.jumps}
}

func (c *cursor) Deserialize(h Hint, v Visitor) error {
	n, depth, err := c.target()
	if err != nil {
		return err
	}
	tag := c.tag(n)
	if tag != "" && !tag.IsCore() && (h == HintAny || h == HintOption) {
		return c.wrap(v.VisitTagged(tag, c.content()))
	}
	switch n.Kind {
	case parse.ScalarNode:
		return c.wrap(c.scalar(n, tag.Core(), h, v))
	case parse.SequenceNode:
		return c.wrap(v.VisitSeq(&seqAccess{c: c, n: n, depth: depth}))
	default:
		return c.wrap(v.VisitMap(&mapAccess{c: c, n: n, depth: depth}))
	}
}

func (c *cursor) scalar(n *parse.Node, tag ir.Tag, h Hint, v Visitor) error {
	text := n.Text
	switch tag {
	case ir.CoreStr:
		return v.VisitString(text)
	case ir.CoreNull:
		if !token.IsNull(text) {
			return fmt.Errorf("invalid value %q for tag !!null", text)
		}
		return v.VisitNull()
	case ir.CoreBool:
		b, ok := token.ParseBool(text, c.opts.bools)
		if !ok {
			return fmt.Errorf("invalid value %q for tag !!bool", text)
		}
		return v.VisitBool(b)
	case ir.CoreInt:
		neg, u, ok := token.ParseInteger(text)
		if !ok {
			return fmt.Errorf("invalid value %q for tag !!int", text)
		}
		if neg && u != 0 {
			return v.VisitInt(int64(-u))
		}
		return v.VisitUint(u)
	case ir.CoreFloat:
		if f, ok := token.ParseFloat(text); ok {
			return v.VisitFloat(f)
		}
		if neg, u, ok := token.ParseInteger(text); ok {
			f := float64(u)
			if neg {
				f = -f
			}
			return v.VisitFloat(f)
		}
		return fmt.Errorf("invalid value %q for tag !!float", text)
	}
	if h.textual() || !n.Style.IsPlain() {
		return v.VisitString(text)
	}
	r := token.Resolve(text, c.opts.bools)
	switch r.Kind {
	case token.NullScalar:
		return v.VisitNull()
	case token.BoolScalar:
		return v.VisitBool(r.Bool)
	case token.IntScalar:
		return v.VisitInt(r.Int)
	case token.UintScalar:
		return v.VisitUint(r.Uint)
	case token.FloatScalar:
		return v.VisitFloat(r.Float)
	default:
		return v.VisitString(text)
	}
}

func (c *cursor) IsNull() bool {
	n, _, err := c.target()
	if err != nil || n.Kind != parse.ScalarNode {
		return false
	}
	switch tag := c.tag(n).Core(); {
	case tag == ir.CoreNull:
		return true
	case tag != "":
		return false
	}
	return n.Style.IsPlain() && token.IsNull(n.Text)
}

// shape is the type a payload node presents to variant resolution.
func (c *cursor) shape(i int, untag bool) ir.Type {
	n := c.doc.Node(i)
	if n.Kind == parse.AliasNode {
		n = c.doc.Node(n.Target)
	}
	switch n.Kind {
	case parse.SequenceNode:
		return ir.SequenceType
	case parse.MappingNode:
		return ir.MappingType
	}
	tag := ir.Tag(n.Tag)
	if untag || tag == "!" {
		tag = ""
	}
	switch tag.Core() {
	case "":
	case ir.CoreNull:
		return ir.NullType
	case ir.CoreBool:
		return ir.BoolType
	case ir.CoreInt, ir.CoreFloat:
		return ir.NumberType
	case ir.CoreStr:
		return ir.StringType
	default:
		if !tag.IsCore() {
			return ir.TaggedType
		}
	}
	if !n.Style.IsPlain() {
		return ir.StringType
	}
	switch token.Resolve(n.Text, c.opts.bools).Kind {
	case token.NullScalar:
		return ir.NullType
	case token.BoolScalar:
		return ir.BoolType
	case token.StringScalar:
		return ir.StringType
	default:
		return ir.NumberType
	}
}

func (c *cursor) DeserializeEnum(t *variant.Table, v Visitor) error {
	n, depth, err := c.target()
	if err != nil {
		return err
	}
	if tag := c.tag(n); tag != "" && !tag.IsCore() {
		vr, err := t.ResolveShape(tag.Nobang(), c.shape(c.site, true))
		if err != nil {
			return c.variantErr(err)
		}
		return c.wrap(v.VisitVariant(vr, c.content()))
	}
	switch n.Kind {
	case parse.ScalarNode:
		vr, err := t.ResolveBare(n.Text)
		if err != nil {
			return c.variantErr(err)
		}
		return c.wrap(v.VisitVariant(vr, &valueCursor{v: ir.Null(), path: c.path, loc: c.Location(), depth: depth, opts: c.opts}))
	case parse.MappingNode:
		m := &mapAccess{c: c, n: n, depth: depth}
		if len(n.Children) != 2 {
			if err := m.duplicate(); err != nil {
				return err
			}
			return c.wrap(&InvalidTypeError{
				Got:      fmt.Sprintf("map with %d entries", len(n.Children)/2),
				Expected: "a map with a single entry naming a variant of " + t.Name,
			})
		}
		kc, vc, _ := m.next()
		kn, _, err := kc.target()
		if err != nil {
			return err
		}
		if kn.Kind != parse.ScalarNode {
			return kc.wrap(&InvalidTypeError{Got: kn.Kind.String(), Expected: "a variant name"})
		}
		vr, err := t.ResolveShape(kn.Text, c.shape(vc.site, false))
		if err != nil {
			var se *variant.ShapeError
			if errors.As(err, &se) {
				return vc.variantErr(err)
			}
			return kc.variantErr(err)
		}
		return c.wrap(v.VisitVariant(vr, vc))
	default:
		return c.wrap(&InvalidTypeError{Got: "sequence", Expected: "enum " + t.Name})
	}
}

func (c *cursor) variantErr(err error) error {
	var uv *variant.UnknownVariantError
	if errors.As(err, &uv) {
		return fail(c, yamlerr.UnknownVariant, err)
	}
	return c.wrap(err)
}

type seqAccess struct {
	c     *cursor
	n     *parse.Node
	depth int
	i     int
}

func (s *seqAccess) Len() int {
	return len(s.n.Children)
}

func (s *seqAccess) Next() (Deserializer, bool) {
	if s.i >= len(s.n.Children) {
		return nil, false
	}
	res := s.c.child(s.n.Children[s.i], ir.AppendIndex(s.c.path, s.i), s.depth)
	s.i++
	return res, true
}

type mapAccess struct {
	c     *cursor
	n     *parse.Node
	depth int
	i     int
}

func (m *mapAccess) Len() int {
	return len(m.n.Children) / 2
}

func (m *mapAccess) Next() (Deserializer, Deserializer, bool) {
	k, v, ok := m.next()
	if !ok {
		return nil, nil, false
	}
	return k, v, true
}

func (m *mapAccess) next() (*cursor, *cursor, bool) {
	if m.i+1 >= len(m.n.Children) {
		return nil, nil, false
	}
	ki, vi := m.n.Children[m.i], m.n.Children[m.i+1]
	m.i += 2
	p := ir.AppendField(m.c.path, m.keyText(ki))
	return m.c.child(ki, p, m.depth), m.c.child(vi, p, m.depth), true
}

func (m *mapAccess) keyText(i int) string {
	n := m.c.doc.Node(i)
	if n.Kind == parse.AliasNode {
		n = m.c.doc.Node(n.Target)
	}
	if n.Kind != parse.ScalarNode {
		return "?"
	}
	return n.Text
}

// duplicate reports the first scalar key repeated in the mapping.
func (m *mapAccess) duplicate() error {
	seen := map[string]bool{}
	for i := 0; i+1 < len(m.n.Children); i += 2 {
		ki := m.n.Children[i]
		kn := m.c.doc.Node(ki)
		if kn.Kind == parse.AliasNode {
			kn = m.c.doc.Node(kn.Target)
		}
		if kn.Kind != parse.ScalarNode {
			continue
		}
		if seen[kn.Text] {
			kc := m.c.child(ki, ir.AppendField(m.c.path, kn.Text), m.depth)
			return kc.Fail(yamlerr.DuplicateKey, &ir.DuplicateKeyError{Key: ir.FromString(kn.Text)})
		}
		seen[kn.Text] = true
	}
	return nil
}
