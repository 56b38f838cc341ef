package stream

import (
	"bytes"
	"io"
	"strings"

	"github.com/signadot/go-yml/debug"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/yamlerr"
)

// WriterOption configures a Writer.
type WriterOption func(*writerOpts)

type writerOpts struct {
	indent   int
	docStart bool
	docEnd   bool
	flow     bool
	colors   *Colors
}

// WithIndent sets the number of spaces per nesting level of block
// mappings.  Sequences under a mapping key are not indented.
func WithIndent(n int) WriterOption {
	return func(o *writerOpts) {
		if n > 0 {
			o.indent = n
		}
	}
}

// WithDocumentStart writes "---" before the first document too.
func WithDocumentStart(v bool) WriterOption {
	return func(o *writerOpts) { o.docStart = v }
}

// WithDocumentEnd writes "..." after every document.
func WithDocumentEnd(v bool) WriterOption {
	return func(o *writerOpts) { o.docEnd = v }
}

// WithFlow writes every collection in flow style.
func WithFlow(v bool) WriterOption {
	return func(o *writerOpts) { o.flow = v }
}

func WithColors(c *Colors) WriterOption {
	return func(o *writerOpts) { o.colors = c }
}

// Writer is an EventSink producing YAML text.  Each document is laid out
// once its DocumentEnd event arrives.
type Writer struct {
	w     io.Writer
	opts  writerOpts
	state *State
	start *Event
	root  *wnode
	stack []*wnode
	docs  int
	err   error
}

type wnode struct {
	ev       *Event
	children []*wnode
}

func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	res := &Writer{
		w:     w,
		opts:  writerOpts{indent: 2},
		state: NewState(),
	}
	for _, opt := range opts {
		opt(&res.opts)
	}
	return res
}

func (w *Writer) WriteEvent(e *Event) error {
	if w.err != nil {
		return w.err
	}
	if err := w.state.ProcessEvent(e); err != nil {
		w.err = yamlerr.Wrap(yamlerr.Emit, err)
		return w.err
	}
	switch e.Type {
	case StreamStart, StreamEnd:
	case DocumentStart:
		w.start = e
		w.root = nil
	case DocumentEnd:
		if err := w.flush(e); err != nil {
			w.err = err
			return err
		}
	case MappingStart, SequenceStart:
		n := &wnode{ev: e}
		w.add(n)
		w.stack = append(w.stack, n)
	case MappingEnd, SequenceEnd:
		w.stack = w.stack[:len(w.stack)-1]
	default:
		w.add(&wnode{ev: e})
	}
	return nil
}

func (w *Writer) add(n *wnode) {
	if len(w.stack) == 0 {
		w.root = n
		return
	}
	top := w.stack[len(w.stack)-1]
	top.children = append(top.children, n)
}

func (w *Writer) flush(end *Event) error {
	r := &renderer{opts: &w.opts, buf: &bytes.Buffer{}}
	header := w.docs > 0 || w.opts.docStart || (w.start != nil && !w.start.Implicit)
	r.document(w.root, header)
	if w.opts.docEnd || !end.Implicit {
		r.sep(ir.NullType, "...")
		r.nl()
	}
	w.docs++
	w.root = nil
	if debug.Encode() {
		debug.Logf("document %d:\n%s", w.docs, r.buf.String())
	}
	if _, err := w.w.Write(r.buf.Bytes()); err != nil {
		return yamlerr.Wrap(yamlerr.IOFailure, err)
	}
	return nil
}

type wctx int

const (
	ctxRoot wctx = iota
	ctxMapValue
	ctxSeqItem
)

type renderer struct {
	opts *writerOpts
	buf  *bytes.Buffer
}

func (r *renderer) write(s string) {
	r.buf.WriteString(s)
}

func (r *renderer) nl() {
	r.buf.WriteByte('\n')
}

func (r *renderer) spaces(n int) {
	for range n {
		r.buf.WriteByte(' ')
	}
}

func (r *renderer) color(t ir.Type, a ColorAttr, s string) string {
	return r.opts.colors.Color(t, a, s)
}

func (r *renderer) sep(t ir.Type, s string) {
	r.write(r.color(t, SepColor, s))
}

func (r *renderer) document(n *wnode, header bool) {
	if header {
		r.sep(ir.NullType, "---")
		if r.isBlock(n) && r.props(n.ev) == "" {
			r.nl()
			r.block(n, 0, false)
			return
		}
		if r.flow(n, false) == "" {
			r.nl()
			return
		}
		r.write(" ")
	}
	r.value(n, 0, ctxRoot)
}

// isBlock reports whether n is laid out as a block collection.
func (r *renderer) isBlock(n *wnode) bool {
	switch n.ev.Type {
	case MappingStart, SequenceStart:
		return !r.opts.flow && !n.ev.Flow && len(n.children) > 0
	}
	return false
}

func isLiteral(e *Event) bool {
	if e.Type != Scalar {
		return false
	}
	switch e.Style {
	case Literal, Folded, Any:
		return token.CanLiteral(e.Value)
	}
	return false
}

// value writes n at the cursor.  ctx says what precedes the cursor: the
// start of a line, "key:" or "-".  p is the indentation of the enclosing
// collection.
func (r *renderer) value(n *wnode, p int, ctx wctx) {
	e := n.ev
	pre := ""
	if ctx != ctxRoot {
		pre = " "
	}
	pr := r.props(e)
	switch {
	case r.isBlock(n):
		ind := p
		switch ctx {
		case ctxMapValue:
			if e.Type == MappingStart {
				ind = p + r.opts.indent
			}
		case ctxSeqItem:
			ind = p + 2
		}
		if pr != "" {
			r.write(pre + pr)
			r.nl()
			r.block(n, ind, false)
			return
		}
		switch ctx {
		case ctxMapValue:
			r.nl()
			r.block(n, ind, false)
		case ctxSeqItem:
			r.write(" ")
			r.block(n, ind, true)
		default:
			r.block(n, ind, false)
		}
	case !r.opts.flow && isLiteral(e):
		ind := r.opts.indent
		switch ctx {
		case ctxMapValue:
			ind = p + r.opts.indent
		case ctxSeqItem:
			ind = p + 2
		}
		r.write(pre)
		if pr != "" {
			r.write(pr + " ")
		}
		r.literal(e.Value, ind)
	default:
		s := r.flow(n, false)
		if s != "" {
			r.write(pre + s)
		}
		r.nl()
	}
}

func (r *renderer) literal(v string, ind int) {
	header := token.LiteralHeader(v)
	r.write(r.color(ir.StringType, SepColor, header))
	r.nl()
	body := v
	if header != "|-" {
		body = strings.TrimSuffix(body, "\n")
	}
	for _, ln := range strings.Split(body, "\n") {
		if ln != "" {
			r.spaces(ind)
			r.write(r.color(ir.StringType, LiteralMultiColor, ln))
		}
		r.nl()
	}
}

// block writes the entries of a block collection at indentation ind.
// When inline is set the cursor is already in place for the first one.
func (r *renderer) block(n *wnode, ind int, inline bool) {
	if n.ev.Type == SequenceStart {
		for i, c := range n.children {
			if i > 0 || !inline {
				r.spaces(ind)
			}
			r.sep(ir.SequenceType, "-")
			r.value(c, ind, ctxSeqItem)
		}
		return
	}
	for i := 0; i+1 < len(n.children); i += 2 {
		if i > 0 || !inline {
			r.spaces(ind)
		}
		k := n.children[i]
		if k.ev.Type == SequenceStart || k.ev.Type == MappingStart {
			r.sep(ir.MappingType, "?")
			r.write(" " + r.flow(k, true))
			r.nl()
			r.spaces(ind)
		} else {
			r.write(r.key(k))
		}
		r.sep(ir.MappingType, ":")
		r.value(n.children[i+1], ind, ctxMapValue)
	}
}

// key renders a scalar or alias mapping key on a single line.
func (r *renderer) key(k *wnode) string {
	switch k.ev.Type {
	case Alias:
		return r.alias(k.ev) + " "
	case Scalar:
		s := r.scalar(k.ev, true, true)
		if s == "" {
			s = "~"
		}
		if pr := r.props(k.ev); pr != "" {
			s = pr + " " + s
		}
		return s
	default:
		return r.flow(k, true)
	}
}

// flow renders n on a single line.  inFlow is set inside flow
// collections, where empty plain scalars are written as "~".
func (r *renderer) flow(n *wnode, inFlow bool) string {
	e := n.ev
	pr := r.props(e)
	with := func(s string) string {
		if pr == "" {
			return s
		}
		if s == "" {
			return pr
		}
		return pr + " " + s
	}
	switch e.Type {
	case Alias:
		return r.alias(e)
	case Scalar:
		s := r.scalar(e, inFlow, false)
		if s == "" && inFlow {
			s = "~"
		}
		return with(s)
	case SequenceStart:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = r.flow(c, true)
		}
		return with(r.color(ir.SequenceType, SepColor, "[") +
			strings.Join(parts, r.color(ir.SequenceType, SepColor, ", ")) +
			r.color(ir.SequenceType, SepColor, "]"))
	case MappingStart:
		parts := make([]string, 0, len(n.children)/2)
		for i := 0; i+1 < len(n.children); i += 2 {
			k := n.children[i]
			var ks string
			switch k.ev.Type {
			case Alias:
				ks = r.alias(k.ev) + " "
			case Scalar:
				ks = r.key(k)
			default:
				ks = r.flow(k, true)
			}
			parts = append(parts, ks+r.color(ir.MappingType, SepColor, ":")+" "+r.flow(n.children[i+1], true))
		}
		return with(r.color(ir.MappingType, SepColor, "{") +
			strings.Join(parts, r.color(ir.MappingType, SepColor, ", ")) +
			r.color(ir.MappingType, SepColor, "}"))
	}
	return ""
}

func (r *renderer) alias(e *Event) string {
	return r.color(ir.NullType, AnchorColor, "*"+e.Anchor)
}

// scalar renders a scalar on a single line in the style of the event,
// quoting where the text could not be read back otherwise.
func (r *renderer) scalar(e *Event, inFlow, isKey bool) string {
	v := e.Value
	multi := strings.ContainsAny(v, "\n\r")
	style := e.Style
	switch style {
	case Any:
		switch {
		case inFlow && !token.NeedsFlowQuote(v), !inFlow && !token.NeedsQuote(v):
			style = Plain
		case multi || token.NeedsDoubleQuote(v):
			style = DoubleQuoted
		default:
			style = SingleQuoted
		}
	case Plain:
		switch {
		case multi:
			style = DoubleQuoted
		case inFlow && strings.ContainsAny(v, ",[]{}"):
			style = SingleQuoted
		}
	case SingleQuoted:
		if multi || token.NeedsDoubleQuote(v) {
			style = DoubleQuoted
		}
	case Literal, Folded:
		style = DoubleQuoted
	}
	switch style {
	case Plain:
		if isKey {
			return r.color(ir.MappingType, FieldColor, v)
		}
		return r.color(scalarType(v), ValueColor, v)
	case SingleQuoted:
		return r.color(ir.StringType, LiteralSingleColor, token.QuoteSingle(v))
	default:
		return r.color(ir.StringType, LiteralSingleColor, token.QuoteDouble(v))
	}
}

func scalarType(v string) ir.Type {
	switch token.Resolve(v, token.YAML11).Kind {
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

// props renders the anchor and tag of e.
func (r *renderer) props(e *Event) string {
	if e.Type == Alias {
		return ""
	}
	var parts []string
	if e.Anchor != "" {
		parts = append(parts, r.color(ir.NullType, AnchorColor, "&"+e.Anchor))
	}
	if e.Tag != "" {
		parts = append(parts, r.color(ir.TaggedType, TagColor, TagText(e.Tag)))
	}
	return strings.Join(parts, " ")
}

// TagText returns the shortest written form of tag.
func TagText(tag string) string {
	switch {
	case strings.HasPrefix(tag, "tag:yaml.org,2002:"):
		return "!!" + strings.TrimPrefix(tag, "tag:yaml.org,2002:")
	case strings.HasPrefix(tag, "!"):
		return tag
	default:
		return "!<" + tag + ">"
	}
}
