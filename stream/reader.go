package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	gtoken "github.com/goccy/go-yaml/token"

	"github.com/signadot/go-yml/debug"
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/yamlerr"
)

// Reader is an EventReader over YAML text, backed by the goccy/go-yaml
// parser.  The input is parsed in full on the first call to ReadEvent;
// events are then produced one document at a time.  Input goccy cannot
// parse but yaml.v3 can is read with a NodeReader instead.
type Reader struct {
	src   io.Reader
	pos   *token.PosDoc
	file  *ast.File
	docI  int
	queue []*Event
	done  bool
	err   error
}

// NewReader returns a Reader that reads all of r on first use.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// NewBytesReader returns a Reader over d.
func NewBytesReader(d []byte) *Reader {
	return &Reader{pos: token.NewPosDoc(d)}
}

// PosDoc returns the input indexed for positions, or nil before the
// first call to ReadEvent on a Reader made with NewReader.
func (r *Reader) PosDoc() *token.PosDoc {
	return r.pos
}

func (r *Reader) ReadEvent() (*Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.file == nil && !r.done {
		if err := r.start(); err != nil {
			r.err = err
			return nil, err
		}
	}
	for len(r.queue) == 0 {
		if r.done {
			return nil, io.EOF
		}
		if err := r.fill(); err != nil {
			r.err = err
			return nil, err
		}
	}
	e := r.queue[0]
	r.queue[0] = nil
	r.queue = r.queue[1:]
	if debug.Events() {
		debug.Logf("event %s at %s\n", e, e.Mark)
	}
	return e, nil
}

func (r *Reader) start() error {
	if r.pos == nil {
		d, err := io.ReadAll(r.src)
		if err != nil {
			return yamlerr.Wrap(yamlerr.IOFailure, err)
		}
		r.pos = token.NewPosDoc(d)
	}
	d := r.pos.Bytes()
	f, err := parser.ParseBytes(d, 0, parser.AllowDuplicateMapKey())
	if err != nil {
		// goccy rejects collection keys, explicit or not.
		if evs, nerr := nodeEvents(d); nerr == nil {
			if debug.Events() {
				debug.Logf("goccy: %v; reading with yaml.v3\n", err)
			}
			r.queue = evs
			r.done = true
			return nil
		}
		return r.parseError(err)
	}
	r.file = f
	r.queue = append(r.queue, &Event{Type: StreamStart, Mark: r.pos.Mark(0)})
	return nil
}

// nodeEvents reads all of d with a NodeReader.
func nodeEvents(d []byte) ([]*Event, error) {
	nr := NewNodeReader(bytes.NewReader(d))
	var evs []*Event
	for {
		e, err := nr.ReadEvent()
		if err == io.EOF {
			return evs, nil
		}
		if err != nil {
			return nil, err
		}
		evs = append(evs, e)
	}
}

// fill queues the events of the next document, or StreamEnd.
func (r *Reader) fill() error {
	for r.docI < len(r.file.Docs) {
		doc := r.file.Docs[r.docI]
		r.docI++
		if isEmptyDoc(doc) {
			continue
		}
		return r.document(doc)
	}
	r.queue = append(r.queue, &Event{Type: StreamEnd, Mark: r.pos.Mark(r.pos.Len())})
	r.done = true
	return nil
}

func isEmptyDoc(doc *ast.DocumentNode) bool {
	if doc.Start != nil || doc.End != nil {
		return false
	}
	return isComment(doc.Body)
}

func isComment(n ast.Node) bool {
	switch n.(type) {
	case nil, *ast.CommentGroupNode, *ast.CommentNode:
		return true
	}
	return false
}

func (r *Reader) document(doc *ast.DocumentNode) error {
	start := &Event{Type: DocumentStart, Implicit: doc.Start == nil}
	if doc.Start != nil {
		start.Mark = r.mark(doc.Start)
	} else if doc.Body != nil {
		start.Mark = r.mark(doc.Body.GetToken())
	}
	r.queue = append(r.queue, start)
	if err := r.walk(doc.Body, "", "", start.Mark); err != nil {
		return err
	}
	end := &Event{Type: DocumentEnd, Implicit: doc.End == nil}
	if doc.End != nil {
		end.Mark = r.mark(doc.End)
	}
	r.queue = append(r.queue, end)
	return nil
}

func (r *Reader) mark(tk *gtoken.Token) token.Mark {
	if tk == nil || tk.Position == nil {
		return token.Mark{}
	}
	return r.pos.Mark(r.pos.RuneOffset(tk.Position.Line, tk.Position.Column))
}

func (r *Reader) scalar(value string, style ScalarStyle, anchor, tag string, tk *gtoken.Token) {
	r.queue = append(r.queue, &Event{
		Type:   Scalar,
		Anchor: anchor,
		Tag:    tag,
		Value:  value,
		Style:  style,
		Mark:   r.mark(tk),
	})
}

// walk queues the events of n.  at is used as the mark of nodes the
// parser did not give a token.
func (r *Reader) walk(n ast.Node, anchor, tag string, at token.Mark) error {
	switch t := n.(type) {
	case nil, *ast.CommentGroupNode, *ast.CommentNode:
		r.queue = append(r.queue, &Event{Type: Scalar, Anchor: anchor, Tag: tag, Style: Plain, Mark: at})
		return nil
	case *ast.AnchorNode:
		return r.walk(t.Value, nodeText(t.Name), tag, r.markOr(t.Start, at))
	case *ast.TagNode:
		return r.walk(t.Value, anchor, t.Start.Value, r.markOr(t.Start, at))
	case *ast.AliasNode:
		r.queue = append(r.queue, &Event{Type: Alias, Anchor: nodeText(t.Value), Mark: r.markOr(t.Start, at)})
		return nil
	case *ast.MappingNode:
		start := &Event{Type: MappingStart, Anchor: anchor, Tag: tag, Flow: t.IsFlowStyle, Mark: r.markOr(t.Start, at)}
		if t.Start == nil && len(t.Values) > 0 {
			start.Mark = r.markOr(t.Values[0].Key.GetToken(), at)
		}
		r.queue = append(r.queue, start)
		for _, mv := range t.Values {
			if err := r.entry(mv, start.Mark); err != nil {
				return err
			}
		}
		r.queue = append(r.queue, &Event{Type: MappingEnd, Flow: t.IsFlowStyle, Mark: r.markOr(t.End, at)})
		return nil
	case *ast.MappingValueNode:
		start := &Event{Type: MappingStart, Anchor: anchor, Tag: tag, Flow: t.IsFlowStyle, Mark: r.markOr(t.Key.GetToken(), at)}
		r.queue = append(r.queue, start)
		if err := r.entry(t, start.Mark); err != nil {
			return err
		}
		r.queue = append(r.queue, &Event{Type: MappingEnd, Flow: t.IsFlowStyle, Mark: start.Mark})
		return nil
	case *ast.MappingKeyNode:
		return r.walk(t.Value, anchor, tag, r.markOr(t.Start, at))
	case *ast.SequenceNode:
		start := &Event{Type: SequenceStart, Anchor: anchor, Tag: tag, Flow: t.IsFlowStyle, Mark: r.markOr(t.Start, at)}
		r.queue = append(r.queue, start)
		for _, v := range t.Values {
			if err := r.walk(v, "", "", start.Mark); err != nil {
				return err
			}
		}
		r.queue = append(r.queue, &Event{Type: SequenceEnd, Flow: t.IsFlowStyle, Mark: r.markOr(t.End, at)})
		return nil
	case *ast.LiteralNode:
		style := Literal
		if t.Start != nil && t.Start.Type == gtoken.FoldedType {
			style = Folded
		}
		value := ""
		if t.Value != nil {
			value = t.Value.Value
		}
		r.scalar(value, style, anchor, tag, t.Start)
		return nil
	case *ast.StringNode:
		style := Plain
		if t.Token != nil {
			switch t.Token.Type {
			case gtoken.SingleQuoteType:
				style = SingleQuoted
			case gtoken.DoubleQuoteType:
				style = DoubleQuoted
			}
		}
		r.scalar(t.Value, style, anchor, tag, t.Token)
		return nil
	case *ast.MergeKeyNode:
		r.scalar("<<", Plain, anchor, tag, t.Token)
		return nil
	case *ast.NullNode:
		value := ""
		if t.Token != nil && t.Token.Type != gtoken.ImplicitNullType {
			value = t.Token.Value
		}
		r.scalar(value, Plain, anchor, tag, t.Token)
		return nil
	case *ast.IntegerNode:
		r.scalar(tokenText(t.Token), Plain, anchor, tag, t.Token)
		return nil
	case *ast.FloatNode:
		r.scalar(tokenText(t.Token), Plain, anchor, tag, t.Token)
		return nil
	case *ast.BoolNode:
		r.scalar(tokenText(t.Token), Plain, anchor, tag, t.Token)
		return nil
	case *ast.InfinityNode:
		r.scalar(tokenText(t.Token), Plain, anchor, tag, t.Token)
		return nil
	case *ast.NanNode:
		r.scalar(tokenText(t.Token), Plain, anchor, tag, t.Token)
		return nil
	default:
		return yamlerr.Newf(yamlerr.Parse, "unsupported node %s", n.Type()).
			WithLocation(yamlerr.At(r.markOr(n.GetToken(), at), r.pos))
	}
}

func (r *Reader) entry(mv *ast.MappingValueNode, at token.Mark) error {
	if err := r.walk(mv.Key, "", "", at); err != nil {
		return err
	}
	return r.walk(mv.Value, "", "", r.markOr(mv.Start, at))
}

func (r *Reader) markOr(tk *gtoken.Token, at token.Mark) token.Mark {
	if m := r.mark(tk); !m.IsZero() {
		return m
	}
	return at
}

func tokenText(tk *gtoken.Token) string {
	if tk == nil {
		return ""
	}
	return tk.Value
}

// nodeText returns the text of an anchor or alias name node.
func nodeText(n ast.Node) string {
	if n == nil {
		return ""
	}
	if s, ok := n.(*ast.StringNode); ok {
		return s.Value
	}
	return tokenText(n.GetToken())
}

type tokenError interface {
	GetToken() *gtoken.Token
	GetMessage() string
}

func (r *Reader) parseError(err error) error {
	var te tokenError
	if errors.As(err, &te) {
		e := yamlerr.New(yamlerr.Parse, te.GetMessage())
		e.Err = err
		return e.WithLocation(yamlerr.At(r.mark(te.GetToken()), r.pos))
	}
	return &yamlerr.Error{Kind: yamlerr.Parse, Msg: fmt.Sprintf("yaml: %v", err), Err: err}
}
