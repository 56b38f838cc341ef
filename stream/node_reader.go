package stream

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signadot/go-yml/debug"
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/yamlerr"
)

// NodeReader is an EventReader backed by gopkg.in/yaml.v3.  Unlike
// Reader it consumes its input one document at a time, so it can follow
// an unbounded stream.  Unknown aliases are rejected by yaml.v3 itself.
type NodeReader struct {
	dec   *yaml.Decoder
	pos   *token.PosDoc
	queue []*Event
	state int
	err   error

	// last is the offset of the last node of the documents read so far.
	last int
}

const (
	nrInit = iota
	nrDocs
	nrDone
)

type posTee struct {
	r   io.Reader
	pos *token.PosDoc
}

func (t *posTee) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	t.pos.Append(p[:n])
	return n, err
}

func NewNodeReader(r io.Reader) *NodeReader {
	pos := token.NewPosDoc(nil)
	return &NodeReader{
		dec: yaml.NewDecoder(&posTee{r: r, pos: pos}),
		pos: pos,
	}
}

// PosDoc returns the input read so far, indexed for positions.
func (r *NodeReader) PosDoc() *token.PosDoc {
	return r.pos
}

func (r *NodeReader) ReadEvent() (*Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	for len(r.queue) == 0 {
		switch r.state {
		case nrInit:
			r.queue = append(r.queue, &Event{Type: StreamStart, Mark: token.Mark{Line: 1, Column: 1}})
			r.state = nrDocs
		case nrDocs:
			if err := r.fill(); err != nil {
				r.err = err
				return nil, err
			}
		default:
			return nil, io.EOF
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

func (r *NodeReader) fill() error {
	var doc yaml.Node
	err := r.dec.Decode(&doc)
	if err == io.EOF {
		r.queue = append(r.queue, &Event{Type: StreamEnd, Mark: r.pos.Mark(r.pos.Len())})
		r.state = nrDone
		return nil
	}
	if err != nil {
		return r.decodeError(err)
	}
	at := r.mark(doc.Line, doc.Column)
	r.queue = append(r.queue, &Event{Type: DocumentStart, Implicit: true, Mark: at})
	if len(doc.Content) == 0 {
		r.queue = append(r.queue, &Event{Type: Scalar, Style: Plain, Mark: at})
	} else {
		r.walk(doc.Content[0])
	}
	r.queue = append(r.queue, &Event{Type: DocumentEnd, Implicit: true})
	return nil
}

func (r *NodeReader) mark(line, col int) token.Mark {
	if line == 0 {
		return token.Mark{}
	}
	return r.pos.Mark(r.pos.RuneOffset(line, col))
}

func (r *NodeReader) walk(n *yaml.Node) {
	e := &Event{
		Anchor: n.Anchor,
		Flow:   n.Style&yaml.FlowStyle != 0,
		Mark:   r.mark(n.Line, n.Column),
	}
	r.last = max(r.last, e.Mark.Index)
	if n.Style&yaml.TaggedStyle != 0 {
		e.Tag = n.Tag
	}
	switch n.Kind {
	case yaml.AliasNode:
		r.queue = append(r.queue, &Event{Type: Alias, Anchor: n.Value, Mark: e.Mark})
	case yaml.ScalarNode:
		e.Type = Scalar
		e.Value = n.Value
		switch {
		case n.Style&yaml.LiteralStyle != 0:
			e.Style = Literal
		case n.Style&yaml.FoldedStyle != 0:
			e.Style = Folded
		case n.Style&yaml.SingleQuotedStyle != 0:
			e.Style = SingleQuoted
		case n.Style&yaml.DoubleQuotedStyle != 0:
			e.Style = DoubleQuoted
		default:
			e.Style = Plain
		}
		r.queue = append(r.queue, e)
	case yaml.SequenceNode:
		e.Type = SequenceStart
		r.queue = append(r.queue, e)
		for _, c := range n.Content {
			r.walk(c)
		}
		r.queue = append(r.queue, &Event{Type: SequenceEnd, Flow: e.Flow})
	case yaml.MappingNode:
		e.Type = MappingStart
		r.queue = append(r.queue, e)
		for _, c := range n.Content {
			r.walk(c)
		}
		r.queue = append(r.queue, &Event{Type: MappingEnd, Flow: e.Flow})
	case yaml.DocumentNode:
		for _, c := range n.Content {
			r.walk(c)
		}
	}
}

var (
	lineErr   = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)
	anchorErr = regexp.MustCompile(`unknown anchor '([^']*)' referenced`)
)

func (r *NodeReader) decodeError(err error) error {
	msg := err.Error()
	kind := yamlerr.Parse
	if strings.Contains(msg, "unknown anchor") {
		kind = yamlerr.UnknownAnchor
	}
	e := &yamlerr.Error{Kind: kind, Msg: msg, Err: err}
	if m := lineErr.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		e.Msg = m[2]
		e.Location = yamlerr.At(r.mark(line, 1), r.pos)
	}
	if m := anchorErr.FindStringSubmatch(msg); m != nil && e.Location == nil {
		e.Msg = m[0]
		if at, ok := r.aliasMark(m[1]); ok {
			e.Location = yamlerr.At(at, r.pos)
		}
	}
	return e
}

// aliasMark finds the first reference to the anchor name after the
// documents already read.  yaml.v3 reports unknown anchors without a
// position.
func (r *NodeReader) aliasMark(name string) (token.Mark, bool) {
	re, err := regexp.Compile(`(?:^|[\s\[{,:?-])(\*` + regexp.QuoteMeta(name) + `)(?:$|[\s\]},])`)
	if err != nil {
		return token.Mark{}, false
	}
	from := 0
	if r.last > 0 {
		from = min(r.last+1, r.pos.Len())
	}
	m := re.FindSubmatchIndex(r.pos.Bytes()[from:])
	if m == nil {
		return token.Mark{}, false
	}
	return r.pos.Mark(from + m[2]), true
}
