package parse

import (
	"io"
	"iter"

	"github.com/signadot/go-yml/debug"
	"github.com/signadot/go-yml/stream"
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/yamlerr"
)

type posDocer interface {
	PosDoc() *token.PosDoc
}

// Loader builds documents from an event stream, one per call to Next.
type Loader struct {
	r       stream.EventReader
	opts    *parseOpts
	started bool
	done    bool
	err     error
	n       int
}

func NewLoader(r stream.EventReader, opts ...ParseOption) *Loader {
	return &Loader{r: r, opts: newParseOpts(opts)}
}

// Next returns the next document of the stream, or io.EOF once the
// stream has ended.  Errors are sticky.
func (l *Loader) Next() (*Document, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.done {
		return nil, io.EOF
	}
	doc, err := l.next()
	if err != nil {
		if err == io.EOF {
			l.done = true
		} else {
			l.err = err
		}
		return nil, err
	}
	l.n++
	if debug.Load() {
		debug.Logf("loaded document %d: %d nodes, %d anchors\n", l.n, len(doc.Nodes), len(doc.Anchors))
	}
	return doc, nil
}

// All iterates the remaining documents.  Iteration stops after the
// first error.
func (l *Loader) All() iter.Seq2[*Document, error] {
	return func(yield func(*Document, error) bool) {
		for {
			doc, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(doc, err) || err != nil {
				return
			}
		}
	}
}

func (l *Loader) read() (*stream.Event, error) {
	e, err := l.r.ReadEvent()
	if err == io.EOF {
		return nil, yamlerr.New(yamlerr.UnexpectedEndOfInput, "unexpected end of event stream")
	}
	if err != nil {
		return nil, yamlerr.Wrap(yamlerr.IOFailure, err)
	}
	return e, nil
}

func (l *Loader) next() (*Document, error) {
	e, err := l.r.ReadEvent()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, yamlerr.Wrap(yamlerr.IOFailure, err)
	}
	if !l.started {
		l.started = true
		if e.Type == stream.StreamStart {
			if e, err = l.read(); err != nil {
				return nil, err
			}
		}
	}
	switch e.Type {
	case stream.StreamEnd:
		return nil, io.EOF
	case stream.DocumentStart:
	default:
		return nil, l.unexpected(e, "document start")
	}
	doc := &Document{
		Anchors:       map[string]int{},
		ExplicitStart: !e.Implicit,
	}
	if l.opts.positions {
		if pd, ok := l.r.(posDocer); ok {
			doc.Pos = pd.PosDoc()
		}
	}
	e, err = l.read()
	if err != nil {
		return nil, err
	}
	root, err := l.node(doc, e, 0)
	if err != nil {
		return nil, err
	}
	doc.Root = root
	e, err = l.read()
	if err != nil {
		return nil, err
	}
	if e.Type != stream.DocumentEnd {
		return nil, l.unexpected(e, "document end")
	}
	doc.ExplicitEnd = !e.Implicit
	return doc, nil
}

func (l *Loader) unexpected(e *stream.Event, want string) error {
	return yamlerr.Newf(yamlerr.Parse, "unexpected %s, expected %s", e.Type, want).
		WithLocation(yamlerr.At(e.Mark, l.posDoc()))
}

func (l *Loader) posDoc() *token.PosDoc {
	if !l.opts.positions {
		return nil
	}
	if pd, ok := l.r.(posDocer); ok {
		return pd.PosDoc()
	}
	return nil
}

// node loads the node starting at e.  Anchors on collections are bound
// before their children are loaded, so an alias inside a collection may
// refer to the collection itself.
func (l *Loader) node(doc *Document, e *stream.Event, depth int) (int, error) {
	if depth > l.opts.limit {
		return 0, yamlerr.Newf(yamlerr.RecursionLimitExceeded, "recursion limit of %d exceeded", l.opts.limit).
			WithLocation(yamlerr.At(e.Mark, doc.Pos))
	}
	switch e.Type {
	case stream.Alias:
		target, ok := doc.Anchors[e.Anchor]
		if !ok {
			return 0, yamlerr.Newf(yamlerr.UnknownAnchor, "unknown anchor %q", e.Anchor).
				WithLocation(yamlerr.At(e.Mark, doc.Pos))
		}
		return doc.push(Node{Kind: AliasNode, Anchor: e.Anchor, Target: target, Mark: e.Mark}), nil
	case stream.Scalar:
		i := doc.push(Node{
			Kind:   ScalarNode,
			Tag:    e.Tag,
			Anchor: e.Anchor,
			Text:   e.Value,
			Style:  e.Style,
			Mark:   e.Mark,
		})
		l.anchor(doc, e.Anchor, i)
		return i, nil
	case stream.SequenceStart, stream.MappingStart:
		kind, end := SequenceNode, stream.SequenceEnd
		if e.Type == stream.MappingStart {
			kind, end = MappingNode, stream.MappingEnd
		}
		i := doc.push(Node{
			Kind:   kind,
			Tag:    e.Tag,
			Anchor: e.Anchor,
			Flow:   e.Flow,
			Mark:   e.Mark,
		})
		l.anchor(doc, e.Anchor, i)
		var children []int
		for {
			ce, err := l.read()
			if err != nil {
				return 0, err
			}
			if ce.Type == end {
				break
			}
			ci, err := l.node(doc, ce, depth+1)
			if err != nil {
				return 0, err
			}
			children = append(children, ci)
		}
		if kind == MappingNode && len(children)%2 != 0 {
			return 0, yamlerr.New(yamlerr.Parse, "mapping key without value").
				WithLocation(yamlerr.At(e.Mark, doc.Pos))
		}
		doc.Nodes[i].Children = children
		return i, nil
	default:
		return 0, l.unexpected(e, "node")
	}
}

func (l *Loader) anchor(doc *Document, name string, i int) {
	if name != "" {
		doc.Anchors[name] = i
	}
}
