package stream

import (
	"errors"
	"fmt"

	"github.com/signadot/go-yml/ir"
)

// Context is where the next node of an event stream goes.
type Context int

const (
	TopLevel Context = iota
	InSequence
	MappingKey
	MappingValue
)

func (c Context) String() string {
	switch c {
	case TopLevel:
		return "top level"
	case InSequence:
		return "sequence"
	case MappingKey:
		return "mapping key"
	case MappingValue:
		return "mapping value"
	default:
		return "unknown context"
	}
}

// State provides stack/state/path management for an event stream.  It
// processes events and tracks where the stream is, rejecting events
// that are out of order.
type State struct {
	stack     []frame
	started   bool
	ended     bool
	inDoc     bool
	rootDone  bool
	documents int
}

type frame struct {
	mapping bool
	n       int
	key     string
	keyOK   bool
}

// NewState creates a new State for tracking structure state.
func NewState() *State {
	return &State{}
}

func (s *State) current() *frame {
	return &s.stack[len(s.stack)-1]
}

// ProcessEvent processes an event and updates state/path tracking.
// Call this for each event in order.
func (s *State) ProcessEvent(e *Event) error {
	if s.ended {
		return fmt.Errorf("%s after stream end", e.Type)
	}
	switch e.Type {
	case StreamStart:
		if s.started {
			return errors.New("stream already started")
		}
		s.started = true
	case StreamEnd:
		if s.inDoc {
			return errors.New("stream end inside document")
		}
		s.started = true
		s.ended = true
	case DocumentStart:
		if s.inDoc {
			return errors.New("document start inside document")
		}
		s.started = true
		s.inDoc = true
		s.rootDone = false
	case DocumentEnd:
		if !s.inDoc {
			return errors.New("document end outside document")
		}
		if len(s.stack) > 0 {
			return errors.New("document end inside collection at " + s.CurrentPath())
		}
		if !s.rootDone {
			return errors.New("document end without content")
		}
		s.inDoc = false
		s.documents++
	case Scalar, Alias:
		if err := s.node(e); err != nil {
			return err
		}
	case MappingStart, SequenceStart:
		if err := s.node(e); err != nil {
			return err
		}
		s.stack = append(s.stack, frame{mapping: e.Type == MappingStart})
	case MappingEnd:
		if len(s.stack) == 0 || !s.current().mapping {
			return errors.New("mapping end outside mapping")
		}
		if s.current().n%2 != 0 {
			return errors.New("mapping end after key without value at " + s.CurrentPath())
		}
		s.stack = s.stack[:len(s.stack)-1]
	case SequenceEnd:
		if len(s.stack) == 0 || s.current().mapping {
			return errors.New("sequence end outside sequence")
		}
		s.stack = s.stack[:len(s.stack)-1]
	default:
		return fmt.Errorf("unknown event type %d", e.Type)
	}
	return nil
}

func (s *State) node(e *Event) error {
	if !s.inDoc {
		return fmt.Errorf("%s outside document", e.Type)
	}
	if len(s.stack) == 0 {
		if s.rootDone {
			return fmt.Errorf("%s after document root", e.Type)
		}
		s.rootDone = true
		return nil
	}
	cur := s.current()
	if cur.mapping && cur.n%2 == 0 {
		cur.key, cur.keyOK = "", false
		if e.Type == Scalar {
			cur.key, cur.keyOK = e.Value, true
		}
	}
	cur.n++
	return nil
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// Context returns where the next node would go.
func (s *State) Context() Context {
	if len(s.stack) == 0 {
		return TopLevel
	}
	cur := s.current()
	switch {
	case !cur.mapping:
		return InSequence
	case cur.n%2 == 0:
		return MappingKey
	default:
		return MappingValue
	}
}

// InDocument reports whether a document has started and not ended.
func (s *State) InDocument() bool {
	return s.inDoc
}

// RootDone reports whether the current document has its root node.
func (s *State) RootDone() bool {
	return s.rootDone
}

// Documents returns the number of documents ended so far.
func (s *State) Documents() int {
	return s.documents
}

// Started reports whether the stream has started.
func (s *State) Started() bool {
	return s.started
}

// Ended reports whether the stream has ended.
func (s *State) Ended() bool {
	return s.ended
}

// Len returns the number of nodes written so far to the innermost
// collection, keys included.
func (s *State) Len() int {
	if len(s.stack) == 0 {
		return 0
	}
	return s.current().n
}

// CurrentPath returns the path of the most recent node, such as "$",
// "$.key" or "$.key[0]".  Non-scalar keys are rendered as "?".
func (s *State) CurrentPath() string {
	res := "$"
	for i := range s.stack {
		f := &s.stack[i]
		if f.n == 0 {
			continue
		}
		if !f.mapping {
			res = ir.AppendIndex(res, f.n-1)
			continue
		}
		if f.keyOK {
			res = ir.AppendField(res, f.key)
		} else {
			res += ".?"
		}
	}
	return res
}
