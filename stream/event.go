package stream

import (
	"fmt"

	"github.com/signadot/go-yml/token"
)

// Event is one step of a YAML event stream.
type Event struct {
	Type EventType `json:"type"`

	// Anchor is the anchor defined on a node, or the anchor an Alias
	// event refers to.
	Anchor string `json:"anchor,omitempty"`
	// Tag as written, e.g. "!Point" or "!!str".
	Tag string `json:"tag,omitempty"`

	// Value and Style apply to Scalar events.
	Value string      `json:"value,omitempty"`
	Style ScalarStyle `json:"style,omitempty"`

	// Flow marks flow collections.
	Flow bool `json:"flow,omitempty"`

	// Implicit marks document boundaries without "---" or "...".
	Implicit bool `json:"implicit,omitempty"`

	Mark token.Mark `json:"mark"`
}

// IsNodeStart reports whether e starts a node: a scalar, an alias or a
// collection.
func (e *Event) IsNodeStart() bool {
	switch e.Type {
	case Scalar, Alias, MappingStart, SequenceStart:
		return true
	}
	return false
}

func (e *Event) String() string {
	switch e.Type {
	case Scalar:
		return fmt.Sprintf("%s(%q %s)", e.Type, e.Value, e.Style)
	case Alias:
		return fmt.Sprintf("%s(*%s)", e.Type, e.Anchor)
	default:
		return e.Type.String()
	}
}

// EventType represents the type of an event.
type EventType int

const (
	StreamStart EventType = iota
	StreamEnd
	DocumentStart
	DocumentEnd
	MappingStart
	MappingEnd
	SequenceStart
	SequenceEnd
	Scalar
	Alias
)

var eventTypeNames = map[EventType]string{
	StreamStart:   "StreamStart",
	StreamEnd:     "StreamEnd",
	DocumentStart: "DocumentStart",
	DocumentEnd:   "DocumentEnd",
	MappingStart:  "MappingStart",
	MappingEnd:    "MappingEnd",
	SequenceStart: "SequenceStart",
	SequenceEnd:   "SequenceEnd",
	Scalar:        "Scalar",
	Alias:         "Alias",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "Unknown"
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	for et, s := range eventTypeNames {
		if s == string(d) {
			*t = et
			return nil
		}
	}
	return fmt.Errorf("unknown type %q", d)
}

// ScalarStyle is the presentation style of a scalar.
type ScalarStyle int

const (
	// Any lets the writer choose.
	Any ScalarStyle = iota
	Plain
	SingleQuoted
	DoubleQuoted
	Literal
	Folded
)

var scalarStyleNames = map[ScalarStyle]string{
	Any:          "any",
	Plain:        "plain",
	SingleQuoted: "single",
	DoubleQuoted: "double",
	Literal:      "literal",
	Folded:       "folded",
}

func (s ScalarStyle) String() string {
	if n, ok := scalarStyleNames[s]; ok {
		return n
	}
	return "unknown"
}

// IsPlain reports whether scalars of style s are subject to plain
// scalar resolution.
func (s ScalarStyle) IsPlain() bool {
	return s == Plain || s == Any
}

func (s ScalarStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ScalarStyle) UnmarshalText(d []byte) error {
	for st, n := range scalarStyleNames {
		if n == string(d) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown scalar style %q", d)
}
