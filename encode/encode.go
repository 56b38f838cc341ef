// Package encode turns visitor style calls into YAML events.
//
// Each value written at the top level is one document.  Enum variants
// are written as bare scalars and singleton maps, or as tagged nodes
// when configured, and the choice holds for the whole session.
package encode

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/signadot/go-yml/debug"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/stream"
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/variant"
	"github.com/signadot/go-yml/yamlerr"
)

var (
	ErrNestedEnum  = errors.New("serializing nested enums in YAML is not supported yet")
	ErrBytes       = errors.New("serialization of bytes in YAML is not implemented")
	ErrClosed      = errors.New("encoder is closed")
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")
)

type frameKind int

const (
	seqFrame frameKind = iota
	mapFrame
	variantMapFrame
	variantTagFrame
)

var frameNames = map[frameKind]string{
	seqFrame:        "sequence",
	mapFrame:        "mapping",
	variantMapFrame: "variant",
	variantTagFrame: "variant",
}

// Encoder is a state machine writing events to a sink.  Errors are
// sticky.
type Encoder struct {
	sink   stream.EventSink
	state  *stream.State
	opts   *encOpts
	tag    string
	frames []frameKind
	err    error
	closed bool
}

func NewEncoder(sink stream.EventSink, opts ...EncodeOption) *Encoder {
	return &Encoder{sink: sink, state: stream.NewState(), opts: newEncOpts(opts)}
}

// NewWriter returns an Encoder writing YAML text to w.
func NewWriter(w io.Writer, opts ...EncodeOption) *Encoder {
	o := newEncOpts(opts)
	return &Encoder{sink: stream.NewWriter(w, o.writer...), state: stream.NewState(), opts: o}
}

// Context reports where the next value will be written.
func (e *Encoder) Context() stream.Context {
	return e.state.Context()
}

func (e *Encoder) fail(err error) error {
	if e.err == nil {
		e.err = err
	}
	return e.err
}

func (e *Encoder) message(err error) error {
	return e.fail(yamlerr.Wrap(yamlerr.Message, err).WithPath(e.state.CurrentPath()))
}

func (e *Encoder) write(ev *stream.Event) error {
	if err := e.state.ProcessEvent(ev); err != nil {
		return e.fail(yamlerr.Wrap(yamlerr.Emit, err))
	}
	if debug.Encode() {
		debug.Logf("encode %s at %s\n", ev, e.state.CurrentPath())
	}
	if err := e.sink.WriteEvent(ev); err != nil {
		return e.fail(yamlerr.Wrap(yamlerr.IOFailure, err))
	}
	return nil
}

// node writes an event starting a node, opening a document first at
// the top level and attaching any pending tag.
func (e *Encoder) node(ev *stream.Event) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return e.fail(yamlerr.Wrap(yamlerr.Emit, ErrClosed))
	}
	if !e.state.InDocument() {
		if !e.state.Started() {
			if err := e.write(&stream.Event{Type: stream.StreamStart}); err != nil {
				return err
			}
		}
		if err := e.write(&stream.Event{Type: stream.DocumentStart, Implicit: true}); err != nil {
			return err
		}
	}
	ev.Tag, e.tag = e.tag, ""
	if err := e.write(ev); err != nil {
		return err
	}
	return e.endDocument()
}

// end writes an event ending a collection.
func (e *Encoder) end(ev *stream.Event, want frameKind) error {
	if e.err != nil {
		return e.err
	}
	if err := e.pop(want); err != nil {
		return err
	}
	if e.tag != "" {
		return e.message(errors.New("tag without a value"))
	}
	if err := e.write(ev); err != nil {
		return err
	}
	return e.endDocument()
}

func (e *Encoder) endDocument() error {
	if e.state.Depth() > 0 || !e.state.RootDone() {
		return nil
	}
	return e.write(&stream.Event{Type: stream.DocumentEnd, Implicit: true})
}

func (e *Encoder) push(f frameKind) {
	e.frames = append(e.frames, f)
}

func (e *Encoder) pop(want frameKind) error {
	n := len(e.frames)
	if n == 0 || e.frames[n-1] != want {
		return e.message(errors.New("end of " + frameNames[want] + " without a beginning"))
	}
	e.frames = e.frames[:n-1]
	return nil
}

func (e *Encoder) scalar(v string, style stream.ScalarStyle) error {
	return e.node(&stream.Event{Type: stream.Scalar, Value: v, Style: style})
}

func (e *Encoder) Null() error {
	return e.scalar("null", stream.Plain)
}

func (e *Encoder) Bool(b bool) error {
	if b {
		return e.scalar("true", stream.Plain)
	}
	return e.scalar("false", stream.Plain)
}

func (e *Encoder) Int(i int64) error {
	return e.scalar(token.FormatInt(i), stream.Plain)
}

func (e *Encoder) Uint(u uint64) error {
	return e.scalar(token.FormatUint(u), stream.Plain)
}

func (e *Encoder) Float(f float64) error {
	return e.scalar(token.FormatFloat(f), stream.Plain)
}

func (e *Encoder) Number(n ir.Number) error {
	return e.scalar(n.String(), stream.Plain)
}

// String writes s in a style that reads back as the same string:
// plain when possible, literal when it spans lines and quoted
// otherwise.  Strings that are not valid UTF-8 cannot be written.
func (e *Encoder) String(s string) error {
	if !utf8.ValidString(s) {
		return e.fail(yamlerr.Wrap(yamlerr.Emit, ErrInvalidUTF8).WithPath(e.state.CurrentPath()))
	}
	return e.scalar(s, StringStyle(s))
}

// StringStyle is the style String writes s in.
func StringStyle(s string) stream.ScalarStyle {
	switch {
	case token.CanLiteral(s):
		return stream.Literal
	case !token.NeedsQuote(s):
		return stream.Plain
	case token.NeedsDoubleQuote(s):
		return stream.DoubleQuoted
	default:
		return stream.SingleQuoted
	}
}

func (e *Encoder) Bytes([]byte) error {
	return e.message(ErrBytes)
}

// Tag attaches tag to the next node.
func (e *Encoder) Tag(tag ir.Tag) error {
	if e.err != nil {
		return e.err
	}
	if e.tag != "" {
		return e.message(errors.New("tag " + string(tag) + " follows pending tag " + e.tag))
	}
	e.tag = string(tag)
	return nil
}

// BeginSeq starts a sequence of n elements; n may be -1 when unknown.
func (e *Encoder) BeginSeq(n int) error {
	if err := e.node(&stream.Event{Type: stream.SequenceStart}); err != nil {
		return err
	}
	e.push(seqFrame)
	return nil
}

func (e *Encoder) EndSeq() error {
	return e.end(&stream.Event{Type: stream.SequenceEnd}, seqFrame)
}

// BeginMap starts a mapping of n entries; n may be -1 when unknown.
// Keys and values follow in turn.
func (e *Encoder) BeginMap(n int) error {
	if err := e.node(&stream.Event{Type: stream.MappingStart}); err != nil {
		return err
	}
	e.push(mapFrame)
	return nil
}

func (e *Encoder) EndMap() error {
	return e.end(&stream.Event{Type: stream.MappingEnd}, mapFrame)
}

// UnitVariant writes a variant without data.
func (e *Encoder) UnitVariant(name string) error {
	if e.err != nil {
		return e.err
	}
	if !e.opts.tagUnit {
		return e.String(name)
	}
	if e.tag != "" {
		return e.message(ErrNestedEnum)
	}
	e.tag = string(variant.Tag(name))
	return e.scalar("", stream.Plain)
}

// BeginVariant starts a variant carrying data.  The payload follows as
// a single value, then EndVariant.
func (e *Encoder) BeginVariant(name string) error {
	if e.err != nil {
		return e.err
	}
	if e.opts.variantTags {
		if e.tag != "" {
			return e.message(ErrNestedEnum)
		}
		e.tag = string(variant.Tag(name))
		e.push(variantTagFrame)
		return nil
	}
	if err := e.BeginMap(1); err != nil {
		return err
	}
	if err := e.String(name); err != nil {
		return err
	}
	e.frames[len(e.frames)-1] = variantMapFrame
	return nil
}

func (e *Encoder) EndVariant() error {
	if e.err != nil {
		return e.err
	}
	if len(e.frames) > 0 && e.frames[len(e.frames)-1] == variantTagFrame {
		if e.tag != "" {
			return e.message(errors.New("variant without a payload"))
		}
		return e.pop(variantTagFrame)
	}
	return e.end(&stream.Event{Type: stream.MappingEnd}, variantMapFrame)
}

// Variant writes a variant value from its table representation.
func (e *Encoder) Variant(t *variant.Table, name string, payload *ir.Value) error {
	if vr, ok := t.Lookup(name); ok && vr.Kind == variant.Unit {
		return e.UnitVariant(name)
	}
	form := variant.SingletonMap
	if e.opts.variantTags {
		form = variant.Tagged
	}
	v, err := t.Encode(name, payload, form, e.opts.tagUnit)
	if err != nil {
		var uv *variant.UnknownVariantError
		if errors.As(err, &uv) {
			return e.fail(yamlerr.Wrap(yamlerr.UnknownVariant, err))
		}
		return e.message(err)
	}
	if e.tag != "" && v.Type == ir.TaggedType {
		return e.message(ErrNestedEnum)
	}
	return e.Value(v)
}

// Close ends the stream.  It fails if a document is incomplete.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return nil
	}
	if e.state.InDocument() || len(e.frames) > 0 || e.tag != "" {
		return e.fail(yamlerr.New(yamlerr.Emit, "encoder closed inside a document"))
	}
	e.closed = true
	if !e.state.Started() {
		return nil
	}
	return e.write(&stream.Event{Type: stream.StreamEnd})
}
