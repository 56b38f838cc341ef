// Package yamlerr defines the errors reported while loading, decoding and
// encoding YAML.  Every error carries a [Kind] from a closed set and, when
// it stems from a specific place in the input, a [Location].
package yamlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/go-yml/token"
)

type Kind int

const (
	IOFailure Kind = iota
	Parse
	Emit
	Message
	DuplicateKey
	UnknownAnchor
	UnknownVariant
	RecursionLimitExceeded
	UnexpectedEndOfInput
)

var (
	ErrIO                     = errors.New("io failure")
	ErrParse                  = errors.New("parse error")
	ErrEmit                   = errors.New("emit error")
	ErrMessage                = errors.New("message")
	ErrDuplicateKey           = errors.New("duplicate key")
	ErrUnknownAnchor          = errors.New("unknown anchor")
	ErrUnknownVariant         = errors.New("unknown variant")
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")
	ErrUnexpectedEndOfInput   = errors.New("unexpected end of input")
)

var kindErrs = map[Kind]error{
	IOFailure:              ErrIO,
	Parse:                  ErrParse,
	Emit:                   ErrEmit,
	Message:                ErrMessage,
	DuplicateKey:           ErrDuplicateKey,
	UnknownAnchor:          ErrUnknownAnchor,
	UnknownVariant:         ErrUnknownVariant,
	RecursionLimitExceeded: ErrRecursionLimitExceeded,
	UnexpectedEndOfInput:   ErrUnexpectedEndOfInput,
}

func (k Kind) String() string {
	s, ok := map[Kind]string{
		IOFailure:              "IOFailure",
		Parse:                  "Parse",
		Emit:                   "Emit",
		Message:                "Message",
		DuplicateKey:           "DuplicateKey",
		UnknownAnchor:          "UnknownAnchor",
		UnknownVariant:         "UnknownVariant",
		RecursionLimitExceeded: "RecursionLimitExceeded",
		UnexpectedEndOfInput:   "UnexpectedEndOfInput",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk := IOFailure; kk <= UnexpectedEndOfInput; kk++ {
		if kk.String() == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized error kind %q", d)
}

// Location pins an error to the input.  Snippet, when set, is a short
// excerpt of the input around the mark.
type Location struct {
	Mark    token.Mark
	Snippet string
}

// At returns the location of m, rendering a snippet when doc is not nil.
func At(m token.Mark, doc *token.PosDoc) *Location {
	if m.IsZero() {
		return nil
	}
	loc := &Location{Mark: m}
	if doc != nil && m.Index <= doc.Len() {
		loc.Snippet = doc.Pos(m.Index).Sample()
	}
	return loc
}

func (l *Location) String() string {
	if l.Snippet == "" {
		return l.Mark.String()
	}
	return fmt.Sprintf("%s near `%s`", l.Mark, l.Snippet)
}

// Error is the error type returned throughout go-yml.
type Error struct {
	Kind     Kind
	Msg      string
	Path     string
	Location *Location
	Err      error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(kindErrs[e.Kind].Error())
	}
	if e.Path != "" && e.Path != "$" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
		if e.Location != nil {
			b.WriteString(",")
		}
	}
	if e.Location != nil {
		b.WriteString(" at ")
		b.WriteString(e.Location.String())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of e's kind.
func (e *Error) Is(target error) bool {
	return kindErrs[e.Kind] == target
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns err as an *Error of the given kind.  An err that already
// is an *Error is returned unchanged.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	var ye *Error
	if errors.As(err, &ye) {
		return ye
	}
	return &Error{Kind: kind, Err: err}
}

// WithLocation sets the location of e unless it already has one.
func (e *Error) WithLocation(loc *Location) *Error {
	if e.Location == nil {
		e.Location = loc
	}
	return e
}

// WithPath sets the path of e unless it already has one.
func (e *Error) WithPath(p string) *Error {
	if e.Path == "" {
		e.Path = p
	}
	return e
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var ye *Error
	if errors.As(err, &ye) {
		return ye.Kind, true
	}
	return 0, false
}

// LocationOf returns the location of the first *Error in err's chain.
func LocationOf(err error) *Location {
	var ye *Error
	if errors.As(err, &ye) {
		return ye.Location
	}
	return nil
}
