package yamlerr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/signadot/go-yml/token"
)

func TestErrorRendering(t *testing.T) {
	doc := token.NewPosDoc([]byte("a: 1\na: 2\n"))
	e := Newf(DuplicateKey, "duplicate entry with key %q", "a")
	e.WithLocation(At(doc.Mark(5), doc))
	want := "duplicate entry with key \"a\" at line 2 column 1 near `a: 1\\na: 2\\n`"
	if got := e.Error(); got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	e = New(Message, "invalid type").WithPath("$.a[0]")
	if got := e.Error(); got != "invalid type at $.a[0]" {
		t.Errorf("got %s", got)
	}
}

func TestErrorIs(t *testing.T) {
	var err error = fmt.Errorf("loading: %w", New(UnknownAnchor, "unknown anchor x"))
	if !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("expected ErrUnknownAnchor")
	}
	if errors.Is(err, ErrParse) {
		t.Errorf("unexpected ErrParse")
	}
	k, ok := KindOf(err)
	if !ok || k != UnknownAnchor {
		t.Errorf("KindOf: %s %v", k, ok)
	}
}

func TestWrap(t *testing.T) {
	e := Wrap(IOFailure, io.ErrClosedPipe)
	if !errors.Is(e, io.ErrClosedPipe) || !errors.Is(e, ErrIO) {
		t.Errorf("wrap chain broken: %v", e)
	}
	if e.Location != nil {
		t.Errorf("io failures carry no location")
	}
	inner := New(Parse, "bad")
	if Wrap(IOFailure, inner) != inner {
		t.Errorf("Wrap should keep existing *Error")
	}
	if Wrap(Parse, nil) != nil {
		t.Errorf("Wrap(nil)")
	}
}

func TestKindText(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("RecursionLimitExceeded")); err != nil {
		t.Fatal(err)
	}
	if k != RecursionLimitExceeded {
		t.Errorf("got %s", k)
	}
	if err := k.UnmarshalText([]byte("Nope")); err == nil {
		t.Errorf("expected error")
	}
}
