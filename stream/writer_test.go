package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/signadot/go-yml/yamlerr"
)

// blockEvents reads in and clears the flow flags so that the writer
// chooses block layout.
func blockEvents(t *testing.T, in string) []*Event {
	t.Helper()
	evs := readAll(t, NewBytesReader([]byte(in)))
	for _, e := range evs {
		e.Flow = false
	}
	return evs
}

// anyEvents is blockEvents with quoted scalars left to the writer.
func anyEvents(t *testing.T, in string) []*Event {
	t.Helper()
	evs := blockEvents(t, in)
	for _, e := range evs {
		if e.Style == SingleQuoted || e.Style == DoubleQuoted {
			e.Style = Any
		}
	}
	return evs
}

func writeAll(t *testing.T, evs []*Event, opts ...WriterOption) string {
	t.Helper()
	buf := &bytes.Buffer{}
	w := NewWriter(buf, opts...)
	if err := Copy(w, NewSliceReader(evs)); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestWriterLayout(t *testing.T) {
	tests := []struct {
		name string
		in   string
		any  bool
		opts []WriterOption
		want string
	}{
		{
			name: "block mapping",
			in:   "{a: 1, b: [1, 2], c: {d: x}}",
			want: "a: 1\nb:\n- 1\n- 2\nc:\n  d: x\n",
		},
		{
			name: "sequence items",
			in:   "[{a: 1, b: 2}, [1, 2], \"multi\\nline\\n\"]",
			any:  true,
			want: "- a: 1\n  b: 2\n- - 1\n  - 2\n- |\n  multi\n  line\n",
		},
		{
			name: "literal value",
			in:   "{k: \"a\\nb\"}",
			any:  true,
			want: "k: |-\n  a\n  b\n",
		},
		{
			name: "empty collections",
			in:   "{a: [], b: {}}",
			want: "a: []\nb: {}\n",
		},
		{
			name: "flow",
			in:   "{a: 1, b: [1, 2], c: {d: x}}",
			opts: []WriterOption{WithFlow(true)},
			want: "{a: 1, b: [1, 2], c: {d: x}}\n",
		},
		{
			name: "indent",
			in:   "{a: {b: {c: 1}}}",
			opts: []WriterOption{WithIndent(4)},
			want: "a:\n    b:\n        c: 1\n",
		},
		{
			name: "complex key",
			in:   "? [1, 2]\n: x\n? {a: 1}\n:\n  b: 2\n",
			want: "? [1, 2]\n: x\n? {a: 1}\n:\n  b: 2\n",
		},
		{
			name: "anchor and alias",
			in:   "a: &x\n  b: 1\nc: *x\n",
			want: "a: &x\n  b: 1\nc: *x\n",
		},
		{
			name: "tags",
			in:   "{a: !T {b: 1}, c: !!str 3}",
			want: "a: !T\n  b: 1\nc: !!str 3\n",
		},
		{
			name: "documents",
			in:   "1\n--- !B 42\n--- {a: 1}\n",
			want: "1\n--- !B 42\n---\na: 1\n",
		},
		{
			name: "document markers",
			in:   "a",
			opts: []WriterOption{WithDocumentStart(true), WithDocumentEnd(true)},
			want: "--- a\n...\n",
		},
		{
			name: "quoted",
			in:   "['it''s', \"tab\\there\", 'a,b']",
			opts: []WriterOption{WithFlow(true)},
			want: "['it''s', \"tab\\there\", 'a,b']\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			evs := blockEvents(t, tc.in)
			if tc.any {
				evs = anyEvents(t, tc.in)
			}
			got := writeAll(t, evs, tc.opts...)
			if got != tc.want {
				t.Errorf("got\n%s\nwant\n%s", got, tc.want)
			}
		})
	}
}

func TestWriterAnyStyle(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"plain", "plain\n"},
		{"true", "'true'\n"},
		{"", "''\n"},
		{"12", "'12'\n"},
		{"a: b", "'a: b'\n"},
		{"bell\a", "\"bell\\x07\"\n"},
		{"x\ny", "|-\n  x\n  y\n"},
	}
	for _, tc := range tests {
		evs := []*Event{
			{Type: StreamStart},
			{Type: DocumentStart, Implicit: true},
			{Type: Scalar, Value: tc.value, Style: Any},
			{Type: DocumentEnd, Implicit: true},
			{Type: StreamEnd},
		}
		if got := writeAll(t, evs); got != tc.want {
			t.Errorf("%q: got %q want %q", tc.value, got, tc.want)
		}
	}
}

func TestWriterAliasKey(t *testing.T) {
	evs := []*Event{
		{Type: StreamStart},
		{Type: DocumentStart, Implicit: true},
		{Type: MappingStart},
		{Type: Scalar, Value: "a", Style: Plain},
		{Type: Scalar, Anchor: "x", Value: "1", Style: Plain},
		{Type: Alias, Anchor: "x"},
		{Type: Scalar, Value: "2", Style: Plain},
		{Type: MappingEnd},
		{Type: DocumentEnd, Implicit: true},
		{Type: StreamEnd},
	}
	want := "a: &x 1\n*x : 2\n"
	if got := writeAll(t, evs); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestWriterRejectsBadOrder(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	err := w.WriteEvent(&Event{Type: MappingEnd})
	if !errors.Is(err, yamlerr.ErrEmit) {
		t.Errorf("got %v", err)
	}
}

// TestRoundTrip checks that text read and written again means the same
// to an independent parser.
func TestRoundTrip(t *testing.T) {
	for _, in := range []string{
		"a: 1\nb:\n  - x\n  - 'y'\nc: {d: [1, 2.5, null]}\n",
		"- a: |\n    keep\n\n- b: \"tab\\t\"\n- ''\n- '012'\n",
		"k: &anc [1, 2]\nref: *anc\n",
		"{a: {b: {c: {}}}}\n",
	} {
		out := writeAll(t, readAll(t, NewBytesReader([]byte(in))))
		var want, got any
		if err := yaml.Unmarshal([]byte(in), &want); err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if err := yaml.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("%q -> %q: %v", in, out, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q -> %q (-want +got):\n%s", in, out, diff)
		}
	}
}
