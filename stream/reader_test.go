package stream

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/signadot/go-yml/yamlerr"
)

func readAll(t *testing.T, r EventReader) []*Event {
	t.Helper()
	var res []*Event
	for {
		e, err := r.ReadEvent()
		if err == io.EOF {
			return res
		}
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, e)
	}
}

// shape drops positions and document boundary details.
func shape(evs []*Event) []Event {
	res := make([]Event, 0, len(evs))
	for _, e := range evs {
		c := *e
		c.Implicit = false
		res = append(res, c)
	}
	return res
}

var ignoreMark = cmpopts.IgnoreFields(Event{}, "Mark")

func TestReaderEvents(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Event
	}{
		{
			name: "mapping",
			in:   "a: 1\nb: 'x'\nc: \"y\"\n",
			want: []Event{
				{Type: StreamStart}, {Type: DocumentStart},
				{Type: MappingStart},
				{Type: Scalar, Value: "a", Style: Plain}, {Type: Scalar, Value: "1", Style: Plain},
				{Type: Scalar, Value: "b", Style: Plain}, {Type: Scalar, Value: "x", Style: SingleQuoted},
				{Type: Scalar, Value: "c", Style: Plain}, {Type: Scalar, Value: "y", Style: DoubleQuoted},
				{Type: MappingEnd},
				{Type: DocumentEnd}, {Type: StreamEnd},
			},
		},
		{
			name: "anchors and tags",
			in:   "- &a !T 1\n- *a\n- [x, ~]\n- |\n  lit\n",
			want: []Event{
				{Type: StreamStart}, {Type: DocumentStart},
				{Type: SequenceStart},
				{Type: Scalar, Anchor: "a", Tag: "!T", Value: "1", Style: Plain},
				{Type: Alias, Anchor: "a"},
				{Type: SequenceStart, Flow: true},
				{Type: Scalar, Value: "x", Style: Plain}, {Type: Scalar, Value: "~", Style: Plain},
				{Type: SequenceEnd, Flow: true},
				{Type: Scalar, Value: "lit\n", Style: Literal},
				{Type: SequenceEnd},
				{Type: DocumentEnd}, {Type: StreamEnd},
			},
		},
		{
			name: "implicit null",
			in:   "k:\n",
			want: []Event{
				{Type: StreamStart}, {Type: DocumentStart},
				{Type: MappingStart},
				{Type: Scalar, Value: "k", Style: Plain}, {Type: Scalar, Value: "", Style: Plain},
				{Type: MappingEnd},
				{Type: DocumentEnd}, {Type: StreamEnd},
			},
		},
		{
			name: "empty",
			in:   "",
			want: []Event{{Type: StreamStart}, {Type: StreamEnd}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shape(readAll(t, NewBytesReader([]byte(tc.in))))
			if diff := cmp.Diff(tc.want, got, ignoreMark); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReaderMultiDocument(t *testing.T) {
	evs := readAll(t, NewReader(strings.NewReader("a\n--- b\n...\n")))
	n := 0
	for _, e := range evs {
		if e.Type == DocumentStart {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("got %d documents", n)
	}
	last := evs[len(evs)-2]
	if last.Type != DocumentEnd || last.Implicit {
		t.Errorf("expected explicit document end, got %+v", last)
	}
}

func TestReaderMarks(t *testing.T) {
	evs := readAll(t, NewBytesReader([]byte("a: 1\nbb: 2\n")))
	// StreamStart DocumentStart MappingStart a 1 bb 2
	bb := evs[5]
	if bb.Value != "bb" {
		t.Fatalf("got %s", bb)
	}
	if bb.Mark.Line != 2 || bb.Mark.Column != 1 || bb.Mark.Index != 5 {
		t.Errorf("got mark %+v", bb.Mark)
	}
}

func TestReaderSyntaxError(t *testing.T) {
	r := NewBytesReader([]byte("a: [1, 2\nb: 3\n"))
	var err error
	for err == nil {
		_, err = r.ReadEvent()
	}
	if err == io.EOF {
		t.Fatalf("expected syntax error")
	}
	if !errors.Is(err, yamlerr.ErrParse) {
		t.Errorf("got %v", err)
	}
}

func TestNodeReaderMatchesReader(t *testing.T) {
	for _, in := range []string{
		"a: 1\nb: [x, 'y']\n",
		"- &a {k: v}\n- *a\n- !T \"q\"\n",
		"one\n---\ntwo\n",
		"k: |\n  text\n",
	} {
		want := shape(readAll(t, NewBytesReader([]byte(in))))
		got := shape(readAll(t, NewNodeReader(strings.NewReader(in))))
		if diff := cmp.Diff(want, got, ignoreMark); diff != "" {
			t.Errorf("%q: events mismatch (-reader +node reader):\n%s", in, diff)
		}
	}
}

func TestNodeReaderUnknownAnchor(t *testing.T) {
	tests := []struct {
		in        string
		line, col int
	}{
		{"a: *nope\n", 1, 4},
		{"a: 1\nb: [1, *nope]\n", 2, 8},
		{"a: &x 1\nb: *x\n---\nc: *x\n", 4, 4},
	}
	for _, tt := range tests {
		r := NewNodeReader(strings.NewReader(tt.in))
		var err error
		for err == nil {
			_, err = r.ReadEvent()
		}
		if !errors.Is(err, yamlerr.ErrUnknownAnchor) {
			t.Errorf("%q: got %v", tt.in, err)
			continue
		}
		loc := yamlerr.LocationOf(err)
		if loc == nil || loc.Mark.Line != tt.line || loc.Mark.Column != tt.col {
			t.Errorf("%q: location %v, want line %d column %d", tt.in, loc, tt.line, tt.col)
		}
	}
}

func TestReaderCollectionKeys(t *testing.T) {
	evs := readAll(t, NewBytesReader([]byte("? [1, 2]\n: x\n")))
	want := []Event{
		{Type: StreamStart}, {Type: DocumentStart},
		{Type: MappingStart},
		{Type: SequenceStart, Flow: true},
		{Type: Scalar, Value: "1", Style: Plain}, {Type: Scalar, Value: "2", Style: Plain},
		{Type: SequenceEnd, Flow: true},
		{Type: Scalar, Value: "x", Style: Plain},
		{Type: MappingEnd},
		{Type: DocumentEnd}, {Type: StreamEnd},
	}
	if diff := cmp.Diff(want, shape(evs), ignoreMark); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
