package main

import (
	"bytes"
	"strings"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"

	yml "github.com/signadot/go-yml"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/stream"
)

func mustParse(t *testing.T, s string) *ir.Value {
	t.Helper()
	v, err := yml.ParseValue([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestQuery(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
		want string
	}{
		{"doc.a + 1", "a: 2\n", "3"},
		{"doc.items[1]", "items: [x, y]\n", "y"},
		{"len(doc.items) > 1", "items: [x, y]\n", "true"},
		{"doc.m", "m: {b: 1, a: 2}\n", "{a: 2, b: 1}"},
		{"doc[1] * 2", "[1, 4]\n", "8"},
	}
	for _, tc := range tests {
		prog, err := compile(tc.expr)
		if err != nil {
			t.Fatal(err)
		}
		got, err := query(prog, mustParse(t, tc.doc))
		if err != nil {
			t.Fatalf("%s: %v", tc.expr, err)
		}
		if want := mustParse(t, tc.want); !ir.Equal(want, got) {
			t.Errorf("%s: got %v", tc.expr, got.ToAny())
		}
	}
}

func TestApplyPatch(t *testing.T) {
	p, err := jsonpatch.DecodePatch([]byte(`[{"op": "replace", "path": "/a", "value": 5}, {"op": "add", "path": "/b/-", "value": "z"}]`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := applyPatch(p, mustParse(t, "a: 1\nb: [x]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := mustParse(t, "a: 5\nb: [x, z]\n"); !ir.Equal(want, got) {
		t.Errorf("got %v", got.ToAny())
	}
}

func TestLineDiff(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := writeLineDiff(buf, "a: 1\nb: 2\n", "a: 1\nb: 3\n", false); err != nil {
		t.Fatal(err)
	}
	want := "  a: 1\n- b: 2\n+ b: 3\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if !equalDocs([]*ir.Value{mustParse(t, "{a: 1, b: 2}")}, []*ir.Value{mustParse(t, "{a: 1, b: 2}")}) {
		t.Error("equal documents differ")
	}
}

func TestConvert(t *testing.T) {
	cfg := &LoadConfig{MainConfig: &MainConfig{}, Tags: true}
	got := cfg.convert(mustParse(t, "Moved: {x: 1}\n"))
	if got.Type != ir.TaggedType || got.Tagged.Tag != "!Moved" {
		t.Errorf("got %v", got.Type)
	}
	cfg = &LoadConfig{MainConfig: &MainConfig{}, Maps: true}
	got = cfg.convert(mustParse(t, "!Moved {x: 1}\n"))
	if got.Get("Moved") == nil {
		t.Errorf("got %v", got.Type)
	}
}

func TestEventLines(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := stream.Copy(&jsonLines{w: buf}, stream.NewReader(strings.NewReader("a: 1\n"))); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// stream, document, mapping, two scalars and the matching ends
	if len(lines) != 8 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf)
	}
	if !strings.Contains(lines[3], `"value":"a"`) {
		t.Errorf("got %s", lines[3])
	}
}
