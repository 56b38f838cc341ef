package ir

import (
	"errors"
	"testing"
)

func pathDoc() *Value {
	return FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromSlice([]*Value{
			FromKeyVals([]KeyVal{{Key: FromString("id"), Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: FromString("id"), Val: FromInt(2)}}),
		})},
		{Key: FromString("b.c"), Val: FromTagged("!t", FromKeyVals([]KeyVal{{Key: FromString("id"), Val: FromInt(3)}}))},
		{Key: FromInt(7), Val: FromString("seven")},
	})
}

func TestParsePathString(t *testing.T) {
	for _, p := range []string{"$", "$.a", "$.a[0]", "$.a[*].id", "$..id", "$.'b.c'.id"} {
		yp, err := ParsePath(p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if got := yp.String(); got != p {
			t.Errorf("got %q want %q", got, p)
		}
	}
	if _, err := ParsePath("a"); !errors.Is(err, ErrPath) {
		t.Errorf("got %v", err)
	}
}

func TestGetPath(t *testing.T) {
	doc := pathDoc()
	tests := []struct {
		path string
		want *Value
	}{
		{"$.a[1].id", FromInt(2)},
		{"$.'b.c'.id", FromInt(3)},
		{"$.nope", nil},
	}
	for _, tc := range tests {
		got, err := doc.GetPath(tc.path)
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if (got == nil) != (tc.want == nil) || (got != nil && !Equal(got, tc.want)) {
			t.Errorf("%s: got %v", tc.path, got)
		}
	}
	if _, err := doc.GetPath("$.a[5]"); err == nil {
		t.Errorf("expected out of bounds error")
	}
	if _, err := doc.GetPath("$.a[*]"); err == nil {
		t.Errorf("expected wildcard error")
	}
}

func TestListPath(t *testing.T) {
	doc := pathDoc()
	got, err := doc.ListPath(nil, "$..id")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d values", len(got))
	}
	for i, v := range got {
		if !Equal(v, FromInt(int64(i+1))) {
			t.Errorf("%d: got %v", i, v)
		}
	}
	got, err = doc.ListPath(nil, "$.a[*].id")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d values", len(got))
	}
}

func TestGet(t *testing.T) {
	doc := pathDoc()
	if got := doc.Get(7); !Equal(got, FromString("seven")) {
		t.Errorf("got %v", got)
	}
	if got := doc.Get("a").Get(0).Get("id"); !Equal(got, FromInt(1)) {
		t.Errorf("got %v", got)
	}
	if got := doc.Get("b.c").Get("id"); !Equal(got, FromInt(3)) {
		t.Errorf("tag not looked through: %v", got)
	}
	if doc.Get(1.5) != nil || doc.Get("a").Get(9) != nil {
		t.Errorf("expected nil")
	}
}

func TestAppendPath(t *testing.T) {
	p := AppendIndex(AppendField(AppendField("$", "a"), "b.c"), 2)
	if p != "$.a.'b.c'[2]" {
		t.Errorf("got %q", p)
	}
}
