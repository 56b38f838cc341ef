package ir

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
)

func mustJSON(t *testing.T, v *Value) string {
	t.Helper()
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestJSONRoundTrip(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		kv("null", Null()),
		kv("bool", FromBool(true)),
		kv("neg", FromInt(-1)),
		kv("big", FromUint(math.MaxUint64)),
		kv("float", FromFloat(1)),
		kv("nan", FromFloat(math.NaN())),
		kv("seq", FromSlice(nil)),
		kv("tagged", FromTagged("!Point", FromKeyVals([]KeyVal{kv("x", FromInt(1))}))),
		{Key: FromInt(3), Val: FromString("int key")},
	})
	d := mustJSON(t, v)
	back := &Value{}
	if err := json.Unmarshal([]byte(d), back); err != nil {
		t.Fatal(err)
	}
	if !Equal(v, back) {
		t.Errorf("round trip mismatch:\n%s\n%s", d, mustJSON(t, back))
	}
}

func TestJSONDuplicateKey(t *testing.T) {
	d := `{"type":"Mapping","entries":[` +
		`{"key":{"type":"String","string":"a"},"value":{"type":"Null"}},` +
		`{"key":{"type":"String","string":"a"},"value":{"type":"Null"}}]}`
	if err := json.Unmarshal([]byte(d), &Value{}); err == nil {
		t.Errorf("expected duplicate key error")
	}
}

func TestToAnyFromAny(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		kv("a", FromSlice([]*Value{FromInt(-1), FromUint(2), FromFloat(2.5)})),
		kv("b", FromTagged("!t", FromString("x"))),
	})
	x := v.ToAny()
	m, ok := x.(map[string]any)
	if !ok {
		t.Fatalf("got %T", x)
	}
	if m["b"] != "x" {
		t.Errorf("got %v", m["b"])
	}
	back, err := FromAny(x)
	if err != nil {
		t.Fatal(err)
	}
	want := FromKeyVals([]KeyVal{
		kv("a", FromSlice([]*Value{FromInt(-1), FromUint(2), FromFloat(2.5)})),
		kv("b", FromString("x")),
	})
	if !Equal(back, want) {
		t.Errorf("got %s", mustJSON(t, back))
	}
	if _, err := FromAny(struct{}{}); err == nil {
		t.Errorf("expected error for struct")
	}
}

func TestTruth(t *testing.T) {
	for _, v := range []*Value{Null(), FromBool(false), FromInt(0), FromString(""), FromSlice(nil), FromKeyVals(nil), FromFloat(math.NaN())} {
		if Truth(v) {
			t.Errorf("%s truthy", mustJSON(t, v))
		}
	}
	for _, v := range []*Value{FromBool(true), FromInt(-1), FromString("x"), FromTagged("!t", FromInt(1))} {
		if !Truth(v) {
			t.Errorf("%s falsy", mustJSON(t, v))
		}
	}
}
