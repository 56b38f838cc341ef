package yml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/signadot/go-yml/gomap"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/parse"
	"github.com/signadot/go-yml/yamlerr"
)

type Motion interface{ isMotion() }

type Stopped struct{}

type Moved struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (Stopped) isMotion() {}
func (Moved) isMotion()   {}

var motion = gomap.NewEnum[Motion](Stopped{}, Moved{})

func TestEnumSymmetry(t *testing.T) {
	tests := []struct {
		v    Motion
		text string
		opts []Option
	}{
		{Stopped{}, "Stopped\n", nil},
		{Moved{X: 1, Y: 2}, "Moved:\n  x: 1\n  y: 2\n", nil},
		{Moved{X: 1, Y: 2}, "!Moved\nx: 1\ny: 2\n", []Option{TaggedVariants()}},
	}
	for _, tc := range tests {
		opts := append([]Option{WithEnums(motion)}, tc.opts...)
		d, err := Marshal(tc.v, opts...)
		if err != nil {
			t.Fatal(err)
		}
		if string(d) != tc.text {
			t.Errorf("got %q, want %q", d, tc.text)
		}
		var m Motion
		if err := Unmarshal(d, &m, opts...); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.v, m); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", d, diff)
		}
	}
}

func TestNullForms(t *testing.T) {
	for _, in := range []string{"", "~", "null", "Null", "NULL"} {
		v, err := ParseValue([]byte(in))
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if !v.IsNull() {
			t.Errorf("%q: got %s", in, v.Type)
		}
	}
	d, err := MarshalValue(ir.Null())
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "null\n" {
		t.Errorf("got %q", d)
	}
}

func TestNumericFidelity(t *testing.T) {
	i, err := ParseValue([]byte("42"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := ParseValue([]byte("42.0"))
	if err != nil {
		t.Fatal(err)
	}
	if !i.Number.IsInteger() || !f.Number.IsFloat() {
		t.Errorf("got %v and %v", i.Number, f.Number)
	}
	if ir.Equal(i, f) {
		t.Error("42 and 42.0 compare equal")
	}
}

func TestDuplicateKey(t *testing.T) {
	_, err := ParseValue([]byte("a: 1\na: 2\n"))
	if k, _ := yamlerr.KindOf(err); k != yamlerr.DuplicateKey {
		t.Fatalf("got %v", err)
	}
	var dk *ir.DuplicateKeyError
	if !errors.As(err, &dk) || !ir.Equal(dk.Key, ir.FromString("a")) {
		t.Errorf("got %#v", err)
	}
	var m map[string]int
	if err := Unmarshal([]byte("a: 1\na: 2\n"), &m); !errors.Is(err, yamlerr.ErrDuplicateKey) {
		t.Errorf("got %v", err)
	}
}

func TestAliases(t *testing.T) {
	var m map[string]int
	if err := Unmarshal([]byte("a: &x 1\nb: *x\n"), &m); err != nil {
		t.Fatal(err)
	}
	if m["a"] != 1 || m["b"] != 1 {
		t.Errorf("got %v", m)
	}
	var lists map[string][]int
	if err := Unmarshal([]byte("a: &x [1]\nb: *x\n"), &lists); err != nil {
		t.Fatal(err)
	}
	lists["a"][0] = 2
	if lists["b"][0] != 1 {
		t.Error("alias shares storage with its anchor")
	}
	_, err := ParseValue([]byte("a: *undefined\n"))
	if k, _ := yamlerr.KindOf(err); k != yamlerr.UnknownAnchor {
		t.Errorf("got %v", err)
	}
	_, err = NewDecoder(strings.NewReader("a: *undefined\n")).DecodeValue()
	if k, _ := yamlerr.KindOf(err); k != yamlerr.UnknownAnchor {
		t.Errorf("decoder: got %v", err)
	}
	if loc := yamlerr.LocationOf(err); loc == nil || loc.Mark.Line != 1 || loc.Mark.Column != 4 {
		t.Errorf("decoder: location %v", loc)
	}
}

func TestAliasExpansion(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < 10; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", ")
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
	}
	_, err := ParseValue([]byte(b.String()))
	if !errors.Is(err, yamlerr.ErrRecursionLimitExceeded) {
		t.Errorf("got %v", err)
	}
}

func TestMultiDocument(t *testing.T) {
	in := "---\n1\n---\n2\n"
	got, err := UnmarshalAll[int]([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	var n int
	if err := Unmarshal([]byte(in), &n); err == nil {
		t.Error("expected an error for more than one document")
	}

	dec := NewDecoder(strings.NewReader(in))
	var res []int
	for {
		var x int
		err := dec.Decode(&x)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, x)
	}
	if diff := cmp.Diff([]int{1, 2}, res); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestRecursionGuard(t *testing.T) {
	deep := strings.Repeat("{a: ", 200) + "1" + strings.Repeat("}", 200)
	_, err := ParseValue([]byte(deep))
	if k, _ := yamlerr.KindOf(err); k != yamlerr.RecursionLimitExceeded {
		t.Fatalf("got %v", err)
	}
	if _, err := ParseValue([]byte(deep), RecursionLimit(300)); err != nil {
		t.Errorf("raised limit: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	m := ir.NewMapping()
	m.Set(ir.FromString("z"), ir.FromInt(-3))
	m.Set(ir.FromString("a"), ir.FromFloat(0.5))
	m.Set(ir.FromString("yes"), ir.FromString("no"))
	m.Set(ir.FromString("list"), ir.FromSlice([]*ir.Value{ir.Null(), ir.FromBool(true), ir.FromString("multi\nline\n")}))
	m.Set(ir.FromInt(7), ir.FromString("int key"))
	v := ir.FromMapping(m)

	d1, err := MarshalValue(v)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := MarshalValue(v)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d1, d2) {
		t.Errorf("non deterministic output:\n%s\n%s", d1, d2)
	}
	if !strings.HasPrefix(string(d1), "z: -3\na: 0.5\n") {
		t.Errorf("insertion order not kept:\n%s", d1)
	}
	back, err := ParseValue(d1)
	if err != nil {
		t.Fatalf("%s: %v", d1, err)
	}
	if !ir.Equal(v, back) {
		t.Errorf("round trip of\n%s", d1)
	}

	var check any
	if err := yaml.Unmarshal(d1, &check); err != nil {
		t.Errorf("output rejected by yaml.v3: %v", err)
	}
}

func TestCollectionKeys(t *testing.T) {
	inner := ir.NewMapping()
	inner.Set(ir.FromString("a"), ir.FromInt(1))
	m := ir.NewMapping()
	m.Set(ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromInt(2)}), ir.FromString("x"))
	m.Set(ir.FromMapping(inner), ir.FromString("y"))
	v := ir.FromMapping(m)

	d, err := MarshalValue(v)
	if err != nil {
		t.Fatal(err)
	}
	if want := "? [1, 2]\n: x\n? {a: 1}\n: y\n"; string(d) != want {
		t.Errorf("got %q, want %q", d, want)
	}
	for _, src := range []parse.Source{parse.ASTSource, parse.NodeSource} {
		back, err := ParseValue(d, ParseOptions(parse.ParseSource(src)))
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if !ir.Equal(v, back) {
			t.Errorf("%s: round trip of\n%s", src, d)
		}
	}
	back, err := ParseValue([]byte("? [1]\n: x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := back.Get(ir.FromSlice([]*ir.Value{ir.FromInt(1)})); got == nil || !ir.Equal(got, ir.FromString("x")) {
		t.Errorf("explicit key: got %v", back)
	}
}

func TestEncoder(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf, WithEnums(motion))
	for _, v := range []any{Moved{X: 1, Y: 2}, map[string]int{"a": 1}} {
		if err := enc.Encode(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	vs, err := ParseValues(buf.Bytes())
	if err != nil {
		t.Fatalf("%s: %v", buf, err)
	}
	if len(vs) != 2 {
		t.Fatalf("got %d documents from\n%s", len(vs), buf)
	}
	if vs[1].Get("a") == nil {
		t.Errorf("got %s", buf)
	}
}

func TestStructs(t *testing.T) {
	type server struct {
		Host    string            `yaml:"host"`
		Port    int               `yaml:"port"`
		Labels  map[string]string `yaml:"labels,omitempty"`
		Enabled bool              `yaml:"enabled"`
	}
	in := "host: example.org\nport: 8080\nenabled: on\nextra: 1\n"
	var s server
	if err := Unmarshal([]byte(in), &s); err != nil {
		t.Fatal(err)
	}
	want := server{Host: "example.org", Port: 8080, Enabled: true}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if err := Unmarshal([]byte(in), &s, CoreBools()); err == nil {
		t.Error("on accepted as a boolean under core bools")
	}
	if err := Unmarshal([]byte(in), &s, DisallowUnknownFields()); err == nil {
		t.Error("unknown field accepted")
	}
	v, err := ToValue(want)
	if err != nil {
		t.Fatal(err)
	}
	var back server
	if err := FromValue(v, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, back); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}
