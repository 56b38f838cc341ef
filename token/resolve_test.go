package token

import (
	"math"
	"testing"
)

type resolveTest struct {
	in   string
	kind ScalarKind
}

func TestResolve(t *testing.T) {
	tests := []resolveTest{
		{"", NullScalar},
		{"~", NullScalar},
		{"null", NullScalar},
		{"Null", NullScalar},
		{"NULL", NullScalar},
		{"nULl", NullScalar},
		{"true", BoolScalar},
		{"False", BoolScalar},
		{"yes", BoolScalar},
		{"NO", BoolScalar},
		{"On", BoolScalar},
		{"off", BoolScalar},
		{"y", StringScalar},
		{"42", UintScalar},
		{"+42", UintScalar},
		{"-42", IntScalar},
		{"-0", UintScalar},
		{"0", UintScalar},
		{"0x1f", UintScalar},
		{"0o17", UintScalar},
		{"0b101", UintScalar},
		{"0x", StringScalar},
		{"012", StringScalar},
		{"1_000", StringScalar},
		{"42.0", FloatScalar},
		{"1e5", FloatScalar},
		{"-1.5E-3", FloatScalar},
		{".5", FloatScalar},
		{"1.", FloatScalar},
		{"01.5", StringScalar},
		{".inf", FloatScalar},
		{"-.Inf", FloatScalar},
		{"+.INF", FloatScalar},
		{".NaN", FloatScalar},
		{"inf", StringScalar},
		{"nan", StringScalar},
		{"1e", StringScalar},
		{".", StringScalar},
		{"18446744073709551616", FloatScalar},
		{"hello", StringScalar},
		{"12:30", StringScalar},
	}
	for _, test := range tests {
		got := Resolve(test.in, YAML11)
		if got.Kind != test.kind {
			t.Errorf("Resolve(%q): got %s want %s", test.in, got.Kind, test.kind)
		}
	}
}

func TestResolveCoreBools(t *testing.T) {
	for _, in := range []string{"yes", "no", "on", "off", "Yes", "OFF"} {
		if got := Resolve(in, Core); got.Kind != StringScalar {
			t.Errorf("Resolve(%q, Core): got %s", in, got.Kind)
		}
	}
	for _, in := range []string{"true", "TRUE", "False"} {
		if got := Resolve(in, Core); got.Kind != BoolScalar {
			t.Errorf("Resolve(%q, Core): got %s", in, got.Kind)
		}
	}
}

func TestResolveValues(t *testing.T) {
	r := Resolve("-9223372036854775808", YAML11)
	if r.Kind != IntScalar || r.Int != math.MinInt64 {
		t.Errorf("min int64: got %+v", r)
	}
	r = Resolve("-9223372036854775809", YAML11)
	if r.Kind != FloatScalar {
		t.Errorf("below min int64: got %+v", r)
	}
	r = Resolve("18446744073709551615", YAML11)
	if r.Kind != UintScalar || r.Uint != math.MaxUint64 {
		t.Errorf("max uint64: got %+v", r)
	}
	r = Resolve("0xff", YAML11)
	if r.Uint != 255 {
		t.Errorf("0xff: got %+v", r)
	}
	r = Resolve("-.inf", YAML11)
	if !math.IsInf(r.Float, -1) {
		t.Errorf("-.inf: got %+v", r)
	}
	r = Resolve(".nan", YAML11)
	if !math.IsNaN(r.Float) {
		t.Errorf(".nan: got %+v", r)
	}
	r = Resolve("ON", YAML11)
	if !r.Bool {
		t.Errorf("ON: got %+v", r)
	}
}

func TestBoolLiteralsText(t *testing.T) {
	var b BoolLiterals
	if err := b.UnmarshalText([]byte("core")); err != nil {
		t.Fatal(err)
	}
	if b != Core {
		t.Errorf("got %s", b)
	}
	if err := b.UnmarshalText([]byte("strict")); err == nil {
		t.Errorf("expected error")
	}
}
