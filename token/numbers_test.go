package token

import (
	"errors"
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in  float64
		out string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{42, "42.0"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{0.0001, "0.0001"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e16"},
		{1.5e300, "1.5e300"},
		{1e-7, "1e-7"},
		{math.Inf(1), ".inf"},
		{math.Inf(-1), "-.inf"},
		{math.NaN(), ".nan"},
	}
	for _, test := range tests {
		got := FormatFloat(test.in)
		if got != test.out {
			t.Errorf("FormatFloat(%v): got %q want %q", test.in, got, test.out)
		}
		r := Resolve(got, YAML11)
		if r.Kind != FloatScalar {
			t.Errorf("FormatFloat(%v) = %q resolves to %s", test.in, got, r.Kind)
		}
	}
}

func TestFormatFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{3.141592653589793, 1e-300, 123456789.125, 2.5e-5, 6.02214076e23} {
		r, err := ParseNumber(FormatFloat(f))
		if err != nil {
			t.Fatal(err)
		}
		if r.Kind != FloatScalar || r.Float != f {
			t.Errorf("%v: got %+v", f, r)
		}
	}
}

func TestParseNumber(t *testing.T) {
	r, err := ParseNumber("-17")
	if err != nil || r.Kind != IntScalar || r.Int != -17 {
		t.Errorf("-17: %+v %v", r, err)
	}
	_, err = ParseNumber("007")
	if !errors.Is(err, ErrLeadingZero) {
		t.Errorf("007: got %v", err)
	}
	_, err = ParseNumber("seven")
	if !errors.Is(err, ErrNumber) {
		t.Errorf("seven: got %v", err)
	}
}
