package ir

import (
	"cmp"
	"math"

	"github.com/signadot/go-yml/token"
)

type numberKind uint8

const (
	// zero value is the unsigned integer 0
	uintKind numberKind = iota
	intKind
	floatKind
)

// Number is a YAML number: a signed or unsigned 64 bit integer or a
// 64 bit float.  Non-negative integers are always held as unsigned so
// that 1 written as int64 and as uint64 are the same number.
type Number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func Int(i int64) Number {
	if i >= 0 {
		return Number{kind: uintKind, u: uint64(i)}
	}
	return Number{kind: intKind, i: i}
}

func Uint(u uint64) Number {
	return Number{kind: uintKind, u: u}
}

func Float(f float64) Number {
	return Number{kind: floatKind, f: f}
}

// ParseNumber reads s as an integer or float in plain scalar syntax.
func ParseNumber(s string) (Number, error) {
	r, err := token.ParseNumber(s)
	if err != nil {
		return Number{}, err
	}
	switch r.Kind {
	case token.IntScalar:
		return Int(r.Int), nil
	case token.UintScalar:
		return Uint(r.Uint), nil
	default:
		return Float(r.Float), nil
	}
}

func (n Number) IsInteger() bool { return n.kind != floatKind }
func (n Number) IsFloat() bool   { return n.kind == floatKind }

// IsI64 reports whether n is an integer representable as int64.
func (n Number) IsI64() bool {
	switch n.kind {
	case intKind:
		return true
	case uintKind:
		return n.u <= math.MaxInt64
	}
	return false
}

// IsU64 reports whether n is a non-negative integer.
func (n Number) IsU64() bool { return n.kind == uintKind }

func (n Number) IsF64() bool { return n.kind == floatKind }

func (n Number) AsInt64() (int64, bool) {
	switch n.kind {
	case intKind:
		return n.i, true
	case uintKind:
		if n.u <= math.MaxInt64 {
			return int64(n.u), true
		}
	}
	return 0, false
}

func (n Number) AsUint64() (uint64, bool) {
	if n.kind == uintKind {
		return n.u, true
	}
	return 0, false
}

// AsFloat64 returns n as a float64.  Integers convert, possibly losing
// precision.
func (n Number) AsFloat64() (float64, bool) {
	switch n.kind {
	case intKind:
		return float64(n.i), true
	case uintKind:
		return float64(n.u), true
	default:
		return n.f, true
	}
}

func (n Number) IsNaN() bool {
	return n.kind == floatKind && math.IsNaN(n.f)
}

func (n Number) IsInf() bool {
	return n.kind == floatKind && math.IsInf(n.f, 0)
}

func (n Number) String() string {
	switch n.kind {
	case intKind:
		return token.FormatInt(n.i)
	case uintKind:
		return token.FormatUint(n.u)
	default:
		return token.FormatFloat(n.f)
	}
}

// Equal reports whether n and o have the same kind and value.  All NaNs
// are equal.
func (n Number) Equal(o Number) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case intKind:
		return n.i == o.i
	case uintKind:
		return n.u == o.u
	default:
		if math.IsNaN(n.f) {
			return math.IsNaN(o.f)
		}
		return n.f == o.f
	}
}

// Compare orders negative integers before non-negative ones and all
// integers before floats.  Floats are ordered numerically with NaN last.
func (n Number) Compare(o Number) int {
	rn, ro := n.rank(), o.rank()
	if rn != ro {
		return cmp.Compare(rn, ro)
	}
	switch n.kind {
	case intKind:
		return cmp.Compare(n.i, o.i)
	case uintKind:
		return cmp.Compare(n.u, o.u)
	}
	nn, on := math.IsNaN(n.f), math.IsNaN(o.f)
	switch {
	case nn && on:
		return 0
	case nn:
		return 1
	case on:
		return -1
	}
	return cmp.Compare(n.f, o.f)
}

func (n Number) rank() int {
	switch n.kind {
	case intKind:
		return 0
	case uintKind:
		return 1
	default:
		return 2
	}
}
