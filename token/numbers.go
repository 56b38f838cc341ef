package token

import (
	"math"
	"strconv"
	"strings"
)

func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func FormatUint(u uint64) string {
	return strconv.FormatUint(u, 10)
}

// FormatFloat renders f so that it always reads back as a float: the
// result carries a decimal point or an exponent, or is one of .inf,
// -.inf and .nan.  Decimal exponents in [-5, 16) are written in
// positional form and the rest in shortest scientific form.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	ei := strings.IndexByte(sci, 'e')
	exp, _ := strconv.Atoi(sci[ei+1:])
	if f == 0 || (exp >= -5 && exp < 16) {
		v := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsRune(v, '.') {
			v += ".0"
		}
		return v
	}
	mant := sci[:ei]
	return mant + "e" + strconv.Itoa(exp)
}

// ParseNumber reads s as an integer or a float under the same grammar
// plain scalars are resolved with.
func ParseNumber(s string) (Resolved, error) {
	if neg, u, ok := ParseInteger(s); ok {
		if neg && u != 0 {
			return Resolved{Kind: IntScalar, Int: int64(-u)}, nil
		}
		return Resolved{Kind: UintScalar, Uint: u}, nil
	}
	if f, ok := ParseFloat(s); ok {
		return Resolved{Kind: FloatScalar, Float: f}, nil
	}
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		return Resolved{}, &NumberError{Text: s, Err: ErrLeadingZero}
	}
	return Resolved{}, &NumberError{Text: s, Err: ErrNumber}
}
