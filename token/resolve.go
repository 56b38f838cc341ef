package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScalarKind is the type a plain scalar resolves to.
type ScalarKind int

const (
	NullScalar ScalarKind = iota
	BoolScalar
	IntScalar
	UintScalar
	FloatScalar
	StringScalar
)

func (k ScalarKind) String() string {
	s, ok := map[ScalarKind]string{
		NullScalar:   "null",
		BoolScalar:   "bool",
		IntScalar:    "int",
		UintScalar:   "uint",
		FloatScalar:  "float",
		StringScalar: "string",
	}[k]
	if ok {
		return s
	}
	return "<unknown scalar kind>"
}

// BoolLiterals selects which plain scalars resolve to booleans.
type BoolLiterals int

const (
	// YAML11 accepts true/false/yes/no/on/off in any letter case.
	YAML11 BoolLiterals = iota
	// Core accepts only true and false, in any letter case.
	Core
)

func (b BoolLiterals) String() string {
	switch b {
	case YAML11:
		return "yaml11"
	case Core:
		return "core"
	default:
		return "<unknown bool literals>"
	}
}

func (b BoolLiterals) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BoolLiterals) UnmarshalText(d []byte) error {
	switch strings.ToLower(string(d)) {
	case "yaml11", "1.1":
		*b = YAML11
	case "core", "1.2":
		*b = Core
	default:
		return fmt.Errorf("unrecognized bool literals %q", d)
	}
	return nil
}

// Resolved is the typed reading of a plain scalar.
type Resolved struct {
	Kind  ScalarKind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
}

// Resolve applies plain scalar typing to s: null, bool, integer and
// float forms are recognized in that order and anything else is a string.
func Resolve(s string, bl BoolLiterals) Resolved {
	if IsNull(s) {
		return Resolved{Kind: NullScalar}
	}
	if b, ok := ParseBool(s, bl); ok {
		return Resolved{Kind: BoolScalar, Bool: b}
	}
	if neg, u, ok := ParseInteger(s); ok {
		if neg && u != 0 {
			return Resolved{Kind: IntScalar, Int: int64(-u)}
		}
		return Resolved{Kind: UintScalar, Uint: u}
	}
	if f, ok := ParseFloat(s); ok {
		return Resolved{Kind: FloatScalar, Float: f}
	}
	return Resolved{Kind: StringScalar}
}

// IsNull reports whether s is one of the plain null forms.
func IsNull(s string) bool {
	return s == "" || s == "~" || strings.EqualFold(s, "null")
}

// ParseBool parses the boolean literals accepted under bl.
func ParseBool(s string, bl BoolLiterals) (bool, bool) {
	if len(s) > 5 || len(s) < 2 {
		return false, false
	}
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	if bl == Core {
		return false, false
	}
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, true
	case "no", "off":
		return false, true
	}
	return false, false
}

// ParseInteger parses the integer grammar: an optional sign followed by
// decimal digits without a leading zero, or a 0x, 0o or 0b prefixed
// literal.  It reports the sign and magnitude separately; negative
// magnitudes beyond the int64 range and positive ones beyond uint64 fail.
func ParseInteger(s string) (neg bool, mag uint64, ok bool) {
	digits := s
	switch {
	case strings.HasPrefix(digits, "-"):
		neg = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}
	if digits == "" {
		return false, 0, false
	}
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 10 {
			digits = digits[2:]
		}
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i], base) {
			return false, 0, false
		}
	}
	if base == 10 && len(digits) > 1 && digits[0] == '0' {
		return false, 0, false
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return false, 0, false
	}
	if neg && u > 1<<63 {
		return false, 0, false
	}
	return neg, u, true
}

func isDigit(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return c >= '0' && c <= '9'
	}
}

// ParseFloat parses the float grammar: an optional sign, a decimal
// mantissa with an optional fraction and an optional exponent, or one
// of the case-folded .inf and .nan forms.
func ParseFloat(s string) (float64, bool) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return math.Inf(1), true
	case "-.inf":
		return math.Inf(-1), true
	case ".nan":
		return math.NaN(), true
	}
	if !floatGrammar(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func floatGrammar(s string) bool {
	i, n := 0, len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	nDigits := 0
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
		nDigits++
	}
	if nDigits > 1 && s[start] == '0' {
		return false
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			nDigits++
		}
	}
	if nDigits == 0 {
		return false
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		nExp := 0
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			nExp++
		}
		if nExp == 0 {
			return false
		}
	}
	return i == n
}
