package token

import (
	"strings"
	"unicode"
	"unicode/utf8"

	gtoken "github.com/goccy/go-yaml/token"
)

// NeedsQuote reports whether s would read back as something other than
// the same string if written as a plain scalar.
func NeedsQuote(s string) bool {
	if s == "" {
		return true
	}
	if Resolve(s, YAML11).Kind != StringScalar {
		return true
	}
	switch s {
	case "y", "Y", "n", "N":
		// strings under both bool literal sets; goccy lists them as
		// legacy bools
		return false
	}
	if gtoken.IsNeedQuoted(s) {
		return true
	}
	if strings.HasPrefix(s, "---") || strings.HasPrefix(s, "...") {
		return true
	}
	switch s[0] {
	case '?', ':', '-':
		if len(s) == 1 || s[1] == ' ' || s[1] == '\t' {
			return true
		}
	case '\t':
		return true
	}
	if last := s[len(s)-1]; last == '\t' {
		return true
	}
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			return true
		}
		if !isPrintable(r) {
			return true
		}
	}
	return false
}

// NeedsFlowQuote is NeedsQuote for scalars inside flow collections,
// where the flow indicators are significant anywhere in the text.
func NeedsFlowQuote(s string) bool {
	return NeedsQuote(s) || strings.ContainsAny(s, ",[]{}")
}

// NeedsDoubleQuote reports whether s holds characters that only the
// double quoted style can carry on a single line.
func NeedsDoubleQuote(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if r == '\t' {
			continue
		}
		if !isPrintable(r) {
			return true
		}
	}
	return false
}

// CanLiteral reports whether s can be written as a literal block scalar.
func CanLiteral(s string) bool {
	if !strings.ContainsRune(s, '\n') || !utf8.ValidString(s) {
		return false
	}
	first := strings.TrimLeft(s, "\n")
	if first == "" || first[0] == ' ' || first[0] == '\t' {
		return false
	}
	for _, r := range s {
		if r == '\n' || r == '\t' {
			continue
		}
		if !isPrintable(r) {
			return false
		}
	}
	return true
}

// LiteralHeader returns the block indicator with the chomping mode
// that preserves the trailing newlines of s.
func LiteralHeader(s string) string {
	if h := gtoken.LiteralBlockHeader(s); h != "" {
		return h
	}
	return "|-"
}

func QuoteSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteDouble writes s as a double quoted scalar.  Bytes of invalid
// UTF-8 are escaped as \xNN, which reads back as the code point U+00NN.
func QuoteDouble(s string) string {
	d := make([]byte, 1, len(s)+2)
	d[0] = '"'
	for i, r := range s {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		case 0:
			d = append(d, '\\', '0')
		case utf8.RuneError:
			if _, sz := utf8.DecodeRuneInString(s[i:]); sz == 1 {
				d = appendHex(d, 'x', uint32(s[i]), 2)
				continue
			}
			d = utf8.AppendRune(d, r)
		default:
			switch {
			case isPrintable(r):
				d = utf8.AppendRune(d, r)
			case r <= 0xff:
				d = appendHex(d, 'x', uint32(r), 2)
			case r <= 0xffff:
				d = appendHex(d, 'u', uint32(r), 4)
			default:
				d = appendHex(d, 'U', uint32(r), 8)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

const hexDigits = "0123456789ABCDEF"

func appendHex(d []byte, esc byte, v uint32, n int) []byte {
	d = append(d, '\\', esc)
	for i := n - 1; i >= 0; i-- {
		d = append(d, hexDigits[(v>>(4*uint(i)))&0xf])
	}
	return d
}

func isPrintable(r rune) bool {
	if r == '\ufeff' {
		return false
	}
	return r == ' ' || unicode.IsPrint(r)
}
