package token

import "testing"

func TestNeedsQuote(t *testing.T) {
	quoted := []string{
		"", "true", "Yes", "off", "null", "~", "42", "-1", "4.5", ".inf",
		"- a", "-", "? x", ": x", "a: b", "a #b", "#x", "*x", "&x", "!x", "|", ">",
		"{", "[", "'", "\"", "%x", "@x", "`x", " lead", "trail ", "a\nb", "tab\tin",
		"---", "...", "--- x",
	}
	for _, s := range quoted {
		if !NeedsQuote(s) {
			t.Errorf("NeedsQuote(%q) = false", s)
		}
	}
	plain := []string{"hello", "hello world", "a-b", "x:y", "-a", "foo.bar", "Stopped", "é", "y", "N"}
	for _, s := range plain {
		if NeedsQuote(s) {
			t.Errorf("NeedsQuote(%q) = true", s)
		}
	}
	if !NeedsFlowQuote("a,b") || NeedsQuote("a,b") {
		t.Errorf("flow indicators")
	}
}

func TestQuote(t *testing.T) {
	if got := QuoteSingle("it's"); got != "'it''s'" {
		t.Errorf("QuoteSingle: got %s", got)
	}
	tests := []struct{ in, out string }{
		{"a\"b", `"a\"b"`},
		{"a\\b", `"a\\b"`},
		{"tab\there", `"tab\there"`},
		{"nl\n", `"nl\n"`},
		{"\x00", `"\0"`},
		{"\x1b", `"\x1B"`},
		{"\u2028", `"\u2028"`},
	}
	for _, test := range tests {
		if got := QuoteDouble(test.in); got != test.out {
			t.Errorf("QuoteDouble(%q): got %s want %s", test.in, got, test.out)
		}
	}
}

func TestLiteral(t *testing.T) {
	if !CanLiteral("a\nb\n") {
		t.Errorf("a\\nb\\n")
	}
	if CanLiteral(" a\nb") {
		t.Errorf("leading space")
	}
	if CanLiteral("a\r\nb") {
		t.Errorf("carriage return")
	}
	headers := map[string]string{
		"a\nb":     "|-",
		"a\nb\n":   "|",
		"a\nb\n\n": "|+",
	}
	for in, want := range headers {
		if got := LiteralHeader(in); got != want {
			t.Errorf("LiteralHeader(%q): got %s want %s", in, got, want)
		}
	}
}
