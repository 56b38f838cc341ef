package debug

import (
	"bytes"
	"testing"
)

func TestBoolEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"nope", false},
	}
	for _, tc := range tests {
		t.Setenv("YML_DEBUG_TEST", tc.val)
		if got := boolEnv("YML_DEBUG_TEST"); got != tc.want {
			t.Errorf("%q: got %v want %v", tc.val, got, tc.want)
		}
	}
}

func TestLogAny(t *testing.T) {
	buf := &bytes.Buffer{}
	logAny(buf, map[string]int{"a": 1})
	logAny(buf, make(chan int))
	lines := bytes.Split(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\n"))
	if len(lines) != 2 || string(lines[0]) != `{"a":1}` {
		t.Errorf("got %q", buf)
	}
	if !bytes.HasPrefix(lines[1], []byte("0x")) {
		t.Errorf("fallback: got %q", lines[1])
	}
}
