package token

import "testing"

func TestPosDoc(t *testing.T) {
	doc := NewPosDoc([]byte("a: 1\nbb: 2\n\nc: 3"))
	tests := []struct {
		off       int
		line, col int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 1, 5},
		{5, 2, 1},
		{9, 2, 5},
		{11, 3, 1},
		{12, 4, 1},
		{15, 4, 4},
	}
	for _, test := range tests {
		m := doc.Mark(test.off)
		if m.Line != test.line || m.Column != test.col {
			t.Errorf("Mark(%d): got %s want line %d column %d", test.off, m, test.line, test.col)
		}
		if off := doc.Offset(m.Line, m.Column); off != test.off {
			t.Errorf("Offset(%d, %d): got %d want %d", m.Line, m.Column, off, test.off)
		}
	}
}

func TestPosDocAppend(t *testing.T) {
	doc := &PosDoc{}
	doc.Append([]byte("x:\n"))
	doc.Append([]byte("  - 1\n  - 2\n"))
	m := doc.Mark(doc.Offset(3, 3))
	if m.Line != 3 || m.Column != 3 {
		t.Errorf("got %s", m)
	}
	if doc.Len() != 15 {
		t.Errorf("len: got %d", doc.Len())
	}
	for _, tc := range []struct {
		off  int
		want string
	}{
		{5, "x:\\n  - 1\\n "},
		{8, "  - 1\\n  - "},
		{14, "  - 2\\n"},
	} {
		if s := doc.Pos(tc.off).Sample(); s != tc.want {
			t.Errorf("sample at %d: got %q want %q", tc.off, s, tc.want)
		}
	}
}

func TestRuneOffset(t *testing.T) {
	d := NewPosDoc([]byte("é: 1\nb: ü\n"))
	if got := d.RuneOffset(1, 2); got != 2 {
		t.Errorf("got %d", got)
	}
	if got := d.RuneOffset(2, 4); got != 9 {
		t.Errorf("got %d", got)
	}
	m := d.Mark(d.RuneOffset(2, 4))
	if m.Line != 2 || m.Column != 4 {
		t.Errorf("got %s", m)
	}
}
