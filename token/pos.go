package token

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Mark is a position in YAML input: a 0-based byte offset
// and the 1-based line and column it falls on.
type Mark struct {
	Index  int `json:"index"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsZero reports whether m carries no position.
func (m Mark) IsZero() bool {
	return m.Line == 0
}

func (m Mark) String() string {
	return fmt.Sprintf("line %d column %d", m.Line, m.Column)
}

// PosDoc indexes the newlines of a document so that offsets can be
// translated to lines and columns.  It may be grown incrementally with
// Append when the input is read as a stream.
type PosDoc struct {
	d []byte
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{}
	p.Append(d)
	return p
}

// Append adds d to the end of the indexed input.
func (p *PosDoc) Append(d []byte) {
	base := len(p.d)
	p.d = append(p.d, d...)
	for i, c := range d {
		if c == '\n' {
			p.nl(base + i)
		}
	}
}

func (p *PosDoc) nl(i int) {
	if len(p.n) > 0 && p.n[len(p.n)-1] == i {
		return
	}
	p.n = append(p.n, i)
}

// Bytes returns the indexed input.
func (p *PosDoc) Bytes() []byte {
	return p.d
}

// Len returns the number of bytes indexed.
func (p *PosDoc) Len() int {
	return len(p.d)
}

// LineCol returns the 0-based line and column of off.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	switch di {
	case 0:
		return 0, off
	default:
		return di, off - p.n[di-1] - 1
	}
}

// Offset returns the byte offset of the 1-based line and column.
func (p *PosDoc) Offset(line, col int) int {
	if line <= 0 {
		return 0
	}
	start := 0
	if line > 1 {
		if line-2 >= len(p.n) {
			return len(p.d)
		}
		start = p.n[line-2] + 1
	}
	return min(start+max(col-1, 0), len(p.d))
}

// RuneOffset is Offset for a column counted in characters rather than
// bytes.
func (p *PosDoc) RuneOffset(line, col int) int {
	off := p.Offset(line, 1)
	for i := 1; i < col && off < len(p.d) && p.d[off] != '\n'; i++ {
		_, sz := utf8.DecodeRune(p.d[off:])
		off += sz
	}
	return off
}

// Mark returns the mark for offset off.
func (p *PosDoc) Mark(off int) Mark {
	l, c := p.LineCol(off)
	return Mark{Index: off, Line: l + 1, Column: c + 1}
}

func (d *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: d,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

// Sample returns a short escaped excerpt of the input around p.
func (p *Pos) Sample() string {
	lo := min(max(0, p.I-5), len(p.D.d))
	hi := min(p.I+5, len(p.D.d))
	sample := strconv.Quote(string(p.D.d[lo:hi]))
	return sample[1 : len(sample)-1]
}

func (p Pos) String() string {
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", p.Sample(), p.I, p.Line()+1, p.Col()+1)
}
