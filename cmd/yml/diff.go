package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	yml "github.com/signadot/go-yml"
	"github.com/signadot/go-yml/ir"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	opts := cfg.ymlOpts(cc.Out)
	a, err := readValues(cc, args[0], opts...)
	if err != nil {
		return err
	}
	b, err := readValues(cc, args[1], opts...)
	if err != nil {
		return err
	}
	if equalDocs(a, b) {
		return nil
	}
	// line diffs are computed on the plain encoding
	plain := []yml.Option{yml.EncodeOptions(cfg.layoutOpts()...)}
	ta, err := encodeDocs(a, plain)
	if err != nil {
		return err
	}
	tb, err := encodeDocs(b, plain)
	if err != nil {
		return err
	}
	if err := writeLineDiff(cc.Out, ta, tb, cfg.Color || colorTerminal(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func equalDocs(a, b []*ir.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ir.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func encodeDocs(vs []*ir.Value, opts []yml.Option) (string, error) {
	buf := &strings.Builder{}
	if err := yml.EncodeValues(buf, vs, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeLineDiff(w io.Writer, a, b string, colored bool) error {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		del = color.New(color.FgRed).Sprint
		ins = color.New(color.FgGreen).Sprint
	}
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, paint = "- ", del
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+ ", ins
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			if _, err := io.WriteString(w, paint(prefix+line)); err != nil {
				return err
			}
		}
	}
	return nil
}
