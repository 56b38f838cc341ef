package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	yml "github.com/signadot/go-yml"
	"github.com/signadot/go-yml/ir"
)

// eachInput calls f with a reader for each file in files, or for the
// standard input if there are none.  "-" names the standard input.
func eachInput(cc *cli.Context, files []string, f func(name string, r io.Reader) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		if err := withInput(cc, file, f); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func withInput(cc *cli.Context, file string, f func(name string, r io.Reader) error) error {
	if file == "-" {
		return f(file, cc.In)
	}
	r, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", file, err)
	}
	defer r.Close()
	return f(file, r)
}

func readValues(cc *cli.Context, file string, opts ...yml.Option) ([]*ir.Value, error) {
	var res []*ir.Value
	err := withInput(cc, file, func(_ string, r io.Reader) error {
		d, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("error reading: %w", err)
		}
		res, err = yml.ParseValues(d, opts...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return res, nil
}
