package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
)

func irDump(cfg *IRConfig, cc *cli.Context, args []string) error {
	args, err := cfg.IR.Parse(cc, args)
	if err != nil {
		cfg.IR.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	opts := cfg.ymlOpts(cc.Out)
	for _, file := range args {
		vs, err := readValues(cc, file, opts...)
		if err != nil {
			return err
		}
		for i, v := range vs {
			d, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return fmt.Errorf("internal error on document %d: %w", i, err)
			}
			if _, err := cc.Out.Write(append(d, '\n')); err != nil {
				return err
			}
		}
	}
	return nil
}
