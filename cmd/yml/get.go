package main

import (
	"fmt"
	"io"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	yml "github.com/signadot/go-yml"
	"github.com/signadot/go-yml/ir"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an expression", cli.ErrUsage)
	}
	prog, err := compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts := cfg.ymlOpts(cc.Out)
	enc := yml.NewEncoder(cc.Out, opts...)
	allTrue := true
	err = eachInput(cc, args[1:], func(name string, r io.Reader) error {
		d, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("error reading: %w", err)
		}
		vs, err := yml.ParseValues(d, opts...)
		if err != nil {
			return err
		}
		for i, v := range vs {
			res, err := query(prog, v)
			if err != nil {
				return fmt.Errorf("error querying document %d: %w", i, err)
			}
			if cfg.Quiet {
				allTrue = allTrue && ir.Truth(res)
				continue
			}
			if err := enc.EncodeValue(res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if !allTrue {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// compile leaves doc untyped: documents may be any kind of value.
func compile(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.AllowUndefinedVariables())
}

func query(prog *vm.Program, doc *ir.Value) (*ir.Value, error) {
	out, err := expr.Run(prog, map[string]any{"doc": doc.ToAny()})
	if err != nil {
		return nil, err
	}
	return ir.FromAny(out)
}
