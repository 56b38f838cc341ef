package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	yml "github.com/signadot/go-yml"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/variant"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		cfg.Load.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Tags && cfg.Maps {
		return fmt.Errorf("%w: at most one of -tags and -maps", cli.ErrUsage)
	}
	opts := cfg.ymlOpts(cc.Out)
	enc := yml.NewEncoder(cc.Out, opts...)
	err = eachInput(cc, args, func(name string, r io.Reader) error {
		n := 0
		emit := func(v *ir.Value) error {
			n++
			if err := enc.EncodeValue(cfg.convert(v)); err != nil {
				return fmt.Errorf("error encoding document %d: %w", n-1, err)
			}
			return nil
		}
		read := loadAll
		if cfg.Stream {
			read = loadStream
		}
		if err := read(r, opts, emit); err != nil {
			return err
		}
		cfg.logf("loaded", "file", name, "documents", n)
		return nil
	})
	if err != nil {
		return err
	}
	return enc.Close()
}

func loadStream(r io.Reader, opts []yml.Option, emit func(*ir.Value) error) error {
	dec := yml.NewDecoder(r, opts...)
	for {
		v, err := dec.DecodeValue()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := emit(v); err != nil {
			return err
		}
	}
}

func loadAll(r io.Reader, opts []yml.Option, emit func(*ir.Value) error) error {
	d, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	vs, err := yml.ParseValues(d, opts...)
	if err != nil {
		return err
	}
	for _, v := range vs {
		if err := emit(v); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *LoadConfig) convert(v *ir.Value) *ir.Value {
	switch {
	case cfg.Tags:
		return variant.ToTagged(v)
	case cfg.Maps:
		return variant.ToSingletonMap(v)
	}
	return v
}
