package main

import (
	"fmt"
	"io"

	jsonpatch "github.com/evanphx/json-patch"
	json "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"

	yml "github.com/signadot/go-yml"
	"github.com/signadot/go-yml/ir"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file and optional files to which to apply it", cli.ErrUsage)
	}
	opts := cfg.ymlOpts(cc.Out)
	p, err := readPatch(cc, args[0], opts)
	if err != nil {
		return err
	}
	enc := yml.NewEncoder(cc.Out, opts...)
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
			res, err := applyPatch(p, v)
			if err != nil {
				return fmt.Errorf("error patching document %d: %w", i, err)
			}
			if err := enc.EncodeValue(res); err != nil {
				return err
			}
		}
		cfg.logf("patched", "file", name, "documents", len(vs))
		return nil
	})
	if err != nil {
		return err
	}
	return enc.Close()
}

// readPatch reads a JSON patch.  JSON is YAML, so the patch may be
// written in either.
func readPatch(cc *cli.Context, file string, opts []yml.Option) (jsonpatch.Patch, error) {
	vs, err := readValues(cc, file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if len(vs) != 1 {
		return nil, fmt.Errorf("%w: patch %s has %d documents", cli.ErrUsage, file, len(vs))
	}
	d, err := json.Marshal(vs[0].ToAny())
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return p, nil
}

// applyPatch applies p to v through json.  Mapping keys of the result
// are sorted.
func applyPatch(p jsonpatch.Patch, v *ir.Value) (*ir.Value, error) {
	d, err := json.Marshal(v.ToAny())
	if err != nil {
		return nil, err
	}
	d, err = p.Apply(d)
	if err != nil {
		return nil, err
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		return nil, err
	}
	return ir.FromAny(res)
}
