package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/parse"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a JSON patch argument", cli.ErrUsage)
	}
	ops, err := getPatch(cfg, args[0])
	if err != nil {
		return err
	}
	ins, err := readInputs(cc, args[1:], cfg.parseOpts()...)
	if err != nil {
		return err
	}
	var out []*ir.Node
	for _, in := range ins {
		for i, doc := range in.docs {
			res, err := applyPatch(ops, doc, cfg.parseOpts()...)
			if err != nil {
				return fmt.Errorf("error patching %s document %d: %w", in.name, i, err)
			}
			out = append(out, res)
		}
	}
	if err := encode.EncodeAll(out, cc.Out); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// getPatch reads the patch, given inline or as a file, in YAML or JSON.
func getPatch(cfg *PatchConfig, arg string) (jsonpatch.Patch, error) {
	d := []byte(arg)
	if cfg.File {
		var err error
		d, err = os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
	}
	n, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing patch: %w", cli.ErrUsage, err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: empty patch", cli.ErrUsage)
	}
	j, err := toJSON(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ops, err := jsonpatch.DecodePatch(j)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return ops, nil
}

func applyPatch(ops jsonpatch.Patch, doc *ir.Node, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := toJSON(doc)
	if err != nil {
		return nil, err
	}
	res, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return parse.Parse(res, opts...)
}
