package main

import (
	"encoding/json"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/scott-cotton/cli"

	"github.com/signadot/yamlir/construct"
)

func constructCmd(cfg *ConstructConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Construct.Parse(cc, args)
	if err != nil {
		cfg.Construct.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := readInputs(cc, args, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	sc := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
	for _, in := range ins {
		for i, doc := range in.docs {
			v, err := construct.Default.Value(doc)
			if err != nil {
				return fmt.Errorf("error constructing %s document %d: %w", in.name, i, err)
			}
			if cfg.Spew {
				sc.Fdump(cc.Out, v)
				continue
			}
			d, err := json.MarshalIndent(jsonValue(v), "", "  ")
			if err != nil {
				return fmt.Errorf("error encoding %s document %d: %w", in.name, i, err)
			}
			if _, err := fmt.Fprintf(cc.Out, "%s\n", d); err != nil {
				return err
			}
		}
	}
	return nil
}
