package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/ir"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if _, err := encode.NewOptions(cfg.encOpts()...); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ins, err := readInputs(cc, args, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	var docs []*ir.Node
	for _, in := range ins {
		docs = append(docs, in.docs...)
	}
	if err := encode.EncodeAll(docs, cc.Out, cfg.encOpts()...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
