package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/gomap"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/resolve"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		cfg.Eval.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	r, err := resolve.ByName(cfg.Schema)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ins, err := readInputs(cc, args[1:], cfg.parseOpts()...)
	if err != nil {
		return err
	}
	var out []*ir.Node
	for _, in := range ins {
		for i, doc := range in.docs {
			res, err := evalDoc(args[0], doc, r)
			if err != nil {
				return fmt.Errorf("error evaluating %s document %d: %w", in.name, i, err)
			}
			out = append(out, res)
		}
	}
	if err := encode.EncodeAll(out, cc.Out); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// evalDoc runs code with the constructed value of doc bound to doc and
// returns the result as a node.
func evalDoc(code string, doc *ir.Node, r resolve.Resolver) (*ir.Node, error) {
	v, err := construct.Default.Value(doc)
	if err != nil {
		return nil, err
	}
	env := map[string]any{"doc": jsonValue(v)}
	prg, err := expr.Compile(code, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	return gomap.EncodeNode(res, gomap.WithResolver(r))
}
