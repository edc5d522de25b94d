package main

import (
	"bytes"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/parse"
	"github.com/signadot/yamlir/represent"
	"github.com/signadot/yamlir/resolve"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	r, err := resolve.ByName(cfg.Schema)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ins, err := readInputs(cc, args, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	colored := cfg.colors(cc.Out)
	differs := 0
	for _, in := range ins {
		for i, doc := range in.docs {
			first, second, err := checkDoc(doc, r)
			if err != nil {
				return fmt.Errorf("error checking %s document %d: %w", in.name, i, err)
			}
			if first == second {
				continue
			}
			differs++
			fmt.Fprintf(cc.Out, "# %s document %d does not round trip\n", in.name, i)
			fmt.Fprintln(cc.Out, textDiff(first, second, colored))
		}
	}
	if differs > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDoc emits the represented value of doc, reparses that text and
// emits it again. A stable document gives the same text twice.
func checkDoc(doc *ir.Node, r resolve.Resolver) (string, string, error) {
	first, err := roundTrip(doc, r)
	if err != nil {
		return "", "", err
	}
	again, err := parse.ParseString(first, parse.ParseResolver(r))
	if err != nil {
		return "", "", fmt.Errorf("error reparsing %q: %w", first, err)
	}
	if again == nil {
		again = ir.Null()
	}
	second, err := roundTrip(again, r)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}

func roundTrip(n *ir.Node, r resolve.Resolver) (string, error) {
	v, err := construct.Default.Value(n)
	if err != nil {
		return "", err
	}
	rep := &represent.Representer{Resolver: r}
	rn, err := rep.Represent(v)
	if err != nil {
		return "", err
	}
	buf := &bytes.Buffer{}
	if err := encode.Encode(rn, buf, encode.SortKeys(true)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func textDiff(a, b string, colored bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if colored {
		return dmp.DiffPrettyText(diffs)
	}
	return dmp.PatchToText(dmp.PatchMake(a, diffs))
}
