package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/yamlir/ir"
)

func tags(cfg *TagsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tags.Parse(cc, args)
	if err != nil {
		cfg.Tags.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := readInputs(cc, args, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	p := newTagPrinter(cc.Out, cfg.colors(cc.Out))
	p.dups = cfg.Dups
	for _, in := range ins {
		for i, doc := range in.docs {
			fmt.Fprintf(cc.Out, "# %s document %d\n", in.name, i)
			if err := p.print(doc); err != nil {
				return err
			}
		}
	}
	return nil
}

type tagPrinter struct {
	w                  io.Writer
	tag, anchor, alias *color.Color
	explicit           *color.Color
	dups               bool
}

// firstSeen is the first collection with a given structure.
type firstSeen struct {
	path string
	node *ir.Node
}

func newTagPrinter(w io.Writer, colored bool) *tagPrinter {
	p := &tagPrinter{
		w:        w,
		tag:      color.New(color.FgCyan),
		anchor:   color.New(color.FgYellow),
		alias:    color.New(color.FgMagenta),
		explicit: color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.tag, p.anchor, p.alias, p.explicit} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// print writes one line per node. A node reached again through an alias
// is written as the alias and not descended into.
func (p *tagPrinter) print(doc *ir.Node) error {
	seen := map[*ir.Node]bool{}
	shapes := map[uint64][]firstSeen{}
	return doc.Walk(func(path string, n *ir.Node) (bool, error) {
		if n.Anchor != "" && seen[n] {
			_, err := fmt.Fprintf(p.w, "%s\t%s\n", path, p.alias.Sprint("*"+n.Anchor.String()))
			return false, err
		}
		seen[n] = true
		t := p.tag.Sprint(n.Tag().Short())
		if n.HasExplicitTag() {
			t = p.explicit.Sprint(n.Tag().Short())
		}
		line := path + "\t" + t
		if n.Anchor != "" {
			line += "\t" + p.anchor.Sprint("&"+n.Anchor.String())
		}
		if n.Mark != nil {
			line += "\t@" + n.Mark.String()
		}
		if p.dups && !n.IsScalar() {
			if first, ok := sameAs(shapes, path, n); ok {
				line += "\t" + p.alias.Sprint("="+first)
			}
		}
		_, err := fmt.Fprintln(p.w, line)
		return true, err
	})
}

// sameAs records n under its structural hash and returns the path of an
// earlier collection equal to it.
func sameAs(shapes map[uint64][]firstSeen, path string, n *ir.Node) (string, bool) {
	h := n.Hash()
	for _, f := range shapes[h] {
		if ir.Equal(f.node, n) {
			return f.path, true
		}
	}
	shapes[h] = append(shapes[h], firstSeen{path: path, node: n})
	return "", false
}
