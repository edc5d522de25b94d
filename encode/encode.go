package encode

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signadot/yamlir/debug"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
)

// Encode writes node as one YAML document.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	return EncodeAll([]*ir.Node{node}, w, opts...)
}

// EncodeAll writes nodes as a stream of documents.
func EncodeAll(nodes []*ir.Node, w io.Writer, opts ...EncodeOption) error {
	o, err := NewOptions(opts...)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	for i, n := range nodes {
		if o.Version != nil {
			fmt.Fprintf(buf, "%%YAML %s\n", o.Version)
		}
		if i > 0 || o.ExplicitStart || o.Canonical || o.Version != nil {
			buf.WriteString("---\n")
		}
		if err := encodeDoc(buf, n, &o); err != nil {
			return err
		}
		if o.ExplicitEnd {
			buf.WriteString("...\n")
		}
	}
	out := buf.String()
	if o.LineBreak != LF {
		out = strings.ReplaceAll(out, "\n", o.LineBreak.bytes())
	}
	_, err = io.WriteString(w, out)
	return err
}

func encodeDoc(buf *bytes.Buffer, n *ir.Node, o *Options) error {
	yn := ToYAML(n, *o)
	if debug.Emit() {
		debug.Logf("emit", "document %v", n)
	}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(o.Indent)
	if err := enc.Encode(yn); err != nil {
		return err
	}
	return enc.Close()
}

// MustString encodes node with opts and panics on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

// ToYAML converts n to a yaml.v3 document node under o.
func ToYAML(n *ir.Node, o Options) *yaml.Node {
	c := &converter{opts: o, seen: map[*ir.Node]*yaml.Node{}, owner: map[ir.Anchor]*ir.Node{}}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{c.node(n)}}
}

type converter struct {
	opts Options
	// seen maps anchored nodes to their emitted form.
	seen map[*ir.Node]*yaml.Node
	// owner is the node an anchor name currently refers to.
	owner map[ir.Anchor]*ir.Node
}

func (c *converter) node(n *ir.Node) *yaml.Node {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	if n.Anchor != "" {
		if yn, ok := c.seen[n]; ok && c.owner[n.Anchor] == n {
			if debug.Emit() {
				debug.Logf("emit", "alias *%s", n.Anchor)
			}
			return &yaml.Node{Kind: yaml.AliasNode, Value: string(n.Anchor), Alias: yn}
		}
	}
	yn := &yaml.Node{Tag: string(n.Tag()), Anchor: string(n.Anchor)}
	if n.Anchor != "" {
		c.seen[n] = yn
		c.owner[n.Anchor] = n
	}
	switch n.Kind {
	case ir.ScalarKind:
		c.scalar(yn, n)
	case ir.SequenceKind:
		yn.Kind = yaml.SequenceNode
		yn.Style = c.collectionStyle(n.CollectionStyle)
		yn.Content = make([]*yaml.Node, 0, len(n.Items))
		for _, item := range n.Items {
			yn.Content = append(yn.Content, c.node(item))
		}
	case ir.MappingKind:
		yn.Kind = yaml.MappingNode
		yn.Style = c.collectionStyle(n.CollectionStyle)
		pairs := n.Pairs
		if c.opts.SortKeys {
			pairs = slices.Clone(pairs)
			slices.SortStableFunc(pairs, func(a, b ir.NodePair) int {
				return ir.Compare(a.Key, b.Key)
			})
		}
		yn.Content = make([]*yaml.Node, 0, 2*len(pairs))
		for _, p := range pairs {
			yn.Content = append(yn.Content, c.node(p.Key), c.node(p.Value))
		}
	}
	return yn
}

func (c *converter) scalar(yn *yaml.Node, n *ir.Node) {
	yn.Kind = yaml.ScalarNode
	yn.Value = n.Text
	t := n.Tag()
	if t == tag.Null && n.Text == "" && n.ScalarStyle.IsPlain() {
		yn.Value = "null"
	}
	if c.opts.Canonical {
		yn.Style = yaml.TaggedStyle | yaml.DoubleQuotedStyle
		return
	}
	switch n.ScalarStyle {
	case ir.SingleQuotedStyle:
		yn.Style = yaml.SingleQuotedStyle
	case ir.DoubleQuotedStyle:
		yn.Style = yaml.DoubleQuotedStyle
	case ir.LiteralStyle:
		yn.Style = yaml.LiteralStyle
	case ir.FoldedStyle:
		yn.Style = yaml.FoldedStyle
	}
	// A non-plain scalar reads back as str unless its tag is written.
	if !n.ScalarStyle.IsPlain() && t != tag.Str {
		yn.Style |= yaml.TaggedStyle
	}
}

func (c *converter) collectionStyle(s ir.CollectionStyle) yaml.Style {
	if c.opts.Canonical {
		return yaml.TaggedStyle | yaml.FlowStyle
	}
	if s == ir.FlowStyle {
		return yaml.FlowStyle
	}
	return 0
}
