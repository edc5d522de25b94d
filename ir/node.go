package ir

import (
	"github.com/signadot/yamlir/ir/tag"
	"github.com/signadot/yamlir/resolve"
)

// Pair is an ordered key/value tuple.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// NodePair is a mapping entry.
type NodePair = Pair[*Node, *Node]

type Node struct {
	Kind Kind

	// Scalar
	Text        string
	ScalarStyle ScalarStyle

	// Mapping
	Pairs []NodePair

	// Sequence
	Items []*Node

	// Mapping and Sequence
	CollectionStyle CollectionStyle

	Anchor Anchor
	Mark   *Mark

	tag Tag
}

// NewScalar creates a scalar whose tag is resolved from its text by the
// default resolver on first use.
func NewScalar(text string, style ScalarStyle) *Node {
	return &Node{Kind: ScalarKind, Text: text, ScalarStyle: style}
}

// NewTaggedScalar creates a scalar with an explicit tag.
func NewTaggedScalar(text string, name tag.Name, style ScalarStyle) *Node {
	return NewScalar(text, style).WithTag(name)
}

func NewMapping(pairs ...NodePair) *Node {
	return &Node{Kind: MappingKind, Pairs: pairs}
}

func NewSequence(items ...*Node) *Node {
	return &Node{Kind: SequenceKind, Items: items}
}

// Null returns an explicitly tagged null scalar.
func Null() *Node {
	return NewTaggedScalar("null", tag.Null, PlainStyle)
}

// NewPair is a shorthand for a mapping entry.
func NewPair(key, value *Node) NodePair {
	return NodePair{Key: key, Value: value}
}

// WithTag sets an explicit tag. It is meant for building nodes; once a
// node's tag has been observed it must not change.
func (n *Node) WithTag(name tag.Name) *Node {
	n.tag = ExplicitTag(name)
	return n
}

// WithResolver makes the node's tag implicit, to be resolved by r.
func (n *Node) WithResolver(r resolve.Resolver) *Node {
	n.tag = ImplicitTag(r)
	return n
}

func (n *Node) WithAnchor(a Anchor) *Node {
	n.Anchor = a
	return n
}

func (n *Node) WithMark(m Mark) *Node {
	n.Mark = &m
	return n
}

func (n *Node) WithScalarStyle(s ScalarStyle) *Node {
	n.ScalarStyle = s
	return n
}

func (n *Node) WithCollectionStyle(s CollectionStyle) *Node {
	n.CollectionStyle = s
	return n
}

// Tag returns the node's tag name, resolving and memoizing it on first
// call.
func (n *Node) Tag() tag.Name {
	if !n.tag.resolved {
		n.tag.name = n.resolveTag()
		n.tag.resolved = true
	}
	return n.tag.name
}

// TagInfo returns the resolved Tag.
func (n *Node) TagInfo() Tag {
	n.Tag()
	return n.tag
}

// HasExplicitTag reports whether the tag came from the source or the API
// rather than from inference.
func (n *Node) HasExplicitTag() bool {
	return n.tag.explicit
}

func (n *Node) resolveTag() tag.Name {
	switch n.Kind {
	case MappingKind:
		return tag.Map
	case SequenceKind:
		return tag.Seq
	}
	if !n.ScalarStyle.IsPlain() {
		return tag.Str
	}
	r := n.tag.resolver
	if r == nil {
		r = resolve.Default
	}
	return r.ResolveScalar(n.Text)
}

// Retagged returns a shallow copy of n carrying an explicit tag.
func (n *Node) Retagged(name tag.Name) *Node {
	c := *n
	c.tag = ExplicitTag(name)
	return &c
}

// Scalar returns the text of a scalar node and panics on other kinds.
func (n *Node) Scalar() string {
	if n.Kind != ScalarKind {
		contractPanic("Scalar", "%s node accessed as scalar%s", n.Kind, n.markSuffix())
	}
	return n.Text
}

// Mapping returns the pairs of a mapping node and panics on other kinds.
func (n *Node) Mapping() []NodePair {
	if n.Kind != MappingKind {
		contractPanic("Mapping", "%s node accessed as mapping%s", n.Kind, n.markSuffix())
	}
	return n.Pairs
}

// Sequence returns the items of a sequence node and panics on other kinds.
func (n *Node) Sequence() []*Node {
	if n.Kind != SequenceKind {
		contractPanic("Sequence", "%s node accessed as sequence%s", n.Kind, n.markSuffix())
	}
	return n.Items
}

func (n *Node) markSuffix() string {
	if n.Mark == nil {
		return ""
	}
	return " at " + n.Mark.String()
}

func (n *Node) IsScalar() bool   { return n.Kind == ScalarKind }
func (n *Node) IsMapping() bool  { return n.Kind == MappingKind }
func (n *Node) IsSequence() bool { return n.Kind == SequenceKind }

// IsNull reports whether n resolves to the null tag.
func (n *Node) IsNull() bool {
	return n.Kind == ScalarKind && n.Tag() == tag.Null
}

// Len is the number of pairs, items, or 0 for scalars.
func (n *Node) Len() int {
	switch n.Kind {
	case MappingKind:
		return len(n.Pairs)
	case SequenceKind:
		return len(n.Items)
	}
	return 0
}

// Get returns the value of the last pair whose key is a scalar with the
// given text, so later duplicates win.
func Get(n *Node, key string) *Node {
	if n.Kind != MappingKind {
		return nil
	}
	for i := len(n.Pairs) - 1; i >= 0; i-- {
		k := n.Pairs[i].Key
		if k.Kind == ScalarKind && k.Text == key {
			return n.Pairs[i].Value
		}
	}
	return nil
}

// Walk calls f for n and its descendants in document order with a
// JSONPath-like location ("$", "$.a", "$[0]"). Returning false from f
// skips the node's children.
func (n *Node) Walk(f func(path string, n *Node) (bool, error)) error {
	return n.walk("$", f)
}

func (n *Node) walk(path string, f func(string, *Node) (bool, error)) error {
	dive, err := f(path, n)
	if err != nil || !dive {
		return err
	}
	switch n.Kind {
	case MappingKind:
		for i := range n.Pairs {
			p := &n.Pairs[i]
			kp := keyPath(path, p.Key, i)
			if err := p.Value.walk(kp, f); err != nil {
				return err
			}
		}
	case SequenceKind:
		for i, item := range n.Items {
			if err := item.walk(indexPath(path, i), f); err != nil {
				return err
			}
		}
	}
	return nil
}
