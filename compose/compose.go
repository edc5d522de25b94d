// Package compose folds a stream of structural events into ir.Node trees.
//
// Each document gets its own anchor table. An alias resolves to the very
// node registered under its name, so aliased structure is shared by
// pointer. A node is registered when it is complete, so an alias inside
// the node it names is undefined; the resulting trees are acyclic.
package compose

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/yamlir/debug"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
	"github.com/signadot/yamlir/resolve"
)

type Option func(*composer)

// WithResolver sets the resolver attached to untagged nodes.
func WithResolver(r resolve.Resolver) Option {
	return func(c *composer) { c.resolver = r }
}

type composer struct {
	r        EventReader
	resolver resolve.Resolver
	anchors  map[string]*ir.Node
	peeked   *Event
	last     ir.Mark
}

// Compose reads the whole stream and returns one node per document.
func Compose(r EventReader, opts ...Option) ([]*ir.Node, error) {
	c := &composer{r: r}
	for _, o := range opts {
		o(c)
	}
	return c.stream()
}

// ComposeEvents is Compose over a slice.
func ComposeEvents(events []Event, opts ...Option) ([]*ir.Node, error) {
	return Compose(NewSliceReader(events), opts...)
}

func (c *composer) next() (*Event, error) {
	if e := c.peeked; e != nil {
		c.peeked = nil
		return e, nil
	}
	e, err := c.r.ReadEvent()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Mark: c.last, Msg: "unexpected end of events"}
		}
		return nil, err
	}
	c.last = e.Mark
	return e, nil
}

func (c *composer) peek() (*Event, error) {
	if c.peeked != nil {
		return c.peeked, nil
	}
	e, err := c.next()
	if err != nil {
		return nil, err
	}
	c.peeked = e
	return e, nil
}

func (c *composer) expect(t EventType) (*Event, error) {
	e, err := c.next()
	if err != nil {
		return nil, err
	}
	if e.Type != t {
		return nil, &Error{Mark: e.Mark, Msg: fmt.Sprintf("expected %s, got %s", t, e.Type)}
	}
	return e, nil
}

func (c *composer) stream() ([]*ir.Node, error) {
	if _, err := c.expect(StreamStart); err != nil {
		return nil, err
	}
	var docs []*ir.Node
	for {
		e, err := c.next()
		if err != nil {
			return nil, err
		}
		switch e.Type {
		case StreamEnd:
			return docs, nil
		case DocumentStart:
			doc, err := c.document()
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		default:
			return nil, &Error{Mark: e.Mark, Msg: fmt.Sprintf("expected document, got %s", e.Type)}
		}
	}
}

func (c *composer) document() (*ir.Node, error) {
	c.anchors = map[string]*ir.Node{}
	defer func() { c.anchors = nil }()

	e, err := c.peek()
	if err != nil {
		return nil, err
	}
	var root *ir.Node
	if e.Type == DocumentEnd {
		// An empty document is a null.
		root = c.withResolver(ir.NewScalar("", ir.PlainStyle).WithMark(e.Mark))
	} else {
		root, err = c.node()
		if err != nil {
			return nil, err
		}
	}
	if _, err := c.expect(DocumentEnd); err != nil {
		return nil, err
	}
	if debug.Compose() {
		debug.Logf("compose", "document %v anchors=%d", root, len(c.anchors))
	}
	return root, nil
}

func (c *composer) node() (*ir.Node, error) {
	e, err := c.next()
	if err != nil {
		return nil, err
	}
	switch e.Type {
	case Alias:
		n, ok := c.anchors[e.Anchor]
		if !ok {
			return nil, &UndefinedAliasError{Name: e.Anchor, Mark: e.Mark}
		}
		return n, nil
	case Scalar:
		n := ir.NewScalar(e.Text, e.Style).WithMark(e.Mark)
		if err := c.decorate(n, e); err != nil {
			return nil, err
		}
		c.register(n, e)
		return n, nil
	case SequenceStart:
		n := ir.NewSequence().WithMark(e.Mark).WithCollectionStyle(e.CollectionStyle)
		if err := c.decorate(n, e); err != nil {
			return nil, err
		}
		for {
			p, err := c.peek()
			if err != nil {
				return nil, err
			}
			if p.Type == SequenceEnd {
				c.peeked = nil
				break
			}
			item, err := c.node()
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, item)
		}
		c.register(n, e)
		return n, nil
	case MappingStart:
		n := ir.NewMapping().WithMark(e.Mark).WithCollectionStyle(e.CollectionStyle)
		if err := c.decorate(n, e); err != nil {
			return nil, err
		}
		for {
			p, err := c.peek()
			if err != nil {
				return nil, err
			}
			if p.Type == MappingEnd {
				c.peeked = nil
				break
			}
			k, err := c.node()
			if err != nil {
				return nil, err
			}
			v, err := c.node()
			if err != nil {
				return nil, err
			}
			n.Pairs = append(n.Pairs, ir.NewPair(k, v))
		}
		c.register(n, e)
		return n, nil
	}
	return nil, &Error{Mark: e.Mark, Msg: fmt.Sprintf("unexpected %s", e.Type)}
}

// decorate applies the event's tag and anchor.
func (c *composer) decorate(n *ir.Node, e *Event) error {
	switch e.Tag {
	case "":
		c.withResolver(n)
	case tag.NonSpecific:
		switch n.Kind {
		case ir.MappingKind:
			n.WithTag(tag.Map)
		case ir.SequenceKind:
			n.WithTag(tag.Seq)
		default:
			n.WithTag(tag.Str)
		}
	default:
		n.WithTag(tag.Expand(e.Tag))
	}
	if e.Anchor == "" {
		return nil
	}
	a, err := ir.NewAnchor(e.Anchor)
	if err != nil {
		return &Error{Mark: e.Mark, Msg: "bad anchor", Err: err}
	}
	n.Anchor = a
	return nil
}

func (c *composer) withResolver(n *ir.Node) *ir.Node {
	if c.resolver != nil {
		n.WithResolver(c.resolver)
	}
	return n
}

// register records a completed anchored node. A later definition of the
// same name replaces the earlier one for subsequent aliases.
func (c *composer) register(n *ir.Node, e *Event) {
	if n.Anchor == "" {
		return
	}
	if debug.Compose() {
		if _, ok := c.anchors[e.Anchor]; ok {
			debug.Logf("compose", "anchor &%s redefined at %s", e.Anchor, e.Mark)
		}
	}
	c.anchors[e.Anchor] = n
}
