// Package construct turns resolved ir.Node trees into Go values.
//
// Dispatch is by the node's resolved tag through a registry of Func
// values. Tags without a registered Func fall back to a default chosen by
// the node's shape: string for scalars, []any for sequences and
// map[any]any for mappings.
//
// A Func reports failure by returning false ("no value"), never by
// panicking; misuse of node accessors is the only panic path.
package construct

import (
	"fmt"
	"reflect"

	"github.com/signadot/yamlir/debug"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
)

// Func constructs the value of a node. It returns false if the node's
// content does not fit its tag.
type Func func(ctx *Context, n *ir.Node) (any, bool)

// Constructor is an immutable tag to Func registry and is safe for
// concurrent use.
type Constructor struct {
	funcs   map[tag.Name]Func
	lenient bool
}

type Option func(*Constructor)

// WithFunc registers f for name, replacing any builtin.
func WithFunc(name tag.Name, f Func) Option {
	return func(c *Constructor) { c.funcs[name] = f }
}

// LenientMerge makes merge keys whose value is neither a mapping nor a
// sequence of mappings silently ignored instead of failing construction.
func LenientMerge() Option {
	return func(c *Constructor) { c.lenient = true }
}

// Builtin returns the Func registered by default for name.
func Builtin(name tag.Name) (Func, bool) {
	f, ok := builtins()[name]
	return f, ok
}

func builtins() map[tag.Name]Func {
	return map[tag.Name]Func{
		tag.Str:       constructStr,
		tag.Seq:       constructSeq,
		tag.Map:       constructMap,
		tag.Bool:      scalar(func(s string) (any, bool) { return ParseBool(s) }),
		tag.Float:     scalar(func(s string) (any, bool) { return ParseFloat(s) }),
		tag.Null:      scalar(func(s string) (any, bool) { return nil, ParseNull(s) }),
		tag.Int:       scalar(parseIntValue),
		tag.Binary:    scalar(func(s string) (any, bool) { return ParseBinary(s) }),
		tag.OMap:      constructOMap,
		tag.Pairs:     constructPairs,
		tag.Set:       constructSet,
		tag.Timestamp: scalar(func(s string) (any, bool) { return ParseTimestamp(s) }),
		tag.Merge:     constructStr,
		tag.Value:     constructStr,
	}
}

func New(opts ...Option) *Constructor {
	c := &Constructor{funcs: builtins()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Default is the constructor with the builtin registry.
var Default = New()

// Construct builds the value of n with a fresh Context.
func (c *Constructor) Construct(n *ir.Node) (any, bool) {
	return c.NewContext().Construct(n)
}

// Value is like Construct but explains failure: it returns the recorded
// error, such as a *MergeError, or a *NoValueError.
func (c *Constructor) Value(n *ir.Node) (any, error) {
	ctx := c.NewContext()
	v, ok := ctx.Construct(n)
	if ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &NoValueError{Tag: n.Tag(), Text: shortText(n), Mark: n.Mark}
}

// Func returns the Func that handles name, or nil.
func (c *Constructor) Func(name tag.Name) Func {
	return c.funcs[name]
}

// Context carries the state of one construction: values of anchored
// nodes already built, so aliases construct to the same Go map or slice,
// and the first error recorded by a Func.
type Context struct {
	c    *Constructor
	memo map[*ir.Node]any
	err  error
}

func (c *Constructor) NewContext() *Context {
	return &Context{c: c, memo: map[*ir.Node]any{}}
}

func (ctx *Context) Constructor() *Constructor { return ctx.c }

// Construct dispatches n on its resolved tag.
func (ctx *Context) Construct(n *ir.Node) (any, bool) {
	if n.Anchor != "" {
		if v, ok := ctx.memo[n]; ok {
			return v, true
		}
	}
	name := n.Tag()
	f := ctx.c.funcs[name]
	if f == nil {
		f = shapeDefault(n.Kind)
	}
	v, ok := f(ctx, n)
	if debug.Construct() {
		debug.Logf("construct", "%v -> %T ok=%t", n, v, ok)
	}
	if ok && n.Anchor != "" {
		ctx.memo[n] = v
	}
	return v, ok
}

// Fail records err as the reason construction failed. Only the first
// error is kept.
func (ctx *Context) Fail(err error) {
	if ctx.err == nil {
		ctx.err = err
	}
}

func (ctx *Context) Err() error { return ctx.err }

func shapeDefault(k ir.Kind) Func {
	switch k {
	case ir.MappingKind:
		return constructMap
	case ir.SequenceKind:
		return constructSeq
	}
	return constructStr
}

// scalar adapts a text parser into a Func that rejects collections.
func scalar(parse func(string) (any, bool)) Func {
	return func(_ *Context, n *ir.Node) (any, bool) {
		if n.Kind != ir.ScalarKind {
			return nil, false
		}
		return parse(n.Text)
	}
}

func constructStr(_ *Context, n *ir.Node) (any, bool) {
	if n.Kind != ir.ScalarKind {
		return nil, false
	}
	return n.Text, true
}

func constructSeq(ctx *Context, n *ir.Node) (any, bool) {
	if n.Kind != ir.SequenceKind {
		return nil, false
	}
	res := make([]any, 0, len(n.Items))
	for _, item := range n.Items {
		v, ok := ctx.Construct(item)
		if !ok {
			return nil, false
		}
		res = append(res, v)
	}
	return res, true
}

func constructMap(ctx *Context, n *ir.Node) (any, bool) {
	if n.Kind != ir.MappingKind {
		return nil, false
	}
	pairs, err := ctx.c.flatten(n)
	if err != nil {
		ctx.Fail(err)
		return nil, false
	}
	res := make(map[any]any, len(pairs))
	for i := range pairs {
		p := &pairs[i]
		k, ok := ctx.Construct(p.Key)
		if !ok {
			return nil, false
		}
		v, ok := ctx.Construct(p.Value)
		if !ok {
			return nil, false
		}
		res[mapKey(k, p.Key)] = v
	}
	return res, true
}

// mapKey returns k if it can be a Go map key, otherwise its node.
func mapKey(k any, n *ir.Node) any {
	if k == nil {
		return nil
	}
	if !reflect.TypeOf(k).Comparable() {
		return n
	}
	return k
}

// NoValueError reports a node whose text does not fit its tag.
type NoValueError struct {
	Tag  tag.Name
	Text string
	Mark *ir.Mark
}

func (e *NoValueError) Error() string {
	msg := fmt.Sprintf("cannot construct %s from %s", e.Tag.Short(), e.Text)
	if e.Mark != nil {
		msg += " at " + e.Mark.String()
	}
	return msg
}

func shortText(n *ir.Node) string {
	if n.Kind != ir.ScalarKind {
		return n.Kind.String()
	}
	t := n.Text
	if len(t) > 32 {
		t = t[:32] + "..."
	}
	return fmt.Sprintf("%q", t)
}
