package construct

import (
	"github.com/signadot/yamlir/ir"
)

// OrderedMap is the value of an !!omap node.
type OrderedMap []ir.Pair[any, any]

// Pairs is the value of a !!pairs node. Like OrderedMap, duplicate keys
// are kept.
type Pairs []ir.Pair[any, any]

// Set is the value of a !!set node. Only string members are supported.
type Set map[string]struct{}

func (s Set) Has(k string) bool {
	_, ok := s[k]
	return ok
}

func constructOMap(ctx *Context, n *ir.Node) (any, bool) {
	ps, ok := constructPairList(ctx, n)
	if !ok {
		return nil, false
	}
	return OrderedMap(ps), true
}

func constructPairs(ctx *Context, n *ir.Node) (any, bool) {
	ps, ok := constructPairList(ctx, n)
	if !ok {
		return nil, false
	}
	return Pairs(ps), true
}

// constructPairList reads a sequence of single pair mappings.
func constructPairList(ctx *Context, n *ir.Node) ([]ir.Pair[any, any], bool) {
	if n.Kind != ir.SequenceKind {
		return nil, false
	}
	res := make([]ir.Pair[any, any], 0, len(n.Items))
	for _, item := range n.Items {
		if item.Kind != ir.MappingKind || len(item.Pairs) != 1 {
			return nil, false
		}
		k, ok := ctx.Construct(item.Pairs[0].Key)
		if !ok {
			return nil, false
		}
		v, ok := ctx.Construct(item.Pairs[0].Value)
		if !ok {
			return nil, false
		}
		res = append(res, ir.Pair[any, any]{Key: k, Value: v})
	}
	return res, true
}

func constructSet(ctx *Context, n *ir.Node) (any, bool) {
	if n.Kind != ir.MappingKind {
		return nil, false
	}
	res := make(Set, len(n.Pairs))
	for i := range n.Pairs {
		k, ok := ctx.Construct(n.Pairs[i].Key)
		if !ok {
			return nil, false
		}
		s, ok := k.(string)
		if !ok {
			return nil, false
		}
		res[s] = struct{}{}
	}
	return res, true
}
