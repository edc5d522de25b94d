package gomap

import (
	"reflect"
	"strconv"

	"github.com/signadot/yamlir/debug"
	"github.com/signadot/yamlir/ir"
)

// Op is the outcome of consulting an Aliaser.
type Op int

const (
	// NoAlias encodes the value normally.
	NoAlias Op = iota
	// AnchorOp encodes the value under a new anchor.
	AnchorOp
	// AliasOp refers back to the value encoded under Anchor.
	AliasOp
)

func (o Op) String() string {
	switch o {
	case NoAlias:
		return "none"
	case AnchorOp:
		return "anchor"
	case AliasOp:
		return "alias"
	}
	return "<unknown op>"
}

// Aliasing is an Aliaser decision.
type Aliasing struct {
	Op     Op
	Anchor ir.Anchor
}

// Aliaser decides which repeated values are written once under an
// anchor and referred to by aliases afterwards. It is consulted for
// composite values only (structs, maps, slices, arrays, pointers and
// Marshalers); scalars are never aliased.
//
// Remit drops every entry pointing at a, so the values it anchored are
// anchored afresh, under a new name, the next time they are seen.
//
// Aliasers keep state across encode calls until remitted and are not
// safe for concurrent use.
type Aliaser interface {
	Alias(v any) Aliasing
	Remit(a ir.Anchor)
}

// namer hands out anchor names, preferring AnchorProvider names and
// never handing out a name twice.
type namer struct {
	next int
	used map[ir.Anchor]bool
}

func (n *namer) name(v any) ir.Anchor {
	if n.used == nil {
		n.used = map[ir.Anchor]bool{}
	}
	if p, ok := v.(AnchorProvider); ok {
		if a := p.YAMLAnchor(); a != "" {
			if _, err := ir.NewAnchor(string(a)); err == nil {
				cand := a
				for i := 2; n.used[cand]; i++ {
					cand = a + ir.Anchor("-"+strconv.Itoa(i))
				}
				n.used[cand] = true
				return cand
			}
		}
	}
	for {
		n.next++
		a := ir.Anchor(strconv.Itoa(n.next))
		if !n.used[a] {
			n.used[a] = true
			return a
		}
	}
}

// HashableAliaser aliases values that are equal as Go values: the same
// pointer, or comparable values of the same dynamic type that are ==.
// Values that are not comparable, such as slices and maps, are never
// aliased.
type HashableAliaser struct {
	namer
	seen map[any]ir.Anchor
}

func NewHashableAliaser() *HashableAliaser {
	return &HashableAliaser{seen: map[any]ir.Anchor{}}
}

func (h *HashableAliaser) Alias(v any) Aliasing {
	if v == nil || !reflect.ValueOf(v).Comparable() {
		return Aliasing{Op: NoAlias}
	}
	if a, ok := h.seen[v]; ok {
		return logAliasing(Aliasing{Op: AliasOp, Anchor: a})
	}
	a := h.name(v)
	h.seen[v] = a
	return logAliasing(Aliasing{Op: AnchorOp, Anchor: a})
}

func (h *HashableAliaser) Remit(a ir.Anchor) {
	for k, v := range h.seen {
		if v == a {
			delete(h.seen, k)
		}
	}
}

// StrictEncodingAliaser aliases values whose encoded YAML text is
// identical, whatever their Go types.
type StrictEncodingAliaser struct {
	namer
	seen map[string]ir.Anchor
	opts []EncodeOption
}

// NewStrictEncodingAliaser returns an aliaser keyed by the text Encode
// produces for a value under opts.
func NewStrictEncodingAliaser(opts ...EncodeOption) *StrictEncodingAliaser {
	return &StrictEncodingAliaser{seen: map[string]ir.Anchor{}, opts: opts}
}

func (s *StrictEncodingAliaser) Alias(v any) Aliasing {
	text, err := EncodeString(v, s.opts...)
	if err != nil {
		return Aliasing{Op: NoAlias}
	}
	if a, ok := s.seen[text]; ok {
		return logAliasing(Aliasing{Op: AliasOp, Anchor: a})
	}
	a := s.name(v)
	s.seen[text] = a
	return logAliasing(Aliasing{Op: AnchorOp, Anchor: a})
}

func (s *StrictEncodingAliaser) Remit(a ir.Anchor) {
	for k, v := range s.seen {
		if v == a {
			delete(s.seen, k)
		}
	}
}

func logAliasing(a Aliasing) Aliasing {
	if debug.Alias() {
		debug.Logf("alias", "%s %s", a.Op, a.Anchor)
	}
	return a
}
