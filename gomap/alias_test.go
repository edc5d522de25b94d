package gomap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/ir"
)

type cell struct{ X int }
type otherCell struct{ X int }

func TestRemit(t *testing.T) {
	for name, al := range map[string]Aliaser{
		"hashable": NewHashableAliaser(),
		"strict":   NewStrictEncodingAliaser(),
	} {
		t.Run(name, func(t *testing.T) {
			x := &cell{X: 1}
			first := al.Alias(x)
			require.Equal(t, AnchorOp, first.Op)
			again := al.Alias(x)
			require.Equal(t, Aliasing{Op: AliasOp, Anchor: first.Anchor}, again)
			al.Remit(first.Anchor)
			fresh := al.Alias(x)
			require.Equal(t, AnchorOp, fresh.Op)
			require.NotEqual(t, first.Anchor, fresh.Anchor)
		})
	}
}

func TestHashableAliaser(t *testing.T) {
	h := NewHashableAliaser()
	a := h.Alias(cell{1})
	require.Equal(t, Aliasing{Op: AnchorOp, Anchor: "1"}, a)
	require.Equal(t, Aliasing{Op: AliasOp, Anchor: "1"}, h.Alias(cell{1}))
	// equal fields, different type
	require.Equal(t, Aliasing{Op: AnchorOp, Anchor: "2"}, h.Alias(otherCell{1}))
	require.Equal(t, NoAlias, h.Alias([]int{1}).Op)
	require.Equal(t, NoAlias, h.Alias(map[string]int{}).Op)
	require.Equal(t, NoAlias, h.Alias(nil).Op)
}

func TestStrictEncodingAliaser(t *testing.T) {
	s := NewStrictEncodingAliaser()
	a := s.Alias(cell{1})
	require.Equal(t, AnchorOp, a.Op)
	require.Equal(t, Aliasing{Op: AliasOp, Anchor: a.Anchor}, s.Alias(otherCell{1}))
	require.Equal(t, Aliasing{Op: AliasOp, Anchor: a.Anchor}, s.Alias(map[string]int{"X": 1}))
	require.Equal(t, AnchorOp, s.Alias([]int{1}).Op)
	require.Equal(t, NoAlias, s.Alias(make(chan int)).Op)
}

type named string

func (n named) YAMLAnchor() ir.Anchor { return ir.Anchor(n) }

func TestAnchorNames(t *testing.T) {
	h := NewHashableAliaser()
	require.Equal(t, ir.Anchor("db"), h.Alias(named("db")).Anchor)
	// a provided name is not reused after remit
	h.Remit("db")
	require.Equal(t, ir.Anchor("db-2"), h.Alias(named("db")).Anchor)
	// invalid names fall back to the counter
	require.Equal(t, ir.Anchor("1"), h.Alias(named("not valid")).Anchor)
	// counters are per instance
	require.Equal(t, ir.Anchor("1"), NewHashableAliaser().Alias(cell{2}).Anchor)
}

func TestOpString(t *testing.T) {
	require.Equal(t, "none", NoAlias.String())
	require.Equal(t, "anchor", AnchorOp.String())
	require.Equal(t, "alias", AliasOp.String())
}
