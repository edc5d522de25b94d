package construct

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
)

func plain(s string) *ir.Node { return ir.NewScalar(s, ir.PlainStyle) }

func kv(k string, v *ir.Node) ir.NodePair { return ir.NewPair(plain(k), v) }

func TestConstructScalars(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want any
	}{
		{"str", ir.NewScalar("12", ir.DoubleQuotedStyle), "12"},
		{"int", plain("0x1F"), int64(31)},
		{"float", plain("1.5"), 1.5},
		{"bool", plain("True"), true},
		{"null", plain("~"), nil},
		{"timestamp", plain("2002-12-14"), time.Date(2002, 12, 14, 0, 0, 0, 0, time.UTC)},
		{"binary", ir.NewTaggedScalar("aGk=", tag.Binary, ir.PlainStyle), []byte("hi")},
		{"explicit bool yes", ir.NewTaggedScalar("yes", tag.Bool, ir.PlainStyle), true},
		{"unknown tag scalar", ir.NewTaggedScalar("x", "!local", ir.PlainStyle), "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Default.Construct(tt.node)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestConstructNoValue(t *testing.T) {
	n := ir.NewTaggedScalar("abc", tag.Int, ir.PlainStyle).WithMark(ir.Mark{Line: 2, Column: 5})
	_, ok := Default.Construct(n)
	require.False(t, ok)

	_, err := Default.Value(n)
	var nv *NoValueError
	require.ErrorAs(t, err, &nv)
	require.Equal(t, tag.Int, nv.Tag)
	require.Contains(t, err.Error(), "2:5")

	_, ok = Default.Construct(ir.NewMapping().WithTag(tag.Int))
	require.False(t, ok)
}

func TestConstructCollections(t *testing.T) {
	doc := ir.NewMapping(
		kv("a", ir.NewSequence(plain("1"), plain("two"))),
		kv("b", ir.NewMapping(kv("c", plain("true")))),
	)
	got, ok := Default.Construct(doc)
	require.True(t, ok)
	want := map[any]any{
		"a": []any{int64(1), "two"},
		"b": map[any]any{"c": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestConstructNonComparableKey(t *testing.T) {
	key := ir.NewSequence(plain("1"))
	doc := ir.NewMapping(ir.NewPair(key, plain("x")))
	got, ok := Default.Construct(doc)
	require.True(t, ok)
	m := got.(map[any]any)
	require.Equal(t, "x", m[key])
}

func TestConstructAliasShared(t *testing.T) {
	shared := ir.NewSequence(plain("1")).WithAnchor("s")
	doc := ir.NewSequence(shared, shared)
	got, ok := Default.Construct(doc)
	require.True(t, ok)
	items := got.([]any)
	a, b := items[0].([]any), items[1].([]any)
	require.Same(t, &a[0], &b[0])
}

func TestMergePrecedence(t *testing.T) {
	doc := ir.NewMapping(
		kv("<<", ir.NewMapping(kv("x", plain("1")), kv("y", plain("2")))),
		kv("x", plain("9")),
	)
	got, ok := Default.Construct(doc)
	require.True(t, ok)
	if diff := cmp.Diff(map[any]any{"x": int64(9), "y": int64(2)}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergeSequenceOrder(t *testing.T) {
	doc := ir.NewMapping(
		kv("<<", ir.NewSequence(
			ir.NewMapping(kv("r", plain("1"))),
			ir.NewMapping(kv("r", plain("2")), kv("s", plain("3"))),
		)),
	)
	got, ok := Default.Construct(doc)
	require.True(t, ok)
	if diff := cmp.Diff(map[any]any{"r": int64(1), "s": int64(3)}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergeNested(t *testing.T) {
	base := ir.NewMapping(kv("a", plain("1")))
	mid := ir.NewMapping(kv("<<", base), kv("b", plain("2")))
	doc := ir.NewMapping(kv("<<", mid), kv("c", plain("3")))
	pairs, err := Flatten(doc)
	require.NoError(t, err)
	var keys []string
	for _, p := range pairs {
		keys = append(keys, p.Key.Text)
	}
	require.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestMergeQuotedKeyIsLiteral(t *testing.T) {
	doc := ir.NewMapping(ir.NewPair(ir.NewScalar("<<", ir.SingleQuotedStyle), plain("x")))
	got, ok := Default.Construct(doc)
	require.True(t, ok)
	require.Equal(t, map[any]any{"<<": "x"}, got)
}

func TestValueKeyRetagged(t *testing.T) {
	key := plain("=")
	doc := ir.NewMapping(ir.NewPair(key, plain("v")))
	pairs, err := Flatten(doc)
	require.NoError(t, err)
	require.Equal(t, tag.Str, pairs[0].Key.Tag())
	require.Equal(t, tag.Value, key.Tag(), "source node must not change")
}

func TestMergeInvalid(t *testing.T) {
	doc := ir.NewMapping(kv("<<", plain("x")), kv("a", plain("1")))
	_, err := Default.Value(doc)
	var me *MergeError
	require.True(t, errors.As(err, &me))
	require.Equal(t, ir.ScalarKind, me.Kind)

	lenient := New(LenientMerge())
	got, err := lenient.Value(doc)
	require.NoError(t, err)
	require.Equal(t, map[any]any{"a": int64(1)}, got)

	seq := ir.NewMapping(kv("<<", ir.NewSequence(plain("x"))))
	_, err = Default.Value(seq)
	require.ErrorAs(t, err, &me)
}

func TestOMapAndPairs(t *testing.T) {
	seq := ir.NewSequence(
		ir.NewMapping(kv("b", plain("1"))),
		ir.NewMapping(kv("a", plain("2"))),
		ir.NewMapping(kv("b", plain("3"))),
	)
	got, ok := Default.Construct(seq.Retagged(tag.OMap))
	require.True(t, ok)
	want := OrderedMap{{Key: "b", Value: int64(1)}, {Key: "a", Value: int64(2)}, {Key: "b", Value: int64(3)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	got, ok = Default.Construct(seq.Retagged(tag.Pairs))
	require.True(t, ok)
	require.IsType(t, Pairs{}, got)

	bad := ir.NewSequence(ir.NewMapping(kv("a", plain("1")), kv("b", plain("2"))))
	_, ok = Default.Construct(bad.Retagged(tag.OMap))
	require.False(t, ok)
}

func TestSet(t *testing.T) {
	m := ir.NewMapping(kv("a", ir.Null()), kv("b", ir.Null())).WithTag(tag.Set)
	got, ok := Default.Construct(m)
	require.True(t, ok)
	require.Equal(t, Set{"a": {}, "b": {}}, got)

	bad := ir.NewMapping(ir.NewPair(plain("1"), ir.Null())).WithTag(tag.Set)
	_, ok = Default.Construct(bad)
	require.False(t, ok)
}

func TestWithFunc(t *testing.T) {
	c := New(WithFunc("!upper", func(_ *Context, n *ir.Node) (any, bool) {
		return "UP:" + n.Text, true
	}))
	got, ok := c.Construct(ir.NewTaggedScalar("x", "!upper", ir.PlainStyle))
	require.True(t, ok)
	require.Equal(t, "UP:x", got)
	require.Nil(t, Default.Func("!upper"))
}
