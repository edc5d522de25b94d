package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/compose"
	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
)

func mustConstruct(t *testing.T, n *ir.Node) any {
	t.Helper()
	v, err := construct.Default.Value(n)
	require.NoError(t, err)
	return v
}

func TestParseScalars(t *testing.T) {
	n, err := ParseString(`
i: 0x1F
f: 1.5
b: true
s: hello
q: '12'
d: "null"
n: ~
`)
	require.NoError(t, err)
	want := map[any]any{
		"i": int64(31),
		"f": 1.5,
		"b": true,
		"s": "hello",
		"q": "12",
		"d": "null",
		"n": nil,
	}
	if diff := cmp.Diff(want, mustConstruct(t, n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	require.Equal(t, ir.SingleQuotedStyle, ir.Get(n, "q").ScalarStyle)
	require.Equal(t, ir.DoubleQuotedStyle, ir.Get(n, "d").ScalarStyle)
}

func TestParseOrderPreserved(t *testing.T) {
	n, err := ParseString("c: 1\na: 2\nb: 3\n")
	require.NoError(t, err)
	var keys []string
	for _, p := range n.Mapping() {
		keys = append(keys, p.Key.Text)
	}
	require.Equal(t, []string{"c", "a", "b"}, keys)
}

func TestParseAnchorAlias(t *testing.T) {
	n, err := ParseString("- &simple\n  a: 1\n- *simple\n")
	require.NoError(t, err)
	items := n.Sequence()
	require.Len(t, items, 2)
	require.Same(t, items[0], items[1])
	require.Equal(t, ir.Anchor("simple"), items[0].Anchor)
}

func TestParseUndefinedAlias(t *testing.T) {
	_, err := ParseString("a: *nope\n")
	require.Error(t, err)
}

func TestParseMerge(t *testing.T) {
	n, err := ParseString(`
base: &base
  x: 1
  y: 2
derived:
  <<: *base
  x: 9
`)
	require.NoError(t, err)
	v := mustConstruct(t, n).(map[any]any)
	if diff := cmp.Diff(map[any]any{"x": int64(9), "y": int64(2)}, v["derived"]); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseTags(t *testing.T) {
	n, err := ParseString("a: !!str 12\nb: !!float 1\n")
	require.NoError(t, err)
	require.Equal(t, tag.Str, ir.Get(n, "a").Tag())
	require.Equal(t, tag.Float, ir.Get(n, "b").Tag())
	v := mustConstruct(t, n).(map[any]any)
	require.Equal(t, "12", v["a"])
	require.Equal(t, 1.0, v["b"])
}

func TestParseFlow(t *testing.T) {
	n, err := ParseString("{a: [1, 2], b: x}\n")
	require.NoError(t, err)
	require.Equal(t, ir.FlowStyle, n.CollectionStyle)
	require.Equal(t, ir.FlowStyle, ir.Get(n, "a").CollectionStyle)
}

func TestParseLiteral(t *testing.T) {
	n, err := ParseString("a: |\n  line1\n  line2\n")
	require.NoError(t, err)
	a := ir.Get(n, "a")
	require.Equal(t, ir.LiteralStyle, a.ScalarStyle)
	require.Equal(t, "line1\nline2\n", a.Text)
	require.Equal(t, tag.Str, a.Tag())
}

func TestParseAll(t *testing.T) {
	docs, err := ParseAll([]byte("a: 1\n---\nb: 2\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.NotNil(t, ir.Get(docs[1], "b"))
}

func TestParseSchema(t *testing.T) {
	n, err := ParseString("a: 12\n", ParseSchema("failsafe"))
	require.NoError(t, err)
	require.Equal(t, tag.Str, ir.Get(n, "a").Tag())

	_, err = ParseString("a: 1", ParseSchema("nope"))
	require.Error(t, err)
}

func TestParseMarks(t *testing.T) {
	n, err := ParseString("a: 1\nb: x\n")
	require.NoError(t, err)
	b := ir.Get(n, "b")
	require.NotNil(t, b.Mark)
	require.Equal(t, 2, b.Mark.Line)
}

func TestEventsStream(t *testing.T) {
	events, err := Events([]byte("- a\n"))
	require.NoError(t, err)
	var types []compose.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	require.Equal(t, []compose.EventType{
		compose.StreamStart, compose.DocumentStart,
		compose.SequenceStart, compose.Scalar, compose.SequenceEnd,
		compose.DocumentEnd, compose.StreamEnd,
	}, types)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := ParseString("a: [1, 2\n")
	require.Error(t, err)
}
