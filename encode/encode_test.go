package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
)

func plain(s string) *ir.Node { return ir.NewScalar(s, ir.PlainStyle) }

func encodeString(t *testing.T, n *ir.Node, opts ...EncodeOption) string {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, Encode(n, buf, opts...))
	return buf.String()
}

func TestEncodeBlock(t *testing.T) {
	n := ir.NewMapping(
		ir.NewPair(plain("b"), plain("1")),
		ir.NewPair(plain("a"), ir.NewSequence(plain("x"), plain("y"))),
	)
	require.Equal(t, "b: 1\na:\n  - x\n  - y\n", encodeString(t, n))
}

func TestEncodeSortKeys(t *testing.T) {
	n := ir.NewMapping(
		ir.NewPair(plain("b"), plain("1")),
		ir.NewPair(plain("a"), plain("2")),
	)
	require.Equal(t, "a: 2\nb: 1\n", encodeString(t, n, SortKeys(true)))
	require.Equal(t, "b", n.Pairs[0].Key.Text, "input must not be reordered")
}

func TestEncodeIndent(t *testing.T) {
	n := ir.NewMapping(ir.NewPair(plain("a"), ir.NewMapping(ir.NewPair(plain("b"), plain("c")))))
	require.Equal(t, "a:\n    b: c\n", encodeString(t, n, Indent(4)))

	for _, bad := range []int{1, 10, -1} {
		_, err := NewOptions(Indent(bad))
		require.ErrorIs(t, err, ErrOptions, "indent %d", bad)
	}
}

func TestEncodeAlias(t *testing.T) {
	shared := ir.NewMapping(ir.NewPair(plain("a"), plain("1"))).WithAnchor("simple")
	n := ir.NewSequence(shared, shared)
	require.Equal(t, "- &simple\n  a: 1\n- *simple\n", encodeString(t, n))
}

func TestEncodeSharedWithoutAnchor(t *testing.T) {
	shared := plain("x")
	n := ir.NewSequence(shared, shared)
	require.Equal(t, "- x\n- x\n", encodeString(t, n))
}

func TestEncodeStrQuoting(t *testing.T) {
	n := ir.NewSequence(
		ir.NewTaggedScalar("true", tag.Str, ir.PlainStyle),
		ir.NewScalar("12", ir.SingleQuotedStyle),
		ir.NewTaggedScalar("12", tag.Int, ir.SingleQuotedStyle),
	)
	out := encodeString(t, n)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, `- "true"`, strings.ReplaceAll(lines[0], "'", `"`))
	require.Equal(t, "- '12'", lines[1])
	require.Contains(t, lines[2], "!!int")
}

func TestEncodeExplicitMarkers(t *testing.T) {
	n := plain("x")
	out := encodeString(t, n, ExplicitStart(true), ExplicitEnd(true))
	require.Equal(t, "---\nx\n...\n", out)

	out = encodeString(t, n, WithVersion(1, 2))
	require.True(t, strings.HasPrefix(out, "%YAML 1.2\n---\n"), out)

	_, err := NewOptions(WithVersion(2, 0))
	require.ErrorIs(t, err, ErrOptions)
}

func TestEncodeAll(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, EncodeAll([]*ir.Node{plain("a"), plain("b")}, buf))
	require.Equal(t, "a\n---\nb\n", buf.String())
}

func TestEncodeLineBreak(t *testing.T) {
	n := ir.NewMapping(ir.NewPair(plain("a"), plain("1")), ir.NewPair(plain("b"), plain("2")))
	require.Equal(t, "a: 1\r\nb: 2\r\n", encodeString(t, n, WithLineBreak(CRLF)))
	require.Equal(t, "a: 1\rb: 2\r", encodeString(t, n, WithLineBreak(CR)))
}

func TestEncodeCanonical(t *testing.T) {
	n := ir.NewMapping(ir.NewPair(plain("a"), plain("1")))
	out := encodeString(t, n, Canonical(true))
	require.True(t, strings.HasPrefix(out, "---\n"), out)
	require.Contains(t, out, "!!map")
	require.Contains(t, out, `!!str "a"`)
	require.Contains(t, out, `!!int "1"`)
}

func TestEncodeEmptyNull(t *testing.T) {
	n := ir.NewMapping(ir.NewPair(plain("a"), plain("")))
	require.Equal(t, "a: null\n", encodeString(t, n))
}

func TestMustString(t *testing.T) {
	require.Equal(t, "a: 1", MustString(ir.NewMapping(ir.NewPair(plain("a"), plain("1")))))
}
