package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/ir"
)

func plain(s string) *ir.Node { return ir.NewScalar(s, ir.PlainStyle) }

func TestTagPrinterDups(t *testing.T) {
	doc := ir.NewMapping(
		ir.NewPair(plain("a"), ir.NewSequence(plain("1"), plain("x"))),
		ir.NewPair(plain("b"), ir.NewSequence(plain("1"), plain("x"))),
		ir.NewPair(plain("c"), ir.NewSequence(plain("1"), ir.NewScalar("x", ir.SingleQuotedStyle))),
	)
	buf := &bytes.Buffer{}
	p := newTagPrinter(buf, false)
	p.dups = true
	require.NoError(t, p.print(doc))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	require.Equal(t, "$.a\t!!seq", lines[1])
	require.Equal(t, "$.b\t!!seq\t=$.a", lines[4])
	require.Equal(t, "$.c\t!!seq\t=$.a", lines[7])
}

func TestTagPrinterAlias(t *testing.T) {
	shared := ir.NewSequence(plain("1")).WithAnchor("s")
	doc := ir.NewSequence(shared, shared)
	buf := &bytes.Buffer{}
	require.NoError(t, newTagPrinter(buf, false).print(doc))
	require.Equal(t, "$\t!!seq\n$[0]\t!!seq\t&s\n$[0][0]\t!!int\n$[1]\t*s\n", buf.String())
}
