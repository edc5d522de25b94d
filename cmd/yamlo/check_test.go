package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/parse"
	"github.com/signadot/yamlir/resolve"
)

func TestCheckDocStable(t *testing.T) {
	for _, src := range []string{
		"b: [x, 'true', 3]\na: {c: null}\n",
		"- 1.5\n- !!binary aGk=\n- ~\n",
		"plain\n",
	} {
		n, err := parse.ParseString(src)
		require.NoError(t, err)
		first, second, err := checkDoc(n, resolve.Core)
		require.NoError(t, err, src)
		require.Equal(t, first, second, src)
	}
}

func TestRoundTripSorts(t *testing.T) {
	n, err := parse.ParseString("b: 1\na: 2\n")
	require.NoError(t, err)
	out, err := roundTrip(n, resolve.Core)
	require.NoError(t, err)
	require.Equal(t, "a: 2\nb: 1\n", out)
}

func TestTextDiff(t *testing.T) {
	require.Equal(t, "", textDiff("a: 1\n", "a: 1\n", false))
	d := textDiff("a: 1\n", "a: 2\n", false)
	require.True(t, strings.HasPrefix(d, "@@"), d)
	require.Contains(t, d, "-1")
	require.Contains(t, d, "+2")
}
