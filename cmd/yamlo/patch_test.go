package main

import (
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/parse"
)

func TestApplyPatch(t *testing.T) {
	ops, err := getPatch(&PatchConfig{MainConfig: &MainConfig{Schema: "core"}},
		"- op: replace\n  path: /a\n  value: 2\n- op: add\n  path: /b/-\n  value: z\n")
	require.NoError(t, err)

	doc, err := parse.ParseString("a: 1\nb: [x]\n")
	require.NoError(t, err)
	res, err := applyPatch(ops, doc)
	require.NoError(t, err)
	v, err := construct.Default.Value(res)
	require.NoError(t, err)
	require.Equal(t, map[any]any{"a": int64(2), "b": []any{"x", "z"}}, v)
}

func TestApplyPatchFailedTest(t *testing.T) {
	ops, err := jsonpatch.DecodePatch([]byte(`[{"op": "test", "path": "/a", "value": 2}]`))
	require.NoError(t, err)
	doc, err := parse.ParseString("a: 1\n")
	require.NoError(t, err)
	_, err = applyPatch(ops, doc)
	require.Error(t, err)
}

func TestGetPatchEmpty(t *testing.T) {
	_, err := getPatch(&PatchConfig{MainConfig: &MainConfig{Schema: "core"}}, "")
	require.Error(t, err)
}
