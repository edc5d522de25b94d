package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/parse"
	"github.com/signadot/yamlir/resolve"
)

func TestEvalDoc(t *testing.T) {
	doc, err := parse.ParseString("a: 1\nnames: [x, y]\n")
	require.NoError(t, err)

	tests := []struct {
		code string
		want string
	}{
		{"doc.a + 1", "2"},
		{"len(doc.names)", "2"},
		{"doc.names[1]", "y"},
		{`"true"`, "'true'"},
		{"doc.a > 3", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			res, err := evalDoc(tt.code, doc, resolve.Core)
			require.NoError(t, err)
			require.Equal(t, tt.want, encode.MustString(res))
		})
	}
}

func TestEvalDocCompileError(t *testing.T) {
	doc, err := parse.ParseString("a: 1\n")
	require.NoError(t, err)
	_, err = evalDoc("doc.a +", doc, resolve.Core)
	require.Error(t, err)
}
