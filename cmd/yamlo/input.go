package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/parse"
)

// input is the documents of one file, "-" being stdin.
type input struct {
	name string
	docs []*ir.Node
}

func readInputs(cc *cli.Context, files []string, opts ...parse.ParseOption) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	res := make([]input, 0, len(files))
	for _, file := range files {
		docs, err := readFile(cc, file, opts...)
		if err != nil {
			return nil, fmt.Errorf("error processing %s: %w", file, err)
		}
		res = append(res, input{name: file, docs: docs})
	}
	return res, nil
}

func readFile(cc *cli.Context, path string, opts ...parse.ParseOption) ([]*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.ParseAll(d, opts...)
}
