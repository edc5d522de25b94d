// Package parse reads YAML text into ir.Node trees.
//
// Scanning and parsing are done by github.com/goccy/go-yaml; this package
// walks its AST, translates it to compose events and composes those.
// Errors from the underlying parser are returned unchanged.
package parse

import (
	"github.com/signadot/yamlir/compose"
	"github.com/signadot/yamlir/ir"
)

// Parse returns the first document of d, or nil if d has none.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	docs, err := ParseAll(d, opts...)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

// ParseAll returns every document of d.
func ParseAll(d []byte, opts ...ParseOption) ([]*ir.Node, error) {
	o, err := newOpts(opts)
	if err != nil {
		return nil, err
	}
	events, err := Events(d)
	if err != nil {
		return nil, err
	}
	var copts []compose.Option
	if o.resolver != nil {
		copts = append(copts, compose.WithResolver(o.resolver))
	}
	return compose.ComposeEvents(events, copts...)
}

// ParseString is Parse for a string.
func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}
