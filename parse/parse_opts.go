package parse

import (
	"github.com/signadot/yamlir/resolve"
)

type parseOpts struct {
	resolver resolve.Resolver
	err      error
}

type ParseOption func(*parseOpts)

// ParseResolver sets the resolver for untagged plain scalars.
func ParseResolver(r resolve.Resolver) ParseOption {
	return func(o *parseOpts) { o.resolver = r }
}

// ParseSchema selects a builtin schema by name; see resolve.ByName.
func ParseSchema(name string) ParseOption {
	return func(o *parseOpts) {
		s, err := resolve.ByName(name)
		if err != nil {
			o.err = err
			return
		}
		o.resolver = s
	}
}

func newOpts(opts []ParseOption) (*parseOpts, error) {
	o := &parseOpts{}
	for _, f := range opts {
		f(o)
	}
	return o, o.err
}
