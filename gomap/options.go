package gomap

import (
	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/parse"
	"github.com/signadot/yamlir/resolve"
)

// DecodeOption is an option for controlling decoding into Go values.
type DecodeOption interface {
	applyDecode(*decodeConfig)
}

// EncodeOption is an option for controlling encoding of Go values.
type EncodeOption interface {
	applyEncode(*encodeConfig)
}

// Option applies to both decoding and encoding.
type Option interface {
	DecodeOption
	EncodeOption
}

type decodeConfig struct {
	deref        Dereferencer
	keys         KeyStrategy
	resolver     resolve.Resolver
	ctor         *construct.Constructor
	userInfo     map[any]any
	parseOptions []parse.ParseOption
}

type encodeConfig struct {
	aliaser       Aliaser
	keys          KeyStrategy
	resolver      resolve.Resolver
	userInfo      map[any]any
	encodeOptions []encode.EncodeOption
}

func newDecodeConfig(opts []DecodeOption) *decodeConfig {
	cfg := &decodeConfig{keys: FieldNames, ctor: construct.Default}
	for _, o := range opts {
		o.applyDecode(cfg)
	}
	return cfg
}

func newEncodeConfig(opts []EncodeOption) *encodeConfig {
	cfg := &encodeConfig{keys: FieldNames}
	for _, o := range opts {
		o.applyEncode(cfg)
	}
	return cfg
}

type decodeFunc func(*decodeConfig)

func (f decodeFunc) applyDecode(c *decodeConfig) { f(c) }

type encodeFunc func(*encodeConfig)

func (f encodeFunc) applyEncode(c *encodeConfig) { f(c) }

type bothFunc struct {
	dec decodeFunc
	enc encodeFunc
}

func (b bothFunc) applyDecode(c *decodeConfig) { b.dec(c) }
func (b bothFunc) applyEncode(c *encodeConfig) { b.enc(c) }

// WithDereferencer makes anchored nodes decode through d, so aliases
// share the decoded value.
func WithDereferencer(d Dereferencer) DecodeOption {
	return decodeFunc(func(c *decodeConfig) { c.deref = d })
}

// WithAliaser makes repeated values encode as anchors and aliases as
// decided by a.
func WithAliaser(a Aliaser) EncodeOption {
	return encodeFunc(func(c *encodeConfig) { c.aliaser = a })
}

// WithConstructor sets the constructor for leaf and untyped values.
func WithConstructor(ctor *construct.Constructor) DecodeOption {
	return decodeFunc(func(c *decodeConfig) { c.ctor = ctor })
}

// WithParseOptions forwards opts to parse.Parse.
func WithParseOptions(opts ...parse.ParseOption) DecodeOption {
	return decodeFunc(func(c *decodeConfig) { c.parseOptions = append(c.parseOptions, opts...) })
}

// WithEncodeOptions forwards opts to encode.Encode.
func WithEncodeOptions(opts ...encode.EncodeOption) EncodeOption {
	return encodeFunc(func(c *encodeConfig) { c.encodeOptions = append(c.encodeOptions, opts...) })
}

// WithKeyStrategy sets the field name transformation.
func WithKeyStrategy(ks KeyStrategy) Option {
	return bothFunc{
		dec: func(c *decodeConfig) { c.keys = ks },
		enc: func(c *encodeConfig) { c.keys = ks },
	}
}

// WithResolver sets the schema: on decode it resolves untagged scalars,
// on encode it decides which strings need quoting.
func WithResolver(r resolve.Resolver) Option {
	return bothFunc{
		dec: func(c *decodeConfig) { c.resolver = r },
		enc: func(c *encodeConfig) { c.resolver = r },
	}
}

// WithUserInfo makes info available to Unmarshaler and Marshaler
// implementations through UserInfo.
func WithUserInfo(info map[any]any) Option {
	return bothFunc{
		dec: func(c *decodeConfig) { c.userInfo = info },
		enc: func(c *encodeConfig) { c.userInfo = info },
	}
}
