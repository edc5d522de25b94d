package encode

import (
	"errors"
	"fmt"
)

// LineBreak selects the line ending written between lines.
type LineBreak int

const (
	LF LineBreak = iota
	CR
	CRLF
)

func (b LineBreak) String() string {
	switch b {
	case LF:
		return "lf"
	case CR:
		return "cr"
	case CRLF:
		return "crlf"
	}
	return "<unknown line break>"
}

func (b LineBreak) bytes() string {
	switch b {
	case CR:
		return "\r"
	case CRLF:
		return "\r\n"
	}
	return "\n"
}

// Version is a %YAML directive.
type Version struct {
	Major, Minor int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Options is the formatting configuration handed to the emitter.
type Options struct {
	// Canonical writes every node with its tag, scalars double quoted and
	// collections in flow style.
	Canonical bool
	// Indent is the number of spaces per level, 2 to 9; 0 means 2.
	Indent int
	// Width is a line wrap hint; 0 is unlimited.
	Width        int
	AllowUnicode bool
	LineBreak    LineBreak
	// ExplicitStart and ExplicitEnd write --- and ... around documents.
	ExplicitStart bool
	ExplicitEnd   bool
	// Version, if set, writes a %YAML directive before each document.
	Version  *Version
	SortKeys bool
}

var ErrOptions = errors.New("invalid encode options")

// DefaultOptions returns the zero configuration made explicit.
func DefaultOptions() Options {
	return Options{Indent: 2, AllowUnicode: true}
}

func (o *Options) validate() error {
	if o.Indent == 0 {
		o.Indent = 2
	}
	if o.Indent < 2 || o.Indent > 9 {
		return fmt.Errorf("%w: indent %d not in [2, 9]", ErrOptions, o.Indent)
	}
	if o.Width < 0 {
		return fmt.Errorf("%w: negative width %d", ErrOptions, o.Width)
	}
	if o.LineBreak < LF || o.LineBreak > CRLF {
		return fmt.Errorf("%w: line break %d", ErrOptions, o.LineBreak)
	}
	if o.Version != nil && o.Version.Major != 1 {
		return fmt.Errorf("%w: version %s", ErrOptions, o.Version)
	}
	return nil
}

type EncodeOption func(*Options)

// NewOptions applies opts to DefaultOptions and validates the result.
func NewOptions(opts ...EncodeOption) (Options, error) {
	o := DefaultOptions()
	for _, f := range opts {
		f(&o)
	}
	if err := o.validate(); err != nil {
		return o, err
	}
	return o, nil
}

// WithOptions replaces the whole configuration.
func WithOptions(o Options) EncodeOption {
	return func(es *Options) { *es = o }
}
func Canonical(v bool) EncodeOption {
	return func(es *Options) { es.Canonical = v }
}
func Indent(n int) EncodeOption {
	return func(es *Options) { es.Indent = n }
}
func Width(n int) EncodeOption {
	return func(es *Options) { es.Width = n }
}
func AllowUnicode(v bool) EncodeOption {
	return func(es *Options) { es.AllowUnicode = v }
}
func WithLineBreak(b LineBreak) EncodeOption {
	return func(es *Options) { es.LineBreak = b }
}
func ExplicitStart(v bool) EncodeOption {
	return func(es *Options) { es.ExplicitStart = v }
}
func ExplicitEnd(v bool) EncodeOption {
	return func(es *Options) { es.ExplicitEnd = v }
}
func WithVersion(major, minor int) EncodeOption {
	return func(es *Options) { es.Version = &Version{Major: major, Minor: minor} }
}
func SortKeys(v bool) EncodeOption {
	return func(es *Options) { es.SortKeys = v }
}
