package ir

// Kind selects which of the Node variants is populated.
type Kind int

const (
	ScalarKind Kind = iota
	MappingKind
	SequenceKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ScalarKind:   "Scalar",
		MappingKind:  "Mapping",
		SequenceKind: "Sequence",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// ScalarStyle is a presentation hint for the emitter.
type ScalarStyle int

const (
	AnyStyle ScalarStyle = iota
	PlainStyle
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case AnyStyle:
		return "any"
	case PlainStyle:
		return "plain"
	case SingleQuotedStyle:
		return "single-quoted"
	case DoubleQuotedStyle:
		return "double-quoted"
	case LiteralStyle:
		return "literal"
	case FoldedStyle:
		return "folded"
	}
	return "<unknown style>"
}

// IsPlain reports whether a scalar written in this style is subject to
// implicit tag resolution.
func (s ScalarStyle) IsPlain() bool {
	return s == AnyStyle || s == PlainStyle
}

// CollectionStyle is a presentation hint for mappings and sequences.
type CollectionStyle int

const (
	AnyCollection CollectionStyle = iota
	BlockStyle
	FlowStyle
)

func (s CollectionStyle) String() string {
	switch s {
	case AnyCollection:
		return "any"
	case BlockStyle:
		return "block"
	case FlowStyle:
		return "flow"
	}
	return "<unknown style>"
}
