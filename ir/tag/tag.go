// Package tag names the YAML type identities used by the resolver, the
// constructor and the representer.
package tag

import "strings"

// Name is a resolved tag, normally a URI under the yaml.org 2002 prefix.
type Name string

const Prefix = "tag:yaml.org,2002:"

const (
	Str       Name = Prefix + "str"
	Seq       Name = Prefix + "seq"
	Map       Name = Prefix + "map"
	Bool      Name = Prefix + "bool"
	Float     Name = Prefix + "float"
	Null      Name = Prefix + "null"
	Int       Name = Prefix + "int"
	Binary    Name = Prefix + "binary"
	OMap      Name = Prefix + "omap"
	Pairs     Name = Prefix + "pairs"
	Set       Name = Prefix + "set"
	Timestamp Name = Prefix + "timestamp"
	Merge     Name = Prefix + "merge"
	Value     Name = Prefix + "value"
)

// NonSpecific is the "!" tag, which forces str on scalars and the
// default collection tag on mappings and sequences.
const NonSpecific = "!"

// Builtins lists the tags the default constructor knows about.
func Builtins() []Name {
	return []Name{Str, Seq, Map, Bool, Float, Null, Int, Binary, OMap, Pairs, Set, Timestamp, Merge, Value}
}

// Expand turns a tag as written in a document into its full name:
//
//	!!int         -> tag:yaml.org,2002:int
//	!<tag:x.y,1:> -> tag:x.y,1:
//	!local        -> !local
func Expand(written string) Name {
	switch {
	case strings.HasPrefix(written, "!!"):
		return Name(Prefix + written[2:])
	case strings.HasPrefix(written, "!<") && strings.HasSuffix(written, ">"):
		return Name(written[2 : len(written)-1])
	}
	return Name(written)
}

// Short is the inverse of Expand for yaml.org names.
func (n Name) Short() string {
	if s, ok := strings.CutPrefix(string(n), Prefix); ok {
		return "!!" + s
	}
	return string(n)
}

func (n Name) String() string { return string(n) }

// IsBuiltin reports whether n lives under the yaml.org 2002 prefix.
func (n Name) IsBuiltin() bool {
	return strings.HasPrefix(string(n), Prefix)
}
