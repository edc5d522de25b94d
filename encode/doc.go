// Package encode writes ir.Node trees as YAML text.
//
// The emitter is gopkg.in/yaml.v3; this package maps nodes and the
// formatting Options onto yaml.v3 nodes.
//
// # Usage
//
//	node, _ := parse.ParseString("b: 1\na: [x, y]\n")
//	err := encode.Encode(node, os.Stdout, encode.Indent(4), encode.SortKeys(true))
//
// # Aliases
//
// A *ir.Node reachable more than once that carries an Anchor is written
// in full the first time, under &anchor, and as *anchor afterwards. Shared
// nodes without an anchor are written in full each time.
//
// # Limits
//
// yaml.v3 always emits UTF-8 and does not wrap long lines, so Width and
// AllowUnicode are accepted and validated but only their defaults (0 and
// true) are fully honoured.
package encode
