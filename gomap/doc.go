// Package gomap decodes YAML into Go values and encodes Go values as
// YAML, preserving shared references through anchors and aliases.
//
// # Usage
//
//	type Config struct {
//	    Name  string
//	    Ports []int `yaml:"optional"`
//	}
//	var cfg Config
//	err := gomap.DecodeString(src, &cfg, gomap.WithKeyStrategy(gomap.LowerCamelCase))
//
//	// Encode repeated values once, under an anchor.
//	out, err := gomap.EncodeString(vals, gomap.WithAliaser(gomap.NewHashableAliaser()))
//
// Decoding walks the composed ir.Node tree; leaves are built by package
// construct. Encoding builds an ir.Node tree with package represent and
// emits it with package encode.
//
// # Containers
//
// Types implementing Unmarshaler or Marshaler work with the node
// through keyed (mapping), unkeyed (sequence) and single value views.
// The reflective rules for structs, maps, slices and scalars use the
// same views.
//
// # Anchors
//
// With WithDereferencer, a node reached through an alias decodes to the
// value already decoded for its anchor, so pointers, maps and slices are
// shared. With WithAliaser, repeated composite values are emitted once
// under an anchor and referred to by alias afterwards.
//
// # Related Packages
//
//   - github.com/signadot/yamlir/ir - node model
//   - github.com/signadot/yamlir/construct - node to value
//   - github.com/signadot/yamlir/represent - value to node
package gomap
