// Package ir provides the in-memory document model for YAML.
//
// # Overview
//
// A document is a tree (or, with aliases, a directed acyclic graph) of
// *Node values. A Node works as a tagged union: Kind selects which fields
// are populated.
//
//   - ScalarKind: Text and ScalarStyle
//   - MappingKind: Pairs, in source order, duplicates allowed
//   - SequenceKind: Items
//
// Every node may carry an Anchor and a source Mark.
//
// # Tags
//
// A node's tag is either explicit, set from source text such as !!int or
// through WithTag, or implicit. Implicit tags are resolved on the first
// call to Node.Tag and memoized: mappings are map, sequences are seq,
// quoted and block scalars are str, and plain scalars are resolved by a
// resolve.Resolver (resolve.Default when none was given).
//
// # Aliases
//
// An alias in the source is represented by the very *Node it refers to,
// so shared structure is shared by pointer. Walk and Hash do not detect
// cycles; trees produced by the compose package never contain any.
//
// # Contract violations
//
// Accessing a node with the wrong shape accessor, or comparing unresolved
// tags, panics with a *ResolutionError. These are programming errors, not
// input errors.
package ir
