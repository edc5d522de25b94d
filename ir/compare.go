package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Scalars sort before sequences, which sort before mappings. Scalars
// compare by text, then by tag name; collections compare elementwise and
// then by length. Anchors, marks and styles are ignored.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if ra, rb := rank(a.Kind), rank(b.Kind); ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a.Kind {
	case ScalarKind:
		if c := strings.Compare(a.Text, b.Text); c != 0 {
			return c
		}
		return strings.Compare(string(a.Tag()), string(b.Tag()))
	case SequenceKind:
		return compareSeqs(a.Items, b.Items)
	case MappingKind:
		return comparePairs(a.Pairs, b.Pairs)
	}
	return 0
}

// Order: Scalar < Sequence < Mapping
func rank(k Kind) int {
	switch k {
	case ScalarKind:
		return 0
	case SequenceKind:
		return 1
	case MappingKind:
		return 2
	}
	return 100
}

func compareSeqs(a, b []*Node) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func comparePairs(a, b []NodePair) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := Compare(a[i].Key, b[i].Key); c != 0 {
			return c
		}
		if c := Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Equal reports whether a and b have the same kind, tags and content.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}
