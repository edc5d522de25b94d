package ir

import (
	"fmt"
)

// Anchor names a node so that aliases can refer to it.
type Anchor string

// NewAnchor validates name as an anchor: one or more ASCII letters,
// digits, '_' or '-'.
func NewAnchor(name string) (Anchor, error) {
	if !validAnchor(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAnchor, name)
	}
	return Anchor(name), nil
}

// MustAnchor is like NewAnchor but panics on an invalid name.
func MustAnchor(name string) Anchor {
	a, err := NewAnchor(name)
	if err != nil {
		panic(err)
	}
	return a
}

func validAnchor(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

func (a Anchor) String() string { return string(a) }
