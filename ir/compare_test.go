package ir

import (
	"testing"

	"github.com/signadot/yamlir/ir/tag"
)

func s(text string) *Node { return NewScalar(text, PlainStyle) }

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		{"Scalar < Sequence", s("z"), NewSequence(), -1},
		{"Sequence < Mapping", NewSequence(s("a")), NewMapping(), -1},
		{"text order", s("a"), s("b"), -1},
		{"same text same tag", s("1"), s("1"), 0},
		{"same text tag order", NewTaggedScalar("1", tag.Int, PlainStyle), NewTaggedScalar("1", tag.Str, PlainStyle), -1},
		{"style ignored for same tag", NewScalar("x", DoubleQuotedStyle), s("x"), 0},
		{"short seq < long seq", NewSequence(s("1")), NewSequence(s("1"), s("2")), -1},
		{"seq element", NewSequence(s("2")), NewSequence(s("1"), s("2")), 1},
		{"mapping key", NewMapping(NewPair(s("a"), s("1"))), NewMapping(NewPair(s("b"), s("0"))), -1},
		{"mapping value", NewMapping(NewPair(s("a"), s("1"))), NewMapping(NewPair(s("a"), s("2"))), -1},
		{"nil first", nil, s("a"), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %d, want %d", got, tt.expected)
			}
			if tt.a != nil && tt.b != nil {
				if got := Compare(tt.b, tt.a); got != -tt.expected {
					t.Errorf("Compare(b, a) = %d, want %d", got, -tt.expected)
				}
			}
		})
	}
}

func TestHash(t *testing.T) {
	a := NewMapping(NewPair(s("a"), NewSequence(s("1"), s("x"))))
	b := NewMapping(NewPair(s("a"), NewSequence(s("1"), s("x"))))
	c := NewMapping(NewPair(s("a"), NewSequence(s("x"), s("1"))))
	if a.Hash() != b.Hash() {
		t.Error("equal trees hash differently")
	}
	if a.Hash() == c.Hash() {
		t.Error("order-sensitive trees collide")
	}
	if s("1").Hash() == NewScalar("1", SingleQuotedStyle).Hash() {
		t.Error("int and str scalar collide")
	}
}
