package gomap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/yamlir/ir"
)

// PathElem is one step of a coding path: a mapping key or a sequence
// index.
type PathElem struct {
	Key     string
	Index   int
	IsIndex bool
}

func KeyElem(k string) PathElem { return PathElem{Key: k} }
func IndexElem(i int) PathElem  { return PathElem{Index: i, IsIndex: true} }

// Path is the sequence of keys and indices from the root to a value.
type Path []PathElem

func (p Path) String() string {
	if len(p) == 0 {
		return "<root>"
	}
	b := &strings.Builder{}
	for i, e := range p {
		if e.IsIndex {
			b.WriteString("[" + strconv.Itoa(e.Index) + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(e.Key)
	}
	return b.String()
}

// Child returns p extended by e without sharing p's backing array.
func (p Path) Child(e PathElem) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = e
	return res
}

func (p Path) Key(k string) Path { return p.Child(KeyElem(k)) }
func (p Path) Index(i int) Path  { return p.Child(IndexElem(i)) }

var ErrInvalidTarget = errors.New("decode target must be a non-nil pointer")

func markSuffix(m *ir.Mark) string {
	if m == nil {
		return ""
	}
	return " (" + m.String() + ")"
}

// KeyNotFoundError reports a required key missing from a mapping.
type KeyNotFoundError struct {
	Path Path
	Key  string
	Mark *ir.Mark
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("decode error at %s: key %q not found%s", e.Path, e.Key, markSuffix(e.Mark))
}

// TypeMismatchError reports a node whose shape or tag does not fit the
// target.
type TypeMismatchError struct {
	Path     Path
	Expected string
	Found    string
	Mark     *ir.Mark
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("decode error at %s: expected %s, found %s%s", e.Path, e.Expected, e.Found, markSuffix(e.Mark))
}

// ValueNotFoundError reports an exhausted sequence.
type ValueNotFoundError struct {
	Path     Path
	Expected string
	Mark     *ir.Mark
}

func (e *ValueNotFoundError) Error() string {
	return fmt.Sprintf("decode error at %s: no value for %s, sequence at end%s", e.Path, e.Expected, markSuffix(e.Mark))
}

// DataCorruptedError reports a node whose content could not be
// constructed, such as !!int text that is not a number.
type DataCorruptedError struct {
	Path Path
	Msg  string
	Mark *ir.Mark
	Err  error
}

func (e *DataCorruptedError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	return fmt.Sprintf("decode error at %s: %s%s", e.Path, msg, markSuffix(e.Mark))
}

func (e *DataCorruptedError) Unwrap() error { return e.Err }

// MarshalError reports a value that cannot be encoded.
type MarshalError struct {
	Path    Path
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	return fmt.Sprintf("encode error at %s: %s", e.Path, msg)
}

func (e *MarshalError) Unwrap() error { return e.Err }
