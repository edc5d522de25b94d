package ir

import (
	"errors"
	"fmt"
)

var ErrInvalidAnchor = errors.New("invalid anchor")

// ResolutionError reports a broken node contract: comparing unresolved
// tags, or using a shape accessor on the wrong kind of node. It is raised
// with panic, never returned.
type ResolutionError struct {
	Op  string
	Msg string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("ir: %s: %s", e.Op, e.Msg)
}

func contractPanic(op, format string, args ...any) {
	panic(&ResolutionError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
