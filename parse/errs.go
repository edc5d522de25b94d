package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/yamlir/ir"
)

var (
	ErrParse       = errors.New("parse error")
	ErrUnsupported = fmt.Errorf("%w: unsupported node", ErrParse)
)

// NodeError reports an AST node the adapter cannot turn into events.
type NodeError struct {
	Mark ir.Mark
	Type string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Mark, e.Err, e.Type)
}

func (e *NodeError) Unwrap() error { return e.Err }
