package compose

import (
	"fmt"

	"github.com/signadot/yamlir/ir"
)

// UndefinedAliasError reports an alias whose anchor is not defined
// earlier in the same document.
type UndefinedAliasError struct {
	Name string
	Mark ir.Mark
}

func (e *UndefinedAliasError) Error() string {
	return fmt.Sprintf("%s: undefined alias *%s", e.Mark, e.Name)
}

// Error reports an event stream that does not describe a valid tree.
type Error struct {
	Mark ir.Mark
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Mark, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Mark, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }
