package evaluator

import (
	"fmt"

	"github.com/jacksonmowry/lisp/pkg/types"
)

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Name     string
	Expected int
	Got      int
	Variadic bool
}

func (e *ArityError) Error() string {
	if e.Variadic {
		return fmt.Sprintf("%s expects at least %d argument(s), got %d", e.Name, e.Expected, e.Got)
	}
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Name, e.Expected, e.Got)
}

// TypeError reports a builtin argument with a disallowed tag.
type TypeError struct {
	Name     string
	Expected types.Tag
	Got      types.Tag
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s expects %s, got %s", e.Name, e.Expected, e.Got)
}

// NotCallableError reports a combination whose head is not callable.
type NotCallableError struct {
	Got types.Tag
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("head of combination is not callable: %s", e.Got)
}
