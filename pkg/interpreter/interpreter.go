// Package interpreter wires the reader and the evaluator around a
// shared pool and root environment.
package interpreter

import (
	"io"

	"github.com/jacksonmowry/lisp/pkg/evaluator"
	"github.com/jacksonmowry/lisp/pkg/reader"
	"github.com/jacksonmowry/lisp/pkg/types"
)

// Interpreter owns the value pool and the root environment for one
// interpreter instance. It is not safe for concurrent use.
type Interpreter struct {
	pool *types.Pool
	eval *evaluator.Evaluator
	env  *evaluator.Environment
}

func New() *Interpreter {
	return NewWithCapacity(types.DefaultCapacity)
}

// NewWithCapacity creates an interpreter whose pool holds the given
// number of value slots.
func NewWithCapacity(capacity int) *Interpreter {
	pool := types.NewPool(capacity)
	e := evaluator.NewEvaluator(pool)
	return &Interpreter{
		pool: pool,
		eval: e,
		env:  e.NewRootEnvironment(),
	}
}

// SetOutput redirects display output.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.eval.SetOutput(w)
}

// Pool exposes the allocator for resource introspection.
func (i *Interpreter) Pool() *types.Pool {
	return i.pool
}

// Env returns the root environment, for host registration of additional
// builtins or constants.
func (i *Interpreter) Env() *evaluator.Environment {
	return i.env
}

// Interpret parses every top-level expression in input, evaluates them
// in order, and returns the last result. The caller owns one reference
// on the result. After an error the interpreter remains usable for
// fresh top-level expressions.
func (i *Interpreter) Interpret(input string) (*types.Value, error) {
	forms, err := reader.ParseAll(i.pool, input)
	if err != nil {
		return nil, err
	}

	var result *types.Value
	for _, form := range forms {
		next, evalErr := i.eval.Eval(form, i.env)
		if evalErr != nil {
			err = evalErr
			break
		}
		if result != nil {
			i.pool.Deref(result)
		}
		result = next
	}

	for _, form := range forms {
		i.pool.Deref(form)
	}
	if err != nil {
		if result != nil {
			i.pool.Deref(result)
		}
		return nil, err
	}
	return result, nil
}

// Release returns a result obtained from Interpret to the pool.
func (i *Interpreter) Release(v *types.Value) {
	i.pool.Deref(v)
}

// FormatResult renders a top-level result the way the driver prints it:
// cons results get a leading quote so the printed form reads back as
// the same value.
func (i *Interpreter) FormatResult(v *types.Value) string {
	if v.Tag == types.TagCons && v.Quoted == 0 {
		return "'" + v.String()
	}
	return v.String()
}

// Close tears down the root environment. Pool statistics remain
// readable afterwards.
func (i *Interpreter) Close() {
	i.env.Destroy()
}
