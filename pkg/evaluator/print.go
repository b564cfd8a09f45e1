package evaluator

import (
	"fmt"

	"github.com/jacksonmowry/lisp/pkg/types"
)

// builtinDisplay prints its argument and returns it.
func (e *Evaluator) builtinDisplay(args *types.Value, env types.Environment) (*types.Value, error) {
	v := args.Car
	fmt.Fprintln(e.out, v.String())
	e.pool.Ref(v)
	return v, nil
}

// builtinEval evaluates its argument under the calling environment.
// Argument pre-evaluation already consumed one quote level, so a
// still-quoted argument is returned as-is: (eval ''x) is 'x.
func (e *Evaluator) builtinEval(args *types.Value, env types.Environment) (*types.Value, error) {
	v := args.Car
	if v.Quoted > 0 {
		e.pool.Ref(v)
		return v, nil
	}
	return e.eval(v, env.(*Environment))
}
