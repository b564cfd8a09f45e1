// Package evaluator provides the tree-walking evaluation core: the
// environment chain, special forms, procedure and macro application,
// and the builtin surface.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/jacksonmowry/lisp/pkg/types"
)

// Evaluator walks value trees. It is re-entrant within a single thread;
// builtins may call back into Eval recursively.
type Evaluator struct {
	pool *types.Pool
	out  io.Writer
}

func NewEvaluator(pool *types.Pool) *Evaluator {
	return &Evaluator{pool: pool, out: os.Stdout}
}

// SetOutput redirects display output, which defaults to stdout.
func (e *Evaluator) SetOutput(w io.Writer) {
	e.out = w
}

// Pool returns the allocator backing this evaluator.
func (e *Evaluator) Pool() *types.Pool {
	return e.pool
}

// Eval evaluates v under env. The caller owns one reference on the
// result and must release it.
func (e *Evaluator) Eval(v *types.Value, env *Environment) (res *types.Value, err error) {
	defer types.RecoverExhausted(&err)
	return e.eval(v, env)
}

func (e *Evaluator) eval(v *types.Value, env *Environment) (*types.Value, error) {
	// A positive quote level suppresses evaluation; consuming one level
	// yields a shallow copy so the source tree is never mutated.
	if v.Quoted > 0 {
		c := e.pool.Clone(v)
		c.Quoted--
		return c, nil
	}

	switch v.Tag {
	case types.TagSymbol:
		return env.Get(v.Text), nil
	case types.TagCons:
		return e.evalCombination(v, env)
	default:
		// Nil, numbers, strings, booleans, and callables are
		// self-evaluating.
		e.pool.Ref(v)
		return v, nil
	}
}

// evalCombination evaluates (head . rest), dispatching on the callee
// kind: special forms and macros receive rest unevaluated, builtins and
// procedures receive evaluated arguments.
func (e *Evaluator) evalCombination(v *types.Value, env *Environment) (*types.Value, error) {
	callee, err := e.eval(v.Car, env)
	if err != nil {
		return nil, err
	}
	rest := v.Cdr

	var res *types.Value
	switch callee.Tag {
	case types.TagSpecialForm:
		res, err = callee.Special.Fn(rest, env)
	case types.TagMacro:
		res, err = e.applyMacro(callee, rest, env)
	case types.TagBuiltin:
		res, err = e.applyBuiltin(callee, rest, env)
	case types.TagProcedure:
		res, err = e.applyProcedure(callee, rest, env)
	default:
		err = &NotCallableError{Got: callee.Tag}
	}

	e.pool.Deref(callee)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Evaluator) applyBuiltin(callee, forms *types.Value, env *Environment) (*types.Value, error) {
	b := callee.Builtin
	got := types.ListLen(forms)
	if (b.Variadic && got < b.Arity) || (!b.Variadic && got != b.Arity) {
		return nil, &ArityError{Name: b.Name, Expected: b.Arity, Got: got, Variadic: b.Variadic}
	}

	args, err := e.evalArgs(forms, env)
	if err != nil {
		return nil, err
	}

	res, err := b.Fn(args, env)
	e.pool.Deref(args)
	return res, err
}

// evalArgs evaluates each element of a form list left to right into a
// fresh list owned by the caller.
func (e *Evaluator) evalArgs(forms *types.Value, env *Environment) (*types.Value, error) {
	if forms.Tag != types.TagCons {
		return e.pool.Nil(), nil
	}

	head, err := e.eval(forms.Car, env)
	if err != nil {
		return nil, err
	}

	tail, err := e.evalArgs(forms.Cdr, env)
	if err != nil {
		e.pool.Deref(head)
		return nil, err
	}

	return e.pool.Cons(head, tail), nil
}

func (e *Evaluator) applyProcedure(callee, forms *types.Value, env *Environment) (*types.Value, error) {
	proc := callee.Proc
	callEnv := NewChildEnvironment(proc.Env.(*Environment))

	if err := e.bindParams(callEnv, proc.Params, forms, env, true, "procedure"); err != nil {
		callEnv.Destroy()
		return nil, err
	}

	res, err := e.eval(proc.Body, callEnv)
	callEnv.Destroy()
	return res, err
}

// applyMacro binds the unevaluated argument forms, evaluates the body to
// obtain an expansion, then evaluates the expansion under the caller's
// environment.
func (e *Evaluator) applyMacro(callee, forms *types.Value, env *Environment) (*types.Value, error) {
	proc := callee.Proc
	macroEnv := NewChildEnvironment(proc.Env.(*Environment))

	if err := e.bindParams(macroEnv, proc.Params, forms, env, false, "macro"); err != nil {
		macroEnv.Destroy()
		return nil, err
	}

	expansion, err := e.eval(proc.Body, macroEnv)
	macroEnv.Destroy()
	if err != nil {
		return nil, err
	}

	res, err := e.eval(expansion, env)
	e.pool.Deref(expansion)
	return res, err
}

// bindParams walks parameter names in lockstep with argument forms. For
// procedures (evaluate=true) each form is evaluated under callerEnv; for
// macros the forms bind verbatim. The sentinel &rest collects the
// remaining arguments as a list under the following name.
func (e *Evaluator) bindParams(callEnv *Environment, params, forms *types.Value, callerEnv *Environment, evaluate bool, what string) error {
	got := types.ListLen(forms)
	names := params
	for names.Tag == types.TagCons {
		name := names.Car
		if name.Tag != types.TagSymbol {
			return fmt.Errorf("%s parameter is not a symbol: %s", what, name)
		}

		if name.Text == "&rest" {
			names = names.Cdr
			if names.Tag != types.TagCons || names.Car.Tag != types.TagSymbol || !names.Cdr.IsNil() {
				return fmt.Errorf("&rest must be immediately followed by exactly one name")
			}
			restName := names.Car.Text

			if evaluate {
				restArgs, err := e.evalArgs(forms, callerEnv)
				if err != nil {
					return err
				}
				callEnv.Put(restName, restArgs)
				e.pool.Deref(restArgs)
			} else if forms.Tag == types.TagCons {
				callEnv.Put(restName, forms)
			} else {
				empty := e.pool.Nil()
				callEnv.Put(restName, empty)
				e.pool.Deref(empty)
			}
			return nil
		}

		if forms.Tag != types.TagCons {
			fixed, _ := paramArity(params)
			return &ArityError{Name: what, Expected: fixed, Got: got}
		}

		if evaluate {
			argVal, err := e.eval(forms.Car, callerEnv)
			if err != nil {
				return err
			}
			callEnv.Put(name.Text, argVal)
			e.pool.Deref(argVal)
		} else {
			callEnv.Put(name.Text, forms.Car)
		}

		names = names.Cdr
		forms = forms.Cdr
	}

	if forms.Tag == types.TagCons {
		fixed, _ := paramArity(params)
		return &ArityError{Name: what, Expected: fixed, Got: got}
	}
	return nil
}

// paramArity counts fixed parameters and reports whether the list
// carries the &rest sentinel.
func paramArity(params *types.Value) (int, bool) {
	fixed := 0
	for p := params; p.Tag == types.TagCons; p = p.Cdr {
		if p.Car.Tag == types.TagSymbol && p.Car.Text == "&rest" {
			return fixed, true
		}
		fixed++
	}
	return fixed, false
}
