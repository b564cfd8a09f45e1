package evaluator

import (
	"fmt"

	"github.com/jacksonmowry/lisp/pkg/types"
)

// Special forms receive their argument forms unevaluated and the
// environment of the call site.

// sfQuote returns its single argument verbatim.
func (e *Evaluator) sfQuote(args *types.Value, env types.Environment) (*types.Value, error) {
	if args.Tag != types.TagCons || !args.Cdr.IsNil() {
		return nil, &ArityError{Name: "quote", Expected: 1, Got: types.ListLen(args)}
	}
	e.pool.Ref(args.Car)
	return args.Car, nil
}

// sfDefine handles both value and procedure definitions:
//
//	(define NAME EXPR)
//	(define (NAME PARAM*) BODY)
func (e *Evaluator) sfDefine(args *types.Value, env types.Environment) (*types.Value, error) {
	ev := env.(*Environment)
	if args.Tag != types.TagCons || args.Cdr.Tag != types.TagCons {
		return nil, fmt.Errorf("define expects a name and a body")
	}

	switch head := args.Car; head.Tag {
	case types.TagSymbol:
		val, err := e.eval(args.Cdr.Car, ev)
		if err != nil {
			return nil, err
		}
		ev.Put(head.Text, val)
		return val, nil

	case types.TagCons:
		name := head.Car
		if name.Tag != types.TagSymbol {
			return nil, fmt.Errorf("define name is not a symbol: %s", name)
		}
		params := head.Cdr
		body := args.Cdr.Car

		e.pool.Ref(params)
		e.pool.Ref(body)
		proc := e.pool.Procedure(params, body, ev)
		ev.Put(name.Text, proc)
		return proc, nil

	default:
		return nil, fmt.Errorf("define expects a symbol or a (name params...) head, got %s", head.Tag)
	}
}

// sfDefineMacro is the macro analogue of the procedure form of define.
func (e *Evaluator) sfDefineMacro(args *types.Value, env types.Environment) (*types.Value, error) {
	ev := env.(*Environment)
	if args.Tag != types.TagCons || args.Car.Tag != types.TagCons || args.Cdr.Tag != types.TagCons {
		return nil, fmt.Errorf("define-macro expects (name params...) and a body")
	}

	head := args.Car
	name := head.Car
	if name.Tag != types.TagSymbol {
		return nil, fmt.Errorf("define-macro name is not a symbol: %s", name)
	}
	params := head.Cdr
	body := args.Cdr.Car

	e.pool.Ref(params)
	e.pool.Ref(body)
	macro := e.pool.Macro(params, body, ev)
	ev.Put(name.Text, macro)
	return macro, nil
}

// sfIf evaluates the condition, then exactly one branch.
func (e *Evaluator) sfIf(args *types.Value, env types.Environment) (*types.Value, error) {
	ev := env.(*Environment)
	if args.Tag != types.TagCons || args.Cdr.Tag != types.TagCons {
		return nil, fmt.Errorf("if expects a condition and a consequent")
	}

	cond, err := e.eval(args.Car, ev)
	if err != nil {
		return nil, err
	}
	truthy := cond.Truthy()
	e.pool.Deref(cond)

	if truthy {
		return e.eval(args.Cdr.Car, ev)
	}
	if args.Cdr.Cdr.Tag == types.TagCons {
		return e.eval(args.Cdr.Cdr.Car, ev)
	}
	return e.pool.Nil(), nil
}

// sfCond evaluates clause conditions in order and returns the body of
// the first truthy one; Nil when none match.
func (e *Evaluator) sfCond(args *types.Value, env types.Environment) (*types.Value, error) {
	ev := env.(*Environment)

	for c := args; c.Tag == types.TagCons; c = c.Cdr {
		clause := c.Car
		if clause.Tag != types.TagCons || clause.Cdr.Tag != types.TagCons {
			return nil, fmt.Errorf("cond clause is not a (condition expr) pair: %s", clause)
		}

		cond, err := e.eval(clause.Car, ev)
		if err != nil {
			return nil, err
		}
		truthy := cond.Truthy()
		e.pool.Deref(cond)

		if truthy {
			return e.eval(clause.Cdr.Car, ev)
		}
	}
	return e.pool.Nil(), nil
}

// sfAnd short-circuits on the first falsy operand.
func (e *Evaluator) sfAnd(args *types.Value, env types.Environment) (*types.Value, error) {
	ev := env.(*Environment)
	for c := args; c.Tag == types.TagCons; c = c.Cdr {
		v, err := e.eval(c.Car, ev)
		if err != nil {
			return nil, err
		}
		truthy := v.Truthy()
		e.pool.Deref(v)
		if !truthy {
			return e.pool.Boolean(false), nil
		}
	}
	return e.pool.Boolean(true), nil
}

// sfOr short-circuits on the first truthy operand.
func (e *Evaluator) sfOr(args *types.Value, env types.Environment) (*types.Value, error) {
	ev := env.(*Environment)
	for c := args; c.Tag == types.TagCons; c = c.Cdr {
		v, err := e.eval(c.Car, ev)
		if err != nil {
			return nil, err
		}
		truthy := v.Truthy()
		e.pool.Deref(v)
		if truthy {
			return e.pool.Boolean(true), nil
		}
	}
	return e.pool.Boolean(false), nil
}

// sfProgn evaluates each form in order and returns the last result.
func (e *Evaluator) sfProgn(args *types.Value, env types.Environment) (*types.Value, error) {
	ev := env.(*Environment)
	result := e.pool.Nil()
	for c := args; c.Tag == types.TagCons; c = c.Cdr {
		next, err := e.eval(c.Car, ev)
		if err != nil {
			e.pool.Deref(result)
			return nil, err
		}
		e.pool.Deref(result)
		result = next
	}
	return result, nil
}
