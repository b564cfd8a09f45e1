package evaluator

import (
	"math"

	"github.com/jacksonmowry/lisp/pkg/types"
)

// Arithmetic folds left with the first operand as identity, so
// (- 10 1 2) is 7. All operands must be numbers.
func (e *Evaluator) makeArithmetic(name string, op func(a, b float64) float64) types.BuiltinFn {
	return func(args *types.Value, env types.Environment) (*types.Value, error) {
		first := args.Car
		if first.Tag != types.TagNumber {
			return nil, &TypeError{Name: name, Expected: types.TagNumber, Got: first.Tag}
		}
		acc := first.Number

		for c := args.Cdr; c.Tag == types.TagCons; c = c.Cdr {
			if c.Car.Tag != types.TagNumber {
				return nil, &TypeError{Name: name, Expected: types.TagNumber, Got: c.Car.Tag}
			}
			acc = op(acc, c.Car.Number)
		}
		return e.pool.Number(acc), nil
	}
}

func (e *Evaluator) makeComparison(name string, op func(a, b float64) bool) types.BuiltinFn {
	return func(args *types.Value, env types.Environment) (*types.Value, error) {
		a, b := args.Car, args.Cdr.Car
		if a.Tag != types.TagNumber {
			return nil, &TypeError{Name: name, Expected: types.TagNumber, Got: a.Tag}
		}
		if b.Tag != types.TagNumber {
			return nil, &TypeError{Name: name, Expected: types.TagNumber, Got: b.Tag}
		}
		return e.pool.Boolean(op(a.Number, b.Number)), nil
	}
}

// makeEquality builds = and !=, defined over two numbers or two booleans.
func (e *Evaluator) makeEquality(name string, negate bool) types.BuiltinFn {
	return func(args *types.Value, env types.Environment) (*types.Value, error) {
		a, b := args.Car, args.Cdr.Car

		var eq bool
		switch {
		case a.Tag == types.TagNumber && b.Tag == types.TagNumber:
			eq = a.Number == b.Number
		case a.Tag == types.TagBoolean && b.Tag == types.TagBoolean:
			eq = a.Bool == b.Bool
		default:
			got := a.Tag
			if got == types.TagNumber || got == types.TagBoolean {
				got = b.Tag
			}
			return nil, &TypeError{Name: name, Expected: types.TagNumber, Got: got}
		}

		if negate {
			eq = !eq
		}
		return e.pool.Boolean(eq), nil
	}
}

// remainder is the truncated-division remainder, as in C fmod.
func remainder(a, b float64) float64 {
	return math.Mod(a, b)
}
