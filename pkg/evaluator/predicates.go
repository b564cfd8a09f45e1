package evaluator

import "github.com/jacksonmowry/lisp/pkg/types"

// builtinTag returns the canonical tag symbol of its argument
// (#number, #string, ...).
func (e *Evaluator) builtinTag(args *types.Value, env types.Environment) (*types.Value, error) {
	return e.pool.Symbol(args.Car.Tag.String()), nil
}

func (e *Evaluator) makePredicate(tag types.Tag) types.BuiltinFn {
	return func(args *types.Value, env types.Environment) (*types.Value, error) {
		return e.pool.Boolean(args.Car.Tag == tag), nil
	}
}

func (e *Evaluator) builtinSymbolEq(args *types.Value, env types.Environment) (*types.Value, error) {
	a, b := args.Car, args.Cdr.Car
	if a.Tag != types.TagSymbol {
		return nil, &TypeError{Name: "symbol-eq", Expected: types.TagSymbol, Got: a.Tag}
	}
	if b.Tag != types.TagSymbol {
		return nil, &TypeError{Name: "symbol-eq", Expected: types.TagSymbol, Got: b.Tag}
	}
	return e.pool.Boolean(a.Text == b.Text), nil
}

func (e *Evaluator) builtinStringEq(args *types.Value, env types.Environment) (*types.Value, error) {
	a, b := args.Car, args.Cdr.Car
	if a.Tag != types.TagString {
		return nil, &TypeError{Name: "string-eq", Expected: types.TagString, Got: a.Tag}
	}
	if b.Tag != types.TagString {
		return nil, &TypeError{Name: "string-eq", Expected: types.TagString, Got: b.Tag}
	}
	return e.pool.Boolean(a.Text == b.Text), nil
}
