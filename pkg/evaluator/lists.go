package evaluator

import "github.com/jacksonmowry/lisp/pkg/types"

// builtinCar returns the first element of a pair. Nil has no car.
func (e *Evaluator) builtinCar(args *types.Value, env types.Environment) (*types.Value, error) {
	v := args.Car
	if v.Tag != types.TagCons {
		return nil, &TypeError{Name: "car", Expected: types.TagCons, Got: v.Tag}
	}
	e.pool.Ref(v.Car)
	return v.Car, nil
}

// builtinCdr returns the rest of a pair; Nil for singletons.
func (e *Evaluator) builtinCdr(args *types.Value, env types.Environment) (*types.Value, error) {
	v := args.Car
	if v.Tag != types.TagCons {
		return nil, &TypeError{Name: "cdr", Expected: types.TagCons, Got: v.Tag}
	}
	e.pool.Ref(v.Cdr)
	return v.Cdr, nil
}

func (e *Evaluator) builtinCons(args *types.Value, env types.Environment) (*types.Value, error) {
	car, cdr := args.Car, args.Cdr.Car
	e.pool.Ref(car)
	e.pool.Ref(cdr)
	return e.pool.Cons(car, cdr), nil
}

// builtinList returns its evaluated arguments as a list. The argument
// chain is already the list; it only needs an owning reference.
func (e *Evaluator) builtinList(args *types.Value, env types.Environment) (*types.Value, error) {
	e.pool.Ref(args)
	return args, nil
}

// builtinPrepend puts x at the front of a list: (prepend l x) is x ∷ l.
func (e *Evaluator) builtinPrepend(args *types.Value, env types.Environment) (*types.Value, error) {
	list, x := args.Car, args.Cdr.Car
	if list.Tag != types.TagCons && !list.IsNil() {
		return nil, &TypeError{Name: "prepend", Expected: types.TagCons, Got: list.Tag}
	}
	e.pool.Ref(x)
	e.pool.Ref(list)
	return e.pool.Cons(x, list), nil
}

// builtinAppend adds x at the end of a list, sharing the elements and
// rebuilding the spine.
func (e *Evaluator) builtinAppend(args *types.Value, env types.Environment) (*types.Value, error) {
	list, x := args.Car, args.Cdr.Car
	if list.Tag != types.TagCons && !list.IsNil() {
		return nil, &TypeError{Name: "append", Expected: types.TagCons, Got: list.Tag}
	}

	e.pool.Ref(x)
	tail := e.pool.Cons(x, e.pool.Nil())

	var elements []*types.Value
	for c := list; c.Tag == types.TagCons; c = c.Cdr {
		elements = append(elements, c.Car)
	}
	out := tail
	for i := len(elements) - 1; i >= 0; i-- {
		e.pool.Ref(elements[i])
		out = e.pool.Cons(elements[i], out)
	}
	return out, nil
}
