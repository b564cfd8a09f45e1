package evaluator

import "github.com/jacksonmowry/lisp/pkg/types"

// RegisterBuiltin binds a host function under name. The evaluator
// pre-evaluates arguments and enforces the declared arity before
// invoking it.
func RegisterBuiltin(env *Environment, name string, arity int, variadic bool, fn types.BuiltinFn) {
	v := env.pool.NewBuiltin(name, arity, variadic, fn)
	env.Put(name, v)
	env.pool.Deref(v)
}

// RegisterSpecialForm binds a host function that receives its argument
// forms unevaluated.
func RegisterSpecialForm(env *Environment, name string, fn types.SpecialFormFn) {
	v := env.pool.NewSpecialForm(name, fn)
	env.Put(name, v)
	env.pool.Deref(v)
}

func bindConstant(env *Environment, name string, v *types.Value) {
	env.Put(name, v)
	env.pool.Deref(v)
}

// NewRootEnvironment creates an environment preloaded with the special
// forms, builtins, constants, and tag symbols of the language surface.
func (e *Evaluator) NewRootEnvironment() *Environment {
	env := NewEnvironment(e.pool)

	bindConstant(env, "t", e.pool.Boolean(true))
	bindConstant(env, "f", e.pool.Boolean(false))
	bindConstant(env, "nil", e.pool.Nil())

	for _, tag := range []types.Tag{
		types.TagNil, types.TagNumber, types.TagString, types.TagBoolean,
		types.TagSymbol, types.TagCons, types.TagProcedure, types.TagMacro,
		types.TagBuiltin, types.TagSpecialForm,
	} {
		bindConstant(env, tag.String(), e.pool.Symbol(tag.String()))
	}

	RegisterSpecialForm(env, "quote", e.sfQuote)
	RegisterSpecialForm(env, "define", e.sfDefine)
	RegisterSpecialForm(env, "define-macro", e.sfDefineMacro)
	RegisterSpecialForm(env, "if", e.sfIf)
	RegisterSpecialForm(env, "cond", e.sfCond)
	RegisterSpecialForm(env, "and", e.sfAnd)
	RegisterSpecialForm(env, "or", e.sfOr)
	RegisterSpecialForm(env, "progn", e.sfProgn)

	RegisterBuiltin(env, "+", 1, true, e.makeArithmetic("+", func(a, b float64) float64 { return a + b }))
	RegisterBuiltin(env, "-", 1, true, e.makeArithmetic("-", func(a, b float64) float64 { return a - b }))
	RegisterBuiltin(env, "*", 1, true, e.makeArithmetic("*", func(a, b float64) float64 { return a * b }))
	RegisterBuiltin(env, "/", 1, true, e.makeArithmetic("/", func(a, b float64) float64 { return a / b }))
	RegisterBuiltin(env, "%", 1, true, e.makeArithmetic("%", remainder))

	RegisterBuiltin(env, "<", 2, false, e.makeComparison("<", func(a, b float64) bool { return a < b }))
	RegisterBuiltin(env, ">", 2, false, e.makeComparison(">", func(a, b float64) bool { return a > b }))
	RegisterBuiltin(env, "<=", 2, false, e.makeComparison("<=", func(a, b float64) bool { return a <= b }))
	RegisterBuiltin(env, ">=", 2, false, e.makeComparison(">=", func(a, b float64) bool { return a >= b }))
	RegisterBuiltin(env, "=", 2, false, e.makeEquality("=", false))
	RegisterBuiltin(env, "!=", 2, false, e.makeEquality("!=", true))

	RegisterBuiltin(env, "symbol-eq", 2, false, e.builtinSymbolEq)
	RegisterBuiltin(env, "string-eq", 2, false, e.builtinStringEq)

	RegisterBuiltin(env, "car", 1, false, e.builtinCar)
	RegisterBuiltin(env, "cdr", 1, false, e.builtinCdr)
	RegisterBuiltin(env, "cons", 2, false, e.builtinCons)
	RegisterBuiltin(env, "list", 0, true, e.builtinList)
	RegisterBuiltin(env, "prepend", 2, false, e.builtinPrepend)
	RegisterBuiltin(env, "append", 2, false, e.builtinAppend)

	RegisterBuiltin(env, "display", 1, false, e.builtinDisplay)
	RegisterBuiltin(env, "eval", 1, false, e.builtinEval)
	RegisterBuiltin(env, "tag", 1, false, e.builtinTag)

	RegisterBuiltin(env, "nil?", 1, false, e.makePredicate(types.TagNil))
	RegisterBuiltin(env, "number?", 1, false, e.makePredicate(types.TagNumber))
	RegisterBuiltin(env, "string?", 1, false, e.makePredicate(types.TagString))
	RegisterBuiltin(env, "boolean?", 1, false, e.makePredicate(types.TagBoolean))
	RegisterBuiltin(env, "symbol?", 1, false, e.makePredicate(types.TagSymbol))
	RegisterBuiltin(env, "list?", 1, false, e.makePredicate(types.TagCons))
	RegisterBuiltin(env, "procedure?", 1, false, e.makePredicate(types.TagProcedure))
	RegisterBuiltin(env, "macro?", 1, false, e.makePredicate(types.TagMacro))
	RegisterBuiltin(env, "builtin?", 1, false, e.makePredicate(types.TagBuiltin))
	RegisterBuiltin(env, "special-form?", 1, false, e.makePredicate(types.TagSpecialForm))

	return env
}
