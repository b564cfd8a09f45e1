package evaluator

import (
	"testing"

	"github.com/jacksonmowry/lisp/pkg/reader"
	"github.com/jacksonmowry/lisp/pkg/types"
)

// rig bundles a pool, an evaluator, and a preloaded root environment.
type rig struct {
	pool *types.Pool
	eval *Evaluator
	env  *Environment
}

func newRig() *rig {
	pool := types.NewPool(types.DefaultCapacity)
	e := NewEvaluator(pool)
	return &rig{pool: pool, eval: e, env: e.NewRootEnvironment()}
}

// evalOwned parses and evaluates src, returning the owned result.
func (r *rig) evalOwned(t *testing.T, src string) *types.Value {
	t.Helper()

	form, err := reader.Parse(r.pool, src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	result, err := r.eval.Eval(form, r.env)
	r.pool.Deref(form)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return result
}

// evalString parses, evaluates, and renders src, releasing the result.
func (r *rig) evalString(t *testing.T, src string) string {
	t.Helper()

	result := r.evalOwned(t, src)
	s := result.String()
	r.pool.Deref(result)
	return s
}

// evalErr parses and evaluates src, expecting an evaluation error.
func (r *rig) evalErr(t *testing.T, src string) error {
	t.Helper()

	form, err := reader.Parse(r.pool, src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	result, err := r.eval.Eval(form, r.env)
	r.pool.Deref(form)
	if err == nil {
		r.pool.Deref(result)
		t.Fatalf("eval %q: expected error, got %s", src, result)
	}
	return err
}
