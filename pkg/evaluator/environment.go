package evaluator

import "github.com/jacksonmowry/lisp/pkg/types"

type binding struct {
	name  string
	value *types.Value
}

// Environment is an ordered sequence of bindings with an optional
// parent. Function calls extend the chain with a fresh child frame.
type Environment struct {
	bindings []binding
	parent   *Environment
	pool     *types.Pool
}

var _ types.Environment = (*Environment)(nil)

// NewEnvironment creates an empty root frame backed by pool.
func NewEnvironment(pool *types.Pool) *Environment {
	return &Environment{pool: pool}
}

// NewChildEnvironment creates an empty frame with parent as its chain.
func NewChildEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, pool: parent.pool}
}

// NewChild implements types.Environment.
func (e *Environment) NewChild() types.Environment {
	return NewChildEnvironment(e)
}

// Put binds name in the current frame, taking one reference on value.
// A same-name binding in this frame is replaced and its value released.
func (e *Environment) Put(name string, value *types.Value) {
	e.pool.Ref(value)
	for i := range e.bindings {
		if e.bindings[i].name == name {
			e.pool.Deref(e.bindings[i].value)
			e.bindings[i].value = value
			return
		}
	}
	e.bindings = append(e.bindings, binding{name: name, value: value})
}

// Get searches the current frame, then the parent chain. Unbound names
// resolve to a fresh Nil. The caller owns one reference on the result.
func (e *Environment) Get(name string) *types.Value {
	for env := e; env != nil; env = env.parent {
		for i := range env.bindings {
			if env.bindings[i].name == name {
				e.pool.Ref(env.bindings[i].value)
				return env.bindings[i].value
			}
		}
	}
	return e.pool.Nil()
}

// Peek returns a non-owning view of the binding, or nil when unbound.
func (e *Environment) Peek(name string) *types.Value {
	for env := e; env != nil; env = env.parent {
		for i := range env.bindings {
			if env.bindings[i].name == name {
				return env.bindings[i].value
			}
		}
	}
	return nil
}

// Destroy releases one reference per binding and empties the frame. The
// parent chain is untouched.
func (e *Environment) Destroy() {
	for i := range e.bindings {
		e.pool.Deref(e.bindings[i].value)
	}
	e.bindings = nil
}
