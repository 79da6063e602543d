package vals

import "sort"

// Env maps names to values. An Env may have an outer Env; lookups that fail
// locally continue in the outer one, while writes only ever affect the Env
// they are made on.
type Env struct {
	store map[string]Value
	outer *Env
}

// NewEnv returns a new root Env.
func NewEnv() *Env {
	return &Env{store: map[string]Value{}}
}

// NewEnclosedEnv returns a new Env whose outer Env is outer.
func NewEnclosedEnv(outer *Env) *Env {
	return &Env{store: map[string]Value{}, outer: outer}
}

// Outer returns the outer Env, or nil for a root Env.
func (e *Env) Outer() *Env { return e.outer }

// Get looks up a name in e and then in its outer Envs.
func (e *Env) Get(name string) (Value, bool) {
	for ; e != nil; e = e.outer {
		if v, ok := e.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds a name in e, shadowing any binding of the same name in the outer
// Envs. It returns v.
func (e *Env) Set(name string, v Value) Value {
	e.store[name] = v
	return v
}

// Names returns the names bound directly in e, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
