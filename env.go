// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

// Env is an immutable, lexically nested name-to-Value mapping. define
// never mutates its receiver: it returns a new Env whose parent is the
// old one, so a captured environment stays valid even after later
// definitions shadow names in it.
type Env struct {
	name   string
	cell   *Value
	parent *Env
}

// EmptyEnv is the environment with no bindings.
var EmptyEnv *Env

// Define returns a new environment extending env with name bound to v.
// Later definitions shadow earlier ones for lookup purposes; the
// earlier environment is unaffected, which is what lets a closure keep
// the bindings it captured even as the defining scope moves on.
func (env *Env) Define(name string, v Value) *Env {
	cell := v
	return &Env{name: name, cell: &cell, parent: env}
}

// DefineRec returns a new environment with name bound to a cell that is
// not yet populated, plus the cell itself. The caller builds a closure
// capturing the returned environment (which already contains the
// cell), then fills the cell with that closure via Cell.Set — giving
// the closure a self-reference without mutating any binding that
// existed before the call. See eval.go's buildRec.
func (env *Env) DefineRec(name string) (*Env, *Cell) {
	c := &Cell{}
	return &Env{name: name, cell: &c.v, parent: env}, c
}

// Cell is a once-populated indirection cell used to tie the knot for
// recursive bindings. Reading an unset cell is a fatal error: it means
// the recursive closure was invoked before Set completed, which cannot
// happen through ordinary evaluation (Rec always populates the cell
// before returning the extended environment to eval).
type Cell struct {
	v Value
}

// Set populates the cell. It must be called exactly once.
func (c *Cell) Set(v Value) { c.v = v }

// Binding is a single name/value pair, used by MakeEnv to build an
// environment in bulk (e.g. the initial environment in builtins.go).
type Binding struct {
	Name  string
	Value Value
}

// MakeEnv builds an environment from the outside in: pairs[0] is bound
// first (outermost), pairs[len-1] last (innermost, shadowing).
func MakeEnv(pairs []Binding) *Env {
	env := EmptyEnv
	for _, p := range pairs {
		env = env.Define(p.Name, p.Value)
	}
	return env
}

// Find looks up name, walking outward through parents. An absent name
// is a fatal runtime error: undefined variables are a malformed
// program, not a language-level exception.
func (env *Env) Find(name string) (Value, error) {
	if v, ok := env.MaybeFind(name); ok {
		if v == nil {
			return nil, RuntimeErrorf("recursive binding %q read before it was set", name)
		}
		return v, nil
	}
	return nil, RuntimeErrorf("undefined variable %q", name)
}

// MaybeFind looks up name without failing, for callers that want to
// treat an absent name as ordinary control flow rather than an error.
// A recursive binding whose cell is not yet set is reported as found,
// with a nil Value.
func (env *Env) MaybeFind(name string) (Value, bool) {
	for e := env; e != nil; e = e.parent {
		if e.name == name {
			return *e.cell, true
		}
	}
	return nil, false
}

// Names lists every name bound in env, innermost (most recently
// defined) first; a shadowed name appears once per binding.
func (env *Env) Names() []string {
	var names []string
	for e := env; e != nil; e = e.parent {
		names = append(names, e.name)
	}
	return names
}
