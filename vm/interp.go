// This file is part of lisp - https://github.com/db47h/lisp
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

const (
	defaultPoolCells = 1 << 16
	defaultBudget    = 1 << 16
)

// EvalMode is the evaluation-mode flag a Primitive is registered with,
// per §4.8/§4.9.
type EvalMode int

// The three evaluation modes of §4.8.
const (
	// ModeNormal primitives receive their arguments already evaluated.
	ModeNormal EvalMode = iota
	// ModeSpecial primitives receive the raw argument list and the
	// current environment by reference.
	ModeSpecial
	// ModeTailcall primitives return a new (expr, env) pair for the
	// evaluator loop to continue with, instead of a final value.
	ModeTailcall
)

// NormalFunc implements a ModeNormal primitive: args is the already
// evaluated argument list.
type NormalFunc func(it *Interp, args Value) (Value, error)

// SpecialFunc implements a ModeSpecial primitive: args is the raw,
// unevaluated argument list; env is a pointer to the current environment
// slot so the primitive may extend or mutate the caller's scope (used by
// define, setq, and, or, while, lambda, macro, catch).
type SpecialFunc func(it *Interp, args Value, env *Value) (Value, error)

// TailFunc implements a ModeTailcall primitive: it returns the next
// expression and environment for the evaluator's loop to continue with.
type TailFunc func(it *Interp, args Value, env Value) (expr, newEnv Value, err error)

// Primitive is one entry of the primitive table (§2, §4.9/§4.10).
type Primitive struct {
	Name    string
	Mode    EvalMode
	Normal  NormalFunc
	Special SpecialFunc
	Tail    TailFunc
}

// Option configures an Interp at construction time, mirroring the
// teacher's functional-options pattern (vm.New's DataSize/AddressSize/...).
type Option func(*Interp) error

// PoolSize sets the number of pair-pool cells (rounded up to an even
// number), the spec's P.
func PoolSize(cells int) Option {
	return func(it *Interp) error {
		it.poolCells = cells
		return nil
	}
}

// BudgetSize sets the shared heap/stack budget in cells, the spec's S.
func BudgetSize(cells int) Option {
	return func(it *Interp) error {
		it.budgetCells = cells
		return nil
	}
}

// Extension registers an additional primitive at construction time (the
// "registry of additional primitives" of §6.3), for opt-in extension
// packages such as ext_string.go/ext_math.go/ext_sys.go/ext_sleep.go.
func Extension(name string, p Primitive) Option {
	return func(it *Interp) error {
		it.pendingExt = append(it.pendingExt, namedPrim{name, p})
		return nil
	}
}

type namedPrim struct {
	name string
	prim Primitive
}

// Interp is a complete, embeddable Lisp interpreter instance: a Region
// plus the primitive table bound into the global environment. Two
// instances never share state (§5).
type Interp struct {
	*Region

	poolCells   int
	budgetCells int
	pendingExt  []namedPrim

	prims     []Primitive
	primIndex map[string]int

	gcRunning     bool
	gensymCounter int
}

// New constructs an Interp, allocating its Region and installing the core
// primitive table of §4.9/§4.10 plus any Extension options supplied.
func New(opts ...Option) (*Interp, error) {
	it := &Interp{
		poolCells:   defaultPoolCells,
		budgetCells: defaultBudget,
		primIndex:   make(map[string]int),
	}
	for _, opt := range opts {
		if err := opt(it); err != nil {
			return nil, err
		}
	}
	rg, err := NewRegion(it.poolCells, it.budgetCells)
	if err != nil {
		return nil, err
	}
	it.Region = rg
	if err := it.installCore(); err != nil {
		return nil, err
	}
	for _, np := range it.pendingExt {
		if err := it.Register(np.name, np.prim); err != nil {
			return nil, err
		}
	}
	return it, nil
}

// Register adds a primitive under name to the table and binds it in the
// global environment, for use by extension packages and host programs
// (§6.3's embedding registry).
func (it *Interp) Register(name string, p Primitive) error {
	p.Name = name
	idx := len(it.prims)
	it.prims = append(it.prims, p)
	it.primIndex[name] = idx
	a, err := it.Atom(name)
	if err != nil {
		return err
	}
	return it.Define(a, primitiveValue(idx))
}

// Atom interns name as an Atom value; a thin convenience wrapper around
// Region.InternAtom taking a Go string.
func (it *Interp) Atom(name string) (Value, error) {
	return it.InternAtom([]byte(name))
}

// PrimitiveByIndex returns the Primitive table entry for idx.
func (it *Interp) PrimitiveByIndex(idx int) Primitive { return it.prims[idx] }
