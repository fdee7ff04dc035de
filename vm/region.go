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

import "github.com/pkg/errors"

// Region is the single memory region of §4.1: a fixed-size pair pool plus a
// shared budget of "cells" contested by the atom/string heap (growing
// upward, measured in bytes) and the value stack (growing as a plain Go
// slice). The teacher's vm.Image is one flat []Cell; here the pool keeps
// that shape (a []Value addressed by pair-cell index) while the heap and
// stack are kept as two separate Go slices sharing one capacity budget, the
// idiomatic-Go rendering of "the heap and stack compete for the same
// underlying space above the pool" -- see DESIGN.md for the full rationale.
type Region struct {
	pool   []Value
	marked []bool
	fp     int // free pair-list head; 0 = empty (pair index 0 is a sentinel)

	heap []byte // atom/string heap, tightly packed, NUL-terminated entries
	stack []Value

	budget int // shared heap/stack capacity, in cell units (the spec's S)

	global Value // the global environment, a distinguished GC root

	lastStats GCStats
}

// NewRegion constructs a Region with poolCells cells dedicated to the pair
// pool (rounded up to an even number) and a shared heap/stack budget of
// budgetCells cells (the spec's S).
func NewRegion(poolCells, budgetCells int) (*Region, error) {
	if poolCells < 4 {
		return nil, errors.Errorf("pool size %d too small", poolCells)
	}
	if budgetCells < 16 {
		return nil, errors.Errorf("heap/stack budget %d too small", budgetCells)
	}
	if poolCells%2 != 0 {
		poolCells++
	}
	rg := &Region{
		pool:   make([]Value, poolCells),
		marked: make([]bool, poolCells/2),
		heap:   make([]byte, 0, budgetCells*8),
		stack:  make([]Value, 0, budgetCells),
		budget: budgetCells,
		global: Nil,
	}
	fp := 0
	for pi := poolCells/2 - 1; pi >= 1; pi-- {
		idx := pi * 2
		rg.pool[idx] = box(uint64(KindNil), uint64(fp))
		fp = idx
	}
	rg.fp = fp
	return rg, nil
}

func isPairKind(k Kind) bool {
	return k == KindCons || k == KindClosure || k == KindMacro
}

func (rg *Region) poolPairs() int { return len(rg.pool) / 2 }

// GlobalEnv returns the current global environment value.
func (rg *Region) GlobalEnv() Value { return rg.global }

// SetGlobalEnv replaces the global environment wholesale. Used by host
// programs bootstrapping a fresh interpreter; ordinary definitions go
// through Define instead.
func (rg *Region) SetGlobalEnv(env Value) { rg.global = env }

// fits reports whether heapBytes of heap usage and stackLen cells of stack
// usage together stay within the shared budget (the Region rendering of
// the spec's "hp ≤ 8·(sp−1)" invariant).
func (rg *Region) fits(heapBytes, stackLen int) bool {
	heapCells := (heapBytes + 7) / 8
	return heapCells+stackLen <= rg.budget
}

// AllocatePair consumes the head of the pair free list, running the
// garbage collector first if the list is empty. Fails with ErrOutOfMemory
// if the pool is still exhausted after collection.
func (rg *Region) AllocatePair() (int, error) {
	if rg.fp == 0 {
		rg.Collect()
		if rg.fp == 0 {
			return 0, newError(ErrOutOfMemory, "pair pool exhausted")
		}
	}
	idx := rg.fp
	rg.fp = rg.pool[idx].Ordinal()
	return idx, nil
}

// Cons allocates a new pair, protecting both arguments on the stack across
// the allocation (which may trigger a GC) per the §4.4 protection contract.
func (rg *Region) Cons(a, d Value) (Value, error) {
	sa, err := rg.Push(a)
	if err != nil {
		return Nil, err
	}
	sd, err := rg.Push(d)
	if err != nil {
		rg.Unwind(sa)
		return Nil, err
	}
	idx, err := rg.AllocatePair()
	if err != nil {
		rg.Unwind(sa)
		return Nil, err
	}
	rg.pool[idx] = rg.stack[sa]
	rg.pool[idx+1] = rg.stack[sd]
	rg.Unwind(sa)
	return consValue(idx), nil
}

// NewClosure builds a Closure value pointing at ((params . body) . scope),
// per §3.2. scope should be Nil to mean "use the global environment at call
// time", or a captured environment list.
func (rg *Region) NewClosure(params, body, scope Value) (Value, error) {
	inner, err := rg.Cons(params, body)
	if err != nil {
		return Nil, err
	}
	sinner, err := rg.Push(inner)
	if err != nil {
		return Nil, err
	}
	outer, err := rg.Cons(rg.stack[sinner], scope)
	rg.Unwind(sinner)
	if err != nil {
		return Nil, err
	}
	return closureValue(outer.Ordinal()), nil
}

// NewMacro builds a Macro value pointing at (params . body), per §3.2.
func (rg *Region) NewMacro(params, body Value) (Value, error) {
	c, err := rg.Cons(params, body)
	if err != nil {
		return Nil, err
	}
	return macroValue(c.Ordinal()), nil
}

// Car returns the car of a Cons/Closure/Macro; fails with ErrNotAPair
// otherwise.
func (rg *Region) Car(v Value) (Value, error) {
	if !isPairKind(v.Kind()) {
		return Nil, newError(ErrNotAPair, "car: %v is not a pair", v.Kind())
	}
	return rg.pool[v.Ordinal()], nil
}

// Cdr returns the cdr of a Cons/Closure/Macro; fails with ErrNotAPair
// otherwise.
func (rg *Region) Cdr(v Value) (Value, error) {
	if !isPairKind(v.Kind()) {
		return Nil, newError(ErrNotAPair, "cdr: %v is not a pair", v.Kind())
	}
	return rg.pool[v.Ordinal()+1], nil
}

// SetCar mutates the car of a pair in place.
func (rg *Region) SetCar(v, val Value) error {
	if !isPairKind(v.Kind()) {
		return newError(ErrNotAPair, "set-car!: %v is not a pair", v.Kind())
	}
	rg.pool[v.Ordinal()] = val
	return nil
}

// SetCdr mutates the cdr of a pair in place.
func (rg *Region) SetCdr(v, val Value) error {
	if !isPairKind(v.Kind()) {
		return newError(ErrNotAPair, "set-cdr!: %v is not a pair", v.Kind())
	}
	rg.pool[v.Ordinal()+1] = val
	return nil
}

// Push decrements the stack and writes v at the new top, running the
// collector first if the shared heap/stack budget would be exceeded. It
// returns a long-lived handle into the slot (stable until a later Unwind
// drops below it) so that callers can protect temporaries across
// allocations that might trigger a GC -- see StackGet/StackSet.
func (rg *Region) Push(v Value) (int, error) {
	if !rg.fits(len(rg.heap), len(rg.stack)+1) {
		rg.Collect()
		if !rg.fits(len(rg.heap), len(rg.stack)+1) {
			return 0, newError(ErrStackOverflow, "value stack exhausted")
		}
	}
	rg.stack = append(rg.stack, v)
	return len(rg.stack) - 1, nil
}

// Pop removes and returns the top of the stack, or Nil if the stack is
// empty.
func (rg *Region) Pop() Value {
	n := len(rg.stack)
	if n == 0 {
		return Nil
	}
	v := rg.stack[n-1]
	rg.stack = rg.stack[:n-1]
	return v
}

// Watermark returns the current stack depth, for later use with Unwind.
func (rg *Region) Watermark() int { return len(rg.stack) }

// Unwind resets the stack to a previously recorded watermark. Used by
// catch/throw and by the REPL to guarantee "at the top of the REPL loop
// the stack must be empty" (§3.5).
func (rg *Region) Unwind(mark int) {
	if mark < 0 {
		mark = 0
	}
	if mark < len(rg.stack) {
		rg.stack = rg.stack[:mark]
	}
}

// StackGet reads the value at stack slot i (as returned by Push).
func (rg *Region) StackGet(i int) Value { return rg.stack[i] }

// StackSet overwrites the value at stack slot i.
func (rg *Region) StackSet(i int, v Value) { rg.stack[i] = v }

// StackLen returns the number of live stack entries.
func (rg *Region) StackLen() int { return len(rg.stack) }
