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

// Assoc walks env (a list of (name . value) pairs) from head to tail and
// returns the value bound to name, per §3.4/§4.7. Fails with
// ErrUnboundSymbol if no entry matches.
func (rg *Region) Assoc(name, env Value) (Value, error) {
	for env.Kind() == KindCons {
		entry, err := rg.Car(env)
		if err != nil {
			return Nil, err
		}
		if entry.Kind() == KindCons {
			k, err := rg.Car(entry)
			if err != nil {
				return Nil, err
			}
			if k == name {
				return rg.Cdr(entry)
			}
		}
		env, err = rg.Cdr(env)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, newError(ErrUnboundSymbol, "unbound symbol")
}

// Define prepends a (name . value) binding to the global environment. It
// never overwrites an existing binding in place -- lookups simply find the
// new one first, per §3.4/§4.7.
func (rg *Region) Define(name, value Value) error {
	sv, err := rg.Push(value)
	if err != nil {
		return err
	}
	entry, err := rg.Cons(name, rg.stack[sv])
	if err != nil {
		rg.Unwind(sv)
		return err
	}
	rg.Unwind(sv)
	se, err := rg.Push(entry)
	if err != nil {
		return err
	}
	newGlobal, err := rg.Cons(rg.stack[se], rg.global)
	rg.Unwind(se)
	if err != nil {
		return err
	}
	rg.global = newGlobal
	return nil
}

// Setq walks env from innermost to outermost and mutates the cdr of the
// first entry bound to name, per §4.7. Fails with ErrUnboundSymbol if
// absent. Callers evaluate the right-hand side before calling Setq, per
// SPEC_FULL.md's Open Question decision on evaluation order.
func (rg *Region) Setq(name, env, value Value) error {
	for env.Kind() == KindCons {
		entry, err := rg.Car(env)
		if err != nil {
			return err
		}
		if entry.Kind() == KindCons {
			k, err := rg.Car(entry)
			if err != nil {
				return err
			}
			if k == name {
				return rg.SetCdr(entry, value)
			}
		}
		env, err = rg.Cdr(env)
		if err != nil {
			return err
		}
	}
	return newError(ErrUnboundSymbol, "setq: unbound symbol")
}
