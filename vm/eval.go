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

// Eval evaluates expr in env, looping instead of recursing on tail calls
// so that a tail-recursive Lisp program runs in O(1) native stack (§4.8,
// §8.1 invariant 7).
func (it *Interp) Eval(expr, env Value) (Value, error) {
	for {
		switch expr.Kind() {
		case KindAtom:
			return it.Assoc(expr, env)
		case KindCons:
			nexpr, nenv, done, result, err := it.step(expr, env)
			if err != nil {
				return Nil, err
			}
			if done {
				return result, nil
			}
			expr, env = nexpr, nenv
		default:
			return expr, nil
		}
	}
}

// step performs one application: expr is a Cons whose car is the operator
// position and whose cdr is the argument list. It protects the operator
// position's environment, argument list, and resolved function value on
// the stack across the allocations that evaluating them may trigger (§4.8:
// "protects four temporaries on the stack across each step"), and either
// returns a final result (done=true) or the next (expr, env) for Eval's
// loop to continue with.
func (it *Interp) step(expr, env Value) (nexpr, nenv Value, done bool, result Value, err error) {
	head, err := it.Car(expr)
	if err != nil {
		return Nil, Nil, true, Nil, err
	}
	rest, err := it.Cdr(expr)
	if err != nil {
		return Nil, Nil, true, Nil, err
	}

	senv, err := it.Push(env)
	if err != nil {
		return Nil, Nil, true, Nil, err
	}
	srest, err := it.Push(rest)
	if err != nil {
		it.Unwind(senv)
		return Nil, Nil, true, Nil, err
	}

	fn, err := it.Eval(head, env)
	if err != nil {
		it.Unwind(senv)
		return Nil, Nil, true, Nil, err
	}
	sfn, err := it.Push(fn)
	if err != nil {
		it.Unwind(senv)
		return Nil, Nil, true, Nil, err
	}
	_ = sfn

	switch fn.Kind() {
	case KindPrimitive:
		prim := it.prims[fn.Ordinal()]
		switch prim.Mode {
		case ModeNormal:
			argsVal, err := it.Evlis(it.StackGet(srest), env)
			if err != nil {
				it.Unwind(senv)
				return Nil, Nil, true, Nil, err
			}
			sargs, err := it.Push(argsVal)
			if err != nil {
				it.Unwind(senv)
				return Nil, Nil, true, Nil, err
			}
			v, err := prim.Normal(it, it.StackGet(sargs))
			it.Unwind(senv)
			return Nil, Nil, true, v, err
		case ModeSpecial:
			e := it.StackGet(senv)
			v, err := prim.Special(it, it.StackGet(srest), &e)
			it.Unwind(senv)
			return Nil, Nil, true, v, err
		case ModeTailcall:
			ne, nenv, err := prim.Tail(it, it.StackGet(srest), it.StackGet(senv))
			it.Unwind(senv)
			if err != nil {
				return Nil, Nil, true, Nil, err
			}
			return ne, nenv, false, Nil, nil
		default:
			it.Unwind(senv)
			return Nil, Nil, true, Nil, newError(ErrCannotApply, "unknown primitive mode")
		}
	case KindClosure:
		inner, err := it.Car(fn)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		scope, err := it.Cdr(fn)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		params, err := it.Car(inner)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		body, err := it.Cdr(inner)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		base := scope
		if base.IsNil() {
			base = it.GlobalEnv()
		}
		calleeEnv, err := it.bindParams(params, it.StackGet(srest), true, env, base)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		ne, nenv, err := it.sequenceTail(body, calleeEnv)
		it.Unwind(senv)
		if err != nil {
			return Nil, Nil, true, Nil, err
		}
		return ne, nenv, false, Nil, nil
	case KindMacro:
		params, err := it.Car(fn)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		body, err := it.Cdr(fn)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		macroEnv, err := it.bindParams(params, it.StackGet(srest), false, Nil, it.GlobalEnv())
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		bexpr, benv, err := it.sequenceTail(body, macroEnv)
		if err != nil {
			it.Unwind(senv)
			return Nil, Nil, true, Nil, err
		}
		expansion, err := it.Eval(bexpr, benv)
		callerEnv := it.StackGet(senv)
		it.Unwind(senv)
		if err != nil {
			return Nil, Nil, true, Nil, err
		}
		return expansion, callerEnv, false, Nil, nil
	default:
		it.Unwind(senv)
		return Nil, Nil, true, Nil, newError(ErrCannotApply, "%v is not applicable", fn.Kind())
	}
}

// sequenceTail evaluates every expression in body except the last (a
// Cons-list of expressions, as used by `begin` and closure/macro bodies)
// and returns the last expression and env as a tail-position continuation,
// per the `begin` row of §4.9. An empty body continues with Nil.
func (it *Interp) sequenceTail(body, env Value) (Value, Value, error) {
	if body.Kind() != KindCons {
		return Nil, env, nil
	}
	for {
		head, err := it.Car(body)
		if err != nil {
			return Nil, Nil, err
		}
		tail, err := it.Cdr(body)
		if err != nil {
			return Nil, Nil, err
		}
		if tail.Kind() != KindCons {
			return head, env, nil
		}
		if _, err := it.Eval(head, env); err != nil {
			return Nil, Nil, err
		}
		body = tail
	}
}

// Evlis evaluates a call's argument list into a new list of values (§4.8).
// A Cons is evaluated element by element; an atom tail is itself evaluated
// to obtain the remaining elements (the "rest" case of closure argument
// binding); Nil evaluates to Nil.
func (it *Interp) Evlis(list, env Value) (Value, error) {
	switch list.Kind() {
	case KindNil:
		return Nil, nil
	case KindCons:
		head, err := it.Car(list)
		if err != nil {
			return Nil, err
		}
		tail, err := it.Cdr(list)
		if err != nil {
			return Nil, err
		}
		hv, err := it.Eval(head, env)
		if err != nil {
			return Nil, err
		}
		sh, err := it.Push(hv)
		if err != nil {
			return Nil, err
		}
		tv, err := it.Evlis(tail, env)
		if err != nil {
			it.Unwind(sh)
			return Nil, err
		}
		st, err := it.Push(tv)
		if err != nil {
			it.Unwind(sh)
			return Nil, err
		}
		result, err := it.Cons(it.StackGet(sh), it.StackGet(st))
		it.Unwind(sh)
		return result, err
	default:
		return it.Eval(list, env)
	}
}

// bindParams implements the closure/macro argument-binding algorithm of
// §4.8: positional parameters in v are consumed alongside arguments in x;
// a trailing atom in v binds the remaining arguments (evaluated via Evlis
// when evalArgs is set, passed through verbatim for macros otherwise).
// Fails with ErrBadArguments if v still requires parameters once x is
// exhausted.
func (it *Interp) bindParams(v, x Value, evalArgs bool, callerEnv, base Value) (Value, error) {
	env := base
	// The frame built so far stays in this slot for the whole call, so a GC
	// triggered while evaluating the next argument cannot reclaim it.
	senv, err := it.Push(env)
	if err != nil {
		return Nil, err
	}
	defer it.Unwind(senv)
	for v.Kind() == KindCons {
		if x.Kind() != KindCons {
			return Nil, newError(ErrBadArguments, "too few arguments")
		}
		pname, err := it.Car(v)
		if err != nil {
			return Nil, err
		}
		aexpr, err := it.Car(x)
		if err != nil {
			return Nil, err
		}
		var aval Value
		if evalArgs {
			aval, err = it.Eval(aexpr, callerEnv)
			if err != nil {
				return Nil, err
			}
		} else {
			aval = aexpr
		}
		sv, err := it.Push(aval)
		if err != nil {
			return Nil, err
		}
		entry, err := it.Cons(pname, it.StackGet(sv))
		it.Unwind(sv)
		if err != nil {
			return Nil, err
		}
		se, err := it.Push(entry)
		if err != nil {
			return Nil, err
		}
		env, err = it.Cons(it.StackGet(se), it.StackGet(senv))
		it.Unwind(se)
		if err != nil {
			return Nil, err
		}
		it.StackSet(senv, env)
		v, err = it.Cdr(v)
		if err != nil {
			return Nil, err
		}
		x, err = it.Cdr(x)
		if err != nil {
			return Nil, err
		}
	}
	if v.Kind() != KindNil {
		var rest Value
		if evalArgs {
			rest, err = it.Evlis(x, callerEnv)
		} else if x.Kind() == KindNil {
			rest = Nil
		} else {
			rest = x
		}
		if err != nil {
			return Nil, err
		}
		sr, err := it.Push(rest)
		if err != nil {
			return Nil, err
		}
		entry, err := it.Cons(v, it.StackGet(sr))
		it.Unwind(sr)
		if err != nil {
			return Nil, err
		}
		se, err := it.Push(entry)
		if err != nil {
			return Nil, err
		}
		env, err = it.Cons(it.StackGet(se), it.StackGet(senv))
		it.Unwind(se)
		if err != nil {
			return Nil, err
		}
	}
	return env, nil
}

// Apply calls fn (a Primitive or Closure) with an already-evaluated
// argument list, for host programs embedding the interpreter (§6.3) and for
// primitives such as `curry` that need to invoke a function value directly
// rather than build and re-enter a call expression.
func (it *Interp) Apply(fn, args Value) (Value, error) {
	return it.applyValue(fn, args)
}

// applyValue applies an already-resolved function value to an
// already-evaluated argument list, bypassing the normal Evlis step (its
// arguments are wrapped in `quote` by the caller or are used directly, as
// for Normal-mode primitives).
func (it *Interp) applyValue(fn, args Value) (Value, error) {
	switch fn.Kind() {
	case KindPrimitive:
		prim := it.prims[fn.Ordinal()]
		if prim.Mode != ModeNormal {
			return Nil, newError(ErrCannotApply, "apply: %s is not a normal-mode primitive", prim.Name)
		}
		return prim.Normal(it, args)
	case KindClosure:
		inner, err := it.Car(fn)
		if err != nil {
			return Nil, err
		}
		scope, err := it.Cdr(fn)
		if err != nil {
			return Nil, err
		}
		params, err := it.Car(inner)
		if err != nil {
			return Nil, err
		}
		body, err := it.Cdr(inner)
		if err != nil {
			return Nil, err
		}
		base := scope
		if base.IsNil() {
			base = it.GlobalEnv()
		}
		env, err := it.bindParams(params, args, false, Nil, base)
		if err != nil {
			return Nil, err
		}
		bexpr, benv, err := it.sequenceTail(body, env)
		if err != nil {
			return Nil, err
		}
		return it.Eval(bexpr, benv)
	default:
		return Nil, newError(ErrCannotApply, "apply: %v is not applicable", fn.Kind())
	}
}
