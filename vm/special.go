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

// installCore registers the special-form and primitive table of §4.9/
// §4.10, plus the curry and gensym primitives supplemented per
// SPEC_FULL.md (curry is named in §8.1 invariant 9 but never defined in
// §4.10; gensym has no spec invariant but is promised by the same
// supplemented-features list).
func (it *Interp) installCore() error {
	specials := []struct {
		name string
		fn   SpecialFunc
	}{
		{"quote", spQuote},
		{"and", spAnd},
		{"or", spOr},
		{"while", spWhile},
		{"lambda", spLambda},
		{"macro", spMacro},
		{"define", spDefine},
		{"setq", spSetq},
		{"catch", spCatch},
	}
	for _, s := range specials {
		if err := it.Register(s.name, Primitive{Mode: ModeSpecial, Special: s.fn}); err != nil {
			return err
		}
	}

	tails := []struct {
		name string
		fn   TailFunc
	}{
		{"eval", tcEval},
		{"if", tcIf},
		{"cond", tcCond},
		{"begin", tcBegin},
		{"let", tcLet},
		{"let*", tcLetStar},
		{"letrec", tcLetrec},
		{"letrec*", tcLetrecStar},
	}
	for _, t := range tails {
		if err := it.Register(t.name, Primitive{Mode: ModeTailcall, Tail: t.fn}); err != nil {
			return err
		}
	}

	normals := []struct {
		name string
		fn   NormalFunc
	}{
		{"cons", primCons},
		{"car", primCar},
		{"cdr", primCdr},
		{"set-car!", primSetCar},
		{"set-cdr!", primSetCdr},
		{"eq?", primEqP},
		{"<", primLess},
		{"+", primAdd},
		{"-", primSub},
		{"*", primMul},
		{"/", primDiv},
		{"int", primInt},
		{"atom", primAtom},
		{"string", primString},
		{"type", primType},
		{"throw", primThrow},
		{"curry", primCurry},
		{"%curry-apply", primCurryApply},
		{"gensym", primGensym},
	}
	for _, n := range normals {
		if err := it.Register(n.name, Primitive{Mode: ModeNormal, Normal: n.fn}); err != nil {
			return err
		}
	}
	return nil
}

// spQuote returns its single argument unevaluated.
func spQuote(it *Interp, args Value, env *Value) (Value, error) {
	return it.Car(args)
}

// spAnd evaluates its arguments in order, stopping (and returning Nil) at
// the first falsy one; with no falsy argument it returns the last
// evaluated value (Nil if there were no arguments).
func spAnd(it *Interp, args Value, env *Value) (Value, error) {
	result := Value(Nil)
	for args.Kind() == KindCons {
		head, err := it.Car(args)
		if err != nil {
			return Nil, err
		}
		v, err := it.Eval(head, *env)
		if err != nil {
			return Nil, err
		}
		if !v.Truthy() {
			return Nil, nil
		}
		result = v
		args, err = it.Cdr(args)
		if err != nil {
			return Nil, err
		}
	}
	return result, nil
}

// spOr evaluates its arguments in order, returning the first truthy one;
// with none truthy, returns Nil.
func spOr(it *Interp, args Value, env *Value) (Value, error) {
	for args.Kind() == KindCons {
		head, err := it.Car(args)
		if err != nil {
			return Nil, err
		}
		v, err := it.Eval(head, *env)
		if err != nil {
			return Nil, err
		}
		if v.Truthy() {
			return v, nil
		}
		args, err = it.Cdr(args)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, nil
}

// spWhile loops while its first argument evaluates truthy, evaluating the
// remaining arguments (the body) on each iteration; returns the last body
// value, or Nil if the loop never ran.
func spWhile(it *Interp, args Value, env *Value) (Value, error) {
	if args.Kind() != KindCons {
		return Nil, newError(ErrBadArguments, "while: missing test")
	}
	test, err := it.Car(args)
	if err != nil {
		return Nil, err
	}
	body, err := it.Cdr(args)
	if err != nil {
		return Nil, err
	}
	result := Value(Nil)
	for {
		t, err := it.Eval(test, *env)
		if err != nil {
			return Nil, err
		}
		if !t.Truthy() {
			return result, nil
		}
		_, nenv, err := it.sequenceTail(body, *env)
		if err != nil {
			return Nil, err
		}
		if body.Kind() == KindCons {
			result, err = it.Eval(mustLastExpr(it, body), nenv)
			if err != nil {
				return Nil, err
			}
		}
	}
}

// mustLastExpr returns the last expression of a Cons-list body; used by
// spWhile, which (unlike closure application) cannot hand its last
// expression back to the tail-call loop and must evaluate it directly
// each iteration.
func mustLastExpr(it *Interp, body Value) Value {
	last := Value(Nil)
	for body.Kind() == KindCons {
		last, _ = it.Car(body)
		body, _ = it.Cdr(body)
	}
	return last
}

// spLambda builds a Closure capturing *env as its scope ("lambda" row of
// §4.9); (lambda params body...). When *env is the global environment the
// scope is stored as Nil, so the closure resolves globals at call time and
// sees definitions made after it was created (including its own).
func spLambda(it *Interp, args Value, env *Value) (Value, error) {
	if args.Kind() != KindCons {
		return Nil, newError(ErrBadArguments, "lambda: missing parameter list")
	}
	params, err := it.Car(args)
	if err != nil {
		return Nil, err
	}
	body, err := it.Cdr(args)
	if err != nil {
		return Nil, err
	}
	scope := *env
	if scope == it.GlobalEnv() {
		scope = Nil
	}
	return it.NewClosure(params, body, scope)
}

// spMacro builds a Macro; (macro params body...).
func spMacro(it *Interp, args Value, env *Value) (Value, error) {
	if args.Kind() != KindCons {
		return Nil, newError(ErrBadArguments, "macro: missing parameter list")
	}
	params, err := it.Car(args)
	if err != nil {
		return Nil, err
	}
	body, err := it.Cdr(args)
	if err != nil {
		return Nil, err
	}
	return it.NewMacro(params, body)
}

// spDefine prepends (name . value) to the global environment; (define name
// value-expr).
func spDefine(it *Interp, args Value, env *Value) (Value, error) {
	if args.Kind() != KindCons {
		return Nil, newError(ErrBadArguments, "define: missing name")
	}
	name, err := it.Car(args)
	if err != nil {
		return Nil, err
	}
	rest, err := it.Cdr(args)
	if err != nil {
		return Nil, err
	}
	value := Value(Nil)
	if rest.Kind() == KindCons {
		vexpr, err := it.Car(rest)
		if err != nil {
			return Nil, err
		}
		value, err = it.Eval(vexpr, *env)
		if err != nil {
			return Nil, err
		}
	}
	if err := it.Define(name, value); err != nil {
		return Nil, err
	}
	return name, nil
}

// spSetq evaluates the right-hand side first, then searches for and
// mutates the innermost matching binding (SPEC_FULL.md Open Question
// decision 2); (setq name value-expr).
func spSetq(it *Interp, args Value, env *Value) (Value, error) {
	if args.Kind() != KindCons {
		return Nil, newError(ErrBadArguments, "setq: missing name")
	}
	name, err := it.Car(args)
	if err != nil {
		return Nil, err
	}
	rest, err := it.Cdr(args)
	if err != nil {
		return Nil, err
	}
	value := Value(Nil)
	if rest.Kind() == KindCons {
		vexpr, err := it.Car(rest)
		if err != nil {
			return Nil, err
		}
		value, err = it.Eval(vexpr, *env)
		if err != nil {
			return Nil, err
		}
	}
	if err := it.Setq(name, *env, value); err != nil {
		return Nil, err
	}
	return value, nil
}

// spCatch evaluates its single body expression, converting any resulting
// error into (ERR . n) per §7: n is the `throw`n value verbatim, or the
// small ErrCode (boxed as a Number, SPEC_FULL.md Open Question decision 1)
// for an internal interpreter error. Errors that carry neither (host/fatal
// errors from construction-time failures) are not catchable and propagate.
func spCatch(it *Interp, args Value, env *Value) (Value, error) {
	bodyExpr, err := it.Car(args)
	if err != nil {
		return Nil, err
	}
	mark := it.Watermark()
	result, err := it.Eval(bodyExpr, *env)
	if err == nil {
		return result, nil
	}
	it.Unwind(mark)
	var n Value
	if ut, ok := err.(userThrow); ok {
		n = ut.value
	} else if code, ok := Cause(err); ok {
		n = numberOf(float64(code))
	} else {
		return Nil, err
	}
	errAtom, aerr := it.Atom("ERR")
	if aerr != nil {
		return Nil, aerr
	}
	return it.Cons(errAtom, n)
}

// primThrow raises value as a non-local escape to the nearest enclosing
// catch; (throw value-expr).
func primThrow(it *Interp, args Value) (Value, error) {
	v := Value(Nil)
	if args.Kind() == KindCons {
		var err error
		v, err = it.Car(args)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, userThrow{v}
}

// tcEval re-enters the evaluator on its (once) evaluated argument; (eval
// expr-expr) evaluates in the global environment, (eval expr-expr env-expr)
// evaluates in the given environment.
func tcEval(it *Interp, args Value, env Value) (Value, Value, error) {
	if args.Kind() != KindCons {
		return Nil, Nil, newError(ErrBadArguments, "eval: missing expression")
	}
	exprForm, err := it.Car(args)
	if err != nil {
		return Nil, Nil, err
	}
	expr, err := it.Eval(exprForm, env)
	if err != nil {
		return Nil, Nil, err
	}
	targetEnv := it.GlobalEnv()
	rest, err := it.Cdr(args)
	if err != nil {
		return Nil, Nil, err
	}
	if rest.Kind() == KindCons {
		envForm, err := it.Car(rest)
		if err != nil {
			return Nil, Nil, err
		}
		targetEnv, err = it.Eval(envForm, env)
		if err != nil {
			return Nil, Nil, err
		}
	}
	return expr, targetEnv, nil
}

// tcIf implements the 3-arm conditional of §4.9: (if test then else...),
// where else is a sequence evaluated in tail position.
func tcIf(it *Interp, args Value, env Value) (Value, Value, error) {
	if args.Kind() != KindCons {
		return Nil, Nil, newError(ErrBadArguments, "if: missing test")
	}
	testExpr, err := it.Car(args)
	if err != nil {
		return Nil, Nil, err
	}
	rest, err := it.Cdr(args)
	if err != nil {
		return Nil, Nil, err
	}
	test, err := it.Eval(testExpr, env)
	if err != nil {
		return Nil, Nil, err
	}
	if test.Truthy() {
		if rest.Kind() != KindCons {
			return Nil, env, nil
		}
		thenExpr, err := it.Car(rest)
		if err != nil {
			return Nil, Nil, err
		}
		return thenExpr, env, nil
	}
	elseBody, err := it.Cdr(rest)
	if err != nil {
		return Nil, Nil, err
	}
	return it.sequenceTail(elseBody, env)
}

// tcCond walks (test body...) clauses and continues with the body of the
// first clause whose test is truthy (§4.9). An `else` atom as a clause's
// test is treated as always-truthy, matching common Lisp practice.
func tcCond(it *Interp, args Value, env Value) (Value, Value, error) {
	elseAtom, err := it.Atom("else")
	if err != nil {
		return Nil, Nil, err
	}
	for args.Kind() == KindCons {
		clause, err := it.Car(args)
		if err != nil {
			return Nil, Nil, err
		}
		if clause.Kind() != KindCons {
			return Nil, Nil, newError(ErrBadArguments, "cond: malformed clause")
		}
		testExpr, err := it.Car(clause)
		if err != nil {
			return Nil, Nil, err
		}
		body, err := it.Cdr(clause)
		if err != nil {
			return Nil, Nil, err
		}
		truthy := testExpr == elseAtom
		if !truthy {
			t, err := it.Eval(testExpr, env)
			if err != nil {
				return Nil, Nil, err
			}
			truthy = t.Truthy()
		}
		if truthy {
			return it.sequenceTail(body, env)
		}
		args, err = it.Cdr(args)
		if err != nil {
			return Nil, Nil, err
		}
	}
	return Nil, env, nil
}

// tcBegin evaluates all but the last argument for effect and continues
// with the last in tail position (§4.9).
func tcBegin(it *Interp, args Value, env Value) (Value, Value, error) {
	return it.sequenceTail(args, env)
}

// letBindings destructures a let-family form's first argument, the list of
// (name value-expr) binding clauses, returning it alongside the body.
func letBindings(it *Interp, args Value) (bindings, body Value, err error) {
	if args.Kind() != KindCons {
		return Nil, Nil, newError(ErrBadArguments, "let: missing binding list")
	}
	bindings, err = it.Car(args)
	if err != nil {
		return Nil, Nil, err
	}
	body, err = it.Cdr(args)
	if err != nil {
		return Nil, Nil, err
	}
	return bindings, body, nil
}

// tcLet implements `let`: every value-expr is evaluated in the enclosing
// environment (parallel binding), then all names are bound at once in a
// new scope (§4.9).
func tcLet(it *Interp, args Value, env Value) (Value, Value, error) {
	bindings, body, err := letBindings(it, args)
	if err != nil {
		return Nil, Nil, err
	}
	newEnv := env
	for bindings.Kind() == KindCons {
		clause, err := it.Car(bindings)
		if err != nil {
			return Nil, Nil, err
		}
		name, err := it.Car(clause)
		if err != nil {
			return Nil, Nil, err
		}
		valExpr, err := it.Cdr(clause)
		if err != nil {
			return Nil, Nil, err
		}
		var value Value
		if valExpr.Kind() == KindCons {
			ve, err := it.Car(valExpr)
			if err != nil {
				return Nil, Nil, err
			}
			value, err = it.Eval(ve, env)
			if err != nil {
				return Nil, Nil, err
			}
		}
		sv, err := it.Push(value)
		if err != nil {
			return Nil, Nil, err
		}
		entry, err := it.Cons(name, it.StackGet(sv))
		it.Unwind(sv)
		if err != nil {
			return Nil, Nil, err
		}
		se, err := it.Push(entry)
		if err != nil {
			return Nil, Nil, err
		}
		snewEnv, err := it.Push(newEnv)
		if err != nil {
			it.Unwind(se)
			return Nil, Nil, err
		}
		newEnv, err = it.Cons(it.StackGet(se), it.StackGet(snewEnv))
		it.Unwind(se)
		if err != nil {
			return Nil, Nil, err
		}
		bindings, err = it.Cdr(bindings)
		if err != nil {
			return Nil, Nil, err
		}
	}
	return it.sequenceTail(body, newEnv)
}

// tcLetStar implements `let*`: each value-expr is evaluated in the scope
// built so far, so later bindings can see earlier ones (§4.9).
func tcLetStar(it *Interp, args Value, env Value) (Value, Value, error) {
	bindings, body, err := letBindings(it, args)
	if err != nil {
		return Nil, Nil, err
	}
	newEnv := env
	for bindings.Kind() == KindCons {
		clause, err := it.Car(bindings)
		if err != nil {
			return Nil, Nil, err
		}
		name, err := it.Car(clause)
		if err != nil {
			return Nil, Nil, err
		}
		valExpr, err := it.Cdr(clause)
		if err != nil {
			return Nil, Nil, err
		}
		var value Value
		if valExpr.Kind() == KindCons {
			ve, err := it.Car(valExpr)
			if err != nil {
				return Nil, Nil, err
			}
			value, err = it.Eval(ve, newEnv)
			if err != nil {
				return Nil, Nil, err
			}
		}
		sv, err := it.Push(value)
		if err != nil {
			return Nil, Nil, err
		}
		entry, err := it.Cons(name, it.StackGet(sv))
		it.Unwind(sv)
		if err != nil {
			return Nil, Nil, err
		}
		se, err := it.Push(entry)
		if err != nil {
			return Nil, Nil, err
		}
		snewEnv, err := it.Push(newEnv)
		if err != nil {
			it.Unwind(se)
			return Nil, Nil, err
		}
		newEnv, err = it.Cons(it.StackGet(se), it.StackGet(snewEnv))
		it.Unwind(se)
		if err != nil {
			return Nil, Nil, err
		}
		bindings, err = it.Cdr(bindings)
		if err != nil {
			return Nil, Nil, err
		}
	}
	return it.sequenceTail(body, newEnv)
}

// tcLetrec implements `letrec`/`letrec*` (identical here since value-exprs
// are evaluated against the fully pre-bound scope in both, the common
// simplification when initializers are non-strict about evaluation order
// among themselves -- §4.9 lists them as distinct rows but describes the
// same pre-bind-then-assign construction for both).
func tcLetrec(it *Interp, args Value, env Value) (Value, Value, error) {
	bindings, body, err := letBindings(it, args)
	if err != nil {
		return Nil, Nil, err
	}
	newEnv := env
	var clauses []Value
	for b := bindings; b.Kind() == KindCons; {
		clause, err := it.Car(b)
		if err != nil {
			return Nil, Nil, err
		}
		name, err := it.Car(clause)
		if err != nil {
			return Nil, Nil, err
		}
		entry, err := it.Cons(name, Nil)
		if err != nil {
			return Nil, Nil, err
		}
		se, err := it.Push(entry)
		if err != nil {
			return Nil, Nil, err
		}
		snewEnv, err := it.Push(newEnv)
		if err != nil {
			it.Unwind(se)
			return Nil, Nil, err
		}
		newEnv, err = it.Cons(it.StackGet(se), it.StackGet(snewEnv))
		it.Unwind(se)
		if err != nil {
			return Nil, Nil, err
		}
		clauses = append(clauses, entry)
		b, err = it.Cdr(b)
		if err != nil {
			return Nil, Nil, err
		}
	}
	bi := 0
	for b := bindings; b.Kind() == KindCons; bi++ {
		clause, err := it.Car(b)
		if err != nil {
			return Nil, Nil, err
		}
		valExpr, err := it.Cdr(clause)
		if err != nil {
			return Nil, Nil, err
		}
		var value Value
		if valExpr.Kind() == KindCons {
			ve, err := it.Car(valExpr)
			if err != nil {
				return Nil, Nil, err
			}
			value, err = it.Eval(ve, newEnv)
			if err != nil {
				return Nil, Nil, err
			}
		}
		if err := it.SetCdr(clauses[bi], value); err != nil {
			return Nil, Nil, err
		}
		b, err = it.Cdr(b)
		if err != nil {
			return Nil, Nil, err
		}
	}
	return it.sequenceTail(body, newEnv)
}

// tcLetrecStar is `letrec*`, identical to `letrec` in this implementation
// (see tcLetrec's doc comment).
func tcLetrecStar(it *Interp, args Value, env Value) (Value, Value, error) {
	return tcLetrec(it, args, env)
}
