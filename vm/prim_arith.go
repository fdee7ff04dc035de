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

import "math"

// numArgs collects the elements of an already-evaluated argument list,
// failing with ErrBadArguments at the first non-Number.
func numArgs(it *Interp, args Value) ([]float64, error) {
	var out []float64
	for args.Kind() == KindCons {
		v, err := it.Car(args)
		if err != nil {
			return nil, err
		}
		if v.Kind() != KindNumber {
			return nil, newError(ErrBadArguments, "expected a number")
		}
		out = append(out, v.Float())
		args, err = it.Cdr(args)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// primAdd sums its arguments; (+) is 0.
func primAdd(it *Interp, args Value) (Value, error) {
	ns, err := numArgs(it, args)
	if err != nil {
		return Nil, err
	}
	sum := 0.0
	for _, n := range ns {
		sum += n
	}
	return numberOf(sum), nil
}

// primMul multiplies its arguments; (*) is 1.
func primMul(it *Interp, args Value) (Value, error) {
	ns, err := numArgs(it, args)
	if err != nil {
		return Nil, err
	}
	prod := 1.0
	for _, n := range ns {
		prod *= n
	}
	return numberOf(prod), nil
}

// primSub implements unary negation and n-ary subtraction, per §4.10:
// (- x) is -x, (- x y z) is x-y-z.
func primSub(it *Interp, args Value) (Value, error) {
	ns, err := numArgs(it, args)
	if err != nil {
		return Nil, err
	}
	if len(ns) == 0 {
		return Nil, newError(ErrBadArguments, "-: expected at least one argument")
	}
	if len(ns) == 1 {
		return numberOf(-ns[0]), nil
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result -= n
	}
	return numberOf(result), nil
}

// primDiv implements unary reciprocal and n-ary division, per §4.10:
// (/ x) is 1/x, (/ x y z) is x/y/z.
func primDiv(it *Interp, args Value) (Value, error) {
	ns, err := numArgs(it, args)
	if err != nil {
		return Nil, err
	}
	if len(ns) == 0 {
		return Nil, newError(ErrBadArguments, "/: expected at least one argument")
	}
	if len(ns) == 1 {
		return numberOf(1 / ns[0]), nil
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result /= n
	}
	return numberOf(result), nil
}

// primInt truncates its argument toward zero, per §4.10.
func primInt(it *Interp, args Value) (Value, error) {
	v, err := argAt(it, args, 0)
	if err != nil {
		return Nil, err
	}
	if v.Kind() != KindNumber {
		return Nil, newError(ErrBadArguments, "int: expected a number")
	}
	return numberOf(math.Trunc(v.Float())), nil
}
