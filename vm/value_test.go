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

package vm_test

import (
	"math"
	"testing"

	"github.com/db47h/lisp/vm"
)

func TestNumberRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 3.5, -0.25, 1e300, -1e-300, math.Inf(1), math.Inf(-1)}
	for _, f := range cases {
		v := vm.Number(f)
		if v.Kind() != vm.KindNumber {
			t.Errorf("Number(%v).Kind() = %v, want KindNumber", f, v.Kind())
		}
		if got := v.Float(); got != f {
			t.Errorf("Number(%v).Float() = %v", f, got)
		}
	}
}

func TestNumberNaNCanonical(t *testing.T) {
	a := vm.Number(math.NaN())
	b := vm.Number(math.Float64frombits(0x7FF8000000000001))
	if a != b {
		t.Errorf("two NaNs boxed through Number did not canonicalize to the same bit pattern")
	}
	if !math.IsNaN(a.Float()) {
		t.Errorf("Number(NaN).Float() is not NaN")
	}
}

func TestNilIsFalsyOnly(t *testing.T) {
	if vm.Nil.Truthy() {
		t.Errorf("Nil.Truthy() = true")
	}
	if !vm.Nil.IsNil() {
		t.Errorf("Nil.IsNil() = false")
	}
	if !vm.Number(0).Truthy() {
		t.Errorf("Number(0).Truthy() = false, want true (only Nil is false)")
	}
}

func TestKindString(t *testing.T) {
	cases := map[vm.Kind]string{
		vm.KindNumber:    "number",
		vm.KindNil:       "nil",
		vm.KindPrimitive: "primitive",
		vm.KindAtom:      "atom",
		vm.KindString:    "string",
		vm.KindCons:      "cons",
		vm.KindClosure:   "closure",
		vm.KindMacro:     "macro",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestTypeCode(t *testing.T) {
	cases := map[vm.Kind]int{
		vm.KindNil:       -1,
		vm.KindNumber:    0,
		vm.KindPrimitive: 1,
		vm.KindAtom:      2,
		vm.KindString:    3,
		vm.KindCons:      4,
		vm.KindClosure:   6,
		vm.KindMacro:     7,
	}
	for k, want := range cases {
		if got := k.TypeCode(); got != want {
			t.Errorf("%v.TypeCode() = %d, want %d", k, got, want)
		}
	}
}
