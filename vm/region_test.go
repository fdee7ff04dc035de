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
	"testing"

	"github.com/db47h/lisp/vm"
)

func newRegion(t *testing.T, poolCells, budgetCells int) *vm.Region {
	t.Helper()
	rg, err := vm.NewRegion(poolCells, budgetCells)
	if err != nil {
		t.Fatalf("NewRegion(%d, %d): %v", poolCells, budgetCells, err)
	}
	return rg
}

func TestRegionConsCarCdr(t *testing.T) {
	rg := newRegion(t, 64, 64)
	a := vm.Number(1)
	d := vm.Number(2)
	p, err := rg.Cons(a, d)
	if err != nil {
		t.Fatalf("Cons: %v", err)
	}
	if p.Kind() != vm.KindCons {
		t.Errorf("Cons result Kind() = %v, want KindCons", p.Kind())
	}
	if got, _ := rg.Car(p); got != a {
		t.Errorf("Car(p) = %v, want %v", got, a)
	}
	if got, _ := rg.Cdr(p); got != d {
		t.Errorf("Cdr(p) = %v, want %v", got, d)
	}
}

func TestRegionSetCarSetCdr(t *testing.T) {
	rg := newRegion(t, 64, 64)
	p, err := rg.Cons(vm.Number(1), vm.Number(2))
	if err != nil {
		t.Fatalf("Cons: %v", err)
	}
	if err := rg.SetCar(p, vm.Number(10)); err != nil {
		t.Fatalf("SetCar: %v", err)
	}
	if err := rg.SetCdr(p, vm.Number(20)); err != nil {
		t.Fatalf("SetCdr: %v", err)
	}
	if got, _ := rg.Car(p); got != vm.Number(10) {
		t.Errorf("Car(p) after SetCar = %v", got)
	}
	if got, _ := rg.Cdr(p); got != vm.Number(20) {
		t.Errorf("Cdr(p) after SetCdr = %v", got)
	}
}

func TestRegionCarCdrOnNonPair(t *testing.T) {
	rg := newRegion(t, 64, 64)
	if _, err := rg.Car(vm.Number(1)); err == nil {
		t.Errorf("Car(Number) did not error")
	} else if code, ok := vm.Cause(err); !ok || code != vm.ErrNotAPair {
		t.Errorf("Car(Number) error = %v, want ErrNotAPair", err)
	}
}

func TestRegionStackPushPopWatermarkUnwind(t *testing.T) {
	rg := newRegion(t, 64, 64)
	mark := rg.Watermark()
	s1, err := rg.Push(vm.Number(1))
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, err := rg.Push(vm.Number(2)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := rg.StackGet(s1); got != vm.Number(1) {
		t.Errorf("StackGet(s1) = %v, want Number(1)", got)
	}
	if got := rg.Pop(); got != vm.Number(2) {
		t.Errorf("Pop() = %v, want Number(2)", got)
	}
	rg.Unwind(mark)
	if rg.StackLen() != mark {
		t.Errorf("StackLen() after Unwind = %d, want %d", rg.StackLen(), mark)
	}
}

func TestRegionAllocatePairExhaustion(t *testing.T) {
	rg := newRegion(t, 4, 64)
	// pool has room for exactly one non-sentinel pair; keep it rooted on the
	// stack so a collection triggered by the next Cons can't reclaim it.
	p, err := rg.Cons(vm.Number(1), vm.Number(2))
	if err != nil {
		t.Fatalf("first Cons: %v", err)
	}
	if _, err := rg.Push(p); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, err := rg.Cons(vm.Number(3), vm.Number(4)); err == nil {
		t.Errorf("second Cons on an exhausted pool did not error")
	} else if code, ok := vm.Cause(err); !ok || code != vm.ErrOutOfMemory {
		t.Errorf("second Cons error = %v, want ErrOutOfMemory", err)
	}
}

func TestRegionEqAtomsAndStringsByContent(t *testing.T) {
	rg := newRegion(t, 64, 64)
	a1, _ := rg.InternAtom([]byte("foo"))
	a2, _ := rg.InternAtom([]byte("foo"))
	if a1 != a2 {
		t.Errorf("InternAtom did not dedupe identical content: %v != %v", a1, a2)
	}
	s1, _ := rg.NewString([]byte("bar"))
	s2, _ := rg.NewString([]byte("bar"))
	if s1 == s2 {
		t.Errorf("two NewString calls with the same content returned the same ordinal, expected distinct non-interned strings")
	}
	if !rg.Eq(s1, s2) {
		t.Errorf("Eq(s1, s2) = false, want true (strings compare by content)")
	}
}

func TestRegionLessTotalOrder(t *testing.T) {
	rg := newRegion(t, 64, 64)
	if !rg.Less(vm.Number(1), vm.Number(2)) {
		t.Errorf("Less(1, 2) = false")
	}
	a, _ := rg.InternAtom([]byte("aaa"))
	b, _ := rg.InternAtom([]byte("bbb"))
	if !rg.Less(a, b) {
		t.Errorf("Less(aaa, bbb) = false")
	}
	s1, _ := rg.NewString([]byte("aaa"))
	s2, _ := rg.NewString([]byte("bbb"))
	if !rg.Less(s1, s2) {
		t.Errorf("Less(\"aaa\", \"bbb\") = false")
	}
}
