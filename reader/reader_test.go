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

package reader_test

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/db47h/lisp/reader"
	"github.com/db47h/lisp/vm"
)

func readOne(t *testing.T, src string) vm.Value {
	t.Helper()
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	v, err := reader.New(strings.NewReader(src)).Read(it)
	if err != nil {
		t.Fatalf("Read(%q): %v", src, err)
	}
	return v
}

func TestReadNumbers(t *testing.T) {
	cases := map[string]float64{
		"0":      0,
		"1":      1,
		"-1":     -1,
		"3.5":    3.5,
		"-3.5":   -3.5,
		"0x1F":   31,
		"-0x10":  -16,
		"inf":    math.Inf(1),
		"+inf":   math.Inf(1),
		"-inf":   math.Inf(-1),
	}
	for src, want := range cases {
		it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
		if err != nil {
			t.Fatalf("vm.New: %v", err)
		}
		v, err := reader.New(strings.NewReader(src)).Read(it)
		if err != nil {
			t.Errorf("Read(%q): %v", src, err)
			continue
		}
		if v.Kind() != vm.KindNumber {
			t.Errorf("Read(%q).Kind() = %v, want KindNumber", src, v.Kind())
			continue
		}
		if v.Float() != want {
			t.Errorf("Read(%q).Float() = %v, want %v", src, v.Float(), want)
		}
	}
}

func TestReadNaN(t *testing.T) {
	v := readOne(t, "nan")
	if v.Kind() != vm.KindNumber || !math.IsNaN(v.Float()) {
		t.Errorf("Read(nan) = %v, want a NaN Number", v)
	}
}

func TestReadAtom(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	v, err := reader.New(strings.NewReader("foo-bar?")).Read(it)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v.Kind() != vm.KindAtom {
		t.Errorf("Read(foo-bar?).Kind() = %v, want KindAtom", v.Kind())
	}
	if string(it.Bytes(v.Ordinal())) != "foo-bar?" {
		t.Errorf("atom bytes = %q, want %q", it.Bytes(v.Ordinal()), "foo-bar?")
	}
}

func TestReadStringEscapes(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	v, err := reader.New(strings.NewReader(`"a\nb\tc\"d"`)).Read(it)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v.Kind() != vm.KindString {
		t.Fatalf("Kind() = %v, want KindString", v.Kind())
	}
	want := "a\nb\tc\"d"
	if got := string(it.Bytes(v.Ordinal())); got != want {
		t.Errorf("string bytes = %q, want %q", got, want)
	}
}

func TestReadProperList(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	v, err := reader.New(strings.NewReader("(1 2 3)")).Read(it)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var got []float64
	for v.Kind() == vm.KindCons {
		car, _ := it.Car(v)
		got = append(got, car.Float())
		v, _ = it.Cdr(v)
	}
	if v.Kind() != vm.KindNil {
		t.Errorf("list not properly terminated: tail kind = %v", v.Kind())
	}
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadDottedPair(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	v, err := reader.New(strings.NewReader("(1 . 2)")).Read(it)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	car, err := it.Car(v)
	if err != nil || car.Float() != 1 {
		t.Errorf("car = %v, %v; want 1", car, err)
	}
	cdr, err := it.Cdr(v)
	if err != nil || cdr.Float() != 2 {
		t.Errorf("cdr = %v, %v; want 2", cdr, err)
	}
}

func TestReadDotStartingAtomIsNotConfusedWithDottedTail(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	v, err := reader.New(strings.NewReader("(1 .5 2)")).Read(it)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var got []float64
	for v.Kind() == vm.KindCons {
		car, _ := it.Car(v)
		got = append(got, car.Float())
		v, _ = it.Cdr(v)
	}
	if v.Kind() != vm.KindNil {
		t.Fatalf("list not properly terminated: tail kind = %v", v.Kind())
	}
	want := []float64{1, 0.5, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadQuoteSugar(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	v, err := reader.New(strings.NewReader("'foo")).Read(it)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v.Kind() != vm.KindCons {
		t.Fatalf("Kind() = %v, want KindCons", v.Kind())
	}
	head, _ := it.Car(v)
	if string(it.Bytes(head.Ordinal())) != "quote" {
		t.Errorf("head = %q, want quote", it.Bytes(head.Ordinal()))
	}
}

func TestReadSkipsComments(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	rd := reader.New(strings.NewReader("; a comment\n42"))
	v, err := rd.Read(it)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v.Float() != 42 {
		t.Errorf("= %v, want 42", v.Float())
	}
}

func TestReadEOFAtBoundary(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	rd := reader.New(strings.NewReader("  "))
	if _, err := rd.Read(it); err != io.EOF {
		t.Errorf("Read on whitespace-only input = %v, want io.EOF", err)
	}
}

func TestReadUnexpectedCloseParen(t *testing.T) {
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	if _, err := reader.New(strings.NewReader(")")).Read(it); err == nil {
		t.Errorf("Read(\")\") did not error")
	}
}
