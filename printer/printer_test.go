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

package printer_test

import (
	"strings"
	"testing"

	"github.com/db47h/lisp/printer"
	"github.com/db47h/lisp/reader"
	"github.com/db47h/lisp/vm"
)

func newInterp(t *testing.T) *vm.Interp {
	t.Helper()
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	return it
}

func TestSprintScalars(t *testing.T) {
	it := newInterp(t)
	cases := []struct {
		v    vm.Value
		want string
	}{
		{vm.Nil, "()"},
		{vm.Number(42), "42"},
		{vm.Number(-3.5), "-3.5"},
	}
	for _, c := range cases {
		if got := printer.Sprint(it, c.v); got != c.want {
			t.Errorf("Sprint(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestSprintAtom(t *testing.T) {
	it := newInterp(t)
	a, err := it.Atom("foo")
	if err != nil {
		t.Fatalf("Atom: %v", err)
	}
	if got := printer.Sprint(it, a); got != "foo" {
		t.Errorf("Sprint(atom) = %q, want %q", got, "foo")
	}
}

func TestSprintStringEscapes(t *testing.T) {
	it := newInterp(t)
	s, err := it.NewString([]byte("a\nb\"c"))
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	want := `"a\nb\"c"`
	if got := printer.Sprint(it, s); got != want {
		t.Errorf("Sprint(string) = %q, want %q", got, want)
	}
}

func TestSprintProperAndDottedList(t *testing.T) {
	it := newInterp(t)
	proper, err := it.Cons(vm.Number(1), mustCons(t, it, vm.Number(2), vm.Nil))
	if err != nil {
		t.Fatalf("Cons: %v", err)
	}
	if got := printer.Sprint(it, proper); got != "(1 2)" {
		t.Errorf("Sprint(proper list) = %q, want %q", got, "(1 2)")
	}

	dotted, err := it.Cons(vm.Number(1), vm.Number(2))
	if err != nil {
		t.Fatalf("Cons: %v", err)
	}
	if got := printer.Sprint(it, dotted); got != "(1 . 2)" {
		t.Errorf("Sprint(dotted pair) = %q, want %q", got, "(1 . 2)")
	}
}

func mustCons(t *testing.T, it *vm.Interp, a, d vm.Value) vm.Value {
	t.Helper()
	v, err := it.Cons(a, d)
	if err != nil {
		t.Fatalf("Cons: %v", err)
	}
	return v
}

// TestReadPrintRoundTrip exercises read(print(v)) ≡ v on a representative
// sample of forms.
func TestReadPrintRoundTrip(t *testing.T) {
	srcs := []string{
		"42",
		"-3.5",
		"foo-bar",
		"(1 2 3)",
		"(1 . 2)",
		"(a (b c) d)",
	}
	for _, src := range srcs {
		it := newInterp(t)
		v, err := reader.New(strings.NewReader(src)).Read(it)
		if err != nil {
			t.Errorf("Read(%q): %v", src, err)
			continue
		}
		printed := printer.Sprint(it, v)
		v2, err := reader.New(strings.NewReader(printed)).Read(it)
		if err != nil {
			t.Errorf("Read(Sprint(Read(%q))) = %q: %v", src, printed, err)
			continue
		}
		if printer.Sprint(it, v2) != printed {
			t.Errorf("round trip of %q: printed %q then %q", src, printed, printer.Sprint(it, v2))
		}
	}
}
