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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/lisp/vm"
)

func newTestInterp(t *testing.T) *vm.Interp {
	t.Helper()
	it, err := vm.New(vm.PoolSize(4096), vm.BudgetSize(4096))
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	return it
}

func TestIsQuit(t *testing.T) {
	it := newTestInterp(t)
	quoteAtom, _ := it.Atom("quote")
	quitAtom, _ := it.Atom("quit")

	quitExpr, err := it.Cons(quitAtom, vm.Nil)
	if err != nil {
		t.Fatalf("Cons: %v", err)
	}
	if !isQuit(it, quitExpr) {
		t.Errorf("isQuit((quit)) = false, want true")
	}

	notQuit, err := it.Cons(quoteAtom, vm.Nil)
	if err != nil {
		t.Fatalf("Cons: %v", err)
	}
	if isQuit(it, notQuit) {
		t.Errorf("isQuit((quote)) = true, want false")
	}

	if isQuit(it, vm.Number(1)) {
		t.Errorf("isQuit(1) = true, want false")
	}
}

func TestReportErrorWithCode(t *testing.T) {
	var buf bytes.Buffer
	it := newTestInterp(t)
	_, err := it.Car(vm.Number(1))
	if err == nil {
		t.Fatalf("expected an error")
	}
	reportError(&buf, err)
	if got := buf.String(); !strings.HasPrefix(got, "ERR 1 ") {
		t.Errorf("reportError = %q, want prefix %q", got, "ERR 1 ")
	}
}

func TestReportErrorWithoutCode(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, os.ErrClosed)
	if got := buf.String(); !strings.HasPrefix(got, "ERR - ") {
		t.Errorf("reportError = %q, want prefix %q", got, "ERR - ")
	}
}

func TestCfgFileIfExists(t *testing.T) {
	dir := t.TempDir()
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()

	cfgFile = filepath.Join(dir, "missing.toml")
	if got := cfgFileIfExists(); got != "" {
		t.Errorf("cfgFileIfExists() = %q, want empty for a missing file", got)
	}

	present := filepath.Join(dir, "present.toml")
	if err := os.WriteFile(present, []byte("pool_cells = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfgFile = present
	if got := cfgFileIfExists(); got != present {
		t.Errorf("cfgFileIfExists() = %q, want %q", got, present)
	}
}
