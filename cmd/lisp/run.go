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
	"fmt"
	"os"
	"strings"

	"github.com/db47h/lisp/lang/lisp"
	"github.com/db47h/lisp/printer"
	"github.com/db47h/lisp/vm"
)

// runEval builds a fresh interpreter, optionally loads init.lisp, then
// evaluates expr and prints the result -- the `lisp eval -e` subcommand.
func runEval(expr string) error {
	cfg, err := lisp.LoadConfig(cfgFileIfExists())
	if err != nil {
		return err
	}
	it, err := lisp.New(cfg, os.Args)
	if err != nil {
		return err
	}
	if f, ferr := os.Open(initFile); ferr == nil {
		_, err := lisp.ReadEval(it, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	v, err := lisp.ReadEval(it, strings.NewReader(expr))
	if err != nil {
		if code, ok := vm.ExitCode(err); ok {
			os.Exit(code)
		}
		if code, ok := vm.Cause(err); ok {
			return fmt.Errorf("ERR %d %v", int(code), err)
		}
		return err
	}
	printer.Fprint(os.Stdout, it, v)
	fmt.Fprintln(os.Stdout)
	return nil
}

// runDump builds a fresh interpreter, loads init.lisp, and prints the
// free-space gauges -- useful for sanity-checking a pool/budget
// configuration without entering the REPL.
func runDump() error {
	cfg, err := lisp.LoadConfig(cfgFileIfExists())
	if err != nil {
		return err
	}
	it, err := lisp.New(cfg, os.Args)
	if err != nil {
		return err
	}
	if f, ferr := os.Open(initFile); ferr == nil {
		_, err := lisp.ReadEval(it, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return lisp.DumpGauges(it, os.Stdout)
}
