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
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/db47h/lisp/lang/lisp"
	"github.com/db47h/lisp/printer"
	"github.com/db47h/lisp/reader"
	"github.com/db47h/lisp/vm"
)

// runRepl implements §6.2's REPL: read one expression, evaluate it against
// the global environment, print the result; on error kind k, print
// `ERR k <message>`. Between iterations the stack is unwound and a
// collection runs to report the free-space gauges. init.lisp (or --init)
// is loaded, if present, before the first prompt.
func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := lisp.LoadConfig(cfgFileIfExists())
	if err != nil {
		return err
	}
	it, err := lisp.New(cfg, os.Args)
	if err != nil {
		return err
	}

	if f, err := os.Open(initFile); err == nil {
		_, err := lisp.ReadEval(it, f)
		f.Close()
		if err != nil {
			reportError(os.Stderr, err)
		}
	}

	rl, err := readline.New("lisp> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		evalLine(it, line)
	}
}

func evalLine(it *vm.Interp, line string) {
	mark := it.Watermark()
	defer func() {
		it.Unwind(mark)
		lisp.DumpGauges(it, os.Stdout)
	}()

	rd := reader.New(strings.NewReader(line))
	for {
		expr, err := rd.Read(it)
		if err == io.EOF {
			return
		}
		if err != nil {
			reportError(os.Stdout, err)
			return
		}
		if isQuit(it, expr) {
			os.Exit(0)
		}
		v, err := it.Eval(expr, it.GlobalEnv())
		if err != nil {
			if code, ok := vm.ExitCode(err); ok {
				os.Exit(code)
			}
			reportError(os.Stdout, err)
			return
		}
		printer.Fprint(os.Stdout, it, v)
		fmt.Fprintln(os.Stdout)
	}
}

func isQuit(it *vm.Interp, expr vm.Value) bool {
	if expr.Kind() != vm.KindCons {
		return false
	}
	head, err := it.Car(expr)
	if err != nil || head.Kind() != vm.KindAtom {
		return false
	}
	quitAtom, err := it.Atom("quit")
	if err != nil {
		return false
	}
	return head == quitAtom
}

// reportError prints `ERR k <message>` per §6.2, recovering the error kind
// via vm.Cause when available.
func reportError(w io.Writer, err error) {
	if code, ok := vm.Cause(err); ok {
		fmt.Fprintf(w, "ERR %d %v\n", int(code), err)
		return
	}
	fmt.Fprintf(w, "ERR - %v\n", err)
}

func cfgFileIfExists() string {
	if _, err := os.Stat(cfgFile); err != nil {
		return ""
	}
	return cfgFile
}
