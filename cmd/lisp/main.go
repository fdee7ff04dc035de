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

// The lisp command is the REPL and scripting front-end for
// github.com/db47h/lisp/vm: it loads an optional lisp.toml for pool/stack
// sizing, bootstraps init.lisp if present, then either evaluates a -e
// expression or drops into an interactive, readline-driven prompt.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	initFile string
	debug    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lisp",
		Short: "A NaN-boxed Lisp interpreter with tail-call optimization",
		RunE:  runRepl,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "lisp.toml", "configuration `file`")
	root.PersistentFlags().StringVar(&initFile, "init", "init.lisp", "bootstrap `file` loaded before the prompt")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "print a stack trace on fatal error")

	root.AddCommand(evalCmd())
	root.AddCommand(dumpCmd())
	return root
}

func evalCmd() *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a single expression and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(expr)
		},
	}
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "expression to evaluate")
	cmd.MarkFlagRequired("expr")
	return cmd
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Load init.lisp and print the free-space gauges",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
}
