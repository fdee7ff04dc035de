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

// Package lisp wires the reader, printer, and vm packages into a runnable
// interpreter instance, configured the way cmd/lisp loads it: pool/stack
// sizing from a TOML config file plus extension opt-ins, mirroring the
// teacher's lang/retro package gluing vm.Instance construction to the
// retro dialect's conventions.
package lisp

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/db47h/lisp/reader"
	"github.com/db47h/lisp/vm"
)

// Config is the shape of lisp.toml (§6.3's "host program constructs an
// interpreter by parameterizing pool size P and stack/heap size S").
type Config struct {
	PoolCells   int  `toml:"pool_cells"`
	BudgetCells int  `toml:"budget_cells"`
	MathExt     bool `toml:"math_ext"`
	StringExt   bool `toml:"string_ext"`
	SysExt      bool `toml:"sys_ext"`
	SleepExt    bool `toml:"sleep_ext"`
}

// DefaultConfig returns the configuration used when no lisp.toml is present.
func DefaultConfig() Config {
	return Config{
		PoolCells:   1 << 16,
		BudgetCells: 1 << 16,
		MathExt:     true,
		StringExt:   true,
		SysExt:      true,
		SleepExt:    true,
	}
}

// LoadConfig reads a TOML configuration file from path, falling back to
// DefaultConfig if path is empty.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// New constructs an *vm.Interp from cfg, registering whichever extension
// families cfg opts into (§9's "registered only when lisp.toml or a host
// program opts in, keeping the core primitive table exactly the one
// specified in §4.10").
func New(cfg Config, argv []string) (*vm.Interp, error) {
	opts := []vm.Option{
		vm.PoolSize(cfg.PoolCells),
		vm.BudgetSize(cfg.BudgetCells),
	}
	if cfg.MathExt {
		opts = append(opts, vm.MathExtensions()...)
	}
	if cfg.StringExt {
		opts = append(opts, vm.StringExtensions()...)
	}
	if cfg.SysExt {
		opts = append(opts, vm.SysExtensions(argv)...)
	}
	if cfg.SleepExt {
		opts = append(opts, vm.SleepExtension())
	}
	return vm.New(opts...)
}

// ReadEval reads and evaluates every expression available from r against
// the global environment, returning the value of the last one. Used to
// load init.lisp and `-e`-supplied source.
func ReadEval(it *vm.Interp, r io.Reader) (vm.Value, error) {
	rd := reader.New(r)
	result := vm.Nil
	for {
		expr, err := rd.Read(it)
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return vm.Nil, err
		}
		result, err = it.Eval(expr, it.GlobalEnv())
		if err != nil {
			return vm.Nil, err
		}
	}
}
