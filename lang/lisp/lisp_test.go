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

package lisp_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/lisp/lang/lisp"
	"github.com/db47h/lisp/printer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := lisp.DefaultConfig()
	assert.Equal(t, 1<<16, cfg.PoolCells)
	assert.Equal(t, 1<<16, cfg.BudgetCells)
	assert.True(t, cfg.MathExt)
	assert.True(t, cfg.StringExt)
	assert.True(t, cfg.SysExt)
	assert.True(t, cfg.SleepExt)
}

func TestLoadConfigMissingPathReturnsDefault(t *testing.T) {
	cfg, err := lisp.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, lisp.DefaultConfig(), cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lisp.toml")
	body := "pool_cells = 1024\nbudget_cells = 2048\nmath_ext = false\nstring_ext = true\nsys_ext = false\nsleep_ext = false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := lisp.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.PoolCells)
	assert.Equal(t, 2048, cfg.BudgetCells)
	assert.False(t, cfg.MathExt)
	assert.True(t, cfg.StringExt)
	assert.False(t, cfg.SysExt)
	assert.False(t, cfg.SleepExt)
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := lisp.LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

func TestNewWithNoExtensionsOptedIn(t *testing.T) {
	cfg := lisp.Config{PoolCells: 4096, BudgetCells: 4096}
	it, err := lisp.New(cfg, nil)
	require.NoError(t, err)

	_, err = lisp.ReadEval(it, strings.NewReader("(sqrt 4)"))
	require.Error(t, err, "sqrt should be unbound when math_ext is off")
}

func TestNewWithMathExtensions(t *testing.T) {
	cfg := lisp.Config{PoolCells: 4096, BudgetCells: 4096, MathExt: true}
	it, err := lisp.New(cfg, nil)
	require.NoError(t, err)

	v, err := lisp.ReadEval(it, strings.NewReader("(sqrt 16)"))
	require.NoError(t, err)
	assert.Equal(t, "4", printer.Sprint(it, v))
}

func TestNewWithStringExtensions(t *testing.T) {
	cfg := lisp.Config{PoolCells: 4096, BudgetCells: 4096, StringExt: true}
	it, err := lisp.New(cfg, nil)
	require.NoError(t, err)

	v, err := lisp.ReadEval(it, strings.NewReader(`(strlen "hello")`))
	require.NoError(t, err)
	assert.Equal(t, "5", printer.Sprint(it, v))
}

func TestNewWithSysExtensionsArgv(t *testing.T) {
	cfg := lisp.Config{PoolCells: 4096, BudgetCells: 4096, SysExt: true}
	it, err := lisp.New(cfg, []string{"prog", "a", "b"})
	require.NoError(t, err)

	v, err := lisp.ReadEval(it, strings.NewReader(`(car (cdr (argv)))`))
	require.NoError(t, err)
	assert.Equal(t, `"a"`, printer.Sprint(it, v))
}

func TestNewWithSleepExtension(t *testing.T) {
	cfg := lisp.Config{PoolCells: 4096, BudgetCells: 4096, SleepExt: true}
	it, err := lisp.New(cfg, nil)
	require.NoError(t, err)

	v, err := lisp.ReadEval(it, strings.NewReader(`(sleep 0)`))
	require.NoError(t, err)
	_ = v
}

func TestReadEvalReturnsLastValue(t *testing.T) {
	cfg := lisp.Config{PoolCells: 4096, BudgetCells: 4096}
	it, err := lisp.New(cfg, nil)
	require.NoError(t, err)

	v, err := lisp.ReadEval(it, strings.NewReader("(define x 1) (define y 2) (+ x y)"))
	require.NoError(t, err)
	assert.Equal(t, "3", printer.Sprint(it, v))
}

func TestDumpGaugesReportsFreeSpace(t *testing.T) {
	cfg := lisp.Config{PoolCells: 4096, BudgetCells: 4096}
	it, err := lisp.New(cfg, nil)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, lisp.DumpGauges(it, &sb))
	assert.Contains(t, sb.String(), "free pairs")
	assert.Contains(t, sb.String(), "free cells")
}
