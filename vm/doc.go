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

// Package vm implements the runtime of a small Lisp: a single fixed-size
// memory region partitioned at construction time into a cons-pair pool, an
// atom/string heap and a value stack, a two-stage mark-sweep/compacting
// garbage collector, and a tail-call-optimizing evaluator.
//
// Values are NaN-boxed doubles (see Value): every Lisp value, numeric or
// not, fits in a float64, so lists of numbers and lists of symbols live in
// the same untyped slice with no boxing allocation.
//
// The package is built to be embedded: a host program creates an Interp
// with New, pushes values with Push (to protect them from a GC triggered by
// a later allocation), and calls Eval. The package does not perform any I/O,
// read any files or install any signal handlers; all of that is the job of
// a REPL built on top (see cmd/lisp).
//
// TODO:
//   - generational GC to avoid full mark/compact passes on short programs
//   - symbolic backtraces (currently errors only carry the error kind)
package vm
