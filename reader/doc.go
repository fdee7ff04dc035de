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

// Package reader implements the S-expression tokenizer and parser of §4.5/
// §6.1: numbers (decimal, hex, inf/nan), atoms, quoted strings with
// backslash escapes, dotted-pair list syntax, and `'x` quote sugar. It
// produces vm.Value trees directly against a *vm.Interp, the same way the
// teacher's asm package compiles directly against a vm.Image rather than
// through an intermediate AST.
package reader
