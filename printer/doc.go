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

// Package printer serializes vm.Value trees back to the surface syntax of
// §4.6/§6.1: numbers with full round-trip precision, atoms as bytes,
// strings with escapes reversed, pairs as `(a b c)`/`(a b . d)`, Nil as
// `()`, and Primitive/Closure/Macro with a type marker and ordinal
// sufficient for debugging (not expected to round-trip).
package printer
