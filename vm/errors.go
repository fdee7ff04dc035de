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

package vm

import "github.com/pkg/errors"

// ErrCode is one of the small positive error kinds of §7.
type ErrCode int

// Error kinds, matching the taxonomy table in §7.
const (
	ErrNotAPair ErrCode = iota + 1
	ErrBreak
	ErrUnboundSymbol
	ErrCannotApply
	ErrBadArguments
	ErrStackOverflow
	ErrOutOfMemory
	ErrSyntax
)

var errCodeNames = map[ErrCode]string{
	ErrNotAPair:      "not-a-pair",
	ErrBreak:         "break",
	ErrUnboundSymbol: "unbound-symbol",
	ErrCannotApply:   "cannot-apply",
	ErrBadArguments:  "bad-arguments",
	ErrStackOverflow: "stack-overflow",
	ErrOutOfMemory:   "out-of-memory",
	ErrSyntax:        "syntax",
}

func (c ErrCode) String() string {
	if s, ok := errCodeNames[c]; ok {
		return s
	}
	return "unknown-error"
}

// LispError is a recoverable interpreter error carrying one of the §7
// error kinds. It is always produced through newError so that
// errors.Cause(err) recovers a *LispError even after Wrap/Wrapf layers
// have been added by callers, the same way the teacher wraps I/O errors in
// vm/mem.go and vm/io.go while still letting cmd/retro/main.go's atExit
// unwrap the original cause.
type LispError struct {
	Code ErrCode
}

func (e *LispError) Error() string {
	return e.Code.String()
}

// newError builds a *LispError of the given kind, optionally wrapped with a
// descriptive message via errors.Wrap so that %+v printing (as used by the
// debug-mode diagnostics in cmd/lisp) still shows a stack trace.
func newError(code ErrCode, format string, args ...interface{}) error {
	e := &LispError{Code: code}
	if format == "" {
		return e
	}
	return errors.Wrapf(e, format, args...)
}

// Cause reports the ErrCode carried by err, if any, by walking the
// errors.Cause chain. ok is false for errors that did not originate from
// this package (host I/O errors, etc.), in which case callers should treat
// the condition as fatal rather than catchable (§7: "errors during
// construction/initialization ... abort the process").
func Cause(err error) (code ErrCode, ok bool) {
	if err == nil {
		return 0, false
	}
	le, ok := errors.Cause(err).(*LispError)
	if !ok {
		return 0, false
	}
	return le.Code, true
}

// userThrow is the error value produced by the `throw` primitive. Unlike
// the ErrCode-carrying errors above, it carries an arbitrary already-tagged
// Value -- whatever the Lisp program passed to throw -- which `catch`
// surfaces verbatim as the cdr of `(ERR . n)` (§7, §9's "implementations
// may use ... a result-type convention" for non-local escape: ordinary Go
// error propagation already unwinds every intervening Eval/step call, so
// no panic/recover is needed to get `throw` out from under arbitrarily
// deep evaluation).
type userThrow struct {
	value Value
}

func (userThrow) Error() string { return "throw" }
