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

import "os"

// sysExitError is returned by the `exit` extension primitive; it carries
// the requested process exit code out through the normal error-return
// path so that a host program (cmd/lisp) decides when and how to actually
// terminate the process, rather than the interpreter calling os.Exit
// itself mid-evaluation.
type sysExitError struct {
	Code int
}

func (e sysExitError) Error() string { return "exit" }

// ExitCode reports the requested exit code carried by err, if any.
func ExitCode(err error) (code int, ok bool) {
	e, ok := err.(sysExitError)
	if !ok {
		return 0, false
	}
	return e.Code, true
}

// SysExtensions returns the Option that registers getenv, argv, and exit,
// the host-interaction primitives of §9's "extension primitives" example
// list (§6.3's embedding registry). argv is captured at registration time
// from the arguments the host program supplies (cmd/lisp passes os.Args
// unchanged) rather than re-read from os.Args inside the interpreter.
func SysExtensions(argv []string) []Option {
	return []Option{
		Extension("getenv", Primitive{Mode: ModeNormal, Normal: primGetenv}),
		Extension("argv", Primitive{Mode: ModeNormal, Normal: func(it *Interp, args Value) (Value, error) {
			return buildArgvList(it, argv)
		}}),
		Extension("exit", Primitive{Mode: ModeNormal, Normal: primExit}),
	}
}

func primGetenv(it *Interp, args Value) (Value, error) {
	name, err := argAt(it, args, 0)
	if err != nil {
		return Nil, err
	}
	if name.Kind() != KindAtom && name.Kind() != KindString {
		return Nil, newError(ErrBadArguments, "getenv: expected a string")
	}
	val, ok := os.LookupEnv(string(it.Bytes(name.Ordinal())))
	if !ok {
		return Nil, nil
	}
	return it.NewString([]byte(val))
}

func primExit(it *Interp, args Value) (Value, error) {
	code := 0
	if args.Kind() == KindCons {
		v, err := it.Car(args)
		if err != nil {
			return Nil, err
		}
		if v.Kind() == KindNumber {
			code = int(v.Float())
		}
	}
	return Nil, sysExitError{code}
}

func buildArgvList(it *Interp, argv []string) (Value, error) {
	result := Value(Nil)
	for i := len(argv) - 1; i >= 0; i-- {
		sv, err := it.Push(result)
		if err != nil {
			return Nil, err
		}
		s, err := it.NewString([]byte(argv[i]))
		if err != nil {
			it.Unwind(sv)
			return Nil, err
		}
		ss, err := it.Push(s)
		if err != nil {
			it.Unwind(sv)
			return Nil, err
		}
		result, err = it.Cons(it.StackGet(ss), it.StackGet(sv))
		it.Unwind(sv)
		if err != nil {
			return Nil, err
		}
	}
	return result, nil
}
