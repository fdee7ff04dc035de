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

// StringExtensions returns the Option that registers byte-slice and
// substring operations over Atom/String values, outside the core table of
// §4.10 (§9's "extension primitives" example list).
func StringExtensions() []Option {
	return []Option{
		Extension("substr", Primitive{Mode: ModeNormal, Normal: primSubstr}),
		Extension("strlen", Primitive{Mode: ModeNormal, Normal: primStrlen}),
		Extension("str-concat", Primitive{Mode: ModeNormal, Normal: primStrConcat}),
	}
}

// primSubstr implements (substr s start end): a new String holding the
// half-open byte range [start, end) of s.
func primSubstr(it *Interp, args Value) (Value, error) {
	s, err := argAt(it, args, 0)
	if err != nil {
		return Nil, err
	}
	start, err := argAt(it, args, 1)
	if err != nil {
		return Nil, err
	}
	end, err := argAt(it, args, 2)
	if err != nil {
		return Nil, err
	}
	if s.Kind() != KindAtom && s.Kind() != KindString {
		return Nil, newError(ErrBadArguments, "substr: expected a string")
	}
	if start.Kind() != KindNumber || end.Kind() != KindNumber {
		return Nil, newError(ErrBadArguments, "substr: expected numeric bounds")
	}
	b := it.Bytes(s.Ordinal())
	lo, hi := int(start.Float()), int(end.Float())
	if lo < 0 || hi > len(b) || lo > hi {
		return Nil, newError(ErrBadArguments, "substr: range out of bounds")
	}
	return it.NewString(b[lo:hi])
}

// primStrlen returns the byte length of an Atom or String.
func primStrlen(it *Interp, args Value) (Value, error) {
	s, err := argAt(it, args, 0)
	if err != nil {
		return Nil, err
	}
	if s.Kind() != KindAtom && s.Kind() != KindString {
		return Nil, newError(ErrBadArguments, "strlen: expected a string")
	}
	return numberOf(float64(len(it.Bytes(s.Ordinal())))), nil
}

// primStrConcat concatenates the byte content of every Atom/String
// argument into a new String, a narrower sibling of the core `string`
// primitive that rejects non-string arguments rather than coercing them.
func primStrConcat(it *Interp, args Value) (Value, error) {
	var buf []byte
	for args.Kind() == KindCons {
		v, err := it.Car(args)
		if err != nil {
			return Nil, err
		}
		if v.Kind() != KindAtom && v.Kind() != KindString {
			return Nil, newError(ErrBadArguments, "str-concat: expected a string")
		}
		buf = append(buf, it.Bytes(v.Ordinal())...)
		args, err = it.Cdr(args)
		if err != nil {
			return Nil, err
		}
	}
	return it.NewString(buf)
}
