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

import "strconv"

// primString implements the `string` primitive of §4.10: atoms and strings
// contribute their bytes, numbers contribute their printed form, and a list
// contributes each of its elements as a single byte code -- enabling
// construction of arbitrary byte strings from a list of character codes.
func primString(it *Interp, args Value) (Value, error) {
	var buf []byte
	for args.Kind() == KindCons {
		v, err := it.Car(args)
		if err != nil {
			return Nil, err
		}
		switch v.Kind() {
		case KindAtom, KindString:
			buf = append(buf, it.Bytes(v.Ordinal())...)
		case KindNumber:
			buf = strconv.AppendFloat(buf, v.Float(), 'g', -1, 64)
		case KindCons, KindNil:
			codes, err := byteCodes(it, v)
			if err != nil {
				return Nil, err
			}
			buf = append(buf, codes...)
		default:
			return Nil, newError(ErrBadArguments, "string: cannot convert %v", v.Kind())
		}
		args, err = it.Cdr(args)
		if err != nil {
			return Nil, err
		}
	}
	return it.NewString(buf)
}

// byteCodes reads list as a sequence of Number elements, each a byte code.
func byteCodes(it *Interp, list Value) ([]byte, error) {
	var out []byte
	for list.Kind() == KindCons {
		v, err := it.Car(list)
		if err != nil {
			return nil, err
		}
		if v.Kind() != KindNumber {
			return nil, newError(ErrBadArguments, "string: expected a byte code")
		}
		out = append(out, byte(int(v.Float())))
		list, err = it.Cdr(list)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
