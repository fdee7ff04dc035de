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

import "time"

// SleepExtension returns the Option that registers `sleep`, pausing
// evaluation for the given number of seconds (fractional seconds
// allowed). Listed among §9's example extension primitives; blocks the
// calling goroutine only, consistent with §5's "two Interp instances
// never share state and may run concurrently in separate goroutines".
func SleepExtension() Option {
	return Extension("sleep", Primitive{Mode: ModeNormal, Normal: func(it *Interp, args Value) (Value, error) {
		v, err := argAt(it, args, 0)
		if err != nil {
			return Nil, err
		}
		if v.Kind() != KindNumber {
			return Nil, newError(ErrBadArguments, "sleep: expected a number")
		}
		time.Sleep(time.Duration(v.Float() * float64(time.Second)))
		return Nil, nil
	}})
}
