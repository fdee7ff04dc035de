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

package printer

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/db47h/lisp/vm"
)

// reverseEscapes maps the printable escape bytes of §6.1 back to their
// backslash form.
var reverseEscapes = map[byte]string{
	'\a': `\a`, '\b': `\b`, '\t': `\t`, '\n': `\n`,
	'\v': `\v`, '\f': `\f`, '\r': `\r`, '"': `\"`, '\\': `\\`,
}

// errWriter wraps an io.Writer and latches the first write error, so the
// recursive fprint can write unconditionally at every step instead of
// threading an error return through every call.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = errors.Wrap(err, "write failed")
	}
	return n, ew.err
}

// Fprint writes the surface-syntax representation of v to w, per §4.6.
func Fprint(w io.Writer, it *vm.Interp, v vm.Value) error {
	ew := &errWriter{w: w}
	fprint(ew, it, v)
	return ew.err
}

// Sprint renders v the same way Fprint does, returning the result as a
// string.
func Sprint(it *vm.Interp, v vm.Value) string {
	var sb strings.Builder
	_ = Fprint(&sb, it, v)
	return sb.String()
}

func fprint(w io.Writer, it *vm.Interp, v vm.Value) {
	switch v.Kind() {
	case vm.KindNil:
		io.WriteString(w, "()")
	case vm.KindNumber:
		io.WriteString(w, strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case vm.KindAtom:
		w.Write(it.Bytes(v.Ordinal()))
	case vm.KindString:
		printString(w, it.Bytes(v.Ordinal()))
	case vm.KindCons:
		printList(w, it, v)
	case vm.KindClosure:
		io.WriteString(w, "#<closure:"+strconv.Itoa(v.Ordinal())+">")
	case vm.KindMacro:
		io.WriteString(w, "#<macro:"+strconv.Itoa(v.Ordinal())+">")
	case vm.KindPrimitive:
		io.WriteString(w, "#<primitive:"+strconv.Itoa(v.Ordinal())+">")
	default:
		io.WriteString(w, "#<unknown>")
	}
}

func printString(w io.Writer, b []byte) {
	io.WriteString(w, `"`)
	for _, c := range b {
		if esc, ok := reverseEscapes[c]; ok {
			io.WriteString(w, esc)
		} else {
			w.Write([]byte{c})
		}
	}
	io.WriteString(w, `"`)
}

func printList(w io.Writer, it *vm.Interp, v vm.Value) {
	io.WriteString(w, "(")
	first := true
	for {
		if !first {
			io.WriteString(w, " ")
		}
		first = false
		car, err := it.Car(v)
		if err != nil {
			break
		}
		fprint(w, it, car)
		cdr, err := it.Cdr(v)
		if err != nil {
			break
		}
		switch cdr.Kind() {
		case vm.KindNil:
			io.WriteString(w, ")")
			return
		case vm.KindCons:
			v = cdr
		default:
			io.WriteString(w, " . ")
			fprint(w, it, cdr)
			io.WriteString(w, ")")
			return
		}
	}
	io.WriteString(w, ")")
}
