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

package reader

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/db47h/lisp/vm"
)

// Reader tokenizes and parses S-expressions from an io.Reader, producing
// vm.Value trees against a *vm.Interp (§4.5).
type Reader struct {
	r        *bufio.Reader
	pushback []rune // our own pushback stack; bufio's single-rune UnreadRune isn't enough for the list reader's lookahead
	line     int
}

// New wraps r as a Reader positioned at the start of input.
func New(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r), line: 1}
}

func (rd *Reader) readRune() (rune, error) {
	if n := len(rd.pushback); n > 0 {
		c := rd.pushback[n-1]
		rd.pushback = rd.pushback[:n-1]
		return c, nil
	}
	c, _, err := rd.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if c == '\n' {
		rd.line++
	}
	return c, nil
}

func (rd *Reader) unreadRune(c rune) {
	rd.pushback = append(rd.pushback, c)
}

func (rd *Reader) syntaxError(format string, args ...interface{}) error {
	msg := errors.Errorf(format, args...)
	return errors.Wrapf(msg, "line %d", rd.line)
}

func isDelim(c rune) bool {
	switch c {
	case '(', ')', '\'', '"':
		return true
	}
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// skipSpace consumes whitespace and `;`-to-end-of-line comments.
func (rd *Reader) skipSpace() error {
	for {
		c, err := rd.readRune()
		if err != nil {
			return err
		}
		switch {
		case c == ';':
			for {
				c, err := rd.readRune()
				if err != nil {
					return err
				}
				if c == '\n' {
					break
				}
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			// skip
		default:
			rd.unreadRune(c)
			return nil
		}
	}
}

// Read parses one expression. It returns io.EOF (unwrapped, so callers can
// test with == io.EOF) when input is exhausted at an expression boundary,
// per §4.5's "end-of-file ... returns to the previous source, without
// error".
func (rd *Reader) Read(it *vm.Interp) (vm.Value, error) {
	if err := rd.skipSpace(); err != nil {
		if err == io.EOF {
			return vm.Nil, io.EOF
		}
		return vm.Nil, err
	}
	return rd.readExpr(it)
}

func (rd *Reader) readExpr(it *vm.Interp) (vm.Value, error) {
	c, err := rd.readRune()
	if err != nil {
		if err == io.EOF {
			return vm.Nil, rd.syntaxError("unexpected end of input")
		}
		return vm.Nil, err
	}
	switch c {
	case '(':
		return rd.readList(it)
	case ')':
		return vm.Nil, rd.syntaxError("unexpected )")
	case '\'':
		if err := rd.skipSpace(); err != nil {
			return vm.Nil, err
		}
		inner, err := rd.readExpr(it)
		if err != nil {
			return vm.Nil, err
		}
		quoteAtom, err := it.Atom("quote")
		if err != nil {
			return vm.Nil, err
		}
		sinner, err := it.Push(inner)
		if err != nil {
			return vm.Nil, err
		}
		tail, err := it.Cons(it.StackGet(sinner), vm.Nil)
		it.Unwind(sinner)
		if err != nil {
			return vm.Nil, err
		}
		stail, err := it.Push(tail)
		if err != nil {
			return vm.Nil, err
		}
		result, err := it.Cons(quoteAtom, it.StackGet(stail))
		it.Unwind(stail)
		return result, err
	case '"':
		return rd.readString(it)
	default:
		rd.unreadRune(c)
		return rd.readAtomOrNumber(it)
	}
}

// readList parses the body of a list after the opening `(` has been
// consumed: zero or more expressions, optionally followed by `. tail`,
// then a closing `)`.
func (rd *Reader) readList(it *vm.Interp) (vm.Value, error) {
	if err := rd.skipSpace(); err != nil {
		return vm.Nil, rd.eofAsSyntaxErr(err)
	}
	c, err := rd.readRune()
	if err != nil {
		return vm.Nil, rd.eofAsSyntaxErr(err)
	}
	if c == ')' {
		return vm.Nil, nil
	}
	rd.unreadRune(c)

	head, err := rd.readExpr(it)
	if err != nil {
		return vm.Nil, err
	}
	shead, err := it.Push(head)
	if err != nil {
		return vm.Nil, err
	}

	if err := rd.skipSpace(); err != nil {
		it.Unwind(shead)
		return vm.Nil, rd.eofAsSyntaxErr(err)
	}
	c, err = rd.readRune()
	if err != nil {
		it.Unwind(shead)
		return vm.Nil, rd.eofAsSyntaxErr(err)
	}
	if c == '.' {
		nc, nerr := rd.readRune()
		if nerr == nil && isDelim(nc) {
			rd.unreadRune(nc)
			if err := rd.skipSpace(); err != nil {
				it.Unwind(shead)
				return vm.Nil, rd.eofAsSyntaxErr(err)
			}
			tail, err := rd.readExpr(it)
			if err != nil {
				it.Unwind(shead)
				return vm.Nil, err
			}
			stail, err := it.Push(tail)
			if err != nil {
				it.Unwind(shead)
				return vm.Nil, err
			}
			if err := rd.skipSpace(); err != nil {
				it.Unwind(shead)
				return vm.Nil, rd.eofAsSyntaxErr(err)
			}
			closeParen, err := rd.readRune()
			if err != nil {
				it.Unwind(shead)
				return vm.Nil, rd.eofAsSyntaxErr(err)
			}
			if closeParen != ')' {
				it.Unwind(shead)
				return vm.Nil, rd.syntaxError("expected ) after dotted tail")
			}
			result, err := it.Cons(it.StackGet(shead), it.StackGet(stail))
			it.Unwind(shead)
			return result, err
		}
		// not a tail marker (e.g. the start of an atom/number beginning
		// with '.'): push both runes back, in reverse read order, so the
		// next element read sees '.' first.
		if nerr == nil {
			rd.unreadRune(nc)
		}
		rd.unreadRune(c)
	} else {
		rd.unreadRune(c)
	}

	rest, err := rd.readList(it)
	if err != nil {
		it.Unwind(shead)
		return vm.Nil, err
	}
	srest, err := it.Push(rest)
	if err != nil {
		it.Unwind(shead)
		return vm.Nil, err
	}
	result, err := it.Cons(it.StackGet(shead), it.StackGet(srest))
	it.Unwind(shead)
	return result, err
}

func (rd *Reader) eofAsSyntaxErr(err error) error {
	if err == io.EOF {
		return rd.syntaxError("unexpected end of input inside list")
	}
	return err
}

// escapeTable implements §6.1's printable escapes: \a \b \t \n \v \f \r \"
// \\, with \c = c for any other c.
var escapeTable = map[rune]byte{
	'a': '\a', 'b': '\b', 't': '\t', 'n': '\n',
	'v': '\v', 'f': '\f', 'r': '\r', '"': '"', '\\': '\\',
}

func (rd *Reader) readString(it *vm.Interp) (vm.Value, error) {
	var buf []byte
	for {
		c, err := rd.readRune()
		if err != nil {
			return vm.Nil, rd.eofAsSyntaxErr(err)
		}
		if c == '"' {
			return it.NewString(buf)
		}
		if c == '\\' {
			e, err := rd.readRune()
			if err != nil {
				return vm.Nil, rd.eofAsSyntaxErr(err)
			}
			if b, ok := escapeTable[e]; ok {
				buf = append(buf, b)
			} else {
				buf = append(buf, string(e)...)
			}
			continue
		}
		buf = append(buf, string(c)...)
	}
}

func (rd *Reader) readAtomOrNumber(it *vm.Interp) (vm.Value, error) {
	var sb strings.Builder
	for {
		c, err := rd.readRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return vm.Nil, err
		}
		if isDelim(c) {
			rd.unreadRune(c)
			break
		}
		sb.WriteRune(c)
	}
	tok := sb.String()
	if tok == "" {
		return vm.Nil, rd.syntaxError("empty token")
	}
	if f, ok := parseNumber(tok); ok {
		return vm.Number(f), nil
	}
	return it.Atom(tok)
}

// parseNumber recognizes §6.1's numeric surface syntax: optional sign,
// decimal or 0x-prefixed hex, and the inf/-inf/nan keywords.
func parseNumber(tok string) (float64, bool) {
	lower := strings.ToLower(tok)
	switch lower {
	case "inf", "+inf":
		return math.Inf(1), true
	case "-inf":
		return math.Inf(-1), true
	case "nan":
		return math.NaN(), true
	}

	neg := false
	body := tok
	if strings.HasPrefix(body, "+") {
		body = body[1:]
	} else if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		n, err := strconv.ParseUint(body[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		f := float64(n)
		if neg {
			f = -f
		}
		return f, true
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
