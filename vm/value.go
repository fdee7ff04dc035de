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

import "math"

// Value is a tagged Lisp value, NaN-boxed into a single float64. Every
// finite (non-NaN) bit pattern is, bit for bit, the Number it represents;
// every quiet-NaN bit pattern with our reserved layout carries a 4-bit tag
// and a 47-bit ordinal instead:
//
//	63       62        52 51 50      47 46                  0
//	+--------+----------+--+----------+----------------------+
//	| sign=0 | exp=0x7FF | 1|   tag    |       ordinal        |
//	+--------+----------+--+----------+----------------------+
//
// Bit 51 is the IEEE "quiet" bit; together with the all-ones exponent it
// marks the value as boxed rather than a plain double. The spec calls for
// "a 4-bit (or larger) tag ... and a 20-bit ordinal"; this implementation
// keeps the double-precision variant throughout (see SPEC_FULL.md, Open
// Question 3) and so has room for a 47-bit ordinal, far beyond the 2^20
// cap of the single-precision variant.
//
// Kind Number is special-cased at tag 0: it is never produced by encoding a
// tag+ordinal pair, only by canonicalizing an actual IEEE NaN float (e.g.
// the result of 0.0/0.0) through numberOf, so that every NaN Number in a
// running program is bit-identical and therefore eq? to itself.
type Value uint64

// Kind identifies the dynamic type of a Value.
type Kind int8

// Concrete value kinds, matching the tag field of a boxed Value.
const (
	KindNumber Kind = iota
	KindNil
	KindPrimitive
	KindAtom
	KindString
	KindCons
	KindClosure
	KindMacro
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindNil:
		return "nil"
	case KindPrimitive:
		return "primitive"
	case KindAtom:
		return "atom"
	case KindString:
		return "string"
	case KindCons:
		return "cons"
	case KindClosure:
		return "closure"
	case KindMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// TypeCode returns the integer code used by the `type` primitive (§4.10):
// Nil=-1, Number=0, Primitive=1, Atom=2, String=3, Cons=4, Closure=6, Macro=7.
func (k Kind) TypeCode() int {
	switch k {
	case KindNil:
		return -1
	case KindNumber:
		return 0
	case KindPrimitive:
		return 1
	case KindAtom:
		return 2
	case KindString:
		return 3
	case KindCons:
		return 4
	case KindClosure:
		return 6
	case KindMacro:
		return 7
	default:
		return -2
	}
}

const (
	qnanBits  uint64 = 0x7FF8000000000000 // exponent all-ones + quiet bit
	boxedMask uint64 = 0x7FF8000000000000 // sign ignored, exponent+quiet bit
	tagShift         = 47
	tagBits          = 4
	tagMask   uint64 = (1<<tagBits - 1) << tagShift
	ordMask   uint64 = 1<<tagShift - 1
)

// Nil is the distinguished false/empty-list value.
var Nil = box(uint64(KindNil), 0)

// box constructs a boxed Value from a tag and an ordinal. Panics if ordinal
// does not fit in the 47-bit payload; this is a programming error, not a
// recoverable runtime condition.
func box(tag uint64, ordinal uint64) Value {
	if ordinal&^ordMask != 0 {
		panic("vm: ordinal overflows Value payload")
	}
	return Value(qnanBits | (tag << tagShift) | ordinal)
}

func (v Value) bits() uint64 { return uint64(v) }

func (v Value) isBoxed() bool { return v.bits()&boxedMask == qnanBits }

func (v Value) tag() uint64 { return (v.bits() & tagMask) >> tagShift }

// Ordinal returns the payload ordinal of a boxed value. It is meaningless
// for KindNumber.
func (v Value) Ordinal() int { return int(v.bits() & ordMask) }

// Kind reports the dynamic type of v.
func (v Value) Kind() Kind {
	if !v.isBoxed() {
		return KindNumber
	}
	k := Kind(v.tag())
	if k < KindNumber || k > KindMacro {
		return KindNumber
	}
	return k
}

// Number wraps a float64 as a Number Value, for use by the reader and by
// host programs embedding the interpreter (§6.3). See numberOf for the NaN
// canonicalization rule.
func Number(f float64) Value { return numberOf(f) }

// numberOf wraps a float64 as a Number Value, canonicalizing IEEE NaN to
// our single reserved NaN-tag pattern so that all NaNs produced by this
// interpreter are bit-identical (and therefore mutually eq?, unlike plain
// IEEE NaN).
func numberOf(f float64) Value {
	if math.IsNaN(f) {
		return box(uint64(KindNumber), 0)
	}
	return Value(math.Float64bits(f))
}

// Float returns the float64 payload of a Number value. The result is
// unspecified for non-Number kinds.
func (v Value) Float() float64 {
	if v.isBoxed() && v.tag() == uint64(KindNumber) {
		return math.NaN()
	}
	return math.Float64frombits(v.bits())
}

// IsNil reports whether v is the Nil value.
func (v Value) IsNil() bool { return v == Nil }

// Truthy reports whether v is truthy in conditional contexts: everything
// except Nil is truthy, including the number 0 (the spec distinguishes Nil
// as "the empty list, distinguished false value" -- it alone is false).
func (v Value) Truthy() bool { return v != Nil }

func atomValue(ordinal int) Value   { return box(uint64(KindAtom), uint64(ordinal)) }
func stringValue(ordinal int) Value { return box(uint64(KindString), uint64(ordinal)) }
func consValue(ordinal int) Value   { return box(uint64(KindCons), uint64(ordinal)) }
func closureValue(ordinal int) Value { return box(uint64(KindClosure), uint64(ordinal)) }
func macroValue(ordinal int) Value  { return box(uint64(KindMacro), uint64(ordinal)) }
func primitiveValue(index int) Value { return box(uint64(KindPrimitive), uint64(index)) }

// Eq implements the eq? primitive's contract (§4.10): bit equality, except
// that two Strings compare by byte content rather than by heap ordinal.
func (m *Region) Eq(a, b Value) bool {
	if a == b {
		return true
	}
	if a.Kind() == KindString && b.Kind() == KindString {
		return m.Bytes(a.Ordinal()) != nil && string(m.Bytes(a.Ordinal())) == string(m.Bytes(b.Ordinal()))
	}
	return false
}

// Less implements the `<` primitive's total order (§4.10): IEEE `<` for two
// Numbers, byte-lexicographic for two Atoms or two Strings, and otherwise
// the unsigned 64-bit comparison of the tag-ordinal bit pattern -- which
// makes Less a total order over all values, suitable for sorting mixed
// lists.
func (m *Region) Less(a, b Value) bool {
	ak, bk := a.Kind(), b.Kind()
	if ak == KindNumber && bk == KindNumber {
		return a.Float() < b.Float()
	}
	if ak == KindAtom && bk == KindAtom {
		return string(m.Bytes(a.Ordinal())) < string(m.Bytes(b.Ordinal()))
	}
	if ak == KindString && bk == KindString {
		return string(m.Bytes(a.Ordinal())) < string(m.Bytes(b.Ordinal()))
	}
	return a.bits() < b.bits()
}
