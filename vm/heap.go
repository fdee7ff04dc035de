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

import "bytes"

// Bytes returns the NUL-terminated entry at the given heap offset, without
// the trailing NUL. Meaningless for any ordinal other than an Atom or
// String's.
func (rg *Region) Bytes(offset int) []byte {
	if offset < 0 || offset >= len(rg.heap) {
		return nil
	}
	end := offset
	for end < len(rg.heap) && rg.heap[end] != 0 {
		end++
	}
	return rg.heap[offset:end]
}

// appendHeapEntry appends b, NUL-terminated, to the heap, running the
// collector first if there is not enough shared heap/stack budget. Fails
// with ErrStackOverflow (the heap and stack share one budget, per §4.1) if
// still short after a collection.
func (rg *Region) appendHeapEntry(b []byte) (int, error) {
	need := len(b) + 1
	if !rg.fits(len(rg.heap)+need, len(rg.stack)) {
		rg.Collect()
		if !rg.fits(len(rg.heap)+need, len(rg.stack)) {
			return 0, newError(ErrStackOverflow, "heap exhausted allocating %d bytes", len(b))
		}
	}
	off := len(rg.heap)
	rg.heap = append(rg.heap, b...)
	rg.heap = append(rg.heap, 0)
	return off, nil
}

// InternAtom returns the Atom value for b, deduplicating by content via a
// linear scan from the bottom of the heap, per §3.3/§4.3.
func (rg *Region) InternAtom(b []byte) (Value, error) {
	pos := 0
	for pos < len(rg.heap) {
		end := pos
		for end < len(rg.heap) && rg.heap[end] != 0 {
			end++
		}
		if bytes.Equal(rg.heap[pos:end], b) {
			return atomValue(pos), nil
		}
		pos = end + 1
	}
	off, err := rg.appendHeapEntry(b)
	if err != nil {
		return Nil, err
	}
	return atomValue(off), nil
}

// NewString returns a fresh, non-interned String value for b.
func (rg *Region) NewString(b []byte) (Value, error) {
	off, err := rg.appendHeapEntry(b)
	if err != nil {
		return Nil, err
	}
	return stringValue(off), nil
}

// refLoc names one live location that holds an Atom or String Value,
// discovered while scanning the roots for compaction.
type refLoc struct {
	class byte // 0 = pool cell, 1 = stack slot, 2 = global env
	index int
}

func (rg *Region) refValue(r refLoc) Value {
	switch r.class {
	case 0:
		return rg.pool[r.index]
	case 1:
		return rg.stack[r.index]
	default:
		return rg.global
	}
}

func (rg *Region) setRefOffset(r refLoc, offset int) {
	v := rg.refValue(r)
	nv := box(uint64(v.Kind()), uint64(offset))
	switch r.class {
	case 0:
		rg.pool[r.index] = nv
	case 1:
		rg.stack[r.index] = nv
	default:
		rg.global = nv
	}
}

// compact performs the "relink-then-move" compaction of §4.3, adapted to
// keep its referrer bookkeeping in an ephemeral Go slice rather than
// threading a back-reference field through the persisted bytes (see
// DESIGN.md): every live Atom/String reference -- on the stack, in the
// global environment, or inside a marked pair -- is collected, grouped by
// its current heap offset, and then entries are walked bottom-up and slid
// down over dead gaps, updating every referrer in place.
func (rg *Region) compact() {
	var refs []refLoc

	if k := rg.global.Kind(); k == KindAtom || k == KindString {
		refs = append(refs, refLoc{2, 0})
	}
	for i, v := range rg.stack {
		if k := v.Kind(); k == KindAtom || k == KindString {
			refs = append(refs, refLoc{1, i})
		}
	}
	for pi := 1; pi < rg.poolPairs(); pi++ {
		if !rg.marked[pi] {
			continue
		}
		for half := 0; half < 2; half++ {
			cell := pi*2 + half
			if k := rg.pool[cell].Kind(); k == KindAtom || k == KindString {
				refs = append(refs, refLoc{0, cell})
			}
		}
	}

	if len(refs) == 0 {
		rg.heap = rg.heap[:0]
		return
	}

	byOffset := make(map[int][]refLoc, len(refs))
	for _, r := range refs {
		off := rg.refValue(r).Ordinal()
		byOffset[off] = append(byOffset[off], r)
	}

	write, pos := 0, 0
	for pos < len(rg.heap) {
		end := pos
		for end < len(rg.heap) && rg.heap[end] != 0 {
			end++
		}
		entryLen := end - pos + 1
		if at, live := byOffset[pos]; live {
			if write != pos {
				copy(rg.heap[write:write+entryLen], rg.heap[pos:pos+entryLen])
			}
			for _, r := range at {
				rg.setRefOffset(r, write)
			}
			write += entryLen
		}
		pos = end + 1
	}
	rg.heap = rg.heap[:write]
}
