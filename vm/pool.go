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

// MarkRecursive marks root and everything reachable from it by recursing on
// car/cdr, per §4.4. Exported so that tests can check it against
// MarkPointerReversal on the same graph (§8.1 invariant 6).
func (rg *Region) MarkRecursive(root Value) {
	if !isPairKind(root.Kind()) {
		return
	}
	pi := root.Ordinal() / 2
	if rg.marked[pi] {
		return
	}
	rg.marked[pi] = true
	car := rg.pool[root.Ordinal()]
	cdr := rg.pool[root.Ordinal()+1]
	rg.MarkRecursive(car)
	rg.MarkRecursive(cdr)
}

// packLink packs a backtrack parent cell index (or -1) and the original Kind
// of the pair being threaded through into a single ordinal, so that the cell
// storage itself can carry the pointer-reversal bookkeeping with no
// auxiliary stack, per §9 "uses the pair cells themselves as a reversed-
// pointer stack".
func packLink(parent int, kind Kind) uint64 {
	return (uint64(kind) << 44) | uint64(parent+1)
}

func unpackLink(payload uint64) (parent int, kind Kind) {
	parent = int(payload&((1<<44)-1)) - 1
	kind = Kind(payload >> 44)
	return
}

// MarkPointerReversal marks root and everything reachable from it using the
// Deutsch-Schorr-Waite pointer-reversal technique described in §4.4/§9: the
// parity of the cell index being visited (even = car half, odd = cdr half of
// its pair) tells the algorithm which edge to restore and which to descend
// into next, so no auxiliary stack is needed and native recursion depth is
// O(1).
func (rg *Region) MarkPointerReversal(root Value) {
	cur := root
	prev := -1
descend:
	for {
		for isPairKind(cur.Kind()) {
			idx := cur.Ordinal()
			pi := idx / 2
			if rg.marked[pi] {
				break
			}
			rg.marked[pi] = true
			origKind := cur.Kind()
			carCell := idx
			next := rg.pool[carCell]
			rg.pool[carCell] = box(uint64(KindNil), packLink(prev, origKind))
			prev = carCell
			cur = next
		}
		for {
			if prev < 0 {
				return
			}
			parent, origKind := unpackLink(uint64(rg.pool[prev].Ordinal()))
			rg.pool[prev] = cur
			if prev%2 == 0 {
				cdrCell := prev + 1
				next := rg.pool[cdrCell]
				rg.pool[cdrCell] = box(uint64(KindNil), packLink(parent, origKind))
				prev = cdrCell
				cur = next
				continue descend
			}
			pairIdx := prev - 1
			cur = box(uint64(origKind), uint64(pairIdx))
			prev = parent
		}
	}
}

// sweep rebuilds the free list from the mark bit-vector: every unmarked
// pair (other than the sentinel index 0) is threaded back onto the free
// list, per §4.2.
func (rg *Region) sweep() {
	newFP := 0
	for pi := 1; pi < rg.poolPairs(); pi++ {
		if !rg.marked[pi] {
			idx := pi * 2
			rg.pool[idx] = box(uint64(KindNil), uint64(newFP))
			newFP = idx
		}
	}
	rg.fp = newFP
}
