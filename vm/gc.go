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

// GCStats reports the gauges the REPL prints between iterations (§6.2):
// free pairs in the pool and free cells in the shared heap/stack budget.
type GCStats struct {
	FreePairs int
	FreeCells int
}

// Collect runs a full garbage-collection cycle: clear marks, mark from
// roots (the global environment and every stack slot) with the
// pointer-reversal algorithm, sweep the pool, and compact the heap, per
// §4.4. Nothing in this package raises the `break` error kind and
// Interp.gcRunning is never set, so Collect runs without interrupt masking.
func (rg *Region) Collect() GCStats {
	for i := range rg.marked {
		rg.marked[i] = false
	}
	rg.MarkPointerReversal(rg.global)
	for _, v := range rg.stack {
		rg.MarkPointerReversal(v)
	}
	rg.sweep()
	rg.compact()
	rg.lastStats = rg.Stats()
	return rg.lastStats
}

// Stats computes the current free-pair and free-cell gauges without
// running a collection.
func (rg *Region) Stats() GCStats {
	free := 0
	for p := rg.fp; p != 0; p = rg.pool[p].Ordinal() {
		free++
	}
	used := (len(rg.heap)+7)/8 + len(rg.stack)
	return GCStats{FreePairs: free, FreeCells: rg.budget - used}
}
