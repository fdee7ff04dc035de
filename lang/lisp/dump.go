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

package lisp

import (
	"fmt"
	"io"

	"github.com/db47h/lisp/vm"
)

// DumpGauges runs a collection and prints the resulting free-space gauges
// (free pairs, free cells) to w, per §6.2's "between iterations ... GC is
// run to report free-space gauges".
func DumpGauges(it *vm.Interp, w io.Writer) error {
	stats := it.Collect()
	_, err := fmt.Fprintf(w, "; %d free pairs, %d free cells\n", stats.FreePairs, stats.FreeCells)
	return err
}
