// Copyright 2025 llvm-project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package outline

import (
	"github.com/PiggySusie/llvm-project/ir"
)

// maxCrossBlockDepth bounds the cross-block walk to at most two
// additional blocks deep (§4.1, §4.3).
const maxCrossBlockDepth = 2

// gatherCrossBlock extends a window that starts at (blk, start) and
// runs out of instructions before reaching length, walking blk's
// successor chain along the hottest edge (ties broken by iteration
// order) up to maxCrossBlockDepth blocks deep. It is shared by the
// Enumerator and the Locator, both of which only ever call it with
// start == 0, for blocks strictly smaller than length.
//
// The walk only ever has one live successor at a time — §4.1 picks a
// single hottest edge per step rather than exploring the whole
// successor graph — so it is a bounded linear walk, not a queue-driven
// BFS: a plain loop variable tracking the current block is clearer
// here than a general-purpose queue.
func gatherCrossBlock(blk *ir.BasicBlock, start, length int) ([]Span, []ir.Instruction, bool) {
	if blk.ExecCount != nil && *blk.ExecCount > 1 {
		// entry block of the cross-block attempt is hot: abandon (§4.1)
		return nil, nil, false
	}
	avail := blk.Len() - start
	if avail <= 0 || avail >= length {
		return nil, nil, false
	}

	spans := []Span{{Block: blk, Start: start, Length: avail}}
	insts := append([]ir.Instruction{}, blk.Insts[start:start+avail]...)
	remaining := length - avail

	cur := blk
	depth := 0
	for remaining > 0 && depth < maxCrossBlockDepth {
		next := cur.HottestSuccessor()
		if next == nil {
			return nil, nil, false // successor chain stalled
		}
		depth++
		take := remaining
		if take > next.Len() {
			take = next.Len()
		}
		spans = append(spans, Span{Block: next, Start: 0, Length: take})
		insts = append(insts, next.Insts[:take]...)
		remaining -= take
		cur = next
	}

	if remaining > 0 {
		return nil, nil, false
	}
	return spans, insts, true
}
