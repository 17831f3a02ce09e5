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
	"sort"

	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

// sortOccurrences orders windows by block ID then descending start
// index, so RewriteOccurrences can erase and insert into a block
// back-to-front without earlier edits invalidating the index of a
// later one still to be rewritten.
func sortOccurrences(windows []*Window) []*Window {
	sorted := append([]*Window{}, windows...)
	sort.Slice(sorted, func(i, j int) bool {
		bi, bj := sorted[i].Spans[0].Block, sorted[j].Spans[0].Block
		if bi.ID != bj.ID {
			return bi.ID < bj.ID
		}
		return sorted[i].Spans[0].Start > sorted[j].Spans[0].Start
	})
	return sorted
}

// callSequence builds the replacement instruction(s) for a single
// occurrence, either a bare call (CallNormal) or a call sandwiched
// between a push and pop of FP,LR (CallSandwich), the same push-pair
// order SynthesizeProcedure's own prologue/epilogue use (§4.5/§4.6),
// matching the pair goat's transformStack helpers emit for a prologue
// save.
func callSequence(o isa.Oracle, kind CallKind, target string) []ir.Instruction {
	b := o.Builder()
	if kind == CallNormal {
		return []ir.Instruction{b.CreateCall(target)}
	}
	regs := o.Registers()
	return []ir.Instruction{
		b.CreatePushPair(regs.FrameRegister(), regs.LinkRegister()),
		b.CreateCall(target),
		b.CreatePopPair(regs.FrameRegister(), regs.LinkRegister()),
	}
}

// RewriteOccurrences splices a call to target into every occurrence
// in windows, in an order safe for in-place block mutation (§4.6). A
// window with more than one span (a cross-block occurrence) gets its
// call at the first span and has its later spans' instructions erased
// from their own blocks, since that code now lives in the outlined
// procedure and executes when control reaches it by fallthrough.
//
// Tail-call folding (§4.5's body ending bl+ret collapsing to b) is a
// property of the synthesized procedure itself, decided once by
// SynthesizeProcedure — the call site here always gets the real call
// sequence (bare call or sandwich) for its kind, never a branch.
func RewriteOccurrences(o isa.Oracle, windows []*Window, kinds map[*Window]CallKind, target string) int {
	rewritten := 0
	for _, w := range sortOccurrences(windows) {
		kind := kinds[w]
		head := w.Spans[0]
		blk := head.Block

		seq := callSequence(o, kind, target)
		blk.EraseRange(head.Start, head.Start+head.Length)
		blk.InsertSliceAt(head.Start, seq)

		for _, span := range w.Spans[1:] {
			span.Block.EraseRange(span.Start, span.Start+span.Length)
		}
		rewritten++
	}
	return rewritten
}
