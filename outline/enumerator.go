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
	"github.com/samber/lo"

	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

// Enumerate produces every legal contiguous length-L window in fn,
// including windows that cross into at most two successor blocks
// along the hottest edge (§4.1). fn is assumed already screened for
// exception ranges and emptiness by the caller (§7.3 skip-function).
func Enumerate(o isa.Oracle, fn *ir.Function, length int, cfg Config) []*Window {
	var windows []*Window
	for _, blk := range fn.Blocks {
		if cfg.EnablePGO && blk.Hot() {
			continue // hot blocks excluded from enumeration under PGO (§4.1)
		}
		n := blk.Len()
		for start := 0; start+length <= n; start++ {
			cand := blk.Insts[start : start+length]
			if !passesFilter(o, cand) {
				continue
			}
			windows = append(windows, &Window{
				Length: length,
				Spans:  []Span{{Block: blk, Start: start, Length: length}},
				Insts:  append([]ir.Instruction{}, cand...),
			})
		}
		if n < length {
			if spans, insts, ok := gatherCrossBlock(blk, 0, length); ok && passesFilter(o, insts) {
				windows = append(windows, &Window{Length: length, Spans: spans, Insts: insts})
			}
		}
	}
	return windows
}

// passesFilter implements the §4.1 rejection rules at every position
// of a candidate window, single-block or cross-block alike: the
// always-reject set applies everywhere; call and conditional branch
// are permitted only at the final position, with the extra
// argument-marshalling check for a trailing call; stack-pointer reads
// are restricted to immediate-offset loads below length 5.
func passesFilter(o isa.Oracle, insts []ir.Instruction) bool {
	n := len(insts)
	for p, inst := range insts {
		last := p == n-1

		if o.IsPseudo(inst) || o.IsCFI(inst) {
			return false
		}
		if o.IsUnconditionalBranch(inst) {
			return false
		}
		if o.IsReturn(inst) {
			return false
		}
		if o.UsesLinkRegister(inst) {
			return false
		}
		if o.ReadsFrameRegister(inst) {
			return false
		}
		if o.WritesStackPointer(inst) {
			return false
		}
		if o.IsPCRelative(inst) {
			return false
		}

		if o.IsCall(inst) {
			if !last {
				return false
			}
			if lo.SomeBy(insts[:p], func(earlier ir.Instruction) bool {
				return o.MayStore(earlier) && o.ReadsStackPointer(earlier)
			}) {
				return false
			}
			continue
		}
		if o.IsConditionalBranch(inst) {
			if !last {
				return false
			}
			continue
		}
		if o.ReadsStackPointer(inst) {
			if !o.MayLoad(inst) {
				return false // stores (or any non-load) through SP are never permitted
			}
			if n < 5 {
				if _, hasImmOffset := o.StackOperandIndex(inst); !hasImmOffset {
					return false
				}
			}
		}
	}
	return true
}
