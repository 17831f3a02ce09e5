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

// LocateOccurrences re-scans fn — the single function the group's
// windows were enumerated from (§4.1's "for each function", §4.3's
// "find every occurrence in a function") — for every non-overlapping
// occurrence of group's canonical sequence, picking up occurrences
// the enumeration sweep never produced as a window of its own — a
// sequence embedded inside a longer candidate that lost to a
// different grouping, for instance — as long as it still satisfies
// the §4.1 filter. It reuses gatherCrossBlock for the same
// hottest-successor walk the enumerator uses, and structuralMatch for
// the same operand-compatibility rules the labelling loop uses, so a
// located occurrence is always something the rest of the pass would
// also have accepted had enumeration found it directly. Unlike the
// Enumerator, it never skips a hot block: §4.1's PGO hot-block
// exclusion scopes to candidate generation only, and the original
// source's findSequenceLocations re-scans every block in the function
// regardless of hotness — skipping hot blocks here would under-count
// an already-committed group's occurrences and corrupt the §4.4
// locator under-count gate.
func LocateOccurrences(o isa.Oracle, fn *ir.Function, group *Group, cfg Config) []*Window {
	length := len(group.Canonical)
	var accepted []*Window

	for _, blk := range fn.Blocks {
		n := blk.Len()
		for start := 0; start+length <= n; start++ {
			cand := blk.Insts[start : start+length]
			if !passesFilter(o, cand) {
				continue
			}
			if !structuralMatch(o, group.Canonical, cand) {
				continue
			}
			w := &Window{
				Length: length,
				Spans:  []Span{{Block: blk, Start: start, Length: length}},
				Insts:  append([]ir.Instruction{}, cand...),
			}
			if lo.SomeBy(accepted, func(other *Window) bool { return other.overlaps(w) }) {
				continue
			}
			accepted = append(accepted, w)
		}
		if n < length {
			if spans, insts, ok := gatherCrossBlock(blk, 0, length); ok &&
				passesFilter(o, insts) && structuralMatch(o, group.Canonical, insts) {
				w := &Window{Length: length, Spans: spans, Insts: insts}
				if !lo.SomeBy(accepted, func(other *Window) bool { return other.overlaps(w) }) {
					accepted = append(accepted, w)
				}
			}
		}
	}
	return accepted
}
