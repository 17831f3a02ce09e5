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

// Package outline implements the post-link outlining pass: sequence
// enumeration, fingerprinting/grouping, location, costing, procedure
// synthesis, call-site rewriting, and post-pass cleanup.
package outline

import "github.com/PiggySusie/llvm-project/ir"

// Span is one basic block's contribution to a (possibly cross-block)
// matched instruction range.
type Span struct {
	Block  *ir.BasicBlock
	Start  int
	Length int
}

// Pos identifies a single instruction slot within a function.
type Pos struct {
	Block *ir.BasicBlock
	Index int
}

// Window is a candidate or located instruction sequence: its spans
// (one for a single-block match, two or three for a cross-block
// match), the concatenated instructions, and its fingerprint once
// computed. Window doubles as both the Enumerator's candidate list
// entries and the Locator's SequenceLocation (§3).
type Window struct {
	Length      int
	Spans       []Span
	Insts       []ir.Instruction
	Fingerprint uint64
}

// Positions flattens a Window's spans into one ordered list of
// (block, index) slots, in occurrence order.
func (w *Window) Positions() []Pos {
	out := make([]Pos, 0, w.Length)
	for _, s := range w.Spans {
		for i := 0; i < s.Length; i++ {
			out = append(out, Pos{Block: s.Block, Index: s.Start + i})
		}
	}
	return out
}

// CrossesBlocks reports whether w spans more than one basic block.
func (w *Window) CrossesBlocks() bool { return len(w.Spans) > 1 }

// overlaps reports whether w and other share any instruction position
// (§3's non-overlap invariant, §4.2's "instruction-overlaps" check).
func (w *Window) overlaps(other *Window) bool {
	for _, a := range w.Spans {
		for _, b := range other.Spans {
			if a.Block != b.Block {
				continue
			}
			if a.Start < b.Start+b.Length && b.Start < a.Start+a.Length {
				return true
			}
		}
	}
	return false
}
