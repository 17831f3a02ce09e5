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
	"testing"

	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

func windowOf(insts []ir.Instruction, blockID, start int) *Window {
	blk := &ir.BasicBlock{ID: blockID}
	return &Window{
		Length: len(insts),
		Spans:  []Span{{Block: blk, Start: start, Length: len(insts)}},
		Insts:  insts,
	}
}

// TestFingerprintAndGroup_GroupsEquivalentSequences exercises the
// labelling loop's own unconditional-restart behavior (§4.2): the
// first index to see all three equivalent windows claims them into one
// group, but the loop still restarts at every later index regardless
// of whether that window was already claimed, producing a singleton
// group per already-claimed window in addition to the first, full
// group — matching the original source's outer loop, which never
// checks isLabeled on the loop variable itself before restarting.
func TestFingerprintAndGroup_GroupsEquivalentSequences(t *testing.T) {
	o := isa.AArch64{}
	windows := []*Window{
		windowOf(addSubSeq(0, 1, 2, 3), 0, 0),
		windowOf(addSubSeq(10, 11, 12, 13), 1, 0),
		windowOf(addSubSeq(20, 21, 22, 23), 2, 0),
	}
	groups := FingerprintAndGroup(o, windows)

	var full *Group
	for _, g := range groups {
		if len(g.Windows) == 3 {
			full = g
		}
	}
	if full == nil {
		t.Fatalf("expected one group containing all 3 equivalent windows, got groups: %+v", groups)
	}
	if len(groups) != 3 {
		t.Errorf("expected 3 groups (1 full + 2 singletons restarted at already-claimed indices), got %d", len(groups))
	}
}

func TestFingerprintAndGroup_SeparatesDistinctSequences(t *testing.T) {
	o := isa.AArch64{}
	windows := []*Window{
		windowOf(addSubSeq(0, 1, 2, 3), 0, 0),
		windowOf([]ir.Instruction{
			{Op: isa.OpSUB, Operands: []ir.Operand{ir.NewRegOperand(0), ir.NewRegOperand(1), ir.NewRegOperand(2)}},
			{Op: isa.OpADD, Operands: []ir.Operand{ir.NewRegOperand(1), ir.NewRegOperand(2), ir.NewRegOperand(3)}},
		}, 1, 0),
	}
	groups := FingerprintAndGroup(o, windows)
	if len(groups) != 2 {
		t.Fatalf("expected two distinct groups, got %d", len(groups))
	}
}

// TestFingerprintAndGroup_RejectsOverlap confirms an overlapping
// candidate never joins the group whose member it overlaps, but — per
// the labelling loop's unconditional restart (§4.2, see
// TestFingerprintAndGroup_GroupsEquivalentSequences) — it still seeds
// a second, singleton group of its own, since it was never labelled by
// the first group's inner loop.
func TestFingerprintAndGroup_RejectsOverlap(t *testing.T) {
	o := isa.AArch64{}
	blk := &ir.BasicBlock{ID: 0}
	a := &Window{Length: 2, Spans: []Span{{Block: blk, Start: 0, Length: 2}}, Insts: addSubSeq(0, 1, 2, 3)}
	overlapping := &Window{Length: 2, Spans: []Span{{Block: blk, Start: 1, Length: 2}}, Insts: addSubSeq(10, 11, 12, 13)}

	groups := FingerprintAndGroup(o, []*Window{a, overlapping})
	if len(groups) != 2 {
		t.Fatalf("expected the overlapping window to seed its own second group, got %d groups", len(groups))
	}
	if len(groups[0].Windows) != 1 {
		t.Errorf("expected the overlapping window to be excluded from the first group, got %d windows", len(groups[0].Windows))
	}
	if len(groups[1].Windows) != 1 {
		t.Errorf("expected the overlapping window's own group to contain just itself, got %d windows", len(groups[1].Windows))
	}
}
