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

// sixInstIdiom is long enough that, even under the pass's conservative
// default of sandwiching every call site (no occurrence here proves a
// dominating link-register save), replacing three copies of it still
// nets a positive estimated savings.
func sixInstIdiom(a, b, c, d ir.Reg) []ir.Instruction {
	insts := append([]ir.Instruction{}, addSubSeq(a, b, c, d)...)
	insts = append(insts, addSubSeq(c, d, a, b)...)
	insts = append(insts, addSubSeq(b, a, d, c)...)
	return insts
}

// repeatedIdiomProgram builds a single function whose one block holds
// three disjointly-registered copies of sixInstIdiom back to back, so
// the per-function enumerate/group/locate pipeline (§2, §4.1, §4.3)
// sees three non-overlapping occurrences of the same canonical
// sequence within one function, rather than one occurrence each spread
// across several functions.
func repeatedIdiomProgram(o isa.Oracle) *ir.Program {
	prog := &ir.Program{}
	fn := &ir.Function{Symbol: "f1"}
	blk := &ir.BasicBlock{ID: 0, Parent: fn}
	blk.Insts = append(blk.Insts, sixInstIdiom(0, 1, 2, 3)...)
	blk.Insts = append(blk.Insts, sixInstIdiom(4, 5, 6, 7)...)
	blk.Insts = append(blk.Insts, sixInstIdiom(8, 9, 10, 11)...)
	blk.Insts = append(blk.Insts, o.Builder().CreateReturn())
	fn.Blocks = []*ir.BasicBlock{blk}
	prog.Functions = []*ir.Function{fn}
	return prog
}

func TestRun_OutlinesRepeatedIdiomWithinFunction(t *testing.T) {
	o := isa.AArch64{}
	prog := repeatedIdiomProgram(o)
	cfg := DefaultConfig()
	cfg.MinLength = 6
	cfg.MaxLength = 6
	cfg.MinOccurrences = 2
	cfg.EnablePGO = false

	result := Run(o, prog, cfg, nil)
	if result.ProceduresSynthesized == 0 {
		t.Fatal("expected at least one procedure to be synthesized from the repeated idiom")
	}
	if result.OccurrencesRewritten < cfg.MinOccurrences {
		t.Errorf("expected at least %d occurrences rewritten, got %d", cfg.MinOccurrences, result.OccurrencesRewritten)
	}

	var injected int
	for _, fn := range prog.Functions {
		if fn.Injected {
			injected++
		}
	}
	if injected == 0 {
		t.Error("expected an injected outlined procedure to be added to the program")
	}
}

func TestRun_IsIdempotent(t *testing.T) {
	o := isa.AArch64{}
	prog := repeatedIdiomProgram(o)
	cfg := DefaultConfig()
	cfg.MinLength = 6
	cfg.MaxLength = 6
	cfg.MinOccurrences = 2
	cfg.EnablePGO = false

	first := Run(o, prog, cfg, nil)
	second := Run(o, prog, cfg, nil)
	if second.ProceduresSynthesized != 0 {
		t.Errorf("expected a second run over an already-outlined program to find nothing new, got %d new procedures (first run: %d)",
			second.ProceduresSynthesized, first.ProceduresSynthesized)
	}
}
