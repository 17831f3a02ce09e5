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

func TestPassesFilter_RejectsAlwaysRejectSet(t *testing.T) {
	o := isa.AArch64{}
	tests := []struct {
		name  string
		insts []ir.Instruction
	}{
		{"pseudo", []ir.Instruction{{Op: isa.OpPseudo}}},
		{"cfi", []ir.Instruction{{Op: isa.OpCFI}}},
		{"unconditional branch", []ir.Instruction{{Op: isa.OpB, Operands: []ir.Operand{ir.NewExprOperand("x")}}}},
		{"return", []ir.Instruction{{Op: isa.OpRET, Operands: []ir.Operand{ir.NewRegOperand(ir.RegLR)}}}},
		{"uses link register", []ir.Instruction{{Op: isa.OpADD, Operands: []ir.Operand{ir.NewRegOperand(ir.RegLR)}}}},
		{"reads frame register", []ir.Instruction{{Op: isa.OpADD, Operands: []ir.Operand{ir.NewRegOperand(ir.RegFP)}}}},
		{"writes stack pointer", []ir.Instruction{{Op: isa.OpADD, Operands: []ir.Operand{ir.NewRegOperand(ir.RegSP)}}}},
		{"pc relative", []ir.Instruction{{Op: isa.OpADRP, Operands: []ir.Operand{ir.NewRegOperand(0)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if passesFilter(o, tt.insts) {
				t.Errorf("expected %s to be rejected", tt.name)
			}
		})
	}
}

func TestPassesFilter_AcceptsPlainArithmetic(t *testing.T) {
	o := isa.AArch64{}
	insts := addSubSeq(0, 1, 2, 3)
	if !passesFilter(o, insts) {
		t.Error("expected a plain register-to-register sequence to pass the filter")
	}
}

func TestPassesFilter_CallOnlyAtLastPosition(t *testing.T) {
	o := isa.AArch64{}
	call := ir.Instruction{Op: isa.OpBL, Operands: []ir.Operand{ir.NewExprOperand("f")}}
	trailing := append(addSubSeq(0, 1, 2, 3), call)
	if !passesFilter(o, trailing) {
		t.Error("expected a call at the final position to be accepted")
	}
	leading := append([]ir.Instruction{call}, addSubSeq(0, 1, 2, 3)...)
	if passesFilter(o, leading) {
		t.Error("expected a call not at the final position to be rejected")
	}
}

func TestEnumerate_WindowsHaveRequestedLength(t *testing.T) {
	o := isa.AArch64{}
	blk := &ir.BasicBlock{Insts: append(addSubSeq(0, 1, 2, 3), addSubSeq(4, 5, 6, 7)...)}
	fn := &ir.Function{Symbol: "f", Blocks: []*ir.BasicBlock{blk}}
	blk.Parent = fn

	windows := Enumerate(o, fn, 2, DefaultConfig())
	if len(windows) == 0 {
		t.Fatal("expected at least one window of length 2")
	}
	for _, w := range windows {
		if w.Length != 2 || len(w.Insts) != 2 {
			t.Errorf("window has unexpected length: %+v", w)
		}
	}
}
