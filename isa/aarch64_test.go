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

package isa

import (
	"testing"

	"github.com/PiggySusie/llvm-project/ir"
)

func TestAArch64_IsPushIsPop(t *testing.T) {
	o := AArch64{}
	b := o.Builder()

	push := b.CreatePushPair(ir.RegLR, ir.RegFP)
	if !o.IsPush(push) {
		t.Error("expected CreatePushPair to be classified as a push")
	}
	if o.IsPop(push) {
		t.Error("did not expect a push to also classify as a pop")
	}

	pop := b.CreatePopPair(ir.RegLR, ir.RegFP)
	if !o.IsPop(pop) {
		t.Error("expected CreatePopPair to be classified as a pop")
	}
	if o.IsPush(pop) {
		t.Error("did not expect a pop to also classify as a push")
	}
}

func TestAArch64_StackOperandIndex(t *testing.T) {
	o := AArch64{}

	ldr := ir.Instruction{Op: OpLDR, Operands: []ir.Operand{
		ir.NewRegOperand(0), ir.NewRegOperand(ir.RegSP), ir.NewImmOperand(16),
	}}
	idx, ok := o.StackOperandIndex(ldr)
	if !ok || idx != 2 {
		t.Fatalf("StackOperandIndex(ldr) = (%d, %v), want (2, true)", idx, ok)
	}

	add := ir.Instruction{Op: OpADD, Operands: []ir.Operand{
		ir.NewRegOperand(0), ir.NewRegOperand(1), ir.NewRegOperand(2),
	}}
	if _, ok := o.StackOperandIndex(add); ok {
		t.Error("expected a non-stack-addressing instruction to report no stack operand")
	}
}

func TestAArch64_CallTarget(t *testing.T) {
	o := AArch64{}
	call := o.Builder().CreateCall("PLO_outlined_1")
	sym, ok := o.CallTarget(call)
	if !ok || sym != "PLO_outlined_1" {
		t.Fatalf("CallTarget() = (%q, %v), want (\"PLO_outlined_1\", true)", sym, ok)
	}

	notACall := ir.Instruction{Op: OpADD}
	if _, ok := o.CallTarget(notACall); ok {
		t.Error("expected a non-call instruction to report no target")
	}
}

func TestAArch64_ImmediateScale(t *testing.T) {
	o := AArch64{}
	cases := []struct {
		op    ir.Opcode
		scale int
	}{
		{OpLDP, 8}, {OpSTP, 8}, {OpLDR, 8}, {OpSTR, 8},
		{OpLDRSW, 4}, {OpLDPW, 4}, {OpSTPW, 4},
		{OpLDPQ, 16}, {OpSTPQ, 16},
		{OpLDRH, 2}, {OpSTRH, 2},
		{OpLDRB, 1}, {OpSTRB, 1},
		{OpADD, 1}, {OpSUB, 1},
	}
	for _, c := range cases {
		scale, ok := o.ImmediateScale(ir.Instruction{Op: c.op})
		if !ok || scale != c.scale {
			t.Errorf("ImmediateScale(%s) = (%d, %v), want (%d, true)", o.OpcodeName(ir.Instruction{Op: c.op}), scale, ok, c.scale)
		}
	}
	if _, ok := o.ImmediateScale(ir.Instruction{Op: OpMOV}); ok {
		t.Error("expected a non-stack-addressing opcode to report no scale")
	}
}

func TestAArch64_LinkAndFrameRegisterReads(t *testing.T) {
	o := AArch64{}
	usesLR := ir.Instruction{Op: OpADD, Operands: []ir.Operand{ir.NewRegOperand(ir.RegLR)}}
	if !o.UsesLinkRegister(usesLR) {
		t.Error("expected LR operand to be detected")
	}
	usesFP := ir.Instruction{Op: OpADD, Operands: []ir.Operand{ir.NewRegOperand(ir.RegFP)}}
	if !o.ReadsFrameRegister(usesFP) {
		t.Error("expected FP operand to be detected")
	}
	plain := ir.Instruction{Op: OpADD, Operands: []ir.Operand{ir.NewRegOperand(0)}}
	if o.UsesLinkRegister(plain) || o.ReadsFrameRegister(plain) {
		t.Error("did not expect a plain general-register operand to trip either check")
	}
}
