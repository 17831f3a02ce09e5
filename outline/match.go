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
	"github.com/PiggySusie/llvm-project/isa"

	"github.com/PiggySusie/llvm-project/ir"
)

// structuralMatch implements §4.2's operand re-check between two
// equal-length instruction sequences: same opcode and operand arity
// at every position, and operand-by-operand compatibility. General
// registers are compatible under a consistent bijective renaming;
// SP/FP/LR must match identically. Immediates must be equal, or (for
// non-stack-accessing instructions) within 1 of each other when both
// are <= 15 in absolute value, or (for a shift-amount operand) within
// 1 regardless of magnitude. Stack-addressing immediates (either
// instruction references SP/FP) must be exactly equal. Expression
// operands compare by identity.
func structuralMatch(o isa.Oracle, a, b []ir.Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	regs := o.Registers()
	aToB := map[ir.Reg]ir.Reg{}
	bToA := map[ir.Reg]ir.Reg{}

	for idx := range a {
		ia, ib := a[idx], b[idx]
		if !ia.SameShape(ib) {
			return false
		}
		stackAddressed := referencesStack(regs, ia) || referencesStack(regs, ib)

		for opIdx := range ia.Operands {
			oa, ob := ia.Operands[opIdx], ib.Operands[opIdx]
			if oa.Kind != ob.Kind {
				return false
			}
			switch oa.Kind {
			case ir.OperandRegister:
				if !matchRegister(regs, oa.Reg, ob.Reg, aToB, bToA) {
					return false
				}
			case ir.OperandImmediate:
				if !matchImmediate(o, ia, opIdx, oa.Imm, ob.Imm, stackAddressed) {
					return false
				}
			case ir.OperandExpr:
				if oa.Expr != ob.Expr {
					return false
				}
			case ir.OperandFPImmediate:
				if oa.FImm != ob.FImm {
					return false
				}
			}
		}
	}
	return true
}

func referencesStack(regs isa.Registers, inst ir.Instruction) bool {
	for _, op := range inst.Operands {
		if op.Kind == ir.OperandRegister && (op.Reg == regs.StackPointer() || op.Reg == regs.FrameRegister()) {
			return true
		}
	}
	return false
}

func isSpecialRegister(regs isa.Registers, r ir.Reg) bool {
	return r == regs.StackPointer() || r == regs.FrameRegister() || r == regs.LinkRegister()
}

func matchRegister(regs isa.Registers, ra, rb ir.Reg, aToB, bToA map[ir.Reg]ir.Reg) bool {
	if isSpecialRegister(regs, ra) || isSpecialRegister(regs, rb) {
		return ra == rb
	}
	if mapped, ok := aToB[ra]; ok {
		return mapped == rb
	}
	if _, taken := bToA[rb]; taken {
		return false
	}
	aToB[ra] = rb
	bToA[rb] = ra
	return true
}

func matchImmediate(o isa.Oracle, inst ir.Instruction, opIdx int, va, vb int64, stackAddressed bool) bool {
	if va == vb {
		return true
	}
	if stackAddressed {
		return false
	}
	if o.IsShiftAmount(inst, opIdx) {
		return absDiff(va, vb) <= 1
	}
	return abs64(va) <= 15 && abs64(vb) <= 15 && absDiff(va, vb) <= 1
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func absDiff(a, b int64) int64 { return abs64(a - b) }
