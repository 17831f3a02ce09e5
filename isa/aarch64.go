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
	"golang.org/x/arch/arm64/arm64asm"

	"github.com/PiggySusie/llvm-project/ir"
)

// AArch64 opcodes used by this pass's reference design. The values
// are local; opcodeNames maps each one onto the mnemonic of a
// golang.org/x/arch/arm64/arm64asm.Op so OpcodeName can defer to that
// package's canonical mnemonic strings instead of hand-rolling them
// (see DESIGN.md). BCOND has no distinct arm64asm.Op of its own
// (conditional branches decode as arm64asm.B carrying a Cond arg), so
// it is synthesized locally.
const (
	OpZero ir.Opcode = ir.Opcode(iota)
	OpPseudo
	OpCFI
	OpADD
	OpSUB
	OpADR
	OpADRP
	OpLDR
	OpLDRSW
	OpSTR
	OpLDP
	OpSTP
	// OpLDRB/OpSTRB are the byte-addressing ("unscaled") load/store
	// forms; OpLDRH/OpSTRH are halfword-addressing. Both share
	// arm64asm's LDR/STR mnemonic — the width lives in the operand's
	// register class in real assembly text, not in a distinct opcode
	// name, so OpcodeName maps them onto the same string as OpLDR/OpSTR.
	OpLDRB
	OpSTRB
	OpLDRH
	OpSTRH
	// OpLDPQ/OpSTPQ are the 128-bit (quadword, SIMD&FP) pair forms;
	// OpLDPW/OpSTPW are the 32-bit pair forms. Same naming rationale.
	OpLDPQ
	OpSTPQ
	OpLDPW
	OpSTPW
	OpLSL
	OpLSR
	OpASR
	OpROR
	OpMOV
	OpMOVZ
	OpB
	OpBCOND
	OpBL
	OpBR
	OpBLR
	OpRET
	OpNOP
)

var opcodeNames = map[ir.Opcode]string{
	OpZero:   "",
	OpPseudo: "<pseudo>",
	OpCFI:    "<cfi>",
	OpADD:    arm64asm.ADD.String(),
	OpSUB:    arm64asm.SUB.String(),
	OpADR:    arm64asm.ADR.String(),
	OpADRP:   arm64asm.ADRP.String(),
	OpLDR:    arm64asm.LDR.String(),
	OpLDRSW:  arm64asm.LDRSW.String(),
	OpSTR:    arm64asm.STR.String(),
	OpLDP:    arm64asm.LDP.String(),
	OpSTP:    arm64asm.STP.String(),
	OpLDRB:   arm64asm.LDR.String(),
	OpSTRB:   arm64asm.STR.String(),
	OpLDRH:   arm64asm.LDR.String(),
	OpSTRH:   arm64asm.STR.String(),
	OpLDPQ:   arm64asm.LDP.String(),
	OpSTPQ:   arm64asm.STP.String(),
	OpLDPW:   arm64asm.LDP.String(),
	OpSTPW:   arm64asm.STP.String(),
	OpLSL:    arm64asm.LSL.String(),
	OpLSR:    arm64asm.LSR.String(),
	OpASR:    arm64asm.ASR.String(),
	OpROR:    arm64asm.ROR.String(),
	OpMOV:    arm64asm.MOV.String(),
	OpMOVZ:   "MOVZ",
	OpB:      arm64asm.B.String(),
	OpBCOND:  arm64asm.B.String() + ".cond",
	OpBL:     arm64asm.BL.String(),
	OpBR:     arm64asm.BR.String(),
	OpBLR:    arm64asm.BLR.String(),
	OpRET:    arm64asm.RET.String(),
	OpNOP:    arm64asm.NOP.String(),
}

// loadStoreOpcodes/shiftOpcodes partition the opcodes that carry a
// scaled stack-relative immediate and the shift-instructions whose
// shift-amount operand tolerates +/-1 drift (§4.2 operand re-check).
// ImmediateScale gives the §4.5 scale table (8/4/16/2/1); unscaled
// (byte/"unscaled form") loads/stores use scale 1.
var loadStoreOpcodes = map[ir.Opcode]bool{
	OpLDR: true, OpLDRSW: true, OpSTR: true, OpLDP: true, OpSTP: true,
	OpLDRB: true, OpSTRB: true, OpLDRH: true, OpSTRH: true,
	OpLDPQ: true, OpSTPQ: true, OpLDPW: true, OpSTPW: true,
}

var shiftOpcodes = map[ir.Opcode]bool{
	OpLSL: true, OpLSR: true, OpASR: true, OpROR: true,
}

// aarch64Registers implements Registers for AArch64: R31=SP, R29=FP,
// R30=LR, matching §3's reserved identities.
type aarch64Registers struct{}

func (aarch64Registers) StackPointer() ir.Reg { return ir.RegSP }
func (aarch64Registers) FrameRegister() ir.Reg { return ir.RegFP }
func (aarch64Registers) LinkRegister() ir.Reg  { return ir.RegLR }

func (aarch64Registers) IsSubRegisterEq(a, b ir.Reg) bool {
	// AArch64's 32-bit (W) and 64-bit (X) views of a general-purpose
	// register share the same architectural number; this pass never
	// materializes the width distinction as a separate Reg value, so
	// sub-register equality reduces to identity.
	return a == b
}

// aarch64Builder implements Builder for AArch64.
type aarch64Builder struct{}

func (aarch64Builder) CreateCall(symbol string) ir.Instruction {
	return ir.Instruction{Op: OpBL, Operands: []ir.Operand{ir.NewExprOperand(symbol)}}
}

func (aarch64Builder) CreateReturn() ir.Instruction {
	return ir.Instruction{Op: OpRET, Operands: []ir.Operand{ir.NewRegOperand(ir.RegLR)}}
}

func (aarch64Builder) CreatePushPair(r1, r2 ir.Reg) ir.Instruction {
	// stp r1, r2, [sp, #-16]!
	return ir.Instruction{
		Op: OpSTP,
		Operands: []ir.Operand{
			ir.NewRegOperand(r1),
			ir.NewRegOperand(r2),
			ir.NewRegOperand(ir.RegSP),
			ir.NewImmOperand(-16),
		},
	}
}

func (aarch64Builder) CreatePopPair(r1, r2 ir.Reg) ir.Instruction {
	// ldp r1, r2, [sp], #16
	return ir.Instruction{
		Op: OpLDP,
		Operands: []ir.Operand{
			ir.NewRegOperand(r1),
			ir.NewRegOperand(r2),
			ir.NewRegOperand(ir.RegSP),
			ir.NewImmOperand(16),
		},
	}
}

func (aarch64Builder) CreateUnconditionalBranch(symbol string) ir.Instruction {
	return ir.Instruction{Op: OpB, Operands: []ir.Operand{ir.NewExprOperand(symbol)}}
}

// AArch64 implements Oracle for the reference AArch64 target.
type AArch64 struct{}

func (AArch64) Name() string { return "aarch64" }

// IsPseudo reports whether inst is a pseudo-instruction or carries the
// zero opcode (an uninitialized/placeholder slot) — both are rejected
// by the enumerator's always-reject set (§4.1).
func (AArch64) IsPseudo(i ir.Instruction) bool { return i.Op == OpPseudo || i.Op == OpZero }
func (AArch64) IsCFI(i ir.Instruction) bool    { return i.Op == OpCFI }

func (AArch64) IsCall(i ir.Instruction) bool { return i.Op == OpBL || i.Op == OpBLR }

func (AArch64) IsIndirectCall(i ir.Instruction) bool { return i.Op == OpBLR }

// IsTailCall reports whether the instruction is a direct unconditional
// branch used as a tail call (B to a symbol, as opposed to a
// within-function branch — callers that need that distinction hold
// their own symbol table and use CallTarget to resolve it).
func (AArch64) IsTailCall(i ir.Instruction) bool {
	return i.Op == OpB && len(i.Operands) > 0 && i.Operands[0].Kind == ir.OperandExpr
}

func (AArch64) IsBranch(i ir.Instruction) bool {
	return i.Op == OpB || i.Op == OpBCOND || i.Op == OpBR
}

func (AArch64) IsUnconditionalBranch(i ir.Instruction) bool {
	return i.Op == OpB || i.Op == OpBR
}

func (AArch64) IsConditionalBranch(i ir.Instruction) bool { return i.Op == OpBCOND }

func (AArch64) IsReturn(i ir.Instruction) bool { return i.Op == OpRET }

func (AArch64) IsPush(i ir.Instruction) bool {
	return i.Op == OpSTP && hasPreIndexOffset(i)
}

func (AArch64) IsPop(i ir.Instruction) bool {
	return i.Op == OpLDP && hasPostIndexOffset(i)
}

// hasPreIndexOffset/hasPostIndexOffset distinguish push/pop pairs from
// plain offset-addressed STP/LDP by sign convention: this pass's own
// builder and synthesis always encode the pre-decrement push as a
// negative immediate and the post-increment pop as a positive one on
// the last (immediate) operand, mirroring goat's pre/post-indexed
// line classification in arm64_parser.go.
func hasPreIndexOffset(i ir.Instruction) bool {
	if len(i.Operands) == 0 {
		return false
	}
	last := i.Operands[len(i.Operands)-1]
	return last.Kind == ir.OperandImmediate && last.Imm < 0
}

func hasPostIndexOffset(i ir.Instruction) bool {
	if len(i.Operands) == 0 {
		return false
	}
	last := i.Operands[len(i.Operands)-1]
	return last.Kind == ir.OperandImmediate && last.Imm > 0
}

func (AArch64) IsTerminator(i ir.Instruction) bool {
	return i.Op == OpB || i.Op == OpBCOND || i.Op == OpBR || i.Op == OpRET
}

func (AArch64) MayLoad(i ir.Instruction) bool {
	switch i.Op {
	case OpLDR, OpLDRSW, OpLDP, OpLDRB, OpLDRH, OpLDPQ, OpLDPW:
		return true
	}
	return false
}

func (AArch64) MayStore(i ir.Instruction) bool {
	switch i.Op {
	case OpSTR, OpSTP, OpSTRB, OpSTRH, OpSTPQ, OpSTPW:
		return true
	}
	return false
}

func (AArch64) NumDefs(i ir.Instruction) int {
	switch i.Op {
	case OpLDP, OpLDPQ, OpLDPW:
		return 2
	case OpSTR, OpSTP, OpSTRB, OpSTRH, OpSTPQ, OpSTPW, OpB, OpBCOND, OpBR, OpRET, OpCFI, OpPseudo:
		return 0
	default:
		if len(i.Operands) == 0 {
			return 0
		}
		return 1
	}
}

func (AArch64) OpcodeName(i ir.Instruction) string { return opcodeNames[i.Op] }

func (AArch64) IsPCRelative(i ir.Instruction) bool {
	return i.Op == OpADR || i.Op == OpADRP || i.Op == OpLDRSW
}

func (AArch64) Registers() Registers { return aarch64Registers{} }
func (AArch64) Builder() Builder     { return aarch64Builder{} }

// ImmediateScale infers the byte scale (§4.5) of the stack-relative
// immediate in a load/store/ADD/SUB instruction, from the opcode: 8
// for 64-bit pair/loads/stores, 4 for 32-bit, 16 for 128-bit, 2 for
// halfword, 1 for byte/unscaled forms, grounded on goat's
// transformStackInstruction imm7/imm9 scale handling for STP/LDP.
func (AArch64) ImmediateScale(i ir.Instruction) (int, bool) {
	switch i.Op {
	case OpLDP, OpSTP, OpLDR, OpSTR:
		return 8, true
	case OpLDRSW, OpLDPW, OpSTPW:
		return 4, true
	case OpLDPQ, OpSTPQ:
		return 16, true
	case OpLDRH, OpSTRH:
		return 2, true
	case OpLDRB, OpSTRB:
		return 1, true
	case OpADD, OpSUB:
		return 1, true
	}
	return 0, false
}

func (AArch64) StackOperandIndex(i ir.Instruction) (int, bool) {
	if !loadStoreOpcodes[i.Op] && i.Op != OpADD && i.Op != OpSUB {
		return 0, false
	}
	for idx, op := range i.Operands {
		if op.Kind == ir.OperandRegister && op.Reg == ir.RegSP {
			// the immediate operand follows the base register in
			// this pass's operand encoding (base, then displacement)
			if idx+1 < len(i.Operands) && i.Operands[idx+1].Kind == ir.OperandImmediate {
				return idx + 1, true
			}
		}
	}
	return 0, false
}

func (AArch64) IsShiftAmount(i ir.Instruction, idx int) bool {
	return shiftOpcodes[i.Op] && idx == len(i.Operands)-1
}

func (AArch64) CallTarget(i ir.Instruction) (string, bool) {
	if i.Op != OpBL && i.Op != OpB {
		return "", false
	}
	if len(i.Operands) == 0 || i.Operands[0].Kind != ir.OperandExpr {
		return "", false
	}
	sym, ok := i.Operands[0].Expr.(string)
	return sym, ok
}

// ReadsStackPointer reports whether inst references SP in any operand
// position (the enumerator further restricts this to loads, §4.1).
func (AArch64) ReadsStackPointer(i ir.Instruction) bool {
	for _, op := range i.Operands {
		if op.Kind == ir.OperandRegister && op.Reg == ir.RegSP {
			return true
		}
	}
	return false
}

// WritesStackPointer reports whether inst defines SP. In this pass's
// operand encoding the destination of a register-writing instruction
// is always operand 0.
func (a AArch64) WritesStackPointer(i ir.Instruction) bool {
	if a.NumDefs(i) == 0 || len(i.Operands) == 0 {
		return false
	}
	return i.Operands[0].Kind == ir.OperandRegister && i.Operands[0].Reg == ir.RegSP
}

// ReadsFrameRegister reports whether inst reads FP in any operand
// position other than as a def (conservatively, any occurrence).
func (AArch64) ReadsFrameRegister(i ir.Instruction) bool {
	for _, op := range i.Operands {
		if op.Kind == ir.OperandRegister && op.Reg == ir.RegFP {
			return true
		}
	}
	return false
}

// UsesLinkRegister reports whether inst references LR in any operand.
func (AArch64) UsesLinkRegister(i ir.Instruction) bool {
	for _, op := range i.Operands {
		if op.Kind == ir.OperandRegister && op.Reg == ir.RegLR {
			return true
		}
	}
	return false
}

// IsStackAdjust reports whether inst is an ADD/SUB instruction.
func (AArch64) IsStackAdjust(i ir.Instruction) bool {
	return i.Op == OpADD || i.Op == OpSUB
}
