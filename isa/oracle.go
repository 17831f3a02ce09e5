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

// Package isa defines the instruction/register oracle and instruction
// builder the outline package consumes (§6 "Consumed interfaces").
// Everything in this package is architecture-specific; the outline
// package itself is architecture-parametric and only ever talks to an
// Oracle.
package isa

import "github.com/PiggySusie/llvm-project/ir"

// Oracle classifies instructions and exposes the introspection the
// pass needs without ever inspecting an architecture's opcode space
// itself. Mirrors goat's ArchParser registry (one implementation per
// target), but queried per-instruction instead of per-translation-unit.
type Oracle interface {
	Name() string

	IsPseudo(ir.Instruction) bool
	IsCFI(ir.Instruction) bool
	IsCall(ir.Instruction) bool
	IsIndirectCall(ir.Instruction) bool
	IsTailCall(ir.Instruction) bool
	IsBranch(ir.Instruction) bool
	IsUnconditionalBranch(ir.Instruction) bool
	IsConditionalBranch(ir.Instruction) bool
	IsReturn(ir.Instruction) bool
	IsPush(ir.Instruction) bool
	IsPop(ir.Instruction) bool
	IsTerminator(ir.Instruction) bool
	MayLoad(ir.Instruction) bool
	MayStore(ir.Instruction) bool
	NumDefs(ir.Instruction) int
	OpcodeName(ir.Instruction) string

	// IsPCRelative reports whether the instruction addresses memory
	// PC-relative (ADR/ADRP/literal-pool loads on AArch64).
	IsPCRelative(ir.Instruction) bool

	// Registers returns the register oracle for this architecture.
	Registers() Registers

	// Builder returns the instruction builder for this architecture.
	Builder() Builder

	// ImmediateScale infers the byte scale of a stack-relative
	// immediate operand carried by inst, per §4.5's 8/4/16/2/1 table.
	// ok is false when inst has no scaled immediate to fix up.
	ImmediateScale(inst ir.Instruction) (scale int, ok bool)

	// StackOperandIndex returns the operand index within inst that
	// carries a stack-relative (SP-based) immediate displacement,
	// and whether one is present.
	StackOperandIndex(inst ir.Instruction) (idx int, ok bool)

	// IsShiftAmount reports whether operand index idx of inst is the
	// shift-amount operand of a LSR/LSL/ASR/ROR instruction (§4.2
	// operand re-check).
	IsShiftAmount(inst ir.Instruction, idx int) bool

	// CallTarget returns the symbolic target of a direct call or
	// unconditional branch instruction, if recoverable.
	CallTarget(inst ir.Instruction) (symbol string, ok bool)

	// ReadsStackPointer reports whether inst reads through SP as a
	// base register (§4.1's SP-read permission rule).
	ReadsStackPointer(inst ir.Instruction) bool

	// WritesStackPointer reports whether inst defines SP (always
	// rejected, §4.1).
	WritesStackPointer(inst ir.Instruction) bool

	// ReadsFrameRegister reports whether inst reads the frame-pointer
	// register (always rejected, §4.1).
	ReadsFrameRegister(inst ir.Instruction) bool

	// UsesLinkRegister reports whether inst references the link
	// register in any operand (always rejected, §4.1).
	UsesLinkRegister(inst ir.Instruction) bool

	// IsStackAdjust reports whether inst is an ADD/SUB instruction,
	// the only arithmetic form Post-Pass Cleanup's shell predicate
	// still permits when it writes SP (§4.7).
	IsStackAdjust(inst ir.Instruction) bool
}

// Registers answers identity questions about special-purpose
// registers (§6 "Register oracle").
type Registers interface {
	StackPointer() ir.Reg
	FrameRegister() ir.Reg
	LinkRegister() ir.Reg
	IsSubRegisterEq(a, b ir.Reg) bool
}

// Builder constructs new instructions for procedure synthesis and
// call-site rewriting (§6 "Builder").
type Builder interface {
	CreateCall(symbol string) ir.Instruction
	CreateReturn() ir.Instruction
	CreatePushPair(r1, r2 ir.Reg) ir.Instruction
	CreatePopPair(r1, r2 ir.Reg) ir.Instruction
	CreateUnconditionalBranch(symbol string) ir.Instruction
}
