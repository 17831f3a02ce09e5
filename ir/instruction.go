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

// Package ir holds the in-memory program model the outliner pass
// mutates: functions, basic blocks and instructions. It intentionally
// knows nothing about how the program was disassembled or how it will
// be relaid out afterward — both are external collaborators.
package ir

// OperandKind tags the variant held by an Operand.
type OperandKind int

const (
	// OperandRegister holds a register identity (see Reg).
	OperandRegister OperandKind = iota
	// OperandImmediate holds a signed integer immediate.
	OperandImmediate
	// OperandExpr holds an opaque expression reference, compared by
	// identity only the originating host can canonicalize it.
	OperandExpr
	// OperandFPImmediate holds a single-precision floating point
	// immediate.
	OperandFPImmediate
)

// Reg is a register identity. AArch64 reserves 31 for SP, 29 for FP
// and 30 for LR; general-purpose registers use their architectural
// encoding below that.
type Reg uint32

const (
	RegSP Reg = 31
	RegFP Reg = 29
	RegLR Reg = 30
)

// Expr is an opaque expression reference. Only the host that produced
// it can canonicalize two Exprs as equal; this package compares them
// by identity (pointer equality) only.
type Expr interface{}

// Operand is a tagged-variant instruction operand: register,
// immediate, expression reference, or single-precision FP immediate.
// Operand equality is by kind+value; Expr operands compare by
// identity.
type Operand struct {
	Kind  OperandKind
	Reg   Reg
	Imm   int64
	Expr  Expr
	FImm  float32
}

// NewRegOperand builds a register operand.
func NewRegOperand(r Reg) Operand { return Operand{Kind: OperandRegister, Reg: r} }

// NewImmOperand builds a signed-immediate operand.
func NewImmOperand(v int64) Operand { return Operand{Kind: OperandImmediate, Imm: v} }

// NewExprOperand builds an expression-reference operand.
func NewExprOperand(e Expr) Operand { return Operand{Kind: OperandExpr, Expr: e} }

// NewFPImmOperand builds a single-precision FP immediate operand.
func NewFPImmOperand(v float32) Operand { return Operand{Kind: OperandFPImmediate, FImm: v} }

// Equal reports whether two operands are equal under the kind+value
// rule (Expr operands only by identity).
func (o Operand) Equal(other Operand) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case OperandRegister:
		return o.Reg == other.Reg
	case OperandImmediate:
		return o.Imm == other.Imm
	case OperandExpr:
		return o.Expr == other.Expr
	case OperandFPImmediate:
		return o.FImm == other.FImm
	default:
		return false
	}
}

// Opcode is an opaque, architecture-defined opcode identifier. Zero is
// reserved as "no opcode" and is always rejected by the enumerator.
type Opcode uint32

// Instruction is one machine instruction: an opcode plus an ordered
// list of operands. Instructions are value types; identity for
// non-overlap checks is tracked by the outline package's Window via
// its (block, start, length) spans, not by pointer.
type Instruction struct {
	Op       Opcode
	Operands []Operand
}

// NumOperands returns the operand count.
func (i Instruction) NumOperands() int { return len(i.Operands) }

// SameShape reports whether two instructions share opcode and operand
// arity, the cheap pre-check the structural re-check (§4.2) performs
// before comparing operands one by one.
func (i Instruction) SameShape(other Instruction) bool {
	return i.Op == other.Op && len(i.Operands) == len(other.Operands)
}
