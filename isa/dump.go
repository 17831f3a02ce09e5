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
	"fmt"
	"strings"

	"github.com/klauspost/asmfmt"

	"github.com/PiggySusie/llvm-project/ir"
)

// DumpFunction renders fn as Go-assembly-style text and runs it
// through asmfmt, the same "build a strings.Builder, then
// asmfmt.Format(strings.NewReader(...))" step goat performs after
// generating a translation unit's Go assembly (arm64_parser.go,
// parser_arm64.go). cmd/plo prints it for every run; formatting
// failures are non-fatal and fall back to the unformatted text.
func DumpFunction(o Oracle, fn *ir.Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TEXT ·%s(SB), $0\n", fn.Symbol)
	for _, blk := range fn.Blocks {
		fmt.Fprintf(&b, "block%d:\n", blk.ID)
		for _, inst := range blk.Insts {
			fmt.Fprintf(&b, "\t%s\n", formatInstruction(o, inst))
		}
	}
	formatted, err := asmfmt.Format(strings.NewReader(b.String()))
	if err != nil {
		return b.String()
	}
	return string(formatted)
}

// DumpProgram renders every non-ignored function in functions.
func DumpProgram(o Oracle, functions []*ir.Function) string {
	var b strings.Builder
	for _, fn := range functions {
		if fn.Ignored {
			continue
		}
		b.WriteString(DumpFunction(o, fn))
		b.WriteString("\n")
	}
	return b.String()
}

func formatInstruction(o Oracle, inst ir.Instruction) string {
	name := o.OpcodeName(inst)
	if name == "" {
		return "<invalid>"
	}
	parts := make([]string, 0, len(inst.Operands))
	for _, op := range inst.Operands {
		parts = append(parts, formatOperand(op))
	}
	if len(parts) == 0 {
		return name
	}
	return name + " " + strings.Join(parts, ", ")
}

func formatOperand(op ir.Operand) string {
	switch op.Kind {
	case ir.OperandRegister:
		return fmt.Sprintf("R%d", op.Reg)
	case ir.OperandImmediate:
		return fmt.Sprintf("#%d", op.Imm)
	case ir.OperandExpr:
		return fmt.Sprintf("%v", op.Expr)
	case ir.OperandFPImmediate:
		return fmt.Sprintf("#%g", op.FImm)
	default:
		return "?"
	}
}
