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

package main

import (
	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

// demoProgram stands in for the object-file loader and disassembler
// this pass sits downstream of: three small functions, each computing
// the same four-instruction arithmetic idiom against different
// registers before returning. The idiom repeats verbatim modulo
// register identity, which is exactly what the pass's register
// renaming is built to see through.
func demoProgram() *ir.Program {
	prog := &ir.Program{}

	r0, r1, r2, r3 := ir.Reg(0), ir.Reg(1), ir.Reg(2), ir.Reg(3)

	idiom := func(a, b, c, d ir.Reg) []ir.Instruction {
		return []ir.Instruction{
			{Op: isa.OpADD, Operands: []ir.Operand{ir.NewRegOperand(a), ir.NewRegOperand(b), ir.NewRegOperand(c)}},
			{Op: isa.OpSUB, Operands: []ir.Operand{ir.NewRegOperand(b), ir.NewRegOperand(c), ir.NewRegOperand(d)}},
			{Op: isa.OpADD, Operands: []ir.Operand{ir.NewRegOperand(c), ir.NewRegOperand(d), ir.NewRegOperand(a)}},
			{Op: isa.OpSUB, Operands: []ir.Operand{ir.NewRegOperand(d), ir.NewRegOperand(a), ir.NewRegOperand(b)}},
		}
	}

	newLeaf := func(symbol string, regs [4]ir.Reg) *ir.Function {
		fn := &ir.Function{Symbol: symbol}
		blk := &ir.BasicBlock{ID: 0, Parent: fn}
		blk.Insts = append(blk.Insts, idiom(regs[0], regs[1], regs[2], regs[3])...)
		blk.Insts = append(blk.Insts, isa.AArch64{}.Builder().CreateReturn())
		fn.Blocks = []*ir.BasicBlock{blk}
		return fn
	}

	prog.Functions = append(prog.Functions,
		newLeaf("checksum_a", [4]ir.Reg{r0, r1, r2, r3}),
		newLeaf("checksum_b", [4]ir.Reg{ir.Reg(4), ir.Reg(5), ir.Reg(6), ir.Reg(7)}),
		newLeaf("checksum_c", [4]ir.Reg{ir.Reg(8), ir.Reg(9), ir.Reg(10), ir.Reg(11)}),
	)
	return prog
}
