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
	"math"

	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

// fnvOffsetBasis and fnvPrime are the FNV-1a 64-bit constants §4.2
// names explicitly; they are also hash/fnv's own offset64/prime64
// constants, reproduced here as plain values so fingerprint can fold
// a whole 64-bit operand per XOR+multiply step the way the original
// pass's getHash does, rather than streaming bytes through
// hash/fnv.Hash64a's io.Writer interface (which would apply the same
// algorithm a byte at a time and land on a different, merely
// equally-valid, hash per sequence).
const fnvOffsetBasis uint64 = 14695981039346656037
const fnvPrime uint64 = 1099511628211

// exprSentinel is folded into the fingerprint for every expression
// operand, matching the original pass's 0xDEADBEEF placeholder since
// expression identity itself isn't hashable across hosts (§4.2).
const exprSentinel uint64 = 0xDEADBEEF

// firstGeneralRegisterID is the canonical label assigned to the first
// general-purpose register seen in a sequence (§4.2).
const firstGeneralRegisterID = 1000

// fingerprint folds a 64-bit FNV-1a over a normalized encoding of
// insts: opcode then operands per instruction, with general-purpose
// registers renamed through a per-sequence dense map that preserves
// SP/FP/LR identity (§4.2).
func fingerprint(o isa.Oracle, insts []ir.Instruction) uint64 {
	regs := o.Registers()
	hash := fnvOffsetBasis
	fold := func(v uint64) {
		hash ^= v
		hash *= fnvPrime
	}

	renamed := map[ir.Reg]ir.Reg{}
	next := ir.Reg(firstGeneralRegisterID)

	for _, inst := range insts {
		fold(uint64(inst.Op))
		for _, op := range inst.Operands {
			switch op.Kind {
			case ir.OperandRegister:
				r := op.Reg
				if !isSpecialRegister(regs, r) {
					if mapped, ok := renamed[r]; ok {
						r = mapped
					} else {
						renamed[r] = next
						r = next
						next++
					}
				}
				fold(uint64(r))
			case ir.OperandImmediate:
				fold(uint64(op.Imm))
			case ir.OperandExpr:
				fold(exprSentinel)
			case ir.OperandFPImmediate:
				fold(uint64(math.Float32bits(op.FImm)))
			}
		}
	}
	return hash
}
