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
	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

// CallKind distinguishes the two ways a call site can be spliced in
// for a replaced occurrence (§4.6).
type CallKind int

const (
	// CallNormal replaces the occurrence with a single call
	// instruction: the link register is provably already saved by a
	// push or store in the function's entry block ahead of the
	// occurrence, so clobbering it is safe.
	CallNormal CallKind = iota
	// CallSandwich wraps the call with a push/pop pair around the
	// link register, for occurrences where no such entry-block save
	// can be proven.
	CallSandwich
)

// ClassifyCallSite decides CallNormal versus CallSandwich for an
// occurrence starting at startIdx within blk, belonging to fn (§4.6).
// A "real leaf" function — one with no call instruction anywhere, and
// not itself an injected outlined procedure — always forces
// CallSandwich: there is never a reason for such a function to have
// saved LR, so a proof attempt would be wasted. Otherwise, a return
// instruction found anywhere earlier in the function (an earlier
// block in fn.Blocks order, or earlier in blk itself) forces
// CallSandwich too, since a prior return means any push of LR from
// the entry block may already have been undone along that path.
// Absent either of those, the proof scans fn's entry block for a push
// or any other store whose operand list contains the link register:
// the whole entry block when blk is a different block, or only the
// instructions before startIdx when the occurrence itself sits in the
// entry block. Hitting a terminator or another call before finding
// the save — or not finding one at all — forces CallSandwich; finding
// it proves CallNormal safe. This is the same conservative,
// no-cross-block-dominance proof the original pass's
// isLRSavedAtPoint performs (§4.6): isPush(Inst) || mayStore(Inst),
// not push alone.
func ClassifyCallSite(o isa.Oracle, fn *ir.Function, blk *ir.BasicBlock, startIdx int) CallKind {
	if fn.IsRealLeaf(o.IsCall) {
		return CallSandwich
	}
	if hasEarlierReturn(o, fn, blk, startIdx) {
		return CallSandwich
	}

	entry := fn.EntryBlock()
	if entry == nil {
		return CallSandwich
	}
	limit := entry.Len()
	if blk == entry {
		limit = startIdx
	}

	regs := o.Registers()
	for i := 0; i < limit; i++ {
		inst := entry.At(i)
		if (o.IsPush(inst) || o.MayStore(inst)) && instHasRegister(inst, regs.LinkRegister()) {
			return CallNormal
		}
		if o.IsTerminator(inst) || o.IsCall(inst) {
			return CallSandwich
		}
	}
	return CallSandwich
}

// hasEarlierReturn reports whether fn contains a return instruction
// strictly before (blk, startIdx) in fn.Blocks order: in any block
// preceding blk, or earlier in blk itself.
func hasEarlierReturn(o isa.Oracle, fn *ir.Function, blk *ir.BasicBlock, startIdx int) bool {
	for _, b := range fn.Blocks {
		if b == blk {
			for i := 0; i < startIdx; i++ {
				if o.IsReturn(b.At(i)) {
					return true
				}
			}
			return false
		}
		for _, inst := range b.Insts {
			if o.IsReturn(inst) {
				return true
			}
		}
	}
	return false
}

func instHasRegister(inst ir.Instruction, r ir.Reg) bool {
	for _, op := range inst.Operands {
		if op.Kind == ir.OperandRegister && op.Reg == r {
			return true
		}
	}
	return false
}
