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

// normalByteFix/sandwichByteFix are the §4.5 ByteFix constants: the
// depth, in bytes, SP sits below its value at the original call site
// once the occurrence is replaced. A CallNormal call site touches SP
// not at all (0 extra bytes of depth beyond the callee's own frame),
// so the outlined body only needs to account for the 16 bytes its own
// synthesized prologue pushes; a CallSandwich call site additionally
// wraps the call in a push/pop of FP,LR, depressing SP by another 16
// bytes before the body ever runs. These are STACK-DEPTH deltas, not
// instruction-code-size bytes — contrast pairBytes in cost.go, which
// is the 4-byte code size of the single STP/LDP instruction that
// causes this 16-byte depth shift.
const normalByteFix = 16
const sandwichByteFix = 32

// stackFixupDelta returns the §4.5 ByteFix for kind.
func stackFixupDelta(kind CallKind) int64 {
	if kind == CallSandwich {
		return sandwichByteFix
	}
	return normalByteFix
}

// needsStackFixup reports whether insts contains any instruction that
// addresses memory relative to the stack or frame pointer, which
// means the synthesized procedure's body depends on the depth of SP
// at the call site (§4.5).
func needsStackFixup(o isa.Oracle, insts []ir.Instruction) bool {
	for _, inst := range insts {
		if _, ok := o.StackOperandIndex(inst); ok {
			return true
		}
	}
	return false
}

// endsInCallOrConditionalBranch reports whether the last instruction
// of insts is a call or a conditional branch, the two terminator
// shapes the enumerator only ever permits at the final position of a
// window (§4.1).
func endsInCallOrConditionalBranch(o isa.Oracle, insts []ir.Instruction) bool {
	if len(insts) == 0 {
		return false
	}
	last := insts[len(insts)-1]
	return o.IsCall(last) || o.IsConditionalBranch(last)
}

// isPureSequence reports whether insts is pure per §4.5/glossary: no
// stack access, no call, no conditional branch, no frame-pointer
// read. The enumerator's §4.1 always-reject set already refuses any
// window instruction that reads FP at all (ReadsFrameRegister), so
// every accepted window already satisfies that clause unconditionally
// — purity here only needs to re-check the two clauses the enumerator
// permits at the final position, stack access and a trailing
// call/conditional-branch.
func isPureSequence(o isa.Oracle, insts []ir.Instruction) bool {
	return !needsStackFixup(o, insts) && !endsInCallOrConditionalBranch(o, insts)
}

// applyStackFixup returns a copy of insts with every stack-relative
// immediate bumped by delta bytes, scaled down by the instruction's
// access width (§4.5): an LDR/STR pair addressing 8-byte slots needs
// its immediate adjusted by delta/8, a byte-addressing instruction by
// delta/1, and so on, matching the encoded scale for that opcode.
func applyStackFixup(o isa.Oracle, insts []ir.Instruction, delta int64) []ir.Instruction {
	if delta == 0 {
		return insts
	}
	out := make([]ir.Instruction, len(insts))
	for i, inst := range insts {
		idx, ok := o.StackOperandIndex(inst)
		if !ok {
			out[i] = inst
			continue
		}
		scale, ok := o.ImmediateScale(inst)
		if !ok || scale == 0 {
			scale = 1
		}
		operands := append([]ir.Operand{}, inst.Operands...)
		operands[idx] = ir.NewImmOperand(operands[idx].Imm + delta/int64(scale))
		out[i] = ir.Instruction{Op: inst.Op, Operands: operands}
	}
	return out
}

// ProcedureCallKind decides the single ByteFix class a synthesized
// procedure's body is fixed up for: normal unless at least one of its
// occurrences needs a sandwich call, in which case every occurrence
// shares the sandwich (deeper) stack depth assumption, even the
// normal ones (§4.5: "a procedure that will be reached by both
// classes takes the sandwich value"). This mirrors the original pass,
// which computes one NeedsSandwich flag per outlined procedure from
// its occurrence set and feeds it to stack-frame management once, not
// per occurrence — call-site splicing itself still independently
// chooses a bare call or a sandwich per occurrence (§4.6); only the
// shared body's own stack arithmetic is forced to the conservative
// value.
func ProcedureCallKind(kinds map[*Window]CallKind, windows []*Window) CallKind {
	for _, w := range windows {
		if kinds[w] == CallSandwich {
			return CallSandwich
		}
	}
	return CallNormal
}

// SynthesizeProcedure builds the shared outlined procedure for a
// (possibly call-kind-partitioned) set of windows sharing group's
// canonical body (§4.5):
//
//   - a pure body (no stack access, no trailing call/conditional
//     branch) gets no prologue/epilogue, just the body plus a return.
//   - a non-pure body gets its stack-relative immediates fixed up by
//     kind's ByteFix when it addresses the stack, and is wrapped in a
//     push-pair/pop-pair of FP,LR.
//   - a body ending in a direct call to a resolvable symbol folds that
//     call into a tail branch with no prologue or epilogue at all
//     (tail-call folding) — this check runs before the push-pair would
//     otherwise be emitted, so a folded body never ends up with a
//     push and no matching pop.
//   - a non-pure body ending in a conditional branch gets a second
//     basic block: the branch's target operand is retargeted to a
//     fresh trampoline label holding only a return, while the
//     fall-through path reaches the body's own epilogue/return
//     appended right after the branch (§3's "one or two basic
//     blocks" invariant, §8 scenario 4).
func SynthesizeProcedure(o isa.Oracle, prog *ir.Program, group *Group, kind CallKind) *ir.Function {
	name := prog.NextOutlinedName()
	fn := prog.CreateInjectedFunction(name)
	blk := fn.AddBasicBlock(name)
	b := o.Builder()
	regs := o.Registers()

	body := group.Canonical
	hasStackAccess := needsStackFixup(o, body)
	if hasStackAccess {
		body = applyStackFixup(o, body, stackFixupDelta(kind))
	}
	pure := !hasStackAccess && !endsInCallOrConditionalBranch(o, body)

	if pure {
		blk.Insts = append(blk.Insts, body...)
		blk.Insts = append(blk.Insts, b.CreateReturn())
		return fn
	}

	// Tail-call folding (§4.5, §8 scenario 5): a body ending in a
	// direct call to a resolvable symbol collapses to a single
	// unconditional branch, with no prologue or epilogue at all —
	// funcShrinking erases both the leading STP and the trailing LDP
	// whenever the outlined body turns out to be call-only, rather
	// than leaving a push with no matching pop. This check has to run
	// before the push-pair below is ever emitted, not after.
	if last := body[len(body)-1]; o.IsCall(last) {
		if target, ok := o.CallTarget(last); ok {
			blk.Insts = append(blk.Insts, body[:len(body)-1]...)
			blk.Insts = append(blk.Insts, b.CreateUnconditionalBranch(target))
			return fn
		}
	}

	blk.Insts = append(blk.Insts, b.CreatePushPair(regs.FrameRegister(), regs.LinkRegister()))
	blk.Insts = append(blk.Insts, body...)

	last := blk.Insts[len(blk.Insts)-1]
	if o.IsCall(last) {
		// An indirect or otherwise unresolvable call can't be folded
		// into a branch; it keeps the full prologue/epilogue.
		blk.Insts = append(blk.Insts, b.CreatePopPair(regs.FrameRegister(), regs.LinkRegister()))
		blk.Insts = append(blk.Insts, b.CreateReturn())
		return fn
	}

	if o.IsConditionalBranch(last) {
		// The trampoline holds only a return (scenario 4, §8): the
		// epilogue search below only ever looks for the body block's
		// own first return, matching the original pass's
		// insert-before-first-return walk, which never reaches a
		// second block.
		trampoline := name + "_trampoline"
		blk.Insts[len(blk.Insts)-1] = retargetBranch(last, trampoline)
		blk.Insts = append(blk.Insts, b.CreatePopPair(regs.FrameRegister(), regs.LinkRegister()))
		blk.Insts = append(blk.Insts, b.CreateReturn())

		tramp := fn.AddBasicBlock(trampoline)
		tramp.Insts = append(tramp.Insts, b.CreateReturn())
		return fn
	}

	blk.Insts = append(blk.Insts, b.CreatePopPair(regs.FrameRegister(), regs.LinkRegister()))
	blk.Insts = append(blk.Insts, b.CreateReturn())
	return fn
}

// retargetBranch returns a copy of inst with its symbolic (expression)
// operand replaced by label, used to point a copied conditional
// branch at the trampoline block synthesized alongside it instead of
// the original program's label, which has no meaning inside a freshly
// created, isolated function.
func retargetBranch(inst ir.Instruction, label string) ir.Instruction {
	operands := append([]ir.Operand{}, inst.Operands...)
	for i, op := range operands {
		if op.Kind == ir.OperandExpr {
			operands[i] = ir.NewExprOperand(label)
			return ir.Instruction{Op: inst.Op, Operands: operands}
		}
	}
	operands = append(operands, ir.NewExprOperand(label))
	return ir.Instruction{Op: inst.Op, Operands: operands}
}
