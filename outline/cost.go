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

// instructionBytes is the fixed AArch64 instruction width in bytes.
const instructionBytes = 4

// callBytes is the size of a single BL instruction.
const callBytes = instructionBytes

// pairBytes is the size of an STP/LDP push or pop pair.
const pairBytes = instructionBytes

// sequenceCost is the code size, in bytes, of a raw instruction
// sequence before outlining.
func sequenceCost(n int) int64 {
	return int64(n) * instructionBytes
}

// callSiteCost is the code size of the replacement call for a single
// occurrence, given how it must be spliced in (§4.4, §4.6).
func callSiteCost(kind CallKind) int64 {
	if kind == CallSandwich {
		return callBytes + 2*pairBytes // push FP,LR, BL, pop FP,LR
	}
	return callBytes
}

// procedureOverhead is the fixed one-time cost of the synthesized
// outlined procedure: its own prologue/epilogue plus a return, beyond
// the sequence body it shares with every occurrence (§4.5). A pure
// sequence needs no frame save/restore, only the trailing RET; a
// non-pure one also pays for the push-pair/pop-pair wrapping it.
func procedureOverhead(pure bool) int64 {
	overhead := int64(instructionBytes) // RET
	if !pure {
		overhead += 2 * pairBytes // frame push/pop around the shared body
	}
	return overhead
}

// WeightedFrequency sums the execution weight (§4.4, §6) of every
// occurrence in group.Windows. With enablePGO false, profile data is
// not trusted for this purpose and every occurrence counts as exactly
// 1, matching plain static call-site counting; with enablePGO true,
// each occurrence contributes its block's profiled execution count
// when known, else 1 (BasicBlock.ExecWeight's own fallback). When
// group.Windows carries no window objects (the cost model exercised in
// isolation from a real Locator run), each of the n occurrences named
// by a caller's callKinds slice is assumed to execute once regardless
// of enablePGO, since there is no block to weight by.
func WeightedFrequency(group *Group, n int, enablePGO bool) uint64 {
	if !enablePGO || len(group.Windows) == 0 {
		return uint64(n)
	}
	var total uint64
	for _, w := range group.Windows {
		total += w.Spans[0].Block.ExecWeight()
	}
	return total
}

// Threshold computes the §4.4 minimum net benefit a group must clear
// to be outlined. A pure sequence's threshold turns negative (more
// permissive) once it is frequent or hot enough, since it costs
// nothing beyond the shared body and a RET; a non-pure sequence always
// uses a flat zero threshold, since its frame save/restore and call
// overhead are already priced into EstimateSavings.
func Threshold(pure bool, avgFreq uint64, f int) int64 {
	if !pure {
		return 0
	}
	if avgFreq >= 3 || f >= 3 {
		return -4
	}
	if avgFreq >= 2 || f >= 2 {
		return 0
	}
	return 4
}

// EstimateSavings computes the net code-size delta of replacing every
// occurrence covered by callKinds (one entry per occurrence) with a
// call, minus the one-time cost of synthesizing the shared procedure
// for group.Canonical, weighted by execution frequency (§4.4). A
// result greater than Threshold's value for the same group means
// outlining shrinks the binary enough to be worth committing (§4.4,
// §7).
func EstimateSavings(group *Group, callKinds []CallKind, pure bool, enablePGO bool) int64 {
	l := sequenceCost(len(group.Canonical))
	var callCost int64
	for _, kind := range callKinds {
		callCost += callSiteCost(kind)
	}
	saved := l * int64(WeightedFrequency(group, len(callKinds), enablePGO))
	outlinedSize := l + procedureOverhead(pure)
	return saved - outlinedSize - callCost
}
