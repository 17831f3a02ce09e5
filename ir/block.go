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

package ir

// Edge is a successor edge out of a BasicBlock, with an optional known
// execution count from profile data (PGO). Count is nil when no
// profile information is available for the edge's target block.
type Edge struct {
	Target *BasicBlock
	Count  *uint64
}

// BasicBlock is an ordered sequence of instructions with successor
// edges and a back-reference to its owning Function. Handles into the
// Function/Program arena are plain pointers here; the host framework
// that owns the real arena is responsible for keeping them stable
// across the pass's single-threaded run (§5).
type BasicBlock struct {
	ID      int
	Insts   []Instruction
	Succs   []Edge
	Parent  *Function
	// ExecCount is this block's own known execution count from
	// profile data, nil when absent (treated as cold, §4.1).
	ExecCount *uint64
}

// Len returns the number of instructions currently in the block.
func (b *BasicBlock) Len() int { return len(b.Insts) }

// At returns the instruction at index i.
func (b *BasicBlock) At(i int) Instruction { return b.Insts[i] }

// Hot reports whether this block is considered hot under PGO gating:
// known execution count greater than one. Blocks without profile data
// default to cold (not hot), per §4.1.
func (b *BasicBlock) Hot() bool {
	return b.ExecCount != nil && *b.ExecCount > 1
}

// execWeight returns the block's execution-count contribution to a
// weighted frequency sum: the known count when present, else 1 (an
// occurrence always counts at least once, §4.4).
func (b *BasicBlock) execWeight() uint64 {
	if b.ExecCount != nil {
		return *b.ExecCount
	}
	return 1
}

// ExecWeight is the exported form of execWeight, used by the cost
// model to compute weighted_frequency.
func (b *BasicBlock) ExecWeight() uint64 { return b.execWeight() }

// ReplaceAt overwrites the instruction at index i in place.
func (b *BasicBlock) ReplaceAt(i int, inst Instruction) {
	b.Insts[i] = inst
}

// EraseAt removes the instruction at index i, shifting later
// instructions down by one.
func (b *BasicBlock) EraseAt(i int) {
	b.Insts = append(b.Insts[:i], b.Insts[i+1:]...)
}

// EraseRange removes instructions in [start, end) from the block.
func (b *BasicBlock) EraseRange(start, end int) {
	b.Insts = append(b.Insts[:start], b.Insts[end:]...)
}

// InsertBefore inserts inst immediately before index i.
func (b *BasicBlock) InsertBefore(i int, inst Instruction) {
	b.Insts = append(b.Insts, Instruction{})
	copy(b.Insts[i+1:], b.Insts[i:])
	b.Insts[i] = inst
}

// InsertSliceAt inserts insts starting at index i, replacing nothing.
func (b *BasicBlock) InsertSliceAt(i int, insts []Instruction) {
	tail := append([]Instruction{}, b.Insts[i:]...)
	b.Insts = append(b.Insts[:i], insts...)
	b.Insts = append(b.Insts, tail...)
}

// SoleSuccessor returns the unique successor when the block has
// exactly one, else nil.
func (b *BasicBlock) SoleSuccessor() *BasicBlock {
	if len(b.Succs) == 1 {
		return b.Succs[0].Target
	}
	return nil
}

// HottestSuccessor picks the successor with the highest known
// execution count; ties and missing profile data fall back to
// iteration order (the first successor), matching §4.1's "unique
// successor if only one; otherwise highest known execution count, tie
// -> iteration order".
func (b *BasicBlock) HottestSuccessor() *BasicBlock {
	if len(b.Succs) == 0 {
		return nil
	}
	if len(b.Succs) == 1 {
		return b.Succs[0].Target
	}
	best := b.Succs[0]
	var bestCount uint64
	if best.Count != nil {
		bestCount = *best.Count
	}
	for _, e := range b.Succs[1:] {
		var c uint64
		if e.Count != nil {
			c = *e.Count
		}
		if c > bestCount {
			best = e
			bestCount = c
		}
	}
	return best.Target
}
