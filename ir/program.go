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

import "strconv"

// Program is the top-level container the pass mutates: a function
// table iterated in host order (§5 ordering guarantee ii), plus the
// bookkeeping needed to add newly synthesized procedures and to
// retarget calls at cleanup time.
type Program struct {
	Functions []*Function

	// nextOutlinedID is the monotonic counter seeding synthesized
	// procedure names (§6, §9 "label identity"). Scoped to one
	// Program/pass run, never persisted.
	nextOutlinedID uint64
}

// NextOutlinedName returns the next globally-unique name for a
// synthesized procedure, "PLO_outlined_<n>".
func (p *Program) NextOutlinedName() string {
	p.nextOutlinedID++
	return "PLO_outlined_" + strconv.FormatUint(p.nextOutlinedID, 10)
}

// CreateInjectedFunction appends a new, empty injected Function named
// name to the program and returns it. Mirrors the consumed interface
// §6 names create_injected_function(name).
func (p *Program) CreateInjectedFunction(name string) *Function {
	fn := &Function{Symbol: name, Injected: true}
	p.Functions = append(p.Functions, fn)
	return fn
}

// AddBasicBlock appends a new, empty block labelled label to fn and
// returns it. Mirrors §6's add_basic_block(label).
func (fn *Function) AddBasicBlock(label string) *BasicBlock {
	b := &BasicBlock{ID: len(fn.Blocks), Parent: fn}
	fn.Blocks = append(fn.Blocks, b)
	_ = label // labels are carried by the caller's own symbol table
	return b
}
