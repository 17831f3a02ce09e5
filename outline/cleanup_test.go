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
	"testing"

	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

func shellFunction(o isa.Oracle, symbol, target string) *ir.Function {
	fn := &ir.Function{Symbol: symbol, Injected: true}
	blk := &ir.BasicBlock{ID: 0, Parent: fn}
	blk.Insts = []ir.Instruction{o.Builder().CreateCall(target), o.Builder().CreateReturn()}
	fn.Blocks = []*ir.BasicBlock{blk}
	return fn
}

func TestRunCleanup_RetargetsChainOfShells(t *testing.T) {
	o := isa.AArch64{}
	real := &ir.Function{Symbol: "real"}
	real.Blocks = []*ir.BasicBlock{{ID: 0, Parent: real, Insts: []ir.Instruction{o.Builder().CreateReturn()}}}

	shellB := shellFunction(o, "shell_b", "real")
	shellA := shellFunction(o, "shell_a", "shell_b")

	caller := &ir.Function{Symbol: "caller"}
	callerBlk := &ir.BasicBlock{ID: 0, Parent: caller, Insts: []ir.Instruction{o.Builder().CreateCall("shell_a")}}
	caller.Blocks = []*ir.BasicBlock{callerBlk}

	prog := &ir.Program{Functions: []*ir.Function{real, shellB, shellA, caller}}
	RunCleanup(o, prog, DefaultConfig(), nil)

	sym, ok := o.CallTarget(callerBlk.Insts[0])
	if !ok || sym != "real" {
		t.Fatalf("expected caller's call to be retargeted to \"real\", got (%q, %v)", sym, ok)
	}
	if !shellA.Ignored || !shellB.Ignored {
		t.Error("expected both shells to be marked Ignored once fully retargeted")
	}
}

func TestRunCleanup_RejectsCycle(t *testing.T) {
	o := isa.AArch64{}
	shellA := shellFunction(o, "shell_a", "shell_b")
	shellB := shellFunction(o, "shell_b", "shell_a")

	prog := &ir.Program{Functions: []*ir.Function{shellA, shellB}}
	RunCleanup(o, prog, DefaultConfig(), nil)

	if shellA.Ignored || shellB.Ignored {
		t.Error("expected a cyclic shell chain to be left untouched")
	}
}
