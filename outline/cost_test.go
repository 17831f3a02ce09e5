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
)

func TestEstimateSavings_MoreOccurrencesSavesMoreBytes(t *testing.T) {
	group := &Group{Canonical: addSubSeq(0, 1, 2, 3)}
	few := EstimateSavings(group, []CallKind{CallNormal, CallNormal}, false, false)
	many := EstimateSavings(group, []CallKind{CallNormal, CallNormal, CallNormal, CallNormal}, false, false)
	if many <= few {
		t.Errorf("expected savings to grow monotonically with occurrence count: few=%d many=%d", few, many)
	}
}

func TestEstimateSavings_SandwichCostsMoreThanNormal(t *testing.T) {
	group := &Group{Canonical: addSubSeq(0, 1, 2, 3)}
	normal := EstimateSavings(group, []CallKind{CallNormal, CallNormal}, false, false)
	sandwich := EstimateSavings(group, []CallKind{CallSandwich, CallSandwich}, false, false)
	if sandwich >= normal {
		t.Errorf("expected sandwich call sites to save fewer bytes than normal ones: normal=%d sandwich=%d", normal, sandwich)
	}
}

func TestEstimateSavings_StackFixupReducesSavings(t *testing.T) {
	group := &Group{Canonical: addSubSeq(0, 1, 2, 3)}
	kinds := []CallKind{CallNormal, CallNormal}
	plain := EstimateSavings(group, kinds, true, false)
	withFixup := EstimateSavings(group, kinds, false, false)
	if withFixup >= plain {
		t.Errorf("expected a non-pure body's prologue/epilogue overhead to reduce savings: plain=%d withFixup=%d", plain, withFixup)
	}
}

func TestWeightedFrequency_IgnoresExecCountWhenPGODisabled(t *testing.T) {
	count := uint64(50)
	blk := &ir.BasicBlock{ID: 0, ExecCount: &count}
	w := &Window{Spans: []Span{{Block: blk, Start: 0, Length: 2}}}
	group := &Group{Canonical: addSubSeq(0, 1, 2, 3), Windows: []*Window{w}}

	withoutPGO := WeightedFrequency(group, 1, false)
	if withoutPGO != 1 {
		t.Errorf("expected disabled PGO to count each occurrence once regardless of ExecCount, got %d", withoutPGO)
	}

	withPGO := WeightedFrequency(group, 1, true)
	if withPGO != count {
		t.Errorf("expected enabled PGO to weight by the block's execution count, got %d want %d", withPGO, count)
	}
}
