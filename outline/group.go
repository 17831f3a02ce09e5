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
	"github.com/samber/lo"

	"github.com/PiggySusie/llvm-project/ir"
	"github.com/PiggySusie/llvm-project/isa"
)

// Group is the result of the §4.2 labelling loop: a canonical
// representative sequence plus every non-overlapping window the loop
// accepted as equivalent to it, within the single function the
// Enumerator ran over (§4.1's "for each function"). Frequency is
// len(Windows) as produced by the labelling loop itself — it is kept
// separately from Windows because Windows is later overwritten with
// the Locator's re-scan results, and the cost model's "locator
// under-count" gate (§4.4) needs both counts.
type Group struct {
	Canonical []ir.Instruction
	Windows   []*Window
	Frequency int
}

// FingerprintAndGroup computes each window's fingerprint and runs the
// §4.2 labelling loop, bucketing first by fingerprint with
// samber/lo.GroupBy so the O(n^2) structural re-check only ever
// compares windows that already agree on hash — windows in different
// buckets would fail the fingerprint check immediately anyway, so
// this changes nothing about which groups come out, only how fast.
func FingerprintAndGroup(o isa.Oracle, windows []*Window) []*Group {
	for _, w := range windows {
		w.Fingerprint = fingerprint(o, w.Insts)
	}

	buckets := lo.GroupBy(windows, func(w *Window) uint64 { return w.Fingerprint })

	var groups []*Group
	for _, w := range windows {
		bucket := buckets[w.Fingerprint]
		if bucket == nil {
			continue // already consumed by an earlier group in this bucket
		}
		delete(buckets, w.Fingerprint)
		groups = append(groups, labelBucket(o, bucket)...)
	}
	return groups
}

// labelBucket runs the labelling loop over a single fingerprint
// bucket, in the windows' original relative order. Every index i
// starts a fresh candidate group unconditionally, even one already
// claimed as a member of an earlier group — the original source's
// outer loop (`for (size_t i = 0; i < n; i++) { setLabel(&seqs[i]);
// ... }`) never checks isLabeled(&seqs[i]) before restarting at i, so
// a window already folded into a previous group can still seed another
// one of its own. Only the inner loop's candidates (j) are
// skipped once labelled, matching the original's `sequencesMatch &&
// !isLabeled(&seqs[j])`.
func labelBucket(o isa.Oracle, bucket []*Window) []*Group {
	n := len(bucket)
	labelled := make([]bool, n)
	var groups []*Group

	for i := 0; i < n; i++ {
		labelled[i] = true
		group := &Group{Canonical: bucket[i].Insts, Windows: []*Window{bucket[i]}}

		for j := i + 1; j < n; j++ {
			if labelled[j] {
				continue
			}
			if !structuralMatch(o, bucket[i].Insts, bucket[j].Insts) {
				continue
			}
			if lo.SomeBy(group.Windows, func(accepted *Window) bool {
				return accepted.overlaps(bucket[j])
			}) {
				continue
			}
			labelled[j] = true
			group.Windows = append(group.Windows, bucket[j])
		}
		group.Frequency = len(group.Windows)
		groups = append(groups, group)
	}
	return groups
}
