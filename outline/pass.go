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

// Result summarizes one Run invocation (§7).
type Result struct {
	ProceduresSynthesized int
	OccurrencesRewritten  int
	BytesSaved            int64
}

// Run drives the full pass over prog for every window length in
// [cfg.MinLength, cfg.MaxLength], longest first (§5: "across lengths,
// longer sequences are considered first, so once a region is consumed
// it cannot be re-outlined at a shorter length"). Within a length, the
// whole enumerate/group/locate/cost/synthesize/rewrite pipeline is
// scoped to one function at a time (§2, §4.1, §4.3) — a match can
// never span two different functions. Post-Pass Cleanup runs once at
// the end, over the whole program.
func Run(o isa.Oracle, prog *ir.Program, cfg Config, log Logger) Result {
	var result Result

	for length := cfg.MaxLength; length >= cfg.MinLength; length-- {
		for _, fn := range prog.Functions {
			if !eligible(fn) {
				continue
			}
			runFunction(o, prog, fn, length, cfg, log, &result)
		}
	}

	RunCleanup(o, prog, cfg, log)
	return result
}

// eligible implements §7.3's skip-function rule: injected, already
// retired, or exception-bearing functions are never enumerated.
func eligible(fn *ir.Function) bool {
	return !fn.Injected && !fn.Ignored && !fn.HasExceptionRange && len(fn.Blocks) > 0
}

// runFunction enumerates, fingerprints, and groups windows of a single
// length within fn, then drives cost/synthesis/rewrite for every group
// whose frequency reaches cfg.MinOccurrences.
func runFunction(o isa.Oracle, prog *ir.Program, fn *ir.Function, length int, cfg Config, log Logger, result *Result) {
	windows := Enumerate(o, fn, length, cfg)
	if len(windows) == 0 {
		return
	}
	for _, group := range FingerprintAndGroup(o, windows) {
		if group.Frequency < cfg.MinOccurrences {
			continue
		}
		runGroup(o, prog, fn, group, cfg, log, result)
	}
}

// runGroup re-locates group's full occurrence set within fn, applies
// the §4.4 cost model, and on acceptance synthesizes one shared
// procedure and rewrites every occurrence to call it.
func runGroup(o isa.Oracle, prog *ir.Program, fn *ir.Function, group *Group, cfg Config, log Logger, result *Result) {
	occurrences := LocateOccurrences(o, fn, group, cfg)
	if len(occurrences) == 0 {
		return
	}
	// §4.4: a locator re-scan that turns up fewer occurrences than
	// half the labelling loop's original count signals a fingerprint
	// bucket whose members only coincidentally shared a hash — treat
	// the group as unreliable rather than outlining a partial match.
	if len(occurrences) < group.Frequency/2 {
		if log != nil {
			log(Diagnostic{Severity: SeverityWarn, Function: fn.Symbol, Message: "locator under-count, group skipped"})
		}
		return
	}
	if len(occurrences) < cfg.MinOccurrences {
		return
	}

	kinds := map[*Window]CallKind{}
	callKinds := make([]CallKind, len(occurrences))
	for i, w := range occurrences {
		head := w.Spans[0]
		kind := ClassifyCallSite(o, head.Block.Parent, head.Block, head.Start)
		kinds[w] = kind
		callKinds[i] = kind
	}

	pure := isPureSequence(o, group.Canonical)
	located := &Group{Canonical: group.Canonical, Windows: occurrences, Frequency: group.Frequency}

	avgFreq := WeightedFrequency(located, len(occurrences), cfg.EnablePGO)
	if len(occurrences) > 0 {
		avgFreq /= uint64(len(occurrences))
	}
	threshold := Threshold(pure, avgFreq, len(occurrences))

	savings := EstimateSavings(located, callKinds, pure, cfg.EnablePGO)
	if savings <= threshold {
		if log != nil {
			log(Diagnostic{Severity: SeverityWarn, Function: fn.Symbol, Message: "group below savings threshold, skipped"})
		}
		return
	}

	kind := ProcedureCallKind(kinds, occurrences)
	procFn := SynthesizeProcedure(o, prog, located, kind)
	n := RewriteOccurrences(o, occurrences, kinds, procFn.Symbol)
	if n == 0 {
		removeFunction(prog, procFn)
		return
	}
	result.ProceduresSynthesized++
	result.OccurrencesRewritten += n
	result.BytesSaved += savings
	if log != nil {
		log(Diagnostic{Severity: SeverityInfo, Function: procFn.Symbol, Message: "synthesized outlined procedure"})
	}
}

// removeFunction drops fn from prog, used when a synthesized
// procedure ends up with zero successfully rewritten occurrences.
func removeFunction(prog *ir.Program, fn *ir.Function) {
	for i, f := range prog.Functions {
		if f == fn {
			prog.Functions = append(prog.Functions[:i], prog.Functions[i+1:]...)
			return
		}
	}
}
