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

// isPureCallShell reports whether fn is a synthesized (injected)
// procedure whose body, ignoring push/pop/return and any ADD/SUB that
// adjusts SP, consists solely of direct calls — and those calls all
// target a single symbol (§4.7). A body with an indirect call, a mix
// of targets, or any other instruction is retained as-is, and a
// function of the original program is never treated as a shell.
func isPureCallShell(o isa.Oracle, fn *ir.Function) (target string, ok bool) {
	if !fn.Injected || fn.Ignored || len(fn.Blocks) == 0 {
		return "", false
	}
	target = ""
	sawCall := false
	for _, blk := range fn.Blocks {
		for _, inst := range blk.Insts {
			switch {
			case o.IsPush(inst), o.IsPop(inst), o.IsReturn(inst):
				continue
			case isStackAdjustSPOnly(o, inst):
				continue
			case o.IsCall(inst) && !o.IsIndirectCall(inst):
				sym, resolvable := o.CallTarget(inst)
				if !resolvable {
					return "", false
				}
				if sawCall && sym != target {
					return "", false
				}
				sawCall = true
				target = sym
			default:
				return "", false
			}
		}
	}
	if !sawCall {
		return "", false
	}
	return target, true
}

// isStackAdjustSPOnly reports whether inst is an ADD/SUB that writes
// SP, the only non-call, non-push/pop/return instruction §4.7 still
// permits inside a shell body.
func isStackAdjustSPOnly(o isa.Oracle, inst ir.Instruction) bool {
	return o.IsStackAdjust(inst) && o.WritesStackPointer(inst)
}

// resolveShellChain follows a chain of pure call shells to its final
// non-shell target, rejecting the retarget entirely if the chain
// revisits a function it has already passed through (§4.7's "reject
// cycles and leave both shells in place").
func resolveShellChain(o isa.Oracle, bySymbol map[string]*ir.Function, start string) (final string, changed bool) {
	seen := map[string]bool{start: true}
	cur := start
	for {
		fn, ok := bySymbol[cur]
		if !ok {
			return cur, cur != start
		}
		target, ok := isPureCallShell(o, fn)
		if !ok {
			return cur, cur != start
		}
		if seen[target] {
			return start, false // cycle: leave everything as-is
		}
		seen[target] = true
		cur = target
	}
}

// retargetCall rewrites a call site's target to newTarget. The
// original pass always installs a fresh direct call here regardless
// of what instruction previously occupied the slot, since a retarget
// only ever fires against a call site RewriteOccurrences itself
// created (§4.7).
func retargetCall(o isa.Oracle, newTarget string) ir.Instruction {
	return o.Builder().CreateCall(newTarget)
}

// RunCleanup implements Post-Pass Cleanup (§4.7): a fixpoint over the
// program retargeting every call site that points at a now-redundant
// pure-call shell directly at that shell's ultimate target, bounded
// by cfg.MaxIterations and stopping early once nothing changes.
// Functions fully retargeted away are marked Ignored rather than
// removed from Program.Functions, since other collaborators may still
// hold a reference to them.
func RunCleanup(o isa.Oracle, prog *ir.Program, cfg Config, log Logger) {
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		bySymbol := map[string]*ir.Function{}
		for _, fn := range prog.Functions {
			if !fn.Ignored {
				bySymbol[fn.Symbol] = fn
			}
		}

		resolved := map[string]string{}
		for sym := range bySymbol {
			if final, changed := resolveShellChain(o, bySymbol, sym); changed {
				resolved[sym] = final
			}
		}
		if len(resolved) == 0 {
			return
		}

		any := false
		for _, fn := range prog.Functions {
			if fn.Ignored {
				continue
			}
			for _, blk := range fn.Blocks {
				for i, inst := range blk.Insts {
					if !o.IsCall(inst) || o.IsIndirectCall(inst) {
						continue
					}
					sym, ok := o.CallTarget(inst)
					if !ok {
						continue
					}
					final, ok := resolved[sym]
					if !ok || final == sym {
						continue
					}
					blk.ReplaceAt(i, retargetCall(o, final))
					any = true
				}
			}
		}
		for sym := range resolved {
			if fn, ok := bySymbol[sym]; ok {
				fn.Ignored = true
			}
		}
		if log != nil {
			log(Diagnostic{Severity: SeverityInfo, Message: "cleanup: retargeted redundant call shells"})
		}
		if !any {
			return
		}
	}
}
