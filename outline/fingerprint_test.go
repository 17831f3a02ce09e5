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

	"github.com/PiggySusie/llvm-project/isa"
)

func TestFingerprint_StableUnderRegisterRenaming(t *testing.T) {
	o := isa.AArch64{}
	a := addSubSeq(0, 1, 2, 3)
	b := addSubSeq(20, 21, 22, 23)
	if fingerprint(o, a) != fingerprint(o, b) {
		t.Error("expected fingerprint to be invariant under consistent register renaming")
	}
}

func TestFingerprint_DiffersOnOpcode(t *testing.T) {
	o := isa.AArch64{}
	a := addSubSeq(0, 1, 2, 3)
	b := addSubSeq(0, 1, 2, 3)
	b[0].Op = isa.OpSUB
	if fingerprint(o, a) == fingerprint(o, b) {
		t.Error("expected changing an opcode to change the fingerprint")
	}
}

func TestFingerprint_PreservesSpecialRegisterIdentity(t *testing.T) {
	o := isa.AArch64{}
	a := addSubSeq(0, 1, 2, 3)
	bSP := addSubSeq(0, 1, 2, 3)
	// swap in SP for what was a renameable general register: since SP
	// is never renamed, this must change the fingerprint even though
	// the general-register renaming would otherwise be free to absorb it.
	for i := range bSP {
		for j := range bSP[i].Operands {
			if bSP[i].Operands[j].Reg == 3 {
				bSP[i].Operands[j].Reg = 31 // ir.RegSP
			}
		}
	}
	if fingerprint(o, a) == fingerprint(o, bSP) {
		t.Error("expected substituting SP for a general register to change the fingerprint")
	}
}
