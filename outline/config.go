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

// Config controls the behavior of a single pass run (§2, §7).
type Config struct {
	// MinLength and MaxLength bound the window lengths enumerated,
	// inclusive (§4.1).
	MinLength int
	MaxLength int

	// MinOccurrences is the smallest group size worth even attempting
	// to cost and locate, ahead of §4.4's own dynamic threshold — a
	// performance floor, not a substitute for it: a group this small
	// would almost always fail Threshold anyway (a pure, singly-
	// occurring sequence needs net > 4 to pass), so skipping it early
	// avoids the Locator re-scan for groups with no realistic chance.
	MinOccurrences int

	// EnablePGO gates hot-block exclusion in the Enumerator (§4.1)
	// and execution-count weighting in the cost model (§4.4). The
	// Locator scans hot blocks either way.
	EnablePGO bool

	// MaxIterations bounds the cleanup fixpoint loop (§4.7).
	MaxIterations int
}

// DefaultConfig returns the pass's out-of-the-box tuning, matching
// the worked scenarios in §8.
func DefaultConfig() Config {
	return Config{
		MinLength:      4,
		MaxLength:      12,
		MinOccurrences: 2,
		EnablePGO:      true,
		MaxIterations:  8,
	}
}
