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

package isa

import "fmt"

// oracles holds the registered per-architecture oracles, mirroring
// goat's arch.go parsers registry.
var oracles = map[string]Oracle{}

// RegisterOracle registers an Oracle under name.
func RegisterOracle(name string, o Oracle) {
	oracles[name] = o
}

// GetOracle returns the Oracle registered for name.
func GetOracle(name string) (Oracle, error) {
	if o, ok := oracles[name]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("unsupported architecture: %s (available: %v)", name, ListArchitectures())
}

// ListArchitectures returns the names of all registered architectures.
func ListArchitectures() []string {
	names := make([]string, 0, len(oracles))
	for name := range oracles {
		names = append(names, name)
	}
	return names
}

func init() {
	RegisterOracle("aarch64", AArch64{})
}
