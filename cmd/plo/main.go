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

// Command plo runs the post-link outlining pass over a demo AArch64
// program and prints the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PiggySusie/llvm-project/isa"
	"github.com/PiggySusie/llvm-project/outline"
)

var verbose bool

var command = &cobra.Command{
	Use:   "plo",
	Short: "post-link machine-code outliner",
	Run: func(cmd *cobra.Command, args []string) {
		arch, _ := cmd.PersistentFlags().GetString("arch")
		minLength, _ := cmd.PersistentFlags().GetInt("min-length")
		maxLength, _ := cmd.PersistentFlags().GetInt("max-length")
		minOccurrences, _ := cmd.PersistentFlags().GetInt("min-occurrences")
		disablePGO, _ := cmd.PersistentFlags().GetBool("no-pgo")

		o, err := isa.GetOracle(arch)
		if err != nil {
			fmt.Fprintln(os.Stderr, "plo:", err)
			os.Exit(1)
		}

		cfg := outline.DefaultConfig()
		if minLength > 0 {
			cfg.MinLength = minLength
		}
		if maxLength > 0 {
			cfg.MaxLength = maxLength
		}
		if minOccurrences > 0 {
			cfg.MinOccurrences = minOccurrences
		}
		cfg.EnablePGO = !disablePGO

		prog := demoProgram()

		var logger outline.Logger = func(d outline.Diagnostic) {
			if verbose || d.Severity == outline.SeverityError {
				fmt.Fprintln(os.Stderr, d.String())
			}
		}

		result := outline.Run(o, prog, cfg, logger)
		fmt.Printf("procedures synthesized: %d\n", result.ProceduresSynthesized)
		fmt.Printf("occurrences rewritten:  %d\n", result.OccurrencesRewritten)
		fmt.Printf("estimated bytes saved:  %d\n", result.BytesSaved)
		fmt.Println()
		fmt.Print(isa.DumpProgram(o, prog.Functions))
	},
}

func init() {
	command.PersistentFlags().StringP("arch", "a", "aarch64", "target architecture")
	command.PersistentFlags().Int("min-length", 0, "minimum window length (0 uses the default)")
	command.PersistentFlags().Int("max-length", 0, "maximum window length (0 uses the default)")
	command.PersistentFlags().Int("min-occurrences", 0, "minimum group size to synthesize a procedure for")
	command.PersistentFlags().Bool("no-pgo", false, "disable profile-guided hot-block exclusion")
	command.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pass diagnostics as they're emitted")
}

func main() {
	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
