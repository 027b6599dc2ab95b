// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/taufold/zkvm/pkg/loader"
	"github.com/taufold/zkvm/pkg/vm"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "execute a program under the in-process executor.",
	Long: `Assemble --program (§4.9's textual assembly form) and execute it to completion,
halt, or a runtime error, feeding --input's words to READ and printing
whatever WRITE produced. Exits nonzero on a runtime error (§6.2).`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		programPath := GetString(cmd, "program")
		if programPath == "" {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}

		src, err := os.ReadFile(programPath)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		program, err := loader.Assemble(string(src))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		executor := vm.NewExecutor(program, nil)

		if inputPath := GetString(cmd, "input"); inputPath != "" {
			input, err := readInput(inputPath)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}

			executor.State.IO.Input = input
		}

		maxSteps := GetInt(cmd, "max-steps")

		runErr := executor.Run(maxSteps)

		for _, line := range executor.State.IO.Debug {
			fmt.Fprintln(os.Stderr, "debug:", line)
		}

		for _, w := range executor.State.IO.Output {
			fmt.Println(w)
		}

		if runErr != nil {
			fmt.Println(runErr)
			os.Exit(1)
		}
	},
}

// readInput parses whitespace-separated 32-bit words, any number per line
// (decimal or "0x"-prefixed hex, the same numeric syntax loader.Assemble
// accepts for PUSH immediates).
func readInput(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var words []uint32

	for _, field := range strings.Fields(string(data)) {
		v, err := strconv.ParseUint(field, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("run: parsing input word %q: %w", field, err)
		}

		words = append(words, uint32(v))
	}

	return words, nil
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("program", "P", "", "path to an assembly source file")
	runCmd.Flags().StringP("input", "i", "", "path to a whitespace-separated list of 32-bit input words")
	runCmd.Flags().Int("max-steps", 0, "step budget (0 = unlimited)")
	runCmd.MarkFlagRequired("program")
}
