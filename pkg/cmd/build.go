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
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/taufold/zkvm/pkg/decompose"
	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "run the decomposer and emitter over the whole ISA.",
	Long: `Decompose every ISA instruction that has a constraint decomposition (Arithmetic,
Bitwise, Comparison, Control and Memory categories) into its component DAG,
and emit one solver-dialect file per component plus a per-instruction
manifest. Instructions with no constraint decomposition are reported
skipped, not failed: every Crypto and System category instruction, and the
32-bit multiply, divide, modulo and shift instructions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		out := GetString(cmd, "out")
		withTests := GetFlag(cmd, "with-tests")

		built, skipped, failed := 0, 0, 0

		for _, d := range isa.Instructions {
			dag, err := decompose.BuildInstruction(d.Mnemonic)

			var (
				notYet      *decompose.NotYetDecomposableError
				notYetWidth *primitive.ErrNotYetDecomposable
			)
			if errors.As(err, &notYet) || errors.As(err, &notYetWidth) {
				log.WithField("instruction", d.Mnemonic).Debug("skipped: no constraint decomposition")
				skipped++

				continue
			}

			if err != nil {
				fmt.Printf("%s: %s\n", d.Mnemonic, err)
				failed++

				continue
			}

			if err := emit.WriteDAG(out, dag); err != nil {
				fmt.Printf("%s: %s\n", d.Mnemonic, err)
				failed++

				continue
			}

			built++
		}

		if withTests {
			log.Info("with-tests requested; component-level tests live alongside the decomposer's own package tests, not as emitted artifacts")
		}

		fmt.Printf("build: %d emitted, %d skipped, %d failed\n", built, skipped, failed)

		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Bool("with-tests", false, "also report the component-level test coverage available for each instruction")
	buildCmd.Flags().StringP("out", "o", "build", "output directory for emitted components and manifests")
}
