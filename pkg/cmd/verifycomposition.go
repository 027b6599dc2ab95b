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

	"github.com/spf13/cobra"
	"github.com/taufold/zkvm/pkg/harness"
	"github.com/taufold/zkvm/pkg/verify"
)

var verifyCompositionCmd = &cobra.Command{
	Use:   "verify-composition",
	Short: "run the composition verifier over an existing manifest.",
	Long: `Walk each instruction's on-disk manifest under --dir, re-validate its component
files with the harness, and check that every edge's shared identifiers are
both guaranteed by their producer and assumed by their consumer. Reports
each instruction as Composed, PartiallyComposed or NotComposed. This never
re-solves the combined system; its job is structural integrity only.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := GetString(cmd, "dir")

		oracle := harness.Oracle(harness.SubprocessOracle{Command: solverCommand, Args: solverArgs})
		cfg := harness.Config{DemoMode: os.Getenv("DEMO_MODE") != ""}

		reports, err := verify.VerifyDir(cmd.Context(), dir, oracle, cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		defective := 0

		for _, r := range reports {
			verify.RenderReport(os.Stdout, r)

			if r.Status != verify.Composed {
				defective++
			}
		}

		if defective > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCompositionCmd)
	verifyCompositionCmd.Flags().StringP("dir", "d", "build", "directory of emitted instructions and manifests to verify")
}
