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
	"path/filepath"
	"time"

	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/taufold/zkvm/pkg/harness"
)

// solverCommand and solverArgs name the external solver binary invoked by
// SubprocessOracle; DEMO_MODE skips this entirely (§6.2).
const solverCommand = "tau"

var solverArgs = []string{}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "run the validation harness over emitted component files.",
	Long: `Enumerate the ".tau" component files under --dir (recursing one level into each
instruction's own subdirectory), dispatch each to the solver across a bounded
worker pool, and report SAT/UNSAT/ERROR/TIMEOUT/OVERSIZE counts. Exits
nonzero if any file's outcome is a validation defect. Set DEMO_MODE=1 to
report every file SKIPPED without invoking the solver.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		dir := GetString(cmd, "dir")
		parallel := GetInt(cmd, "parallel")
		timeoutSecs := GetInt(cmd, "timeout")

		cfg := harness.Config{
			Parallel: parallel,
			Timeout:  time.Duration(timeoutSecs) * time.Second,
			DemoMode: os.Getenv("DEMO_MODE") != "",
		}

		oracle := harness.Oracle(harness.SubprocessOracle{Command: solverCommand, Args: solverArgs})

		instrDirs, err := discoverInstructionDirs(dir)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		var combined harness.Report

		combined.Counts = make(map[harness.Status]int)

		for _, d := range instrDirs {
			report, err := harness.Validate(cmd.Context(), d, oracle, cfg)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}

			combined.Results = append(combined.Results, report.Results...)

			for status, n := range report.Counts {
				combined.Counts[status] += n
			}
		}

		harness.RenderReport(os.Stdout, combined)
		writeReport(dir, combined)

		if combined.Failed() {
			os.Exit(1)
		}
	},
}

// discoverInstructionDirs finds every immediate subdirectory of dir that
// holds a manifest.json (i.e. one emitted instruction), falling back to
// dir itself when it directly contains ".tau" files.
func discoverInstructionDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs []string

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		sub := filepath.Join(dir, e.Name())
		if _, err := os.Stat(filepath.Join(sub, "manifest.json")); err == nil {
			dirs = append(dirs, sub)
		}
	}

	if len(dirs) == 0 {
		dirs = []string{dir}
	}

	return dirs, nil
}

// writeReport persists the latest harness output to dir/validation_report.json (§6.3).
func writeReport(dir string, report harness.Report) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.WithError(err).Warn("failed to marshal validation report")
		return
	}

	path := filepath.Join(dir, "validation_report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.WithError(err).Warn("failed to write validation report")
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().IntP("parallel", "p", 0, "worker pool size (0 = host parallelism)")
	validateCmd.Flags().Int("timeout", 10, "per-file solver timeout in seconds")
	validateCmd.Flags().StringP("dir", "d", "build", "directory of emitted components to validate")
}
