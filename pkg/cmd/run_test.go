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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of f and returns
// whatever was written to it. The CLI commands print directly via
// fmt.Println/Printf rather than through cobra's OutOrStdout, so this is
// the only way to observe their output from outside the process.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	orig := os.Stdout
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatal(err)
	}

	return buf.String()
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "prog.asm")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// TestRunAddScenario exercises end-to-end scenario 1 (PUSH 5; PUSH 7; ADD;
// WRITE; HALT) through the cobra "run" command rather than vm.Executor
// directly, so the loader and CLI flag wiring are also under test.
func TestRunAddScenario(t *testing.T) {
	path := writeProgram(t, "push 5\npush 7\nadd\nwrite\nhalt\n")

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"run", "--program", path})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})

	if strings.TrimSpace(out) != "12" {
		t.Fatalf("output = %q, want \"12\"", out)
	}
}

// TestRunMemoryRoundTripScenario exercises end-to-end scenario 4 (store
// 0xCAFE at 0x100, load it back, write it) through the "run" command,
// pinning the CLI-level behavior of the address-then-value STORE ordering
// (see pkg/vm's grounding note) against the assembly surface.
func TestRunMemoryRoundTripScenario(t *testing.T) {
	path := writeProgram(t, strings.Join([]string{
		"push 0xCAFE",
		"push 0x100",
		"store",
		"push 0x100",
		"load",
		"write",
		"halt",
	}, "\n"))

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"run", "--program", path})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})

	if strings.TrimSpace(out) != "51966" { // 0xCAFE
		t.Fatalf("output = %q, want \"51966\"", out)
	}
}
