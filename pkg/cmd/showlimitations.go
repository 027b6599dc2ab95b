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

	"github.com/spf13/cobra"
	"github.com/taufold/zkvm/pkg/harness"
	"github.com/taufold/zkvm/pkg/term"
)

const limitationsText = `The solver this project targets imposes strict per-expression syntactic
limits: a single top-level "solve" per source file, an ~800-character bound
on that solve's serialized term, and a bounded variable count. This is why
no 32-bit instruction is ever handed to the solver as one constraint —
every instruction is decomposed into small components, each kept under a
%d-character headroom (against the solver's 800-character hard limit) and
each emitted as its own file capped at %d bytes on disk.

Consequences visible to a user of this tool:
  - 32-bit MUL, DIV, MOD, SHL and SHR have no gate-level decomposition;
    "build" skips them. The multiplier and division primitives exist only
    for small operand widths (see DESIGN.md).
  - LOAD/STORE address a small demonstration memory, not the full 16-bit
    address space named by the ISA description.
  - HASH/SIGN/VERIFY have no constraint decomposition at all: the compiler
    emits no component files for them and they run only in the executor;
    their formal constraint modeling remains an open question.
  - The composition verifier never re-solves the combined system; it only
    checks that per-component SAT results and declared guarantee/assumption
    sets are structurally consistent.
`

var showLimitationsCmd = &cobra.Command{
	Use:   "show-limitations",
	Short: "explain the solver's syntactic limits and how they shape this compiler.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf(limitationsText, term.DefaultBudget, harness.OversizeThreshold)
	},
}

func init() {
	rootCmd.AddCommand(showLimitationsCmd)
}
