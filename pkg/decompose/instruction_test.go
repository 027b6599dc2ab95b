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
package decompose

import (
	"errors"
	"testing"

	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
)

func TestBuildInstructionRoutesByCategory(t *testing.T) {
	for _, mnemonic := range []string{"add", "and", "eq", "jmp", "push"} {
		if _, err := BuildInstruction(mnemonic); err != nil {
			t.Errorf("BuildInstruction(%q): %v", mnemonic, err)
		}
	}
}

func TestBuildInstructionUnknownMnemonic(t *testing.T) {
	if _, err := BuildInstruction("frobnicate"); err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
}

func TestBuildInstructionCryptoAndSystemAreNotYetDecomposable(t *testing.T) {
	for _, mnemonic := range []string{"hash", "sign", "verify", "halt", "nop", "debug", "assert"} {
		_, err := BuildInstruction(mnemonic)

		var target *NotYetDecomposableError
		if !errors.As(err, &target) {
			t.Errorf("BuildInstruction(%q): expected a NotYetDecomposableError, got %v", mnemonic, err)
		}
	}
}

func TestBuildInstructionCoversEveryDecomposableCategory(t *testing.T) {
	decomposable := map[isa.Category]bool{
		isa.Arithmetic: true,
		isa.Bitwise:    true,
		isa.Comparison: true,
		isa.Control:    true,
		isa.Memory:     true,
	}

	// Hints inside a decomposable category that have no 32-bit gate-level
	// decomposition (see BuildMul32, BuildDiv32, BuildMod32, BuildBitwise).
	notYet := map[isa.SemanticsHint]bool{
		isa.HintMul32: true,
		isa.HintDiv32: true,
		isa.HintMod32: true,
		isa.HintShl32: true,
		isa.HintShr32: true,
	}

	for _, d := range isa.Instructions {
		_, err := BuildInstruction(d.Mnemonic)

		if decomposable[d.Category] {
			if notYet[d.Hint] {
				if !errors.As(err, new(*primitive.ErrNotYetDecomposable)) {
					t.Errorf("%s: expected primitive.ErrNotYetDecomposable, got %v", d.Mnemonic, err)
				}

				continue
			}

			if err != nil {
				t.Errorf("%s: expected to decompose, got %v", d.Mnemonic, err)
			}

			continue
		}

		var target *NotYetDecomposableError
		if !errors.As(err, &target) {
			t.Errorf("%s: expected a NotYetDecomposableError, got %v", d.Mnemonic, err)
		}
	}
}
