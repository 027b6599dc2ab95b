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
	"fmt"

	"github.com/taufold/zkvm/pkg/isa"
)

// NotYetDecomposableError reports an instruction whose category has no
// constraint decomposition (§9 Open Question: Crypto and System category
// instructions are executor-only — hash/sign/verify's formal constraint
// modeling is explicitly left open, and System instructions like halt,
// debug or send have no bit-level semantics to decompose).
type NotYetDecomposableError struct {
	Mnemonic string
	Category isa.Category
}

func (e *NotYetDecomposableError) Error() string {
	return fmt.Sprintf("decompose: %s (%s) has no constraint decomposition", e.Mnemonic, e.Category)
}

// BuildInstruction is the single entry point C5's emitter (and the "build"
// CLI command) drives: it looks up mnemonic's descriptor and routes to the
// per-category generator by its semantics hint.
func BuildInstruction(mnemonic string) (DAG, error) {
	d, ok := isa.ByMnemonic(mnemonic)
	if !ok {
		return DAG{}, fmt.Errorf("decompose: unknown mnemonic %q", mnemonic)
	}

	switch d.Category {
	case isa.Arithmetic:
		return BuildArithmetic(d.Hint)
	case isa.Bitwise:
		return BuildBitwise(d.Hint)
	case isa.Comparison:
		return BuildComparison(d.Hint)
	case isa.Control:
		return BuildControl(d.Hint)
	case isa.Memory:
		return BuildMemory(d.Hint)
	default:
		return DAG{}, &NotYetDecomposableError{Mnemonic: mnemonic, Category: d.Category}
	}
}
