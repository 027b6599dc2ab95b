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

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
	"github.com/taufold/zkvm/pkg/term"
)

// BuildBitwise dispatches to the per-hint generator for a Bitwise
// category instruction.
func BuildBitwise(hint isa.SemanticsHint) (DAG, error) {
	switch hint {
	case isa.HintAnd32:
		return buildBitwise32("and", primitive.OpAnd)
	case isa.HintOr32:
		return buildBitwise32("or", primitive.OpOr)
	case isa.HintXor32:
		return buildBitwise32("xor", primitive.OpXor)
	case isa.HintNot32:
		return buildNot32()
	case isa.HintShl32:
		return DAG{}, &primitive.ErrNotYetDecomposable{Operation: "shl32", Width: 32}
	case isa.HintShr32:
		return DAG{}, &primitive.ErrNotYetDecomposable{Operation: "shr32", Width: 32}
	default:
		return DAG{}, fmt.Errorf("decompose: %s is not a bitwise hint", hint)
	}
}

// buildBitwise32 chains 8 independent nibble_bitwise components; unlike
// arithmetic, elementwise AND/OR/XOR have no inter-nibble data dependency
// so no carry_link components are needed.
func buildBitwise32(mnemonic string, op primitive.BitwiseOp) (DAG, error) {
	var (
		comps []component.Component
		rBits []term.Var
	)

	for i := 0; i < 8; i++ {
		roots := primitive.Roots{A: rootA, B: rootB, S: rootS, Offset: i * 4}

		c, err := primitive.NibbleBitwise(compName(mnemonic, "nibble", i), op, roots)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, c)

		for j := 0; j < 4; j++ {
			rv, err := term.NewVar(rootS, i*4+j)
			if err != nil {
				return DAG{}, err
			}

			rBits = append(rBits, rv)
		}
	}

	return assignDAG(mnemonic, comps, rBits)
}

// buildNot32 chains 8 independent nibble_not components.
func buildNot32() (DAG, error) {
	var (
		comps []component.Component
		rBits []term.Var
	)

	for i := 0; i < 8; i++ {
		c, err := primitive.NibbleNot(compName("not", "nibble", i), rootA, rootS, i*4)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, c)

		for j := 0; j < 4; j++ {
			rv, err := term.NewVar(rootS, i*4+j)
			if err != nil {
				return DAG{}, err
			}

			rBits = append(rBits, rv)
		}
	}

	return assignDAG("not", comps, rBits)
}
