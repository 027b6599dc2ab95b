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

// BuildControl dispatches to the per-hint generator for a Control category
// instruction. Every variant produces the same 32 output bits: the next
// program counter, under rootPC. rootTarget ("d") is the instruction's one
// generic address input — the resolved label for JMP/CALL/JZ/JNZ, or the
// popped return address for RET — and rootNextS ("n") is PC+4, computed
// upstream by the executor's own sequential-PC adder and threaded in as a
// plain input, the same way a register operand is threaded in.
func BuildControl(hint isa.SemanticsHint) (DAG, error) {
	switch hint {
	case isa.HintJump:
		return buildPCCopy("jmp")
	case isa.HintCall:
		return buildPCCopy("call")
	case isa.HintReturn:
		return buildPCCopy("ret")
	case isa.HintJumpIfZero:
		return buildConditionalJump("jz", rootNextS, rootTarget)
	case isa.HintJumpIfNotZero:
		return buildConditionalJump("jnz", rootTarget, rootNextS)
	default:
		return DAG{}, fmt.Errorf("decompose: %s is not a control hint", hint)
	}
}

// buildPCCopy wires 8 nibble_link components copying rootTarget straight
// into rootPC, for the unconditional redirections (JMP, CALL, RET).
func buildPCCopy(mnemonic string) (DAG, error) {
	var (
		comps []component.Component
		pBits []term.Var
	)

	for i := 0; i < 8; i++ {
		c, err := primitive.NibbleLink(compName(mnemonic, "pc", i), rootTarget, rootPC, i*4)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, c)

		for j := 0; j < 4; j++ {
			pv, err := term.NewVar(rootPC, i*4+j)
			if err != nil {
				return DAG{}, err
			}

			pBits = append(pBits, pv)
		}
	}

	return assignDAG(mnemonic, comps, pBits)
}

// buildConditionalJump decomposes JZ/JNZ: a zero test on the condition
// register (rootA) selects, per nibble, between xRoot and inRoot via
// primitive.ShifterStage reused as a generic 2-to-1 mux (r = amt ? in : x)
// — JZ and JNZ are the same mux with x/in swapped, since JZ takes the
// target when the register is zero and JNZ takes it when it isn't.
func buildConditionalJump(mnemonic, xRoot, inRoot string) (DAG, error) {
	var comps []component.Component

	zBits := make([]term.Var, 8)

	for i := 0; i < 8; i++ {
		zv, err := term.NewVar(rootZero, i)
		if err != nil {
			return DAG{}, err
		}

		zc, err := primitive.ZeroNibble(compName(mnemonic, "zero", i), rootA, i*4, zv)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, zc)
		zBits[i] = zv
	}

	zflag, err := term.NewVar(rootFlag, flagZero)
	if err != nil {
		return DAG{}, err
	}

	agg, err := primitive.ZeroAggregator(compName(mnemonic, "zero_agg", 0), zBits, zflag)
	if err != nil {
		return DAG{}, err
	}

	comps = append(comps, agg)

	var pBits []term.Var

	for i := 0; i < 8; i++ {
		c, err := primitive.ShifterStage(compName(mnemonic, "mux", i), xRoot, inRoot, rootPC, i*4, zflag)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, c)

		for j := 0; j < 4; j++ {
			pv, err := term.NewVar(rootPC, i*4+j)
			if err != nil {
				return DAG{}, err
			}

			pBits = append(pBits, pv)
		}
	}

	return assignDAG(mnemonic, comps, pBits)
}
