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

// BuildComparison dispatches to the per-hint generator for a Comparison
// category instruction. All six comparisons are unsigned: §4.3 names a
// signed tie-break (XOR the sign bit with overflow) for signed variants,
// but the ISA descriptor table carries no signed/unsigned distinction, so
// this decomposer treats every comparison as unsigned, matching ADD/SUB's
// own wraparound modulus. See the design notes for the open-question
// resolution.
func BuildComparison(hint isa.SemanticsHint) (DAG, error) {
	switch hint {
	case isa.HintEq32:
		return buildComparison("eq", func(bld *term.Builder, zero, borrow term.Term) (term.Term, error) {
			return zero, nil
		})
	case isa.HintNeq32:
		return buildComparison("neq", func(bld *term.Builder, zero, borrow term.Term) (term.Term, error) {
			return bld.Not(zero)
		})
	case isa.HintLt32:
		return buildComparison("lt", func(bld *term.Builder, zero, borrow term.Term) (term.Term, error) {
			return borrow, nil
		})
	case isa.HintGte32:
		return buildComparison("gte", func(bld *term.Builder, zero, borrow term.Term) (term.Term, error) {
			return bld.Not(borrow)
		})
	case isa.HintGt32:
		return buildComparison("gt", func(bld *term.Builder, zero, borrow term.Term) (term.Term, error) {
			notBorrow, err := bld.Not(borrow)
			if err != nil {
				return nil, err
			}

			notZero, err := bld.Not(zero)
			if err != nil {
				return nil, err
			}

			return bld.And(notBorrow, notZero)
		})
	case isa.HintLte32:
		return buildComparison("lte", func(bld *term.Builder, zero, borrow term.Term) (term.Term, error) {
			return bld.Or(borrow, zero)
		})
	default:
		return DAG{}, fmt.Errorf("decompose: %s is not a comparison hint", hint)
	}
}

// buildComparison decomposes a comparison as A-B via the same
// complement-and-add subtractor SUB uses, then combines the subtractor's
// zero-aggregator output and borrow bit through formula into the single
// result bit r0 (§4.3: "reuses subtractor output plus a zero-aggregator
// and the borrow bit"). The dest register's remaining 31 bits are zeroed
// by the executor on writeback; no constraint work is needed to prove a
// literal 0, so no gate-level component represents them.
func buildComparison(mnemonic string, formula func(bld *term.Builder, zero, borrow term.Term) (term.Term, error)) (DAG, error) {
	var comps []component.Component

	for i := 0; i < 8; i++ {
		notb, err := primitive.NibbleNot(compName(mnemonic, "notb", i), rootB, rootNotB, i*4)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, notb)
	}

	one, err := term.NewVar(rootScrat, 0)
	if err != nil {
		return DAG{}, err
	}

	oneComp := component.Component{
		Name:        compName(mnemonic, "one", 0),
		Kind:        component.Primitive,
		Outputs:     []term.Var{one},
		Constraints: []term.Constraint{term.Bind{V: one, Bit: 1}},
	}

	if err := oneComp.Validate(); err != nil {
		return DAG{}, err
	}

	comps = append(comps, oneComp)

	adderComps, _, cout, err := adderChain(mnemonic, rootNotB, &one)
	if err != nil {
		return DAG{}, err
	}

	comps = append(comps, adderComps...)

	zBits := make([]term.Var, 8)

	for i := 0; i < 8; i++ {
		zv, err := term.NewVar(rootZero, i)
		if err != nil {
			return DAG{}, err
		}

		zc, err := primitive.ZeroNibble(compName(mnemonic, "zero", i), rootS, i*4, zv)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, zc)
		zBits[i] = zv
	}

	zeroVar, err := term.NewVar(rootFlag, flagZero)
	if err != nil {
		return DAG{}, err
	}

	agg, err := primitive.ZeroAggregator(compName(mnemonic, "zero_agg", 0), zBits, zeroVar)
	if err != nil {
		return DAG{}, err
	}

	comps = append(comps, agg)

	borrowVar, err := term.NewVar(rootFlag, flagCarry)
	if err != nil {
		return DAG{}, err
	}

	borrowComp, err := notComponent(compName(mnemonic, "borrow", 0), cout, borrowVar)
	if err != nil {
		return DAG{}, err
	}

	comps = append(comps, borrowComp)

	bld := term.NewBuilder(0)

	resultTerm, err := formula(bld, term.NewVarRef(zeroVar), term.NewVarRef(borrowVar))
	if err != nil {
		return DAG{}, fmt.Errorf("%s: %w", mnemonic, err)
	}

	resultVar, err := term.NewVar(rootResult, 0)
	if err != nil {
		return DAG{}, err
	}

	resultComp := component.Component{
		Name:        compName(mnemonic, "result", 0),
		Kind:        component.Aggregator,
		Inputs:      []term.Var{zeroVar, borrowVar},
		Outputs:     []term.Var{resultVar},
		Constraints: []term.Constraint{term.Assign{Out: resultVar, Term: resultTerm}},
	}

	if err := resultComp.Validate(); err != nil {
		return DAG{}, err
	}

	comps = append(comps, resultComp)

	return assignDAG(mnemonic, comps, []term.Var{resultVar})
}
