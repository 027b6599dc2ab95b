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

// BuildArithmetic dispatches to the per-hint generator for an Arithmetic
// category instruction.
func BuildArithmetic(hint isa.SemanticsHint) (DAG, error) {
	switch hint {
	case isa.HintAdd32:
		return BuildAdd32()
	case isa.HintSub32:
		return BuildSub32()
	case isa.HintMul32:
		return BuildMul32()
	case isa.HintDiv32:
		return BuildDiv32()
	case isa.HintMod32:
		return BuildMod32()
	default:
		return DAG{}, fmt.Errorf("decompose: %s is not an arithmetic hint", hint)
	}
}

// adderChain wires 8 nibble_adder components into a 32-bit ripple-carry
// adder, connected by 7 carry_link components (§4.3: "always decompose
// into 8 nibbles + 7 carry-link components, not 2 halves"). bRoot names
// the second operand as fed to the adder (the raw "b" root for addition,
// the complemented "w" root for subtraction). cin0, if non-nil, is an
// already-bound carry-in for the lowest nibble (subtraction's "+1").
// It returns the components in emission order, the 32 sum-bit vars and
// the final nibble's carry-out var.
func adderChain(mnemonic, bRoot string, cin0 *term.Var) ([]component.Component, []term.Var, term.Var, error) {
	var (
		comps []component.Component
		sBits []term.Var
		cin   = cin0
	)

	for i := 0; i < 8; i++ {
		roots := primitive.Roots{A: rootA, B: bRoot, S: rootS, C: rootCarry, Offset: i * 4}

		adder, cout, err := primitive.NibbleAdder(compName(mnemonic, "nibble", i), roots, cin)
		if err != nil {
			return nil, nil, term.Var{}, err
		}

		comps = append(comps, adder)

		for j := 0; j < 4; j++ {
			sv, err := term.NewVar(rootS, i*4+j)
			if err != nil {
				return nil, nil, term.Var{}, err
			}

			sBits = append(sBits, sv)
		}

		if i == 7 {
			return comps, sBits, cout, nil
		}

		linkOut, err := term.NewVar(rootLink, i+1)
		if err != nil {
			return nil, nil, term.Var{}, err
		}

		link, err := primitive.CarryLink(linkName(mnemonic, i, i+1), cout, linkOut)
		if err != nil {
			return nil, nil, term.Var{}, err
		}

		comps = append(comps, link)
		cin = &linkOut
	}

	return comps, sBits, term.Var{}, fmt.Errorf("decompose: unreachable")
}

// arithmeticFlags builds the zero/negative/carry/overflow flag components
// shared by add and subtract: zero is an 8-way zero_nibble fan-in through
// zero_aggregator over the sum bits; negative and carry/borrow are
// identity links exposing the sign bit and the (possibly complemented)
// final carry under the canonical flag root; overflow is the signed
// overflow predicate (operands agree in sign, result disagrees).
func arithmeticFlags(mnemonic string, aTop, bTop, sTop, carryOut term.Var, borrow bool) ([]component.Component, []term.Var, error) {
	var comps []component.Component

	zBits := make([]term.Var, 8)

	for i := 0; i < 8; i++ {
		zv, err := term.NewVar(rootZero, i)
		if err != nil {
			return nil, nil, err
		}

		zc, err := primitive.ZeroNibble(compName(mnemonic, "zero", i), rootS, i*4, zv)
		if err != nil {
			return nil, nil, err
		}

		comps = append(comps, zc)
		zBits[i] = zv
	}

	fZero, err := term.NewVar(rootFlag, flagZero)
	if err != nil {
		return nil, nil, err
	}

	agg, err := primitive.ZeroAggregator(compName(mnemonic, "zero_agg", 0), zBits, fZero)
	if err != nil {
		return nil, nil, err
	}

	comps = append(comps, agg)

	fNeg, err := term.NewVar(rootFlag, flagNegative)
	if err != nil {
		return nil, nil, err
	}

	negLink, err := primitive.CarryLink(compName(mnemonic, "flagn", 0), sTop, fNeg)
	if err != nil {
		return nil, nil, err
	}

	comps = append(comps, negLink)

	fCarry, err := term.NewVar(rootFlag, flagCarry)
	if err != nil {
		return nil, nil, err
	}

	var carryComp component.Component

	if borrow {
		carryComp, err = notComponent(compName(mnemonic, "borrow", 0), carryOut, fCarry)
	} else {
		carryComp, err = primitive.CarryLink(compName(mnemonic, "flagc", 0), carryOut, fCarry)
	}

	if err != nil {
		return nil, nil, err
	}

	comps = append(comps, carryComp)

	fOverflow, err := term.NewVar(rootFlag, flagOverflow)
	if err != nil {
		return nil, nil, err
	}

	ovComp, err := overflowComponent(compName(mnemonic, "overflow", 0), aTop, bTop, sTop, fOverflow)
	if err != nil {
		return nil, nil, err
	}

	comps = append(comps, ovComp)

	return comps, []term.Var{fZero, fNeg, fCarry, fOverflow}, nil
}

// notComponent is a one-bit complement, used for subtraction's borrow =
// NOT(carry) (§4.3).
func notComponent(name string, in, out term.Var) (component.Component, error) {
	bld := term.NewBuilder(0)

	t, err := bld.Not(term.NewVarRef(in))
	if err != nil {
		return component.Component{}, fmt.Errorf("%s: %w", name, err)
	}

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      []term.Var{in},
		Outputs:     []term.Var{out},
		Constraints: []term.Constraint{term.Assign{Out: out, Term: t}},
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, err
	}

	return comp, nil
}

// overflowComponent computes the signed overflow predicate from the top
// bit of each adder input and the top bit of the result: overflow =
// (aTop == bTop) && (sTop != aTop). §8's wraparound note defines overflow
// this way for ADD; subtraction reuses it against the complemented
// operand actually fed to the adder, which is algebraically the same
// predicate.
func overflowComponent(name string, aTop, bTop, sTop, out term.Var) (component.Component, error) {
	bld := term.NewBuilder(0)

	abXor, err := bld.Xor(term.NewVarRef(aTop), term.NewVarRef(bTop))
	if err != nil {
		return component.Component{}, fmt.Errorf("%s: %w", name, err)
	}

	sameSign, err := bld.Not(abXor)
	if err != nil {
		return component.Component{}, fmt.Errorf("%s: %w", name, err)
	}

	changedSign, err := bld.Xor(term.NewVarRef(sTop), term.NewVarRef(aTop))
	if err != nil {
		return component.Component{}, fmt.Errorf("%s: %w", name, err)
	}

	overflow, err := bld.And(sameSign, changedSign)
	if err != nil {
		return component.Component{}, fmt.Errorf("%s: %w", name, err)
	}

	comp := component.Component{
		Name:        name,
		Kind:        component.Aggregator,
		Inputs:      []term.Var{aTop, bTop, sTop},
		Outputs:     []term.Var{out},
		Constraints: []term.Constraint{term.Assign{Out: out, Term: overflow}},
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, err
	}

	return comp, nil
}

// BuildAdd32 decomposes ADD: s = a + b mod 2^32, flags per
// arithmeticFlags.
func BuildAdd32() (DAG, error) {
	comps, sBits, cout, err := adderChain("add", rootB, nil)
	if err != nil {
		return DAG{}, err
	}

	aTop, err := term.NewVar(rootA, 31)
	if err != nil {
		return DAG{}, err
	}

	bTop, err := term.NewVar(rootB, 31)
	if err != nil {
		return DAG{}, err
	}

	flagComps, flagVars, err := arithmeticFlags("add", aTop, bTop, sBits[31], cout, false)
	if err != nil {
		return DAG{}, err
	}

	comps = append(comps, flagComps...)

	finalOutputs := append(append([]term.Var{}, sBits...), flagVars...)

	return assignDAG("add", comps, finalOutputs)
}

// BuildSub32 decomposes SUB: s = a + NOT(b) + 1 mod 2^32 (§4.3), borrow =
// NOT(final carry).
func BuildSub32() (DAG, error) {
	var comps []component.Component

	for i := 0; i < 8; i++ {
		notb, err := primitive.NibbleNot(compName("sub", "notb", i), rootB, rootNotB, i*4)
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
		Name:        compName("sub", "one", 0),
		Kind:        component.Primitive,
		Outputs:     []term.Var{one},
		Constraints: []term.Constraint{term.Bind{V: one, Bit: 1}},
	}

	if err := oneComp.Validate(); err != nil {
		return DAG{}, err
	}

	comps = append(comps, oneComp)

	adderComps, sBits, cout, err := adderChain("sub", rootNotB, &one)
	if err != nil {
		return DAG{}, err
	}

	comps = append(comps, adderComps...)

	aTop, err := term.NewVar(rootA, 31)
	if err != nil {
		return DAG{}, err
	}

	notbTop, err := term.NewVar(rootNotB, 31)
	if err != nil {
		return DAG{}, err
	}

	flagComps, flagVars, err := arithmeticFlags("sub", aTop, notbTop, sBits[31], cout, true)
	if err != nil {
		return DAG{}, err
	}

	comps = append(comps, flagComps...)

	finalOutputs := append(append([]term.Var{}, sBits...), flagVars...)

	return assignDAG("sub", comps, finalOutputs)
}

// BuildMul32 reports that full 32-bit multiplication has no gate-level
// decomposition in this system (§4.3/§9): primitive.Mul's partial-product
// tree fits the character budget only at small operand widths; at width 8
// (primitive.Mul8) it already exceeds it.
func BuildMul32() (DAG, error) {
	return DAG{}, &primitive.ErrNotYetDecomposable{Operation: "mul32", Width: 32}
}

// BuildDiv32 reports that 32-bit division has no gate-level decomposition
// (§4.3/§9): primitive.DivMod's lookup table grows as 2^(2*width) and fits
// the character budget only at widths of about 2-3; no width-8 division
// is decomposed either.
func BuildDiv32() (DAG, error) {
	return DAG{}, &primitive.ErrNotYetDecomposable{Operation: "div32", Width: 32}
}

// BuildMod32 reports the same limitation as BuildDiv32; modulo shares
// DivMod's lookup table.
func BuildMod32() (DAG, error) {
	return DAG{}, &primitive.ErrNotYetDecomposable{Operation: "mod32", Width: 32}
}
