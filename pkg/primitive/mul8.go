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
package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/term"
)

// Mul builds a shift-and-add multiplier: p[0..2*width) = a[0..width) *
// b[0..width), by summing width partial-product rows (pp[i][j] = a[j] &
// b[i]) with a ripple-carry accumulator expressed directly as nested
// terms rather than named internal wires, since the accumulator only
// exists to produce the final product bits. The character budget bites
// at small widths already (the accumulator term for the high product
// bits nests one AND/XOR/OR per row); callers above width 3-4 should
// expect TermTooLongError. The ISA's only MUL instruction is 32-bit and
// resolves to ErrNotYetDecomposable without calling Mul (see DESIGN.md).
func Mul(name, aRoot, bRoot, pRoot string, width int) (component.Component, error) {
	if width <= 0 {
		return component.Component{}, fmt.Errorf("mul: width must be positive, got %d", width)
	}

	bld := term.NewBuilder(0)
	width2 := width * 2

	a := make([]term.Var, width)
	b := make([]term.Var, width)
	p := make([]term.Var, width2)

	for i := 0; i < width; i++ {
		av, err := term.NewVar(aRoot, i)
		if err != nil {
			return component.Component{}, err
		}

		bv, err := term.NewVar(bRoot, i)
		if err != nil {
			return component.Component{}, err
		}

		a[i], b[i] = av, bv
	}

	for k := 0; k < width2; k++ {
		pv, err := term.NewVar(pRoot, k)
		if err != nil {
			return component.Component{}, err
		}

		p[k] = pv
	}

	acc := make([]term.Term, width2)

	for i := 0; i < width; i++ {
		var carry term.Term

		for k := i; k < width2; k++ {
			var rowBit term.Term

			j := k - i
			if j < width {
				pp, err := bld.And(term.NewVarRef(a[j]), term.NewVarRef(b[i]))
				if err != nil {
					return component.Component{}, fmt.Errorf("mul: %w", err)
				}

				rowBit = pp
			}

			sum, cout, err := fullAdd(bld, acc[k], rowBit, carry)
			if err != nil {
				return component.Component{}, fmt.Errorf("mul: %w", err)
			}

			acc[k] = sum
			carry = cout
		}
	}

	constraints := make([]term.Constraint, width2)

	for k := 0; k < width2; k++ {
		t := acc[k]
		if t == nil {
			t = term.Lit(false)
		}

		constraints[k] = term.Assign{Out: p[k], Term: t}
	}

	inputs := make([]term.Var, 0, width*2)
	inputs = append(inputs, a...)
	inputs = append(inputs, b...)

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      inputs,
		Outputs:     p,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("mul: %w", err)
	}

	return comp, nil
}

// Mul8 is the §4.3 entry for 8-bit multiplication: Mul(..., width=8). In
// practice its 16-bit product's high-order accumulator terms exceed the
// per-component character budget, so callers should treat a
// TermTooLongError from Mul8 as equivalent to ErrNotYetDecomposable; the
// ISA's MUL opcode resolves this way today (DESIGN.md, Open Questions).
func Mul8(name, aRoot, bRoot, pRoot string) (component.Component, error) {
	return Mul(name, aRoot, bRoot, pRoot, 8)
}

// fullAdd returns sum = x ^ y ^ cin and cout = majority(x, y, cin), treating
// any nil operand as the literal 0.
func fullAdd(bld *term.Builder, x, y, cin term.Term) (sum, cout term.Term, err error) {
	if x == nil {
		x = term.Lit(false)
	}

	if y == nil {
		y = term.Lit(false)
	}

	if cin == nil {
		cin = term.Lit(false)
	}

	xy, err := bld.Xor(x, y)
	if err != nil {
		return nil, nil, err
	}

	sum, err = bld.Xor(xy, cin)
	if err != nil {
		return nil, nil, err
	}

	xAndY, err := bld.And(x, y)
	if err != nil {
		return nil, nil, err
	}

	xyAndCin, err := bld.And(xy, cin)
	if err != nil {
		return nil, nil, err
	}

	cout, err = bld.Or(xAndY, xyAndCin)
	if err != nil {
		return nil, nil, err
	}

	return sum, cout, nil
}
