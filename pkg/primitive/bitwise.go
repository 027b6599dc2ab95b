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

// BitwiseOp selects the elementwise operator a NibbleBitwise component
// applies.
type BitwiseOp int

const (
	// OpAnd is elementwise AND.
	OpAnd BitwiseOp = iota
	// OpOr is elementwise OR.
	OpOr
	// OpXor is elementwise XOR.
	OpXor
)

// NibbleBitwise builds a 4-bit elementwise AND/OR/XOR component:
// r[0..4] = a[0..4] <op> b[0..4].
func NibbleBitwise(name string, op BitwiseOp, r Roots) (component.Component, error) {
	bld := term.NewBuilder(0)

	var (
		constraints []term.Constraint
		inputs      []term.Var
		outputs     []term.Var
	)

	for i := 0; i < 4; i++ {
		bit := r.Offset + i

		av, err := term.NewVar(r.A, bit)
		if err != nil {
			return component.Component{}, err
		}

		bv, err := term.NewVar(r.B, bit)
		if err != nil {
			return component.Component{}, err
		}

		rv, err := term.NewVar(r.S, bit)
		if err != nil {
			return component.Component{}, err
		}

		inputs = append(inputs, av, bv)
		outputs = append(outputs, rv)

		var (
			t   term.Term
			err2 error
		)

		switch op {
		case OpAnd:
			t, err2 = bld.And(term.NewVarRef(av), term.NewVarRef(bv))
		case OpOr:
			t, err2 = bld.Or(term.NewVarRef(av), term.NewVarRef(bv))
		case OpXor:
			t, err2 = bld.Xor(term.NewVarRef(av), term.NewVarRef(bv))
		default:
			return component.Component{}, fmt.Errorf("nibble_bitwise: unknown op %d", op)
		}

		if err2 != nil {
			return component.Component{}, fmt.Errorf("nibble_bitwise: %w", err2)
		}

		constraints = append(constraints, term.Assign{Out: rv, Term: t})
	}

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      inputs,
		Outputs:     outputs,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("nibble_bitwise: %w", err)
	}

	return comp, nil
}

// NibbleNot builds a 4-bit elementwise complement: r[0..4] = !a[0..4].
func NibbleNot(name string, aRoot, rRoot string, offset int) (component.Component, error) {
	bld := term.NewBuilder(0)

	var (
		constraints []term.Constraint
		inputs      []term.Var
		outputs     []term.Var
	)

	for i := 0; i < 4; i++ {
		bit := offset + i

		av, err := term.NewVar(aRoot, bit)
		if err != nil {
			return component.Component{}, err
		}

		rv, err := term.NewVar(rRoot, bit)
		if err != nil {
			return component.Component{}, err
		}

		notTerm, err := bld.Not(term.NewVarRef(av))
		if err != nil {
			return component.Component{}, fmt.Errorf("nibble_not: %w", err)
		}

		inputs = append(inputs, av)
		outputs = append(outputs, rv)
		constraints = append(constraints, term.Assign{Out: rv, Term: notTerm})
	}

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      inputs,
		Outputs:     outputs,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("nibble_not: %w", err)
	}

	return comp, nil
}
