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

// Roots bundles the identifier roots a nibble-level primitive reads and
// writes under.  Offset is the nibble's bit offset (nibble*4) within the
// 32-bit word being decomposed.
type Roots struct {
	A, B, S, C string
	Offset     int
}

// NibbleAdder builds a 4-bit ripple-carry adder: s[0..4] = a[0..4] +
// b[0..4] (+ cin), ripple-carried internally.  cin is nil for the
// lowest-order nibble of a chain (§4.3: addition always decomposes into 8
// nibbles + 7 carry-link components, never 2 halves). The final carry bit
// is returned separately as cout so the caller (the decomposer) can route
// it through a carry_link component into the next nibble, or discard it
// for the most-significant nibble.
func NibbleAdder(name string, r Roots, cin *term.Var) (comp component.Component, cout term.Var, err error) {
	b := term.NewBuilder(0)

	var (
		constraints []term.Constraint
		inputs      []term.Var
		internal    []term.Var
		outputs     []term.Var
		prevCarry   term.Term
	)

	if cin != nil {
		inputs = append(inputs, *cin)
	}

	for i := 0; i < 4; i++ {
		bit := r.Offset + i

		av, err := term.NewVar(r.A, bit)
		if err != nil {
			return component.Component{}, term.Var{}, err
		}

		bv, err := term.NewVar(r.B, bit)
		if err != nil {
			return component.Component{}, term.Var{}, err
		}

		sv, err := term.NewVar(r.S, bit)
		if err != nil {
			return component.Component{}, term.Var{}, err
		}

		cv, err := term.NewVar(r.C, bit)
		if err != nil {
			return component.Component{}, term.Var{}, err
		}

		inputs = append(inputs, av, bv)
		outputs = append(outputs, sv)

		aXorB, err := b.Xor(term.NewVarRef(av), term.NewVarRef(bv))
		if err != nil {
			return component.Component{}, term.Var{}, fmt.Errorf("nibble_adder: %w", err)
		}

		aAndB, err := b.And(term.NewVarRef(av), term.NewVarRef(bv))
		if err != nil {
			return component.Component{}, term.Var{}, fmt.Errorf("nibble_adder: %w", err)
		}

		var sumTerm, carryTerm term.Term

		if i == 0 && cin == nil {
			sumTerm = aXorB
			carryTerm = aAndB
		} else {
			var cinTerm term.Term
			if i == 0 {
				cinTerm = term.NewVarRef(*cin)
			} else {
				cinTerm = prevCarry
			}

			sumTerm, err = b.Xor(aXorB, cinTerm)
			if err != nil {
				return component.Component{}, term.Var{}, fmt.Errorf("nibble_adder: %w", err)
			}

			aXorBAndCin, err := b.And(aXorB, cinTerm)
			if err != nil {
				return component.Component{}, term.Var{}, fmt.Errorf("nibble_adder: %w", err)
			}

			carryTerm, err = b.Or(aAndB, aXorBAndCin)
			if err != nil {
				return component.Component{}, term.Var{}, fmt.Errorf("nibble_adder: %w", err)
			}
		}

		constraints = append(constraints,
			term.Assign{Out: sv, Term: sumTerm},
			term.Assign{Out: cv, Term: carryTerm},
		)

		if i < 3 {
			internal = append(internal, cv)
		} else {
			outputs = append(outputs, cv)
			cout = cv
		}

		prevCarry = term.NewVarRef(cv)
	}

	comp = component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      inputs,
		Outputs:     outputs,
		Internal:    internal,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, term.Var{}, fmt.Errorf("nibble_adder: %w", err)
	}

	return comp, cout, nil
}
