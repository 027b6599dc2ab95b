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

// Mux builds a k-bit selector tree over 2^k single-bit data inputs:
// o = data[sel] where sel is the binary value of sel[0..k) (sel[0] least
// significant). The tree is built as a binary cascade of 2-to-1 muxes,
// each stage introducing internal wires under internalRoot except the
// final stage, which writes directly to o. Because the wire count doubles
// per stage, callers should keep k small (1-3) to stay within the
// per-component character budget; larger selections are the decomposer's
// job to split across nibble-sized calls, per §4.4.
func Mux(name string, data []term.Var, sel []term.Var, o term.Var, internalRoot string) (component.Component, error) {
	k := len(sel)
	if len(data) != 1<<uint(k) {
		return component.Component{}, fmt.Errorf("mux: expected %d data inputs for %d select bits, got %d", 1<<uint(k), k, len(data))
	}

	if k == 0 {
		return component.Component{}, fmt.Errorf("mux: at least one select bit required")
	}

	bld := term.NewBuilder(0)

	var (
		constraints []term.Constraint
		internal    []term.Var
	)

	cur := data

	for level := 0; level < k; level++ {
		next := make([]term.Var, len(cur)/2)

		for i := 0; i < len(next); i++ {
			d0, d1 := cur[2*i], cur[2*i+1]
			s := sel[level]

			notSel, err := bld.Not(term.NewVarRef(s))
			if err != nil {
				return component.Component{}, fmt.Errorf("mux: %w", err)
			}

			left, err := bld.And(notSel, term.NewVarRef(d0))
			if err != nil {
				return component.Component{}, fmt.Errorf("mux: %w", err)
			}

			right, err := bld.And(term.NewVarRef(s), term.NewVarRef(d1))
			if err != nil {
				return component.Component{}, fmt.Errorf("mux: %w", err)
			}

			selected, err := bld.Or(left, right)
			if err != nil {
				return component.Component{}, fmt.Errorf("mux: %w", err)
			}

			var outVar term.Var

			if level == k-1 {
				outVar = o
			} else {
				outVar, err = term.NewVar(internalRoot, level*8+i)
				if err != nil {
					return component.Component{}, err
				}

				internal = append(internal, outVar)
			}

			constraints = append(constraints, term.Assign{Out: outVar, Term: selected})
			next[i] = outVar
		}

		cur = next
	}

	inputs := make([]term.Var, 0, len(data)+len(sel))
	inputs = append(inputs, data...)
	inputs = append(inputs, sel...)

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      inputs,
		Outputs:     []term.Var{o},
		Internal:    internal,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("mux: %w", err)
	}

	return comp, nil
}
