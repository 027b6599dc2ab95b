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

// ShifterStage builds one stage of a barrel shifter over a single nibble:
// r[i] = amt ? in[i] : x[i], for i in [offset, offset+4). A full 32-bit
// barrel shift would be log2(32) = 5 such stages, one component per
// nibble per stage, with "in" carrying the bits that shift into this
// nibble from a neighbour at that stage's power-of-two distance. The
// decomposer builds no such network: SHL/SHR return
// ErrNotYetDecomposable, and ShifterStage is used only as a nibble-wide
// 2-to-1 mux for JZ/JNZ's next-PC selection. Each stage is nibble-sized,
// rather than the full x[0..32]/amt[0..5] barrel shifter described in
// §4.3 as one component, to stay under the character budget; see
// DESIGN.md.
func ShifterStage(name string, xRoot, inRoot, rRoot string, offset int, amt term.Var) (component.Component, error) {
	bld := term.NewBuilder(0)

	var (
		constraints []term.Constraint
		inputs      []term.Var
		outputs     []term.Var
	)

	inputs = append(inputs, amt)

	notAmt, err := bld.Not(term.NewVarRef(amt))
	if err != nil {
		return component.Component{}, fmt.Errorf("shifter: %w", err)
	}

	for i := 0; i < 4; i++ {
		bit := offset + i

		xv, err := term.NewVar(xRoot, bit)
		if err != nil {
			return component.Component{}, err
		}

		iv, err := term.NewVar(inRoot, bit)
		if err != nil {
			return component.Component{}, err
		}

		rv, err := term.NewVar(rRoot, bit)
		if err != nil {
			return component.Component{}, err
		}

		inputs = append(inputs, xv, iv)
		outputs = append(outputs, rv)

		keep, err := bld.And(notAmt, term.NewVarRef(xv))
		if err != nil {
			return component.Component{}, fmt.Errorf("shifter: %w", err)
		}

		shifted, err := bld.And(term.NewVarRef(amt), term.NewVarRef(iv))
		if err != nil {
			return component.Component{}, fmt.Errorf("shifter: %w", err)
		}

		selected, err := bld.Or(keep, shifted)
		if err != nil {
			return component.Component{}, fmt.Errorf("shifter: %w", err)
		}

		constraints = append(constraints, term.Assign{Out: rv, Term: selected})
	}

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      inputs,
		Outputs:     outputs,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("shifter: %w", err)
	}

	return comp, nil
}
