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

// NibbleLink is carry_link generalized to a whole nibble: dst[0..4) =
// src[0..4). The decomposer (C4) uses it wherever a 4-bit quantity must
// cross a component boundary unchanged, e.g. routing an operand register
// into an instruction's working namespace, or a stack slot into a
// destination register, without repeating the source component's body.
func NibbleLink(name, srcRoot, dstRoot string, offset int) (component.Component, error) {
	var (
		constraints []term.Constraint
		inputs      []term.Var
		outputs     []term.Var
	)

	for i := 0; i < 4; i++ {
		bit := offset + i

		sv, err := term.NewVar(srcRoot, bit)
		if err != nil {
			return component.Component{}, err
		}

		dv, err := term.NewVar(dstRoot, bit)
		if err != nil {
			return component.Component{}, err
		}

		inputs = append(inputs, sv)
		outputs = append(outputs, dv)
		constraints = append(constraints, term.Assign{Out: dv, Term: term.NewVarRef(sv)})
	}

	comp := component.Component{
		Name:        name,
		Kind:        component.Linker,
		Inputs:      inputs,
		Outputs:     outputs,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("nibble_link: %w", err)
	}

	return comp, nil
}
