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

// CarryLink builds a trivial identity-with-renaming component: cin_next =
// cout_prev.  Its only purpose is to keep each nibble-adder component
// small by separating the 8 nibbles of a 32-bit addition/subtraction into
// independently solvable files connected by shared-identifier edges.
func CarryLink(name string, coutPrev, cinNext term.Var) (component.Component, error) {
	comp := component.Component{
		Name:    name,
		Kind:    component.Linker,
		Inputs:  []term.Var{coutPrev},
		Outputs: []term.Var{cinNext},
		Constraints: []term.Constraint{
			term.Assign{Out: cinNext, Term: term.NewVarRef(coutPrev)},
		},
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("carry_link: %w", err)
	}

	return comp, nil
}
