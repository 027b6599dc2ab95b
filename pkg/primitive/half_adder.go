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

// HalfAdder builds the single-bit half-adder primitive: s = a XOR b,
// c = a AND b.
func HalfAdder(name string, a, b, s, c term.Var) (component.Component, error) {
	comp := component.Component{
		Name:    name,
		Kind:    component.Primitive,
		Inputs:  []term.Var{a, b},
		Outputs: []term.Var{s, c},
		Constraints: []term.Constraint{
			term.Assign{Out: s, Term: term.NewXor(term.NewVarRef(a), term.NewVarRef(b))},
			term.Assign{Out: c, Term: term.NewAnd(term.NewVarRef(a), term.NewVarRef(b))},
		},
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("half_adder: %w", err)
	}

	return comp, nil
}
