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

// ZeroNibble builds nz = 1 iff all four bits x[offset..offset+4) are 0,
// i.e. nz = !(x0 | x1 | x2 | x3).
func ZeroNibble(name, xRoot string, offset int, nz term.Var) (component.Component, error) {
	bld := term.NewBuilder(0)

	x := make([]term.Var, 4)

	for i := 0; i < 4; i++ {
		v, err := term.NewVar(xRoot, offset+i)
		if err != nil {
			return component.Component{}, err
		}

		x[i] = v
	}

	or01, err := bld.Or(term.NewVarRef(x[0]), term.NewVarRef(x[1]))
	if err != nil {
		return component.Component{}, fmt.Errorf("zero_nibble: %w", err)
	}

	or23, err := bld.Or(term.NewVarRef(x[2]), term.NewVarRef(x[3]))
	if err != nil {
		return component.Component{}, fmt.Errorf("zero_nibble: %w", err)
	}

	orAll, err := bld.Or(or01, or23)
	if err != nil {
		return component.Component{}, fmt.Errorf("zero_nibble: %w", err)
	}

	notAll, err := bld.Not(orAll)
	if err != nil {
		return component.Component{}, fmt.Errorf("zero_nibble: %w", err)
	}

	comp := component.Component{
		Name:    name,
		Kind:    component.Primitive,
		Inputs:  x,
		Outputs: []term.Var{nz},
		Constraints: []term.Constraint{
			term.Assign{Out: nz, Term: notAll},
		},
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("zero_nibble: %w", err)
	}

	return comp, nil
}

// ZeroAggregator builds zflag = AND of the given per-nibble zero bits.
// For a 32-bit word decomposed into 8 nibbles, this ANDs 8 nz bits.
func ZeroAggregator(name string, nzBits []term.Var, zflag term.Var) (component.Component, error) {
	if len(nzBits) == 0 {
		return component.Component{}, fmt.Errorf("zero_aggregator: no inputs")
	}

	bld := term.NewBuilder(0)

	acc := term.Term(term.NewVarRef(nzBits[0]))

	for _, v := range nzBits[1:] {
		next, err := bld.And(acc, term.NewVarRef(v))
		if err != nil {
			return component.Component{}, fmt.Errorf("zero_aggregator: %w", err)
		}

		acc = next
	}

	comp := component.Component{
		Name:    name,
		Kind:    component.Aggregator,
		Inputs:  nzBits,
		Outputs: []term.Var{zflag},
		Constraints: []term.Constraint{
			term.Assign{Out: zflag, Term: acc},
		},
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("zero_aggregator: %w", err)
	}

	return comp, nil
}
