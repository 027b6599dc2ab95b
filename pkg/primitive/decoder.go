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

// Decoder builds a k-bit one-hot decoder: in[0..k) -> out[0..2^k), where
// out[j] = 1 iff the binary value of in equals j (in[0] least
// significant). Used by the memory address path (§4.4.5) to select which
// of several address-range components is active.
func Decoder(name string, in []term.Var, out []term.Var) (component.Component, error) {
	k := len(in)
	if len(out) != 1<<uint(k) {
		return component.Component{}, fmt.Errorf("decoder: expected %d outputs for %d input bits, got %d", 1<<uint(k), k, len(out))
	}

	bld := term.NewBuilder(0)

	var constraints []term.Constraint

	for j := 0; j < len(out); j++ {
		var acc term.Term

		for i := 0; i < k; i++ {
			bitSet := (j>>uint(i))&1 == 1

			var lit term.Term
			if bitSet {
				lit = term.NewVarRef(in[i])
			} else {
				notv, err := bld.Not(term.NewVarRef(in[i]))
				if err != nil {
					return component.Component{}, fmt.Errorf("decoder: %w", err)
				}

				lit = notv
			}

			if acc == nil {
				acc = lit
				continue
			}

			next, err := bld.And(acc, lit)
			if err != nil {
				return component.Component{}, fmt.Errorf("decoder: %w", err)
			}

			acc = next
		}

		constraints = append(constraints, term.Assign{Out: out[j], Term: acc})
	}

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      in,
		Outputs:     out,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("decoder: %w", err)
	}

	return comp, nil
}
