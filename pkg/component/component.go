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

// Package component defines the atomic unit shared by C3, C4, C5 and C7:
// a single-file constraint component, its contract-bearing metadata, and
// the invariants §3 places on it (serialized-body budget, single-driver
// outputs, internal variables occurring on exactly one lhs).
package component

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/term"
)

// Kind classifies the role a component plays in an instruction DAG.
type Kind int

const (
	// Primitive is a component generated directly by the primitive
	// library (C3), e.g. a nibble adder.
	Primitive Kind = iota
	// Linker is a trivial component that renames a producer's output
	// bit to a consumer's input bit.
	Linker
	// Aggregator combines several producers' outputs into one signal,
	// e.g. the zero-flag aggregator.
	Aggregator
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Linker:
		return "linker"
	case Aggregator:
		return "aggregator"
	default:
		return "unknown"
	}
}

// MaxBodyBytes is the hard serialized-body budget enforced on every
// component (§3: "Serialized body ≤ 700 characters (headroom against 800
// hard limit)").
const MaxBodyBytes = 700

// Component is the tuple described in §3: (name, kind, input vars, output
// vars, internal vars, constraint list, dependencies).
type Component struct {
	Name         string
	Kind         Kind
	Inputs       []term.Var
	Outputs      []term.Var
	Internal     []term.Var
	Constraints  []term.Constraint
	Dependencies []string
}

// Body returns the serialized conjunction of this component's
// constraints, enforcing the MaxBodyBytes budget.
func (c Component) Body() (string, error) {
	return term.Serialize(c.Constraints, MaxBodyBytes)
}

// Validate checks the component-level invariants from §3 that do not
// require DAG-wide context: internal vars occur on exactly one lhs and at
// least zero rhs positions (i.e. every internal var must be the subject
// of some Assign in this component), and the body fits the budget.
func (c Component) Validate() error {
	if _, err := c.Body(); err != nil {
		return fmt.Errorf("component %q: %w", c.Name, err)
	}

	lhs := make(map[string]int, len(c.Constraints))

	for _, con := range c.Constraints {
		if a, ok := con.(term.Assign); ok {
			lhs[a.Out.String()]++
		}
	}

	for _, v := range c.Internal {
		if lhs[v.String()] == 0 {
			return fmt.Errorf("component %q: internal variable %q is never assigned", c.Name, v)
		}

		if lhs[v.String()] > 1 {
			return fmt.Errorf("component %q: internal variable %q assigned more than once", c.Name, v)
		}
	}

	return nil
}

// AllVars returns every variable this component references, across
// inputs, outputs, internal vars and the constraint bodies, deduplicated
// in first-occurrence order.
func (c Component) AllVars() []term.Var {
	var raw []term.Var

	raw = append(raw, c.Inputs...)
	raw = append(raw, c.Outputs...)
	raw = append(raw, c.Internal...)
	raw = append(raw, term.ConstraintVars(c.Constraints)...)

	seen := make(map[string]bool, len(raw))
	out := make([]term.Var, 0, len(raw))

	for _, v := range raw {
		key := v.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}

	return out
}
