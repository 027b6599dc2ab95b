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
package decompose

import (
	"sort"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// Edge records that Producer's output vars feed Consumer's input vars.
// Shared lists the identifiers both components reference, in Consumer's
// input order.
type Edge struct {
	Producer string
	Consumer string
	Shared   []term.Var
}

// DAG is the decomposer's output for one instruction: the component list
// C3 built, the edges between them, and the contract catalog (C2) wrapping
// each component.
type DAG struct {
	Instruction string
	Components  []component.Component
	Edges       []Edge
	Catalog     *contract.Catalog
}

// assignDAG wires a flat component list into a DAG: it derives edges from
// shared identifiers, rejects two components driving the same identifier,
// wraps each component as a contract, and rejects a guarantee that is
// neither consumed downstream nor named in finalOutputs.
//
// Component order matters only for the order of Edges (grouped by
// consumer, in comps order); an edge always runs from an identifier's
// driving component to each component listing it as an input.
func assignDAG(instruction string, comps []component.Component, finalOutputs []term.Var) (DAG, error) {
	driver := make(map[string]string, 8) // identifier -> driving component name

	for _, c := range comps {
		for _, out := range c.Outputs {
			key := out.String()
			if owner, ok := driver[key]; ok && owner != c.Name {
				return DAG{}, &IdentifierCollisionError{Identifier: key, First: owner, Second: c.Name}
			}

			driver[key] = c.Name
		}
	}

	final := make(map[string]bool, len(finalOutputs))
	for _, v := range finalOutputs {
		final[v.String()] = true
	}

	consumed := make(map[string]bool, 8)

	var edges []Edge

	for _, consumer := range comps {
		byProducer := make(map[string][]term.Var)

		for _, in := range consumer.Inputs {
			key := in.String()

			owner, ok := driver[key]
			if !ok || owner == consumer.Name {
				continue
			}

			consumed[key] = true
			byProducer[owner] = append(byProducer[owner], in)
		}

		var producers []string
		for p := range byProducer {
			producers = append(producers, p)
		}

		sort.Strings(producers)

		for _, p := range producers {
			edges = append(edges, Edge{Producer: p, Consumer: consumer.Name, Shared: byProducer[p]})
		}
	}

	catalog := contract.NewCatalog()

	for _, c := range comps {
		for _, out := range c.Outputs {
			key := out.String()
			if !consumed[key] && !final[key] {
				return DAG{}, &UnreachableGuaranteeError{Identifier: key, Component: c.Name}
			}
		}

		ct := contract.New(c.Name, c.Name, contract.NewVarSet(c.Inputs...), contract.NewVarSet(c.Outputs...))
		if err := catalog.Add(ct); err != nil {
			return DAG{}, err
		}
	}

	return DAG{Instruction: instruction, Components: comps, Edges: edges, Catalog: catalog}, nil
}
