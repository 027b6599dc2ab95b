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
package contract

// Composite is the result of pairing two contracts: a combined contract
// plus the set of variables that became internal (i.e. were guaranteed by
// the first and consumed as an assumption by the second).
type Composite struct {
	Contract Contract
	Internal VarSet
}

// Compose pairs two contracts per §4.2's composition law: shared
// variables (those guaranteed by first and assumed by second) are
// unified by identifier and moved from second's assumption set into the
// composite's internal set; guarantees are merged; a variable guaranteed
// by both contracts is a DoubleDriveError.
func Compose(name string, first, second Contract) (Composite, error) {
	for _, v := range first.Guarantees.List() {
		if second.Guarantees.Contains(v) {
			return Composite{}, &DoubleDriveError{
				Variable: v.String(),
				First:    first.Name,
				Second:   second.Name,
			}
		}
	}

	shared := first.Guarantees.Intersect(second.Assumes)

	assumes := first.Assumes.Union(second.Assumes.Subtract(shared))
	guarantees := first.Guarantees.Union(second.Guarantees)

	composite := Contract{
		Name:       name,
		Assumes:    assumes,
		Guarantees: guarantees,
		Component:  "", // a composite has no single referenced component
	}

	return Composite{Contract: composite, Internal: shared}, nil
}

// ComposeAll folds Compose left-to-right across a chain of contracts,
// representing the composition of an entire instruction DAG edge chain.
func ComposeAll(name string, contracts []Contract) (Composite, error) {
	if len(contracts) == 0 {
		return Composite{}, nil
	}

	acc := contracts[0]
	internal := NewVarSet()

	for _, next := range contracts[1:] {
		composite, err := Compose(name, acc, next)
		if err != nil {
			return Composite{}, err
		}

		acc = composite.Contract
		internal = internal.Union(composite.Internal)
	}

	return Composite{Contract: acc, Internal: internal}, nil
}

// Satisfies checks whether a set of shared identifiers S between a
// producer and a consumer contract satisfies the composition law: S must
// be a subset of the producer's guarantees and a subset of the consumer's
// assumptions.
func Satisfies(producer, consumer Contract, shared VarSet) bool {
	return shared.IsSubsetOf(producer.Guarantees) && shared.IsSubsetOf(consumer.Assumes)
}
