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

// Contract is (name, assumption predicates over input vars, guarantee
// predicates over output vars, referenced component).  Contracts are
// values, not types: two contracts with identical fields are
// interchangeable, and composition (see Compose) builds new contract
// values rather than mutating existing ones.
type Contract struct {
	Name       string
	Assumes    VarSet
	Guarantees VarSet
	Component  string
}

// New constructs a contract referencing the named component.
func New(name, component string, assumes, guarantees VarSet) Contract {
	return Contract{Name: name, Component: component, Assumes: assumes, Guarantees: guarantees}
}

// Catalog is a named collection of contracts, indexed by name, forming
// the contract catalog (C2).
type Catalog struct {
	byName map[string]Contract
	order  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]Contract)}
}

// Add registers a contract, failing if a contract of that name already
// exists.
func (c *Catalog) Add(ct Contract) error {
	if _, ok := c.byName[ct.Name]; ok {
		return &DuplicateContractError{Name: ct.Name}
	}

	c.byName[ct.Name] = ct
	c.order = append(c.order, ct.Name)

	return nil
}

// Get looks up a contract by name.
func (c *Catalog) Get(name string) (Contract, bool) {
	ct, ok := c.byName[name]
	return ct, ok
}

// Names returns the registered contract names in registration order.
func (c *Catalog) Names() []string {
	return c.order
}
