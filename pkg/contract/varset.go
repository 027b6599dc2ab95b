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

// Package contract implements the contract catalog (C2): named
// assumption/guarantee predicate sets over a typed variable surface, and
// the pairwise composition law of §4.2.
package contract

import "github.com/taufold/zkvm/pkg/term"

// VarSet is an insertion-ordered set of bit variables, keyed by their
// canonical string identifier.
type VarSet struct {
	order []term.Var
	index map[string]int
}

// NewVarSet returns an empty variable set.
func NewVarSet(vars ...term.Var) VarSet {
	vs := VarSet{index: make(map[string]int)}
	for _, v := range vars {
		vs.Add(v)
	}

	return vs
}

// Add inserts v if not already present; it is a no-op otherwise.
func (s *VarSet) Add(v term.Var) {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	key := v.String()
	if _, ok := s.index[key]; ok {
		return
	}

	s.index[key] = len(s.order)
	s.order = append(s.order, v)
}

// Contains reports whether v is a member of the set.
func (s VarSet) Contains(v term.Var) bool {
	if s.index == nil {
		return false
	}

	_, ok := s.index[v.String()]

	return ok
}

// List returns the set's members in insertion order.
func (s VarSet) List() []term.Var {
	return s.order
}

// Len returns the number of members.
func (s VarSet) Len() int {
	return len(s.order)
}

// Union returns a new set containing every member of both s and other, in
// s-then-other insertion order.
func (s VarSet) Union(other VarSet) VarSet {
	out := NewVarSet(s.order...)
	for _, v := range other.order {
		out.Add(v)
	}

	return out
}

// Intersect returns the members present in both sets.
func (s VarSet) Intersect(other VarSet) VarSet {
	out := NewVarSet()

	for _, v := range s.order {
		if other.Contains(v) {
			out.Add(v)
		}
	}

	return out
}

// Subtract returns the members of s not present in other.
func (s VarSet) Subtract(other VarSet) VarSet {
	out := NewVarSet()

	for _, v := range s.order {
		if !other.Contains(v) {
			out.Add(v)
		}
	}

	return out
}

// IsSubsetOf reports whether every member of s is also a member of other.
func (s VarSet) IsSubsetOf(other VarSet) bool {
	for _, v := range s.order {
		if !other.Contains(v) {
			return false
		}
	}

	return true
}
