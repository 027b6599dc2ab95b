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

// Package term implements the constraint term model (C1): a structured
// representation of Boolean terms and atomic constraints which enforces
// the solver's syntactic invariants (identifier discipline, per-expression
// character budget, minimally parenthesized deterministic serialization).
package term

import (
	"fmt"
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// MaxIdentifierLength is the longest a serialized bit-variable identifier
// (root + index) may be.  Identifiers longer than this are rejected.
const MaxIdentifierLength = 5

// MaxIndex is the largest index a bit variable may carry.
const MaxIndex = 31

// Var is a bit variable identifier of the form "<root><index>": root is
// 1-4 lowercase letters, index is 0-31, and no underscores are permitted.
// Vars are process-unique within a single component; two components that
// happen to share an identifier are, by construction, a composition edge
// (see pkg/contract).
type Var struct {
	Root  string
	Index int
}

// NewVar constructs and validates a bit variable.
func NewVar(root string, index int) (Var, error) {
	v := Var{Root: root, Index: index}
	if err := v.Validate(); err != nil {
		return Var{}, err
	}

	return v, nil
}

// MustVar is NewVar but panics on an invalid identifier.  Intended for use
// at package-init time with statically known roots, never with
// user-supplied data.
func MustVar(root string, index int) Var {
	v, err := NewVar(root, index)
	if err != nil {
		panic(err)
	}

	return v
}

// String renders the variable in its canonical "<root><index>" form.
func (v Var) String() string {
	return fmt.Sprintf("%s%d", v.Root, v.Index)
}

// Validate checks the identifier discipline required by §4.1: root is
// 1-4 lowercase ASCII letters, no underscores, no leading digits (implied
// by the root being letters-only), index in [0,31], and the rendered
// identifier is at most MaxIdentifierLength characters.
func (v Var) Validate() error {
	if len(v.Root) == 0 || len(v.Root) > 4 {
		return &InvalidIdentifierError{Root: v.Root, Index: v.Index, Reason: "root must be 1-4 characters"}
	}

	for _, r := range v.Root {
		if r < 'a' || r > 'z' {
			return &InvalidIdentifierError{Root: v.Root, Index: v.Index, Reason: "root must be lowercase letters only"}
		}
	}

	if v.Index < 0 || v.Index > MaxIndex {
		return &InvalidIdentifierError{Root: v.Root, Index: v.Index, Reason: "index must be in [0,31]"}
	}

	if len(v.String()) > MaxIdentifierLength {
		return &InvalidIdentifierError{Root: v.Root, Index: v.Index, Reason: "identifier exceeds length 5"}
	}

	return nil
}

// InvalidIdentifierError reports why a Var failed identifier validation.
type InvalidIdentifierError struct {
	Root   string
	Index  int
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q%s: %s", e.Root, strconv.Itoa(e.Index), e.Reason)
}

// Namespace allocates sequential Vars under a fixed root, used by the
// decomposer (C4) to route shared nibble/carry/flag identifiers.  It keeps
// track of which indices are already claimed using a bitset, rejecting
// attempts to allocate past index 31 or to double-allocate an index.
type Namespace struct {
	root    string
	claimed *bitset.BitSet
	next    uint
}

// NewNamespace returns a namespace of fresh variables rooted at root.
func NewNamespace(root string) *Namespace {
	return &Namespace{root: root, claimed: bitset.New(MaxIndex + 1)}
}

// Root returns the namespace's identifier root.
func (n *Namespace) Root() string {
	return n.root
}

// Next allocates and returns the next unclaimed variable in this namespace.
func (n *Namespace) Next() (Var, error) {
	for n.next <= MaxIndex {
		idx := n.next
		n.next++

		if n.claimed.Test(idx) {
			continue
		}

		v, err := NewVar(n.root, int(idx))
		if err != nil {
			return Var{}, err
		}

		n.claimed.Set(idx)

		return v, nil
	}

	return Var{}, fmt.Errorf("namespace %q exhausted (max index %d)", n.root, MaxIndex)
}

// At claims and returns the variable at a specific index, failing if that
// index was already claimed by this namespace.
func (n *Namespace) At(index int) (Var, error) {
	if index < 0 || index > MaxIndex {
		return Var{}, fmt.Errorf("namespace %q: index %d out of range", n.root, index)
	}

	uidx := uint(index)
	if n.claimed.Test(uidx) {
		return Var{}, fmt.Errorf("namespace %q: index %d already claimed", n.root, index)
	}

	v, err := NewVar(n.root, index)
	if err != nil {
		return Var{}, err
	}

	n.claimed.Set(uidx)

	if uidx >= n.next {
		n.next = uidx + 1
	}

	return v, nil
}
