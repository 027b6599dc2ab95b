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

import (
	"errors"
	"testing"

	"github.com/taufold/zkvm/pkg/term"
)

func TestComposeSharesBecomeInternal(t *testing.T) {
	cout0 := term.MustVar("cout", 0)
	cin := term.MustVar("cin", 0)

	producer := New("add_nibble_0", "add_nibble_0", NewVarSet(), NewVarSet(cout0))
	linker := New("carry_0_to_1", "carry_0_to_1", NewVarSet(cout0), NewVarSet(cin))

	composite, err := Compose("add_nibble_0+carry_0_to_1", producer, linker)
	if err != nil {
		t.Fatal(err)
	}

	if !composite.Internal.Contains(cout0) {
		t.Errorf("expected cout0 to become internal, got %v", composite.Internal.List())
	}

	if !composite.Contract.Guarantees.Contains(cin) {
		t.Errorf("expected composite to guarantee cin")
	}
}

func TestComposeDetectsDoubleDrive(t *testing.T) {
	s0 := term.MustVar("s", 0)

	first := New("a", "a", NewVarSet(), NewVarSet(s0))
	second := New("b", "b", NewVarSet(), NewVarSet(s0))

	_, err := Compose("a+b", first, second)

	var dd *DoubleDriveError
	if !errors.As(err, &dd) {
		t.Fatalf("expected DoubleDriveError, got %v", err)
	}
}

func TestSatisfies(t *testing.T) {
	cout0 := term.MustVar("cout", 0)
	producer := New("p", "p", NewVarSet(), NewVarSet(cout0))
	consumer := New("c", "c", NewVarSet(cout0), NewVarSet())

	if !Satisfies(producer, consumer, NewVarSet(cout0)) {
		t.Error("expected edge to satisfy composition law")
	}

	other := term.MustVar("x", 0)
	if Satisfies(producer, consumer, NewVarSet(other)) {
		t.Error("expected edge referencing unrelated var to fail")
	}
}

func TestCatalogRejectsDuplicateNames(t *testing.T) {
	cat := NewCatalog()

	ct := New("dup", "dup", NewVarSet(), NewVarSet())
	if err := cat.Add(ct); err != nil {
		t.Fatal(err)
	}

	err := cat.Add(ct)

	var dup *DuplicateContractError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateContractError, got %v", err)
	}
}
