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
	"errors"
	"strings"
	"testing"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
)

func assertNoDupComponentNames(t *testing.T, dag DAG) {
	t.Helper()

	seen := make(map[string]bool, len(dag.Components))

	for _, c := range dag.Components {
		if seen[c.Name] {
			t.Fatalf("duplicate component name %q", c.Name)
		}

		seen[c.Name] = true

		if _, err := c.Body(); err != nil {
			t.Errorf("component %q: %v", c.Name, err)
		}
	}

	if got, want := len(dag.Catalog.Names()), len(dag.Components); got != want {
		t.Errorf("catalog has %d contracts, want %d (one per component)", got, want)
	}
}

func TestBuildAdd32Structure(t *testing.T) {
	dag, err := BuildAdd32()
	if err != nil {
		t.Fatal(err)
	}

	assertNoDupComponentNames(t, dag)

	nibbles, links := 0, 0

	for _, c := range dag.Components {
		switch {
		case c.Kind == component.Primitive && strings.Contains(c.Name, "nibble"):
			nibbles++
		case c.Kind == component.Linker && strings.Contains(c.Name, "carry"):
			links++
		}
	}

	if nibbles != 8 {
		t.Errorf("expected 8 nibble adders, got %d", nibbles)
	}

	if links != 7 {
		t.Errorf("expected 7 carry links, got %d", links)
	}
}

func TestBuildSub32HasBorrowComponent(t *testing.T) {
	dag, err := BuildSub32()
	if err != nil {
		t.Fatal(err)
	}

	assertNoDupComponentNames(t, dag)

	found := false

	for _, c := range dag.Components {
		if c.Name == "sub_borrow_0" {
			found = true

			if len(c.Constraints) != 1 {
				t.Fatalf("sub_borrow_0 should be a single NOT constraint, got %d", len(c.Constraints))
			}
		}
	}

	if !found {
		t.Fatal("expected a sub_borrow_0 component")
	}
}

func TestBuildMul32AndDiv32AreNotYetDecomposable(t *testing.T) {
	if _, err := BuildMul32(); !errors.As(err, new(*primitive.ErrNotYetDecomposable)) {
		t.Fatalf("BuildMul32: expected ErrNotYetDecomposable, got %v", err)
	}

	if _, err := BuildDiv32(); !errors.As(err, new(*primitive.ErrNotYetDecomposable)) {
		t.Fatalf("BuildDiv32: expected ErrNotYetDecomposable, got %v", err)
	}

	if _, err := BuildMod32(); !errors.As(err, new(*primitive.ErrNotYetDecomposable)) {
		t.Fatalf("BuildMod32: expected ErrNotYetDecomposable, got %v", err)
	}
}

func TestBuildBitwiseProducesThirtyTwoOutputs(t *testing.T) {
	for _, hint := range []isa.SemanticsHint{isa.HintAnd32, isa.HintOr32, isa.HintXor32, isa.HintNot32} {
		dag, err := BuildBitwise(hint)
		if err != nil {
			t.Fatalf("%s: %v", hint, err)
		}

		assertNoDupComponentNames(t, dag)

		total := 0
		for _, c := range dag.Components {
			total += len(c.Outputs)
		}

		if total != 32 {
			t.Errorf("%s: expected 32 output bits across components, got %d", hint, total)
		}
	}
}

func TestBuildBitwiseShiftsAreNotYetDecomposable(t *testing.T) {
	if _, err := BuildBitwise(isa.HintShl32); !errors.As(err, new(*primitive.ErrNotYetDecomposable)) {
		t.Fatalf("shl32: expected ErrNotYetDecomposable, got %v", err)
	}

	if _, err := BuildBitwise(isa.HintShr32); !errors.As(err, new(*primitive.ErrNotYetDecomposable)) {
		t.Fatalf("shr32: expected ErrNotYetDecomposable, got %v", err)
	}
}

func TestBuildComparisonProducesSingleResultBit(t *testing.T) {
	hints := []isa.SemanticsHint{isa.HintEq32, isa.HintNeq32, isa.HintLt32, isa.HintGt32, isa.HintLte32, isa.HintGte32}

	for _, hint := range hints {
		dag, err := BuildComparison(hint)
		if err != nil {
			t.Fatalf("%s: %v", hint, err)
		}

		assertNoDupComponentNames(t, dag)

		last := dag.Components[len(dag.Components)-1]
		if len(last.Outputs) != 1 || last.Outputs[0].String() != "r0" {
			t.Errorf("%s: expected final component to produce r0, got %v", hint, last.Outputs)
		}
	}
}

func TestBuildControlProducesThirtyTwoPCBits(t *testing.T) {
	hints := []isa.SemanticsHint{isa.HintJump, isa.HintCall, isa.HintReturn, isa.HintJumpIfZero, isa.HintJumpIfNotZero}

	for _, hint := range hints {
		dag, err := BuildControl(hint)
		if err != nil {
			t.Fatalf("%s: %v", hint, err)
		}

		assertNoDupComponentNames(t, dag)

		pcBits := 0

		for _, c := range dag.Components {
			for _, out := range c.Outputs {
				if out.Root == rootPC {
					pcBits++
				}
			}
		}

		if pcBits != 32 {
			t.Errorf("%s: expected 32 pc output bits, got %d", hint, pcBits)
		}
	}
}

func TestBuildMemoryLoadAndStore(t *testing.T) {
	load, err := BuildMemory(isa.HintLoad)
	if err != nil {
		t.Fatal(err)
	}

	assertNoDupComponentNames(t, load)

	if len(load.Components) != memWidth {
		t.Errorf("expected %d mux components for load, got %d", memWidth, len(load.Components))
	}

	store, err := BuildMemory(isa.HintStore)
	if err != nil {
		t.Fatal(err)
	}

	assertNoDupComponentNames(t, store)

	if got, want := len(store.Components), 1+memLocations; got != want {
		t.Errorf("expected %d components for store, got %d", want, got)
	}
}

func TestBuildMemoryStackOps(t *testing.T) {
	for _, hint := range []isa.SemanticsHint{isa.HintPush, isa.HintPop, isa.HintDup, isa.HintSwap} {
		dag, err := BuildMemory(hint)
		if err != nil {
			t.Fatalf("%s: %v", hint, err)
		}

		assertNoDupComponentNames(t, dag)

		if len(dag.Components) == 0 {
			t.Errorf("%s: expected at least one component", hint)
		}
	}
}

func TestIdentifierCollisionIsRejected(t *testing.T) {
	one, _, err := primitive.NibbleAdder("dup_a", primitive.Roots{A: "a", B: "b", S: "s", C: "c", Offset: 0}, nil)
	if err != nil {
		t.Fatal(err)
	}

	two, _, err := primitive.NibbleAdder("dup_b", primitive.Roots{A: "a", B: "b", S: "s", C: "c", Offset: 0}, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = assignDAG("dup", []component.Component{one, two}, nil)
	if err == nil {
		t.Fatal("expected a collision error")
	}

	var collision *IdentifierCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected *IdentifierCollisionError, got %T: %v", err, err)
	}
}
