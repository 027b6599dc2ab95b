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
package verify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/harness"
)

func wellFormedManifest() emit.Manifest {
	return emit.Manifest{
		Instruction: "add32",
		Components:  []string{"nibble0", "nibble1", "link0"},
		ComponentInfo: []emit.ManifestComponent{
			{Name: "nibble0", Assumes: []string{"a0", "b0"}, Guarantees: []string{"s0", "c0"}},
			{Name: "nibble1", Assumes: []string{"a1", "b1", "c0"}, Guarantees: []string{"s1", "c1"}},
			{Name: "link0", Assumes: []string{"c0"}, Guarantees: []string{}},
		},
		Edges: []emit.ManifestEdge{
			{Producer: "nibble0", Consumer: "nibble1", Shared: []string{"c0"}},
			{Producer: "nibble0", Consumer: "link0", Shared: []string{"c0"}},
		},
	}
}

func allSAT(manifest emit.Manifest) map[string]harness.Status {
	statuses := make(map[string]harness.Status, len(manifest.Components))
	for _, name := range manifest.Components {
		statuses[name] = harness.SAT
	}

	return statuses
}

func TestVerifyWellFormedIsComposed(t *testing.T) {
	manifest := wellFormedManifest()

	report := Verify(manifest, allSAT(manifest))

	if report.Status != Composed {
		t.Fatalf("status = %v, want Composed (defects: %v)", report.Status, report.Defects)
	}

	if len(report.Defects) != 0 {
		t.Errorf("expected no defects, got %v", report.Defects)
	}
}

func TestVerifyUnsatEndpointIsPartiallyComposed(t *testing.T) {
	manifest := wellFormedManifest()
	statuses := allSAT(manifest)
	statuses["nibble1"] = harness.UNSAT

	report := Verify(manifest, statuses)

	if report.Status != PartiallyComposed {
		t.Fatalf("status = %v, want PartiallyComposed", report.Status)
	}

	var target *UnsolvedComponentError
	if !containsAs(report.Defects, &target) {
		t.Errorf("expected an UnsolvedComponentError, got %v", report.Defects)
	}
}

func TestVerifyOrphanComponent(t *testing.T) {
	manifest := wellFormedManifest()
	manifest.Components = append(manifest.Components, "dead_code")
	manifest.ComponentInfo = append(manifest.ComponentInfo, emit.ManifestComponent{Name: "dead_code"})

	statuses := allSAT(manifest)

	report := Verify(manifest, statuses)

	if report.Status != PartiallyComposed {
		t.Fatalf("status = %v, want PartiallyComposed", report.Status)
	}

	var target *OrphanComponentError
	if !containsAs(report.Defects, &target) {
		t.Errorf("expected an OrphanComponentError, got %v", report.Defects)
	}
}

func TestVerifyDanglingEdge(t *testing.T) {
	manifest := wellFormedManifest()
	manifest.Edges = append(manifest.Edges, emit.ManifestEdge{Producer: "nibble1", Consumer: "ghost", Shared: []string{"x"}})

	report := Verify(manifest, allSAT(manifest))

	var target *DanglingEdgeError
	if !containsAs(report.Defects, &target) {
		t.Errorf("expected a DanglingEdgeError, got %v", report.Defects)
	}
}

func TestVerifyUnreachableGuarantee(t *testing.T) {
	manifest := wellFormedManifest()
	// nibble1 doesn't actually assume "c9", so sharing it on this edge is bogus.
	manifest.Edges[0].Shared = []string{"c9"}

	report := Verify(manifest, allSAT(manifest))

	var target *UnreachableGuaranteeError
	if !containsAs(report.Defects, &target) {
		t.Errorf("expected an UnreachableGuaranteeError, got %v", report.Defects)
	}
}

func TestVerifyCycleDetected(t *testing.T) {
	manifest := wellFormedManifest()
	manifest.Edges = append(manifest.Edges, emit.ManifestEdge{Producer: "nibble1", Consumer: "nibble0", Shared: []string{"s1"}})
	manifest.ComponentInfo[1].Guarantees = append(manifest.ComponentInfo[1].Guarantees, "s1")
	manifest.ComponentInfo[0].Assumes = append(manifest.ComponentInfo[0].Assumes, "s1")

	report := Verify(manifest, allSAT(manifest))

	var target *CycleError
	if !containsAs(report.Defects, &target) {
		t.Errorf("expected a CycleError, got %v", report.Defects)
	}
}

func TestVerifyDoubleDrive(t *testing.T) {
	manifest := wellFormedManifest()
	manifest.ComponentInfo[2].Guarantees = []string{"s0"} // link0 now also guarantees s0, same as nibble0

	report := Verify(manifest, allSAT(manifest))

	if report.Status == Composed {
		t.Fatal("expected a defect for the double-driven identifier")
	}
}

func TestVerifySingleComponentNoEdgesIsComposed(t *testing.T) {
	manifest := emit.Manifest{
		Instruction:   "not32",
		Components:    []string{"only"},
		ComponentInfo: []emit.ManifestComponent{{Name: "only", Assumes: []string{"a"}, Guarantees: []string{"r"}}},
	}

	report := Verify(manifest, allSAT(manifest))

	if report.Status != Composed {
		t.Fatalf("status = %v, want Composed", report.Status)
	}
}

func TestVerifyAllEdgesDefectiveIsNotComposed(t *testing.T) {
	manifest := wellFormedManifest()
	statuses := allSAT(manifest)
	statuses["nibble0"] = harness.UNSAT
	statuses["nibble1"] = harness.UNSAT
	statuses["link0"] = harness.UNSAT

	report := Verify(manifest, statuses)

	if report.Status != NotComposed {
		t.Fatalf("status = %v, want NotComposed", report.Status)
	}
}

// containsAs reports whether any error in errs matches errors.As into target.
func containsAs(errs []error, target interface{}) bool {
	for _, e := range errs {
		if errors.As(e, target) {
			return true
		}
	}

	return false
}

func TestVerifyDirReadsManifestsAndRunsHarness(t *testing.T) {
	dir := t.TempDir()
	instrDir := filepath.Join(dir, "add32")

	if err := os.MkdirAll(instrDir, 0o755); err != nil {
		t.Fatal(err)
	}

	manifest := emit.Manifest{
		Instruction:   "add32",
		Components:    []string{"only"},
		ComponentInfo: []emit.ManifestComponent{{Name: "only", Assumes: nil, Guarantees: []string{"r"}}},
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(instrDir, "manifest.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(instrDir, "only.tau"), []byte("# only\nsolve a\n\nquit\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oracle := harness.StaticOracle{Stdout: "solution found"}

	reports, err := VerifyDir(context.Background(), dir, oracle, harness.Config{})
	if err != nil {
		t.Fatal(err)
	}

	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	if reports[0].Instruction != "add32" {
		t.Errorf("instruction = %q, want add32", reports[0].Instruction)
	}

	if reports[0].Status != Composed {
		t.Errorf("status = %v, want Composed", reports[0].Status)
	}
}
