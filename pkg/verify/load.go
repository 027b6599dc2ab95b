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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/harness"
)

// LoadManifest reads and unmarshals one instruction's manifest.json, the
// file emit.WriteDAG writes to "<out>/<instruction>/manifest.json".
func LoadManifest(path string) (emit.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return emit.Manifest{}, fmt.Errorf("verify: reading %s: %w", path, err)
	}

	var manifest emit.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return emit.Manifest{}, fmt.Errorf("verify: parsing %s: %w", path, err)
	}

	return manifest, nil
}

// VerifyDir runs the composition verifier over every instruction emitted
// under dir (§6.2's `verify-composition --dir DIR`): each immediate
// subdirectory of dir holding a "manifest.json" is treated as one
// instruction. Component statuses come from running the validation
// harness (C6) against that instruction's own component files, so
// verify-composition never re-solves anything itself — it only asks C6
// for SAT/UNSAT/... and checks the manifest's edges against the answer.
// Reports are returned sorted by instruction name for determinism.
func VerifyDir(ctx context.Context, dir string, oracle harness.Oracle, cfg harness.Config) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("verify: reading %s: %w", dir, err)
	}

	var reports []Report

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		instrDir := filepath.Join(dir, e.Name())
		manifestPath := filepath.Join(instrDir, "manifest.json")

		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}

		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}

		harnessReport, err := harness.Validate(ctx, instrDir, oracle, cfg)
		if err != nil {
			return nil, fmt.Errorf("verify: validating %s: %w", instrDir, err)
		}

		statuses := make(map[string]harness.Status, len(harnessReport.Results))
		for _, r := range harnessReport.Results {
			name := strings.TrimSuffix(filepath.Base(r.File), ".tau")
			statuses[name] = r.Status
		}

		reports = append(reports, Verify(manifest, statuses))
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Instruction < reports[j].Instruction })

	return reports, nil
}
