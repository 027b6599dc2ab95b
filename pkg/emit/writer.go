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
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"github.com/taufold/zkvm/pkg/decompose"
)

// WriteDAG renders a DAG's components and manifest and writes them under
// dir/<instruction>/: one "<component>.tau" file per component plus
// "manifest.json". It overwrites any existing files for that instruction,
// which combined with RenderDAG's deterministic ordering makes repeated
// calls with the same DAG byte-identical (§4.5's idempotence property).
func WriteDAG(dir string, dag decompose.DAG) error {
	instrDir := filepath.Join(dir, dag.Instruction)

	if err := os.MkdirAll(instrDir, 0o755); err != nil {
		return fmt.Errorf("emit: %w", err)
	}

	files, err := RenderDAG(dag)
	if err != nil {
		return err
	}

	for _, f := range files {
		path := filepath.Join(instrDir, f.Name+".tau")

		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("emit: writing %s: %w", path, err)
		}

		log.WithField("instruction", dag.Instruction).WithField("component", f.Name).Debug("wrote component file")
	}

	manifest := BuildManifest(dag)

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("emit: marshaling manifest: %w", err)
	}

	manifestPath := filepath.Join(instrDir, "manifest.json")
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("emit: writing %s: %w", manifestPath, err)
	}

	log.WithField("instruction", dag.Instruction).WithField("components", len(files)).Info("emitted instruction")

	return nil
}
