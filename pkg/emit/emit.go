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

// Package emit implements the file emitter (C5): one solver-dialect file
// per component, plus a per-instruction manifest recording components and
// the edges between them.
package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/decompose"
	"github.com/taufold/zkvm/pkg/term"
)

// File is one emitted component file: its name (without extension) and
// rendered contents.
type File struct {
	Name    string
	Content string
}

// contractComment renders a component's contract as the leading comment
// line of its file, e.g. "# add_nibble_0: assumes a0,a1,b0,b1 guarantees
// s0,s1".
func contractComment(dag decompose.DAG, c component.Component) string {
	ct, ok := dag.Catalog.Get(c.Name)
	if !ok {
		return fmt.Sprintf("# %s", c.Name)
	}

	assumes := varNames(ct.Assumes.List())
	guarantees := varNames(ct.Guarantees.List())

	return fmt.Sprintf("# %s: assumes %s guarantees %s", c.Name, strings.Join(assumes, ","), strings.Join(guarantees, ","))
}

func varNames(vars []term.Var) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.String()
	}

	return out
}

// RenderComponent renders a single component file in the solver dialect:
// a contract comment, the serialized body under "solve", and "quit".
func RenderComponent(dag decompose.DAG, c component.Component) (File, error) {
	body, err := c.Body()
	if err != nil {
		return File{}, fmt.Errorf("emit: %s: %w", c.Name, err)
	}

	var b strings.Builder

	b.WriteString(contractComment(dag, c))
	b.WriteByte('\n')
	b.WriteString("solve ")
	b.WriteString(body)
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString("quit\n")

	return File{Name: c.Name, Content: b.String()}, nil
}

// RenderDAG renders every component in a DAG, in the order the decomposer
// produced them — the same order each run, so output is idempotent for
// identical input (§4.5).
func RenderDAG(dag decompose.DAG) ([]File, error) {
	files := make([]File, 0, len(dag.Components))

	for _, c := range dag.Components {
		f, err := RenderComponent(dag, c)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}

// ManifestEdge is the JSON form of a decompose.Edge.
type ManifestEdge struct {
	Producer string   `json:"producer"`
	Consumer string   `json:"consumer"`
	Shared   []string `json:"shared"`
}

// ManifestComponent is the JSON form of a component.Component's
// contract-relevant shape: just enough (name, assumed/guaranteed
// identifiers) for the composition verifier (C7) to check an edge's
// shared identifiers against producer guarantees and consumer
// assumptions from the on-disk manifest alone, without re-deriving the
// contract catalog.
type ManifestComponent struct {
	Name       string   `json:"name"`
	Assumes    []string `json:"assumes"`
	Guarantees []string `json:"guarantees"`
}

// Manifest is the per-instruction file listing components and the edges
// between them (§4.5).
type Manifest struct {
	Instruction   string              `json:"instruction"`
	Components    []string            `json:"components"`
	ComponentInfo []ManifestComponent `json:"component_info"`
	Edges         []ManifestEdge      `json:"edges"`
}

// BuildManifest derives a Manifest from a DAG, with components in the
// DAG's own order and edges sorted by producer then consumer, so Marshal
// output is idempotent regardless of map-iteration order upstream.
func BuildManifest(dag decompose.DAG) Manifest {
	names := make([]string, len(dag.Components))
	infos := make([]ManifestComponent, len(dag.Components))

	for i, c := range dag.Components {
		names[i] = c.Name
		infos[i] = ManifestComponent{
			Name:       c.Name,
			Assumes:    varNames(c.Inputs),
			Guarantees: varNames(c.Outputs),
		}
	}

	edges := make([]ManifestEdge, len(dag.Edges))
	for i, e := range dag.Edges {
		shared := make([]string, len(e.Shared))
		for j, v := range e.Shared {
			shared[j] = v.String()
		}

		edges[i] = ManifestEdge{Producer: e.Producer, Consumer: e.Consumer, Shared: shared}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Producer != edges[j].Producer {
			return edges[i].Producer < edges[j].Producer
		}

		return edges[i].Consumer < edges[j].Consumer
	})

	return Manifest{Instruction: dag.Instruction, Components: names, ComponentInfo: infos, Edges: edges}
}
