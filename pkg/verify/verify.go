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
	"sort"

	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/harness"
	"github.com/taufold/zkvm/pkg/util"
)

// Status is the overall composition outcome for one instruction (§4.7).
type Status string

const (
	// Composed means every edge is valid and every declared component is reached.
	Composed Status = "Composed"
	// PartiallyComposed means at least one edge is defective but the
	// instruction isn't wholly disconnected.
	PartiallyComposed Status = "PartiallyComposed"
	// NotComposed means the instruction's edges are all defective, or more
	// than one component is declared and none are connected at all.
	NotComposed Status = "NotComposed"
)

// Report is the outcome of verifying one instruction's manifest.
type Report struct {
	Instruction string
	Status      Status
	Defects     []error
}

// Verify walks manifest's edge list against statuses (keyed by component
// name, as BuildManifest names them) and classifies the instruction's
// structural integrity. It never invokes a solver itself — that's C6's
// job; Verify only re-checks what's already on disk (§4.7: "Given the
// manifest and per-file results").
func Verify(manifest emit.Manifest, statuses map[string]harness.Status) Report {
	info := make(map[string]emit.ManifestComponent, len(manifest.ComponentInfo))
	for _, ci := range manifest.ComponentInfo {
		info[ci.Name] = ci
	}

	declared := make(map[string]bool, len(manifest.Components))
	for _, name := range manifest.Components {
		declared[name] = true
	}

	edges := make([]util.Pair[string, string], len(manifest.Edges))
	for i, e := range manifest.Edges {
		edges[i] = util.NewPair(e.Producer, e.Consumer)
	}

	var defects []error

	reached := make(map[string]bool, len(manifest.Components))
	validEdges := 0

	for i, e := range manifest.Edges {
		pair := edges[i]
		edgeOK := true

		if !declared[pair.Left] {
			defects = append(defects, &DanglingEdgeError{Producer: e.Producer, Consumer: e.Consumer, Missing: pair.Left})
			edgeOK = false
		}

		if !declared[pair.Right] {
			defects = append(defects, &DanglingEdgeError{Producer: e.Producer, Consumer: e.Consumer, Missing: pair.Right})
			edgeOK = false
		}

		if !edgeOK {
			continue
		}

		reached[pair.Left] = true
		reached[pair.Right] = true

		if s := statuses[pair.Left]; s != harness.SAT {
			defects = append(defects, &UnsolvedComponentError{Component: pair.Left, Status: string(s)})
			edgeOK = false
		}

		if s := statuses[pair.Right]; s != harness.SAT {
			defects = append(defects, &UnsolvedComponentError{Component: pair.Right, Status: string(s)})
			edgeOK = false
		}

		producerInfo := info[pair.Left]
		consumerInfo := info[pair.Right]

		for _, id := range e.Shared {
			if !containsStr(producerInfo.Guarantees, id) || !containsStr(consumerInfo.Assumes, id) {
				defects = append(defects, &UnreachableGuaranteeError{Producer: pair.Left, Consumer: pair.Right, Identifier: id})
				edgeOK = false
			}
		}

		if edgeOK {
			validEdges++
		}
	}

	defects = append(defects, detectDuplicateDrives(manifest.ComponentInfo)...)

	if len(manifest.Components) > 1 {
		for _, name := range manifest.Components {
			if !reached[name] {
				defects = append(defects, &OrphanComponentError{Component: name})
			}
		}
	}

	if cycle := detectCycle(edges); len(cycle) > 0 {
		defects = append(defects, &CycleError{Cycle: cycle})
	}

	status := classify(len(manifest.Edges), validEdges, len(defects))
	if len(manifest.Edges) == 0 && len(manifest.Components) > 1 {
		status = NotComposed
	}

	return Report{
		Instruction: manifest.Instruction,
		Status:      status,
		Defects:     defects,
	}
}

func classify(totalEdges, validEdges, defectCount int) Status {
	if defectCount == 0 {
		return Composed
	}

	if totalEdges > 0 && validEdges == 0 {
		return NotComposed
	}

	return PartiallyComposed
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

// detectDuplicateDrives reports an identifier guaranteed by more than one
// component — the same DoubleDrive condition C2's contract composer
// rejects at compile time, re-checked here against the on-disk manifest
// alone, independent of whether any edge actually shares the identifier.
func detectDuplicateDrives(infos []emit.ManifestComponent) []error {
	producerOf := make(map[string]string)

	var defects []error

	for _, ci := range infos {
		for _, g := range ci.Guarantees {
			if prev, ok := producerOf[g]; ok && prev != ci.Name {
				defects = append(defects, &contract.DoubleDriveError{Variable: g, First: prev, Second: ci.Name})
				continue
			}

			producerOf[g] = ci.Name
		}
	}

	return defects
}

// detectCycle walks the producer->consumer graph formed by edges with a
// depth-first search, returning the node sequence of the first cycle
// found (nil if acyclic). Nodes are visited in sorted order so the
// result is deterministic regardless of edge order.
func detectCycle(edges []util.Pair[string, string]) []string {
	adj := make(map[string][]string)

	nodeSet := make(map[string]bool)
	for _, e := range edges {
		adj[e.Left] = append(adj[e.Left], e.Right)
		nodeSet[e.Left] = true
		nodeSet[e.Right] = true
	}

	nodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}

	sort.Strings(nodes)

	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(nodes))
	var path []string

	var visit func(node string) []string

	visit = func(node string) []string {
		color[node] = gray
		path = append(path, node)

		for _, next := range adj[node] {
			switch color[next] {
			case gray:
				idx := indexOf(path, next)
				cycle := append([]string{}, path[idx:]...)
				return append(cycle, next)
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}

		color[node] = black
		path = path[:len(path)-1]

		return nil
	}

	for _, n := range nodes {
		if color[n] == white {
			if cycle := visit(n); cycle != nil {
				return cycle
			}
		}
	}

	return nil
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}

	return -1
}
