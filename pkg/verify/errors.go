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

// Package verify implements the composition verifier (C7): given a
// manifest and per-component solver results, it walks the edge list and
// classifies the instruction's structural integrity. It never re-solves
// the combined system — that stays out of scope for the constraint
// engine (§4.7).
package verify

import (
	"fmt"
	"strings"
)

// OrphanComponentError is a component the manifest declares but that no
// edge ever produces from or consumes into, in a DAG of more than one
// component.
type OrphanComponentError struct {
	Component string
}

func (e *OrphanComponentError) Error() string {
	return fmt.Sprintf("verify: component %q is declared but never reached via an edge", e.Component)
}

// DanglingEdgeError is an edge naming a producer or consumer absent from
// the manifest's own component list.
type DanglingEdgeError struct {
	Producer, Consumer, Missing string
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("verify: edge %s -> %s references undeclared component %q", e.Producer, e.Consumer, e.Missing)
}

// UnsolvedComponentError is an edge endpoint whose solver result was not SAT.
type UnsolvedComponentError struct {
	Component string
	Status    string
}

func (e *UnsolvedComponentError) Error() string {
	return fmt.Sprintf("verify: component %q is not SAT (status %s)", e.Component, e.Status)
}

// UnreachableGuaranteeError is an edge's shared identifier that is not
// actually in both the producer's guarantee set and the consumer's
// assumption set — the identifier an edge claims to carry never
// reaches a component that can both supply and receive it (§7's
// "UnreachableGuarantee" composition error).
type UnreachableGuaranteeError struct {
	Producer, Consumer, Identifier string
}

func (e *UnreachableGuaranteeError) Error() string {
	return fmt.Sprintf("verify: shared identifier %q on edge %s -> %s is not both guaranteed and assumed",
		e.Identifier, e.Producer, e.Consumer)
}

// CycleError is a cycle found in the producer/consumer edge graph.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("verify: cycle detected: %s", strings.Join(e.Cycle, " -> "))
}
