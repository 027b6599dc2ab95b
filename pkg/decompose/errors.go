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

// Package decompose implements the instruction decomposer (C4): per-
// instruction generators that emit a component DAG from C3 primitives,
// routing shared nibble/carry/flag identifiers and wrapping each fragment
// as a C2 contract.
package decompose

import "fmt"

// BudgetExceededError reports a component whose serialized body could not
// be brought under the character budget by the decomposer.
type BudgetExceededError struct {
	Component string
	Size      int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("component %q exceeds the character budget (%d bytes)", e.Component, e.Size)
}

// IdentifierCollisionError reports two components in the same instruction
// DAG declaring the same output identifier.
type IdentifierCollisionError struct {
	Identifier string
	First      string
	Second     string
}

func (e *IdentifierCollisionError) Error() string {
	return fmt.Sprintf("identifier %q is declared as output by both %q and %q", e.Identifier, e.First, e.Second)
}

// UnreachableGuaranteeError reports a guarantee variable that is never
// consumed by another component and never declared as an instruction-level
// output.
type UnreachableGuaranteeError struct {
	Identifier string
	Component  string
}

func (e *UnreachableGuaranteeError) Error() string {
	return fmt.Sprintf("component %q guarantees %q, which is neither consumed nor an instruction output", e.Component, e.Identifier)
}
