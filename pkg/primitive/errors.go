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

// Package primitive implements the verified atomic generators of C3: the
// only sources of novel internal variables in the system.  Everything the
// decomposer (C4) builds is a combination of these primitives plus linker
// and aggregator components.
package primitive

import "fmt"

// ErrNotYetDecomposable reports an operation whose gate-level
// decomposition is out of scope per §4.3/§9. The decomposer returns it for
// the 32-bit MUL, DIV, MOD, SHL and SHR instructions.
type ErrNotYetDecomposable struct {
	Operation string
	Width     uint
}

func (e *ErrNotYetDecomposable) Error() string {
	return fmt.Sprintf("%s at width %d is not yet decomposable", e.Operation, e.Width)
}
