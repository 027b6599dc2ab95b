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

import "fmt"

// DuplicateContractError is raised when two contracts in a catalog share a
// name.
type DuplicateContractError struct {
	Name string
}

func (e *DuplicateContractError) Error() string {
	return fmt.Sprintf("duplicate contract: %q", e.Name)
}

// DoubleDriveError is raised when composing two contracts whose guarantee
// sets both claim the same output variable; no variable may be declared
// an output by more than one component (§3 Component invariant).
type DoubleDriveError struct {
	Variable string
	First    string
	Second   string
}

func (e *DoubleDriveError) Error() string {
	return fmt.Sprintf("double drive on %q: both %q and %q guarantee it", e.Variable, e.First, e.Second)
}
