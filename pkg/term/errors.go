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
package term

import "fmt"

// TermTooLongError is raised when a single operator's result would exceed
// the builder's configured character budget.  The caller must factor the
// term via an intermediate Assign rather than inlining it further.
type TermTooLongError struct {
	Budget int
	Length int
	Result string
}

func (e *TermTooLongError) Error() string {
	return fmt.Sprintf("term of length %d exceeds budget %d: %s", e.Length, e.Budget, truncate(e.Result, 64))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
