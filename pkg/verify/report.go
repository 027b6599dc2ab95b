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
	"fmt"
	"io"
)

// RenderReport writes a human-readable summary of report to w: the
// instruction name, its overall Status, and one line per defect.
func RenderReport(w io.Writer, report Report) {
	fmt.Fprintf(w, "%s: %s\n", report.Instruction, report.Status)

	for _, d := range report.Defects {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
