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
package harness

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// statusOrder fixes the roll-up line order regardless of map iteration.
var statusOrder = []Status{SAT, UNSAT, ERROR, TIMEOUT, OVERSIZE, SKIPPED}

// RenderReport writes a human-readable roll-up of report to w: a count
// line per status in statusOrder, then one line per file whose status
// is neither SAT nor SKIPPED, truncated to the terminal width when stdout is a terminal
// (falling back to 80 columns otherwise — the same width-detection
// fallback cobra's own CLI output uses).
func RenderReport(w io.Writer, report Report) {
	width := 80
	if size, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && size > 0 {
		width = size
	}

	fmt.Fprintln(w, "validation summary:")

	for _, s := range statusOrder {
		if n := report.Counts[s]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", s, n)
		}
	}

	var defects []Result

	for _, r := range report.Results {
		if r.Status != SAT && r.Status != SKIPPED {
			defects = append(defects, r)
		}
	}

	if len(defects) == 0 {
		return
	}

	fmt.Fprintln(w, "defects:")

	for _, r := range defects {
		line := fmt.Sprintf("  %-8s %s (%dms)", r.Status, filepath.Base(r.File), r.ElapsedMS)
		fmt.Fprintln(w, truncate(line, width))
	}
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}

	return strings.TrimRight(s[:width-3], " ") + "..."
}
