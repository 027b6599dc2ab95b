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

// Package harness implements the validation harness (C6): it enumerates
// emitted component files, dispatches each to a pluggable solver Oracle
// across a bounded worker pool, and collates results deterministically
// regardless of completion order.
package harness

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// OversizeThreshold is §4.6's precondition: files larger than this are
// classified OVERSIZE without ever invoking the solver.
const OversizeThreshold = 1000

// DefaultTimeout is the per-file solver wall-clock budget (§5).
const DefaultTimeout = 10 * time.Second

// Status is one of §4.6/§7's validation outcomes.
type Status string

const (
	SAT      Status = "SAT"
	UNSAT    Status = "UNSAT"
	ERROR    Status = "ERROR"
	TIMEOUT  Status = "TIMEOUT"
	OVERSIZE Status = "OVERSIZE"
	// SKIPPED is reported for every file when Config.DemoMode disables
	// solver invocation (§6.2's DEMO_MODE environment flag).
	SKIPPED Status = "SKIPPED"
)

// unsatMarker is the substring §6.5 calls "an explicit unsatisfiability
// marker"; the solver contract leaves its exact text to the solver, so
// this package looks for the conventional "unsat" token case-insensitively.
const unsatMarker = "unsat"
const satMarker = "solution"

// Oracle is the pluggable solver surface (§9 redesign note: "solver as
// abstract oracle"). Run executes the solver against the file at path and
// returns its captured stdout/stderr; ctx carries the per-invocation
// timeout. Run should not itself classify the result — Validate does
// that uniformly from stdout/err per §6.5's contract.
type Oracle interface {
	Run(ctx context.Context, path string) (stdout, stderr string, err error)
}

// Result is §3's per-file validation result.
type Result struct {
	File       string `json:"file"`
	Status     Status `json:"status"`
	ElapsedMS  int64  `json:"elapsed_ms"`
	StdoutHead string `json:"stdout_head,omitempty"`
	StderrHead string `json:"stderr_head,omitempty"`
}

// Report is the roll-up of a Validate run: every per-file Result plus
// counts per Status. This is what "validate" persists to
// "validation_report.json" (§6.3).
type Report struct {
	Results []Result       `json:"results"`
	Counts  map[Status]int `json:"counts"`
}

// Failed reports whether any file's outcome should make the CLI exit
// nonzero (§4.6's failure policy: SAT and SKIPPED are the only outcomes
// that do not count as a validation defect).
func (r Report) Failed() bool {
	for _, s := range []Status{UNSAT, ERROR, TIMEOUT, OVERSIZE} {
		if r.Counts[s] > 0 {
			return true
		}
	}

	return false
}

// Config configures one Validate run.
type Config struct {
	// Parallel is the worker pool size; <= 0 defaults to host parallelism.
	Parallel int
	// Timeout is the per-file solver wall-clock budget; <= 0 defaults to
	// DefaultTimeout.
	Timeout time.Duration
	// DemoMode disables solver invocation entirely: every file is
	// reported SKIPPED (after the OVERSIZE precondition still runs,
	// since that check never touches the solver).
	DemoMode bool
}

// Validate enumerates the ".tau" component files directly under dir,
// dispatches each to oracle across a bounded worker pool (an
// errgroup.Group with SetLimit, matching §5's "worker pool of size N"),
// and returns a deterministically file-name-ordered Report. A single
// ERROR/UNSAT/TIMEOUT never aborts the run (§4.6's failure policy);
// Validate's own error return is reserved for failing to even enumerate
// the directory.
func Validate(ctx context.Context, dir string, oracle Oracle, cfg Config) (Report, error) {
	files, err := discoverFiles(dir)
	if err != nil {
		return Report{}, err
	}

	limit := cfg.Parallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, f := range files {
		i, f := i, f

		g.Go(func() error {
			results[i] = validateOne(gctx, f, oracle, cfg)
			return nil
		})
	}

	// g.Wait's error is always nil here since the goroutines never
	// return one; per-file failures live in results, not in err.
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	return buildReport(results), nil
}

func discoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".tau") {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)

	return files, nil
}

func validateOne(ctx context.Context, path string, oracle Oracle, cfg Config) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{File: path, Status: ERROR, StderrHead: head(err.Error())}
	}

	if info.Size() > OversizeThreshold {
		return Result{File: path, Status: OVERSIZE}
	}

	if cfg.DemoMode {
		return Result{File: path, Status: SKIPPED}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, runErr := oracle.Run(runCtx, path)
	elapsed := time.Since(start)

	return Result{
		File:       path,
		Status:     classify(stdout, runErr, runCtx.Err()),
		ElapsedMS:  elapsed.Milliseconds(),
		StdoutHead: head(stdout),
		StderrHead: head(stderr),
	}
}

func classify(stdout string, runErr, ctxErr error) Status {
	if ctxErr == context.DeadlineExceeded {
		return TIMEOUT
	}

	if runErr != nil {
		return ERROR
	}

	lower := strings.ToLower(stdout)

	switch {
	case strings.Contains(lower, satMarker):
		return SAT
	case strings.Contains(lower, unsatMarker):
		return UNSAT
	default:
		return ERROR
	}
}

// head truncates s to §4.6's 500-character result-field cap.
func head(s string) string {
	const maxHeadLen = 500
	if len(s) <= maxHeadLen {
		return s
	}

	return s[:maxHeadLen]
}

func buildReport(results []Result) Report {
	counts := make(map[Status]int)

	for _, r := range results {
		counts[r.Status]++
	}

	return Report{Results: results, Counts: counts}
}
