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
package vm

// TraceRecord is §3's Trace Record tuple for one executed step: the
// opcode, a pre-step stack snapshot, the post-step stack snapshot (the
// "post-state delta" in stack-machine terms), and any side effect the
// step produced.
type TraceRecord struct {
	PC          uint32
	Mnemonic    string
	StackBefore []uint32
	StackAfter  []uint32
	FlagsAfter  Flags
	SideEffect  string
}

// Trace is the ordered, append-only sequence of TraceRecords an Executor
// run produces, usable for replay or as witness data for the matching
// constraint DAG's shared identifiers (§3).
type Trace struct {
	Records []TraceRecord
}

// Append adds r to the trace. A trace record is appended atomically per
// step (§4.8): callers only ever see a fully-populated TraceRecord, never
// a partial one, since Executor.Step builds it as a local value before
// calling Append.
func (t *Trace) Append(r TraceRecord) {
	t.Records = append(t.Records, r)
}
