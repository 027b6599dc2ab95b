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
package isa

import (
	"testing"

	"github.com/segmentio/encoding/json"
)

func TestInstructionCount(t *testing.T) {
	if got, want := len(Instructions), 45; got != want {
		t.Fatalf("len(Instructions) = %d, want %d", got, want)
	}
}

func TestOpcodesAndMnemonicsAreUnique(t *testing.T) {
	opcodes := make(map[uint8]bool, len(Instructions))
	mnemonics := make(map[string]bool, len(Instructions))

	for _, d := range Instructions {
		if opcodes[d.Opcode] {
			t.Errorf("duplicate opcode %d", d.Opcode)
		}

		opcodes[d.Opcode] = true

		if mnemonics[d.Mnemonic] {
			t.Errorf("duplicate mnemonic %q", d.Mnemonic)
		}

		mnemonics[d.Mnemonic] = true
	}
}

func TestCategoryCounts(t *testing.T) {
	counts := make(map[Category]int)
	for _, d := range Instructions {
		counts[d.Category]++
	}

	want := map[Category]int{
		Arithmetic: 5,
		Bitwise:    6,
		Comparison: 6,
		Control:    5,
		Memory:     8,
		Crypto:     3,
		System:     12,
	}

	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("category %s has %d instructions, want %d", cat, counts[cat], n)
		}
	}
}

func TestByMnemonicAndByOpcodeAgree(t *testing.T) {
	d, ok := ByMnemonic("add")
	if !ok {
		t.Fatal("expected to find \"add\"")
	}

	byOp, ok := ByOpcode(d.Opcode)
	if !ok || byOp.Mnemonic != "add" {
		t.Fatalf("ByOpcode(%d) = %+v, want mnemonic \"add\"", d.Opcode, byOp)
	}

	if _, ok := ByMnemonic("nonexistent"); ok {
		t.Fatal("expected ByMnemonic to reject an unknown mnemonic")
	}
}

func TestDescriptorJSONRoundTrip(t *testing.T) {
	d := MustByMnemonic("jz")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}

	var got Descriptor
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	if got.Mnemonic != d.Mnemonic || got.Category != d.Category || got.Hint != d.Hint || len(got.Operands) != len(d.Operands) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, d)
	}
}
