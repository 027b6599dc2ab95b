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

import "fmt"

// Descriptor is §6.1's instruction descriptor: (opcode, mnemonic,
// category, operand slots, semantics hint).
type Descriptor struct {
	Opcode   uint8         `json:"opcode"`
	Mnemonic string        `json:"mnemonic"`
	Category Category      `json:"category"`
	Operands []OperandSlot `json:"operands"`
	Hint     SemanticsHint `json:"semantics_hint"`
}

func reg(n int) []OperandSlot {
	slots := make([]OperandSlot, n)
	for i := range slots {
		slots[i] = OperandSlot{Kind: Register}
	}

	return slots
}

func slots(kinds ...OperandKind) []OperandSlot {
	out := make([]OperandSlot, len(kinds))
	for i, k := range kinds {
		out[i] = OperandSlot{Kind: k}
	}

	return out
}

// Instructions is the complete 45-instruction ISA (§1, §6.1), the single
// source of truth shared by the decomposer, the executor and the program
// loader. Opcodes are assigned sequentially within [0,127).
var Instructions = buildInstructions()

func buildInstructions() []Descriptor {
	type entry struct {
		mnemonic string
		category Category
		operands []OperandSlot
		hint     SemanticsHint
	}

	entries := []entry{
		// Arithmetic (5)
		{"add", Arithmetic, reg(3), HintAdd32},
		{"sub", Arithmetic, reg(3), HintSub32},
		{"mul", Arithmetic, reg(3), HintMul32},
		{"div", Arithmetic, reg(3), HintDiv32},
		{"mod", Arithmetic, reg(3), HintMod32},

		// Bitwise (6)
		{"and", Bitwise, reg(3), HintAnd32},
		{"or", Bitwise, reg(3), HintOr32},
		{"xor", Bitwise, reg(3), HintXor32},
		{"not", Bitwise, reg(2), HintNot32},
		{"shl", Bitwise, reg(3), HintShl32},
		{"shr", Bitwise, reg(3), HintShr32},

		// Comparison (6)
		{"eq", Comparison, reg(3), HintEq32},
		{"neq", Comparison, reg(3), HintNeq32},
		{"lt", Comparison, reg(3), HintLt32},
		{"gt", Comparison, reg(3), HintGt32},
		{"lte", Comparison, reg(3), HintLte32},
		{"gte", Comparison, reg(3), HintGte32},

		// Memory, including stack operations (8)
		{"load", Memory, slots(Register, Address), HintLoad},
		{"store", Memory, slots(Address, Register), HintStore},
		{"mload", Memory, slots(Register, Register), HintMemLoad},
		{"mstore", Memory, slots(Register, Register), HintMemStore},
		{"push", Memory, slots(Immediate32), HintPush},
		{"pop", Memory, reg(1), HintPop},
		{"dup", Memory, reg(1), HintDup},
		{"swap", Memory, reg(2), HintSwap},

		// Control flow (5)
		{"jmp", Control, slots(Label), HintJump},
		{"jz", Control, slots(Register, Label), HintJumpIfZero},
		{"jnz", Control, slots(Register, Label), HintJumpIfNotZero},
		{"call", Control, slots(Label), HintCall},
		{"ret", Control, nil, HintReturn},

		// Crypto (3)
		{"hash", Crypto, reg(2), HintHash},
		{"verify", Crypto, reg(3), HintVerify},
		{"sign", Crypto, reg(2), HintSign},

		// System, including I/O and utility (12)
		{"halt", System, nil, HintHalt},
		{"nop", System, nil, HintNop},
		{"debug", System, reg(1), HintDebug},
		{"assert", System, reg(1), HintAssert},
		{"log", System, reg(1), HintLog},
		{"read", System, reg(1), HintRead},
		{"write", System, reg(1), HintWrite},
		{"send", System, reg(2), HintSend},
		{"recv", System, reg(1), HintRecv},
		{"time", System, reg(1), HintTime},
		{"rand", System, reg(1), HintRand},
		{"id", System, reg(1), HintID},
	}

	out := make([]Descriptor, len(entries))
	for i, e := range entries {
		out[i] = Descriptor{
			Opcode:   uint8(i),
			Mnemonic: e.mnemonic,
			Category: e.category,
			Operands: e.operands,
			Hint:     e.hint,
		}
	}

	return out
}

var (
	byMnemonic = indexByMnemonic()
	byOpcode   = indexByOpcode()
)

func indexByMnemonic() map[string]Descriptor {
	m := make(map[string]Descriptor, len(Instructions))
	for _, d := range Instructions {
		m[d.Mnemonic] = d
	}

	return m
}

func indexByOpcode() map[uint8]Descriptor {
	m := make(map[uint8]Descriptor, len(Instructions))
	for _, d := range Instructions {
		m[d.Opcode] = d
	}

	return m
}

// ByMnemonic looks up a descriptor by its mnemonic (case-sensitive,
// lowercase per §6.1's persisted form).
func ByMnemonic(mnemonic string) (Descriptor, bool) {
	d, ok := byMnemonic[mnemonic]
	return d, ok
}

// ByOpcode looks up a descriptor by its numeric opcode.
func ByOpcode(opcode uint8) (Descriptor, bool) {
	d, ok := byOpcode[opcode]
	return d, ok
}

// MustByMnemonic is ByMnemonic but panics on an unknown mnemonic; intended
// for package-init-time lookups against the static Instructions table,
// never for loader input.
func MustByMnemonic(mnemonic string) Descriptor {
	d, ok := ByMnemonic(mnemonic)
	if !ok {
		panic(fmt.Sprintf("isa: unknown mnemonic %q", mnemonic))
	}

	return d
}
