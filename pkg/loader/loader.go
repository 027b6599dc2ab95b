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
package loader

import (
	"strconv"
	"strings"

	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/vm"
)

// explicitOperand is the loader-surface arity exception list (§9,
// DESIGN.md): these mnemonics take exactly one label/immediate operand.
// Every other mnemonic not in optionalOperand below is zero-operand at
// the assembly surface — the register slots isa.Instructions lists for
// arithmetic/bitwise/comparison mnemonics describe the constraint-
// decomposition view only, not the loader's.
var explicitOperand = map[string]bool{
	"push": true,
	"jmp":  true,
	"jz":   true,
	"jnz":  true,
	"call": true,
}

// jumpTarget mnemonics resolve their operand against the label table
// first, falling back to a numeric literal byte address.
var jumpTarget = map[string]bool{
	"jmp": true, "jz": true, "jnz": true, "call": true,
}

// optionalOperand mnemonics accept zero operands (address popped from
// the stack at run time) or exactly one (a literal address).
var optionalOperand = map[string]bool{
	"load": true, "store": true, "mload": true, "mstore": true,
}

type rawInstruction struct {
	mnemonic string
	args     []string
	line     int
}

// Assemble parses src, a line-oriented mnemonic listing, into a
// vm.Program. Lines are "[label:] mnemonic [operand] [// comment]"; blank
// lines and comment-only lines are ignored. Label addresses are resolved
// in a first pass so forward jumps work, matching a conventional
// two-pass lexer/parser/linker shape generalized to this ISA's much
// simpler surface syntax.
func Assemble(src string) (vm.Program, error) {
	instrs, labels, err := scan(src)
	if err != nil {
		return vm.Program{}, err
	}

	out := make([]vm.Instruction, 0, len(instrs))

	for _, ri := range instrs {
		desc, ok := isa.ByMnemonic(ri.mnemonic)
		if !ok {
			return vm.Program{}, &UnknownMnemonicError{Mnemonic: ri.mnemonic, Line: ri.line}
		}

		operands, err := resolveOperands(ri, labels)
		if err != nil {
			return vm.Program{}, err
		}

		out = append(out, vm.Instruction{Opcode: desc.Opcode, Operands: operands})
	}

	return vm.Program{Instructions: out}, nil
}

// scan runs the label-collection pass: it strips comments, splits
// label-prefixed lines, and records each label's instruction index (not
// yet a byte address — that scaling happens in resolveOperands, since a
// label may be referenced before every instruction's index is final).
func scan(src string) ([]rawInstruction, map[string]int, error) {
	var instrs []rawInstruction

	labels := make(map[string]int)

	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1

		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if idx := strings.IndexByte(line, ':'); idx >= 0 {
			label := strings.TrimSpace(line[:idx])
			if !isIdentifier(label) {
				return nil, nil, &InvalidLabelNameError{Label: label, Line: lineNo}
			}

			if _, exists := labels[label]; exists {
				return nil, nil, &DuplicateLabelError{Label: label, Line: lineNo}
			}

			labels[label] = len(instrs)

			line = strings.TrimSpace(line[idx+1:])
			if line == "" {
				continue
			}
		}

		fields := strings.Fields(line)

		instrs = append(instrs, rawInstruction{
			mnemonic: strings.ToLower(fields[0]),
			args:     fields[1:],
			line:     lineNo,
		})
	}

	return instrs, labels, nil
}

func resolveOperands(ri rawInstruction, labels map[string]int) ([]uint32, error) {
	switch {
	case explicitOperand[ri.mnemonic]:
		if len(ri.args) != 1 {
			return nil, &OperandArityMismatchError{Mnemonic: ri.mnemonic, Line: ri.line, Want: "exactly 1", Got: len(ri.args)}
		}

		v, err := resolveOperand(ri.args[0], ri.line, labels, jumpTarget[ri.mnemonic])
		if err != nil {
			return nil, err
		}

		return []uint32{v}, nil
	case optionalOperand[ri.mnemonic]:
		if len(ri.args) > 1 {
			return nil, &OperandArityMismatchError{Mnemonic: ri.mnemonic, Line: ri.line, Want: "0 or 1", Got: len(ri.args)}
		}

		if len(ri.args) == 0 {
			return nil, nil
		}

		v, err := resolveOperand(ri.args[0], ri.line, labels, false)
		if err != nil {
			return nil, err
		}

		return []uint32{v}, nil
	default:
		if len(ri.args) != 0 {
			return nil, &OperandArityMismatchError{Mnemonic: ri.mnemonic, Line: ri.line, Want: "0", Got: len(ri.args)}
		}

		return nil, nil
	}
}

// resolveOperand turns one operand token into its final uint32 value. A
// jump-target token is tried against the label table first (as a byte
// address, index*4 per vm.Program.At's addressing), then falls back to a
// numeric literal; any other operand is numeric-only.
func resolveOperand(token string, line int, labels map[string]int, isJumpTarget bool) (uint32, error) {
	if isJumpTarget {
		if idx, ok := labels[token]; ok {
			return uint32(idx) * 4, nil
		}
	}

	v, err := strconv.ParseUint(token, 0, 32)
	if err != nil {
		if isJumpTarget {
			return 0, &UnknownLabelError{Label: token, Line: line}
		}

		return 0, &MalformedOperandError{Token: token, Line: line}
	}

	return uint32(v), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}
