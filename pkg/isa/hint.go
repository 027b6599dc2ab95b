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

// SemanticsHint selects the primitive template the decomposer (C4) and the
// executor (C8) use for a mnemonic. This is a closed enumeration rather
// than dynamic dispatch by mnemonic string: mnemonics are loader-only
// surface syntax (§9), the hint is the only thing C4/C8 switch on.
type SemanticsHint int

const (
	HintAdd32 SemanticsHint = iota
	HintSub32
	HintMul32
	HintDiv32
	HintMod32

	HintAnd32
	HintOr32
	HintXor32
	HintNot32
	HintShl32
	HintShr32

	HintEq32
	HintNeq32
	HintLt32
	HintGt32
	HintLte32
	HintGte32

	HintLoad
	HintStore
	HintMemLoad
	HintMemStore
	HintPush
	HintPop
	HintDup
	HintSwap

	HintJump
	HintJumpIfZero
	HintJumpIfNotZero
	HintCall
	HintReturn

	HintHash
	HintVerify
	HintSign

	HintHalt
	HintNop
	HintDebug
	HintAssert
	HintLog
	HintRead
	HintWrite
	HintSend
	HintRecv
	HintTime
	HintRand
	HintID
)

var hintNames = map[SemanticsHint]string{
	HintAdd32: "Add32", HintSub32: "Sub32", HintMul32: "Mul32", HintDiv32: "Div32", HintMod32: "Mod32",
	HintAnd32: "And32", HintOr32: "Or32", HintXor32: "Xor32", HintNot32: "Not32", HintShl32: "Shl32", HintShr32: "Shr32",
	HintEq32: "Eq32", HintNeq32: "Neq32", HintLt32: "Lt32", HintGt32: "Gt32", HintLte32: "Lte32", HintGte32: "Gte32",
	HintLoad: "Load", HintStore: "Store", HintMemLoad: "MemLoad", HintMemStore: "MemStore",
	HintPush: "Push", HintPop: "Pop", HintDup: "Dup", HintSwap: "Swap",
	HintJump: "Jump", HintJumpIfZero: "JumpIfZero", HintJumpIfNotZero: "JumpIfNotZero", HintCall: "Call", HintReturn: "Return",
	HintHash: "Hash", HintVerify: "Verify", HintSign: "Sign",
	HintHalt: "Halt", HintNop: "Nop", HintDebug: "Debug", HintAssert: "Assert", HintLog: "Log",
	HintRead: "Read", HintWrite: "Write", HintSend: "Send", HintRecv: "Recv",
	HintTime: "Time", HintRand: "Rand", HintID: "Id",
}

func (h SemanticsHint) String() string {
	if s, ok := hintNames[h]; ok {
		return s
	}

	return "Unknown"
}

func (h SemanticsHint) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

func (h *SemanticsHint) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}

	for hint, name := range hintNames {
		if name == s {
			*h = hint
			return nil
		}
	}

	return fmt.Errorf("isa: unknown semantics hint %q", s)
}
