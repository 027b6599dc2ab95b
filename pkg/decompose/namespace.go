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
package decompose

import "fmt"

// Conventional single-letter identifier roots (§4.1's "roots per role"):
// a, b name the two 32-bit operands, s the result, c the intra-nibble
// carry chain, k the inter-nibble carry-link output, z the per-nibble
// zero-detector bit, f the flag word (zero, negative, carry, overflow),
// p the next program counter a control instruction produces, n the
// sequential PC+4 it may select, and t a scratch root for components
// that need an identifier no other role claims.
const (
	rootA      = "a"
	rootB      = "b"
	rootS      = "s"
	rootCarry  = "c"
	rootLink   = "k"
	rootZero   = "z"
	rootFlag   = "f"
	rootPC     = "p"
	rootNextS  = "n"
	rootScrat  = "t"
	rootNotB   = "w"
	rootResult = "r"
	rootTarget = "d"
	rootAddr   = "e"
	rootMem    = "m"
	rootMemNew = "u"
)

// Flag bit indices within the f root, per §1's VM state flags (zero,
// negative, carry, overflow).
const (
	flagZero = iota
	flagNegative
	flagCarry
	flagOverflow
)

// compName formats a component file name that encodes the instruction and
// the component's role, per §5: "file names encode instruction and role
// (e.g. add_nibble_0, carry_3_to_4)".
func compName(mnemonic, role string, idx int) string {
	return fmt.Sprintf("%s_%s_%d", mnemonic, role, idx)
}

// linkName formats a carry-link component name, e.g. "add_carry_3_to_4".
func linkName(mnemonic string, from, to int) string {
	return fmt.Sprintf("%s_carry_%d_to_%d", mnemonic, from, to)
}
