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

import "fmt"

// binaryArith pops b then a (b was pushed last, so it sits on top),
// computes via f and pushes the 32-bit-wrapped result, updating the
// arithmetic flags.
func (e *Executor) binaryArith(mnemonic string, f func(a, b uint64) (result uint32, carry, overflow bool)) error {
	s := e.State

	b, err := s.pop(mnemonic, 2)
	if err != nil {
		return err
	}

	a, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	result, carry, overflow := f(uint64(a), uint64(b))
	updateArithmeticFlags(s.Flags, result, carry, overflow)

	return s.push(result)
}

// divMod pops b then a and fails DivisionByZeroError if b is zero.
func (e *Executor) divMod(mnemonic string, f func(a, b uint32) uint32) error {
	s := e.State

	b, err := s.pop(mnemonic, 2)
	if err != nil {
		return err
	}

	a, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	if b == 0 {
		return &DivisionByZeroError{Mnemonic: mnemonic}
	}

	result := f(a, b)
	updateLogicalFlags(s.Flags, result)

	return s.push(result)
}

func (e *Executor) binaryLogical(mnemonic string, f func(a, b uint32) uint32) error {
	s := e.State

	b, err := s.pop(mnemonic, 2)
	if err != nil {
		return err
	}

	a, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	result := f(a, b)
	updateLogicalFlags(s.Flags, result)

	return s.push(result)
}

func (e *Executor) unaryLogical(mnemonic string, f func(a uint32) uint32) error {
	s := e.State

	a, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	result := f(a)
	updateLogicalFlags(s.Flags, result)

	return s.push(result)
}

// shift pops the amount then the value, masking the amount to 5 bits
// (0..31) since a 32-bit shift by more than 31 is undefined.
func (e *Executor) shift(mnemonic string, f func(v, amt uint32) uint32) error {
	s := e.State

	amt, err := s.pop(mnemonic, 2)
	if err != nil {
		return err
	}

	value, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	result := f(value, amt&0x1F)
	updateLogicalFlags(s.Flags, result)

	return s.push(result)
}

// compare pops b then a and pushes 1 if cmp(a, b) holds, else 0. The zero
// flag reflects the pushed boolean (set when the comparison is false),
// matching a conventional CMP-flag convention; carry/overflow are always
// cleared since comparisons are decided unsigned (see DESIGN.md).
func (e *Executor) compare(mnemonic string, cmp func(a, b uint32) bool) error {
	s := e.State

	b, err := s.pop(mnemonic, 2)
	if err != nil {
		return err
	}

	a, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	var result uint32
	if cmp(a, b) {
		result = 1
	}

	updateLogicalFlags(s.Flags, result)

	return s.push(result)
}

// load resolves LOAD/MLOAD's address from an explicit trailing operand if
// the loader encoded one, otherwise pops it from the stack.
func (e *Executor) load(mnemonic string, instr Instruction) error {
	s := e.State

	addr, err := resolveAddress(s, mnemonic, instr, 1)
	if err != nil {
		return err
	}

	value, err := s.readMemory(addr)
	if err != nil {
		return err
	}

	return s.push(value)
}

// store resolves the address first (an explicit trailing operand if the
// loader encoded one, otherwise the top of the stack), then pops the
// value from beneath it — consistent with the worked example "PUSH
// value; PUSH address; STORE" (§8 scenario 4: the address is always the
// more recently pushed word).
func (e *Executor) store(mnemonic string, instr Instruction) error {
	s := e.State

	// An implicit (stack-popped) address requires two words present at
	// entry — the address and the value beneath it; an explicit operand
	// needs only the one value.
	addrNeeded := 1
	if len(instr.Operands) == 0 {
		addrNeeded = 2
	}

	addr, err := resolveAddress(s, mnemonic, instr, addrNeeded)
	if err != nil {
		return err
	}

	value, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	return s.writeMemory(addr, value)
}

// resolveAddress returns instr's trailing explicit operand if present,
// otherwise pops the address from the stack. needed is the minimum
// stack depth the caller requires to be present at this point (see
// State.pop) and is only consulted when an implicit pop actually
// happens.
func resolveAddress(s *State, mnemonic string, instr Instruction, needed int) (uint32, error) {
	if len(instr.Operands) > 0 {
		return instr.Operands[len(instr.Operands)-1], nil
	}

	return s.pop(mnemonic, needed)
}

func (e *Executor) jump(instr Instruction) error {
	if len(instr.Operands) != 1 {
		return fmt.Errorf("vm: jmp requires exactly one target operand")
	}

	e.State.PC = instr.Operands[0]

	return nil
}

// branch pops the condition, tests it with pred, and jumps if it holds.
// It returns whether the jump was taken (so Step knows not to also add 4
// to PC) and any error.
func (e *Executor) branch(mnemonic string, instr Instruction, pred func(cond uint32) bool) (bool, error) {
	if len(instr.Operands) != 1 {
		return false, fmt.Errorf("vm: %s requires exactly one target operand", mnemonic)
	}

	cond, err := e.State.pop(mnemonic, 1)
	if err != nil {
		return false, err
	}

	if pred(cond) {
		e.State.PC = instr.Operands[0]
		return true, nil
	}

	return false, nil
}

func (e *Executor) cryptoUnary(mnemonic, op string, f func(uint32) (uint32, error)) error {
	s := e.State

	value, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	result, err := f(value)
	if err != nil {
		return &CryptoFailureError{Op: op, Err: err}
	}

	return s.push(result)
}

// cryptoSign pops privateKey then message.
func (e *Executor) cryptoSign(mnemonic string) error {
	s := e.State

	privateKey, err := s.pop(mnemonic, 2)
	if err != nil {
		return err
	}

	message, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	sig, err := e.Crypto.Sign(message, privateKey)
	if err != nil {
		return &CryptoFailureError{Op: "sign", Err: err}
	}

	return s.push(sig)
}

// cryptoVerify pops publicKey, message then signature.
func (e *Executor) cryptoVerify(mnemonic string) error {
	s := e.State

	publicKey, err := s.pop(mnemonic, 3)
	if err != nil {
		return err
	}

	message, err := s.pop(mnemonic, 2)
	if err != nil {
		return err
	}

	signature, err := s.pop(mnemonic, 1)
	if err != nil {
		return err
	}

	ok, err := e.Crypto.Verify(message, signature, publicKey)
	if err != nil {
		return &CryptoFailureError{Op: "verify", Err: err}
	}

	var result uint32
	if ok {
		result = 1
	}

	return s.push(result)
}
