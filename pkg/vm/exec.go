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

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/taufold/zkvm/pkg/isa"
)

// Executor runs the FETCH/DECODE/EXECUTE/WRITEBACK/UPDATE_PC loop (§4.8)
// over a Program, accumulating a Trace and delegating HASH/SIGN/VERIFY to
// a pluggable CryptoProvider (§6.4).
type Executor struct {
	State  *State
	Trace  Trace
	Crypto CryptoProvider
}

// NewExecutor returns an Executor over program. A nil crypto defaults to
// StubCryptoProvider.
func NewExecutor(program Program, crypto CryptoProvider) *Executor {
	if crypto == nil {
		crypto = StubCryptoProvider{}
	}

	return &Executor{State: NewState(program), Crypto: crypto}
}

// Run executes until halted, a runtime error occurs, or maxSteps steps
// have run (0 means unbounded, matching §5's "unlimited by default").
func (e *Executor) Run(maxSteps int) error {
	for maxSteps == 0 || e.State.Cycles < maxSteps {
		if e.State.Halted {
			return nil
		}

		if err := e.Step(); err != nil {
			return err
		}
	}

	return &StepBudgetExceededError{MaxSteps: maxSteps}
}

// Step executes a single instruction, appending exactly one TraceRecord
// (§4.8: "a trace record is appended atomically per step").
func (e *Executor) Step() error {
	s := e.State

	instr, err := s.program.At(s.PC) // FETCH
	if err != nil {
		return err
	}

	desc, ok := isa.ByOpcode(instr.Opcode) // DECODE
	if !ok {
		return &UnknownOpcodeError{Opcode: instr.Opcode}
	}

	before := s.StackSnapshot()

	sideEffect, pcSet, err := e.execute(desc, instr) // EXECUTE + WRITEBACK
	if err != nil {
		return err
	}

	if !pcSet {
		s.PC += 4 // UPDATE_PC, sequential case
	}

	s.Cycles++

	stepPC := s.PC
	if !pcSet {
		stepPC -= 4 // s.PC already advanced past the instruction that just ran
	}

	e.Trace.Append(TraceRecord{
		PC:          stepPC,
		Mnemonic:    desc.Mnemonic,
		StackBefore: before,
		StackAfter:  s.StackSnapshot(),
		FlagsAfter:  s.Flags.Snapshot(),
		SideEffect:  sideEffect,
	})

	log.WithField("pc", stepPC).WithField("mnemonic", desc.Mnemonic).Debug("executed step")

	return nil
}

// execute dispatches on the instruction's semantics hint (not its
// mnemonic — mnemonics are loader-only surface syntax, §9) and returns
// any side-effect description, whether it already updated PC itself
// (control flow), and any runtime error.
func (e *Executor) execute(desc isa.Descriptor, instr Instruction) (sideEffect string, pcSet bool, err error) {
	s := e.State

	switch desc.Hint {
	case isa.HintAdd32:
		err = e.binaryArith(desc.Mnemonic, func(a, b uint64) (uint32, bool, bool) {
			sum := a + b
			result := uint32(sum & 0xFFFFFFFF)
			carry := sum > 0xFFFFFFFF
			overflow := (uint32(a)^uint32(b))&0x8000_0000 == 0 && (uint32(a)^result)&0x8000_0000 != 0

			return result, carry, overflow
		})
	case isa.HintSub32:
		err = e.binaryArith(desc.Mnemonic, func(a, b uint64) (uint32, bool, bool) {
			diff := a - b
			result := uint32(diff & 0xFFFFFFFF)
			borrow := a < b
			overflow := (uint32(a)^uint32(b))&0x8000_0000 != 0 && (uint32(a)^result)&0x8000_0000 != 0

			return result, borrow, overflow
		})
	case isa.HintMul32:
		err = e.binaryArith(desc.Mnemonic, func(a, b uint64) (uint32, bool, bool) {
			product := a * b
			result := uint32(product & 0xFFFFFFFF)

			return result, product > 0xFFFFFFFF, false
		})
	case isa.HintDiv32:
		err = e.divMod(desc.Mnemonic, func(a, b uint32) uint32 { return a / b })
	case isa.HintMod32:
		err = e.divMod(desc.Mnemonic, func(a, b uint32) uint32 { return a % b })
	case isa.HintAnd32:
		err = e.binaryLogical(desc.Mnemonic, func(a, b uint32) uint32 { return a & b })
	case isa.HintOr32:
		err = e.binaryLogical(desc.Mnemonic, func(a, b uint32) uint32 { return a | b })
	case isa.HintXor32:
		err = e.binaryLogical(desc.Mnemonic, func(a, b uint32) uint32 { return a ^ b })
	case isa.HintNot32:
		err = e.unaryLogical(desc.Mnemonic, func(a uint32) uint32 { return ^a })
	case isa.HintShl32:
		err = e.shift(desc.Mnemonic, func(v, amt uint32) uint32 { return v << amt })
	case isa.HintShr32:
		err = e.shift(desc.Mnemonic, func(v, amt uint32) uint32 { return v >> amt })
	case isa.HintEq32:
		err = e.compare(desc.Mnemonic, func(a, b uint32) bool { return a == b })
	case isa.HintNeq32:
		err = e.compare(desc.Mnemonic, func(a, b uint32) bool { return a != b })
	case isa.HintLt32:
		err = e.compare(desc.Mnemonic, func(a, b uint32) bool { return a < b })
	case isa.HintGt32:
		err = e.compare(desc.Mnemonic, func(a, b uint32) bool { return a > b })
	case isa.HintLte32:
		err = e.compare(desc.Mnemonic, func(a, b uint32) bool { return a <= b })
	case isa.HintGte32:
		err = e.compare(desc.Mnemonic, func(a, b uint32) bool { return a >= b })
	case isa.HintLoad, isa.HintMemLoad:
		err = e.load(desc.Mnemonic, instr)
	case isa.HintStore, isa.HintMemStore:
		err = e.store(desc.Mnemonic, instr)
	case isa.HintPush:
		if len(instr.Operands) != 1 {
			err = fmt.Errorf("vm: push requires exactly one immediate operand")
			break
		}

		err = s.push(instr.Operands[0])
	case isa.HintPop:
		_, err = s.pop(desc.Mnemonic, 1)
	case isa.HintDup:
		var top uint32

		top, err = s.peek(desc.Mnemonic)
		if err == nil {
			err = s.push(top)
		}
	case isa.HintSwap:
		var a, b uint32

		a, err = s.pop(desc.Mnemonic, 2)
		if err == nil {
			b, err = s.pop(desc.Mnemonic, 1)
		}

		if err == nil {
			_ = s.push(a)
			_ = s.push(b)
		}
	case isa.HintJump:
		pcSet, err = true, e.jump(instr)
	case isa.HintJumpIfZero:
		pcSet, err = e.branch(desc.Mnemonic, instr, func(cond uint32) bool { return cond == 0 })
	case isa.HintJumpIfNotZero:
		pcSet, err = e.branch(desc.Mnemonic, instr, func(cond uint32) bool { return cond != 0 })
	case isa.HintCall:
		if len(instr.Operands) != 1 {
			err = fmt.Errorf("vm: call requires exactly one target operand")
			break
		}

		err = s.push(s.PC + 4)
		if err == nil {
			s.PC = instr.Operands[0]
			pcSet = true
		}
	case isa.HintReturn:
		var target uint32

		target, err = s.pop(desc.Mnemonic, 1)
		if err == nil {
			s.PC = target
			pcSet = true
		}
	case isa.HintHash:
		err = e.cryptoUnary(desc.Mnemonic, "hash", e.Crypto.Hash)
	case isa.HintSign:
		err = e.cryptoSign(desc.Mnemonic)
	case isa.HintVerify:
		err = e.cryptoVerify(desc.Mnemonic)
	case isa.HintHalt:
		s.Halted = true
	case isa.HintNop:
		// no-op
	case isa.HintDebug:
		if s.StackLen() > 0 {
			top, _ := s.peek(desc.Mnemonic)
			sideEffect = fmt.Sprintf("debug: stack_top=%d", top)
		}
	case isa.HintAssert:
		var cond uint32

		cond, err = s.pop(desc.Mnemonic, 1)
		if err == nil && cond == 0 {
			err = &AssertionFailedError{PC: s.PC}
		}
	case isa.HintLog:
		var value uint32

		value, err = s.pop(desc.Mnemonic, 1)
		if err == nil {
			s.IO.Debug = append(s.IO.Debug, fmt.Sprintf("LOG: %d", value))
			sideEffect = "log"
		}
	case isa.HintRead:
		if len(s.IO.Input) == 0 {
			err = &NoInputError{}
			break
		}

		value := s.IO.Input[0]
		s.IO.Input = s.IO.Input[1:]
		err = s.push(value)
		sideEffect = "read"
	case isa.HintWrite:
		var value uint32

		value, err = s.pop(desc.Mnemonic, 1)
		if err == nil {
			s.IO.Output = append(s.IO.Output, value)
			sideEffect = "write"
		}
	case isa.HintSend:
		var value uint32

		value, err = s.pop(desc.Mnemonic, 1)
		if err == nil {
			sideEffect = fmt.Sprintf("send: %d", value)
		}
	case isa.HintRecv:
		err = s.push(42) // placeholder inbound value; no real channel backs RECV
		sideEffect = "recv"
	case isa.HintTime:
		err = s.push(s.Now())
	case isa.HintRand:
		err = s.push(s.Rand())
	case isa.HintID:
		err = s.push(s.NextID())
	default:
		err = &UnknownOpcodeError{Opcode: instr.Opcode}
	}

	return sideEffect, pcSet, err
}
