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
	"math/rand"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/taufold/zkvm/pkg/util/collection/stack"
)

// DefaultStackDepth and DefaultMemoryWords are §9's defaults: stack depth
// 1024, memory 64KiB of 32-bit-addressable words.
const (
	DefaultStackDepth  = 1024
	DefaultMemoryWords = 1 << 16

	flagZero = iota
	flagNegative
	flagCarry
	flagOverflow
)

// Flags is the zero/negative/carry/overflow register, bitset-backed the
// same way pkg/term's Namespace tracks claimed indices —
// four flags is a literal "is bit N set" question.
type Flags struct {
	bits *bitset.BitSet
}

func newFlags() Flags {
	return Flags{bits: bitset.New(4)}
}

func (f Flags) set(bit uint, v bool) {
	if v {
		f.bits.Set(bit)
	} else {
		f.bits.Clear(bit)
	}
}

// Snapshot returns an independent copy of f, since Flags wraps a pointer
// bitset and a trace record must freeze the flags as they stood at that
// step, not track every later mutation of the live register.
func (f Flags) Snapshot() Flags {
	return Flags{bits: f.bits.Clone()}
}

// Zero reports the zero flag.
func (f Flags) Zero() bool { return f.bits.Test(flagZero) }

// Negative reports the negative (sign) flag.
func (f Flags) Negative() bool { return f.bits.Test(flagNegative) }

// Carry reports the carry flag.
func (f Flags) Carry() bool { return f.bits.Test(flagCarry) }

// Overflow reports the signed-overflow flag.
func (f Flags) Overflow() bool { return f.bits.Test(flagOverflow) }

// IO holds the VM's three I/O surfaces: the input queue READ drains, the
// output queue WRITE appends to, and an append-only debug log.
type IO struct {
	Input  []uint32
	Output []uint32
	Debug  []string
}

// State is §3's VM State tuple: 16 general registers, program counter,
// flags, a bounded stack, sparse linear memory, the halted flag and I/O
// channels. Registers are carried for data-model parity with the ISA
// descriptor table's register operand slots, but no instruction handler
// in this executor reads or writes them: every arithmetic, bitwise,
// comparison, memory and stack instruction operates on the value stack,
// not the register file. See DESIGN.md for this Open Question's
// resolution.
type State struct {
	Registers [16]uint32
	PC        uint32
	Flags     Flags

	stack      *stack.Stack[uint32]
	StackDepth int

	Memory      map[uint32]uint32
	MemoryWords int

	Halted bool
	Cycles int

	IO IO

	// Now, Rand and NextID back the TIME/RAND/ID instructions, defaulting
	// to a real clock/RNG/counter; tests override these with deterministic
	// functions so traces stay reproducible (§8's determinism property
	// only binds the compiler, but reproducible executor tests still need
	// it).
	Now    func() uint32
	Rand   func() uint32
	NextID func() uint32

	program Program
}

// NewState returns a fresh State ready to execute program, with the
// default stack depth and memory size.
func NewState(program Program) *State {
	return &State{
		Flags:       newFlags(),
		stack:       stack.NewStack[uint32](),
		StackDepth:  DefaultStackDepth,
		Memory:      make(map[uint32]uint32),
		MemoryWords: DefaultMemoryWords,
		Now:         defaultClock,
		Rand:        defaultRand(),
		NextID:      defaultIDGen(),
		program:     program,
	}
}

// StackLen reports the number of words currently on the value stack.
func (s *State) StackLen() int {
	return int(s.stack.Len())
}

// push appends a word to the value stack, failing with StackOverflowError
// once StackDepth is reached.
func (s *State) push(v uint32) error {
	if s.StackLen() >= s.StackDepth {
		return &StackOverflowError{Depth: s.StackLen()}
	}

	s.stack.Push(v)

	return nil
}

// pop removes and returns the top of the value stack, failing with
// StackUnderflowError rather than panicking the way stack.Stack[T].Pop
// does — the executor must surface this as an ordinary runtime error.
// needed is the minimum depth required at the moment of this call, not
// necessarily the calling instruction's total operand count: a caller
// popping N operands in sequence must pass the count of words still
// required INCLUDING this one (N, N-1, ..., 1) so the precondition is
// checked against the stack as it actually stands at each pop, and so
// Had reflects that same true depth rather than a post-partial-pop
// count.
func (s *State) pop(mnemonic string, needed int) (uint32, error) {
	if s.StackLen() < needed {
		return 0, &StackUnderflowError{Mnemonic: mnemonic, Needed: needed, Had: s.StackLen()}
	}

	return s.stack.Pop(), nil
}

// peek returns the top of the value stack without removing it.
func (s *State) peek(mnemonic string) (uint32, error) {
	if s.stack.IsEmpty() {
		return 0, &StackUnderflowError{Mnemonic: mnemonic, Needed: 1, Had: 0}
	}

	return s.stack.Peek(0), nil
}

// StackSnapshot returns a copy of the value stack, top element last, for
// trace records and tests.
func (s *State) StackSnapshot() []uint32 {
	out := make([]uint32, 0, s.StackLen())

	for i := s.StackLen() - 1; i >= 0; i-- {
		out = append(out, s.stack.Peek(uint(i)))
	}

	return out
}

func (s *State) readMemory(addr uint32) (uint32, error) {
	if addr >= uint32(s.MemoryWords) {
		return 0, &InvalidMemoryAddressError{Address: addr}
	}

	return s.Memory[addr], nil
}

func (s *State) writeMemory(addr, value uint32) error {
	if addr >= uint32(s.MemoryWords) {
		return &InvalidMemoryAddressError{Address: addr}
	}

	s.Memory[addr] = value

	return nil
}

func updateArithmeticFlags(f Flags, result uint32, carry, overflow bool) {
	f.set(flagZero, result == 0)
	f.set(flagNegative, result&0x8000_0000 != 0)
	f.set(flagCarry, carry)
	f.set(flagOverflow, overflow)
}

func defaultClock() uint32 {
	return uint32(time.Now().Unix() & 0xFFFFFFFF)
}

func defaultRand() func() uint32 {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func() uint32 { return src.Uint32() }
}

func defaultIDGen() func() uint32 {
	var next uint32

	src := rand.New(rand.NewSource(time.Now().UnixNano()))

	return func() uint32 {
		next++
		return next ^ src.Uint32()
	}
}

func updateLogicalFlags(f Flags, result uint32) {
	f.set(flagZero, result == 0)
	f.set(flagNegative, result&0x8000_0000 != 0)
	f.set(flagCarry, false)
	f.set(flagOverflow, false)
}
