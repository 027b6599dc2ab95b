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
	"errors"
	"testing"

	"github.com/taufold/zkvm/pkg/util/assert"
	"github.com/taufold/zkvm/pkg/vm"
)

func TestAssembleAdd5Plus7(t *testing.T) {
	prog, err := Assemble(`
		// 5 + 7
		push 5
		push 7
		add
		write
		halt
	`)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	e := vm.NewExecutor(prog, nil)
	if err := e.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}

	assert.Equal(t, uint32(12), e.State.IO.Output[0])
}

func TestAssembleForwardLabel(t *testing.T) {
	prog, err := Assemble(`
		push 0
		jz end
		push 999
		end: push 1
		write
		halt
	`)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	e := vm.NewExecutor(prog, nil)
	if err := e.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}

	assert.Equal(t, uint32(1), e.State.IO.Output[0], "forward jump should have skipped push 999")
}

func TestAssembleBackwardLabelLoop(t *testing.T) {
	// Counts down from 3 to 0, writing 3, 2 and 1 (not 0), then halts.
	prog, err := Assemble(`
		push 3
		loop: dup
		write
		push 1
		sub
		dup
		jnz loop
		pop
		halt
	`)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	e := vm.NewExecutor(prog, nil)
	if err := e.Run(1000); err != nil {
		t.Fatalf("run: %v", err)
	}

	assert.Equal(t, []uint32{3, 2, 1}, e.State.IO.Output)
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := Assemble("frobnicate\n")

	var unknown *UnknownMnemonicError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownMnemonicError, got %v", err)
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	_, err := Assemble(`
		start: nop
		start: halt
	`)

	var dup *DuplicateLabelError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateLabelError, got %v", err)
	}
}

func TestAssembleUnknownLabel(t *testing.T) {
	_, err := Assemble("jmp nowhere\n")

	var unknown *UnknownLabelError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownLabelError, got %v", err)
	}
}

func TestAssembleOperandArityMismatch(t *testing.T) {
	_, err := Assemble("push\n")

	var arity *OperandArityMismatchError
	if !errors.As(err, &arity) {
		t.Fatalf("expected *OperandArityMismatchError, got %v", err)
	}
}

func TestAssembleArithmeticMnemonicRejectsOperand(t *testing.T) {
	_, err := Assemble("add r1\n")

	var arity *OperandArityMismatchError
	if !errors.As(err, &arity) {
		t.Fatalf("expected *OperandArityMismatchError, got %v", err)
	}
}

func TestAssembleStoreWithExplicitAddress(t *testing.T) {
	prog, err := Assemble(`
		push 0xCAFE
		store 0x100
		load 0x100
		write
		halt
	`)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	e := vm.NewExecutor(prog, nil)
	if err := e.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}

	assert.Equal(t, uint32(0xCAFE), e.State.IO.Output[0])
}

func TestAssembleHexAndHalt(t *testing.T) {
	prog, err := Assemble("push 0xFF\nhalt\n")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	assert.Equal(t, 2, len(prog.Instructions))
}
