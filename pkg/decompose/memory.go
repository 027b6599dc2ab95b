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

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
	"github.com/taufold/zkvm/pkg/term"
)

// memLocations and memWidth fix the demo linear memory this decomposer
// targets: 4 locations of 4 bits each, addressed by a 2-bit address
// (rootAddr). §1 specifies a 16-bit address space over 32-bit words; that
// full space has no gate-level decomposition here for the same reason
// MUL32/DIV32 don't (a 2^16-way selector tree is nowhere near
// budget-feasible). See DESIGN.md for the scope decision.
const (
	memLocations = 4
	memWidth     = 4
)

// muxInternalRoots gives primitive.Mux a distinct letters-only identifier
// root per bit position of buildLoad's memWidth independent Mux calls,
// since Var roots may not contain digits and each Mux call needs its own
// namespace for the internal wires of its selector tree.
var muxInternalRoots = [memWidth]string{"u", "v", "x", "y"}

// BuildMemory dispatches to the per-hint generator for a Memory category
// instruction (including the stack sub-group).
func BuildMemory(hint isa.SemanticsHint) (DAG, error) {
	switch hint {
	case isa.HintLoad, isa.HintMemLoad:
		return buildLoad(hintMnemonic(hint))
	case isa.HintStore, isa.HintMemStore:
		return buildStore(hintMnemonic(hint))
	case isa.HintPush:
		return buildStackCopy("push", rootA, rootS)
	case isa.HintPop:
		return buildStackCopy("pop", rootA, rootS)
	case isa.HintDup:
		return buildStackCopy("dup", rootA, rootS)
	case isa.HintSwap:
		return buildSwap()
	default:
		return DAG{}, fmt.Errorf("decompose: %s is not a memory hint", hint)
	}
}

func hintMnemonic(hint isa.SemanticsHint) string {
	switch hint {
	case isa.HintLoad:
		return "load"
	case isa.HintMemLoad:
		return "mload"
	case isa.HintStore:
		return "store"
	case isa.HintMemStore:
		return "mstore"
	default:
		return "mem"
	}
}

// buildLoad reads the memWidth-bit word at the 2-bit address into rootA,
// one primitive.Mux per bit position across the memLocations candidate
// words.
func buildLoad(mnemonic string) (DAG, error) {
	addr := make([]term.Var, 2)

	for i := range addr {
		v, err := term.NewVar(rootAddr, i)
		if err != nil {
			return DAG{}, err
		}

		addr[i] = v
	}

	var (
		comps  []component.Component
		result []term.Var
	)

	for bit := 0; bit < memWidth; bit++ {
		data := make([]term.Var, memLocations)

		for loc := 0; loc < memLocations; loc++ {
			v, err := term.NewVar(rootMem, loc*memWidth+bit)
			if err != nil {
				return DAG{}, err
			}

			data[loc] = v
		}

		out, err := term.NewVar(rootA, bit)
		if err != nil {
			return DAG{}, err
		}

		c, err := primitive.Mux(compName(mnemonic, "bit", bit), data, addr, out, muxInternalRoots[bit])
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, c)
		result = append(result, out)
	}

	return assignDAG(mnemonic, comps, result)
}

// buildStore writes rootA into the memWidth-bit word at the 2-bit address,
// leaving the other memLocations-1 words unchanged: a primitive.Decoder
// turns the address into one-hot select lines, then one small write-mux
// component per location blends the register value in when selected.
func buildStore(mnemonic string) (DAG, error) {
	addr := make([]term.Var, 2)

	for i := range addr {
		v, err := term.NewVar(rootAddr, i)
		if err != nil {
			return DAG{}, err
		}

		addr[i] = v
	}

	sel := make([]term.Var, memLocations)

	for loc := range sel {
		v, err := term.NewVar(rootZero, loc)
		if err != nil {
			return DAG{}, err
		}

		sel[loc] = v
	}

	decoder, err := primitive.Decoder(compName(mnemonic, "addr_decode", 0), addr, sel)
	if err != nil {
		return DAG{}, err
	}

	comps := []component.Component{decoder}

	var result []term.Var

	for loc := 0; loc < memLocations; loc++ {
		c, locResult, err := storeLocation(mnemonic, loc, sel[loc])
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, c)
		result = append(result, locResult...)
	}

	return assignDAG(mnemonic, comps, result)
}

// storeLocation builds new[loc*4+i] = sel ? reg[i] : old[loc*4+i] for the
// memWidth bits of one location. Unlike primitive.ShifterStage, the
// register operand and the memory word use independent bit offsets (the
// register is always bits 0..4, the memory word is offset by the
// location), so this is assembled directly rather than by reusing
// ShifterStage.
func storeLocation(mnemonic string, loc int, sel term.Var) (component.Component, []term.Var, error) {
	bld := term.NewBuilder(0)

	notSel, err := bld.Not(term.NewVarRef(sel))
	if err != nil {
		return component.Component{}, nil, err
	}

	var (
		constraints []term.Constraint
		inputs      = []term.Var{sel}
		outputs     []term.Var
	)

	for i := 0; i < memWidth; i++ {
		regBit, err := term.NewVar(rootA, i)
		if err != nil {
			return component.Component{}, nil, err
		}

		oldBit, err := term.NewVar(rootMem, loc*memWidth+i)
		if err != nil {
			return component.Component{}, nil, err
		}

		newBit, err := term.NewVar(rootMemNew, loc*memWidth+i)
		if err != nil {
			return component.Component{}, nil, err
		}

		inputs = append(inputs, regBit, oldBit)
		outputs = append(outputs, newBit)

		kept, err := bld.And(notSel, term.NewVarRef(oldBit))
		if err != nil {
			return component.Component{}, nil, err
		}

		written, err := bld.And(term.NewVarRef(sel), term.NewVarRef(regBit))
		if err != nil {
			return component.Component{}, nil, err
		}

		blended, err := bld.Or(kept, written)
		if err != nil {
			return component.Component{}, nil, err
		}

		constraints = append(constraints, term.Assign{Out: newBit, Term: blended})
	}

	comp := component.Component{
		Name:        compName(mnemonic, "loc", loc),
		Kind:        component.Aggregator,
		Inputs:      inputs,
		Outputs:     outputs,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, nil, err
	}

	return comp, outputs, nil
}

// buildStackCopy is the shared shape for PUSH/POP/DUP: an unconditional
// 32-bit identity from srcRoot to dstRoot. The stack vector itself
// (depth, over/underflow) is executor-managed state (§7); the gate-level
// content of these instructions is only "the value moved is the value
// that was there".
func buildStackCopy(mnemonic, srcRoot, dstRoot string) (DAG, error) {
	var (
		comps []component.Component
		out   []term.Var
	)

	for i := 0; i < 8; i++ {
		c, err := primitive.NibbleLink(compName(mnemonic, "copy", i), srcRoot, dstRoot, i*4)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, c)

		for j := 0; j < 4; j++ {
			v, err := term.NewVar(dstRoot, i*4+j)
			if err != nil {
				return DAG{}, err
			}

			out = append(out, v)
		}
	}

	return assignDAG(mnemonic, comps, out)
}

// buildSwap exchanges two 32-bit registers: new-a = old-b, new-b = old-a.
func buildSwap() (DAG, error) {
	var (
		comps []component.Component
		out   []term.Var
	)

	for i := 0; i < 8; i++ {
		toS, err := primitive.NibbleLink(compName("swap", "b_to_s", i), rootB, rootS, i*4)
		if err != nil {
			return DAG{}, err
		}

		toR, err := primitive.NibbleLink(compName("swap", "a_to_r", i), rootA, rootResult, i*4)
		if err != nil {
			return DAG{}, err
		}

		comps = append(comps, toS, toR)

		for j := 0; j < 4; j++ {
			sv, err := term.NewVar(rootS, i*4+j)
			if err != nil {
				return DAG{}, err
			}

			rv, err := term.NewVar(rootResult, i*4+j)
			if err != nil {
				return DAG{}, err
			}

			out = append(out, sv, rv)
		}
	}

	return assignDAG("swap", comps, out)
}
