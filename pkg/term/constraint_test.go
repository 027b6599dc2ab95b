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
package term

import "testing"

func TestSerializeHalfAdder(t *testing.T) {
	a0 := MustVar("a", 0)
	b0 := MustVar("b", 0)
	s0 := MustVar("s", 0)
	c0 := MustVar("c", 0)

	constraints := []Constraint{
		Bind{V: a0, Bit: 1},
		Bind{V: b0, Bit: 0},
		Assign{Out: s0, Term: NewXor(NewVarRef(a0), NewVarRef(b0))},
		Assign{Out: c0, Term: NewAnd(NewVarRef(a0), NewVarRef(b0))},
	}

	body, err := Serialize(constraints, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := "a0=1 && b0=0 && s0=(a0+b0) && c0=(a0&b0)"
	if body != want {
		t.Errorf("Serialize() = %q, want %q", body, want)
	}
}

func TestSerializeRejectsOverBudget(t *testing.T) {
	a0 := MustVar("a", 0)
	constraints := []Constraint{Bind{V: a0, Bit: 1}}

	if _, err := Serialize(constraints, 2); err == nil {
		t.Fatal("expected TermTooLongError")
	}
}

func TestConstraintVars(t *testing.T) {
	a0 := MustVar("a", 0)
	b0 := MustVar("b", 0)
	s0 := MustVar("s", 0)

	constraints := []Constraint{
		Bind{V: a0, Bit: 1},
		Assign{Out: s0, Term: NewXor(NewVarRef(a0), NewVarRef(b0))},
	}

	vs := ConstraintVars(constraints)
	if len(vs) != 3 {
		t.Fatalf("ConstraintVars() = %v, want 3 distinct vars", vs)
	}
}
