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
package primitive

import (
	"testing"

	"github.com/taufold/zkvm/pkg/term"
)

// evalConstraints runs the constraints of a component under a bit
// assignment (given for the component's Inputs) and returns the full
// assignment including every Assign's output.
func evalConstraints(constraints []term.Constraint, bits map[string]bool) map[string]bool {
	return term.EvalConstraints(constraints, bits)
}

func bitsFor(names []string, values ...bool) map[string]bool {
	m := make(map[string]bool, len(names))
	for i, n := range names {
		m[n] = values[i]
	}

	return m
}

func TestHalfAdderTruthTable(t *testing.T) {
	a := term.MustVar("a", 0)
	b := term.MustVar("b", 0)
	s := term.MustVar("s", 0)
	c := term.MustVar("c", 0)

	comp, err := HalfAdder("half0", a, b, s, c)
	if err != nil {
		t.Fatal(err)
	}

	for av := 0; av < 2; av++ {
		for bv := 0; bv < 2; bv++ {
			in := bitsFor([]string{"a0", "b0"}, av == 1, bv == 1)
			out := evalConstraints(comp.Constraints, in)

			wantS := (av ^ bv) == 1
			wantC := (av & bv) == 1

			if out["s0"] != wantS || out["c0"] != wantC {
				t.Errorf("HalfAdder(%d,%d) = (s=%v,c=%v), want (s=%v,c=%v)", av, bv, out["s0"], out["c0"], wantS, wantC)
			}
		}
	}
}

func TestNibbleAdderChain(t *testing.T) {
	roots := Roots{A: "a", B: "b", S: "s", C: "c", Offset: 0}

	comp, cout, err := NibbleAdder("add0", roots, nil)
	if err != nil {
		t.Fatal(err)
	}

	if cout.String() != "c3" {
		t.Fatalf("cout = %s, want c3", cout)
	}

	// 0b0101 (5) + 0b0011 (3) = 0b1000 (8), carry out 0.
	in := bitsFor(
		[]string{"a0", "a1", "a2", "a3", "b0", "b1", "b2", "b3"},
		true, false, true, false,
		true, true, false, false,
	)

	out := evalConstraints(comp.Constraints, in)

	want := []bool{false, false, false, true}
	for i, w := range want {
		got := out[term.MustVar("s", i).String()]
		if got != w {
			t.Errorf("s%d = %v, want %v", i, got, w)
		}
	}

	if out["c3"] {
		t.Error("expected no carry out of nibble for 5+3=8")
	}
}

func TestNibbleAdderChainedByCarryLink(t *testing.T) {
	lowRoots := Roots{A: "a", B: "b", S: "s", C: "c", Offset: 0}

	low, coutLow, err := NibbleAdder("add0", lowRoots, nil)
	if err != nil {
		t.Fatal(err)
	}

	cinHigh := term.MustVar("c", 4)

	link, err := CarryLink("link0", coutLow, cinHigh)
	if err != nil {
		t.Fatal(err)
	}

	highRoots := Roots{A: "a", B: "b", S: "s", C: "c", Offset: 4}

	high, _, err := NibbleAdder("add1", highRoots, &cinHigh)
	if err != nil {
		t.Fatal(err)
	}

	// low nibble 0xF + 0x1 = 0x0 carry 1; high nibble 0x0 + 0x0 + cin(1) = 0x1.
	in := bitsFor(
		[]string{"a0", "a1", "a2", "a3", "b0", "b1", "b2", "b3"},
		true, true, true, true,
		true, false, false, false,
	)

	out := evalConstraints(low.Constraints, in)
	if !out["c3"] {
		t.Fatal("expected carry out of low nibble")
	}

	linkOut := evalConstraints(link.Constraints, map[string]bool{"c3": out["c3"]})
	if !linkOut["c4"] {
		t.Fatal("expected carry_link to propagate carry")
	}

	highIn := bitsFor(
		[]string{"a4", "a5", "a6", "a7", "b4", "b5", "b6", "b7", "c4"},
		false, false, false, false,
		false, false, false, false,
		linkOut["c4"],
	)

	highOut := evalConstraints(high.Constraints, highIn)
	if !highOut["s4"] || highOut["s5"] || highOut["s6"] || highOut["s7"] {
		t.Errorf("high nibble = %v %v %v %v, want 1 0 0 0", highOut["s4"], highOut["s5"], highOut["s6"], highOut["s7"])
	}
}

func TestNibbleBitwiseOps(t *testing.T) {
	cases := []struct {
		op   BitwiseOp
		f    func(a, b bool) bool
		name string
	}{
		{OpAnd, func(a, b bool) bool { return a && b }, "and0"},
		{OpOr, func(a, b bool) bool { return a || b }, "or0"},
		{OpXor, func(a, b bool) bool { return a != b }, "xor0"},
	}

	for _, tc := range cases {
		comp, err := NibbleBitwise(tc.name, tc.op, Roots{A: "a", B: "b", S: "r", Offset: 0})
		if err != nil {
			t.Fatal(err)
		}

		in := bitsFor(
			[]string{"a0", "a1", "a2", "a3", "b0", "b1", "b2", "b3"},
			true, false, true, false,
			true, true, false, false,
		)

		out := evalConstraints(comp.Constraints, in)

		want := [4]bool{
			tc.f(true, true),
			tc.f(false, true),
			tc.f(true, false),
			tc.f(false, false),
		}

		for i := 0; i < 4; i++ {
			got := out[term.MustVar("r", i).String()]
			if got != want[i] {
				t.Errorf("%s bit %d = %v, want %v", tc.name, i, got, want[i])
			}
		}
	}
}

func TestNibbleNot(t *testing.T) {
	comp, err := NibbleNot("not0", "a", "r", 0)
	if err != nil {
		t.Fatal(err)
	}

	in := bitsFor([]string{"a0", "a1", "a2", "a3"}, true, false, true, false)
	out := evalConstraints(comp.Constraints, in)

	want := []bool{false, true, false, true}
	for i, w := range want {
		got := out[term.MustVar("r", i).String()]
		if got != w {
			t.Errorf("r%d = %v, want %v", i, got, w)
		}
	}
}

func TestZeroNibbleAndAggregator(t *testing.T) {
	nz := term.MustVar("z", 0)

	comp, err := ZeroNibble("zero0", "a", 0, nz)
	if err != nil {
		t.Fatal(err)
	}

	allZero := bitsFor([]string{"a0", "a1", "a2", "a3"}, false, false, false, false)
	out := evalConstraints(comp.Constraints, allZero)

	if !out["z0"] {
		t.Error("expected nz=1 for all-zero nibble")
	}

	oneSet := bitsFor([]string{"a0", "a1", "a2", "a3"}, false, true, false, false)
	out = evalConstraints(comp.Constraints, oneSet)

	if out["z0"] {
		t.Error("expected nz=0 for a nonzero nibble")
	}

	zflag := term.MustVar("f", 0)

	agg, err := ZeroAggregator("zagg", []term.Var{term.MustVar("z", 0), term.MustVar("z", 1)}, zflag)
	if err != nil {
		t.Fatal(err)
	}

	out = evalConstraints(agg.Constraints, bitsFor([]string{"z0", "z1"}, true, true))
	if !out["f0"] {
		t.Error("expected zflag=1 when all nibbles are zero")
	}

	out = evalConstraints(agg.Constraints, bitsFor([]string{"z0", "z1"}, true, false))
	if out["f0"] {
		t.Error("expected zflag=0 when a nibble is nonzero")
	}
}

func TestMuxSelectsData(t *testing.T) {
	data := []term.Var{term.MustVar("d", 0), term.MustVar("d", 1), term.MustVar("d", 2), term.MustVar("d", 3)}
	sel := []term.Var{term.MustVar("s", 0), term.MustVar("s", 1)}
	o := term.MustVar("o", 0)

	comp, err := Mux("mux0", data, sel, o, "w")
	if err != nil {
		t.Fatal(err)
	}

	for idx := 0; idx < 4; idx++ {
		values := make([]bool, 4)
		values[idx] = true

		in := bitsFor(
			[]string{"d0", "d1", "d2", "d3", "s0", "s1"},
			values[0], values[1], values[2], values[3],
			idx&1 == 1, (idx>>1)&1 == 1,
		)

		out := evalConstraints(comp.Constraints, in)
		if !out["o0"] {
			t.Errorf("Mux with sel=%02b did not select the hot line", idx)
		}
	}
}

func TestDecoderOneHot(t *testing.T) {
	in := []term.Var{term.MustVar("i", 0), term.MustVar("i", 1)}
	out := []term.Var{term.MustVar("o", 0), term.MustVar("o", 1), term.MustVar("o", 2), term.MustVar("o", 3)}

	comp, err := Decoder("dec0", in, out)
	if err != nil {
		t.Fatal(err)
	}

	for idx := 0; idx < 4; idx++ {
		bits := bitsFor([]string{"i0", "i1"}, idx&1 == 1, (idx>>1)&1 == 1)
		result := evalConstraints(comp.Constraints, bits)

		for j := 0; j < 4; j++ {
			want := j == idx
			got := result[term.MustVar("o", j).String()]

			if got != want {
				t.Errorf("Decoder(%d): o%d = %v, want %v", idx, j, got, want)
			}
		}
	}
}

func TestShifterStageSelectsBetweenOwnAndShiftedBits(t *testing.T) {
	amt := term.MustVar("m", 0)

	comp, err := ShifterStage("shift0", "x", "n", "r", 0, amt)
	if err != nil {
		t.Fatal(err)
	}

	in := bitsFor(
		[]string{"x0", "x1", "x2", "x3", "n0", "n1", "n2", "n3", "m0"},
		true, false, true, false,
		false, true, false, true,
		false,
	)

	out := evalConstraints(comp.Constraints, in)
	if !out["r0"] || out["r1"] || !out["r2"] || out["r3"] {
		t.Error("expected shifter to pass through x bits when amt=0")
	}

	in["m0"] = true
	out = evalConstraints(comp.Constraints, in)

	if out["r0"] || !out["r1"] || out["r2"] || !out["r3"] {
		t.Error("expected shifter to pass through n bits when amt=1")
	}
}

func TestMulSmallWidth(t *testing.T) {
	comp, err := Mul("mul2", "a", "b", "p", 2)
	if err != nil {
		t.Fatal(err)
	}

	for av := 0; av < 4; av++ {
		for bv := 0; bv < 4; bv++ {
			in := bitsFor(
				[]string{"a0", "a1", "b0", "b1"},
				av&1 == 1, (av>>1)&1 == 1,
				bv&1 == 1, (bv>>1)&1 == 1,
			)

			out := evalConstraints(comp.Constraints, in)

			want := av * bv
			got := 0

			for k := 0; k < 4; k++ {
				if out[term.MustVar("p", k).String()] {
					got |= 1 << uint(k)
				}
			}

			if got != want {
				t.Errorf("Mul(%d,%d) = %d, want %d", av, bv, got, want)
			}
		}
	}
}

func TestMul8ExceedsBudget(t *testing.T) {
	_, err := Mul8("mul8", "a", "b", "p")
	if err == nil {
		t.Fatal("expected Mul8 to exceed the character budget at width 8")
	}
}

func TestDivModSmallWidth(t *testing.T) {
	comp, err := DivMod("dm0", "a", "b", "q", "r", 2)
	if err != nil {
		t.Fatal(err)
	}

	for av := 0; av < 4; av++ {
		for bv := 1; bv < 4; bv++ {
			in := bitsFor(
				[]string{"a0", "a1", "b0", "b1"},
				av&1 == 1, (av>>1)&1 == 1,
				bv&1 == 1, (bv>>1)&1 == 1,
			)

			out := evalConstraints(comp.Constraints, in)

			wantQ, wantR := av/bv, av%bv
			gotQ, gotR := 0, 0

			for k := 0; k < 2; k++ {
				if out[term.MustVar("q", k).String()] {
					gotQ |= 1 << uint(k)
				}

				if out[term.MustVar("r", k).String()] {
					gotR |= 1 << uint(k)
				}
			}

			if gotQ != wantQ || gotR != wantR {
				t.Errorf("DivMod(%d,%d) = (q=%d,r=%d), want (q=%d,r=%d)", av, bv, gotQ, gotR, wantQ, wantR)
			}
		}
	}
}
