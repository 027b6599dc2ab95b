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
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/term"
)

// DivMod builds quotient and remainder as a lookup table rather than a
// gate-level division circuit: every (a, b) pair of width-bit operands is
// one-hot decoded (as Decoder does), and each output bit is the OR of the
// one-hot lines for which that bit of the table's precomputed quotient or
// remainder is set. b=0 maps to q=0, r=0 in the table; the VM layer (C8),
// not this primitive, is responsible for raising DivisionByZero before a
// gate-level division would ever be evaluated at b=0.
//
// The table has 2^(2*width) one-hot lines, so the character budget caps
// practical use at width 2-3; wider operands (including the ISA's 32-bit
// DIV/MOD) return ErrNotYetDecomposable from the decomposer instead of
// calling this primitive (DESIGN.md, Open Questions).
func DivMod(name, aRoot, bRoot, qRoot, rRoot string, width int) (component.Component, error) {
	if width <= 0 {
		return component.Component{}, fmt.Errorf("divmod: width must be positive, got %d", width)
	}

	n := 2 * width
	size := 1 << uint(n)

	bld := term.NewBuilder(0)

	in := make([]term.Var, n)

	for i := 0; i < width; i++ {
		av, err := term.NewVar(aRoot, i)
		if err != nil {
			return component.Component{}, err
		}

		in[i] = av
	}

	for i := 0; i < width; i++ {
		bv, err := term.NewVar(bRoot, i)
		if err != nil {
			return component.Component{}, err
		}

		in[width+i] = bv
	}

	q := make([]term.Var, width)
	r := make([]term.Var, width)

	for i := 0; i < width; i++ {
		qv, err := term.NewVar(qRoot, i)
		if err != nil {
			return component.Component{}, err
		}

		rv, err := term.NewVar(rRoot, i)
		if err != nil {
			return component.Component{}, err
		}

		q[i], r[i] = qv, rv
	}

	mask := (1 << uint(width)) - 1

	qBits := make([]term.Term, width)
	rBits := make([]term.Term, width)

	for idx := 0; idx < size; idx++ {
		a := idx & mask
		b := (idx >> uint(width)) & mask

		var quot, rem int
		if b != 0 {
			quot, rem = a/b, a%b
		}

		oneHot, err := decodeLine(bld, in, idx)
		if err != nil {
			return component.Component{}, fmt.Errorf("divmod: %w", err)
		}

		for i := 0; i < width; i++ {
			if (quot>>uint(i))&1 == 1 {
				qBits[i], err = orInto(bld, qBits[i], oneHot)
				if err != nil {
					return component.Component{}, fmt.Errorf("divmod: %w", err)
				}
			}

			if (rem>>uint(i))&1 == 1 {
				rBits[i], err = orInto(bld, rBits[i], oneHot)
				if err != nil {
					return component.Component{}, fmt.Errorf("divmod: %w", err)
				}
			}
		}
	}

	constraints := make([]term.Constraint, 0, 2*width)

	for i := 0; i < width; i++ {
		qt := qBits[i]
		if qt == nil {
			qt = term.Lit(false)
		}

		rt := rBits[i]
		if rt == nil {
			rt = term.Lit(false)
		}

		constraints = append(constraints,
			term.Assign{Out: q[i], Term: qt},
			term.Assign{Out: r[i], Term: rt},
		)
	}

	outputs := make([]term.Var, 0, 2*width)
	outputs = append(outputs, q...)
	outputs = append(outputs, r...)

	comp := component.Component{
		Name:        name,
		Kind:        component.Primitive,
		Inputs:      in,
		Outputs:     outputs,
		Constraints: constraints,
	}

	if err := comp.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("divmod: %w", err)
	}

	return comp, nil
}

// decodeLine builds the AND of literals selecting exactly in == idx.
func decodeLine(bld *term.Builder, in []term.Var, idx int) (term.Term, error) {
	var acc term.Term

	for i, v := range in {
		var lit term.Term
		if (idx>>uint(i))&1 == 1 {
			lit = term.NewVarRef(v)
		} else {
			notv, err := bld.Not(term.NewVarRef(v))
			if err != nil {
				return nil, err
			}

			lit = notv
		}

		if acc == nil {
			acc = lit
			continue
		}

		next, err := bld.And(acc, lit)
		if err != nil {
			return nil, err
		}

		acc = next
	}

	return acc, nil
}

// orInto ORs line into acc, returning line unchanged if acc is nil.
func orInto(bld *term.Builder, acc, line term.Term) (term.Term, error) {
	if acc == nil {
		return line, nil
	}

	return bld.Or(acc, line)
}
