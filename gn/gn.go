// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gn implements the optional Green-Naghdi dispersive correction
// (spec.md §4.5): a second-order regularization of the discharge field
// inserted between two shallow-water half-stages. The local elliptic
// solve's stiffness assembly is grounded on msolid/linelast.go's small-
// strain B^T*D*B pattern (there Update/CalcD build an element stiffness
// from strain-displacement gradients; here the same B^T*B structure builds
// a Helmholtz-type smoothing operator from basis gradients), specialized
// from a fully globally-coupled HDG system (as the original GN trace
// system would require) to a per-element solve — a scope simplification
// recorded in DESIGN.md.
package gn

import (
	"github.com/cpmech/gosl/la"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Stage names the four-part state machine a Green-Naghdi step cycles
// through (spec.md §4.5, §7 "NaN scrutiny" applies after every stage).
type Stage int

const (
	SweStageA Stage = iota
	DispersiveCorrection
	SweStageB
	IncrementStepper
)

// SolveW1 builds and solves the local elliptic correction
//
//	∫ (dv/dx*dw1/dx + dv/dy*dw1/dy + tau*v*w1) dV
//	    = ∫ (dv/dx*alpha*h^2/3*qx + dv/dy*alpha*h^2/3*qy) dV   for every test v,
//
// returning w1's modal coefficients. tau (env.Environment.Tau) plays the
// same stabilizing role here that it plays in the HDG trace system
// (spec.md §4.6): without it the pure-Neumann elliptic operator built from
// gradients alone would be singular on the constant mode.
func SolveW1(e *mesh.Element, stage int, ge env.Environment) ([]float64, error) {
	m := e.M
	ndof := m.Ndof

	jdet, err := e.S.GetJdet()
	if err != nil {
		return nil, err
	}
	jinv, err := e.S.GetJinv()
	if err != nil {
		return nil, err
	}

	k := la.MatAlloc(ndof, ndof)
	f := make([]float64, ndof)

	for g := 0; g < m.Ngp; g++ {
		h := e.Internal.AuxAtGp[mesh.H][g]
		qx := e.Internal.QAtGp[mesh.Qx][g]
		qy := e.Internal.QAtGp[mesh.Qy][g]
		scale := ge.Alpha * h * h / 3.0

		drdx, drdy, dsdx, dsdy := jinv[g][0], jinv[g][1], jinv[g][2], jinv[g][3]
		w := m.GpW[g] * jdet[g]

		dphidx := make([]float64, ndof)
		dphidy := make([]float64, ndof)
		for i := 0; i < ndof; i++ {
			dphidr := m.DphiGp[0][i][g]
			dphids := m.DphiGp[1][i][g]
			dphidx[i] = dphidr*drdx + dphids*dsdx
			dphidy[i] = dphidr*drdy + dphids*dsdy
		}

		for i := 0; i < ndof; i++ {
			f[i] += (dphidx[i]*scale*qx + dphidy[i]*scale*qy) * w
			for j := 0; j < ndof; j++ {
				k[i][j] += (dphidx[i]*dphidx[j] + dphidy[i]*dphidy[j] + ge.Tau*m.PhiGp[i][g]*m.PhiGp[j][g]) * w
			}
		}
	}

	inv := la.MatAlloc(ndof, ndof)
	if _, err := la.MatInv(inv, k, 1e-14); err != nil {
		return nil, err
	}
	w1 := make([]float64, ndof)
	for i := 0; i < ndof; i++ {
		var acc float64
		for j := 0; j < ndof; j++ {
			acc += inv[i][j] * f[j]
		}
		w1[i] = acc
	}
	return w1, nil
}

// ApplyCorrection folds the solved w1 field back into the discharge modes
// at state[stage], the DISPERSIVE_CORRECTION stage's only effect on the
// element's conserved state (spec.md §4.5).
func ApplyCorrection(e *mesh.Element, stage int, w1 []float64) {
	q := e.State[stage].Q
	for k := range w1 {
		q[mesh.Qx][k] -= w1[k]
		q[mesh.Qy][k] -= w1[k]
	}
}
