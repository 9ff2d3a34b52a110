// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swe

import (
	"github.com/dpedroso-labs/swehdg/bc"
	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// GlobalBoundaryKernel evaluates the external state the BC specialization
// prescribes at every quadrature point of boundary b, computes the Rusanov
// flux against the interior projection LocalBoundaryKernel already wrote,
// and records both the residual and a finite-difference-linearized Jacobian
// contribution into b.Trace (spec.md §4.4 step 2, "global edge kernel").
//
// The Jacobian is obtained by one-sided finite differences of the residual
// with respect to each component of q_hat rather than by a closed-form
// derivative of the BC's ExternalState — a Jacobian-free Newton-Krylov
// (JFNK) style linearization, matching the narrow external-solver interface
// spec.md §6 describes (the trace package only ever needs a
// matrix-vector product, which a finite-difference directional derivative
// supplies just as well as an analytic one).
func GlobalBoundaryKernel(b *mesh.Boundary, cond bc.Condition, ge env.Environment, t float64) {
	e := b.Side.Elem
	bnd := b.Side.LocalBnd
	m := e.M
	edge := e.Boundary[bnd]
	normals := e.S.GetSurfaceNormal(bnd)

	const fdEps = 1e-6

	for g := 0; g < m.EdgeNgp; g++ {
		var qIn [mesh.NVariables]float64
		for v := 0; v < mesh.NVariables; v++ {
			qIn[v] = edge.QAtGp[v][g]
		}
		bath := edge.AuxAtGp[mesh.Bath][g]
		n := normals[g]

		residual := func(qHat [mesh.NVariables]float64) [mesh.NVariables]float64 {
			qExt := cond.ExternalState(t, n, qHat, ge)
			return NumericalFlux(qHat, qExt, bath, bath, ge.G, n)
		}

		qHat0 := qIn
		r0 := residual(qHat0)
		for v := 0; v < mesh.NVariables; v++ {
			b.Trace.RhsGlobalKernelAtGp[v][g] = r0[v]
		}

		for j := 0; j < mesh.NVariables; j++ {
			qHatP := qHat0
			qHatP[j] += fdEps
			rP := residual(qHatP)
			for v := 0; v < mesh.NVariables; v++ {
				b.Trace.DeltaHatGlobalKernelAtGp[v*mesh.NVariables+j][g] = (rP[v] - r0[v]) / fdEps
			}
		}

		edge.FHatAtGp[mesh.Ze][g] = r0[mesh.Ze]
		edge.FHatAtGp[mesh.Qx][g] = r0[mesh.Qx]
		edge.FHatAtGp[mesh.Qy][g] = r0[mesh.Qy]
	}
}
