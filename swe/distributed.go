// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swe

import (
	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// DistributedPackKernel projects a distributed boundary's element state onto
// its edge quadrature points, the same projection LocalBoundaryKernel does
// for a single-rank boundary, and flattens the result into Exch.SendBuf
// (spec.md §4.4 "distributed-boundary kernels pack send buffers", §6 wire
// layout: NVariables*edgeNgp doubles).
func DistributedPackKernel(db *mesh.DistributedBoundary, stage int) {
	e := db.Side.Elem
	bnd := db.Side.LocalBnd
	projectToEdge(e, bnd, stage)

	edge := e.Boundary[bnd]
	ngp := e.M.EdgeNgp
	buf := db.Exch.SendBuf
	for v := 0; v < mesh.NVariables; v++ {
		for g := 0; g < ngp; g++ {
			buf[v*ngp+g] = edge.QAtGp[v][g]
		}
	}
}

// DistributedGlobalKernel is the post-receive counterpart to
// GlobalBoundaryKernel: the exterior state at every quadrature point comes
// from the peer rank's packed Exch.RecvBuf instead of a bc.Condition, with
// the same finite-difference-linearized residual/Jacobian written into
// db.Trace for trace.Assemble to integrate (spec.md §4.4 "post-receive
// distributed-edge kernels", §3 interface invariant for the reversed
// quadrature-point order: the peer projected along its own outward
// traversal of the shared edge).
func DistributedGlobalKernel(db *mesh.DistributedBoundary, ge env.Environment) {
	e := db.Side.Elem
	bnd := db.Side.LocalBnd
	m := e.M
	edge := e.Boundary[bnd]
	normals := e.S.GetSurfaceNormal(bnd)
	ngp := m.EdgeNgp
	buf := db.Exch.RecvBuf

	const fdEps = 1e-6

	for g := 0; g < ngp; g++ {
		gx := ngp - 1 - g
		var qExt [mesh.NVariables]float64
		for v := 0; v < mesh.NVariables; v++ {
			qExt[v] = buf[v*ngp+gx]
		}
		bath := edge.AuxAtGp[mesh.Bath][g]
		n := normals[g]

		residual := func(qHat [mesh.NVariables]float64) [mesh.NVariables]float64 {
			return NumericalFlux(qHat, qExt, bath, bath, ge.G, n)
		}

		var qHat0 [mesh.NVariables]float64
		for v := 0; v < mesh.NVariables; v++ {
			qHat0[v] = edge.QAtGp[v][g]
		}
		r0 := residual(qHat0)
		for v := 0; v < mesh.NVariables; v++ {
			db.Trace.RhsGlobalKernelAtGp[v][g] = r0[v]
		}

		for j := 0; j < mesh.NVariables; j++ {
			qHatP := qHat0
			qHatP[j] += fdEps
			rP := residual(qHatP)
			for v := 0; v < mesh.NVariables; v++ {
				db.Trace.DeltaHatGlobalKernelAtGp[v*mesh.NVariables+j][g] = (rP[v] - r0[v]) / fdEps
			}
		}

		edge.FHatAtGp[mesh.Ze][g] = r0[mesh.Ze]
		edge.FHatAtGp[mesh.Qx][g] = r0[mesh.Qx]
		edge.FHatAtGp[mesh.Qy][g] = r0[mesh.Qy]
	}
}
