// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swe

import (
	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// projectToEdge evaluates element e's modal state at stage onto the
// quadrature points of local boundary bnd, writing into e.Boundary[bnd]
// (spec.md §4.4 step 1, edge specialization).
func projectToEdge(e *mesh.Element, bnd, stage int) {
	m := e.M
	q := e.State[stage].Q
	edge := e.Boundary[bnd]
	for v := 0; v < mesh.NVariables; v++ {
		for g := 0; g < m.EdgeNgp; g++ {
			var acc float64
			for k := 0; k < m.Ndof; k++ {
				acc += q[v][k] * m.EdgePhiAt(k, bnd, g)
			}
			edge.QAtGp[v][g] = acc
		}
	}
}

// LocalInterfaceKernel computes the Rusanov numerical flux at every
// quadrature point of an Interface shared by two local elements, writing it
// into both sides' EdgeInternal.FHatAtGp with the appropriate sign (the
// two sides see opposite outward normals, spec.md §3 interface invariant).
func LocalInterfaceKernel(it *mesh.Interface, stage int, ge env.Environment) {
	in, ex := it.In, it.Ex
	projectToEdge(in.Elem, in.LocalBnd, stage)
	projectToEdge(ex.Elem, ex.LocalBnd, stage)

	nIn := in.Elem.S.GetSurfaceNormal(in.LocalBnd)
	ngp := in.Elem.M.EdgeNgp

	inEdge := in.Elem.Boundary[in.LocalBnd]
	exEdge := ex.Elem.Boundary[ex.LocalBnd]

	bathIn := inEdge.AuxAtGp[mesh.Bath]
	bathEx := exEdge.AuxAtGp[mesh.Bath]

	for g := 0; g < ngp; g++ {
		// the exterior side's quadrature points run in reversed order along
		// a shared edge (spec.md §3 interface invariant).
		gx := ngp - 1 - g

		var qIn, qEx [mesh.NVariables]float64
		for v := 0; v < mesh.NVariables; v++ {
			qIn[v] = inEdge.QAtGp[v][g]
			qEx[v] = exEdge.QAtGp[v][gx]
		}
		fhat := NumericalFlux(qIn, qEx, bathIn[g], bathEx[gx], ge.G, nIn[g])
		for v := 0; v < mesh.NVariables; v++ {
			in.Elem.Boundary[in.LocalBnd].FHatAtGp[v][g] = fhat[v]
			ex.Elem.Boundary[ex.LocalBnd].FHatAtGp[v][gx] = -fhat[v]
		}
	}
}

// LocalBoundaryKernel projects the element's state to boundary b's
// quadrature points; the external state and F_hat are then finished by the
// global edge kernel once the trace's q_hat is known (spec.md §4.4 step 2).
func LocalBoundaryKernel(b *mesh.Boundary, stage int) {
	projectToEdge(b.Side.Elem, b.Side.LocalBnd, stage)
}

// ApplyEdgeFlux integrates the boundary numerical flux stored in
// EdgeInternal.FHatAtGp against the trace basis and subtracts it from
// state[stage].Rhs, closing the weak-form divergence theorem contribution
// the volume kernel began (spec.md §4.4 step 4).
func ApplyEdgeFlux(e *mesh.Element, bnd, stage int) {
	m := e.M
	surfJ := e.S.GetSurfaceJ(bnd)
	rhs := e.State[stage].Rhs
	edge := e.Boundary[bnd]
	for g := 0; g < m.EdgeNgp; g++ {
		w := m.EdgeGpW[g] * surfJ[g]
		for k := 0; k < m.Ndof; k++ {
			phi := m.EdgePhiAt(k, bnd, g) * w
			for v := 0; v < mesh.NVariables; v++ {
				rhs[v][k] -= edge.FHatAtGp[v][g] * phi
			}
		}
	}
}
