// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"github.com/cpmech/gosl/la"

	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Entry is one (row,col,value) contribution to the global trace Jacobian.
// Assemble keeps its own slice of these alongside the *la.Triplet it
// builds, since the matrix-free GMRES operator in solve.go needs to replay
// the assembled entries for its matrix-vector product and la.Triplet does
// not expose a public way to iterate back the entries it was given.
type Entry struct {
	I, J int
	V    float64
}

// System is the assembled global trace system: the Jacobian in both the
// teacher's sparse-assembly representation (Kb, ready for AddToKb-style
// consumption or a future direct factorization) and as a replayable entry
// list (Entries, consumed by the matrix-free GMRES operator), plus the
// residual vector.
type System struct {
	Kb      *la.Triplet
	Entries []Entry
	Rhs     []float64
	N       int
}

// Assemble builds the global trace residual vector and its Jacobian
// (Galerkin-projected from the per-quadrature-point finite-difference
// linearization swe.GlobalBoundaryKernel and swe.DistributedGlobalKernel
// compute) from every skeleton edge in msh; no kernel fills an interface's
// trace, so interface blocks add zero contributions. The Jacobian is
// built as a *la.Triplet, the teacher's sparse-assembly type (fem/e_u.go
// AddToKb and friends).
func Assemble(msh *mesh.Mesh, m *master.Master, layout *Layout) *System {
	n := layout.N
	kb := new(la.Triplet)
	kb.Init(n, n, n*layout.blockSize) // generous nnz estimate
	sys := &System{Kb: kb, Rhs: make([]float64, n), N: n}

	msh.ForEachInterface(func(it *mesh.Interface) error {
		projectEdgeContribution(sys, &it.Trace, it.In.Elem, it.In.LocalBnd, layout.InterfaceOffset(it.Index()))
		return nil
	})

	msh.ForEachBoundaryKind(func(kind mesh.EdgeKind, b *mesh.Boundary) error {
		projectEdgeContribution(sys, &b.Trace, b.Side.Elem, b.Side.LocalBnd, layout.BoundaryOffset(kind, b.Index()))
		return nil
	})

	msh.ForEachDistributed(func(d *mesh.DistributedBoundary) error {
		projectEdgeContribution(sys, &d.Trace, d.Side.Elem, d.Side.LocalBnd, layout.DistributedOffset(d.Index()))
		return nil
	})

	return sys
}

// projectEdgeContribution integrates one edge's pointwise residual and
// finite-difference Jacobian against the trace's modal basis, adding the
// result into the global system at the given dof offset.
func projectEdgeContribution(sys *System, tr *mesh.Trace, e *mesh.Element, bnd, offset int) {
	m := e.M
	surfJ := e.S.GetSurfaceJ(bnd)
	nvar := mesh.NVariables

	for k := 0; k < m.Ndof; k++ {
		for v := 0; v < nvar; v++ {
			var racc float64
			for g := 0; g < m.EdgeNgp; g++ {
				w := m.EdgeGpW[g] * surfJ[g]
				racc += tr.RhsGlobalKernelAtGp[v][g] * m.EdgePhiAt(k, bnd, g) * w
			}
			sys.Rhs[offset+v*m.Ndof+k] += racc
		}
	}

	for k := 0; k < m.Ndof; k++ {
		for k2 := 0; k2 < m.Ndof; k2++ {
			for v := 0; v < nvar; v++ {
				for v2 := 0; v2 < nvar; v2++ {
					var jacc float64
					for g := 0; g < m.EdgeNgp; g++ {
						w := m.EdgeGpW[g] * surfJ[g]
						jacc += tr.DeltaHatGlobalKernelAtGp[v*nvar+v2][g] * m.EdgePhiAt(k, bnd, g) * m.EdgePhiAt(k2, bnd, g) * w
					}
					if jacc != 0 {
						i, j := offset+v*m.Ndof+k, offset+v2*m.Ndof+k2
						sys.Kb.Put(i, j, jacc)
						sys.Entries = append(sys.Entries, Entry{I: i, J: j, V: jacc})
					}
				}
			}
		}
	}
}
