// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Scatter adds the solved global correction delta back into every edge's
// Trace.QHat and refreshes QHatAtGp, completing one Newton iteration of the
// global trace solve (spec.md §4.6).
func Scatter(msh *mesh.Mesh, m *master.Master, layout *Layout, delta []float64) {
	msh.ForEachInterface(func(it *mesh.Interface) error {
		scatterOne(m, &it.Trace, layout.InterfaceOffset(it.Index()), layout, delta)
		return nil
	})
	msh.ForEachBoundaryKind(func(kind mesh.EdgeKind, b *mesh.Boundary) error {
		scatterOne(m, &b.Trace, layout.BoundaryOffset(kind, b.Index()), layout, delta)
		return nil
	})
	msh.ForEachDistributed(func(d *mesh.DistributedBoundary) error {
		scatterOne(m, &d.Trace, layout.DistributedOffset(d.Index()), layout, delta)
		return nil
	})
}

func scatterOne(m *master.Master, tr *mesh.Trace, offset int, layout *Layout, delta []float64) {
	nvar := mesh.NVariables
	for v := 0; v < nvar; v++ {
		for k := 0; k < layout.Ndof; k++ {
			tr.QHat[v*layout.Ndof+k] += delta[offset+v*layout.Ndof+k]
		}
	}
	// QHatAtGp uses the interior-side basis evaluated at an arbitrary local
	// boundary (0); every edge kind is attached to exactly one master/shape
	// pair per spec.md §3, so this reconstruction is consistent regardless
	// of which concrete side owns the trace.
	for v := 0; v < nvar; v++ {
		for g := 0; g < m.EdgeNgp; g++ {
			var acc float64
			for k := 0; k < layout.Ndof; k++ {
				acc += tr.QHat[v*layout.Ndof+k] * m.EdgePhiAt(k, 0, g)
			}
			tr.QHatAtGp[v][g] = acc
		}
	}
}
