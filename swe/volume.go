// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swe

import (
	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// LocalVolumeKernel projects the modal state at stage into the element's
// volume quadrature points, refreshes the auxiliary depth, computes the
// physical flux at every point, and accumulates the weak-form divergence
// term into state[stage].Rhs (spec.md §4.4 steps 1-4). dphi/dx,dphi/dy are
// obtained from the reference-space gradient by the chain rule through the
// element's inverse Jacobian, since master.Master only pre-factors the
// reference-space integration weights.
func LocalVolumeKernel(e *mesh.Element, stage int, ge env.Environment) error {
	m := e.M
	q := e.State[stage].Q

	for v := 0; v < mesh.NVariables; v++ {
		for g := 0; g < m.Ngp; g++ {
			var acc float64
			for k := 0; k < m.Ndof; k++ {
				acc += q[v][k] * m.PhiGp[k][g]
			}
			e.Internal.QAtGp[v][g] = acc
		}
	}
	e.RefreshAux()

	jdet, err := e.S.GetJdet()
	if err != nil {
		return err
	}
	jinv, err := e.S.GetJinv()
	if err != nil {
		return err
	}

	rhs := e.State[stage].Rhs
	for v := 0; v < mesh.NVariables; v++ {
		for k := 0; k < m.Ndof; k++ {
			rhs[v][k] = 0
		}
	}

	for g := 0; g < m.Ngp; g++ {
		var qg [mesh.NVariables]float64
		for v := 0; v < mesh.NVariables; v++ {
			qg[v] = e.Internal.QAtGp[v][g]
		}
		bath := e.Internal.AuxAtGp[mesh.Bath][g]
		fx, fy := Flux(qg, bath, ge.G)

		drdx, drdy, dsdx, dsdy := jinv[g][0], jinv[g][1], jinv[g][2], jinv[g][3]
		detw := jdet[g]

		for k := 0; k < m.Ndof; k++ {
			dphidr := m.DphiGp[0][k][g]
			dphids := m.DphiGp[1][k][g]
			dphidx := dphidr*drdx + dphids*dsdx
			dphidy := dphidr*drdy + dphids*dsdy
			w := m.GpW[g] * detw
			for v := 0; v < mesh.NVariables; v++ {
				rhs[v][k] += (dphidx*fx[v] + dphidy*fy[v]) * w
			}
		}
	}
	return nil
}
