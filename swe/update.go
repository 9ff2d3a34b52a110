// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swe

import (
	"github.com/dpedroso-labs/swehdg/mesh"
	"github.com/dpedroso-labs/swehdg/stepper"
)

// ApplyInverseMassAndCombine is the local post-receive kernel: it multiplies
// state[stage].Rhs by the element-local inverse mass matrix and combines the
// result with the earlier stages per the RK tableau, writing
// state[stage+1].Q (spec.md §4.4 step 6, §4.7 "state rotation"). The
// physical inverse mass matrix is the reference Minv scaled by 1/det(J) (constant
// per straight-sided element), since the mapping only rescales volume, not
// basis orthogonality.
func ApplyInverseMassAndCombine(e *mesh.Element, stage int, tab stepper.Tableau, dt float64) error {
	m := e.M
	jdet, err := e.S.GetJdet()
	if err != nil {
		return err
	}
	invJdet := 1.0 / jdet[0] // constant across gp for a straight-sided element

	alpha := tab.Alpha[stage]
	beta := tab.Beta[stage]

	next := e.State[stage+1].Q
	rhs := e.State[stage].Rhs
	for v := 0; v < mesh.NVariables; v++ {
		for k := 0; k < m.Ndof; k++ {
			var combo float64
			for j, a := range alpha {
				combo += a * e.State[j].Q[v][k]
			}
			minvRhs := m.Minv[k][k] * invJdet * rhs[v][k]
			next[v][k] = combo + beta*dt*minvRhs
		}
	}
	return nil
}
