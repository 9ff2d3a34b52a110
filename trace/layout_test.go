// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/mesh"
	"github.com/dpedroso-labs/swehdg/shape"
)

func TestLayoutOffsetsDisjoint(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster: %v", err)
	}
	msh := mesh.New()
	s := shape.New(m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	e0, _ := msh.Elements.Create(0, m, s, 3)
	e1, _ := msh.Elements.Create(1, m, s, 3)
	msh.Interfaces.Create(m, mesh.ElemSide{Elem: e0, LocalBnd: 1}, mesh.ElemSide{Elem: e1, LocalBnd: 2})
	msh.Boundaries[mesh.KindBoundaryLand].Create(m, mesh.ElemSide{Elem: e0, LocalBnd: 0})
	msh.FinalizeInitialization()

	layout := NewLayout(msh, m.Ndof)
	blockSize := m.Ndof * mesh.NVariables
	chk.IntAssert(layout.InterfaceOffset(0), 0)
	chk.IntAssert(layout.BoundaryOffset(mesh.KindBoundaryLand, 0), blockSize)
	chk.IntAssert(layout.N, 2*blockSize)
}
