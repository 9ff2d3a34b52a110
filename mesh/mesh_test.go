// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/shape"
)

func buildTriangle(tst *testing.T, m *master.Master, x, y [3]float64) *shape.Shape {
	return shape.New(m, x, y)
}

func TestContainerFreezeBlocksCreate(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster: %v", err)
	}
	msh := New()
	msh.Elements.Reserve(2)
	s := buildTriangle(tst, m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	if _, err := msh.Elements.Create(0, m, s, 3); err != nil {
		tst.Fatalf("Create before finalize should succeed: %v", err)
	}
	msh.FinalizeInitialization()
	if !msh.Finalized() {
		tst.Fatalf("expected Finalized() == true")
	}
	if _, err := msh.Elements.Create(1, m, s, 3); err == nil {
		tst.Fatalf("Create after finalize should fail")
	}
}

func TestStableIndexSurvivesFinalize(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster: %v", err)
	}
	msh := New()
	s := buildTriangle(tst, m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	e0, _ := msh.Elements.Create(0, m, s, 3)
	e1, _ := msh.Elements.Create(1, m, s, 3)
	msh.FinalizeInitialization()
	if msh.Elements.GetByIndex(0) != e0 || msh.Elements.GetByIndex(1) != e1 {
		tst.Fatalf("indices must remain stable after FinalizeInitialization")
	}
}

func TestInterfaceSharesNgpOnBothSides(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 2)
	if err != nil {
		tst.Fatalf("NewMaster: %v", err)
	}
	msh := New()
	sIn := buildTriangle(tst, m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	sEx := buildTriangle(tst, m, [3]float64{1, 1, 0}, [3]float64{0, 1, 1})
	in, _ := msh.Elements.Create(0, m, sIn, 3)
	ex, _ := msh.Elements.Create(1, m, sEx, 3)
	it, err := msh.Interfaces.Create(m, ElemSide{Elem: in, LocalBnd: 1}, ElemSide{Elem: ex, LocalBnd: 2})
	if err != nil {
		tst.Fatalf("Interfaces.Create: %v", err)
	}
	if len(it.Trace.QHatAtGp[Ze]) != m.EdgeNgp {
		tst.Fatalf("interface trace must have edgeNgp quadrature points")
	}
	if len(in.Boundary[1].QAtGp[Ze]) != m.EdgeNgp || len(ex.Boundary[2].QAtGp[Ze]) != m.EdgeNgp {
		tst.Fatalf("both sides of the interface must have edgeNgp quadrature points")
	}
}
