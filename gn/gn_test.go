// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gn

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/mesh"
	"github.com/dpedroso-labs/swehdg/shape"
)

func TestSolveW1ZeroAtRest(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster: %v", err)
	}
	s := shape.New(m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	msh := mesh.New()
	e, _ := msh.Elements.Create(0, m, s, 1)
	msh.FinalizeInitialization()

	for g := 0; g < m.Ngp; g++ {
		e.Internal.AuxAtGp[mesh.H][g] = 1.0
		e.Internal.QAtGp[mesh.Qx][g] = 0
		e.Internal.QAtGp[mesh.Qy][g] = 0
	}

	ge := env.Default()
	w1, err := SolveW1(e, 0, ge)
	if err != nil {
		tst.Fatalf("SolveW1: %v", err)
	}
	for i, v := range w1 {
		chk.Scalar(tst, "w1 at rest", 1e-10, v, 0)
		_ = i
	}
}
