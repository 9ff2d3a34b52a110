// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dpedroso-labs/swehdg/master"
)

func TestRoundTripInversion(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster failed: %v", err)
	}
	sh := New(m, [3]float64{0, 2, 0.5}, [3]float64{0, 0.2, 2})

	for _, pt := range [][2]float64{{0.2, 0.3}, {0.1, 0.1}, {0.5, 0.4}} {
		x, y := sh.LocalToGlobal(pt[0], pt[1])
		r, s, err := sh.GlobalToLocal(x, y)
		if err != nil {
			tst.Fatalf("GlobalToLocal failed: %v", err)
		}
		chk.Scalar(tst, "r", 1e-9, r, pt[0])
		chk.Scalar(tst, "s", 1e-9, s, pt[1])
	}
}

func TestJacobianPositive(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster failed: %v", err)
	}
	sh := New(m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	jdet, err := sh.GetJdet()
	if err != nil {
		tst.Fatalf("GetJdet failed: %v", err)
	}
	for _, d := range jdet {
		if d <= 0 {
			tst.Fatalf("expected det(J)>0, got %g", d)
		}
	}
}

func TestOutwardNormalsUnit(tst *testing.T) {
	m, err := master.NewMaster(master.Triangle, 0)
	if err != nil {
		tst.Fatalf("NewMaster failed: %v", err)
	}
	sh := New(m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	for b := 0; b < 3; b++ {
		for _, n := range sh.GetSurfaceNormal(b) {
			norm := n[0]*n[0] + n[1]*n[1]
			chk.Scalar(tst, "|n|^2", 1e-9, norm, 1.0)
		}
	}
}
