// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package master

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestMassMatrixDiagonal(tst *testing.T) {

	for p := 0; p <= 3; p++ {
		m, err := NewMaster(Triangle, p)
		if err != nil {
			tst.Fatalf("NewMaster failed: %v", err)
		}
		for i := 0; i < m.Ndof; i++ {
			for j := 0; j < m.Ndof; j++ {
				if i != j {
					chk.Scalar(tst, "off-diag m_inv", 1e-9, m.Minv[i][j], 0)
				}
			}
			if m.Minv[i][i] <= 0 {
				tst.Fatalf("p=%d: m_inv[%d][%d]=%g is not positive", p, i, i, m.Minv[i][i])
			}
		}
	}
}

func TestUnsupportedOrder(tst *testing.T) {
	if _, err := NewMaster(Triangle, -1); err != ErrUnsupportedOrder {
		tst.Fatalf("expected ErrUnsupportedOrder, got %v", err)
	}
	if _, err := NewMaster(Triangle, MaxOrder+1); err != ErrUnsupportedOrder {
		tst.Fatalf("expected ErrUnsupportedOrder, got %v", err)
	}
}

func TestLinearRoundTrip(tst *testing.T) {
	m, err := NewMaster(Triangle, 2)
	if err != nil {
		tst.Fatalf("NewMaster failed: %v", err)
	}
	uLin := [3]float64{1.0, 2.0, -1.5}
	q := m.ProjectLinearToBasis(uLin)
	back := m.ProjectBasisToLinear(q)
	for v := 0; v < 3; v++ {
		chk.Scalar(tst, "round trip", 1e-8, back[v], uLin[v])
	}
}

func TestNgpShape(tst *testing.T) {
	m, err := NewMaster(Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster failed: %v", err)
	}
	if len(m.PhiGp) != m.Ndof {
		tst.Fatalf("phi_gp must have ndof rows")
	}
	for _, row := range m.PhiGp {
		if len(row) != m.Ngp {
			tst.Fatalf("phi_gp row must have ngp columns")
		}
	}
}
