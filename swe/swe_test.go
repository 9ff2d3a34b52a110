// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swe

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dpedroso-labs/swehdg/mesh"
)

func TestFluxConsistency(tst *testing.T) {
	// F(q,q) dotted with any normal must recover the one-sided flux exactly
	// (spec.md §8 numerical-flux consistency property).
	q := [mesh.NVariables]float64{mesh.Ze: 0.5, mesh.Qx: 0.2, mesh.Qy: -0.1}
	bath := 2.0
	g := 9.80665
	n := [2]float64{0.6, 0.8}

	fhat := NumericalFlux(q, q, bath, bath, g, n)
	fx, fy := Flux(q, bath, g)
	for v := 0; v < mesh.NVariables; v++ {
		want := fx[v]*n[0] + fy[v]*n[1]
		chk.Scalar(tst, "Fhat consistency", 1e-12, fhat[v], want)
	}
}

func TestRestStateZeroFlux(tst *testing.T) {
	// A lake-at-rest state (zero discharge, uniform elevation) must produce
	// zero momentum flux dissipation across a symmetric pair of identical
	// states.
	q := [mesh.NVariables]float64{mesh.Ze: 0, mesh.Qx: 0, mesh.Qy: 0}
	bath := 3.0
	g := 9.80665
	n := [2]float64{1, 0}
	fhat := NumericalFlux(q, q, bath, bath, g, n)
	chk.Scalar(tst, "qx flux at rest", 1e-12, fhat[mesh.Qx], 0)
	chk.Scalar(tst, "qy flux at rest", 1e-12, fhat[mesh.Qy], 0)
}

func TestWaveSpeedDry(tst *testing.T) {
	q := [mesh.NVariables]float64{mesh.Ze: -5, mesh.Qx: 0, mesh.Qy: 0}
	if WaveSpeed(q, 1.0, 9.80665) != 0 {
		tst.Fatalf("expected zero wave speed for a dry point")
	}
}
