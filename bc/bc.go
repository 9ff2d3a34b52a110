// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bc implements the boundary-condition specializations the global
// edge kernel dispatches on (spec.md §4.4 step 2): land (reflecting),
// tide/flow (prescribed), and function (time-dependent prescribed state).
// Each specialization supplies the exterior ("ghost") state the numerical
// flux needs; it is the Go analogue of the teacher's essenbcs.go/
// ptnatbcs.go pattern of one small struct per condition kind holding a
// fun.Func closure (inp/func.go), generalized from nodal values to
// trace-quadrature-point values.
package bc

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Condition computes the exterior state q_ext used by the numerical flux at
// one edge quadrature point, given the interior trace, time, and outward
// normal.
type Condition interface {
	ExternalState(t float64, normal [2]float64, qIn [mesh.NVariables]float64, e env.Environment) [mesh.NVariables]float64
}

// Land reflects the normal velocity and keeps the tangential velocity and
// elevation unchanged, matching the original solver's rkdg_swe_bc_land.hpp
// (reflect q_n, keep q_t) — spec.md §8 "Land BC: numerical normal velocity
// at the trace equals zero to within 1e-12".
type Land struct{}

func (Land) ExternalState(_ float64, normal [2]float64, qIn [mesh.NVariables]float64, _ env.Environment) [mesh.NVariables]float64 {
	nx, ny := normal[0], normal[1]
	tx, ty := -ny, nx
	qn := qIn[mesh.Qx]*nx + qIn[mesh.Qy]*ny
	qt := qIn[mesh.Qx]*tx + qIn[mesh.Qy]*ty
	var out [mesh.NVariables]float64
	out[mesh.Ze] = qIn[mesh.Ze]
	out[mesh.Qx] = -qn*nx + qt*tx
	out[mesh.Qy] = -qn*ny + qt*ty
	return out
}

// Function prescribes the full exterior state from a time-dependent
// closure, one fun.Func per variable — the trace-side analogue of the
// teacher's essential boundary conditions (a fun.Func evaluated at t).
type Function struct {
	Ze, Qx, Qy fun.Func
}

func (f Function) ExternalState(t float64, _ [2]float64, _ [mesh.NVariables]float64, e env.Environment) [mesh.NVariables]float64 {
	ramp := e.Ramp.At(t)
	var out [mesh.NVariables]float64
	if f.Ze != nil {
		out[mesh.Ze] = ramp * f.Ze.F(t, nil)
	}
	if f.Qx != nil {
		out[mesh.Qx] = ramp * f.Qx.F(t, nil)
	}
	if f.Qy != nil {
		out[mesh.Qy] = ramp * f.Qy.F(t, nil)
	}
	return out
}

// Constituent is one harmonic component A*cos(omega*t - phase) of a tidal
// expansion (spec.md §4.4 "harmonic expansion").
type Constituent struct {
	Amplitude float64
	Omega     float64
	Phase     float64
}

// Tide prescribes ze_hat from a sum of harmonic constituents and leaves the
// discharge to follow from the interior state's normal characteristic
// (radiating outflow), matching rkdg_swe_bc_tide.hpp's role of the trace
// elevation carrying the forcing while velocity is extrapolated.
type Tide struct {
	Constituents []Constituent
}

func (td Tide) ExternalState(t float64, _ [2]float64, qIn [mesh.NVariables]float64, e env.Environment) [mesh.NVariables]float64 {
	ramp := e.Ramp.At(t)
	var ze float64
	for _, c := range td.Constituents {
		ze += c.Amplitude * math.Cos(c.Omega*t-c.Phase)
	}
	return [mesh.NVariables]float64{mesh.Ze: ramp * ze, mesh.Qx: qIn[mesh.Qx], mesh.Qy: qIn[mesh.Qy]}
}

// Flow prescribes a measured/specified discharge through the boundary,
// leaving elevation to the interior state (a Neumann-like flux condition).
type Flow struct {
	Qn fun.Func // normal discharge per unit width, positive outward
}

func (fl Flow) ExternalState(t float64, normal [2]float64, qIn [mesh.NVariables]float64, e env.Environment) [mesh.NVariables]float64 {
	ramp := e.Ramp.At(t)
	var qn float64
	if fl.Qn != nil {
		qn = ramp * fl.Qn.F(t, nil)
	}
	return [mesh.NVariables]float64{
		mesh.Ze: qIn[mesh.Ze],
		mesh.Qx: qn * normal[0],
		mesh.Qy: qn * normal[1],
	}
}
