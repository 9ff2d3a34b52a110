// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/dpedroso-labs/swehdg/mesh"
)

// Solitary is the classical Green-Naghdi solitary-wave solution: a
// permanent-form traveling wave that exists only because of the dispersive
// correction (the shallow-water equations alone admit no such solution),
// making it the natural convergence check for the gn package, the same
// role manufactured_swe_true_solution_functions.hpp plays for the
// dispersionless EHDG path in original_source/examples/
// ehdg_swe_manufactured_solution.
type Solitary struct {
	H0 float64 // still-water depth
	A  float64 // wave amplitude
	X0 float64 // wave crest location at t=0

	c float64 // wave celerity, derived by Init
	k float64 // inverse wave width, derived by Init
}

// Init sets defaults, overrides them from prms, then derives the celerity
// and width from H0/A via the standard GN solitary-wave dispersion relation.
func (o *Solitary) Init(prms fun.Prms) {
	o.H0, o.A, o.X0 = 1.0, 0.2, 0.0
	for _, p := range prms {
		switch p.N {
		case "h0":
			o.H0 = p.V
		case "a":
			o.A = p.V
		case "x0":
			o.X0 = p.V
		}
	}
	const g = 9.80665
	o.c = math.Sqrt(g * (o.H0 + o.A))
	o.k = math.Sqrt(3 * o.A / (4 * o.H0 * o.H0 * (o.H0 + o.A)))
}

// State returns the exact (h,u) pair at (x,t): h = H0 + A*sech^2(k(x-x0-ct)),
// u = c*(1 - H0/h), the standard GN solitary-wave closed form.
func (o Solitary) State(x, t float64) (h, u float64) {
	xi := o.k * (x - o.X0 - o.c*t)
	sech := 1.0 / math.Cosh(xi)
	h = o.H0 + o.A*sech*sech
	u = o.c * (1.0 - o.H0/h)
	return
}

// Conserved returns the conserved variables with ze measured from a flat
// bed at depth H0 below the still-water level (bath=H0, ze=h-H0).
func (o Solitary) Conserved(x, t float64) [mesh.NVariables]float64 {
	h, u := o.State(x, t)
	ze := h - o.H0
	return [mesh.NVariables]float64{mesh.Ze: ze, mesh.Qx: h * u, mesh.Qy: 0}
}

// CheckState checks a numerical state against the exact solitary wave.
func (o Solitary) CheckState(tst *testing.T, x, t float64, q [mesh.NVariables]float64, tol float64) {
	exact := o.Conserved(x, t)
	chk.Scalar(tst, "ze", tol, q[mesh.Ze], exact[mesh.Ze])
	chk.Scalar(tst, "qx", tol, q[mesh.Qx], exact[mesh.Qx])
}
