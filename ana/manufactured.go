// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical/manufactured solutions used to verify
// convergence, generalizing ana/constantstress.go's struct{Init,Solution}
// pattern from elastostatics closed forms to the shallow-water ones
// original_source/examples/ehdg_swe_manufactured_solution exercises (that
// directory names the method of manufactured solutions as a convergence
// check; its source_functions/true_solution_functions headers were not
// retrieved, so the trigonometric field and its exact source term below are
// derived directly from the shallow-water equations rather than ported).
package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Manufactured prescribes
//
//	ze(x,y,t) = A*sin(kx*x+ky*y-ω*t) + ze0
//	u (x,y,t) = U0 + A*sin(kx*x+ky*y-ω*t)
//	v (x,y,t) = V0 + A*sin(kx*x+ky*y-ω*t)
//
// over a flat bathymetry, so h=ze-bath0+ze0's constant part keeps h>0 for a
// small enough amplitude A. Source plugs these fields into the conservative
// SWE PDE and returns the exact body-force that makes them an exact
// solution, the manufactured-solution method original_source's
// manufactured_ompi_main_swe.cpp drives through OMPISimulation::Run +
// ComputeL2Residual.
type Manufactured struct {
	A, Kx, Ky, Omega float64
	Ze0, U0, V0      float64
	Bath0            float64
}

// Init sets defaults then overrides from prms, mirroring
// CteStressPstrain.Init's default-then-override pattern.
func (o *Manufactured) Init(prms fun.Prms) {
	o.A, o.Kx, o.Ky, o.Omega = 0.01, 2 * math.Pi, 2 * math.Pi, 1.0
	o.Ze0, o.U0, o.V0 = 1.0, 0.1, 0.1
	o.Bath0 = 0.0
	for _, p := range prms {
		switch p.N {
		case "A":
			o.A = p.V
		case "kx":
			o.Kx = p.V
		case "ky":
			o.Ky = p.V
		case "omega":
			o.Omega = p.V
		case "ze0":
			o.Ze0 = p.V
		case "u0":
			o.U0 = p.V
		case "v0":
			o.V0 = p.V
		case "bath0":
			o.Bath0 = p.V
		}
	}
}

func (o Manufactured) phase(x, y, t float64) float64 {
	return o.Kx*x + o.Ky*y - o.Omega*t
}

// State returns the exact (ze,u,v) triple at (x,y,t).
func (o Manufactured) State(x, y, t float64) (ze, u, v float64) {
	s := math.Sin(o.phase(x, y, t))
	ze = o.Ze0 + o.A*s
	u = o.U0 + o.A*s
	v = o.V0 + o.A*s
	return
}

// Conserved returns the conserved variables (ze,qx,qy) at (x,y,t), with
// qx=h*u, qy=h*v and h=ze-Bath0.
func (o Manufactured) Conserved(x, y, t float64) [mesh.NVariables]float64 {
	ze, u, v := o.State(x, y, t)
	h := ze - o.Bath0
	return [mesh.NVariables]float64{mesh.Ze: ze, mesh.Qx: h * u, mesh.Qy: h * v}
}

// Source returns the exact body force S(x,y,t) that makes Conserved an
// exact solution of dq/dt + div(F(q)) = S, computed by substituting the
// trigonometric fields directly into the mass/momentum equations (no
// automatic differentiation library is part of this corpus's stack, so the
// partial derivatives below are worked out by hand for this specific field,
// following the closed-form style ana/pressurised_cylinder.go's Solution
// uses for its own elasticity fields).
func (o Manufactured) Source(x, y, t float64, ge env.Environment) [mesh.NVariables]float64 {
	g := ge.G
	ph := o.phase(x, y, t)
	s, c := math.Sin(ph), math.Cos(ph)
	A, kx, ky, w := o.A, o.Kx, o.Ky, o.Omega

	ze := o.Ze0 + A*s
	u := o.U0 + A*s
	v := o.V0 + A*s
	h := ze - o.Bath0

	dZe_dt := -A * w * c
	dZe_dx := A * kx * c
	dZe_dy := A * ky * c

	dU_dt := -A * w * c
	dU_dx := A * kx * c
	dU_dy := A * ky * c

	dV_dt := -A * w * c
	dV_dx := A * kx * c
	dV_dy := A * ky * c

	dH_dt := dZe_dt
	dH_dx := dZe_dx
	dH_dy := dZe_dy

	// mass: d(h)/dt + d(hu)/dx + d(hv)/dy
	massRes := dH_dt + (dH_dx*u+h*dU_dx) + (dH_dy*v+h*dV_dy)

	// x-momentum: d(hu)/dt + d(hu^2+g h^2/2)/dx + d(huv)/dy
	dHu_dt := dH_dt*u + h*dU_dt
	dHuu_dx := dH_dx*u*u + 2*h*u*dU_dx
	dGhh_dx := g * h * dH_dx
	dHuv_dy := dH_dy*u*v + h*dU_dy*v + h*u*dV_dy
	xmomRes := dHu_dt + dHuu_dx + dGhh_dx + dHuv_dy

	// y-momentum: d(hv)/dt + d(huv)/dx + d(hv^2+g h^2/2)/dy
	dHv_dt := dH_dt*v + h*dV_dt
	dHuv_dx := dH_dx*u*v + h*dU_dx*v + h*u*dV_dx
	dHvv_dy := dH_dy*v*v + 2*h*v*dV_dy
	dGhh_dy := g * h * dH_dy
	ymomRes := dHv_dt + dHuv_dx + dGhh_dy + dHvv_dy

	return [mesh.NVariables]float64{mesh.Ze: massRes, mesh.Qx: xmomRes, mesh.Qy: ymomRes}
}

// CheckState checks a numerical state against the exact one, mirroring
// CteStressPstrain.CheckDispl's role.
func (o Manufactured) CheckState(tst *testing.T, x, y, t float64, q [mesh.NVariables]float64, tol float64) {
	exact := o.Conserved(x, y, t)
	chk.Scalar(tst, "ze", tol, q[mesh.Ze], exact[mesh.Ze])
	chk.Scalar(tst, "qx", tol, q[mesh.Qx], exact[mesh.Qx])
	chk.Scalar(tst, "qy", tol, q[mesh.Qy], exact[mesh.Qy])
}
