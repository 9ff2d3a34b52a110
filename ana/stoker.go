// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/num"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Stoker is the classical 1D dam-break exact Riemann solution on a flat, dry
// or wet bed (Stoker 1957): an upstream depth hl at rest, a downstream
// depth hr<hl at rest, released at x0 at t=0. The solution is composed of a
// left-going rarefaction, a constant "star" state, and a right-going
// bore (shock) when hr>0, following the three-region closed form widely
// used to verify shallow-water solvers, generalized here into the same
// struct{Init,Solution} shape ana/constantstress.go uses for its own
// closed-form elasticity check.
type Stoker struct {
	Hl, Hr float64 // left (upstream) and right (downstream) still-water depths
	X0     float64 // dam location
	G      float64

	hStar float64 // star-region depth, solved once by Init
	cl    float64 // sqrt(g*Hl)
}

// Init sets defaults, overrides them from prms (the same
// default-then-override shape CteStressPstrain.Init uses), then solves for
// the star-region depth via Newton's method on the standard Stoker
// dam-break compatibility equation.
func (o *Stoker) Init(prms fun.Prms) {
	o.Hl, o.Hr, o.X0, o.G = 1.0, 0.0, 0.0, 9.80665
	for _, p := range prms {
		switch p.N {
		case "hl":
			o.Hl = p.V
		case "hr":
			o.Hr = p.V
		case "x0":
			o.X0 = p.V
		case "g":
			o.G = p.V
		}
	}
	o.cl = math.Sqrt(o.G * o.Hl)
	o.hStar = o.solveHStar()
}

// solveHStar finds h* from the dry-bed rarefaction formula when Hr==0, or
// from the standard rarefaction/bore compatibility relation otherwise, by
// Newton's method with the derivative estimated via num.DerivCentral
// (mreten/testing.go's pattern for checking analytic derivatives, reused
// here to drive the iteration itself rather than to verify one).
func (o *Stoker) solveHStar() float64 {
	g := o.G
	if o.Hr <= 0 {
		// dry-bed case: the star depth collapses to zero at the wet/dry
		// front; no intermediate constant state exists.
		return 0
	}
	f := func(h float64, args ...interface{}) float64 {
		cstar := math.Sqrt(g * h)
		return 2*(o.cl-cstar) - (h-o.Hr)*math.Sqrt(0.5*g*(h+o.Hr)/(h*o.Hr))
	}
	h := 0.5 * (o.Hl + o.Hr)
	for it := 0; it < 50; it++ {
		fx := f(h)
		dfdx, _ := num.DerivCentral(f, h, 1e-6)
		if math.Abs(dfdx) < 1e-14 {
			break
		}
		dh := fx / dfdx
		h -= dh
		if h <= o.Hr {
			h = o.Hr + 1e-6
		}
		if math.Abs(dh) < 1e-12 {
			break
		}
	}
	return h
}

// State returns the exact (h,u) pair at position x and time t>0 for the
// wet-bed case (Hr>0): left still water, a left rarefaction fan, the star
// state, the bore, and right still water, in that order.
func (o Stoker) State(x, t float64) (h, u float64) {
	g := o.G
	if t <= 0 {
		if x < o.X0 {
			return o.Hl, 0
		}
		return o.Hr, 0
	}
	xi := (x - o.X0) / t

	if o.Hr <= 0 {
		return o.dryBedState(xi)
	}

	cStar := math.Sqrt(g * o.hStar)
	uStar := 2 * (o.cl - cStar)
	// bore speed from the Rankine-Hugoniot condition
	shockSpeed := uStar * o.hStar / (o.hStar - o.Hr)

	switch {
	case xi <= -o.cl:
		return o.Hl, 0
	case xi <= uStar-cStar:
		// inside the rarefaction fan
		uf := (2.0/3.0)*(o.cl+xi)
		cf := (2.0/3.0)*o.cl - xi/3.0
		return cf * cf / g, uf
	case xi <= shockSpeed:
		return o.hStar, uStar
	default:
		return o.Hr, 0
	}
}

// dryBedState handles Hr==0: a rarefaction fan connecting the still left
// state to the dry front, with no intermediate constant region.
func (o Stoker) dryBedState(xi float64) (h, u float64) {
	g := o.G
	frontSpeed := 2 * o.cl
	switch {
	case xi <= -o.cl:
		return o.Hl, 0
	case xi <= frontSpeed:
		uf := (2.0/3.0)*(o.cl+xi)
		cf := (2.0/3.0)*o.cl - xi/3.0
		return cf * cf / g, uf
	default:
		return 0, 0
	}
}

// Conserved returns the conserved variables with free-surface elevation
// measured from the flat bed (ze=h, bath=0 by convention of this check).
func (o Stoker) Conserved(x, t float64) [mesh.NVariables]float64 {
	h, u := o.State(x, t)
	return [mesh.NVariables]float64{mesh.Ze: h, mesh.Qx: h * u, mesh.Qy: 0}
}

// Environment returns an env.Environment consistent with this solution's g.
func (o Stoker) Environment() env.Environment {
	e := env.Default()
	e.G = o.G
	return e
}

// CheckState checks a numerical state against the exact dam-break solution.
func (o Stoker) CheckState(tst *testing.T, x, t float64, q [mesh.NVariables]float64, tol float64) {
	exact := o.Conserved(x, t)
	chk.Scalar(tst, "ze", tol, q[mesh.Ze], exact[mesh.Ze])
	chk.Scalar(tst, "qx", tol, q[mesh.Qx], exact[mesh.Qx])
}
