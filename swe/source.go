// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swe

import (
	"github.com/cpmech/gosl/fun"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/friction"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Forcing bundles the optional, time/position-dependent source closures a
// LocalSourceKernel call can fold in — wind stress, tidal-potential
// gradient, and atmospheric pressure gradient — each a gosl fun.Func
// evaluated at (t, [x,y]), following the teacher's pattern of representing
// spatially/temporally varying parameters as fun.Func rather than as
// tabulated fields (inp/func.go).
type Forcing struct {
	WindX, WindY           fun.Func // wind stress components, already divided by rho_water
	AtmPressureDx, AtmPressureDy fun.Func // d(p_atm)/dx, d(p_atm)/dy
	TidePotentialDx, TidePotentialDy fun.Func // d(tidal potential)/dx, d(tidal potential)/dy

	Friction friction.Model
}

// LocalSourceKernel adds the bathymetry-slope term g*ze*grad(bath) (the part
// of g*h^2/2 that Flux's split pressure leaves out) and the Coriolis,
// bottom-friction, tidal-potential, meteorological, and atmospheric-pressure
// source terms to
// state[stage].Rhs at every volume quadrature point (spec.md §4.4 step 5),
// projected back against the test functions the same way the flux
// divergence term is (spec.md §4.4 step 4), but without a gradient — source
// terms enter through the mass-weighted basis, not its derivative.
func LocalSourceKernel(e *mesh.Element, stage int, ge env.Environment, fo Forcing, t float64) error {
	m := e.M
	jdet, err := e.S.GetJdet()
	if err != nil {
		return err
	}
	rhs := e.State[stage].Rhs
	f := ge.CoriolisF()
	ramp := ge.Ramp.At(t)
	jinv, err := e.S.GetJinv()
	if err != nil {
		return err
	}
	bath := make([]float64, m.Ndof) // modal coefficients of the bathymetry
	for k := range bath {
		for g := 0; g < m.Ngp; g++ {
			bath[k] += m.Minv[k][k] * m.IntPhiFact[k][g] * e.Internal.AuxAtGp[mesh.Bath][g]
		}
	}

	for g := 0; g < m.Ngp; g++ {
		ze := e.Internal.QAtGp[mesh.Ze][g]
		qx := e.Internal.QAtGp[mesh.Qx][g]
		qy := e.Internal.QAtGp[mesh.Qy][g]
		h := e.Internal.AuxAtGp[mesh.H][g]

		var sx, sy, sze float64

		var dbdr, dbds float64
		for k, c := range bath {
			dbdr, dbds = dbdr+c*m.DphiGp[0][k][g], dbds+c*m.DphiGp[1][k][g]
		}
		sx += ge.G * ze * (dbdr*jinv[g][0] + dbds*jinv[g][2])
		sy += ge.G * ze * (dbdr*jinv[g][1] + dbds*jinv[g][3])

		if ge.Coriolis {
			sx += f * qy
			sy += -f * qx
		}

		if fo.Friction != nil {
			c := fo.Friction.Coefficient(h, qx, qy)
			sx += -ge.G * c * qx
			sy += -ge.G * c * qy
		}

		gx, gy := quadraturePoint(e, g)

		if ge.Tide && (fo.TidePotentialDx != nil || fo.TidePotentialDy != nil) {
			var dpx, dpy float64
			if fo.TidePotentialDx != nil {
				dpx = fo.TidePotentialDx.F(t, []float64{gx, gy})
			}
			if fo.TidePotentialDy != nil {
				dpy = fo.TidePotentialDy.F(t, []float64{gx, gy})
			}
			sx += -ramp * ge.G * h * dpx
			sy += -ramp * ge.G * h * dpy
		}

		if ge.Meteo {
			if fo.WindX != nil {
				sx += ramp * fo.WindX.F(t, []float64{gx, gy})
			}
			if fo.WindY != nil {
				sy += ramp * fo.WindY.F(t, []float64{gx, gy})
			}
			if fo.AtmPressureDx != nil {
				sx += -ramp * h / ge.RhoWater * fo.AtmPressureDx.F(t, []float64{gx, gy})
			}
			if fo.AtmPressureDy != nil {
				sy += -ramp * h / ge.RhoWater * fo.AtmPressureDy.F(t, []float64{gx, gy})
			}
		}

		w := m.GpW[g] * jdet[g]
		for k := 0; k < m.Ndof; k++ {
			phi := m.PhiGp[k][g] * w
			rhs[mesh.Ze][k] += sze * phi
			rhs[mesh.Qx][k] += sx * phi
			rhs[mesh.Qy][k] += sy * phi
		}
	}
	return nil
}

// quadraturePoint maps volume quadrature point g to physical coordinates.
func quadraturePoint(e *mesh.Element, g int) (x, y float64) {
	return e.S.LocalToGlobal(e.M.GpR[g], e.M.GpS[g])
}
