// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env holds the physical and numerical constants shared by every
// kernel. The original solver kept g, rho_water and alpha as package-level
// globals; here they travel through an immutable Environment handed to
// kernels explicitly, so a rank can run more than one domain (e.g. in tests)
// without the domains fighting over shared state.
package env

import "math"

// Environment carries the constants every SWE/GN kernel needs. It is built
// once from the input file and never mutated afterwards.
type Environment struct {
	G        float64 // gravitational acceleration
	RhoWater float64 // water density, used by the atmospheric-pressure term
	RhoAir   float64 // air density, used by the meteo stress term

	Coriolis bool    // enable Coriolis source term
	Omega    float64 // earth's angular velocity (rad/s), used when Coriolis is on
	Lat0     float64 // reference latitude (rad), for the f-plane approximation

	Manning bool // enable Manning bottom friction
	Meteo   bool // enable meteorological wind-stress forcing
	Tide    bool // enable tidal-potential forcing

	// Green-Naghdi dispersive correction
	GN    bool    // enable the dispersive correction stage
	Alpha float64 // dispersive weight, default 1.0
	Tau   float64 // HDG stabilization parameter, default -20

	HMin float64 // minimum water depth, the floor limiter.Nonneg keeps h at

	Ramp Ramp // spin-up ramp applied to forcings
}

// Default returns an Environment with the spec's documented defaults.
func Default() Environment {
	return Environment{
		G:        9.80665,
		RhoWater: 1000.0,
		RhoAir:   1.225,
		Omega:    7.2921159e-5,
		Tau:      -20.0,
		Alpha:    1.0,
		HMin:     1e-10,
	}
}

// CoriolisF returns the Coriolis parameter f = 2*omega*sin(lat0).
func (e Environment) CoriolisF() float64 {
	return 2.0 * e.Omega * math.Sin(e.Lat0)
}

// Ramp is a cosine spin-up factor applied to time-dependent forcings so that
// tide/meteo/Coriolis terms do not switch on as a step discontinuity.
//
//	ramp(t) = 1                              t >= Tramp
//	ramp(t) = 0.5*(1 - cos(pi*t/Tramp))       0 <= t < Tramp
type Ramp struct {
	Tramp float64 // ramp duration; Tramp<=0 disables ramping (ramp==1 always)
}

// At evaluates the ramp factor at time t.
func (r Ramp) At(t float64) float64 {
	if r.Tramp <= 0 {
		return 1.0
	}
	if t >= r.Tramp {
		return 1.0
	}
	if t <= 0 {
		return 0.0
	}
	return 0.5 * (1.0 - math.Cos(math.Pi*t/r.Tramp))
}
