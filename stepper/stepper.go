// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stepper drives the per-stage sequencing of an explicit SSP
// Runge-Kutta scheme (EHDG/RKDG) and, for the canonical IHDG path, an
// implicit theta-type scheme. It is grounded on fem/dyncoefs.go's DynCoefs:
// a small struct of precomputed coefficients with an Init/Calc lifecycle,
// repurposed here from Newmark-for-elastodynamics coefficients to RK-
// tableau and implicit-theta coefficients (SPEC_FULL.md §5.7).
package stepper

import (
	"fmt"
	"math"

	"github.com/dpedroso-labs/swehdg/env"
)

// Tableau holds an explicit SSP Runge-Kutta scheme in Shu-Osher form: stage
// s's new state is a convex combination of earlier stages (Alpha) plus a dt-
// scaled contribution from that stage's M^-1*rhs evaluation (Beta). This is
// the a_ij/b_i tableau of spec.md §3 ("Stepper") written in the equivalent
// form most SSP-RK DG codes use directly.
type Tableau struct {
	Nstages int
	Alpha   [][]float64 // [s][0..s]
	Beta    []float64   // [s]
	C       []float64   // stage fractional time c_i, used to form c_i*dt
}

// SSPRK3 returns the classic third-order, three-stage SSP Runge-Kutta
// scheme (Shu-Osher 1988), the default explicit scheme for the SWE/EHDG
// path.
func SSPRK3() Tableau {
	return Tableau{
		Nstages: 3,
		Alpha: [][]float64{
			{1},
			{0.75, 0.25},
			{1.0 / 3.0, 0, 2.0 / 3.0},
		},
		Beta: []float64{1, 0.25, 2.0 / 3.0},
		C:    []float64{0, 1, 0.5},
	}
}

// ForwardEuler returns the trivial one-stage scheme, useful for
// well-balancedness smoke tests where higher stages would only add noise.
func ForwardEuler() Tableau {
	return Tableau{Nstages: 1, Alpha: [][]float64{{1}}, Beta: []float64{1}, C: []float64{0}}
}

// RKStepper sequences an explicit SSP-RK stage loop over a fixed tableau.
// It mirrors fem/dyncoefs.go's role (a small coefficient-holding struct
// consulted once per step) but drives stage indices instead of Newmark
// betas/alphas.
type RKStepper struct {
	Tableau Tableau

	t, dt float64
	step  int
	stage int

	timestamp int // strictly increasing per stage (spec.md §3 invariant)

	Ramp env.Ramp
}

// NewRKStepper builds a stepper over the given tableau starting at t0 with
// fixed timestep dt.
func NewRKStepper(tab Tableau, t0, dt float64, ramp env.Ramp) *RKStepper {
	return &RKStepper{Tableau: tab, t: t0, dt: dt, Ramp: ramp}
}

// GetDt returns the (fixed) timestep.
func (o *RKStepper) GetDt() float64 { return o.dt }

// GetStage returns the current stage index, in [0,Nstages).
func (o *RKStepper) GetStage() int { return o.stage }

// GetStep returns the completed-step counter.
func (o *RKStepper) GetStep() int { return o.step }

// GetTime returns the time at the start of the current step.
func (o *RKStepper) GetTime() float64 { return o.t }

// GetTimeAtCurrentStage returns t + c_stage*dt, the time at which
// stage-local forcings (tide, meteo, Coriolis ramp) should be evaluated.
func (o *RKStepper) GetTimeAtCurrentStage() float64 {
	return o.t + o.Tableau.C[o.stage]*o.dt
}

// GetTimestamp returns the monotonically increasing stage counter used to
// keep communicator message tags unique per stage (spec.md §4.6, §4.7).
func (o *RKStepper) GetTimestamp() int { return o.timestamp }

// GetRamp evaluates the spin-up ramp at time t.
func (o *RKStepper) GetRamp(t float64) float64 { return o.Ramp.At(t) }

// Next advances the stage index, bumping the timestamp every time (spec.md
// §3 "Stepper" invariant: timestamp strictly increases per stage). When the
// last stage wraps back to zero, the step counter and time are also
// advanced.
func (o *RKStepper) Next() {
	o.timestamp++
	o.stage++
	if o.stage == o.Tableau.Nstages {
		o.stage = 0
		o.step++
		o.t += o.dt
	}
}

// AtStageBoundary reports whether the stage that just completed (Next was
// not yet called) is the scheme's final stage, i.e. state[Nstages] now
// holds the fully updated q^{n+1} ready to be rotated into state[0].
func (o *RKStepper) AtStageBoundary() bool {
	return o.stage == o.Tableau.Nstages-1
}

// ErrStageOutOfRange is returned by validation helpers when a stage index
// falls outside [0,Nstages).
var ErrStageOutOfRange = fmt.Errorf("stepper: stage index out of range")

// Validate checks the Stepper invariants spec.md §3 requires.
func (o *RKStepper) Validate() error {
	if o.stage < 0 || o.stage >= o.Tableau.Nstages {
		return ErrStageOutOfRange
	}
	if math.IsNaN(o.t) || math.IsNaN(o.dt) {
		return fmt.Errorf("stepper: NaN in time/dt")
	}
	return nil
}
