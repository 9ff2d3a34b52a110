// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stepper

import (
	"fmt"

	"github.com/dpedroso-labs/swehdg/env"
)

// ImplicitStepper holds the canonical IHDG/GN time-stepping coefficients: a
// theta-method blend between the known state and the unknown next state
// (driver.Driver runs only an RKStepper, so no run in this module steps
// with it),
// repurposing fem/dyncoefs.go's DynCoefs Init/Calc-coefficients lifecycle
// (there: Newmark/HHT coefficients for elastodynamics; here: theta-method
// coefficients for the implicit HDG trace coupling spec.md §9's Open
// Question resolves in favor of, per SPEC_FULL.md's decision).
type ImplicitStepper struct {
	Theta float64 // implicit blending parameter, 0.5<=Theta<=1 for unconditional stability

	t, dt float64
	step  int

	timestamp int

	// coefficients consumed by the trace assembly: the next state enters
	// the residual as Theta*q_new + (1-Theta)*q_old, so the Jacobian
	// contribution from q_new is scaled by Theta.
	beta1, beta2 float64

	Ramp env.Ramp
}

// NewImplicitStepper validates theta and builds an ImplicitStepper.
func NewImplicitStepper(theta, t0, dt float64, ramp env.Ramp) (*ImplicitStepper, error) {
	if theta < 0.5 || theta > 1.0 {
		return nil, fmt.Errorf("stepper: implicit theta must be in [0.5,1.0], got %v", theta)
	}
	o := &ImplicitStepper{Theta: theta, t: t0, dt: dt, Ramp: ramp}
	o.calcCoefs()
	return o, nil
}

func (o *ImplicitStepper) calcCoefs() {
	o.beta1 = o.Theta
	o.beta2 = 1.0 - o.Theta
}

// Beta1 returns the implicit (new-state) coefficient.
func (o *ImplicitStepper) Beta1() float64 { return o.beta1 }

// Beta2 returns the explicit (old-state) coefficient.
func (o *ImplicitStepper) Beta2() float64 { return o.beta2 }

func (o *ImplicitStepper) GetDt() float64        { return o.dt }
func (o *ImplicitStepper) GetTime() float64      { return o.t }
func (o *ImplicitStepper) GetStep() int          { return o.step }
func (o *ImplicitStepper) GetTimestamp() int     { return o.timestamp }
func (o *ImplicitStepper) GetRamp(t float64) float64 { return o.Ramp.At(t) }

// GetTimeAtCurrentStage returns the time the implicit residual is
// evaluated at: t + Theta*dt, the same fractional-step convention
// RKStepper.GetTimeAtCurrentStage uses.
func (o *ImplicitStepper) GetTimeAtCurrentStage() float64 {
	return o.t + o.Theta*o.dt
}

// Next advances one implicit step (there is exactly one "stage" per step,
// unlike the explicit RK path's multiple sub-stages).
func (o *ImplicitStepper) Next() {
	o.timestamp++
	o.step++
	o.t += o.dt
}
