// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the input data read from a JSON configuration file
// and from a JSON geometry (mesh) file, generalizing the teacher's
// inp/sim.go Data and inp/msh.go Mesh readers from an elastostatics/
// poromechanics problem description to the shallow-water/Green-Naghdi
// solver's run configuration (spec.md §6).
package inp

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/stepper"
)

// ConstituentData is one harmonic tidal term A*cos(omega*t-phase), read
// verbatim into a bc.Constituent by buildCondition (config_forcing.go).
type ConstituentData struct {
	Amplitude float64 `json:"amplitude"`
	Omega     float64 `json:"omega"`
	Phase     float64 `json:"phase"`
}

// BoundaryData picks the condition kind applied to one of the four BC
// containers (spec.md §4.4): "land", "tide", "flow" or "function", plus
// whichever of the fields below that kind consumes.
type BoundaryData struct {
	Kind         string            `json:"kind"`
	Constituents []ConstituentData `json:"constituents"` // tide
	QnFunc       string            `json:"qnFunc"`        // flow: name into Functions
	ZeFunc       string            `json:"zeFunc"`        // function
	QxFunc       string            `json:"qxFunc"`        // function
	QyFunc       string            `json:"qyFunc"`        // function
}

// ForcingData names the functions driving the source-term forcings
// (spec.md §4.4 "local source kernel"); empty names leave that forcing off.
type ForcingData struct {
	WindXFunc      string  `json:"windXFunc"`
	WindYFunc      string  `json:"windYFunc"`
	AtmPressureDx  string  `json:"atmPressureDxFunc"`
	AtmPressureDy  string  `json:"atmPressureDyFunc"`
	TidePotDx      string  `json:"tidePotentialDxFunc"`
	TidePotDy      string  `json:"tidePotentialDyFunc"`
	FrictionModel  string  `json:"frictionModel"`  // "manning" or "chezy"
	FrictionCoef   float64 `json:"frictionCoef"`
}

// SteppingData selects and parameterizes the time integrator (spec.md §4.7).
// Scheme picks the RKStepper tableau that main runs, on both the SWE-only
// and the GN path; NewRKStepper rejects any other name, "implicit"
// included. Theta is read only by NewImplicitStepper, whose ImplicitStepper
// the driver does not run.
type SteppingData struct {
	Scheme string  `json:"scheme"` // "ssprk3" (default) or "euler"
	Theta  float64 `json:"theta"`  // NewImplicitStepper only
	Dt     float64 `json:"dt"`
	Tfinal float64 `json:"tfinal"`
	Tramp  float64 `json:"tramp"`
}

// Data holds the full run configuration read from a (.json) file: physical
// constants, forcing, boundary assignment and time-stepping — the
// generalization of inp/sim.go's Data from elastostatics run options to
// spec.md §6's "Configuration".
type Data struct {
	Desc    string `json:"desc"`
	MshFile string `json:"mshFile"`
	DirOut  string `json:"dirout"`

	G        float64 `json:"g"`
	RhoWater float64 `json:"rhoWater"`
	RhoAir   float64 `json:"rhoAir"`

	Coriolis bool    `json:"coriolis"`
	Omega    float64 `json:"omega"`
	Lat0     float64 `json:"lat0"`

	Manning bool `json:"manning"`
	Meteo   bool `json:"meteo"`
	Tide    bool `json:"tide"`

	GN    bool    `json:"gn"`
	Alpha float64 `json:"alpha"`
	Tau   float64 `json:"tau"`
	HMin  float64 `json:"hMin"`

	Stepping SteppingData `json:"stepping"`
	Forcing  ForcingData  `json:"forcing"`

	Boundaries map[string]BoundaryData `json:"boundaries"` // keyed by "land","tide","flow","function"
	Functions  FuncsData                `json:"functions"`

	// derived
	FnameDir string
	FnameKey string
}

// SetDefault fills every unset physical constant with spec.md's documented
// default, mirroring inp/sim.go's Data.SetDefault.
func (o *Data) SetDefault() {
	d := env.Default()
	if o.G == 0 {
		o.G = d.G
	}
	if o.RhoWater == 0 {
		o.RhoWater = d.RhoWater
	}
	if o.RhoAir == 0 {
		o.RhoAir = d.RhoAir
	}
	if o.Omega == 0 {
		o.Omega = d.Omega
	}
	if o.Alpha == 0 {
		o.Alpha = d.Alpha
	}
	if o.Tau == 0 {
		o.Tau = d.Tau
	}
	if o.HMin == 0 {
		o.HMin = d.HMin
	}
}

// PostProcess derives FnameDir/FnameKey and ensures DirOut exists, the same
// role inp/sim.go's Data.PostProcess plays.
func (o *Data) PostProcess(dir, fn string) error {
	o.FnameDir = os.ExpandEnv(dir)
	o.FnameKey = io.FnKey(fn)
	if o.DirOut == "" {
		o.DirOut = "/tmp/swehdg/" + o.FnameKey
	}
	return os.MkdirAll(o.DirOut, 0777)
}

// ReadConfig reads and validates a run configuration file.
//
//	Note: returns nil on error, after logging it, mirroring inp/msh.go's
//	ReadMsh "returns nil on errors" contract.
func ReadConfig(fn string) *Data {
	var o Data
	b, err := os.ReadFile(fn)
	if LogErr(err, "config: cannot open "+fn) {
		return nil
	}
	if LogErr(json.Unmarshal(b, &o), "config: cannot unmarshal "+fn) {
		return nil
	}
	o.SetDefault()
	if err := o.PostProcess(filepath.Dir(fn), fn); LogErr(err, "config: cannot post-process "+fn) {
		return nil
	}
	log.Printf("inp: read config %s: mshFile=%s scheme=%s dt=%g tfinal=%g\n", fn, o.MshFile, o.Stepping.Scheme, o.Stepping.Dt, o.Stepping.Tfinal)
	return &o
}

// Environment builds the immutable env.Environment the kernels consume.
func (o *Data) Environment() env.Environment {
	return env.Environment{
		G: o.G, RhoWater: o.RhoWater, RhoAir: o.RhoAir,
		Coriolis: o.Coriolis, Omega: o.Omega, Lat0: o.Lat0,
		Manning: o.Manning, Meteo: o.Meteo, Tide: o.Tide,
		GN: o.GN, Alpha: o.Alpha, Tau: o.Tau, HMin: o.HMin,
		Ramp: env.Ramp{Tramp: o.Stepping.Tramp},
	}
}

// NewRKStepper builds the explicit stepper selected by Stepping.Scheme.
func (o *Data) NewRKStepper() (*stepper.RKStepper, error) {
	var tab stepper.Tableau
	switch o.Stepping.Scheme {
	case "euler":
		tab = stepper.ForwardEuler()
	case "ssprk3", "":
		tab = stepper.SSPRK3()
	default:
		return nil, chk.Err("inp: unknown explicit scheme %q", o.Stepping.Scheme)
	}
	return stepper.NewRKStepper(tab, 0, o.Stepping.Dt, env.Ramp{Tramp: o.Stepping.Tramp}), nil
}

// NewImplicitStepper builds the implicit (IHDG/GN) stepper.
func (o *Data) NewImplicitStepper() (*stepper.ImplicitStepper, error) {
	theta := o.Stepping.Theta
	if theta == 0 {
		theta = 1.0
	}
	return stepper.NewImplicitStepper(theta, 0, o.Stepping.Dt, env.Ramp{Tramp: o.Stepping.Tramp})
}

// funcOrNil resolves a function name through Functions, returning nil for
// an empty name (the "forcing disabled" convention spec.md §4.4 assumes).
func (o *Data) funcOrNil(name string) fun.Func {
	if name == "" {
		return nil
	}
	return o.Functions.GetOrPanic(name)
}
