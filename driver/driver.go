// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver orchestrates one run: the bulk-synchronous per-stage
// pipeline of local volume/source/interface/boundary kernels, the global
// trace solve, and the RK (or Green-Naghdi) stage combination, with NaN
// scrutiny and collective abort after every stage (spec.md §5, §7). Its
// Start/Run split and its global run-state struct are grounded on
// fem/solver.go's Start/Run pair.
package driver

import (
	"fmt"
	"math"

	"github.com/dpedroso-labs/swehdg/bc"
	"github.com/dpedroso-labs/swehdg/comm"
	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/gn"
	"github.com/dpedroso-labs/swehdg/limiter"
	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/mesh"
	"github.com/dpedroso-labs/swehdg/stepper"
	"github.com/dpedroso-labs/swehdg/swe"
	"github.com/dpedroso-labs/swehdg/trace"
)

// ErrKind enumerates the fatal-error categories spec.md §7 names.
type ErrKind int

const (
	ErrUnsafeRuntimeConcurrency ErrKind = iota
	ErrBadInput
	ErrMeshInconsistent
	ErrUnsupportedOrder
	ErrInversionDivergent
	ErrLinearSolveDivergent
	ErrNumericalInstability
	ErrCommunicatorFailure
)

func (k ErrKind) String() string {
	switch k {
	case ErrUnsafeRuntimeConcurrency:
		return "unsafe runtime concurrency"
	case ErrBadInput:
		return "bad input"
	case ErrMeshInconsistent:
		return "mesh inconsistent"
	case ErrUnsupportedOrder:
		return "unsupported order"
	case ErrInversionDivergent:
		return "geometric inversion divergent"
	case ErrLinearSolveDivergent:
		return "linear solve divergent"
	case ErrNumericalInstability:
		return "numerical instability (NaN/Inf detected)"
	case ErrCommunicatorFailure:
		return "communicator failure"
	default:
		return "unknown"
	}
}

// FatalError wraps an ErrKind with the underlying cause, the sentinel
// error type swe/mesh/shape errors get classified into before a collective
// abort decision (spec.md §7).
type FatalError struct {
	Kind  ErrKind
	Cause error
}

func (e *FatalError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Cause) }
func (e *FatalError) Unwrap() error { return e.Cause }

// Conditions maps every BC boundary kind to its Condition specialization.
type Conditions struct {
	Land     bc.Condition
	Tide     bc.Condition
	Flow     bc.Condition
	Function bc.Condition
}

func (c Conditions) forKind(k mesh.EdgeKind) bc.Condition {
	switch k {
	case mesh.KindBoundaryLand:
		return c.Land
	case mesh.KindBoundaryTide:
		return c.Tide
	case mesh.KindBoundaryFlow:
		return c.Flow
	case mesh.KindBoundaryFunction:
		return c.Function
	default:
		return nil
	}
}

// Driver owns every long-lived piece of run state: the mesh, the master
// element it was built with, the physical/numerical environment, the
// stepper, the communicator, the boundary conditions, the forcing, and the
// optional limiter/GN hooks.
type Driver struct {
	Mesh    *mesh.Mesh
	Master  *master.Master
	Env     env.Environment
	Stepper *stepper.RKStepper
	Comm    *comm.Communicator
	Cond    Conditions
	Forcing swe.Forcing
	Limiter limiter.Hook
}

// New builds a Driver with a no-op limiter by default.
func New(m *mesh.Mesh, ma *master.Master, ge env.Environment, st *stepper.RKStepper, c *comm.Communicator, cond Conditions, fo swe.Forcing) *Driver {
	return &Driver{Mesh: m, Master: ma, Env: ge, Stepper: st, Comm: c, Cond: cond, Forcing: fo, Limiter: limiter.NoOp{}}
}

// RunStage executes exactly one RK stage of the bulk-synchronous pipeline
// spec.md §5 lays out: local volume -> local source -> local interface/
// boundary -> post distributed sends/receives -> interface edge fluxes ->
// wait on every post -> global edge kernels (boundary and distributed) ->
// trace solve -> remaining edge fluxes -> local post-receive (M^-1, RK
// combine) -> limiter -> finiteness check.
func (d *Driver) RunStage() error {
	stage := d.Stepper.GetStage()
	t := d.Stepper.GetTimeAtCurrentStage()
	dt := d.Stepper.GetDt()

	if err := d.Mesh.ForEachElement(func(e *mesh.Element) error {
		return swe.LocalVolumeKernel(e, stage, d.Env)
	}); err != nil {
		return &FatalError{ErrNumericalInstability, err}
	}

	if err := d.Mesh.ForEachElement(func(e *mesh.Element) error {
		return swe.LocalSourceKernel(e, stage, d.Env, d.Forcing, t)
	}); err != nil {
		return &FatalError{ErrNumericalInstability, err}
	}

	d.Mesh.ForEachInterface(func(it *mesh.Interface) error {
		swe.LocalInterfaceKernel(it, stage, d.Env)
		return nil
	})
	d.Mesh.ForEachBoundaryKind(func(k mesh.EdgeKind, b *mesh.Boundary) error {
		swe.LocalBoundaryKernel(b, stage)
		return nil
	})

	// pack and post distributed sends/receives before the local work that
	// does not need them, overlapping communication with computation
	// (spec.md §5). ForEachDistributed iterates the mesh partition's fixed
	// edge list, so both ranks post in the same deterministic order.
	d.Mesh.ForEachDistributed(func(db *mesh.DistributedBoundary) error {
		swe.DistributedPackKernel(db, stage)
		db.Exch.SeqSend++
		d.Comm.PostSend(db.Exch.PeerRank, comm.Tag{Rank: d.Comm.Rank(), EdgeID: db.Exch.PeerEdgeID, Seq: db.Exch.SeqSend}, db.Exch.SendBuf)
		db.Exch.SeqRecv++
		d.Comm.PostRecv(db.Exch.PeerRank, comm.Tag{Rank: d.Comm.Rank(), EdgeID: db.Index(), Seq: db.Exch.SeqRecv}, db.Exch.RecvBuf)
		return nil
	})

	d.Mesh.ForEachElement(func(e *mesh.Element) error {
		for b := 0; b < mesh.NBound; b++ {
			if e.EdgeIndex[b].Kind != mesh.KindInterface {
				continue
			}
			swe.ApplyEdgeFlux(e, b, stage)
		}
		return nil
	})

	if err := d.Comm.Wait(); err != nil {
		return &FatalError{ErrCommunicatorFailure, err}
	}

	d.Mesh.ForEachBoundaryKind(func(k mesh.EdgeKind, b *mesh.Boundary) error {
		swe.GlobalBoundaryKernel(b, d.Cond.forKind(k), d.Env, t)
		return nil
	})
	d.Mesh.ForEachDistributed(func(db *mesh.DistributedBoundary) error {
		swe.DistributedGlobalKernel(db, d.Env)
		return nil
	})

	layout := trace.NewLayout(d.Mesh, d.Master.Ndof)
	sys := trace.Assemble(d.Mesh, d.Master, layout)
	delta, err := trace.Solve(sys)
	if err != nil {
		return &FatalError{ErrLinearSolveDivergent, err}
	}
	trace.Scatter(d.Mesh, d.Master, layout, delta)

	d.Mesh.ForEachElement(func(e *mesh.Element) error {
		for b := 0; b < mesh.NBound; b++ {
			if e.EdgeIndex[b].Kind != mesh.KindInterface {
				swe.ApplyEdgeFlux(e, b, stage)
			}
		}
		return nil
	})

	if err := d.Mesh.ForEachElement(func(e *mesh.Element) error {
		return swe.ApplyInverseMassAndCombine(e, stage, d.Stepper.Tableau, dt)
	}); err != nil {
		return &FatalError{ErrNumericalInstability, err}
	}

	d.Mesh.ForEachElement(func(e *mesh.Element) error {
		d.Limiter.Apply(e, stage+1, d.Env)
		return nil
	})

	if err := d.checkFinite(stage + 1); err != nil {
		return &FatalError{ErrNumericalInstability, err}
	}

	d.Stepper.Next()
	if d.Stepper.GetStage() == 0 {
		d.Mesh.ForEachElement(func(e *mesh.Element) error {
			e.RotateStage()
			return nil
		})
	}
	return nil
}

// RunGNStep executes one Green-Naghdi step: SWE half-stage, dispersive
// correction, SWE half-stage, increment (spec.md §4.5 state machine).
func (d *Driver) RunGNStep() error {
	if err := d.RunStage(); err != nil {
		return err
	}
	if d.Env.GN {
		stage := d.Stepper.GetStage()
		if err := d.Mesh.ForEachElement(func(e *mesh.Element) error {
			w1, err := gn.SolveW1(e, stage, d.Env)
			if err != nil {
				return err
			}
			gn.ApplyCorrection(e, stage, w1)
			return nil
		}); err != nil {
			return &FatalError{ErrNumericalInstability, err}
		}
	}
	return d.RunStage()
}

// checkFinite scans every element's state[stage] for NaN/Inf, the scrutiny
// spec.md §7 requires after every stage before a collective abort vote.
func (d *Driver) checkFinite(stage int) error {
	var bad error
	d.Mesh.ForEachElement(func(e *mesh.Element) error {
		for v := 0; v < mesh.NVariables; v++ {
			for _, x := range e.State[stage].Q[v] {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					bad = fmt.Errorf("element %d: non-finite state in variable %d", e.Id(), v)
					return bad
				}
			}
		}
		return nil
	})
	if d.Comm.CollectiveAbort(bad) {
		if bad == nil {
			bad = fmt.Errorf("collective abort requested by a peer rank")
		}
		return bad
	}
	return nil
}
