// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package limiter implements optional slope-limiting hooks applied after
// the RK combination stage and before the next stage's kernels run
// (SPEC_FULL.md open-question decision: limiting is an optional
// post-stage hook, not a mandatory kernel). It is adapted from mreten's
// Model/GetModel registry idiom (mreten/retention.go), generalized from a
// liquid-retention constitutive law lookup to a slope-limiter lookup.
package limiter

import (
	"math"

	"github.com/dpedroso-labs/swehdg/env"
	"github.com/dpedroso-labs/swehdg/mesh"
)

// Hook limits one element's modal state in place, typically to preserve a
// non-negative water depth at a fixed set of sample points. The default
// (NoOp) leaves state untouched.
type Hook interface {
	Apply(e *mesh.Element, stage int, ge env.Environment)
}

// NoOp is the default hook: it does nothing, matching the teacher's pattern
// of a harmless zero-value behavior when no model has been configured.
type NoOp struct{}

func (NoOp) Apply(*mesh.Element, int, env.Environment) {}

// GetHook returns a named Hook, or NoOp if the name is unrecognized or
// empty — mirroring mreten.GetModel's "return nil on unknown name"
// contract, except a missing limiter is a legitimate configuration rather
// than an error.
func GetHook(name string) Hook {
	if h, ok := registry[name]; ok {
		return h
	}
	return NoOp{}
}

var registry = map[string]Hook{
	"nonneg": Nonneg{},
}

// Nonneg is a Zhang-Shu-style positivity-preserving limiter: it rescales
// the non-constant modes of the elevation field so that its value at every
// volume quadrature point keeps the total depth h = ze+bath at or above
// env.Environment.HMin, while leaving the cell mean exactly unchanged.
// Quadrature points are used as the sample set in place of the full vertex
// set a nodal DG code would check, since this basis is purely modal
// (SPEC_FULL.md, decision 2 on open questions).
type Nonneg struct{}

func (Nonneg) Apply(e *mesh.Element, stage int, ge env.Environment) {
	m := e.M
	q := e.State[stage].Q[mesh.Ze]

	var totalW, meanZe, meanBath, minH float64
	minH = math.MaxFloat64
	for g := 0; g < m.Ngp; g++ {
		w := m.GpW[g]
		totalW += w
		var ze float64
		for k := 0; k < m.Ndof; k++ {
			ze += q[k] * m.PhiGp[k][g]
		}
		meanZe += ze * w
		bath := e.Internal.AuxAtGp[mesh.Bath][g]
		meanBath += bath * w
		h := ze + bath
		if h < minH {
			minH = h
		}
	}
	if totalW == 0 {
		return
	}
	meanZe /= totalW
	meanBath /= totalW
	meanH := meanZe + meanBath

	if minH >= ge.HMin || meanH <= ge.HMin {
		return
	}
	theta := (meanH - ge.HMin) / (meanH - minH)
	if theta < 0 {
		theta = 0
	}
	if theta > 1 {
		theta = 1
	}
	for k := 1; k < m.Ndof; k++ {
		q[k] *= theta
	}
}
