// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/dpedroso-labs/swehdg/env"
)

func TestManufacturedSourceVanishesAtZeroAmplitude(tst *testing.T) {
	var m Manufactured
	m.Init(fun.Prms{{N: "A", V: 0}})
	src := m.Source(0.3, 0.4, 0.5, env.Default())
	chk.Scalar(tst, "mass residual", 1e-12, src[0], 0)
	chk.Scalar(tst, "x-mom residual", 1e-12, src[1], 0)
	chk.Scalar(tst, "y-mom residual", 1e-12, src[2], 0)
}

func TestStokerStillWaterBeforeRelease(tst *testing.T) {
	var s Stoker
	s.Init(fun.Prms{{N: "hl", V: 1.0}, {N: "hr", V: 0.5}})
	h, u := s.State(-1, 0)
	chk.Scalar(tst, "hl at t=0", 1e-12, h, 1.0)
	chk.Scalar(tst, "u at t=0", 1e-12, u, 0)
}

func TestSolitaryPeaksAtCrest(tst *testing.T) {
	var w Solitary
	w.Init(fun.Prms{{N: "h0", V: 1.0}, {N: "a", V: 0.2}})
	h, _ := w.State(w.X0, 0)
	chk.Scalar(tst, "crest depth", 1e-9, h, w.H0+w.A)
}
