// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package friction implements bottom-friction closures for the local source
// kernel (spec.md §4.4 step 5). It is adapted from mconduct's Model
// interface and GetModel name-keyed allocator registry
// (mconduct/conductmodels.go), generalized from liquid/gas relative
// conductivity to bottom-stress coefficients.
package friction

import "math"

// Model computes the bottom friction stress coefficient, the factor
// multiplying the depth-averaged velocity in the friction stress
// tau_b = g * coefficient * (qx,qy)/h; the local source kernel adds
// -g * coefficient * (qx,qy) to the momentum equations.
type Model interface {
	Coefficient(h, qx, qy float64) float64
}

// GetModel returns a new friction Model by name, or nil if the name is
// unknown. Unlike mconduct's per-simulation model database, one Environment
// only ever needs one friction law, so no keyed cache is kept here.
func GetModel(name string, coef float64) Model {
	allocator, ok := allocators[name]
	if !ok {
		return nil
	}
	return allocator(coef)
}

var allocators = map[string]func(float64) Model{
	"manning": func(n float64) Model { return Manning{N: n} },
	"chezy":   func(c float64) Model { return Chezy{C: c} },
}

// Manning implements the Manning bottom-friction law, tau_b = g*n^2*|u|*u /
// h^(4/3), expressed as a coefficient multiplying q/h so the source kernel
// only needs one multiply per variable.
type Manning struct {
	N float64 // Manning's roughness coefficient
}

// Coefficient returns n^2*|u| / h^(4/3), so that
// source = -Coefficient(h,qx,qy) * g * (qx,qy).
func (m Manning) Coefficient(h, qx, qy float64) float64 {
	if h <= 0 {
		return 0
	}
	u := math.Hypot(qx, qy) / h
	return m.N * m.N * u / math.Pow(h, 4.0/3.0)
}

// Chezy implements the Chezy bottom-friction law, tau_b = g*|u|*u/(C^2*h).
type Chezy struct {
	C float64 // Chezy roughness coefficient
}

func (c Chezy) Coefficient(h, qx, qy float64) float64 {
	if h <= 0 || c.C <= 0 {
		return 0
	}
	u := math.Hypot(qx, qy) / h
	return u / (c.C * c.C * h)
}
