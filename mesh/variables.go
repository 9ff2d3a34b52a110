// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the heterogeneous element/edge data model of
// spec.md §3: per-element stage state, the boundary/internal quadrature
// caches, and the typed skeleton containers (Interface/Boundary/
// DistributedBoundary). It generalizes the teacher's fem.Domain (a single
// flat slice of the Elem interface, fem/domain.go) into the closed
// tagged-variant design spec.md §9 calls for: one concrete Go type per edge
// kind, dispatched through ForEach* rather than through an Elem interface's
// virtual calls, so the ngp-point inner loop is always a plain, inlinable
// loop over a concrete slice.
package mesh

// Shallow-water conserved variables, in the fixed order used by every
// [n_variables]-shaped array in this package.
const (
	Ze = iota // free-surface elevation
	Qx        // x-discharge
	Qy        // y-discharge
	NVariables
)

// Auxiliary (derived) quantities cached alongside q at every quadrature
// point.
const (
	H = iota // total water depth, h = ze + bath
	Bath     // bathymetric depth below the datum (positive downward), time-invariant per element
	NAux
)

// NBound is the number of edges (traces) of a triangular element.
const NBound = 3
