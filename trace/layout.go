// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace assembles and solves the global HDG trace system: the
// sparse linear(ized) system coupling every skeleton edge's hybrid unknown
// q_hat (spec.md §4.6, §6 "Narrow external interface"). Assembly is
// grounded on the teacher's AddToKb pattern (fem/e_u.go and friends: each
// element contributes a local block into a shared *la.Triplet), and the
// solve is grounded on fem/domain.go's LinSol field — generalized here from
// a direct sparse factorization (umfpack/mumps, cgo-bound) to a matrix-free
// GMRES iteration via gonum.org/v1/gonum/linsolve, since the trace
// Jacobian is assembled one finite-difference column at a time (swe.
// GlobalBoundaryKernel) rather than in closed form.
package trace

import "github.com/dpedroso-labs/swehdg/mesh"

// Layout assigns every skeleton edge a contiguous block of global trace
// degrees of freedom, in a fixed kind order (interfaces, then each boundary
// kind, then distributed edges) so the assembly loop in Assemble and the
// solve-result scatter in Scatter agree on numbering without needing to
// store per-edge offsets anywhere else.
type Layout struct {
	Ndof      int // modal dofs per variable, per edge (== master.Master.Ndof)
	Nvar      int // mesh.NVariables
	blockSize int // Ndof*Nvar

	interfaceBase   int
	boundaryBase    map[mesh.EdgeKind]int
	distributedBase int

	boundaryKinds []mesh.EdgeKind

	N int // total trace dof count
}

// NewLayout computes offsets for every edge container in msh.
func NewLayout(msh *mesh.Mesh, ndof int) *Layout {
	l := &Layout{Ndof: ndof, Nvar: mesh.NVariables, blockSize: ndof * mesh.NVariables}
	l.boundaryKinds = []mesh.EdgeKind{mesh.KindBoundaryLand, mesh.KindBoundaryTide, mesh.KindBoundaryFlow, mesh.KindBoundaryFunction}
	l.boundaryBase = make(map[mesh.EdgeKind]int, len(l.boundaryKinds))

	offset := 0
	l.interfaceBase = offset
	offset += msh.Interfaces.Len() * l.blockSize

	for _, k := range l.boundaryKinds {
		l.boundaryBase[k] = offset
		offset += msh.Boundaries[k].Len() * l.blockSize
	}

	l.distributedBase = offset
	offset += msh.Distributed.Len() * l.blockSize

	l.N = offset
	return l
}

// InterfaceOffset returns the global dof offset of interface idx's block.
func (l *Layout) InterfaceOffset(idx int) int { return l.interfaceBase + idx*l.blockSize }

// BoundaryOffset returns the global dof offset of a boundary's block.
func (l *Layout) BoundaryOffset(kind mesh.EdgeKind, idx int) int {
	return l.boundaryBase[kind] + idx*l.blockSize
}

// DistributedOffset returns the global dof offset of a distributed
// boundary's block.
func (l *Layout) DistributedOffset(idx int) int { return l.distributedBase + idx*l.blockSize }
