// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// boundaryKinds lists every BC kind MeshSkeleton keeps a sub-container for,
// in dispatch order. Adding a new BC kind means adding one entry here and
// one case in the kernel switch that interprets EdgeKind — no change to the
// dispatch loop itself (spec.md §9 for_each_kind).
var boundaryKinds = [4]EdgeKind{KindBoundaryLand, KindBoundaryTide, KindBoundaryFlow, KindBoundaryFunction}

// Mesh owns every Element and every kind of skeleton edge exclusively
// (spec.md §3 "the mesh exclusively owns all elements"). It is the typed
// heterogeneous bag the design notes ask for, generalizing the teacher's
// single fem.Domain.Elems/Cid2elem pair of slices into one typed container
// per concrete kind.
type Mesh struct {
	Elements    ElementContainer
	Interfaces  InterfaceContainer
	Boundaries  map[EdgeKind]*BoundaryContainer // keyed by boundaryKinds entries
	Distributed DistributedBoundaryContainer

	finalized bool
}

// New returns an empty Mesh with one BoundaryContainer pre-registered per
// BC kind.
func New() *Mesh {
	m := &Mesh{Boundaries: make(map[EdgeKind]*BoundaryContainer, len(boundaryKinds))}
	for _, k := range boundaryKinds {
		m.Boundaries[k] = &BoundaryContainer{kind: k}
	}
	return m
}

// FinalizeInitialization freezes every sub-container. No reallocation is
// permitted afterwards, so every EdgeRef and element index handed out
// earlier stays valid for the Mesh's lifetime (spec.md §3, §4.3).
func (m *Mesh) FinalizeInitialization() {
	m.Elements.FinalizeInitialization()
	m.Interfaces.FinalizeInitialization()
	for _, k := range boundaryKinds {
		m.Boundaries[k].FinalizeInitialization()
	}
	m.Distributed.FinalizeInitialization()
	m.finalized = true
}

// Finalized reports whether FinalizeInitialization has run.
func (m *Mesh) Finalized() bool { return m.finalized }

// ForEachElement dispatches f over every element.
func (m *Mesh) ForEachElement(f func(*Element) error) error {
	return m.Elements.CallForEach(f)
}

// ForEachInterface dispatches f over every interface.
func (m *Mesh) ForEachInterface(f func(*Interface) error) error {
	return m.Interfaces.CallForEach(f)
}

// ForEachBoundaryKind dispatches f over every boundary of every BC kind, in
// a fixed kind order. This is the "for_each_kind" the design notes call
// for: the outer loop over kinds happens once per kernel invocation, never
// inside the per-gauss-point inner loop.
func (m *Mesh) ForEachBoundaryKind(f func(EdgeKind, *Boundary) error) error {
	for _, k := range boundaryKinds {
		c := m.Boundaries[k]
		err := c.CallForEach(func(b *Boundary) error { return f(k, b) })
		if err != nil {
			return err
		}
	}
	return nil
}

// ForEachDistributed dispatches f over every distributed boundary.
func (m *Mesh) ForEachDistributed(f func(*DistributedBoundary) error) error {
	return m.Distributed.CallForEach(f)
}

// EdgeCount returns the total number of skeleton edges of every kind,
// useful for sizing the global trace system (spec.md §3 "Global problem
// handle").
func (m *Mesh) EdgeCount() int {
	n := m.Interfaces.Len() + m.Distributed.Len()
	for _, k := range boundaryKinds {
		n += m.Boundaries[k].Len()
	}
	return n
}
