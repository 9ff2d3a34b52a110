// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"

	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/shape"
)

// StageState holds one stage's worth of an element's modal state: the
// solution coefficients q, the assembled right-hand side, and the
// nonlinear/RK solution increment (spec.md §3 "Element data").
type StageState struct {
	Q        [][]float64 // [NVariables][ndof]
	Rhs      [][]float64 // [NVariables][ndof]
	Solution [][]float64 // [NVariables][ndof]
}

func newStageState(nvar, ndof int) StageState {
	return StageState{
		Q:        alloc2(nvar, ndof),
		Rhs:      alloc2(nvar, ndof),
		Solution: alloc2(nvar, ndof),
	}
}

func alloc2(n, m int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
	}
	return out
}

// Internal holds the values of q and the auxiliary state at the element's
// volume quadrature points, refreshed at the start of every local volume
// kernel call (spec.md §3, §4.4 step 1-2).
type Internal struct {
	QAtGp   [][]float64 // [NVariables][ngp]
	AuxAtGp [][]float64 // [NAux][ngp]
}

// EdgeInternal holds the values of q, the auxiliary state, and the computed
// numerical flux at one boundary's quadrature points (spec.md §3
// "boundary[nbound]").
type EdgeInternal struct {
	QAtGp     [][]float64 // [NVariables][edgeNgp]
	AuxAtGp   [][]float64 // [NAux][edgeNgp]
	FHatAtGp  [][]float64 // [NVariables][edgeNgp]
}

// Element is one triangular DG element: its shared Master, its own Shape
// (physical geometry), a fixed window of RK stage states, the volume
// quadrature cache (Internal), and one EdgeInternal per boundary.
type Element struct {
	id int

	M *master.Master
	S *shape.Shape

	Nstages int
	State   []StageState // size Nstages+1, spec.md §3 invariant

	Internal Internal
	Boundary [NBound]EdgeInternal

	Dry bool // wet/dry flag (spec.md §3); no kernel in this module sets or reads it

	// EdgeIndex[b] is the skeleton edge (Interface/Boundary/
	// DistributedBoundary) touching local edge b, identified by its kind
	// and a stable index into that kind's container — see edge.go.
	EdgeIndex [NBound]EdgeRef
}

// Id returns the element's stable identity (spec.md §3).
func (e *Element) Id() int { return e.id }

func newElement(id int, m *master.Master, s *shape.Shape, nstages int) *Element {
	e := &Element{id: id, M: m, S: s, Nstages: nstages}
	e.State = make([]StageState, nstages+1)
	for i := range e.State {
		e.State[i] = newStageState(NVariables, m.Ndof)
	}
	e.Internal = Internal{QAtGp: alloc2(NVariables, m.Ngp), AuxAtGp: alloc2(NAux, m.Ngp)}
	for b := 0; b < NBound; b++ {
		e.Boundary[b] = EdgeInternal{
			QAtGp:    alloc2(NVariables, m.EdgeNgp),
			AuxAtGp:  alloc2(NAux, m.EdgeNgp),
			FHatAtGp: alloc2(NVariables, m.EdgeNgp),
		}
	}
	return e
}

// RotateStage copies state[Nstages] into state[0], per spec.md §4.7 /
// design note "state rotation across stages": a plain array copy instead of
// a pointer swap, so no thread iterating the array ever observes a moved
// pointer mid-flight.
func (e *Element) RotateStage() {
	last := e.State[e.Nstages]
	for v := 0; v < NVariables; v++ {
		copy(e.State[0].Q[v], last.Q[v])
	}
}

// RefreshAux recomputes aux_at_gp[H] = q_at_gp[Ze] + aux_at_gp[Bath] at every
// volume quadrature point, the invariant spec.md §3 requires after any
// refresh.
func (e *Element) RefreshAux() {
	for g := 0; g < e.M.Ngp; g++ {
		e.Internal.AuxAtGp[H][g] = e.Internal.QAtGp[Ze][g] + e.Internal.AuxAtGp[Bath][g]
	}
}

// ElementContainer is the typed, contiguous, struct-of-arrays-flavoured bag
// of Elements: the teacher's fem.Domain.Elems slice, generalized behind a
// reserve/create/finalize lifecycle (spec.md §4.3) so that indices handed
// out by GetByIndex stay valid for the life of the Mesh.
type ElementContainer struct {
	elems  []*Element
	frozen bool
}

// Reserve preallocates storage for n elements, avoiding reallocation during
// Create (spec.md §4.3).
func (c *ElementContainer) Reserve(n int) {
	c.elems = make([]*Element, 0, n)
}

// Create allocates a new Element; only legal before FinalizeInitialization.
func (c *ElementContainer) Create(id int, m *master.Master, s *shape.Shape, nstages int) (*Element, error) {
	if c.frozen {
		return nil, fmt.Errorf("mesh: cannot Create element %d after FinalizeInitialization", id)
	}
	e := newElement(id, m, s, nstages)
	c.elems = append(c.elems, e)
	return e, nil
}

// FinalizeInitialization freezes the container: no further reallocation,
// and indices returned by GetByIndex remain stable until the Mesh is
// destroyed (spec.md §4.3).
func (c *ElementContainer) FinalizeInitialization() { c.frozen = true }

// Len returns the number of elements.
func (c *ElementContainer) Len() int { return len(c.elems) }

// GetByIndex returns the element at the given stable index.
func (c *ElementContainer) GetByIndex(i int) *Element { return c.elems[i] }

// CallForEach invokes f once per element. Safe to call concurrently from a
// fixed thread pool once the container is frozen, since f never mutates
// c.elems itself (spec.md §5 "parallel_for over owning containers").
func (c *ElementContainer) CallForEach(f func(*Element) error) error {
	for _, e := range c.elems {
		if err := f(e); err != nil {
			return err
		}
	}
	return nil
}
