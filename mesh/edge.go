// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/dpedroso-labs/swehdg/master"

// EdgeKind is the closed tagged variant spec.md §9 asks for: every skeleton
// edge is exactly one of these, and ForEach dispatch iterates each kind's
// own typed container rather than going through a virtual call on a shared
// interface.
type EdgeKind int

const (
	KindInterface EdgeKind = iota
	KindBoundaryLand
	KindBoundaryTide
	KindBoundaryFlow
	KindBoundaryFunction
	KindDistributed
)

// EdgeRef identifies one skeleton edge by kind and stable index into that
// kind's container (spec.md §9 "stable integer index... together with the
// container's identity, not a raw pointer").
type EdgeRef struct {
	Kind EdgeKind
	Idx  int
}

// Trace is the hybrid (skeleton) unknown carried by every Interface,
// Boundary, and DistributedBoundary: q_hat and its derived quadrature
// evaluations, plus the local HDG assembly kernels (spec.md §3 "Edge
// (skeleton) data").
type Trace struct {
	QHat []float64 // [NVariables*ndof] modal coefficients of the hybrid trace, flattened

	QHatAtGp   [][]float64 // [NVariables][edgeNgp]
	AuxHatAtGp [][]float64 // [NAux][edgeNgp]
	QInitAtGp  [][]float64 // [NVariables][edgeNgp] snapshot taken at initialization

	// local assembly kernels, evaluated at edge quadrature points and later
	// integrated against the trace basis by trace.Assemble.
	DeltaHatGlobalKernelAtGp [][]float64 // [NVariables*NVariables][edgeNgp] Jacobian contribution
	RhsGlobalKernelAtGp      [][]float64 // [NVariables][edgeNgp] residual contribution

	Normal [2]float64 // outward unit normal, constant along a straight edge
}

func newTrace(ndof, ngp int) Trace {
	return Trace{
		QHat:                     make([]float64, NVariables*ndof),
		QHatAtGp:                 alloc2(NVariables, ngp),
		AuxHatAtGp:               alloc2(NAux, ngp),
		QInitAtGp:                alloc2(NVariables, ngp),
		DeltaHatGlobalKernelAtGp: alloc2(NVariables*NVariables, ngp),
		RhsGlobalKernelAtGp:      alloc2(NVariables, ngp),
	}
}

// ElemSide references one element and one of its local edges, the unit an
// Interface/Boundary/DistributedBoundary attaches its Trace to.
type ElemSide struct {
	Elem     *Element
	LocalBnd int // index into Elem.Boundary / Elem.EdgeIndex
}

// Interface couples two element sides that share an edge inside one rank.
// Its two sides must share ngp and carry opposite normals, with gauss-point
// indices reversed on the second side (spec.md §3 interface invariant).
type Interface struct {
	idx int
	In  ElemSide
	Ex  ElemSide
	Trace Trace
}

func (o *Interface) Index() int { return o.idx }

// InterfaceContainer is the frozen-after-init bag of Interfaces, mirroring
// ElementContainer's lifecycle.
type InterfaceContainer struct {
	items  []*Interface
	frozen bool
}

func (c *InterfaceContainer) Reserve(n int) { c.items = make([]*Interface, 0, n) }

func (c *InterfaceContainer) Create(m *master.Master, in, ex ElemSide) (*Interface, error) {
	if c.frozen {
		return nil, errFrozen("interface")
	}
	it := &Interface{idx: len(c.items), In: in, Ex: ex, Trace: newTrace(m.Ndof, m.EdgeNgp)}
	c.items = append(c.items, it)
	return it, nil
}

func (c *InterfaceContainer) FinalizeInitialization() { c.frozen = true }
func (c *InterfaceContainer) Len() int                { return len(c.items) }
func (c *InterfaceContainer) GetByIndex(i int) *Interface { return c.items[i] }
func (c *InterfaceContainer) CallForEach(f func(*Interface) error) error {
	for _, it := range c.items {
		if err := f(it); err != nil {
			return err
		}
	}
	return nil
}

// Boundary is a single-sided skeleton edge; its Kind selects which boundary
// condition specialization's global-kernel implementation applies (land,
// tide, flow, prescribed function — spec.md §4.4 "global edge kernel").
type Boundary struct {
	idx   int
	Kind  EdgeKind
	Side  ElemSide
	Trace Trace
}

func (o *Boundary) Index() int { return o.idx }

// BoundaryContainer is one typed sub-container per BC kind; MeshSkeleton
// holds one BoundaryContainer per element of EdgeKind{Land,Tide,Flow,
// Function}.
type BoundaryContainer struct {
	items  []*Boundary
	kind   EdgeKind
	frozen bool
}

func (c *BoundaryContainer) Reserve(n int) { c.items = make([]*Boundary, 0, n) }

func (c *BoundaryContainer) Create(m *master.Master, side ElemSide) (*Boundary, error) {
	if c.frozen {
		return nil, errFrozen("boundary")
	}
	b := &Boundary{idx: len(c.items), Kind: c.kind, Side: side, Trace: newTrace(m.Ndof, m.EdgeNgp)}
	c.items = append(c.items, b)
	return b, nil
}

func (c *BoundaryContainer) FinalizeInitialization() { c.frozen = true }
func (c *BoundaryContainer) Len() int                { return len(c.items) }
func (c *BoundaryContainer) GetByIndex(i int) *Boundary { return c.items[i] }
func (c *BoundaryContainer) CallForEach(f func(*Boundary) error) error {
	for _, b := range c.items {
		if err := f(b); err != nil {
			return err
		}
	}
	return nil
}

func errFrozen(kind string) error {
	return &frozenError{kind}
}

type frozenError struct{ kind string }

func (e *frozenError) Error() string {
	return "mesh: cannot Create " + e.kind + " after FinalizeInitialization"
}
