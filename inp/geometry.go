// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/mesh"
	"github.com/dpedroso-labs/swehdg/shape"
)

// GeomVert is one mesh vertex: physical coordinates and the bathymetry
// sampled there, the vertex-level data inp/msh.go's Vert carries generalized
// from an elevation-less solid mesh to the bed-elevation field spec.md §2
// requires at every node.
type GeomVert struct {
	Id   int       `json:"id"`
	C    []float64 `json:"c"`    // [x,y]
	Bath float64   `json:"bath"` // bathymetric depth below the datum (positive downward) at this vertex
}

// GeomCell is one triangular element: its three vertices in CCW order and,
// per local edge (0: v0-v1, 1: v1-v2, 2: v2-v0), a tag identifying what lies
// across that edge — generalizing inp/msh.go's Cell.FTags convention
// (negative tag => boundary) to this solver's edge kinds.
//
//	tag == 0            : interior edge, matched to its neighbor by shared vertices
//	tag == landTag       : land (reflecting) boundary
//	tag == tideTag       : tide boundary
//	tag == flowTag       : flow boundary
//	tag == functionTag   : function (prescribed) boundary
type GeomCell struct {
	Id    int    `json:"id"`
	Verts [3]int `json:"verts"`
	FTags [3]int `json:"ftags"`
}

// Tag constants for GeomCell.FTags, matching the convention documented on
// GeomCell.
const (
	landTag     = -1
	tideTag     = -2
	flowTag     = -3
	functionTag = -4
)

var tag2kind = map[int]mesh.EdgeKind{
	landTag:     mesh.KindBoundaryLand,
	tideTag:     mesh.KindBoundaryTide,
	flowTag:     mesh.KindBoundaryFlow,
	functionTag: mesh.KindBoundaryFunction,
}

// Geometry is the on-disk representation of a mesh file (spec.md §2),
// generalizing inp/msh.go's Mesh from a multi-geometry FE mesh to this
// solver's triangle-only skeleton.
type Geometry struct {
	Verts []GeomVert `json:"verts"`
	Cells []GeomCell `json:"cells"`
}

// ReadGeometry reads and decodes a mesh file. Returns nil on error, after
// logging it (inp/msh.go's ReadMsh contract).
func ReadGeometry(fn string) *Geometry {
	b, err := os.ReadFile(fn)
	if LogErr(err, "geometry: cannot open "+fn) {
		return nil
	}
	var g Geometry
	if LogErr(json.Unmarshal(b, &g), "geometry: cannot unmarshal "+fn) {
		return nil
	}
	if LogErrCond(len(g.Verts) < 3, "geometry: mesh must have at least 3 vertices") {
		return nil
	}
	if LogErrCond(len(g.Cells) < 1, "geometry: mesh must have at least 1 cell") {
		return nil
	}
	log.Printf("inp: read geometry %s: nverts=%d ncells=%d\n", fn, len(g.Verts), len(g.Cells))
	return &g
}

// edgeKey is an undirected pair of global vertex ids, used to match the two
// cells sharing an interior edge.
type edgeKey [2]int

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// cellEdge locates one cell's local edge by its position in the adjacency
// scan below.
type cellEdge struct {
	cell  int
	local int
}

// Build constructs a *mesh.Mesh from the Geometry: one master.Master shared
// by every element (order p), one shape.Shape per cell, and the skeleton
// Interface/Boundary containers derived from FTags and shared-vertex
// adjacency. Nstages is the width of the per-element RK stage-state window
// (spec.md §3).
func (g *Geometry) Build(p, nstages int) (*mesh.Mesh, *master.Master, error) {
	m, err := master.NewMaster(master.Triangle, p)
	if err != nil {
		return nil, nil, fmt.Errorf("geometry: %w", err)
	}

	msh := mesh.New()
	msh.Elements.Reserve(len(g.Cells))

	shapes := make([]*shape.Shape, len(g.Cells))
	elems := make([]*mesh.Element, len(g.Cells))
	bathLin := make([][3]float64, len(g.Cells))

	for ci, c := range g.Cells {
		var x, y [3]float64
		for v := 0; v < 3; v++ {
			vid := c.Verts[v]
			if vid < 0 || vid >= len(g.Verts) {
				return nil, nil, fmt.Errorf("geometry: cell %d references out-of-range vertex %d", c.Id, vid)
			}
			vv := g.Verts[vid]
			x[v], y[v] = vv.C[0], vv.C[1]
			bathLin[ci][v] = vv.Bath
		}
		s := shape.New(m, x, y)
		e, err := msh.Elements.Create(c.Id, m, s, nstages)
		if err != nil {
			return nil, nil, err
		}
		bath := m.ProjectLinearToBasis(bathLin[ci])
		for gp := 0; gp < m.Ngp; gp++ {
			e.Internal.AuxAtGp[mesh.Bath][gp] = evalModal(bath, m.PhiGp, gp)
		}
		for b := 0; b < mesh.NBound; b++ {
			for gp := 0; gp < m.EdgeNgp; gp++ {
				e.Boundary[b].AuxAtGp[mesh.Bath][gp] = edgeEvalModal(bath, m, b, gp)
			}
		}
		shapes[ci] = s
		elems[ci] = e
	}

	// adjacency scan: match interior edges by shared vertex pair, route
	// tagged edges to the boundary kind tag2kind names.
	adjacency := make(map[edgeKey][]cellEdge)
	for ci, c := range g.Cells {
		for local := 0; local < 3; local++ {
			v0, v1 := c.Verts[local], c.Verts[(local+1)%3]
			key := makeEdgeKey(v0, v1)
			adjacency[key] = append(adjacency[key], cellEdge{ci, local})
		}
	}

	msh.Interfaces.Reserve(len(adjacency))
	for _, k := range orderedKeys(adjacency, g.Cells) {
		sides := adjacency[k]
		switch len(sides) {
		case 2:
			in := mesh.ElemSide{Elem: elems[sides[0].cell], LocalBnd: sides[0].local}
			ex := mesh.ElemSide{Elem: elems[sides[1].cell], LocalBnd: sides[1].local}
			it, err := msh.Interfaces.Create(m, in, ex)
			if err != nil {
				return nil, nil, err
			}
			ref := mesh.EdgeRef{Kind: mesh.KindInterface, Idx: it.Index()}
			elems[sides[0].cell].EdgeIndex[sides[0].local] = ref
			elems[sides[1].cell].EdgeIndex[sides[1].local] = ref
			it.Trace.Normal = shapes[sides[0].cell].GetSurfaceNormal(sides[0].local)[0]
		case 1:
			side := sides[0]
			tag := g.Cells[side.cell].FTags[side.local]
			kind, ok := tag2kind[tag]
			if !ok {
				return nil, nil, fmt.Errorf("geometry: cell %d local edge %d has unmatched single-sided tag %d", g.Cells[side.cell].Id, side.local, tag)
			}
			es := mesh.ElemSide{Elem: elems[side.cell], LocalBnd: side.local}
			b, err := msh.Boundaries[kind].Create(m, es)
			if err != nil {
				return nil, nil, err
			}
			ref := mesh.EdgeRef{Kind: kind, Idx: b.Index()}
			elems[side.cell].EdgeIndex[side.local] = ref
			b.Trace.Normal = shapes[side.cell].GetSurfaceNormal(side.local)[0]
		default:
			return nil, nil, fmt.Errorf("geometry: edge shared by %d cells (want 1 or 2)", len(sides))
		}
	}

	msh.FinalizeInitialization()
	return msh, m, nil
}

// orderedKeys returns adjacency's keys in a deterministic order (by the
// lowest position in cells of a cell touching that edge, then by vertex
// pair), so repeated Build calls over the same
// Geometry always assign the same Interface/Boundary indices.
func orderedKeys(adjacency map[edgeKey][]cellEdge, cells []GeomCell) []edgeKey {
	keys := make([]edgeKey, 0, len(adjacency))
	for k := range adjacency {
		keys = append(keys, k)
	}
	less := func(a, b edgeKey) bool {
		if fa, fb := firstCell(adjacency[a]), firstCell(adjacency[b]); fa != fb {
			return fa < fb
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && less(keys[j], keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func firstCell(sides []cellEdge) int {
	min := sides[0].cell
	for _, s := range sides {
		if s.cell < min {
			min = s.cell
		}
	}
	return min
}

func evalModal(q []float64, phi [][]float64, g int) float64 {
	var acc float64
	for k := range q {
		acc += q[k] * phi[k][g]
	}
	return acc
}

func edgeEvalModal(q []float64, m *master.Master, bnd, g int) float64 {
	var acc float64
	for k := range q {
		acc += q[k] * m.EdgePhiAt(k, bnd, g)
	}
	return acc
}
