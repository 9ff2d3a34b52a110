// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dpedroso-labs/swehdg/mesh"
)

// twoTriangleSquare builds a unit square split along its diagonal: cell 0
// (0,0)-(1,0)-(1,1) and cell 1 (0,0)-(1,1)-(0,1), sharing the diagonal edge,
// with the four outer edges tagged land.
func twoTriangleSquare() Geometry {
	return Geometry{
		Verts: []GeomVert{
			{Id: 0, C: []float64{0, 0}, Bath: 0},
			{Id: 1, C: []float64{1, 0}, Bath: 0},
			{Id: 2, C: []float64{1, 1}, Bath: 0},
			{Id: 3, C: []float64{0, 1}, Bath: 0},
		},
		Cells: []GeomCell{
			{Id: 0, Verts: [3]int{0, 1, 2}, FTags: [3]int{landTag, landTag, 0}},
			{Id: 1, Verts: [3]int{0, 2, 3}, FTags: [3]int{0, landTag, landTag}},
		},
	}
}

func TestBuildMatchesInteriorEdge(tst *testing.T) {
	g := twoTriangleSquare()
	msh, _, err := g.Build(1, 3)
	if err != nil {
		tst.Fatalf("Build: %v", err)
	}
	if msh.Interfaces.Len() != 1 {
		tst.Fatalf("expected 1 interior interface, got %d", msh.Interfaces.Len())
	}
	n := 0
	for _, k := range []mesh.EdgeKind{mesh.KindBoundaryLand, mesh.KindBoundaryTide, mesh.KindBoundaryFlow, mesh.KindBoundaryFunction} {
		n += msh.Boundaries[k].Len()
	}
	if n != 4 {
		tst.Fatalf("expected 4 boundary edges, got %d", n)
	}
}

func TestReadGeometryRoundTrip(tst *testing.T) {
	g := twoTriangleSquare()
	b, err := json.Marshal(g)
	if err != nil {
		tst.Fatalf("Marshal: %v", err)
	}
	dir := tst.TempDir()
	fn := filepath.Join(dir, "mesh.json")
	if err := os.WriteFile(fn, b, 0644); err != nil {
		tst.Fatalf("WriteFile: %v", err)
	}
	g2 := ReadGeometry(fn)
	if g2 == nil {
		tst.Fatalf("ReadGeometry returned nil")
	}
	if len(g2.Cells) != 2 || len(g2.Verts) != 4 {
		tst.Fatalf("unexpected geometry: %+v", g2)
	}
}
