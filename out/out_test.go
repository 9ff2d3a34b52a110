// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/dpedroso-labs/swehdg/master"
	"github.com/dpedroso-labs/swehdg/mesh"
	"github.com/dpedroso-labs/swehdg/shape"
)

func buildOneElemMesh(tst *testing.T) *mesh.Mesh {
	m, err := master.NewMaster(master.Triangle, 1)
	if err != nil {
		tst.Fatalf("NewMaster: %v", err)
	}
	s := shape.New(m, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	msh := mesh.New()
	e, _ := msh.Elements.Create(0, m, s, 1)
	for v := 0; v < mesh.NVariables; v++ {
		for k := 0; k < m.Ndof; k++ {
			e.State[0].Q[v][k] = float64(v*10 + k)
		}
	}
	msh.FinalizeInitialization()
	return msh
}

func TestCollectApplyRoundTrip(tst *testing.T) {
	msh := buildOneElemMesh(tst)
	snap := Collect(msh, 0, 3, 0.5)
	if snap.Step != 3 || len(snap.Elements) != 1 {
		tst.Fatalf("unexpected snapshot: %+v", snap)
	}

	other := buildOneElemMesh(tst)
	for v := 0; v < mesh.NVariables; v++ {
		for k := range other.Elements.GetByIndex(0).State[0].Q[v] {
			other.Elements.GetByIndex(0).State[0].Q[v][k] = -1
		}
	}
	if err := Apply(other, 0, snap); err != nil {
		tst.Fatalf("Apply: %v", err)
	}
	e := other.Elements.GetByIndex(0)
	for v := 0; v < mesh.NVariables; v++ {
		for k := 0; k < e.M.Ndof; k++ {
			want := float64(v*10 + k)
			if e.State[0].Q[v][k] != want {
				tst.Fatalf("Q[%d][%d] = %v, want %v", v, k, e.State[0].Q[v][k], want)
			}
		}
	}
}

func TestSaveLoadRoundTrip(tst *testing.T) {
	msh := buildOneElemMesh(tst)
	snap := Collect(msh, 0, 7, 1.25)
	dir := tst.TempDir()
	if err := Save(dir, "run", 0, "gob", snap); err != nil {
		tst.Fatalf("Save: %v", err)
	}
	got, err := Load(dir, "run", 0, "gob", 7)
	if err != nil {
		tst.Fatalf("Load: %v", err)
	}
	if got.Time != snap.Time || len(got.Elements) != len(snap.Elements) {
		tst.Fatalf("loaded snapshot mismatch: %+v vs %+v", got, snap)
	}
}
