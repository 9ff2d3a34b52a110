// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements solver output handling: modal-state snapshots
// serialized as flat double arrays per element, keyed by element id
// (spec.md §6 "Persisted state"). It generalizes fem/fileio.go's
// gob-or-json Encoder/Decoder switch and SaveIvs/ReadIvs per-element loop
// from the teacher's ElemWriters interface to this solver's fixed
// mesh.Element.State[stage] layout; the VTK/plotting half of the teacher's
// out package (plt-based figures, out/plot.go and friends) is a non-goal
// (spec.md §1) and is not carried over.
package out

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/cpmech/gosl/utl"

	"github.com/dpedroso-labs/swehdg/mesh"
)

// Encoder defines encoders; e.g. gob or json.
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json.
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a gob or json encoder depending on encoderName.
func GetEncoder(w io.Writer, encoderName string) Encoder {
	if encoderName == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a gob or json decoder depending on encoderName.
func GetDecoder(r io.Reader, encoderName string) Decoder {
	if encoderName == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// ElementSnapshot is one element's modal state at one output step, the flat
// per-element record spec.md §6 names.
type ElementSnapshot struct {
	Id int
	Q  [][]float64 // [NVariables][ndof]
}

// Snapshot is one output step's worth of modal state across every element
// this rank owns.
type Snapshot struct {
	Step     int
	Time     float64
	Elements []ElementSnapshot
}

// Collect builds a Snapshot from stage's state across every element in msh.
func Collect(msh *mesh.Mesh, stage int, step int, t float64) Snapshot {
	var s Snapshot
	s.Step, s.Time = step, t
	msh.ForEachElement(func(e *mesh.Element) error {
		q := make([][]float64, mesh.NVariables)
		for v := range q {
			q[v] = append([]float64(nil), e.State[stage].Q[v]...)
		}
		s.Elements = append(s.Elements, ElementSnapshot{Id: e.Id(), Q: q})
		return nil
	})
	return s
}

// Apply scatters a Snapshot back into stage's state, the inverse of
// Collect, keyed by element id (not by container position, since a restart
// may load a snapshot written by a differently-ordered rank).
func Apply(msh *mesh.Mesh, stage int, s Snapshot) error {
	byId := make(map[int]ElementSnapshot, len(s.Elements))
	for _, es := range s.Elements {
		byId[es.Id] = es
	}
	return msh.ForEachElement(func(e *mesh.Element) error {
		es, ok := byId[e.Id()]
		if !ok {
			return fmt.Errorf("out: snapshot missing element %d", e.Id())
		}
		for v := 0; v < mesh.NVariables; v++ {
			copy(e.State[stage].Q[v], es.Q[v])
		}
		return nil
	})
}

// Save writes a Snapshot to dirout/fnameKey_ele_<step>_p<rank>.<encoderName>,
// mirroring fem/fileio.go's SaveIvs path convention.
func Save(dirout, fnameKey string, rank int, encoderName string, s Snapshot) error {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, encoderName)
	if err := enc.Encode(s); err != nil {
		return err
	}
	fil, err := os.Create(snapshotPath(dirout, fnameKey, rank, encoderName, s.Step))
	if err != nil {
		return err
	}
	defer fil.Close()
	_, err = fil.Write(buf.Bytes())
	return err
}

// Load reads back a Snapshot written by Save.
func Load(dirout, fnameKey string, rank int, encoderName string, step int) (Snapshot, error) {
	var s Snapshot
	fil, err := os.Open(snapshotPath(dirout, fnameKey, rank, encoderName, step))
	if err != nil {
		return s, err
	}
	defer fil.Close()
	dec := GetDecoder(fil, encoderName)
	err = dec.Decode(&s)
	return s, err
}

func snapshotPath(dirout, fnameKey string, rank int, encoderName string, step int) string {
	return path.Join(dirout, utl.Sf("%s_ele_%010d_p%d.%s", fnameKey, step, rank, encoderName))
}
