// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ConvertSnapshot converts one out.Snapshot file between gob and json
// encodings, adapted from tools/ConvertGofemMat.go's old-format/new-format
// material-file converter into a converter over this solver's modal
// snapshot files (spec.md §6 "Persisted state").
package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/utl"

	"github.com/dpedroso-labs/swehdg/out"
)

func main() {

	// error handler
	utl.Tsilent = false
	defer func() {
		if err := recover(); err != nil {
			utl.PfRed("Some error has happened: %v\n", err)
		}
	}()

	// input data
	fnOld := "snapshot_old.gob"
	fnNew := "snapshot_new.json"
	encOld := "gob"
	encNew := "json"
	flag.Parse()
	if len(flag.Args()) > 0 {
		fnOld = flag.Arg(0)
	}
	if len(flag.Args()) > 1 {
		fnNew = flag.Arg(1)
	}
	if len(flag.Args()) > 2 {
		encOld = flag.Arg(2)
	}
	if len(flag.Args()) > 3 {
		encNew = flag.Arg(3)
	}

	// print input data
	utl.Pf("\nInput data\n")
	utl.Pf("==========\n")
	utl.Pf("  fnOld  = %20s // old snapshot filename\n", fnOld)
	utl.Pf("  fnNew  = %20s // new snapshot filename\n", fnNew)
	utl.Pf("  encOld = %20s // old encoding (gob or json)\n", encOld)
	utl.Pf("  encNew = %20s // new encoding (gob or json)\n", encNew)
	utl.Pf("\n")

	// read old
	fin, err := os.Open(fnOld)
	if err != nil {
		utl.Panic("cannot open %s: %v", fnOld, err)
	}
	defer fin.Close()
	var snap out.Snapshot
	if err := out.GetDecoder(fin, encOld).Decode(&snap); err != nil {
		utl.Panic("cannot decode %s: %v", fnOld, err)
	}

	// write new
	fout, err := os.Create(fnNew)
	if err != nil {
		utl.Panic("cannot create %s: %v", fnNew, err)
	}
	defer fout.Close()
	if err := out.GetEncoder(fout, encNew).Encode(snap); err != nil {
		utl.Panic("cannot encode %s: %v", fnNew, err)
	}

	utl.Pfblue2("conversion successful\n")
}
