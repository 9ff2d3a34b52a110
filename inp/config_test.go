// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfigDefaults(tst *testing.T) {
	d := Data{
		MshFile:  "mesh.json",
		Stepping: SteppingData{Scheme: "ssprk3", Dt: 0.1, Tfinal: 10},
		Boundaries: map[string]BoundaryData{
			"land": {Kind: "land"},
		},
	}
	b, err := json.Marshal(d)
	if err != nil {
		tst.Fatalf("Marshal: %v", err)
	}
	dir := tst.TempDir()
	fn := filepath.Join(dir, "run.json")
	if err := os.WriteFile(fn, b, 0644); err != nil {
		tst.Fatalf("WriteFile: %v", err)
	}
	cfg := ReadConfig(fn)
	if cfg == nil {
		tst.Fatalf("ReadConfig returned nil")
	}
	if cfg.G == 0 {
		tst.Fatalf("expected default G to be filled in")
	}
	if cfg.FnameKey != "run" {
		tst.Fatalf("expected FnameKey=run, got %q", cfg.FnameKey)
	}
	st, err := cfg.NewRKStepper()
	if err != nil {
		tst.Fatalf("NewRKStepper: %v", err)
	}
	if st.GetDt() != 0.1 {
		tst.Fatalf("expected dt=0.1, got %v", st.GetDt())
	}
	cond, err := cfg.Conditions()
	if err != nil {
		tst.Fatalf("Conditions: %v", err)
	}
	if cond.Land == nil {
		tst.Fatalf("expected Land condition to be built")
	}
}
