// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"

	"github.com/dpedroso-labs/swehdg/bc"
	"github.com/dpedroso-labs/swehdg/driver"
	"github.com/dpedroso-labs/swehdg/friction"
	"github.com/dpedroso-labs/swehdg/swe"
)

// Forcing assembles the swe.Forcing the local source kernel consumes,
// resolving every named function against Data.Functions (spec.md §4.4).
func (o *Data) Forcing() swe.Forcing {
	var f swe.Forcing
	f.WindX = o.funcOrNil(o.Forcing.WindXFunc)
	f.WindY = o.funcOrNil(o.Forcing.WindYFunc)
	f.AtmPressureDx = o.funcOrNil(o.Forcing.AtmPressureDx)
	f.AtmPressureDy = o.funcOrNil(o.Forcing.AtmPressureDy)
	f.TidePotentialDx = o.funcOrNil(o.Forcing.TidePotDx)
	f.TidePotentialDy = o.funcOrNil(o.Forcing.TidePotDy)
	if o.Forcing.FrictionModel != "" {
		f.Friction = friction.GetModel(o.Forcing.FrictionModel, o.Forcing.FrictionCoef)
	}
	return f
}

// Conditions builds the driver.Conditions from Boundaries, dispatching on
// each entry's Kind to the bc.Condition specialization it names.
func (o *Data) Conditions() (driver.Conditions, error) {
	var c driver.Conditions
	var err error
	if d, ok := o.Boundaries["land"]; ok {
		c.Land, err = o.buildCondition(d)
	}
	if err == nil {
		if d, ok := o.Boundaries["tide"]; ok {
			c.Tide, err = o.buildCondition(d)
		}
	}
	if err == nil {
		if d, ok := o.Boundaries["flow"]; ok {
			c.Flow, err = o.buildCondition(d)
		}
	}
	if err == nil {
		if d, ok := o.Boundaries["function"]; ok {
			c.Function, err = o.buildCondition(d)
		}
	}
	if err != nil {
		return c, err
	}
	if c.Land == nil {
		c.Land = bc.Land{}
	}
	return c, nil
}

func (o *Data) buildCondition(d BoundaryData) (bc.Condition, error) {
	switch d.Kind {
	case "land":
		return bc.Land{}, nil
	case "tide":
		cs := make([]bc.Constituent, len(d.Constituents))
		for i, c := range d.Constituents {
			cs[i] = bc.Constituent{Amplitude: c.Amplitude, Omega: c.Omega, Phase: c.Phase}
		}
		return bc.Tide{Constituents: cs}, nil
	case "flow":
		return bc.Flow{Qn: o.funcOrNil(d.QnFunc)}, nil
	case "function":
		return bc.Function{Ze: o.funcOrNil(d.ZeFunc), Qx: o.funcOrNil(d.QxFunc), Qy: o.funcOrNil(d.QyFunc)}, nil
	default:
		return nil, chk.Err("inp: unknown boundary condition kind %q", d.Kind)
	}
}
