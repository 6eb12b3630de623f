// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Driver runs simulations with one-dimensional models along paths of shear strains
type Driver struct {

	// input
	Model OnedSolid // solid model

	// settings
	CheckD  bool    // do check consistent matrix
	TolD    float64 // tolerance to check consistent matrix
	VerD    bool    // verbose check of D
	StepsD  float64 // relative size of finite difference step
	Verbose bool    // show messages

	// results
	Res []*OnedState // stress/ivs results
	D   []float64    // tangent moduli
}

// Init initialises driver
func (o *Driver) Init(name string, prms dbf.Params) (err error) {
	o.Model, err = New(name)
	if err != nil {
		return
	}
	err = o.Model.Init(prms)
	if err != nil {
		return
	}
	o.TolD = 1e-5
	o.StepsD = 1e-6
	return
}

// Run runs simulation along the path of strains γ (starting from zero)
func (o *Driver) Run(γ []float64) (err error) {

	// allocate results arrays
	np := len(γ)
	if np < 1 {
		return chk.Err("at least one strain value is required")
	}
	o.Res = make([]*OnedState, np)
	o.D = make([]float64, np)

	// initial state
	o.Res[0], err = o.Model.InitIntVars()
	if err != nil {
		return
	}
	if γ[0] != 0 {
		err = o.Model.Update(o.Res[0], γ[0])
		if err != nil {
			return
		}
	}
	o.D[0], err = o.Model.CalcD(o.Res[0], true)
	if err != nil {
		return
	}

	// update states
	for i := 1; i < np; i++ {
		o.Res[i] = o.Res[i-1].GetCopy()
		Δγ := γ[i] - γ[i-1]
		err = o.Model.Update(o.Res[i], Δγ)
		if err != nil {
			return chk.Err("Update failed at step %d:\n%v", i, err)
		}
		o.D[i], err = o.Model.CalcD(o.Res[i], false)
		if err != nil {
			return chk.Err("CalcD failed at step %d:\n%v", i, err)
		}

		// check consistent modulus with a small forward increment
		if o.CheckD && Δγ != 0 {
			h := o.StepsD * (1.0 + abs(γ[i]))
			if Δγ < 0 {
				h = -h
			}
			tmp := o.Res[i].GetCopy()
			err = o.Model.Update(tmp, h)
			if err != nil {
				return
			}
			dnum := (tmp.Sig - o.Res[i].Sig) / h
			diff := abs(dnum - o.D[i])
			if o.VerD {
				io.Pf("%4d : D = %23.15e  Dnum = %23.15e  diff = %g\n", i, o.D[i], dnum, diff)
			}
			if diff > o.TolD*abs(o.D[i])+o.TolD {
				return chk.Err("consistent modulus failed at step %d: D = %g, Dnum = %g, diff = %g", i, o.D[i], dnum, diff)
			}
		}
	}
	if o.Verbose {
		io.Pfgreen("%d steps done\n", np)
	}
	return
}

// Stresses returns all shear stresses
func (o Driver) Stresses() (τ []float64) {
	τ = make([]float64, len(o.Res))
	for i, s := range o.Res {
		τ[i] = s.Sig
	}
	return
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
