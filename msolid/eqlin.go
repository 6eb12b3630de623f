// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// EqLinear implements the equivalent linear model. During one pass through the input motion
// the response is linear with the strain-compatible secant modulus and damping ratio. Between
// passes, the effective strain γeff = Reff·γmax updates the properties following the
// hyperbolic (Hardin-Drnevich) curves:
//   G/Gmax = 1 / (1 + γeff/γref)
//   ξ      = ξmin + ξmax (1 - G/Gmax)
//  Internal variables: α[0] = Gsec, α[1] = ξ, α[2] = γmax of current pass
type EqLinear struct {
	Gmax float64 // small strain shear modulus
	Xmin float64 // small strain damping ratio
	Xmax float64 // maximum additional damping ratio
	Gref float64 // reference strain; 0 => properties never change
	Reff float64 // ratio between effective and maximum strains
}

// add model to factory
func init() {
	allocators["eqlin"] = func() OnedSolid { return new(EqLinear) }
}

// Init initialises model
func (o *EqLinear) Init(prms dbf.Params) (err error) {
	o.Gmax = getprm(prms, "G", 0)
	o.Xmin = getprm(prms, "xi", 0)
	o.Xmax = getprm(prms, "xmax", 0.2)
	o.Gref = getprm(prms, "gref", 0)
	o.Reff = getprm(prms, "reff", 0.65)
	if o.Gmax <= 0 {
		return chk.Err("eqlin: shear modulus must be positive. G = %g is invalid", o.Gmax)
	}
	if o.Reff <= 0 || o.Reff > 1 {
		return chk.Err("eqlin: effective strain ratio must be in (0,1]. reff = %g is invalid", o.Reff)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o EqLinear) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "G", V: 8e7},
		&dbf.P{N: "xi", V: 0.01},
		&dbf.P{N: "xmax", V: 0.2},
		&dbf.P{N: "gref", V: 1e-3},
		&dbf.P{N: "reff", V: 0.65},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o EqLinear) InitIntVars() (s *OnedState, err error) {
	s = NewOnedState(3)
	s.Alp[0] = o.Gmax
	s.Alp[1] = o.Xmin
	return
}

// Update updates stresses for given strains
func (o EqLinear) Update(s *OnedState, Δγ float64) (err error) {
	s.Eps += Δγ
	s.Sig += s.Alp[0] * Δγ
	s.Alp[2] = math.Max(s.Alp[2], math.Abs(s.Eps))
	return
}

// CalcD computes D = dτ_new/dγ_new consistent with StressUpdate
func (o EqLinear) CalcD(s *OnedState, firstIt bool) (float64, error) {
	return s.Alp[0], nil
}

// Damping returns the secant modulus and damping ratio of the current pass
func (o EqLinear) Damping(s *OnedState) (G, ξ float64) {
	return s.Alp[0], s.Alp[1]
}

// Curves returns the modulus reduction and damping ratio for a given effective strain
func (o EqLinear) Curves(γeff float64) (GoverGmax, ξ float64) {
	GoverGmax = 1
	if o.Gref > 0 {
		GoverGmax = 1.0 / (1.0 + math.Abs(γeff)/o.Gref)
	}
	ξ = o.Xmin + o.Xmax*(1.0-GoverGmax)
	return
}

// NewPass updates the properties with the strains of the last pass and resets the state
func (o EqLinear) NewPass(s *OnedState) (change float64) {
	r, ξ := o.Curves(o.Reff * s.Alp[2])
	G := r * o.Gmax
	change = math.Abs(G-s.Alp[0]) / s.Alp[0]
	s.Alp[0], s.Alp[1], s.Alp[2] = G, ξ, 0
	s.Sig, s.Eps = 0, 0
	return
}
