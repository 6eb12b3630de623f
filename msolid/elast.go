// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// OnedLinElast implements a linear elastic model for simple shear: τ = G γ
type OnedLinElast struct {
	G  float64 // shear modulus
	Xi float64 // damping ratio
}

// add model to factory
func init() {
	allocators["elast"] = func() OnedSolid { return new(OnedLinElast) }
}

// Init initialises model
func (o *OnedLinElast) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "G":
			o.G = p.V
		case "xi":
			o.Xi = p.V
		}
	}
	if o.G <= 0 {
		return chk.Err("elast: shear modulus must be positive. G = %g is invalid", o.G)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o OnedLinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "G", V: 8e7},
		&dbf.P{N: "xi", V: 0.05},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o OnedLinElast) InitIntVars() (s *OnedState, err error) {
	s = NewOnedState(0)
	return
}

// Update updates stresses for given strains
func (o OnedLinElast) Update(s *OnedState, Δγ float64) (err error) {
	s.Eps += Δγ
	s.Sig += o.G * Δγ
	return
}

// CalcD computes D = dτ_new/dγ_new consistent with StressUpdate
func (o OnedLinElast) CalcD(s *OnedState, firstIt bool) (float64, error) {
	return o.G, nil
}

// Damping returns the elastic modulus and damping ratio
func (o OnedLinElast) Damping(s *OnedState) (G, ξ float64) {
	return o.G, o.Xi
}
