// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// MKZ implements the modified Kondner-Zelasko backbone curve
//   F(γ) = Gmax γ / (1 + β (|γ|/γref)^s)
// with extended Masing unloading-reloading branches
//   τ = τrev + 2 F((γ - γrev)/2)
// starting at each reversal point. A branch that reaches the previous reversal point
// continues on the older branch; the outermost branch rejoins the backbone at the
// mirrored strain of the first reversal.
//  Internal variables: α[0] = direction of loading, α[1] = number of reversal points,
//                      α[2+2k], α[3+2k] = γrev, τrev of reversal point k
type MKZ struct {
	Gmax float64 // small strain shear modulus
	Gref float64 // reference strain
	Beta float64 // β coefficient
	S    float64 // curvature exponent
	Xi   float64 // small strain (viscous) damping ratio
}

// MkzNrev is the maximum number of reversal points kept by MKZ states
const MkzNrev = 40

// add model to factory
func init() {
	allocators["mkz"] = func() OnedSolid { return new(MKZ) }
}

// Init initialises model
func (o *MKZ) Init(prms dbf.Params) (err error) {
	o.Gmax = getprm(prms, "G", 0)
	o.Gref = getprm(prms, "gref", 0)
	o.Beta = getprm(prms, "beta", 1)
	o.S = getprm(prms, "s", 1)
	o.Xi = getprm(prms, "xi", 0)
	if o.Gmax <= 0 {
		return chk.Err("mkz: shear modulus must be positive. G = %g is invalid", o.Gmax)
	}
	if o.Gref <= 0 {
		return chk.Err("mkz: reference strain must be positive. gref = %g is invalid", o.Gref)
	}
	if o.Beta <= 0 || o.S <= 0 || o.S > 1 {
		return chk.Err("mkz: β must be positive and 0 < s ≤ 1. β = %g and s = %g are invalid", o.Beta, o.S)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o MKZ) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "G", V: 8e7},
		&dbf.P{N: "gref", V: 1e-3},
		&dbf.P{N: "beta", V: 1},
		&dbf.P{N: "s", V: 0.9},
		&dbf.P{N: "xi", V: 0.01},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o MKZ) InitIntVars() (s *OnedState, err error) {
	s = NewOnedState(2 + 2*MkzNrev)
	s.Loading = true
	return
}

// Update updates stresses for given strains
func (o MKZ) Update(s *OnedState, Δγ float64) (err error) {
	if Δγ == 0 {
		return
	}
	d := sign(Δγ)
	if s.Alp[0] != 0 && d != s.Alp[0] {
		o.push(s, s.Eps, s.Sig)
	}
	s.Alp[0] = d
	γ := s.Eps + Δγ
	for n := int(s.Alp[1]); n > 0; n = int(s.Alp[1]) {
		γt := -s.Alp[2]
		if n > 1 {
			γt = s.Alp[2*n-2]
		}
		if (γ-γt)*d < 0 {
			break
		}
		s.Alp[1] = float64(max(n-2, 0))
	}
	n := int(s.Alp[1])
	if n == 0 {
		s.Sig = o.Backbone(γ)
	} else {
		γr, τr := s.Alp[2*n], s.Alp[2*n+1]
		s.Sig = τr + 2.0*o.Backbone((γ-γr)/2.0)
	}
	s.Eps = γ
	s.Loading = n == 0
	return
}

// CalcD computes D = dτ_new/dγ_new consistent with StressUpdate
func (o MKZ) CalcD(s *OnedState, firstIt bool) (float64, error) {
	n := int(s.Alp[1])
	if n == 0 {
		return o.tangent(s.Eps), nil
	}
	return o.tangent((s.Eps - s.Alp[2*n]) / 2.0), nil
}

// push stores a reversal point. When the memory is full, the oldest inner loop
// (points 1 and 2) is forgotten
func (o MKZ) push(s *OnedState, γ, τ float64) {
	n := int(s.Alp[1])
	if n == MkzNrev {
		copy(s.Alp[4:], s.Alp[8:])
		n -= 2
	}
	s.Alp[2+2*n], s.Alp[3+2*n] = γ, τ
	s.Alp[1] = float64(n + 1)
}

// Damping returns the small strain modulus and damping ratio
func (o MKZ) Damping(s *OnedState) (G, ξ float64) {
	return o.Gmax, o.Xi
}

// Backbone computes F(γ)
func (o MKZ) Backbone(γ float64) float64 {
	r := math.Pow(math.Abs(γ)/o.Gref, o.S)
	return o.Gmax * γ / (1.0 + o.Beta*r)
}

// tangent computes dF/dγ
func (o MKZ) tangent(γ float64) float64 {
	r := math.Pow(math.Abs(γ)/o.Gref, o.S)
	den := 1.0 + o.Beta*r
	return o.Gmax * (1.0 + o.Beta*(1.0-o.S)*r) / (den * den)
}
