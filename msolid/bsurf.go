// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// BoundSurf implements a total stress bounding surface model for clays (Borja-Amies type)
// reduced to simple shear. The bounding surface is |τ| = Su and the plastic modulus is
//   H = h κ^m + H0
// where κ is the distance ratio from the current stress to the conjugate point on the bounding
// surface, measured from the last unloading point τ0:
//   τB = τ + κ (τ - τ0)
// The elastoplastic modulus is D = G H / (G + H); thus D = G at unloading points.
//  Internal variables: α[0] = τ0 (unloading point), α[1] = direction of loading
type BoundSurf struct {
	G   float64 // elastic shear modulus
	Su  float64 // undrained shear strength (simple shear)
	H   float64 // hardening parameter h
	M   float64 // hardening exponent m
	H0  float64 // plastic modulus at the bounding surface
	Xi  float64 // small strain (viscous) damping ratio
	Nsd float64 // number of sub-divisions per Su/G of strain
}

// add model to factory
func init() {
	allocators["bsurf"] = func() OnedSolid { return new(BoundSurf) }
}

// Init initialises model
func (o *BoundSurf) Init(prms dbf.Params) (err error) {
	o.G = getprm(prms, "G", 0)
	o.Su = getprm(prms, "su", 0)
	o.H = getprm(prms, "h", 0)
	o.M = getprm(prms, "m", 1)
	o.H0 = getprm(prms, "h0", 0)
	o.Xi = getprm(prms, "xi", 0)
	o.Nsd = getprm(prms, "nsd", 100)
	if o.G <= 0 {
		return chk.Err("bsurf: shear modulus must be positive. G = %g is invalid", o.G)
	}
	if o.Su <= 0 {
		return chk.Err("bsurf: shear strength must be positive. su = %g is invalid", o.Su)
	}
	if o.H <= 0 {
		o.H = o.G
	}
	if o.M <= 0 || o.H0 < 0 || o.Nsd < 1 {
		return chk.Err("bsurf: m = %g, h0 = %g and nsd = %g are invalid", o.M, o.H0, o.Nsd)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o BoundSurf) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "G", V: 4e7},
		&dbf.P{N: "su", V: 5e4},
		&dbf.P{N: "h", V: 4e7},
		&dbf.P{N: "m", V: 1},
		&dbf.P{N: "h0", V: 0},
		&dbf.P{N: "xi", V: 0.01},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o BoundSurf) InitIntVars() (s *OnedState, err error) {
	s = NewOnedState(2)
	return
}

// Update updates stresses for given strains
func (o BoundSurf) Update(s *OnedState, Δγ float64) (err error) {
	if Δγ == 0 {
		return
	}

	// unloading point
	d := sign(Δγ)
	if d != s.Alp[1] {
		s.Alp[0], s.Alp[1] = s.Sig, d
	}
	τ0 := s.Alp[0]

	// sub-stepping with the midpoint rule
	nss := int(math.Ceil(math.Abs(Δγ) * o.G / o.Su * o.Nsd))
	if nss < 1 {
		nss = 1
	}
	if nss > 10000 {
		return chk.Err("bsurf: strain increment Δγ = %g is too large", Δγ)
	}
	h := Δγ / float64(nss)
	τ := s.Sig
	for i := 0; i < nss; i++ {
		k1 := o.modulus(τ, τ0, d)
		k2 := o.modulus(τ+0.5*h*k1, τ0, d)
		τ += h * k2
		if d*τ > o.Su {
			τ = d * o.Su
		}
	}
	if math.IsNaN(τ) {
		return chk.Err("bsurf: stress update failed with Δγ = %g", Δγ)
	}
	s.Sig = τ
	s.Eps += Δγ
	s.Loading = d*(τ-τ0) > 0
	return
}

// CalcD computes D = dτ_new/dγ_new consistent with StressUpdate
func (o BoundSurf) CalcD(s *OnedState, firstIt bool) (float64, error) {
	if s.Alp[1] == 0 {
		return o.G, nil
	}
	return o.modulus(s.Sig, s.Alp[0], s.Alp[1]), nil
}

// Damping returns the elastic modulus and damping ratio
func (o BoundSurf) Damping(s *OnedState) (G, ξ float64) {
	return o.G, o.Xi
}

// modulus computes the elastoplastic modulus D at τ for loading in direction d from τ0
func (o BoundSurf) modulus(τ, τ0, d float64) float64 {
	δ := d * (τ - τ0)
	if δ <= 0 {
		return o.G
	}
	κ := (o.Su - d*τ) / δ
	if κ < 0 {
		κ = 0
	}
	H := o.H*math.Pow(κ, o.M) + o.H0
	return o.G * H / (o.G + H)
}
