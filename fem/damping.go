// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/siteresp/inp"
)

// Rayleigh holds the control frequencies of the Rayleigh damping C = a0 M + a1 K,
// built element-by-element with the damping ratio of each element
type Rayleigh struct {
	F1  float64 // first control frequency [Hz]
	F2  float64 // second control frequency [Hz]
	Off bool    // no damping at all
}

// NewRayleigh returns the Rayleigh damping parameters.
// F1 defaults to the fundamental frequency of the column and F2 defaults to 3 F1
func NewRayleigh(lay *inp.SiteLayering, dat *inp.SolverData) (o *Rayleigh, err error) {
	o = &Rayleigh{F1: dat.DampF1, F2: dat.DampF2, Off: dat.NoDamp}
	if o.F1 == 0 {
		o.F1 = lay.FundamentalFrequency()
	}
	if o.F2 == 0 {
		o.F2 = 3.0 * o.F1
	}
	if !(o.F1 > 0) || !(o.F2 > 0) || o.F1 == o.F2 {
		return nil, chk.Err("Rayleigh control frequencies must be positive and distinct. f1 = %g and f2 = %g are invalid", o.F1, o.F2)
	}
	return
}

// Coefs returns the mass and stiffness proportional coefficients for the damping ratio ξ
func (o Rayleigh) Coefs(ξ float64) (a0, a1 float64) {
	if o.Off {
		return 0, 0
	}
	return RayleighCoefs(ξ, o.F1, o.F2)
}

// RayleighCoefs computes a0 and a1 such that the damping ratio is ξ at f1 and f2:
//  a0 = 2 ξ ω1 ω2 / (ω1 + ω2)
//  a1 = 2 ξ / (ω1 + ω2)
func RayleighCoefs(ξ, f1, f2 float64) (a0, a1 float64) {
	ω1 := 2.0 * math.Pi * f1
	ω2 := 2.0 * math.Pi * f2
	a0 = 2.0 * ξ * ω1 * ω2 / (ω1 + ω2)
	a1 = 2.0 * ξ / (ω1 + ω2)
	return
}

// RayleighRatio returns the damping ratio obtained with a0 and a1 at frequency f
func RayleighRatio(a0, a1, f float64) float64 {
	ω := 2.0 * math.Pi * f
	return a0/(2.0*ω) + a1*ω/2.0
}
