// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/siteresp/inp"
)

// DynCoefs calculates θ-method, Newmark's or HHT coefficients.
//  Newmark:
//    θ1 = γ and θ2 = 2β; e.g. θ1 = θ2 = 0.5 => average acceleration
//    ζ* = α1 u + α2 v + α3 a
//    χ* = α4 u + α5 v + α6 a
//    a  = α1 u - ζ*
//    v  = α4 u - χ*
type DynCoefs struct {

	// input
	θ1, θ2 float64 // Newmark's coefficients

	// derived
	α1, α2, α3, α4, α5, α6 float64
}

// Init initialises this structure
func (o *DynCoefs) Init(dat *inp.SolverData) (err error) {
	o.θ1, o.θ2 = dat.Theta1, dat.Theta2
	if o.θ1 < 0.5 || o.θ1 > 1.0 {
		return chk.Err("θ1 must be between 0.5 and 1.0. %g is invalid", o.θ1)
	}
	if o.θ2 < o.θ1 || o.θ2 > 1.0 {
		return chk.Err("θ2 must be between θ1 and 1.0. %g is invalid", o.θ2)
	}
	return
}

// Calc calculates coefficients for given Δt
func (o *DynCoefs) Calc(Δt float64) (err error) {
	if Δt < 1e-14 {
		return chk.Err("Δt is too small: %g", Δt)
	}
	θ1, θ2 := o.θ1, o.θ2
	o.α1 = 2.0 / (θ2 * Δt * Δt)
	o.α2 = 2.0 / (θ2 * Δt)
	o.α3 = 1.0/θ2 - 1.0
	o.α4 = 2.0 * θ1 / (θ2 * Δt)
	o.α5 = 2.0*θ1/θ2 - 1.0
	o.α6 = (θ1/θ2 - 1.0) * Δt
	return
}

// Alpha returns α1 to α6
func (o DynCoefs) Alpha() []float64 {
	return []float64{o.α1, o.α2, o.α3, o.α4, o.α5, o.α6}
}
