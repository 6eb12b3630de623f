// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/siteresp/inp"
)

// Layer holds the properties of one layer for the frequency domain solution
type Layer struct {
	H   float64 // thickness
	Vs  float64 // shear wave velocity
	Rho float64 // density
	Xi  float64 // damping ratio
}

// FromLayering converts a layering into layers ordered from the surface downwards.
// rock is nil for a rigid base
func FromLayering(lay *inp.SiteLayering) (layers []Layer, rock *Layer) {
	n := lay.Nlayers()
	layers = make([]Layer, n)
	for i := 0; i < n; i++ {
		l := lay.Layer(i)
		layers[n-1-i] = Layer{H: l.Thick(), Vs: l.Vs(), Rho: l.Rho(), Xi: l.Xi()}
	}
	if r, ok := lay.Rock(); ok {
		rock = &Layer{Vs: r.Vs, Rho: r.Rho, Xi: r.Xi}
	}
	return
}

// TransferFunction computes the ratio between the surface motion and the base motion of a
// layered column under vertically propagating shear waves at frequency f [Hz].
//  layers -- from the surface downwards
//  rock   -- elastic half-space; the ratio is surface/outcrop.
//            nil means a rigid base and the ratio is surface/base
//  Note: complex shear moduli G* = G(1 + 2iξ) and amplitudes of up and downgoing waves
//        computed layer by layer from the traction-free surface (A = B = 1)
func TransferFunction(layers []Layer, rock *Layer, f float64) complex128 {
	ω := 2.0 * math.Pi * f
	A, B := complex(1, 0), complex(1, 0)
	for m, l := range layers {
		vs := velocity(l)
		e := cmplx.Exp(complex(0, 1) * complex(ω, 0) / vs * complex(l.H, 0))
		last := m == len(layers)-1
		if last && rock == nil {
			return 2.0 / (A*e + B/e)
		}
		var next Layer
		if last {
			next = *rock
		} else {
			next = layers[m+1]
		}
		α := complex(l.Rho, 0) * vs / (complex(next.Rho, 0) * velocity(next))
		A, B = 0.5*A*(1+α)*e+0.5*B*(1-α)/e, 0.5*A*(1-α)*e+0.5*B*(1+α)/e
	}
	return 1.0 / A
}

// Amplification returns the modulus of the transfer function
func Amplification(layers []Layer, rock *Layer, f float64) float64 {
	return cmplx.Abs(TransferFunction(layers, rock, f))
}

// UniformColumnFrequencies returns the first n natural frequencies of a uniform
// undamped column on a rigid base: (2k - 1) vs / (4 H)
func UniformColumnFrequencies(H, Vs float64, n int) (freqs []float64) {
	freqs = make([]float64, n)
	for k := 1; k <= n; k++ {
		freqs[k-1] = float64(2*k-1) * Vs / (4.0 * H)
	}
	return
}

// velocity returns the complex shear wave velocity
func velocity(l Layer) complex128 {
	return complex(l.Vs, 0) * cmplx.Sqrt(complex(1, 2.0*l.Xi))
}
