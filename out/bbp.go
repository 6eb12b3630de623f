// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/inp"
)

// WriteSurfaceBBP writes the surface velocities (x => N-S, z => E-W) in cm/s with the Broadband
// Platform format. The vertical component is not modelled: ud (sampled at udDt, in cm/s) is
// interpolated at the output times and passed through; nil ud gives zeros
func WriteSurfaceBBP(res *Results, fn string, header []string, ud []float64, udDt float64) (err error) {
	hx, err := res.History("x")
	if err != nil {
		return
	}
	hz, err := res.History("z")
	if err != nil {
		return
	}
	if hx.Nout() != hz.Nout() {
		return chk.Err("x and z histories have different number of outputs: %d != %d", hx.Nout(), hz.Nout())
	}
	if ud != nil && !(udDt > 0) {
		return chk.Err("time step of vertical component must be positive. dt = %g is invalid", udDt)
	}
	vx, vz := hx.Surface("v"), hz.Surface("v")
	n := len(vx)
	ns := make([]float64, n)
	ew := make([]float64, n)
	uv := make([]float64, n)
	for i := 0; i < n; i++ {
		ns[i] = 100.0 * vx[i]
		ew[i] = 100.0 * vz[i]
		if ud != nil {
			uv[i] = interp(ud, udDt, hx.T[i])
		}
	}
	if len(header) == 0 {
		header = []string{io.Sf("surface velocity of %s (run %s)", res.Sum.Key, res.Sum.RunId)}
	}
	return inp.WriteBBP(fn, header, hx.Dt(), ns, ew, uv)
}

// interp linearly interpolates vals (sampled at dt) at t; zero outside the record
func interp(vals []float64, dt, t float64) float64 {
	x := t / dt
	i := int(math.Floor(x))
	if i < 0 || i >= len(vals) {
		return 0
	}
	if i == len(vals)-1 {
		if math.Abs(x-float64(i)) < 1e-10 {
			return vals[i]
		}
		return 0
	}
	s := x - float64(i)
	return (1.0-s)*vals[i] + s*vals[i+1]
}
