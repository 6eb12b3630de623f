// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// twolayer returns the soft-over-stiff profile: 10 m with vs = 200 over 20 m with vs = 400
func twolayer(tst *testing.T, xi float64, rock *inp.RockData) *inp.SiteLayering {
	lay, err := inp.NewSiteLayering([]inp.LayerData{
		{Name: "stiff", Thick: 20, Rho: 2000, Vs: 400, Xi: xi, Gref: 1e-3},
		{Name: "soft", Thick: 10, Rho: 2000, Vs: 200, Xi: xi, Gref: 5e-4},
	}, rock)
	if err != nil {
		tst.Fatalf("NewSiteLayering failed:\n%v", err)
	}
	return lay
}

// uniform returns a single layer profile
func uniform(tst *testing.T, H, vs, rho, xi float64, rock *inp.RockData) *inp.SiteLayering {
	lay, err := inp.NewSiteLayering([]inp.LayerData{{Name: "soil", Thick: H, Rho: rho, Vs: vs, Xi: xi}}, rock)
	if err != nil {
		tst.Fatalf("NewSiteLayering failed:\n%v", err)
	}
	return lay
}

// sine returns a sinusoidal acceleration with amplitude amp [m/s²] and frequency f
func sine(tst *testing.T, dir string, amp, f, dt, tf float64) *inp.OutcropMotion {
	n := int(math.Round(tf/dt)) + 1
	acc := make([]float64, n)
	for i := 0; i < n; i++ {
		acc[i] = amp * math.Sin(2*math.Pi*f*float64(i)*dt)
	}
	m, err := inp.NewOutcropMotion(dir, dt, acc)
	if err != nil {
		tst.Fatalf("NewOutcropMotion failed:\n%v", err)
	}
	return m
}

// zeros returns a zero motion
func zeros(tst *testing.T, dir string, dt float64, n int) *inp.OutcropMotion {
	m, err := inp.NewOutcropMotion(dir, dt, make([]float64, n))
	if err != nil {
		tst.Fatalf("NewOutcropMotion failed:\n%v", err)
	}
	return m
}

// peak_window returns the largest absolute value of vals with t in [t0, t1]
func peak_window(t, vals []float64, t0, t1 float64) (res float64) {
	for i, ti := range t {
		if ti >= t0-1e-12 && ti <= t1+1e-12 {
			res = math.Max(res, math.Abs(vals[i]))
		}
	}
	return
}
