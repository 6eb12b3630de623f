// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/inp"
)

func Test_bc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc01. compliant base excitation")

	ρr, vr := 2400.0, 1000.0
	lay := uniform(tst, 30, 200, 2000, 0.02, &inp.RockData{Rho: ρr, Vs: vr})
	mx := sine(tst, "x", 1, 2, 0.01, 1)
	mz := sine(tst, "z", 2, 3, 0.01, 1)
	bx, bz, err := Translate(mx, mz, lay, 2)
	if err != nil {
		tst.Errorf("Translate failed:\n%v", err)
		return
	}

	chk.String(tst, bx.Dir, "x")
	chk.String(tst, bz.Dir, "z")
	chk.String(tst, bx.Kind.String(), "compliant")
	chk.Int(tst, "npts", bx.Npts(), 201)
	chk.Float64(tst, "dt", 1e-17, bx.Dt, 0.005)
	chk.Float64(tst, "dashpot", 1e-10, bx.Dashpot, ρr*vr)
	velx := mx.Vel()
	for i := 0; i < bx.Npts(); i++ {
		chk.Float64(tst, io.Sf("force %d", i), 1e-9, bx.Force[i], ρr*vr*bx.Vel[i])
		chk.Float64(tst, io.Sf("inc %d", i), 1e-15, bx.Inc[i], bx.Vel[i]/2)
		if i%2 == 0 {
			chk.Float64(tst, io.Sf("vel %d", i), 1e-14, bx.Vel[i], velx[i/2])
		}
	}
}

func Test_bc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc02. rigid base excitation")

	lay := uniform(tst, 30, 200, 2000, 0.02, nil)
	mx := sine(tst, "x", 1, 2, 0.01, 1)
	mz := sine(tst, "z", 2, 3, 0.01, 1)
	bx, bz, err := Translate(mx, mz, lay, 1)
	if err != nil {
		tst.Errorf("Translate failed:\n%v", err)
		return
	}
	chk.String(tst, bz.Kind.String(), "rigid")
	if bx.Force != nil {
		tst.Errorf("rigid base must not have equivalent forces")
		return
	}
	chk.Array(tst, "acc", 1e-14, bx.Acc, mx.Acc())
	chk.Array(tst, "vel", 1e-14, bx.Vel, mx.Vel())
	chk.Array(tst, "disp", 1e-14, bx.Disp, mx.Disp())
	chk.Array(tst, "disp z", 1e-14, bz.Disp, mz.Disp())

	// errors
	_, _, err = Translate(mx, sine(tst, "z", 1, 2, 0.02, 1), lay, 1)
	if _, ok := err.(*IncompatibleTimeStepError); !ok {
		tst.Errorf("IncompatibleTimeStepError expected. got %v", err)
		return
	}
	_, _, err = Translate(mx, nil, lay, 1)
	if err == nil {
		tst.Errorf("nil motion must fail")
	}
}

func Test_bc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc03. Rayleigh damping")

	ξ, f1, f2 := 0.05, 1.0, 3.0
	a0, a1 := RayleighCoefs(ξ, f1, f2)
	chk.Float64(tst, "ξ(f1)", 1e-15, RayleighRatio(a0, a1, f1), ξ)
	chk.Float64(tst, "ξ(f2)", 1e-15, RayleighRatio(a0, a1, f2), ξ)
	if RayleighRatio(a0, a1, 2) >= ξ {
		tst.Errorf("damping ratio between control frequencies must be smaller than ξ")
		return
	}

	lay := twolayer(tst, ξ, nil)
	dat := inp.NewSimulation("ray", "").Solver
	ray, err := NewRayleigh(lay, &dat)
	if err != nil {
		tst.Errorf("NewRayleigh failed:\n%v", err)
		return
	}
	chk.Float64(tst, "F1", 1e-15, ray.F1, 2.5)
	chk.Float64(tst, "F2", 1e-15, ray.F2, 7.5)

	dat.NoDamp = true
	ray, _ = NewRayleigh(lay, &dat)
	b0, b1 := ray.Coefs(ξ)
	chk.Float64(tst, "a0 (off)", 1e-17, b0, 0)
	chk.Float64(tst, "a1 (off)", 1e-17, b1, 0)

	dat.DampF1, dat.DampF2 = 2, 2
	_, err = NewRayleigh(lay, &dat)
	if err == nil {
		tst.Errorf("equal control frequencies must fail")
	}
}

func Test_bc04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc04. Newmark coefficients")

	dat := inp.NewSimulation("dyn", "").Solver
	var dc DynCoefs
	if err := dc.Init(&dat); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	if err := dc.Calc(0.01); err != nil {
		tst.Errorf("Calc failed:\n%v", err)
		return
	}
	chk.Array(tst, "α", 1e-10, dc.Alpha(), []float64{40000, 400, 1, 200, 1, 0})

	if err := dc.Calc(0); err == nil {
		tst.Errorf("zero Δt must fail")
		return
	}
	dat.Theta1 = 0.4
	if err := dc.Init(&dat); err == nil {
		tst.Errorf("θ1 < 0.5 must fail")
		return
	}
	dat.Theta1, dat.Theta2 = 0.6, 0.5
	if err := dc.Init(&dat); err == nil {
		tst.Errorf("θ2 < θ1 must fail")
	}
}

func Test_bc05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc05. output interval of history")

	lay := twolayer(tst, 0.05, nil)
	sim := inp.NewSimulation("hist", "")
	sim.Solver.DtOut = 0.03
	mx := sine(tst, "x", 1, 2, 0.01, 0.1)
	bx, _, err := Translate(mx, mx, lay, 1)
	if err != nil {
		tst.Errorf("Translate failed:\n%v", err)
		return
	}
	cfg := DefaultMeshConfig()
	cfg.Fmax = 10
	msh, err := BuildMesh(lay, cfg)
	if err != nil {
		tst.Errorf("BuildMesh failed:\n%v", err)
		return
	}
	d, err := NewDomain(sim, lay, msh, bx, nil, nil)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	chk.String(tst, d.State.String(), "initialized")
	if err = d.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.String(tst, d.State.String(), "completed")
	chk.Array(tst, "T", 1e-14, d.Hist.T, []float64{0, 0.03, 0.06, 0.09, 0.1})
	chk.Int(tst, "len(surface)", len(d.Hist.Surface("a")), 5)
	chk.Int(tst, "len(peak strain)", len(d.Hist.PeakStrain), msh.Ncells())
	chk.Array(tst, "base u", 1e-15, d.Hist.Base("u"), []float64{bx.Disp[0], bx.Disp[3], bx.Disp[6], bx.Disp[9], bx.Disp[10]})
}
