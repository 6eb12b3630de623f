// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/siteresp/inp"
)

// BaseKind defines the boundary condition at the base of the column
type BaseKind int

// base kinds
const (
	Compliant BaseKind = iota // viscous dashpot (elastic half-space) with equivalent force
	Rigid                     // prescribed motion
)

func (o BaseKind) String() string {
	if o == Rigid {
		return "rigid"
	}
	return "compliant"
}

// BoundaryExcitation holds the excitation at the base of the column for one direction,
// sampled at the analysis time step
type BoundaryExcitation struct {
	Dir     string    // direction
	Dt      float64   // analysis time step = motion time step / nsub
	Kind    BaseKind  // compliant or rigid
	Dashpot float64   // ρr·vr of the half-space (compliant only)
	Force   []float64 // equivalent force per unit area = 2 ρr vr v_inc = ρr vr v_outcrop (compliant only)
	Inc     []float64 // incident velocity = v_outcrop / 2 (compliant only)
	Acc     []float64 // prescribed (rigid) or outcrop (compliant) acceleration
	Vel     []float64 // prescribed (rigid) or outcrop (compliant) velocity
	Disp    []float64 // prescribed (rigid) or outcrop (compliant) displacement
}

// Npts returns the number of samples
func (o BoundaryExcitation) Npts() int { return len(o.Acc) }

// Time returns the time of sample i
func (o BoundaryExcitation) Time(i int) float64 { return float64(i) * o.Dt }

// Translate converts the outcrop motions into base excitations of the x and z models.
//  nsub -- number of analysis steps per motion step
func Translate(mx, mz *inp.OutcropMotion, lay *inp.SiteLayering, nsub int) (bx, bz *BoundaryExcitation, err error) {
	if mx == nil || mz == nil {
		return nil, nil, chk.Err("Translate: motions in x and z must be given")
	}
	dtx, dtz := mx.Dt(), mz.Dt()
	if math.Abs(dtx-dtz) > 1e-9*dtx {
		return nil, nil, &IncompatibleTimeStepError{DtX: dtx, DtZ: dtz}
	}
	if nsub < 1 {
		nsub = 1
	}
	bx = translate_one(mx, lay, nsub)
	bz = translate_one(mz, lay, nsub)
	return
}

// translate_one computes the excitation in one direction
func translate_one(m *inp.OutcropMotion, lay *inp.SiteLayering, nsub int) (o *BoundaryExcitation) {
	o = &BoundaryExcitation{Dir: m.Dir(), Dt: m.Dt() / float64(nsub)}
	n := (m.Npts()-1)*nsub + 1
	o.Acc = make([]float64, n)
	o.Vel = make([]float64, n)
	o.Disp = make([]float64, n)
	rock, compliant := lay.Rock()
	if compliant {
		o.Kind = Compliant
		o.Dashpot = rock.Impedance()
		o.Force = make([]float64, n)
		o.Inc = make([]float64, n)
		for i := 0; i < n; i++ {
			t := o.Time(i)
			o.Acc[i] = m.AccAt(t)
			o.Vel[i] = m.VelAt(t)
			o.Disp[i] = m.DispAt(t)
			o.Inc[i] = o.Vel[i] / 2.0
			o.Force[i] = 2.0 * o.Dashpot * o.Inc[i]
		}
		return
	}

	// rigid base: velocities and displacements consistent with Newmark's average acceleration
	o.Kind = Rigid
	for i := 0; i < n; i++ {
		o.Acc[i] = m.AccAt(o.Time(i))
	}
	h := o.Dt
	for i := 1; i < n; i++ {
		o.Vel[i] = o.Vel[i-1] + h*(o.Acc[i-1]+o.Acc[i])/2.0
		o.Disp[i] = o.Disp[i-1] + h*o.Vel[i-1] + h*h*(o.Acc[i-1]+o.Acc[i])/4.0
	}
	return
}
