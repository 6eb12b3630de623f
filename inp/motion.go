// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// OutcropMotion holds the ground motion recorded (or specified) at a rock outcrop
// for one horizontal direction. Samples start at t = 0 and are spaced by Dt
type OutcropMotion struct {
	dir string    // direction; e.g. "x" or "z"
	dt  float64   // time step
	acc []float64 // accelerations [m/s²]
	vel []float64 // velocities [m/s]
	dis []float64 // displacements [m]
}

// NewOutcropMotion returns a new motion from an acceleration history
func NewOutcropMotion(dir string, dt float64, acc []float64) (*OutcropMotion, error) {
	err := check_series(dir, dt, acc)
	if err != nil {
		return nil, err
	}
	n := len(acc)
	o := &OutcropMotion{dir: dir, dt: dt}
	o.acc = make([]float64, n)
	o.vel = make([]float64, n)
	o.dis = make([]float64, n)
	copy(o.acc, acc)
	for i := 1; i < n; i++ {
		o.vel[i] = o.vel[i-1] + dt*(o.acc[i-1]+o.acc[i])/2.0
		o.dis[i] = o.dis[i-1] + dt*o.vel[i-1] + dt*dt*(o.acc[i-1]+o.acc[i])/4.0
	}
	return o, nil
}

// NewOutcropMotionFromVel returns a new motion from a velocity history.
// Accelerations are computed by central differences and the velocities are kept unchanged
func NewOutcropMotionFromVel(dir string, dt float64, vel []float64) (*OutcropMotion, error) {
	err := check_series(dir, dt, vel)
	if err != nil {
		return nil, err
	}
	n := len(vel)
	o := &OutcropMotion{dir: dir, dt: dt}
	o.acc = make([]float64, n)
	o.vel = make([]float64, n)
	o.dis = make([]float64, n)
	copy(o.vel, vel)
	if n > 1 {
		o.acc[0] = (vel[1] - vel[0]) / dt
		o.acc[n-1] = (vel[n-1] - vel[n-2]) / dt
		for i := 1; i < n-1; i++ {
			o.acc[i] = (vel[i+1] - vel[i-1]) / (2.0 * dt)
		}
	}
	for i := 1; i < n; i++ {
		o.dis[i] = o.dis[i-1] + dt*(vel[i-1]+vel[i])/2.0
	}
	return o, nil
}

// check_series checks time step and samples
func check_series(dir string, dt float64, vals []float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return chk.Err("motion %q: time step must be positive. dt = %g is invalid", dir, dt)
	}
	if len(vals) < 1 {
		return chk.Err("motion %q: at least one sample is required", dir)
	}
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return chk.Err("motion %q: sample %d is not finite", dir, i)
		}
	}
	return nil
}

// Dir returns the direction label
func (o OutcropMotion) Dir() string { return o.dir }

// Dt returns the time step
func (o OutcropMotion) Dt() float64 { return o.dt }

// Npts returns the number of samples
func (o OutcropMotion) Npts() int { return len(o.acc) }

// Duration returns the time of the last sample
func (o OutcropMotion) Duration() float64 { return float64(len(o.acc)-1) * o.dt }

// Time returns the time of sample i
func (o OutcropMotion) Time(i int) float64 { return float64(i) * o.dt }

// Acc returns a copy of the accelerations
func (o OutcropMotion) Acc() []float64 { return append([]float64{}, o.acc...) }

// Vel returns a copy of the velocities
func (o OutcropMotion) Vel() []float64 { return append([]float64{}, o.vel...) }

// Disp returns a copy of the displacements
func (o OutcropMotion) Disp() []float64 { return append([]float64{}, o.dis...) }

// AccAt returns the linearly interpolated acceleration at t; zero after the end of the record
func (o OutcropMotion) AccAt(t float64) float64 { return o.interp(o.acc, t, false) }

// VelAt returns the linearly interpolated velocity at t; the last value after the end of the record
func (o OutcropMotion) VelAt(t float64) float64 { return o.interp(o.vel, t, true) }

// DispAt returns the linearly interpolated displacement at t; the last value after the end of the record
func (o OutcropMotion) DispAt(t float64) float64 { return o.interp(o.dis, t, true) }

// Peak returns the largest absolute acceleration
func (o OutcropMotion) Peak() (pga float64) {
	for _, a := range o.acc {
		pga = math.Max(pga, math.Abs(a))
	}
	return
}

// Scaled returns a copy of this motion with all values multiplied by k
func (o OutcropMotion) Scaled(k float64) *OutcropMotion {
	s := &OutcropMotion{dir: o.dir, dt: o.dt}
	s.acc = make([]float64, len(o.acc))
	s.vel = make([]float64, len(o.acc))
	s.dis = make([]float64, len(o.acc))
	for i := range o.acc {
		s.acc[i] = k * o.acc[i]
		s.vel[i] = k * o.vel[i]
		s.dis[i] = k * o.dis[i]
	}
	return s
}

func (o OutcropMotion) interp(v []float64, t float64, hold bool) float64 {
	if t <= 0 {
		return v[0]
	}
	n := len(v)
	x := t / o.dt
	i := int(math.Floor(x))
	if i >= n-1 {
		if hold || math.Abs(x-float64(n-1)) < 1e-10 {
			return v[n-1]
		}
		return 0
	}
	s := x - float64(i)
	return (1.0-s)*v[i] + s*v[i+1]
}

// ReadMotion reads a motion file with one or two columns.
//  kind  -- "acc" or "vel"
//  dt    -- time step for one-column files; ignored (may be zero) for two-column files "time value"
//  scale -- multiplier converting values to SI units; e.g. 9.81 if accelerations are given in g
//  Note: lines starting with '#' or '%' are comments
func ReadMotion(fn, dir, kind string, dt, scale float64) (*OutcropMotion, error) {
	rows, _, err := read_table(fn)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, chk.Err("motion file %q has no data", fn)
	}
	if scale == 0 {
		scale = 1
	}
	vals := make([]float64, len(rows))
	switch len(rows[0]) {
	case 1:
		for i, r := range rows {
			vals[i] = scale * r[0]
		}
	default:
		times := make([]float64, len(rows))
		for i, r := range rows {
			if len(r) < 2 {
				return nil, chk.Err("motion file %q: line %d has %d columns; 2 are required", fn, i, len(r))
			}
			times[i], vals[i] = r[0], scale*r[1]
		}
		dt, err = uniform_step(times)
		if err != nil {
			return nil, chk.Err("motion file %q:\n%v", fn, err)
		}
	}
	if kind == "vel" {
		return NewOutcropMotionFromVel(dir, dt, vals)
	}
	return NewOutcropMotion(dir, dt, vals)
}

// uniform_step checks that times are strictly increasing with constant step and returns the step
func uniform_step(times []float64) (dt float64, err error) {
	if len(times) < 2 {
		return 0, chk.Err("at least two samples are needed to compute the time step")
	}
	dt = times[1] - times[0]
	if !(dt > 0) {
		return 0, chk.Err("times must be strictly increasing")
	}
	for i := 1; i < len(times); i++ {
		h := times[i] - times[i-1]
		if !(h > 0) {
			return 0, chk.Err("times must be strictly increasing. t[%d] = %g, t[%d] = %g", i-1, times[i-1], i, times[i])
		}
		if math.Abs(h-dt) > 1e-6*dt+1e-12 {
			return 0, chk.Err("time step must be constant. found %g and %g at sample %d", dt, h, i)
		}
	}
	dt = (times[len(times)-1] - times[0]) / float64(len(times)-1)
	return
}

// read_table reads whitespace separated numbers skipping empty lines. Comment lines starting
// with '#' or '%' are returned without the leading character
func read_table(fn string) (rows [][]float64, comments []string, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, nil, chk.Err("cannot open file %q:\n%v", fn, err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	lnum := 0
	for sc.Scan() {
		lnum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '#' || line[0] == '%' {
			comments = append(comments, strings.TrimSpace(line[1:]))
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for j, s := range fields {
			row[j], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, nil, chk.Err("file %q, line %d: cannot parse %q", fn, lnum, s)
			}
		}
		rows = append(rows, row)
	}
	if err = sc.Err(); err != nil {
		return nil, nil, chk.Err("cannot read file %q:\n%v", fn, err)
	}
	return
}
