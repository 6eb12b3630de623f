// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// BBP holds a three-component Broadband Platform velocity time series.
// Values are stored as in the file, i.e. in cm/s
type BBP struct {
	Header []string  // comment lines (without the leading '#' or '%')
	Dt     float64   // time step
	NS     []float64 // north-south component
	EW     []float64 // east-west component
	UD     []float64 // vertical component (up-down)
}

// ReadBBP reads a Broadband Platform velocity file with columns "t ns ew ud"
func ReadBBP(fn string) (o *BBP, err error) {

	// data and comments
	rows, header, err := read_table(fn)
	if err != nil {
		return nil, err
	}
	o = &BBP{Header: header}
	n := len(rows)
	if n < 2 {
		return nil, chk.Err("BBP file %q must have at least two samples", fn)
	}
	times := make([]float64, n)
	o.NS = make([]float64, n)
	o.EW = make([]float64, n)
	o.UD = make([]float64, n)
	for i, r := range rows {
		if len(r) != 4 {
			return nil, chk.Err("BBP file %q: sample %d has %d columns; 4 are required", fn, i, len(r))
		}
		times[i], o.NS[i], o.EW[i], o.UD[i] = r[0], r[1], r[2], r[3]
	}
	o.Dt, err = uniform_step(times)
	if err != nil {
		return nil, chk.Err("BBP file %q:\n%v", fn, err)
	}
	return
}

// Motions converts the horizontal components into outcrop motions: x ⇐ NS, z ⇐ EW.
//  scale -- multiplier converting velocities to m/s; 0 means 0.01 (cm/s)
func (o BBP) Motions(scale float64) (mx, mz *OutcropMotion, err error) {
	if scale == 0 {
		scale = 0.01
	}
	ns := make([]float64, len(o.NS))
	ew := make([]float64, len(o.EW))
	for i := range o.NS {
		ns[i] = scale * o.NS[i]
		ew[i] = scale * o.EW[i]
	}
	mx, err = NewOutcropMotionFromVel("x", o.Dt, ns)
	if err != nil {
		return
	}
	mz, err = NewOutcropMotionFromVel("z", o.Dt, ew)
	return
}

// WriteBBP writes velocities (in cm/s) with the Broadband Platform format
func WriteBBP(fn string, header []string, dt float64, ns, ew, ud []float64) error {
	if len(ns) != len(ew) || len(ns) != len(ud) {
		return chk.Err("WriteBBP: components must have the same length. %d, %d, %d are invalid", len(ns), len(ew), len(ud))
	}
	var buf bytes.Buffer
	for _, h := range header {
		io.Ff(&buf, "# %s\n", h)
	}
	io.Ff(&buf, "# time(sec)      N-S(cm/s)      E-W(cm/s)      U-D(cm/s)\n")
	for i := range ns {
		io.Ff(&buf, "%10.5e %15.6e %15.6e %15.6e\n", float64(i)*dt, ns[i], ew[i], ud[i])
	}
	err := os.WriteFile(fn, buf.Bytes(), 0644)
	if err != nil {
		return chk.Err("cannot write BBP file %q:\n%v", fn, err)
	}
	return nil
}
