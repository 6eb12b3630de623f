// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Peaks holds the peak values at the surface and base of one direction
type Peaks struct {
	SurfAcc   float64 // peak surface acceleration
	SurfVel   float64 // peak surface velocity
	SurfDisp  float64 // peak surface displacement
	BaseAcc   float64 // peak base acceleration
	BaseVel   float64 // peak base velocity
	BaseDisp  float64 // peak base displacement
	MaxStrain float64 // largest shear strain in the column
	MaxStress float64 // largest shear stress in the column
}

// Summary records summary of a run
type Summary struct {

	// run
	RunId   string  // unique identifier of run
	Key     string  // filename key of simulation
	Dirout  string  // directory where results are stored
	Encoder string  // encoder type
	Mode    string  // "test" or "total"
	Code    string  // result code
	CPUTime float64 // wall time of the run [s]

	// discretisation
	Nlayers int     // number of layers
	Nnodes  int     // number of nodes
	Ncells  int     // number of elements
	Rigid   bool    // rigid base
	Dt      float64 // analysis time step
	Nsteps  int     // number of steps per pass
	Npasses int     // number of passes through the input motion

	// results
	Dirs     []string                // directions
	OutTimes []float64               // [nOutTimes] output times
	Peaks    map[string]Peaks        // direction => peaks
	Nit      map[string][]int        // direction => number of iterations of each step (if Stat is on)
	Warnings []NonConvergenceWarning // non-converged steps
}

// Encode encodes the summary into buf
func (o Summary) Encode(buf *bytes.Buffer) (err error) {
	err = GetEncoder(buf, o.Encoder).Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	return
}

// ReadSum reads summary back
func ReadSum(dir, fnkey, enctype string) (o *Summary, err error) {
	fn := out_sum_path(dir, fnkey, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open summary file %q:\n%v", fn, err)
	}
	defer fil.Close()
	o = new(Summary)
	err = GetDecoder(fil, enctype).Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary file %q:\n%v", fn, err)
	}
	return
}

// peaks computes the peak values of a history
func peaks(h *History) (p Peaks) {
	largest := func(vals []float64) (res float64) {
		for _, v := range vals {
			if v < 0 {
				v = -v
			}
			if v > res {
				res = v
			}
		}
		return
	}
	p.SurfAcc = largest(h.Surface("a"))
	p.SurfVel = largest(h.Surface("v"))
	p.SurfDisp = largest(h.Surface("u"))
	p.BaseAcc = largest(h.Base("a"))
	p.BaseVel = largest(h.Base("v"))
	p.BaseDisp = largest(h.Base("u"))
	p.MaxStrain = largest(h.PeakStrain)
	p.MaxStress = largest(h.PeakStress)
	return
}
