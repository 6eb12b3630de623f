// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// SolverImplicit solves the nonlinear problem using an implicit procedure (with Newton-Raphson method)
type SolverImplicit struct {
}

// set factory
func init() {
	solverallocators["imp"] = func() FEsolver {
		return new(SolverImplicit)
	}
}

// Run runs all steps
func (o *SolverImplicit) Run(d *Domain) (err error) {
	nsteps := d.Exc.Npts()
	for step := 1; step < nsteps; step++ {
		d.Sol.T = d.Exc.Time(step)
		err = run_iterations(step, d)
		if err != nil {
			return
		}
	}
	return
}

// run_iterations solves the nonlinear problem of one step
func run_iterations(step int, d *Domain) (err error) {

	// calculate global starred vectors and trial velocities and accelerations
	d.star_vars()
	d.trial_vars()

	// auxiliary variables
	dat := &d.Sim.Solver
	var it int
	var largFb, largFb0, Lδu float64

	// message
	if d.Sim.Data.ShowR && d.Sim.Data.Verbose {
		io.Pf("\n%s %13s%4s%23s%23s\n", d.Dir, "t", "it", "largFb", "Lδu")
		defer func() {
			io.Pf("%s %13.6e%4d%23.15e%23.15e\n", d.Dir, d.Sol.T, it, largFb, Lδu)
		}()
	}

	// iterations
	for it = 0; it < dat.NmaxIt; it++ {

		// assemble right-hand side vector (fb) with negative of residuals
		err = d.assemble_rhs(step)
		if err != nil {
			return
		}

		// find largest absolute component of fb
		largFb = d.largest_fb()
		if math.IsNaN(largFb) || math.IsInf(largFb, 0) {
			return d.failure(step, largFb)
		}

		// check largFb value
		if it == 0 {
			// store largest absolute component of fb
			largFb0 = largFb
		} else {
			// check convergence on Lf0
			if largFb < dat.FbTol*largFb0 { // converged on fb
				break
			}
			// check convergence on fb_min
			if largFb < dat.FbMin { // converged with smallest value of fb
				break
			}
		}

		// assemble Jacobian matrix and perform factorisation
		if it == 0 || !dat.CteTg {
			err = d.assemble_kb(it == 0)
			if err != nil {
				return
			}
		}

		// solve for wb := δyb
		err = d.solve()
		if err != nil {
			return
		}

		// update primary variables (y) and time derivatives
		d.update_y(d.Wb)

		// backup / restore
		if it == 0 {
			// create backup copy of all secondary variables
			for _, e := range d.ElemIntvars {
				e.BackupIvs()
			}
		} else {
			// recover last converged state from backup copy
			for _, e := range d.ElemIntvars {
				e.RestoreIvs()
			}
		}

		// update secondary variables
		err = d.update_elems()
		if err != nil {
			return
		}

		// compute RMS norm of δu and check convegence on δu
		Lδu = d.rms_error(d.Wb)

		// stop if converged on δu
		if Lδu < dat.Itol {
			break
		}
	}

	// check if iterations diverged
	nit := it + 1
	if it == dat.NmaxIt {
		nit = it
		d.not_converged(step, nit, largFb)
	}
	return d.end_step(step, nit, largFb)
}
