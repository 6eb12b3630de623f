// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// SolverLinearImplicit solves **linear** problems using an implicit procedure.
// The effective matrix is factorised once and each step needs one solve
type SolverLinearImplicit struct {
}

// set factory of solvers
func init() {
	solverallocators["lin-imp"] = func() FEsolver {
		return new(SolverLinearImplicit)
	}
}

// Run runs all steps
func (o *SolverLinearImplicit) Run(d *Domain) (err error) {

	// factorise
	err = d.assemble_kb(true)
	if err != nil {
		return
	}

	// time loop
	verbose := d.Sim.Data.Verbose && d.Sim.Data.ShowR
	nsteps := d.Exc.Npts()
	for step := 1; step < nsteps; step++ {

		// starred variables and trial velocities and accelerations
		d.Sol.T = d.Exc.Time(step)
		d.star_vars()
		d.trial_vars()

		// right-hand side
		err = d.assemble_rhs(step)
		if err != nil {
			return
		}
		largFb := d.largest_fb()
		if math.IsNaN(largFb) || math.IsInf(largFb, 0) {
			return d.failure(step, largFb)
		}

		// solve for wb := δyb
		err = d.solve()
		if err != nil {
			return
		}

		// update primary and secondary variables
		d.update_y(d.Wb)
		err = d.update_elems()
		if err != nil {
			return
		}

		// message
		if verbose {
			io.Pf("%s %13.6e%23.15e\n", d.Dir, d.Sol.T, largFb)
		}

		// end of step
		err = d.end_step(step, 1, largFb)
		if err != nil {
			return
		}
	}
	return
}
