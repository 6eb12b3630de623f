// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/inp"
	"github.com/cpmech/siteresp/msolid"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Solution holds the solution data @ nodes
type Solution struct {

	// current state
	T      float64   // current time
	Y      []float64 // displacements
	Dydt   []float64 // velocities
	D2ydt2 []float64 // accelerations

	// auxiliary
	ΔY  []float64 // total increment (for nonlinear solver)
	Zet []float64 // t2 star vars: ζ* = α1.u + α2.v + α3.a
	Chi []float64 // t2 star vars: χ* = α4.u + α5.v + α6.a

	// constants
	DynCfs *DynCoefs // coefficients for dynamics
}

// DomainState is the state of the time integration
type DomainState int

// integration states
const (
	Initialized DomainState = iota // matrices and excitation are ready
	Stepping                       // time loop is running
	Completed                      // all steps were computed
	Failed                         // integration stopped with an error
)

func (o DomainState) String() string {
	switch o {
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case Completed:
		return "completed"
	}
	return "failed"
}

// Domain holds the elements and the solution of the soil column in one direction.
// A domain is exclusively owned by one analysis task
type Domain struct {

	// input data
	Dir    string              // direction; e.g. "x" or "z"
	Sim    *inp.Simulation     // simulation data
	Lay    *inp.SiteLayering   // layering
	Msh    *Mesh               // mesh
	Exc    *BoundaryExcitation // base excitation
	Damp   *Rayleigh           // damping
	DynCfs *DynCoefs           // coefficients for dynamics

	// elements
	Elems       []Elem          // all elements
	ElemIntvars []ElemIntvars   // elements with internal variables
	ElemOut     []ElemOutputter // elements with strains and stresses for output
	Linear      bool            // all models are linear within one pass
	Iterative   bool            // some models need passes through the input motion

	// dimensions and solution
	Ny   int       // number of equations (nodes)
	Sol  *Solution // solution state
	Mass []float64 // lumped mass

	// linear system
	kb     []float64         // [2·ny] banded storage of the effective tangent
	Kb     *mat.SymBandDense // effective tangent (shares kb)
	Fb     []float64         // residual == -fb
	Wb     []float64         // workspace
	fbv    *mat.VecDense     // shares Fb
	wbv    *mat.VecDense     // shares Wb
	chol   mat.BandCholesky  // factorisation
	kbc    float64           // Kb(0,1) before applying the rigid base constraint
	Solver FEsolver          // time integrator

	// results
	Hist      *History                 // recorded history
	Nit       []int                    // number of iterations of each step (if Stat)
	Warnings  []*NonConvergenceWarning // non-converged steps
	State     DomainState              // integration state
	FailStep  int                      // failing step (if Failed)
	FailResid float64                  // residual at failing step (if Failed)

	// logging and metrics
	log *zap.Logger
	met *Metrics
}

// NewDomain allocates elements and matrices for one direction
func NewDomain(sim *inp.Simulation, lay *inp.SiteLayering, msh *Mesh, exc *BoundaryExcitation, log *zap.Logger, met *Metrics) (o *Domain, err error) {

	// basic data
	o = &Domain{Dir: exc.Dir, Sim: sim, Lay: lay, Msh: msh, Exc: exc, log: log, met: met}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	o.DynCfs = new(DynCoefs)
	err = o.DynCfs.Init(&sim.Solver)
	if err != nil {
		return nil, err
	}
	err = o.DynCfs.Calc(exc.Dt)
	if err != nil {
		return nil, err
	}
	o.Damp, err = NewRayleigh(lay, &sim.Solver)
	if err != nil {
		return nil, err
	}

	// elements
	o.Ny = msh.Nnodes()
	o.Mass = make([]float64, o.Ny)
	o.Linear = true
	for i := range msh.Cells {
		cell := &msh.Cells[i]
		ele, e := NewElem("shear", cell, msh, lay, o.Damp)
		if e != nil {
			return nil, errors.Wrapf(e, "cannot allocate element %d", cell.Id)
		}
		o.Elems = append(o.Elems, ele)
		if e, ok := ele.(ElemIntvars); ok {
			o.ElemIntvars = append(o.ElemIntvars, e)
		}
		if e, ok := ele.(ElemOutputter); ok {
			o.ElemOut = append(o.ElemOut, e)
		}
		if s, ok := ele.(*ShearElem); ok {
			for _, v := range cell.Verts {
				o.Mass[v] += s.Mass()
			}
			if _, ok := s.Model.(msolid.Iterative); ok {
				o.Iterative = true
			}
		}
		if cell.Model != "elast" && cell.Model != "eqlin" {
			o.Linear = false
		}
	}

	// solution
	o.Sol = new(Solution)
	o.Sol.Y = make([]float64, o.Ny)
	o.Sol.Dydt = make([]float64, o.Ny)
	o.Sol.D2ydt2 = make([]float64, o.Ny)
	o.Sol.ΔY = make([]float64, o.Ny)
	o.Sol.Zet = make([]float64, o.Ny)
	o.Sol.Chi = make([]float64, o.Ny)
	o.Sol.DynCfs = o.DynCfs

	// linear system
	o.kb = make([]float64, 2*o.Ny)
	o.Kb = mat.NewSymBandDense(o.Ny, 1, o.kb)
	o.Fb = make([]float64, o.Ny)
	o.Wb = make([]float64, o.Ny)
	o.fbv = mat.NewVecDense(o.Ny, o.Fb)
	o.wbv = mat.NewVecDense(o.Ny, o.Wb)

	// solver
	kind := sim.Solver.Type
	if kind == "" {
		kind = "imp"
		if o.Linear {
			kind = "lin-imp"
		}
	}
	o.Solver, err = GetSolver(kind)
	if err != nil {
		return nil, err
	}
	return o, o.SetIniVals()
}

// SetIniVals zeroes the solution, sets the base motion at t = 0, computes the
// initial accelerations and records the first output
func (o *Domain) SetIniVals() (err error) {

	// zero solution
	for i := 0; i < o.Ny; i++ {
		o.Sol.Y[i], o.Sol.Dydt[i], o.Sol.D2ydt2[i], o.Sol.ΔY[i] = 0, 0, 0, 0
	}
	o.Sol.T = 0
	o.Nit = o.Nit[:0]
	o.Warnings = nil
	o.State = Initialized
	o.FailStep, o.FailResid = 0, 0

	// base
	if o.Exc.Kind == Rigid {
		o.Sol.Y[0] = o.Exc.Disp[0]
		o.Sol.Dydt[0] = o.Exc.Vel[0]
		o.Sol.D2ydt2[0] = o.Exc.Acc[0]
	}

	// initial accelerations: a = (F - C v - K u) / m
	err = o.assemble_rhs(0)
	if err != nil {
		return
	}
	for i := o.first_free(); i < o.Ny; i++ {
		o.Sol.D2ydt2[i] += o.Fb[i] / o.Mass[i]
	}

	// history
	o.Hist = NewHistory(o)
	o.Hist.Record(o, 0)
	return
}

// Run runs the time integration
func (o *Domain) Run() (err error) {
	o.State = Stepping
	err = o.Solver.Run(o)
	if err != nil {
		o.State = Failed
		return
	}
	o.State = Completed
	o.Hist.SetPeaks(o)
	return
}

// NewPass updates the properties of iterative models with the peaks of the last pass and returns the
// largest relative change of moduli. SetIniVals must be called before running the next pass
func (o *Domain) NewPass() (change float64) {
	for _, e := range o.ElemIntvars {
		change = math.Max(change, e.NewPass())
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// first_free returns the first equation that is not prescribed
func (o Domain) first_free() int {
	if o.Exc.Kind == Rigid {
		return 1
	}
	return 0
}

// star_vars computes starred variables
func (o *Domain) star_vars() {
	dc := o.DynCfs
	for i := 0; i < o.Ny; i++ {
		o.Sol.Zet[i] = dc.α1*o.Sol.Y[i] + dc.α2*o.Sol.Dydt[i] + dc.α3*o.Sol.D2ydt2[i]
		o.Sol.Chi[i] = dc.α4*o.Sol.Y[i] + dc.α5*o.Sol.Dydt[i] + dc.α6*o.Sol.D2ydt2[i]
		o.Sol.ΔY[i] = 0
	}
}

// trial_vars computes velocities and accelerations with the current displacements
func (o *Domain) trial_vars() {
	dc := o.DynCfs
	for i := 0; i < o.Ny; i++ {
		o.Sol.Dydt[i] = dc.α4*o.Sol.Y[i] - o.Sol.Chi[i]
		o.Sol.D2ydt2[i] = dc.α1*o.Sol.Y[i] - o.Sol.Zet[i]
	}
}

// update_y adds δy to y and updates velocities and accelerations
func (o *Domain) update_y(δy []float64) {
	dc := o.DynCfs
	for i := 0; i < o.Ny; i++ {
		o.Sol.Y[i] += δy[i]
		o.Sol.ΔY[i] += δy[i]
		o.Sol.Dydt[i] = dc.α4*o.Sol.Y[i] - o.Sol.Chi[i]
		o.Sol.D2ydt2[i] = dc.α1*o.Sol.Y[i] - o.Sol.Zet[i]
	}
}

// assemble_rhs assembles fb = -R at step; for a rigid base, fb[0] holds the prescribed increment
func (o *Domain) assemble_rhs(step int) (err error) {
	for i := range o.Fb {
		o.Fb[i] = 0
	}
	for _, e := range o.Elems {
		err = e.AddToRhs(o.Fb, o.Sol)
		if err != nil {
			return
		}
	}
	switch o.Exc.Kind {
	case Compliant:
		o.Fb[0] += o.Exc.Force[step] - o.Exc.Dashpot*o.Sol.Dydt[0]
	case Rigid:
		o.Fb[0] = o.Exc.Disp[step] - o.Sol.Y[0]
	}
	return
}

// assemble_kb assembles and factorises the effective tangent
func (o *Domain) assemble_kb(firstIt bool) (err error) {
	for i := range o.kb {
		o.kb[i] = 0
	}
	for _, e := range o.Elems {
		err = e.AddToKb(o.kb, o.Sol, firstIt)
		if err != nil {
			return
		}
	}
	switch o.Exc.Kind {
	case Compliant:
		o.kb[0] += o.DynCfs.α4 * o.Exc.Dashpot
	case Rigid:
		o.kbc = o.kb[1]
		o.kb[0], o.kb[1] = 1, 0
	}
	if !o.chol.Factorize(o.Kb) {
		return &SingularSystemError{Elem: -1}
	}
	return
}

// solve solves Kb⋅wb = fb
func (o *Domain) solve() (err error) {
	if o.Exc.Kind == Rigid && o.Ny > 1 {
		o.Fb[1] -= o.kbc * o.Fb[0]
	}
	err = o.chol.SolveVecTo(o.wbv, o.fbv)
	if err != nil {
		return &SingularSystemError{Elem: -1}
	}
	return
}

// update_elems updates stresses in all elements
func (o *Domain) update_elems() (err error) {
	for _, e := range o.Elems {
		err = e.Update(o.Sol)
		if err != nil {
			return
		}
	}
	return
}

// largest_fb returns the largest absolute component of fb at free nodes
func (o Domain) largest_fb() (largest float64) {
	for i := o.first_free(); i < o.Ny; i++ {
		if math.IsNaN(o.Fb[i]) {
			return math.NaN()
		}
		largest = math.Max(largest, math.Abs(o.Fb[i]))
	}
	return
}

// rms_error computes the RMS norm of δu scaled by atol + rtol·|u|
func (o Domain) rms_error(δu []float64) float64 {
	var sum float64
	for i := 0; i < o.Ny; i++ {
		r := δu[i] / (o.Sim.Solver.Atol + o.Sim.Solver.Rtol*math.Abs(o.Sol.Y[i]))
		sum += r * r
	}
	return math.Sqrt(sum / float64(o.Ny))
}

// end_step checks the solution, overwrites the base motion of rigid bases and records output
func (o *Domain) end_step(step, nit int, largFb float64) (err error) {

	// rigid base
	if o.Exc.Kind == Rigid {
		o.Sol.Y[0] = o.Exc.Disp[step]
		o.Sol.Dydt[0] = o.Exc.Vel[step]
		o.Sol.D2ydt2[0] = o.Exc.Acc[step]
	}

	// check stability
	umax := o.Sim.Solver.Umax
	for i := 0; i < o.Ny; i++ {
		u := o.Sol.Y[i]
		if math.IsNaN(u) || math.IsInf(u, 0) || math.IsNaN(o.Sol.D2ydt2[i]) || (umax > 0 && math.Abs(u) > umax) {
			return o.failure(step, largFb)
		}
	}

	// statistics
	if o.Sim.Data.Stat {
		o.Nit = append(o.Nit, nit)
	}
	o.met.Step(o.Dir, nit)

	// peaks and output
	for _, e := range o.ElemOut {
		e.RecordPeaks()
	}
	o.Hist.Record(o, step)
	return
}

// failure returns an integration error for step
func (o *Domain) failure(step int, largFb float64) error {
	o.FailStep, o.FailResid = step, largFb
	e := &IntegrationError{Dir: o.Dir, Step: step, LastStable: step - 1, Time: o.Exc.Time(step), Residual: largFb}
	o.log.Error("integration failed",
		zap.String("dir", o.Dir),
		zap.Int("step", step),
		zap.Float64("time", e.Time),
		zap.Float64("residual", largFb))
	return e
}

// not_converged records a warning for step
func (o *Domain) not_converged(step, nit int, largFb float64) {
	w := &NonConvergenceWarning{Dir: o.Dir, Step: step, Time: o.Exc.Time(step), Residual: largFb, Nit: nit}
	o.Warnings = append(o.Warnings, w)
	o.met.NonConverged(o.Dir)
	o.log.Warn("iterations did not converge",
		zap.String("dir", o.Dir),
		zap.Int("step", step),
		zap.Float64("time", w.Time),
		zap.Float64("residual", largFb),
		zap.Int("nit", nit))
	if o.Sim.Data.Verbose {
		io.Pforan("%s: max number of iterations reached at step %d: it = %d\n", o.Dir, step, nit)
	}
}
