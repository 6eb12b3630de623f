// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the finite element analysis of a soil column under vertically propagating shear waves
package fem

import (
	"sync/atomic"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/inp"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// analysis modes
const (
	ModeTest  = "test"  // linear elastic layers
	ModeTotal = "total" // nonlinear total stress
)

// SiteResponseModel runs the analysis of a soil column shaken at its base by two
// horizontal outcrop motions. The x and z directions are independent
type SiteResponseModel struct {

	// input
	Sim *inp.Simulation   // simulation data
	Lay inp.SiteLayering  // layering
	Mx  inp.OutcropMotion // outcrop motion in x direction
	Mz  inp.OutcropMotion // outcrop motion in z direction

	// results of last run
	Mesh    *Mesh     // mesh
	Domains []*Domain // [2] x and z domains; nil until the domains are assembled
	Summary *Summary  // summary
	Metrics *Metrics  // counters
	RunId   string    // unique identifier
	Files   []string  // written files

	// auxiliary
	dirout   string                   // output directory
	log      *zap.Logger              // structured logger
	code     ResultCode               // result code of last run
	err      error                    // error of last run
	warnings []*NonConvergenceWarning // non-converged steps of last run
	busy     atomic.Bool              // a run is active
}

// NewSiteResponseModel returns a new model. Layering and motions are copied
func NewSiteResponseModel(sim *inp.Simulation, lay *inp.SiteLayering, mx, mz *inp.OutcropMotion) *SiteResponseModel {
	o := &SiteResponseModel{Sim: sim, Lay: *lay, Mx: *mx, Mz: *mz}
	o.dirout = sim.DirOut
	o.log = zap.NewNop()
	return o
}

// SetOutputDir sets the directory for results. The path is validated when writing
func (o *SiteResponseModel) SetOutputDir(path string) {
	o.dirout = path
}

// OutputDir returns the directory for results
func (o *SiteResponseModel) OutputDir() string { return o.dirout }

// SetLogger sets the structured logger; nil switches logging off
func (o *SiteResponseModel) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	o.log = log
}

// RunTestModel runs the linear analysis with the small strain properties of all layers
func (o *SiteResponseModel) RunTestModel() ResultCode {
	return o.run(ModeTest)
}

// RunTotalStressModel runs the nonlinear total stress analysis
func (o *SiteResponseModel) RunTotalStressModel() ResultCode {
	return o.run(ModeTotal)
}

// Run runs the analysis in the mode given by the simulation data
func (o *SiteResponseModel) Run() ResultCode {
	if o.Sim.Data.Mode == ModeTotal {
		return o.RunTotalStressModel()
	}
	return o.RunTestModel()
}

// Code returns the result code of the last run
func (o *SiteResponseModel) Code() ResultCode { return o.code }

// Err returns the error of the last run; nil on success
func (o *SiteResponseModel) Err() error { return o.err }

// Warnings returns the non-converged steps of the last run
func (o *SiteResponseModel) Warnings() []*NonConvergenceWarning { return o.warnings }

// Result returns the history of direction "x" or "z"; nil if not available
func (o *SiteResponseModel) Result(dir string) *History {
	for _, d := range o.Domains {
		if d != nil && d.Dir == dir && d.State == Completed {
			return d.Hist
		}
	}
	return nil
}

// run performs mesh, assembly, integration and output
func (o *SiteResponseModel) run(mode string) (code ResultCode) {

	// single run at a time; the state of the active run is left untouched
	if !o.busy.CompareAndSwap(false, true) {
		return AssemblyError
	}
	defer o.busy.Store(false)

	// reset
	o.Mesh, o.Domains, o.Summary, o.Files, o.warnings = nil, nil, nil, nil, nil
	o.err, o.code = nil, Success
	o.RunId = uuid.NewString()
	o.Metrics = NewMetrics()
	log := o.log.With(zap.String("run", o.RunId), zap.String("key", o.Sim.Key), zap.String("mode", mode))
	log.Info("run started")
	verbose := o.Sim.Data.Verbose

	// benchmarking
	cputime := time.Now()
	defer func() {
		o.code = code
		o.Metrics.Duration(time.Since(cputime))
		if verbose {
			io.Pf("\nresult     = %v\n", code)
			io.Pfcyan("cpu time   = %v\n", time.Since(cputime))
		}
		if code == Success {
			log.Info("run completed", zap.Duration("elapsed", time.Since(cputime)), zap.Int("warnings", len(o.warnings)))
			return
		}
		log.Error("run failed", zap.Stringer("code", code), zap.Error(o.err))
	}()

	// boundary excitation
	bx, bz, err := Translate(&o.Mx, &o.Mz, &o.Lay, o.Sim.Solver.Nsub)
	if err != nil {
		o.err = errors.Wrap(err, "cannot translate outcrop motions")
		return ResultCodeOf(err)
	}

	// mesh
	cfg := MeshConfig{Fmax: o.Sim.Mesh.Fmax, Nmin: o.Sim.Mesh.Nmin, SoilModel: o.Sim.Mesh.SoilModel, TestMode: mode == ModeTest}
	o.Mesh, err = BuildMesh(&o.Lay, cfg)
	if err != nil {
		o.err = errors.Wrap(err, "cannot build mesh")
		return MeshError
	}
	if verbose {
		io.Pf("number of nodes    = %d\n", o.Mesh.Nnodes())
		io.Pf("number of elements = %d\n", o.Mesh.Ncells())
	}

	// run x and z
	doms := make([]*Domain, 2)
	npasses := make([]int, 2)
	var g errgroup.Group
	for i, exc := range []*BoundaryExcitation{bx, bz} {
		i, exc := i, exc
		g.Go(func() (err error) {
			doms[i], err = NewDomain(o.Sim, &o.Lay, o.Mesh, exc, log, o.Metrics)
			if err != nil {
				return errors.Wrapf(err, "cannot assemble %q domain", exc.Dir)
			}
			npasses[i], err = run_passes(doms[i], mode)
			return
		})
	}
	err = g.Wait()
	o.Domains = doms
	if err != nil {
		o.err = err
		return ResultCodeOf(err)
	}
	o.Metrics.Passes(max(npasses[0], npasses[1]))

	// warnings
	for _, d := range doms {
		o.warnings = append(o.warnings, d.Warnings...)
	}
	code = Success
	if len(o.warnings) > o.Sim.Solver.MaxNonConv {
		code = NonConvergence
		o.err = errors.Wrapf(o.warnings[0], "%d non-converged steps exceed the maximum of %d", len(o.warnings), o.Sim.Solver.MaxNonConv)
	}

	// summary
	o.Summary = o.summary(mode, code, max(npasses[0], npasses[1]), time.Since(cputime))

	// output
	err = o.write()
	if err != nil {
		o.err = errors.Wrap(err, "cannot write results")
		return OutputError
	}
	return
}

// run_passes runs the domain once or, for iterative models in total stress mode,
// until the largest relative change of moduli is smaller than EqlTol
func run_passes(d *Domain, mode string) (npass int, err error) {
	dat := &d.Sim.Solver
	for npass = 1; ; npass++ {
		if npass > 1 {
			err = d.SetIniVals()
			if err != nil {
				return
			}
		}
		err = d.Run()
		if err != nil {
			return
		}
		if mode != ModeTotal || !d.Iterative || npass >= dat.EqlMaxPass {
			return
		}
		change := d.NewPass()
		if d.Sim.Data.Verbose {
			io.Pf("%s: pass %d: change of moduli = %g\n", d.Dir, npass, change)
		}
		if change < dat.EqlTol {
			return
		}
	}
}

// summary builds the summary of a successful run
func (o *SiteResponseModel) summary(mode string, code ResultCode, npasses int, elapsed time.Duration) (s *Summary) {
	s = &Summary{
		RunId:   o.RunId,
		Key:     o.Sim.Key,
		Dirout:  o.dirout,
		Encoder: o.Sim.EncType,
		Mode:    mode,
		Code:    code.String(),
		CPUTime: elapsed.Seconds(),
		Nlayers: o.Lay.Nlayers(),
		Nnodes:  o.Mesh.Nnodes(),
		Ncells:  o.Mesh.Ncells(),
		Rigid:   o.Lay.Rigid(),
		Npasses: npasses,
		Peaks:   make(map[string]Peaks),
		Nit:     make(map[string][]int),
	}
	for _, d := range o.Domains {
		s.Dirs = append(s.Dirs, d.Dir)
		s.Dt = d.Exc.Dt
		s.Nsteps = d.Exc.Npts() - 1
		s.OutTimes = d.Hist.T
		s.Peaks[d.Dir] = peaks(d.Hist)
		if o.Sim.Data.Stat {
			s.Nit[d.Dir] = d.Nit
		}
	}
	for _, w := range o.warnings {
		s.Warnings = append(s.Warnings, *w)
	}
	return
}
