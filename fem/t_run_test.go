// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/siteresp/inp"
	"github.com/cpmech/siteresp/msolid"
	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// newsim returns a simulation writing json files into a temporary directory
func newsim(tst *testing.T, key string) *inp.Simulation {
	sim := inp.NewSimulation(key, tst.TempDir())
	sim.Data.Encoder = "json"
	sim.EncType = "json"
	sim.Mesh.Fmax = 10
	return sim
}

func Test_run01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run01. motions with different time steps")

	sim := newsim(tst, "baddt")
	model := NewSiteResponseModel(sim, twolayer(tst, 0.05, nil), sine(tst, "x", 1, 1, 0.01, 1), sine(tst, "z", 1, 1, 0.02, 1))
	for _, run := range []func() ResultCode{model.RunTestModel, model.RunTotalStressModel} {
		require.Equal(tst, MeshError, run())
		require.Equal(tst, MeshError, model.Code())

		var e *IncompatibleTimeStepError
		require.True(tst, errors.As(model.Err(), &e))
		chk.Float64(tst, "dtx", 1e-17, e.DtX, 0.01)
		chk.Float64(tst, "dtz", 1e-17, e.DtZ, 0.02)
		require.Nil(tst, model.Mesh)
		require.Nil(tst, model.Domains)
		require.Nil(tst, model.Result("x"))
		require.Empty(tst, model.Files)
	}
	_, err := os.Stat(model.OutputDir())
	require.True(tst, os.IsNotExist(err) || isEmptyDir(tst, model.OutputDir()))
}

// isEmptyDir tells whether dir has no entries
func isEmptyDir(tst *testing.T, dir string) bool {
	entries, err := os.ReadDir(dir)
	require.NoError(tst, err)
	return len(entries) == 0
}

func Test_run02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run02. output files")

	sim := newsim(tst, "files")
	mx := sine(tst, "x", 0.5, 2, 0.01, 2)
	mz := sine(tst, "z", 0.25, 2, 0.01, 2)
	model := NewSiteResponseModel(sim, twolayer(tst, 0.05, nil), mx, mz)
	require.Equal(tst, Success, model.RunTestModel(), "err=%v", model.Err())
	require.NoError(tst, model.Err())
	require.NotEmpty(tst, model.RunId)

	// files
	require.Len(tst, model.Files, 10)
	for _, fn := range model.Files {
		_, err := os.Stat(fn)
		require.NoError(tst, err, fn)
	}
	dir := model.OutputDir()
	require.FileExists(tst, filepath.Join(dir, "files_sum.json"))
	require.FileExists(tst, filepath.Join(dir, "files_x_nod.json"))
	require.FileExists(tst, filepath.Join(dir, "files_z_surface.dat"))
	require.FileExists(tst, filepath.Join(dir, "files_x_profile.dat"))

	// summary
	sum, err := ReadSum(dir, "files", "json")
	require.NoError(tst, err)
	require.Equal(tst, model.RunId, sum.RunId)
	require.Equal(tst, "Success", sum.Code)
	require.Equal(tst, ModeTest, sum.Mode)
	require.Equal(tst, []string{"x", "z"}, sum.Dirs)
	require.True(tst, sum.Rigid)
	chk.Int(tst, "nlayers", sum.Nlayers, 2)
	chk.Int(tst, "nnodes", sum.Nnodes, model.Mesh.Nnodes())
	chk.Int(tst, "nsteps", sum.Nsteps, 200)
	chk.Int(tst, "npasses", sum.Npasses, 1)
	chk.Float64(tst, "dt", 1e-15, sum.Dt, 0.01)
	chk.Float64(tst, "x: base acc", 1e-12, sum.Peaks["x"].BaseAcc, mx.Peak())
	chk.Float64(tst, "z: base acc", 1e-12, sum.Peaks["z"].BaseAcc, mz.Peak())
	chk.Float64(tst, "z/x: surface acc", 1e-12, sum.Peaks["z"].SurfAcc/sum.Peaks["x"].SurfAcc, 0.5)

	// history
	hx, err := ReadHistory(dir, "files", "json", "x")
	require.NoError(tst, err)
	h := model.Result("x")
	require.NotNil(tst, h)
	chk.Int(tst, "nout", hx.Nout(), 201)
	chk.Array(tst, "T", 1e-15, hx.T, h.T)
	chk.Array(tst, "surface u", 1e-15, hx.Surface("u"), h.Surface("u"))
	chk.Array(tst, "peak strain", 1e-15, hx.PeakStrain, h.PeakStrain)

	// surface table
	b, err := os.ReadFile(filepath.Join(dir, "files_x_surface.dat"))
	require.NoError(tst, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	chk.Int(tst, "surface lines", len(lines), 2+201)

	// metrics
	chk.Float64(tst, "steps x", 1e-15, testutil.ToFloat64(model.Metrics.steps.WithLabelValues("x")), 200)
	chk.Float64(tst, "iterations z", 1e-15, testutil.ToFloat64(model.Metrics.iterations.WithLabelValues("z")), 200)
	b, err = os.ReadFile(filepath.Join(dir, "files_metrics.prom"))
	require.NoError(tst, err)
	require.Contains(tst, string(b), "siteresp_steps_total")
}

func Test_run03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run03. output interval and iteration statistics")

	sim := newsim(tst, "dtout")
	sim.Solver.DtOut = 0.05
	sim.Data.Stat = true
	model := NewSiteResponseModel(sim, twolayer(tst, 0.05, nil), sine(tst, "x", 1, 2, 0.01, 2), sine(tst, "z", 1, 2, 0.01, 2))
	require.Equal(tst, Success, model.Run(), "err=%v", model.Err())

	h := model.Result("z")
	chk.Int(tst, "nout", h.Nout(), 41)
	chk.Float64(tst, "dt", 1e-14, h.Dt(), 0.05)
	chk.Float64(tst, "tf", 1e-14, h.T[h.Nout()-1], 2)
	require.Len(tst, model.Summary.Nit["x"], 200)
	require.Len(tst, model.Summary.OutTimes, 41)
}

func Test_run04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run04. nonlinear (mkz) total stress analysis")

	sim := newsim(tst, "mkz")
	sim.Data.Mode = ModeTotal
	lay := twolayer(tst, 0.02, nil)
	model := NewSiteResponseModel(sim, lay, sine(tst, "x", 2, 2, 0.005, 3), sine(tst, "z", 1, 2, 0.005, 3))
	require.Equal(tst, Success, model.Run(), "err=%v", model.Err())
	require.Equal(tst, "mkz", model.Mesh.Cells[0].Model)
	_, ok := model.Domains[0].Solver.(*SolverImplicit)
	require.True(tst, ok)
	require.False(tst, model.Domains[0].Linear)

	// peak stresses are below the elastic ones
	for _, dir := range []string{"x", "z"} {
		h := model.Result(dir)
		require.NotNil(tst, h)
		for e, cell := range model.Mesh.Cells {
			G := lay.Layer(cell.Layer).ShearModulus()
			if h.PeakStrain[e] <= 0 {
				tst.Errorf("%s: peak strain of element %d is not positive", dir, e)
				return
			}
			if h.PeakStress[e] > G*h.PeakStrain[e]*(1+1e-9) {
				tst.Errorf("%s: element %d: τmax = %g is larger than G γmax = %g", dir, e, h.PeakStress[e], G*h.PeakStrain[e])
				return
			}
		}
	}
	require.Greater(tst, model.Summary.Peaks["x"].MaxStrain, model.Summary.Peaks["z"].MaxStrain)
}

func Test_run05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run05. bounding surface model on elastic rock")

	su := 3e4
	lay, err := inp.NewSiteLayering([]inp.LayerData{
		{Name: "clay", Thick: 20, Rho: 1800, Vs: 150, Xi: 0.02, Su: su, Model: "bsurf"},
	}, &inp.RockData{Rho: 2400, Vs: 800})
	require.NoError(tst, err)

	sim := newsim(tst, "bsurf")
	model := NewSiteResponseModel(sim, lay, sine(tst, "x", 1.5, 2, 0.005, 3), sine(tst, "z", 0.5, 2, 0.005, 3))
	code := model.RunTotalStressModel()
	require.Contains(tst, []ResultCode{Success, NonConvergence}, code, "err=%v", model.Err())
	require.Equal(tst, "bsurf", model.Mesh.Cells[0].Model)
	require.False(tst, model.Summary.Rigid)

	for _, dir := range []string{"x", "z"} {
		p := model.Summary.Peaks[dir]
		if p.MaxStress > su*(1+1e-12) {
			tst.Errorf("%s: τmax = %g exceeds the shear strength %g", dir, p.MaxStress, su)
		}
		require.Greater(tst, p.MaxStrain, 0.0)
	}
}

func Test_run06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run06. equivalent linear passes")

	sim := newsim(tst, "eqlin")
	sim.Mesh.SoilModel = "eqlin"
	sim.Solver.EqlMaxPass = 8
	model := NewSiteResponseModel(sim, twolayer(tst, 0.02, nil), sine(tst, "x", 1, 1, 0.01, 5), sine(tst, "z", 1, 1, 0.01, 5))
	require.Equal(tst, Success, model.RunTotalStressModel(), "err=%v", model.Err())
	require.True(tst, model.Domains[0].Iterative)
	require.True(tst, model.Domains[0].Linear)
	require.GreaterOrEqual(tst, model.Summary.Npasses, 2)
	require.LessOrEqual(tst, model.Summary.Npasses, 8)
	chk.Float64(tst, "passes", 1e-15, testutil.ToFloat64(model.Metrics.passes), float64(model.Summary.Npasses))

	// test mode ignores the equivalent linear model
	require.Equal(tst, Success, model.RunTestModel(), "err=%v", model.Err())
	chk.Int(tst, "npasses (test)", model.Summary.Npasses, 1)
	require.Equal(tst, "elast", model.Mesh.Cells[0].Model)
}

func Test_run07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run07. instability is reported and nothing is written")

	sim := newsim(tst, "unstable")
	sim.Solver.Umax = 1e-9
	model := NewSiteResponseModel(sim, twolayer(tst, 0.05, nil), sine(tst, "x", 1, 2, 0.01, 1), sine(tst, "z", 1, 2, 0.01, 1))
	require.Equal(tst, IntegrationFailure, model.RunTestModel())

	var e *IntegrationError
	require.True(tst, errors.As(model.Err(), &e))
	require.Greater(tst, e.Step, 0)
	chk.Int(tst, "last stable", e.LastStable, e.Step-1)
	require.Empty(tst, model.Files)
	require.Nil(tst, model.Summary)
	require.Nil(tst, model.Result("x"))
	require.NoFileExists(tst, filepath.Join(sim.DirOut, "unstable_sum.json"))
	failed := false
	for _, d := range model.Domains {
		if d != nil && d.State == Failed {
			failed = true
		}
	}
	require.True(tst, failed)
}

func Test_run08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run08. too many non-converged steps")

	sim := newsim(tst, "nonconv")
	sim.Data.Mode = ModeTotal
	sim.Solver.NmaxIt = 1
	sim.Solver.MaxNonConv = 10
	model := NewSiteResponseModel(sim, twolayer(tst, 0.02, nil), sine(tst, "x", 2, 2, 0.01, 1), sine(tst, "z", 2, 2, 0.01, 1))
	require.Equal(tst, NonConvergence, model.Run())

	var w *NonConvergenceWarning
	require.True(tst, errors.As(model.Err(), &w))
	require.Greater(tst, len(model.Warnings()), 10)
	require.NotEmpty(tst, model.Files)

	sum, err := ReadSum(sim.DirOut, "nonconv", "json")
	require.NoError(tst, err)
	require.Equal(tst, "NonConvergence", sum.Code)
	chk.Int(tst, "warnings", len(sum.Warnings), len(model.Warnings()))
	require.NotNil(tst, model.Result("x"))
}

func Test_run09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run09. output directory cannot be created")

	tmp := tst.TempDir()
	blocker := filepath.Join(tmp, "file")
	require.NoError(tst, os.WriteFile(blocker, []byte("x"), 0644))

	sim := newsim(tst, "nowrite")
	model := NewSiteResponseModel(sim, twolayer(tst, 0.05, nil), sine(tst, "x", 1, 2, 0.01, 0.5), sine(tst, "z", 1, 2, 0.01, 0.5))
	model.SetOutputDir(filepath.Join(blocker, "sub"))
	require.Equal(tst, filepath.Join(blocker, "sub"), model.OutputDir())
	require.Equal(tst, OutputError, model.RunTestModel())
	require.Error(tst, model.Err())
	require.Empty(tst, model.Files)

	// results are still available in memory
	require.NotNil(tst, model.Result("x"))

	// a later successful run clears the error
	model.SetOutputDir(filepath.Join(tmp, "ok"))
	require.Equal(tst, Success, model.RunTestModel())
	require.Equal(tst, Success, model.Code())
	require.NoError(tst, model.Err())
	require.NotEmpty(tst, model.Files)
}

func Test_run10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run10. single active run")

	sim := newsim(tst, "busy")
	model := NewSiteResponseModel(sim, twolayer(tst, 0.05, nil), zeros(tst, "x", 0.01, 11), zeros(tst, "z", 0.01, 11))
	require.Equal(tst, Success, model.RunTestModel())

	model.busy.Store(true)
	require.Equal(tst, AssemblyError, model.RunTestModel())
	require.Equal(tst, Success, model.Code())
	require.NotNil(tst, model.Result("x"))
	model.busy.Store(false)

	// result codes
	require.Equal(tst, "IntegrationFailure", IntegrationFailure.String())
	require.Equal(tst, MeshError, ResultCodeOf(&InvalidLayerError{Index: 0, Name: "a", Reason: "b"}))
	require.Equal(tst, AssemblyError, ResultCodeOf(errors.Wrap(&SingularSystemError{Elem: 1}, "wrapped")))
	require.Equal(tst, Success, ResultCodeOf(nil))
}

// softening is a linear model whose tangent becomes negative below a shear modulus of 1e8
type softening struct {
	G float64
}

func init() {
	msolid.Register("softening", func() msolid.OnedSolid { return new(softening) })
}

func (o *softening) Init(prms dbf.Params) error {
	for _, p := range prms {
		if p.N == "G" {
			o.G = p.V
		}
	}
	return nil
}

func (o softening) GetPrms() dbf.Params { return dbf.Params{&dbf.P{N: "G", V: 1e8}} }

func (o softening) InitIntVars() (*msolid.OnedState, error) { return msolid.NewOnedState(0), nil }

func (o softening) Update(s *msolid.OnedState, Δγ float64) error {
	s.Eps += Δγ
	s.Sig = o.G * s.Eps
	return nil
}

func (o softening) CalcD(s *msolid.OnedState, firstIt bool) (float64, error) {
	if o.G < 1e8 {
		return -o.G, nil
	}
	return o.G, nil
}

func (o softening) Damping(s *msolid.OnedState) (G, ξ float64) { return o.G, 0.02 }

func Test_run11(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run11. singular system")

	// the soft layer on top has a negative tangent
	sim := newsim(tst, "singular")
	sim.Mesh.SoilModel = "softening"
	lay := twolayer(tst, 0.05, nil)
	model := NewSiteResponseModel(sim, lay, sine(tst, "x", 1, 2, 0.01, 0.5), sine(tst, "z", 1, 2, 0.01, 0.5))
	require.Equal(tst, AssemblyError, model.RunTotalStressModel())
	require.Equal(tst, AssemblyError, ResultCodeOf(model.Err()))

	var e *SingularSystemError
	require.True(tst, errors.As(model.Err(), &e), "err=%v", model.Err())
	first := -1
	for _, c := range model.Mesh.Cells {
		if c.Layer == 1 {
			first = c.Id
			break
		}
	}
	require.GreaterOrEqual(tst, first, 0)
	chk.Int(tst, "element", e.Elem, first)
	chk.Float64(tst, "modulus", 1e-6, e.Modulus, -lay.Layer(1).ShearModulus())
	require.Empty(tst, model.Files)
	require.Nil(tst, model.Result("x"))
	require.True(tst, isEmptyDir(tst, model.OutputDir()))

	// element with a NaN tangent
	msh, err := BuildMesh(lay, DefaultMeshConfig())
	require.NoError(tst, err)
	damp, err := NewRayleigh(lay, &sim.Solver)
	require.NoError(tst, err)
	cell := &msh.Cells[3]
	ele, err := NewElem("shear", cell, msh, lay, damp)
	require.NoError(tst, err)
	shear := ele.(*ShearElem)
	shear.Model = &softening{G: math.NaN()}
	var dc DynCoefs
	require.NoError(tst, dc.Init(&sim.Solver))
	require.NoError(tst, dc.Calc(0.01))
	err = shear.AddToKb(make([]float64, 2*msh.Nnodes()), &Solution{DynCfs: &dc}, true)
	require.True(tst, errors.As(err, &e))
	chk.Int(tst, "element", e.Elem, 3)
	require.True(tst, math.IsNaN(e.Modulus))
}
