// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON or YAML file
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/ilyakaznacheev/cleanenv"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc" yaml:"desc"`                             // description of simulation
	DirOut  string `json:"dirout" yaml:"dirout" env:"SRM_DIROUT"`        // directory for output; e.g. /tmp/siteresp
	Encoder string `json:"encoder" yaml:"encoder" env:"SRM_ENCODER"`     // encoder name; e.g. "gob" "json"
	Mode    string `json:"mode" yaml:"mode" env:"SRM_MODE"`              // analysis mode: "test" (linear) or "total" (total stress)
	Verbose bool   `json:"verbose" yaml:"verbose" env:"SRM_VERBOSE"`     // show messages
	ShowR   bool   `json:"showr" yaml:"showr"`                           // show residuals
	Stat    bool   `json:"stat" yaml:"stat"`                             // save number of iterations of each step in summary
	Alias   string `json:"alias" yaml:"alias"`                           // word to add to filename key
}

// MeshData holds the parameters controlling the discretisation of the soil column
type MeshData struct {
	Fmax      float64 `json:"fmax" yaml:"fmax" env:"SRM_FMAX"`                // maximum frequency of interest [Hz]
	Nmin      int     `json:"nmin" yaml:"nmin" env:"SRM_NMIN"`                // minimum number of nodes per wavelength
	SoilModel string  `json:"soilmodel" yaml:"soilmodel" env:"SRM_SOILMODEL"` // soil model of all layers; empty => from layers data
}

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	Type       string  `json:"type" yaml:"type"`             // solver type: {lin-imp, imp}; empty => lin-imp for linear models and imp otherwise
	NmaxIt     int     `json:"nmaxit" yaml:"nmaxit"`         // number of max iterations
	Atol       float64 `json:"atol" yaml:"atol"`             // absolute tolerance
	Rtol       float64 `json:"rtol" yaml:"rtol"`             // relative tolerance
	FbTol      float64 `json:"fbtol" yaml:"fbtol"`           // tolerance for convergence on fb
	FbMin      float64 `json:"fbmin" yaml:"fbmin"`           // minimum value of fb
	CteTg      bool    `json:"ctetg" yaml:"ctetg"`           // use constant tangent (modified Newton) during iterations
	MaxNonConv int     `json:"maxnonconv" yaml:"maxnonconv"` // number of non-converged steps tolerated before flagging the run

	// time stepping
	Nsub  int     `json:"nsub" yaml:"nsub"`   // number of analysis steps per motion step
	DtOut float64 `json:"dtout" yaml:"dtout"` // time step for output; 0 => every step
	Umax  float64 `json:"umax" yaml:"umax"`   // displacements larger than this indicate instability [m]

	// dynamics
	Theta1 float64 `json:"theta1" yaml:"theta1"` // Newmark's method parameter (γ)
	Theta2 float64 `json:"theta2" yaml:"theta2"` // Newmark's method parameter (2β)

	// damping
	NoDamp bool    `json:"nodamp" yaml:"nodamp"` // switch off Rayleigh damping (α = β = 0)
	DampF1 float64 `json:"dampf1" yaml:"dampf1"` // first control frequency; 0 => fundamental frequency of column
	DampF2 float64 `json:"dampf2" yaml:"dampf2"` // second control frequency; 0 => 3 × first frequency

	// equivalent linear passes
	EqlTol     float64 `json:"eqltol" yaml:"eqltol"`         // tolerance on relative change of moduli
	EqlMaxPass int     `json:"eqlmaxpass" yaml:"eqlmaxpass"` // max number of passes

	// constants
	Eps float64 `json:"eps" yaml:"eps"` // smallest number satisfying 1.0 + ϵ > 1.0

	// derived
	Itol float64 `json:"-" yaml:"-"` // iterations tolerance
}

// SiteData holds the soil profile. Layers are listed from the surface downwards
type SiteData struct {
	Layers []LayerData `json:"layers" yaml:"layers"` // soil layers; first is at the surface
	Rock   *RockData   `json:"rock" yaml:"rock"`     // elastic half-space; nil => rigid base
}

// MotionData holds the input motion files
type MotionData struct {
	X     string  `json:"x" yaml:"x"`         // file with motion in x direction
	Z     string  `json:"z" yaml:"z"`         // file with motion in z direction; empty => same as x
	Kind  string  `json:"kind" yaml:"kind"`   // "acc" or "vel"
	Dt    float64 `json:"dt" yaml:"dt"`       // time step for one-column files
	Scale float64 `json:"scale" yaml:"scale"` // multiplier to convert to SI units
	BBP   string  `json:"bbp" yaml:"bbp"`     // Broadband Platform velocity file (cm/s); replaces x and z
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data    Data       `json:"data" yaml:"data"`       // stores global simulation data
	Mesh    MeshData   `json:"mesh" yaml:"mesh"`       // mesh generation data
	Solver  SolverData `json:"solver" yaml:"solver"`   // solver data
	Site    SiteData   `json:"site" yaml:"site"`       // soil profile
	Motions MotionData `json:"motions" yaml:"motions"` // input motions

	// derived
	Key     string `json:"-" yaml:"-"` // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType string `json:"-" yaml:"-"` // encoder type
	DirOut  string `json:"-" yaml:"-"` // directory to save results
	DirIn   string `json:"-" yaml:"-"` // directory of input file
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.Encoder = "gob"
	o.Mode = "test"
}

// SetDefault sets default values
func (o *MeshData) SetDefault() {
	o.Fmax = 50
	o.Nmin = 10
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {

	// nonlinear solver
	o.NmaxIt = 20
	o.Atol = 1e-6
	o.Rtol = 1e-6
	o.FbTol = 1e-8
	o.FbMin = 1e-14
	o.MaxNonConv = 10

	// time stepping
	o.Nsub = 1
	o.Umax = 1e3

	// dynamics: average acceleration
	o.Theta1 = 0.5
	o.Theta2 = 0.5

	// equivalent linear
	o.EqlTol = 0.02
	o.EqlMaxPass = 10

	// constants
	o.Eps = 1e-16
}

// PostProcess computes derived values and checks the data
func (o *SolverData) PostProcess() error {
	if o.Theta1 < 0.5 || o.Theta2 < o.Theta1 {
		return chk.Err("Newmark parameters θ1 = %g and θ2 = %g do not give an unconditionally stable method; θ1 ≥ 0.5 and θ2 ≥ θ1 are required", o.Theta1, o.Theta2)
	}
	if o.NmaxIt < 1 {
		return chk.Err("nmaxit must be at least 1. %d is invalid", o.NmaxIt)
	}
	if o.Nsub < 1 {
		o.Nsub = 1
	}
	if o.Type != "" && o.Type != "imp" && o.Type != "lin-imp" {
		return chk.Err("solver type must be \"imp\" or \"lin-imp\". %q is invalid", o.Type)
	}
	if o.Rtol <= 0 {
		return chk.Err("rtol must be positive. %g is invalid", o.Rtol)
	}
	o.Itol = math.Max(10.0*o.Eps/o.Rtol, math.Min(0.01, math.Sqrt(o.Rtol)))
	return nil
}

// NewSimulation returns a simulation with default values and no site or motions data
func NewSimulation(key, dirout string) *Simulation {
	var o Simulation
	o.Data.SetDefault()
	o.Mesh.SetDefault()
	o.Solver.SetDefault()
	o.Solver.PostProcess()
	o.Key = key
	o.Data.DirOut = dirout
	o.DirOut = dirout
	o.EncType = o.Data.Encoder
	return &o
}

// ReadSim reads all simulation data from a .sim (JSON) or .yaml file.
// Environment variables (SRM_DIROUT, SRM_FMAX, ...) override values in the file
func ReadSim(simfilepath, alias string) (*Simulation, error) {

	// new sim with default values
	var o Simulation
	o.Data.SetDefault()
	o.Mesh.SetDefault()
	o.Solver.SetDefault()

	// read file and environment
	var err error
	if strings.ToLower(filepath.Ext(simfilepath)) == ".sim" {
		var b []byte
		b, err = os.ReadFile(os.ExpandEnv(simfilepath))
		if err == nil {
			err = json.Unmarshal(b, &o)
		}
		if err == nil {
			err = cleanenv.ReadEnv(&o)
		}
	} else {
		err = cleanenv.ReadConfig(simfilepath, &o)
	}
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	o.DirIn = os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))
	if alias == "" {
		alias = o.Data.Alias
	}
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/siteresp/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// mode
	if o.Data.Mode != "test" && o.Data.Mode != "total" {
		return nil, chk.Err("ReadSim: mode must be \"test\" or \"total\". %q is invalid", o.Data.Mode)
	}

	// set solver constants
	err = o.Solver.PostProcess()
	if err != nil {
		return nil, chk.Err("ReadSim: invalid solver data:\n%v", err)
	}
	return &o, nil
}

// GetLayering returns the site layering; layers are reversed to the bedrock-to-surface order
func (o Simulation) GetLayering() (*SiteLayering, error) {
	n := len(o.Site.Layers)
	layers := make([]LayerData, n)
	for i, l := range o.Site.Layers {
		layers[n-1-i] = l
	}
	return NewSiteLayering(layers, o.Site.Rock)
}

// GetMotions reads the input motions
func (o Simulation) GetMotions() (mx, mz *OutcropMotion, err error) {
	if o.Motions.BBP != "" {
		var b *BBP
		b, err = ReadBBP(o.Path(o.Motions.BBP))
		if err != nil {
			return
		}
		return b.Motions(o.Motions.Scale)
	}
	if o.Motions.X == "" {
		return nil, nil, chk.Err("GetMotions: file with motion in x direction must be given")
	}
	kind := o.Motions.Kind
	if kind == "" {
		kind = "acc"
	}
	if kind != "acc" && kind != "vel" {
		return nil, nil, chk.Err("GetMotions: kind must be \"acc\" or \"vel\". %q is invalid", kind)
	}
	mx, err = ReadMotion(o.Path(o.Motions.X), "x", kind, o.Motions.Dt, o.Motions.Scale)
	if err != nil {
		return
	}
	fz := o.Motions.Z
	if fz == "" {
		fz = o.Motions.X
	}
	mz, err = ReadMotion(o.Path(fz), "z", kind, o.Motions.Dt, o.Motions.Scale)
	return
}

// Path returns fn relative to the directory of the input file, unless fn is absolute
func (o Simulation) Path(fn string) string {
	fn = os.ExpandEnv(fn)
	if filepath.IsAbs(fn) || o.DirIn == "" {
		return fn
	}
	return filepath.Join(o.DirIn, fn)
}
