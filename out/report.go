// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// DirReport holds the main results of one direction
type DirReport struct {
	PGA       float64 `yaml:"pga"`        // peak surface acceleration [m/s²]
	PGV       float64 `yaml:"pgv"`        // peak surface velocity [m/s]
	PGD       float64 `yaml:"pgd"`        // peak surface displacement [m]
	BasePGA   float64 `yaml:"base_pga"`   // peak base acceleration [m/s²]
	PGARatio  float64 `yaml:"pga_ratio"`  // PGA / BasePGA
	MMI       float64 `yaml:"mmi"`        // intensity from PGV
	MaxStrain float64 `yaml:"max_strain"` // largest shear strain
	MaxStress float64 `yaml:"max_stress"` // largest shear stress [Pa]
	PeakFreq  float64 `yaml:"peak_freq"`  // frequency of largest spectral ratio [Hz]
	PeakRatio float64 `yaml:"peak_ratio"` // largest (smoothed) spectral ratio
}

// Report holds the main results of a run
type Report struct {
	RunId      string               `yaml:"run_id"`
	Key        string               `yaml:"key"`
	Mode       string               `yaml:"mode"`
	Code       string               `yaml:"code"`
	Rigid      bool                 `yaml:"rigid_base"`
	Nnodes     int                  `yaml:"nnodes"`
	Ncells     int                  `yaml:"ncells"`
	Dt         float64              `yaml:"dt"`
	Npasses    int                  `yaml:"npasses"`
	Warnings   int                  `yaml:"warnings"`
	Directions map[string]DirReport `yaml:"directions"`
}

// report settings
var (
	ReportBandwidth = 40.0 // Konno-Ohmachi bandwidth of spectral ratios
	ReportFmin      = 0.1  // lowest frequency searched for the peak ratio [Hz]
	ReportFmax      = 25.0 // highest frequency searched for the peak ratio [Hz]
)

// NewReport builds the report of a run
func NewReport(res *Results) (o *Report, err error) {
	s := res.Sum
	o = &Report{
		RunId:      s.RunId,
		Key:        s.Key,
		Mode:       s.Mode,
		Code:       s.Code,
		Rigid:      s.Rigid,
		Nnodes:     s.Nnodes,
		Ncells:     s.Ncells,
		Dt:         s.Dt,
		Npasses:    s.Npasses,
		Warnings:   len(s.Warnings),
		Directions: make(map[string]DirReport),
	}
	for _, d := range s.Dirs {
		h, e := res.History(d)
		if e != nil {
			return nil, e
		}
		p := s.Peaks[d]
		r := DirReport{
			PGA:       p.SurfAcc,
			PGV:       p.SurfVel,
			PGD:       p.SurfDisp,
			BasePGA:   p.BaseAcc,
			MMI:       MMI(100.0 * p.SurfVel),
			MaxStrain: p.MaxStrain,
			MaxStress: p.MaxStress,
		}
		if p.BaseAcc > 0 {
			r.PGARatio = p.SurfAcc / p.BaseAcc
		}
		if h.Nout() > 1 {
			freq, ratio, e := Amplification(h.Base("a"), h.Surface("a"), h.Dt(), ReportBandwidth)
			if e != nil {
				return nil, chk.Err("cannot compute spectral ratio of direction %q:\n%v", d, e)
			}
			r.PeakFreq, r.PeakRatio = PeakRatio(freq, ratio, ReportFmin, ReportFmax)
		}
		o.Directions[d] = r
	}
	return
}

// WriteYAML writes the report to a YAML file
func (o Report) WriteYAML(fn string) (err error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err = enc.Encode(o)
	if err == nil {
		err = enc.Close()
	}
	if err != nil {
		return chk.Err("cannot encode report:\n%v", err)
	}
	err = os.WriteFile(fn, buf.Bytes(), 0644)
	if err != nil {
		return chk.Err("cannot write report %q:\n%v", fn, err)
	}
	return
}

// ReadReport reads a report written by WriteYAML
func ReadReport(fn string) (o *Report, err error) {
	b, err := os.ReadFile(os.ExpandEnv(fn))
	if err != nil {
		return nil, chk.Err("cannot read report %q:\n%v", fn, err)
	}
	o = new(Report)
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode report %q:\n%v", fn, err)
	}
	return
}
