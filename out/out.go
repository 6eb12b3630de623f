// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the post-processing of site response results
package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/siteresp/fem"
)

// constants
var (
	TolT = 1e-3 // tolerance to compare times
)

// Results holds the summary and the nodal histories of one run
type Results struct {
	Sum  *fem.Summary            // summary
	Hist map[string]*fem.History // direction => history

	// selected output times
	TimeInds []int     // selected output indices
	Times    []float64 // selected output times
}

// ReadResults reads the results written by a run.
//  enctype -- "gob" or "json"; empty means the encoder is found from the summary file extension
func ReadResults(dir, fnkey, enctype string) (o *Results, err error) {
	dir = os.ExpandEnv(dir)
	if enctype == "" {
		for _, enc := range []string{"gob", "json"} {
			if _, e := os.Stat(filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enc))); e == nil {
				enctype = enc
				break
			}
		}
		if enctype == "" {
			return nil, chk.Err("cannot find summary of %q in %q", fnkey, dir)
		}
	}
	o = &Results{Hist: make(map[string]*fem.History)}
	o.Sum, err = fem.ReadSum(dir, fnkey, enctype)
	if err != nil {
		return nil, err
	}
	for _, d := range o.Sum.Dirs {
		o.Hist[d], err = fem.ReadHistory(dir, fnkey, enctype, d)
		if err != nil {
			return nil, err
		}
	}
	o.Select(nil)
	return
}

// FromModel returns the results of the last (successful) run of model
func FromModel(model *fem.SiteResponseModel) (o *Results, err error) {
	if model.Summary == nil {
		return nil, chk.Err("model has no results. result code = %v", model.Code())
	}
	o = &Results{Sum: model.Summary, Hist: make(map[string]*fem.History)}
	for _, d := range o.Sum.Dirs {
		h := model.Result(d)
		if h == nil {
			return nil, chk.Err("results of direction %q are not available", d)
		}
		o.Hist[d] = h
	}
	o.Select(nil)
	return
}

// Select selects output times
//  times -- specified selected output times
//           use nil to indicate that all times are required
func (o *Results) Select(times []float64) {
	if times == nil {
		times = o.Sum.OutTimes
	}
	o.TimeInds, o.Times = utl.GetITout(o.Sum.OutTimes, times, TolT)
}

// History returns the history of direction dir
func (o Results) History(dir string) (*fem.History, error) {
	h, ok := o.Hist[dir]
	if !ok {
		return nil, chk.Err("there are no results for direction %q", dir)
	}
	return h, nil
}

// GetRes gets the values of key ("u", "v" or "a") at node n for the selected output times.
// Negative n counts from the surface: -1 is the surface node
func (o Results) GetRes(key, dir string, n int) (res []float64, err error) {
	h, err := o.History(dir)
	if err != nil {
		return
	}
	if n < 0 {
		n += len(h.Y)
	}
	if n < 0 || n >= len(h.Y) {
		return nil, chk.Err("node %d is out of range [0, %d)", n, len(h.Y))
	}
	all := h.Node(key, n)
	res = make([]float64, len(o.TimeInds))
	for i, tidx := range o.TimeInds {
		res[i] = all[tidx]
	}
	return
}

// GetDist returns the depth of all nodes of direction dir
func (o Results) GetDist(dir string) ([]float64, error) {
	h, err := o.History(dir)
	if err != nil {
		return nil, err
	}
	return append([]float64{}, h.Depth...), nil
}
