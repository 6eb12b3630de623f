// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "math"

// History holds the response of one direction at output times
type History struct {
	Dir       string      // direction
	Y         []float64   // [nnodes] elevation of nodes above base
	Depth     []float64   // [nnodes] depth of nodes below surface
	ElemDepth []float64   // [ncells] depth of element centres
	T         []float64   // [nout] output times
	U         [][]float64 // [nout][nnodes] displacements
	V         [][]float64 // [nout][nnodes] velocities
	A         [][]float64 // [nout][nnodes] accelerations

	// peaks over all steps
	PeakStrain []float64 // [ncells] max |γ|
	PeakStress []float64 // [ncells] max |τ|

	// auxiliary
	nout int // number of steps between outputs
	last int // last step
}

// NewHistory allocates a history for a domain
func NewHistory(d *Domain) (o *History) {
	o = &History{Dir: d.Dir}
	for _, n := range d.Msh.Nodes {
		o.Y = append(o.Y, n.Y)
		o.Depth = append(o.Depth, n.Depth)
	}
	for _, e := range d.Elems {
		v := e.Verts()
		o.ElemDepth = append(o.ElemDepth, (d.Msh.Nodes[v[0]].Depth+d.Msh.Nodes[v[1]].Depth)/2.0)
	}
	o.nout = 1
	if d.Sim.Solver.DtOut > d.Exc.Dt {
		o.nout = int(math.Round(d.Sim.Solver.DtOut / d.Exc.Dt))
	}
	o.last = d.Exc.Npts() - 1
	return
}

// Record records the solution if step is an output step
func (o *History) Record(d *Domain, step int) {
	if step%o.nout != 0 && step != o.last {
		return
	}
	o.T = append(o.T, d.Sol.T)
	o.U = append(o.U, append([]float64{}, d.Sol.Y...))
	o.V = append(o.V, append([]float64{}, d.Sol.Dydt...))
	o.A = append(o.A, append([]float64{}, d.Sol.D2ydt2...))
}

// SetPeaks copies peak strains and stresses from elements
func (o *History) SetPeaks(d *Domain) {
	o.PeakStrain = make([]float64, len(d.ElemOut))
	o.PeakStress = make([]float64, len(d.ElemOut))
	for i, e := range d.ElemOut {
		o.PeakStrain[i], o.PeakStress[i] = e.Peaks()
	}
}

// Nout returns the number of output times
func (o History) Nout() int { return len(o.T) }

// Node returns the time series of key ("u", "v" or "a") at node n
func (o History) Node(key string, n int) (res []float64) {
	var src [][]float64
	switch key {
	case "u":
		src = o.U
	case "v":
		src = o.V
	default:
		src = o.A
	}
	res = make([]float64, len(src))
	for i, vals := range src {
		res[i] = vals[n]
	}
	return
}

// Surface returns the time series of key at the surface node
func (o History) Surface(key string) []float64 { return o.Node(key, len(o.Y)-1) }

// Base returns the time series of key at the base node
func (o History) Base(key string) []float64 { return o.Node(key, 0) }

// PeakNode returns the largest absolute value of key at each node
func (o History) PeakNode(key string) (res []float64) {
	res = make([]float64, len(o.Y))
	for n := range o.Y {
		for _, v := range o.Node(key, n) {
			res[n] = math.Max(res[n], math.Abs(v))
		}
	}
	return
}

// Dt returns the output time step
func (o History) Dt() float64 {
	if len(o.T) < 2 {
		return 0
	}
	return o.T[1] - o.T[0]
}
