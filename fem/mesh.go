// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/siteresp/inp"
	"github.com/cpmech/siteresp/msolid"
)

// discretisation constants
const (
	MaxFrequency       = 50.0 // default maximum frequency to be transmitted [Hz]
	NodesPerWavelength = 10   // default minimum number of nodes per wavelength
)

// MeshConfig holds the parameters controlling the mesh generation
type MeshConfig struct {
	Fmax      float64 // maximum frequency to be transmitted [Hz]
	Nmin      int     // minimum number of nodes per wavelength
	SoilModel string  // model for all layers; empty => from layer data
	TestMode  bool    // force linear elastic model in all layers
}

// DefaultMeshConfig returns the default mesh configuration
func DefaultMeshConfig() MeshConfig {
	return MeshConfig{Fmax: MaxFrequency, Nmin: NodesPerWavelength}
}

// Node holds one node of the soil column
type Node struct {
	Id    int     // index; 0 is the base
	Y     float64 // elevation above base
	Depth float64 // depth below surface
	Layer int     // layer of the element above; the surface node belongs to the top layer
}

// Cell holds one two-noded shear element
type Cell struct {
	Id    int    // index; 0 is the bottom element
	Verts [2]int // {bottom, top} node indices
	Layer int    // index of layer (bedrock-to-surface)
	Model string // name of soil model
}

// Mesh holds the one-dimensional mesh. Node 0 is at the base and the last node is at the surface
type Mesh struct {
	Nodes []Node    // all nodes
	Cells []Cell    // all elements
	Lmax  []float64 // [nlayers] maximum element length in each layer
	Nelem []int     // [nlayers] number of elements in each layer
}

// BuildMesh discretises the layering such that each element has length smaller than or equal to
// Lmax = vs / (fmax · nmin). Layer interfaces coincide with nodes
func BuildMesh(lay *inp.SiteLayering, cfg MeshConfig) (o *Mesh, err error) {

	// check
	if cfg.Fmax == 0 {
		cfg.Fmax = MaxFrequency
	}
	if cfg.Nmin == 0 {
		cfg.Nmin = NodesPerWavelength
	}
	if !(cfg.Fmax > 0) || math.IsInf(cfg.Fmax, 0) {
		return nil, chk.Err("BuildMesh: maximum frequency must be positive. fmax = %g is invalid", cfg.Fmax)
	}
	if cfg.Nmin < 1 {
		return nil, chk.Err("BuildMesh: number of nodes per wavelength must be positive. nmin = %d is invalid", cfg.Nmin)
	}

	// first node at the base
	nl := lay.Nlayers()
	o = new(Mesh)
	o.Lmax = make([]float64, nl)
	o.Nelem = make([]int, nl)
	H := lay.TotalThickness()
	o.Nodes = append(o.Nodes, Node{Id: 0, Y: 0, Depth: H, Layer: 0})

	// layers
	for i := 0; i < nl; i++ {
		l := lay.Layer(i)
		model, e := SelectModel(l, cfg)
		if e != nil {
			return nil, &InvalidLayerError{Index: i, Name: l.Name(), Reason: e.Error()}
		}
		T := l.Thick()
		o.Lmax[i] = l.Vs() / (cfg.Fmax * float64(cfg.Nmin))
		n := int(math.Max(1, math.Ceil(T/o.Lmax[i])))
		for T/float64(n) > o.Lmax[i] {
			n++
		}
		o.Nelem[i] = n
		bot := lay.Bottom(i)
		for k := 1; k <= n; k++ {
			y := bot + T*float64(k)/float64(n)
			if k == n {
				y = lay.Top(i)
			}
			a := len(o.Nodes) - 1
			o.Nodes[a].Layer = i
			o.Nodes = append(o.Nodes, Node{Id: a + 1, Y: y, Depth: math.Max(0, H-y), Layer: i})
			o.Cells = append(o.Cells, Cell{Id: len(o.Cells), Verts: [2]int{a, a + 1}, Layer: i, Model: model})
		}
	}
	o.Nodes[len(o.Nodes)-1].Depth = 0
	return
}

// Nnodes returns the number of nodes
func (o Mesh) Nnodes() int { return len(o.Nodes) }

// Ncells returns the number of elements
func (o Mesh) Ncells() int { return len(o.Cells) }

// Length returns the length of element e
func (o Mesh) Length(e int) float64 {
	c := o.Cells[e]
	return o.Nodes[c.Verts[1]].Y - o.Nodes[c.Verts[0]].Y
}

// Surface returns the index of the surface node
func (o Mesh) Surface() int { return len(o.Nodes) - 1 }

// SelectModel returns the name of the soil model for a layer:
//  1) the model of all layers in cfg; 2) the model in the layer data; 3) from the parameters:
//  su > 0 => "bsurf", gref > 0 => "mkz", otherwise "elast". Test mode always gives "elast"
func SelectModel(l inp.SoilLayer, cfg MeshConfig) (name string, err error) {
	if cfg.TestMode {
		return "elast", nil
	}
	name = cfg.SoilModel
	if name == "" {
		name = l.Model()
	}
	if name == "" {
		d := l.Data()
		switch {
		case d.Su > 0:
			name = "bsurf"
		case d.Gref > 0:
			name = "mkz"
		default:
			name = "elast"
		}
	}
	if _, err = msolid.New(name); err != nil {
		return "", err
	}
	return
}
