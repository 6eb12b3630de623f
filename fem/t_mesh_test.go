// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/inp"
	"github.com/go-faster/errors"
)

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. two layers")

	lay := twolayer(tst, 0.05, nil)
	msh, err := BuildMesh(lay, DefaultMeshConfig())
	if err != nil {
		tst.Errorf("BuildMesh failed:\n%v", err)
		return
	}

	// maximum lengths
	chk.Float64(tst, "Lmax stiff", 1e-15, msh.Lmax[0], 0.8)
	chk.Float64(tst, "Lmax soft", 1e-15, msh.Lmax[1], 0.4)
	for i, n := range msh.Nelem {
		if n < 25 || n > 26 {
			tst.Errorf("layer %d: number of elements %d is not 25 or 26", i, n)
		}
	}
	chk.Int(tst, "ncells", msh.Ncells(), msh.Nelem[0]+msh.Nelem[1])
	chk.Int(tst, "nnodes", msh.Nnodes(), msh.Ncells()+1)

	// elements
	for _, c := range msh.Cells {
		L := msh.Length(c.Id)
		if L > msh.Lmax[c.Layer]*(1+1e-12) {
			tst.Errorf("element %d: length %g is greater than %g", c.Id, L, msh.Lmax[c.Layer])
		}
		chk.Ints(tst, io.Sf("verts %d", c.Id), c.Verts[:], []int{c.Id, c.Id + 1})
		if c.Model != "mkz" {
			tst.Errorf("element %d: model should be inferred from gref. %q is incorrect", c.Id, c.Model)
		}
	}

	// base, interface and surface
	n := msh.Nnodes()
	chk.Float64(tst, "y base", 1e-15, msh.Nodes[0].Y, 0)
	chk.Float64(tst, "depth base", 1e-15, msh.Nodes[0].Depth, 30)
	chk.Float64(tst, "y surface", 1e-15, msh.Nodes[n-1].Y, 30)
	chk.Float64(tst, "depth surface", 1e-15, msh.Nodes[n-1].Depth, 0)
	chk.Int(tst, "surface", msh.Surface(), n-1)
	ifc := msh.Nelem[0]
	chk.Float64(tst, "y interface", 1e-15, msh.Nodes[ifc].Y, 20)
	chk.Int(tst, "layer of interface node", msh.Nodes[ifc].Layer, 1)
	chk.Int(tst, "layer of base node", msh.Nodes[0].Layer, 0)
	chk.Int(tst, "layer of surface node", msh.Nodes[n-1].Layer, 1)
}

func Test_mesh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh02. refinement with frequency and nodes per wavelength")

	lay := twolayer(tst, 0.05, nil)
	prevNodes := 0
	prevLmax := []float64{1e30, 1e30}
	for _, fmax := range []float64{5, 10, 20, 50, 100} {
		msh, err := BuildMesh(lay, MeshConfig{Fmax: fmax, Nmin: 10})
		if err != nil {
			tst.Errorf("BuildMesh failed:\n%v", err)
			return
		}
		if msh.Nnodes() < prevNodes {
			tst.Errorf("fmax = %g: number of nodes decreased from %d to %d", fmax, prevNodes, msh.Nnodes())
		}
		prevNodes = msh.Nnodes()
		for i := 0; i < lay.Nlayers(); i++ {
			L := lay.Layer(i).Thick() / float64(msh.Nelem[i])
			if L > prevLmax[i] {
				tst.Errorf("fmax = %g: element length increased in layer %d", fmax, i)
			}
			if L > lay.Layer(i).Vs()/(fmax*10)*(1+1e-12) {
				tst.Errorf("fmax = %g: element length %g is too large in layer %d", fmax, L, i)
			}
			prevLmax[i] = L
		}
	}

	// nodes per wavelength
	prevNodes = 0
	for _, nmin := range []int{1, 5, 10, 20} {
		msh, err := BuildMesh(lay, MeshConfig{Fmax: 25, Nmin: nmin})
		if err != nil {
			tst.Errorf("BuildMesh failed:\n%v", err)
			return
		}
		if msh.Nnodes() < prevNodes {
			tst.Errorf("nmin = %d: number of nodes decreased", nmin)
		}
		prevNodes = msh.Nnodes()
	}
}

func Test_mesh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh03. thin layers, models and errors")

	// layer thinner than Lmax
	lay, err := inp.NewSiteLayering([]inp.LayerData{
		{Name: "rock-like", Thick: 0.1, Rho: 2200, Vs: 800, Su: 1e5},
		{Name: "clay", Thick: 2, Rho: 1800, Vs: 150, Model: "eqlin"},
	}, nil)
	if err != nil {
		tst.Errorf("NewSiteLayering failed:\n%v", err)
		return
	}
	msh, err := BuildMesh(lay, DefaultMeshConfig())
	if err != nil {
		tst.Errorf("BuildMesh failed:\n%v", err)
		return
	}
	chk.Int(tst, "thin layer: nelem", msh.Nelem[0], 1)
	chk.String(tst, msh.Cells[0].Model, "bsurf")
	chk.String(tst, msh.Cells[msh.Ncells()-1].Model, "eqlin")

	// test mode and override
	msh, _ = BuildMesh(lay, MeshConfig{TestMode: true})
	for _, c := range msh.Cells {
		chk.String(tst, c.Model, "elast")
	}
	msh, _ = BuildMesh(lay, MeshConfig{SoilModel: "mkz"})
	for _, c := range msh.Cells {
		chk.String(tst, c.Model, "mkz")
	}

	// unknown model
	_, err = BuildMesh(lay, MeshConfig{SoilModel: "unknown"})
	var e *InvalidLayerError
	if !errors.As(err, &e) {
		tst.Errorf("InvalidLayerError should have been returned. got %v", err)
	}

	// invalid configuration
	_, err = BuildMesh(lay, MeshConfig{Fmax: -1})
	if err == nil {
		tst.Errorf("negative fmax should have failed")
	}
	_, err = BuildMesh(lay, MeshConfig{Nmin: -2})
	if err == nil {
		tst.Errorf("negative nmin should have failed")
	}
}
