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

// ShearElem represents a two-noded element of unit area under simple shear.
// Degrees of freedom are the horizontal displacements of the bottom and top nodes
type ShearElem struct {

	// basic data
	Cell  *Cell   // the cell structure
	H     float64 // length
	Depth float64 // depth of centre below the surface
	Umap  [2]int  // assembly map (location array/element equations)

	// parameters
	Rho  float64   // density
	Damp *Rayleigh // Rayleigh damping control frequencies

	// damping coefficients of current pass
	a0 float64 // mass proportional coefficient
	kd float64 // stiffness proportional damping: a1·Gd/H

	// material model and internal variables
	Model    msolid.OnedSolid
	State    *msolid.OnedState
	StateBkp *msolid.OnedState

	// peaks in current pass
	γmax float64
	τmax float64
}

// register element
func init() {
	eallocators["shear"] = func(cell *Cell, msh *Mesh, lay *inp.SiteLayering, damp *Rayleigh) (Elem, error) {

		// basic data
		var o ShearElem
		o.Cell = cell
		o.H = msh.Length(cell.Id)
		o.Depth = (msh.Nodes[cell.Verts[0]].Depth + msh.Nodes[cell.Verts[1]].Depth) / 2.0
		o.Umap = cell.Verts
		o.Damp = damp
		if !(o.H > 0) {
			return nil, chk.Err("shear element %d has non-positive length %g", cell.Id, o.H)
		}

		// model
		layer := lay.Layer(cell.Layer)
		o.Rho = layer.Rho()
		var err error
		o.Model, err = msolid.New(cell.Model)
		if err != nil {
			return nil, err
		}
		err = o.Model.Init(layer.Params())
		if err != nil {
			return nil, &InvalidLayerError{Index: cell.Layer, Name: layer.Name(), Reason: err.Error()}
		}

		// internal variables
		err = o.SetIniIvs()
		if err != nil {
			return nil, err
		}
		return &o, nil
	}
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o ShearElem) Id() int { return o.Cell.Id }

// Verts returns the {bottom, top} node indices
func (o ShearElem) Verts() [2]int { return o.Umap }

// Mass returns the lumped mass of each node
func (o ShearElem) Mass() float64 { return o.Rho * o.H / 2.0 }

// AddToRhs adds -R to global residual vector fb
func (o ShearElem) AddToRhs(fb []float64, sol *Solution) (err error) {
	b, t := o.Umap[0], o.Umap[1]
	m := o.Mass()
	τ := o.State.Sig
	vb, vt := sol.Dydt[b], sol.Dydt[t]
	fb[b] -= m*sol.D2ydt2[b] + o.a0*m*vb + o.kd*(vb-vt) - τ
	fb[t] -= m*sol.D2ydt2[t] + o.a0*m*vt + o.kd*(vt-vb) + τ
	return
}

// AddToKb adds the element effective tangent to the banded global matrix kb.
//  kb[2i] holds K(i,i) and kb[2i+1] holds K(i,i+1)
func (o ShearElem) AddToKb(kb []float64, sol *Solution, firstIt bool) (err error) {
	D, err := o.Model.CalcD(o.State, firstIt)
	if err != nil {
		return
	}
	if math.IsNaN(D) || math.IsInf(D, 0) || D < 0 {
		return &SingularSystemError{Elem: o.Cell.Id, Modulus: D}
	}
	α1, α4 := sol.DynCfs.α1, sol.DynCfs.α4
	m := o.Mass()
	k := D/o.H + α4*o.kd
	b, t := o.Umap[0], o.Umap[1]
	kb[2*b] += α1*m + α4*o.a0*m + k
	kb[2*t] += α1*m + α4*o.a0*m + k
	kb[2*b+1] -= k
	return
}

// Update perform (tangent) update
func (o *ShearElem) Update(sol *Solution) (err error) {
	Δγ := (sol.ΔY[o.Umap[1]] - sol.ΔY[o.Umap[0]]) / o.H
	return o.Model.Update(o.State, Δγ)
}

// internal variables ///////////////////////////////////////////////////////////////////////////////

// SetIniIvs sets initial internal values and damping coefficients
func (o *ShearElem) SetIniIvs() (err error) {
	o.State, err = o.Model.InitIntVars()
	if err != nil {
		return
	}
	o.StateBkp = o.State.GetCopy()
	o.γmax, o.τmax = 0, 0
	return o.set_damping()
}

// BackupIvs create copy of internal variables
func (o *ShearElem) BackupIvs() {
	o.StateBkp.Set(o.State)
}

// RestoreIvs restore internal variables from copies
func (o *ShearElem) RestoreIvs() {
	o.State.Set(o.StateBkp)
}

// NewPass starts a new pass through the input motion. Iterative models update their
// properties from the peaks of the last pass; other models restart from the initial state
func (o *ShearElem) NewPass() (change float64) {
	if m, ok := o.Model.(msolid.Iterative); ok {
		change = m.NewPass(o.State)
		o.StateBkp.Set(o.State)
		o.γmax, o.τmax = 0, 0
		o.set_damping()
		return
	}
	o.SetIniIvs()
	return
}

// output ///////////////////////////////////////////////////////////////////////////////////////////

// RecordPeaks updates peak strain and stress with the current state
func (o *ShearElem) RecordPeaks() {
	o.γmax = math.Max(o.γmax, math.Abs(o.State.Eps))
	o.τmax = math.Max(o.τmax, math.Abs(o.State.Sig))
}

// Peaks returns peak strain and stress
func (o ShearElem) Peaks() (γmax, τmax float64) { return o.γmax, o.τmax }

// StrainStress returns current strain and stress
func (o ShearElem) StrainStress() (γ, τ float64) { return o.State.Eps, o.State.Sig }

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// set_damping computes the Rayleigh coefficients with the modulus and ratio given by the model
func (o *ShearElem) set_damping() (err error) {
	G, ξ := o.Model.Damping(o.State)
	if math.IsNaN(G) || math.IsInf(G, 0) || !(G > 0) {
		return &SingularSystemError{Elem: o.Cell.Id, Modulus: G}
	}
	a0, a1 := o.Damp.Coefs(ξ)
	o.a0 = a0
	o.kd = a1 * G / o.H
	return
}
