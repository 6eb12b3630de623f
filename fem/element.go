// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/siteresp/inp"
)

// Elem defines what elements must calculate
type Elem interface {

	// information
	Id() int       // returns the cell Id
	Verts() [2]int // returns the {bottom, top} node indices

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error)              // adds -R to global residual vector fb
	AddToKb(kb []float64, sol *Solution, firstIt bool) (err error) // adds element K to global banded Jacobian kb
	Update(sol *Solution) (err error)                              // perform (tangent) update
}

// ElemIntvars defines elements with internal variables
type ElemIntvars interface {
	SetIniIvs() (err error)    // sets initial internal values
	BackupIvs()                // create copy of internal variables
	RestoreIvs()               // restore internal variables from copies
	NewPass() (change float64) // starts a new pass through the input motion
}

// ElemOutputter defines elements that can report strains and stresses
type ElemOutputter interface {
	RecordPeaks()                 // updates peak strain and stress with the current state
	Peaks() (γmax, τmax float64)  // returns peak strain and stress
	StrainStress() (γ, τ float64) // returns current strain and stress
}

// eallocators holds all available elements
var eallocators = make(map[string]func(cell *Cell, msh *Mesh, lay *inp.SiteLayering, damp *Rayleigh) (Elem, error))

// NewElem returns a new element from its type; e.g. "shear"
func NewElem(kind string, cell *Cell, msh *Mesh, lay *inp.SiteLayering, damp *Rayleigh) (ele Elem, err error) {
	allocator, ok := eallocators[kind]
	if !ok {
		return nil, chk.Err("cannot get allocator for element {type=%q, id=%d}", kind, cell.Id)
	}
	return allocator(cell, msh, lay, damp)
}
