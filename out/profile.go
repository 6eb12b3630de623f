// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import "github.com/cpmech/siteresp/fem"

// Profile holds peak values along the depth of the column
type Profile struct {
	Depth     []float64 // [nnodes] depth of nodes; from the base upwards
	Umax      []float64 // [nnodes] max |u|
	Vmax      []float64 // [nnodes] max |v|
	Amax      []float64 // [nnodes] max |a|
	ElemDepth []float64 // [ncells] depth of element centres
	Strain    []float64 // [ncells] max |γ|
	Stress    []float64 // [ncells] max |τ|
}

// PeakProfile computes the profile of peaks of one direction
func PeakProfile(h *fem.History) *Profile {
	return &Profile{
		Depth:     append([]float64{}, h.Depth...),
		Umax:      h.PeakNode("u"),
		Vmax:      h.PeakNode("v"),
		Amax:      h.PeakNode("a"),
		ElemDepth: append([]float64{}, h.ElemDepth...),
		Strain:    append([]float64{}, h.PeakStrain...),
		Stress:    append([]float64{}, h.PeakStress...),
	}
}
