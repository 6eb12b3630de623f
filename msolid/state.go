// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// OnedState holds the data for updating the state of one-dimensional (simple shear) models
type OnedState struct {

	// essential
	Sig float64 // τ: current shear stress
	Eps float64 // γ: current (engineering) shear strain

	// for nonlinear models (if len(α) > 0)
	Alp     []float64 // α: internal variables [nalp]
	Loading bool      // loading flag (e.g. for plasticity only)
}

// NewOnedState allocates a new state
//  nalp -- number of internal variables
func NewOnedState(nalp int) *OnedState {
	var state OnedState
	if nalp > 0 {
		state.Alp = make([]float64, nalp)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *OnedState) Set(other *OnedState) {
	o.Sig = other.Sig
	o.Eps = other.Eps
	copy(o.Alp, other.Alp)
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *OnedState) GetCopy() *OnedState {
	other := NewOnedState(len(o.Alp))
	other.Set(o)
	return other
}
