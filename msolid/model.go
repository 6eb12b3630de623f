// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for the shear response of soils
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// OnedSolid defines the interface for one-dimensional (simple shear) soil models
type OnedSolid interface {
	Init(prms dbf.Params) error                        // initialises model
	GetPrms() dbf.Params                               // gets (an example) of parameters
	InitIntVars() (*OnedState, error)                  // initialises internal variables
	Update(s *OnedState, Δγ float64) error             // updates stresses for given strain increment (from last converged state)
	CalcD(s *OnedState, firstIt bool) (float64, error) // computes D = dτ/dγ consistent with update method
	Damping(s *OnedState) (G, ξ float64)               // modulus and ratio to build Rayleigh damping
}

// Iterative defines models whose properties are fixed during one pass through the input motion
// and updated from the peak strains of the last pass (equivalent linear)
type Iterative interface {
	NewPass(s *OnedState) (change float64) // updates properties and resets s; returns relative change of modulus
}

// New allocates a new model by name
func New(name string) (model OnedSolid, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// Register adds a model to the database
func Register(name string, allocator func() OnedSolid) error {
	if _, ok := allocators[name]; ok {
		return chk.Err("model %q is already in 'msolid' database", name)
	}
	allocators[name] = allocator
	return nil
}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all available models
var allocators = map[string]func() OnedSolid{}

// getprm returns the value of a parameter or a default value
func getprm(prms dbf.Params, name string, defaultValue float64) float64 {
	for _, p := range prms {
		if p.N == name {
			return p.V
		}
	}
	return defaultValue
}

// sign returns the sign of x (zero if x == 0)
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
