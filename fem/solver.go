// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// FEsolver implements the actual solver (time loop)
type FEsolver interface {
	Run(d *Domain) (err error)
}

// solverallocators holds all available solvers
var solverallocators = make(map[string]func() FEsolver)

// GetSolver returns a new solver; e.g. "lin-imp" or "imp"
func GetSolver(kind string) (FEsolver, error) {
	alloc, ok := solverallocators[kind]
	if !ok {
		return nil, chk.Err("cannot find solver type=%q. e.g. {lin-imp, imp} => linear implicit, implicit", kind)
	}
	return alloc(), nil
}
