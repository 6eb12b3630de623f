// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/inp"
	"github.com/go-faster/errors"
)

// ResultCode is the outcome of a run
type ResultCode int

// result codes
const (
	Success            ResultCode = iota // run completed and results were written
	MeshError                            // invalid layers, motions or mesh parameters
	AssemblyError                        // element or global matrices could not be assembled or factorised
	NonConvergence                       // too many steps did not converge (results are still written)
	IntegrationFailure                   // numerical instability during time integration
	OutputError                          // results could not be written
)

func (o ResultCode) String() string {
	switch o {
	case Success:
		return "Success"
	case MeshError:
		return "MeshError"
	case AssemblyError:
		return "AssemblyError"
	case NonConvergence:
		return "NonConvergence"
	case IntegrationFailure:
		return "IntegrationFailure"
	case OutputError:
		return "OutputError"
	}
	return io.Sf("ResultCode(%d)", int(o))
}

// InvalidLayerError reports bad geometry or material data in a layer
type InvalidLayerError = inp.InvalidLayerError

// SingularSystemError reports a stiffness that is not positive-definite
type SingularSystemError struct {
	Elem    int     // index of element; -1 if the global matrix could not be factorised
	Modulus float64 // offending modulus
}

func (o *SingularSystemError) Error() string {
	if o.Elem < 0 {
		return "singular system: factorisation of effective stiffness failed"
	}
	return io.Sf("singular system: element %d has modulus %g", o.Elem, o.Modulus)
}

// IncompatibleTimeStepError reports motions in x and z with different time steps
type IncompatibleTimeStepError struct {
	DtX, DtZ float64
}

func (o *IncompatibleTimeStepError) Error() string {
	return io.Sf("motions in x and z must have the same time step. dtx = %g and dtz = %g are incompatible", o.DtX, o.DtZ)
}

// NonConvergenceWarning reports a step whose iterations did not reach the tolerance.
// The last iterate is accepted and the analysis continues
type NonConvergenceWarning struct {
	Dir      string  // direction
	Step     int     // step index
	Time     float64 // time at the end of step
	Residual float64 // largest component of residual in last iteration
	Nit      int     // number of iterations
}

func (o *NonConvergenceWarning) Error() string {
	return io.Sf("%s: iterations did not converge at step %d (t = %g) after %d iterations. largFb = %g", o.Dir, o.Step, o.Time, o.Nit, o.Residual)
}

// IntegrationError reports numerical overflow or instability during time integration
type IntegrationError struct {
	Dir        string  // direction
	Step       int     // failing step
	LastStable int     // last step with finite and bounded results
	Time       float64 // time of failing step
	Residual   float64 // largest component of residual at failure
}

func (o *IntegrationError) Error() string {
	return io.Sf("%s: integration failed at step %d (t = %g). last stable step = %d, largFb = %g", o.Dir, o.Step, o.Time, o.LastStable, o.Residual)
}

// ResultCodeOf maps errors to result codes
func ResultCodeOf(err error) ResultCode {
	if err == nil {
		return Success
	}
	var (
		eLayer *InvalidLayerError
		eDt    *IncompatibleTimeStepError
		eSing  *SingularSystemError
		eInt   *IntegrationError
		eConv  *NonConvergenceWarning
	)
	switch {
	case errors.As(err, &eLayer), errors.As(err, &eDt):
		return MeshError
	case errors.As(err, &eSing):
		return AssemblyError
	case errors.As(err, &eInt):
		return IntegrationFailure
	case errors.As(err, &eConv):
		return NonConvergence
	}
	return AssemblyError
}
