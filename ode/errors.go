// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"github.com/cpmech/gosl/io"
)

// FailKind distinguishes the failure modes of the integrator
type FailKind int

const (
	// InvalidTolerance indicates a non-positive error-weight denominator
	InvalidTolerance FailKind = iota + 1

	// DimensionMismatch indicates input vectors with inconsistent sizes
	DimensionMismatch

	// ConvergenceFailure indicates that the nonlinear solver did not
	// converge within its iteration budget; recoverable by shrinking dt
	ConvergenceFailure

	// ErrorTestFailure indicates a converged corrector whose local error
	// exceeds one in the weighted norm; recoverable by shrinking dt
	ErrorTestFailure

	// StepSizeUnderflow indicates that dt would have to shrink below the
	// smallest acceptable step
	StepSizeUnderflow

	// FatalIntegrationFailure indicates that all retries were exhausted at
	// minimum order and step size; the integration cannot proceed
	FatalIntegrationFailure
)

func (k FailKind) String() string {
	switch k {
	case InvalidTolerance:
		return "invalid tolerance"
	case DimensionMismatch:
		return "dimension mismatch"
	case ConvergenceFailure:
		return "convergence failure"
	case ErrorTestFailure:
		return "error test failure"
	case StepSizeUnderflow:
		return "step size underflow"
	case FatalIntegrationFailure:
		return "fatal integration failure"
	}
	return "unknown failure"
}

// Failure is the error type returned by the solver
type Failure struct {
	What FailKind // failure mode
	Msg  string   // details
}

func (o *Failure) Error() string {
	return io.Sf("%v: %s", o.What, o.Msg)
}

// failErr creates a new Failure with a formatted message
func failErr(kind FailKind, msg string, prm ...interface{}) *Failure {
	return &Failure{What: kind, Msg: io.Sf(msg, prm...)}
}

// Kind extracts the failure mode of err; it returns 0 for nil or foreign errors
func Kind(err error) FailKind {
	if f, ok := err.(*Failure); ok {
		return f.What
	}
	return 0
}
