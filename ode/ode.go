// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ode implements an adaptive, variable-order, variable-step
// integrator for stiff systems of ordinary differential equations,
// based on the implicit backward-differentiation formulas (BDF) with
// a Nordsieck representation of the solution history
package ode

import (
	"github.com/cpmech/gosl/la"
)

// Cb_fcn defines the callback to compute the right-hand side f(y,t) of y' = f(y,t)
type Cb_fcn func(f []float64, t float64, y []float64, args ...interface{}) error

// Cb_jac defines the callback to compute the Jacobian dfdy as a sparse triplet
type Cb_jac func(dfdy *la.Triplet, t float64, y []float64, args ...interface{}) error

// NonLinSolver finds the root of the corrector equation G(u) = 0 each step.
// u starts at the predicted solution and must hold the root on return.
// gfcn and hfcn compute the corrector residual G(u) and the iteration
// matrix H(u) = I - γ・J(u); w are the current error weights and tol is the
// convergence tolerance on the weighted RMS norm of the update.
type NonLinSolver interface {
	Solve(u []float64, gfcn Cb_fcn, hfcn Cb_jac, w []float64, tol, t float64) (nit int, err error)
}

// Stat holds statistics of one integration run
type Stat struct {
	Nsteps   int     // number of internal steps taken (accepted)
	Naccept  int     // number of accepted steps
	Nreject  int     // number of rejected steps (error test or convergence)
	Nfeval   int     // number of right-hand side evaluations
	Njeval   int     // number of Jacobian evaluations
	Nitnls   int     // total number of nonlinear solver iterations
	Qmax     int     // largest BDF order reached
	LastDt   float64 // size of the last step taken
	LastTime float64 // time reached by the integration
}
