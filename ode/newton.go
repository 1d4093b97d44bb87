// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"github.com/cpmech/gosl/la"
)

// Newton is the default nonlinear solver: a full Newton scheme with
// convergence measured by the weighted RMS norm of the update and early
// exit on diverging iterations
type Newton struct {
	NmaxIt int // maximum number of iterations

	// scratch
	g  []float64
	du []float64
	hm la.Triplet
	hi [][]float64
}

// NewNewton allocates the Newton solver for a system of size n
func NewNewton(n int, cfg *Config) (o *Newton) {
	o = new(Newton)
	o.NmaxIt = cfg.NmaxIt
	o.g = make([]float64, n)
	o.du = make([]float64, n)
	o.hm.Init(n, n, n*n)
	o.hi = la.MatAlloc(n, n)
	return
}

// Solve iterates u ← u - H(u)⁻¹・G(u) until the weighted RMS norm of the
// update falls below tol. It returns ConvergenceFailure when the iteration
// matrix is singular, the iterations diverge, or the budget is exhausted.
func (o *Newton) Solve(u []float64, gfcn Cb_fcn, hfcn Cb_jac, w []float64, tol, t float64) (nit int, err error) {
	var prev float64
	for it := 0; it < o.NmaxIt; it++ {
		nit = it + 1
		err = gfcn(o.g, t, u)
		if err != nil {
			return nit, failErr(ConvergenceFailure, "cannot evaluate residual: %v", err)
		}
		err = hfcn(&o.hm, t, u)
		if err != nil {
			return nit, failErr(ConvergenceFailure, "cannot evaluate iteration matrix: %v", err)
		}
		hd := o.hm.ToMatrix(nil).ToDense()
		err = la.MatInvG(o.hi, hd, 1e-13)
		if err != nil {
			return nit, failErr(ConvergenceFailure, "iteration matrix is singular: %v", err)
		}
		la.MatVecMul(o.du, 1, o.hi, o.g)
		for i := 0; i < len(u); i++ {
			u[i] -= o.du[i]
		}
		rms := WrmsNorm(o.du, w)
		if rms < tol {
			return nit, nil
		}
		if it > 0 && rms > 2*prev {
			return nit, failErr(ConvergenceFailure, "iterations are diverging: ‖δu‖ grew from %g to %g", prev, rms)
		}
		prev = rms
	}
	return nit, failErr(ConvergenceFailure, "max number of iterations reached: nit = %d", o.NmaxIt)
}
