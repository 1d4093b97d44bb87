// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Corrector forms the corrector equation and the iteration matrix consumed
// by the nonlinear solver:
//   G(u) = (u - ZN[0]) - γ・(F(u) - ZN[1]/dt)
//   H(u) = I - γ・J(u)
// It does not iterate; it only exposes G and H as callbacks.
type Corrector struct {

	// problem definition
	fcn Cb_fcn
	jac Cb_jac

	// collaborators
	hist *Nordsieck
	stat *Stat

	// scratch buffers (caller-owned, set per Compute call)
	fv []float64
	jv *la.Triplet

	// current step
	dt float64
}

// NewCorrector connects the corrector to the problem and the history
func NewCorrector(fcn Cb_fcn, jac Cb_jac, hist *Nordsieck, stat *Stat) *Corrector {
	return &Corrector{fcn: fcn, jac: jac, hist: hist, stat: stat}
}

// Set points the corrector at the caller-owned scratch buffers
func (o *Corrector) Set(fv []float64, jv *la.Triplet) {
	o.fv = fv
	o.jv = jv
}

// StartStep fixes the step size used to unscale the derivative column
func (o *Corrector) StartStep(dt float64) {
	o.dt = dt
}

// G computes the corrector residual; it satisfies Cb_fcn so it can be
// handed directly to the nonlinear solver
func (o *Corrector) G(g []float64, t float64, u []float64, args ...interface{}) (err error) {
	err = o.fcn(o.fv, t, u, args...)
	if err != nil {
		return chk.Err("corrector: cannot evaluate functional: %v", err)
	}
	o.stat.Nfeval++
	γ := o.hist.gamma
	zn0, zn1 := o.hist.zn[0], o.hist.zn[1]
	for i := 0; i < len(g); i++ {
		g[i] = (u[i] - zn0[i]) - γ*(o.fv[i]-zn1[i]/o.dt)
	}
	return
}

// H computes the iteration matrix I - γ・J(u); it satisfies Cb_jac
func (o *Corrector) H(hm *la.Triplet, t float64, u []float64, args ...interface{}) (err error) {
	err = o.jac(o.jv, t, u, args...)
	if err != nil {
		return chk.Err("corrector: cannot evaluate Jacobian: %v", err)
	}
	o.stat.Njeval++
	γ := o.hist.gamma
	jd := o.jv.ToMatrix(nil).ToDense()
	n := len(u)
	hm.Start()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -γ * jd[i][j]
			if i == j {
				v += 1
			}
			if v != 0 {
				hm.Put(i, j, v)
			}
		}
	}
	return
}
