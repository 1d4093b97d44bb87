// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Nordsieck holds the scaled-derivative history of the solution together
// with the polynomial that propagates corrections into it. Row j of zn
// stores (dtʲ/j!)・y⁽ʲ⁾; only rows 0..q are meaningful. While q < qmax the
// last row doubles as storage for the correction saved one step before an
// order-raise decision.
type Nordsieck struct {

	// dimensions and order
	n    int // system size
	qmax int // maximum order
	q    int // current order

	// history
	zn  [][]float64 // (qmax+1) x n scaled derivatives
	pdt []float64   // previous accepted step sizes; pdt[1] is the most recent

	// update polynomial and derived scalars
	l     []float64 // polynomial coefficients l[0..q]
	gamma float64   // dt / l[1]

	// error control coefficients (indices 1..5) and the copy saved with
	// the correction used by the order-raise candidate
	tq      []float64
	tqSaved []float64
	saved   bool
}

// NewNordsieck allocates the history for a system of size n
func NewNordsieck(n int, cfg *Config) (o *Nordsieck) {
	o = new(Nordsieck)
	o.n = n
	o.qmax = cfg.Qmax
	o.q = 1
	o.zn = la.MatAlloc(o.qmax+1, n)
	o.pdt = make([]float64, o.qmax+3)
	o.l = make([]float64, o.qmax+1)
	o.tq = make([]float64, 6)
	o.tqSaved = make([]float64, 6)
	return
}

// Q returns the current order
func (o *Nordsieck) Q() int { return o.q }

// Gamma returns dt/l[1] for the current step
func (o *Nordsieck) Gamma() float64 { return o.gamma }

// Yn returns the first history row: the current (or predicted) solution
func (o *Nordsieck) Yn() []float64 { return o.zn[0] }

// LoadFirst initialises the history at order 1 from the solution y0 and
// its derivative f0. It is also used to rebuild the history when repeated
// rejections force the order back down to 1.
func (o *Nordsieck) LoadFirst(y0, f0 []float64, dt float64) {
	copy(o.zn[0], y0)
	for i := 0; i < o.n; i++ {
		o.zn[1][i] = dt * f0[i]
	}
	for j := 2; j <= o.qmax; j++ {
		la.VecFill(o.zn[j], 0)
	}
	o.q = 1
	o.saved = false
}

// SetCoeffs rebuilds the update polynomial, γ, and the error control
// coefficients from the current dt, the order, and the past step sizes.
// Must be called before Predict on every step attempt.
func (o *Nordsieck) SetCoeffs(dt float64, qNextChange int, nlsCoef float64) {
	q := o.q
	l := o.l
	l[0], l[1] = 1, 1
	for z := 2; z <= o.qmax; z++ {
		l[z] = 0
	}
	xiInv, xistarInv := 1.0, 1.0
	alpha0, alpha0hat := -1.0, -1.0
	dtSum := dt
	if q > 1 {
		for j := 2; j < q; j++ {
			dtSum += o.pdt[j-1]
			xiInv = dt / dtSum
			alpha0 -= 1.0 / float64(j)
			for z := j; z >= 1; z-- {
				l[z] += l[z-1] * xiInv
			}
		}
		alpha0 -= 1.0 / float64(q)
		xistarInv = -l[1] - alpha0
		dtSum += o.pdt[q-1]
		xiInv = dt / dtSum
		alpha0hat = -l[1] - xiInv
		for z := q; z >= 1; z-- {
			l[z] += l[z-1] * xistarInv
		}
	}

	// error control coefficients
	A1 := 1.0 - alpha0hat + alpha0
	A2 := 1.0 + float64(q)*A1
	o.tq[2] = math.Abs(A1 / (alpha0 * A2))
	o.tq[5] = math.Abs(A2 * xistarInv / (l[q] * xiInv))
	if qNextChange == 1 {
		if q > 1 {
			C := xistarInv / l[q]
			A3 := alpha0 + 1.0/float64(q)
			A4 := alpha0hat + xiInv
			o.tq[1] = math.Abs(C * (1.0 - A4 + A3) / A3)
		}
		if q < o.qmax {
			dtSum += o.pdt[q]
			xiInv = dt / dtSum
			A5 := alpha0 - 1.0/float64(q+1)
			A6 := alpha0hat - xiInv
			o.tq[3] = math.Abs((1.0 - A6 + A5) / (A2 * xiInv * float64(q+2) * A5))
		}
	}
	o.tq[4] = nlsCoef / o.tq[2]
	o.gamma = dt / l[1]
}

// Predict extrapolates the history to the end of the step by repeated
// in-place additions (Pascal triangle update); zn[0] becomes the
// predictor used as starting point by the corrector.
func (o *Nordsieck) Predict() {
	for k := 1; k <= o.q; k++ {
		for j := o.q; j >= k; j-- {
			la.VecAdd(o.zn[j-1], 1, o.zn[j])
		}
	}
}

// Rollback undoes Predict, restoring the pre-step history. Valid because
// the correction is only applied to the array on acceptance.
func (o *Nordsieck) Rollback() {
	for k := 1; k <= o.q; k++ {
		for j := o.q; j >= k; j-- {
			la.VecAdd(o.zn[j-1], -1, o.zn[j])
		}
	}
}

// CompleteStep folds the converged correction acor into every history row
// and shifts the ring of past step sizes. qNextChange must be the value
// already decremented for this step; when it reaches 1 the correction and
// the current error coefficients are saved for the order-raise candidate.
func (o *Nordsieck) CompleteStep(dt float64, acor []float64, qNextChange int, firstStep bool) {
	for i := o.q; i >= 2; i-- {
		o.pdt[i] = o.pdt[i-1]
	}
	if o.q == 1 && !firstStep {
		o.pdt[2] = o.pdt[1]
	}
	o.pdt[1] = dt
	for j := 0; j <= o.q; j++ {
		la.VecAdd(o.zn[j], o.l[j], acor)
	}
	if qNextChange == 1 && o.q < o.qmax {
		copy(o.zn[o.qmax], acor)
		copy(o.tqSaved, o.tq)
		o.saved = true
	}
}

// Rescale multiplies row j by ηʲ after a step-size change dt → η・dt
func (o *Nordsieck) Rescale(eta float64) {
	fac := eta
	for j := 1; j <= o.q; j++ {
		for i := 0; i < o.n; i++ {
			o.zn[j][i] *= fac
		}
		fac *= eta
	}
}

// SaveCorrection stores the latest correction in the auxiliary row so that
// IncreaseOrder can seed the new column from it
func (o *Nordsieck) SaveCorrection(acor []float64) {
	copy(o.zn[o.qmax], acor)
}

// IncreaseOrder raises the order by one, seeding the new column from the
// saved correction and fixing up the lower columns. dt must be the step
// size used by the last accepted step.
func (o *Nordsieck) IncreaseOrder(dt float64) {
	for i := 0; i <= o.qmax; i++ {
		o.l[i] = 0
	}
	o.l[2] = 1
	alpha0, alpha1 := -1.0, 1.0
	prod, xiold := 1.0, 1.0
	dtSum := dt
	if o.q > 1 {
		for j := 1; j < o.q; j++ {
			dtSum += o.pdt[j+1]
			xi := dtSum / dt
			prod *= xi
			alpha0 -= 1.0 / float64(j+1)
			alpha1 -= 1.0 / xi
			for i := j + 2; i >= 2; i-- {
				o.l[i] = o.l[i]*xiold + o.l[i-1]
			}
			xiold = xi
		}
	}
	A1 := (-alpha0 - alpha1) / prod
	for i := 0; i < o.n; i++ {
		o.zn[o.q+1][i] = A1 * o.zn[o.qmax][i]
	}
	for j := 2; j <= o.q; j++ {
		la.VecAdd(o.zn[j], o.l[j], o.zn[o.q+1])
	}
	o.q++
	o.saved = false
}

// DecreaseOrder lowers the order by one, folding the dropped column into
// the remaining ones
func (o *Nordsieck) DecreaseOrder(dt float64) {
	for i := 0; i <= o.qmax; i++ {
		o.l[i] = 0
	}
	o.l[2] = 1
	dtSum := 0.0
	for j := 1; j <= o.q-2; j++ {
		dtSum += o.pdt[j]
		xi := dtSum / dt
		for i := j + 2; i >= 2; i-- {
			o.l[i] = o.l[i]*xi + o.l[i-1]
		}
	}
	for j := 2; j < o.q; j++ {
		la.VecAdd(o.zn[j], -o.l[j], o.zn[o.q])
	}
	la.VecFill(o.zn[o.q], 0)
	o.q--
	o.saved = false
}
