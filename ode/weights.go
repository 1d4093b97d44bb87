// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"math"
)

// Weights holds the tolerances and the per-component error weights derived
// from them. AbsTol is not modified after Init.
type Weights struct {
	RelTol float64   // scalar relative tolerance
	AbsTol []float64 // absolute tolerance per component
	W      []float64 // weights: W[i] = 1 / (RelTol*|y[i]| + AbsTol[i])
}

// Init allocates the weights structure. The absolute tolerances are copied.
func (o *Weights) Init(relTol float64, absTol []float64) {
	o.RelTol = relTol
	o.AbsTol = make([]float64, len(absTol))
	copy(o.AbsTol, absTol)
	o.W = make([]float64, len(absTol))
}

// Eval recomputes the weights from the current solution magnitude.
// Evaluating twice with the same y gives identical weights.
func (o *Weights) Eval(y []float64) (err error) {
	for i := 0; i < len(o.W); i++ {
		den := o.RelTol*math.Abs(y[i]) + o.AbsTol[i]
		if den <= 0 {
			return failErr(InvalidTolerance, "weight denominator rtol*|y[%d]|+atol[%d] = %g is not positive", i, i, den)
		}
		o.W[i] = 1.0 / den
	}
	return
}

// WrmsNorm returns the weighted root-mean-square norm
//   sqrt( (1/N)・sum( (v[i]*w[i])² ) )
func WrmsNorm(v, w []float64) float64 {
	var sum float64
	for i := 0; i < len(v); i++ {
		sum += v[i] * w[i] * v[i] * w[i]
	}
	return math.Sqrt(sum / float64(len(v)))
}
