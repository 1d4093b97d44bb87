// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/gonum/floats"
)

// StiffPair computes the solution of the stiff linear system
//   y0' =  998・y0 + 1998・y1
//   y1' = -999・y0 - 1999・y1
// with y(0) = {1, 0}:
//   y0(t) =  2・exp(-t) - exp(-1000t)
//   y1(t) = -exp(-t) + exp(-1000t)
type StiffPair struct{}

// Y returns the solution at time t
func (o StiffPair) Y(t float64) []float64 {
	slow, fast := math.Exp(-t), math.Exp(-1000.0*t)
	return []float64{2.0*slow - fast, -slow + fast}
}

// MaxErr returns the largest absolute component error of y at time t
func (o StiffPair) MaxErr(y []float64, t float64) float64 {
	return floats.Distance(y, o.Y(t), math.Inf(1))
}
