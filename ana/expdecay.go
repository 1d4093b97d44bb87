// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form solutions of reference ODE systems
package ana

import (
	"math"
)

// ExpDecay computes the solution of y' = -λ・y with y(0) = Y0
type ExpDecay struct {
	Lam float64 // decay rate λ
	Y0  float64 // initial value
}

// Y returns the solution at time t
func (o ExpDecay) Y(t float64) float64 {
	return o.Y0 * math.Exp(-o.Lam*t)
}
