// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package problems provides systems of ordinary differential equations
// with sparse Jacobians for testing the integrators
package problems

import (
	"math"

	"github.com/cpmech/gode/ode"
	"github.com/cpmech/gosl/chk"
	"github.com/gonum/floats"
)

// Problem defines a test system y' = F(y,t)
type Problem struct {
	Name string      // problem key
	Desc string      // short description
	N    int         // system size
	Nnz  int         // maximum number of Jacobian nonzeros
	Y0   []float64   // initial state
	Fcn  ode.Cb_fcn  // right-hand side
	Jac  ode.Cb_jac  // sparse Jacobian
}

// allocators holds all available problems
var allocators = make(map[string]func() *Problem)

// Get returns a fresh instance of a named problem
func Get(name string) (p *Problem, err error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("problems: cannot find problem named %q", name)
	}
	return alloc(), nil
}

// MaxAbsDiff returns the largest absolute component difference of a and b
func MaxAbsDiff(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}
