// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"github.com/cpmech/gosl/utl"
)

// initialTimeStep computes the size of the first step. The bound follows
// from dtMax and from the magnitude of the initial derivative in the
// weighted norm, clamped so that the first step does not overshoot tmax.
func initialTimeStep(t, tmax, dtMax float64, f0, w []float64, cfg *Config) (dt float64) {
	lb := dtMax / cfg.DtLbFactor
	ub := upperBoundFirstTimeStep(dtMax, cfg)
	dt = ub
	fnorm := WrmsNorm(f0, w)
	if fnorm > 0 {
		dt = 1.0 / fnorm
	}
	dt = utl.Min(utl.Max(dt, lb), ub)
	if t+dt > tmax {
		dt = tmax - t
	}
	return
}

// upperBoundFirstTimeStep returns the largest admissible first step
func upperBoundFirstTimeStep(dtMax float64, cfg *Config) float64 {
	return cfg.DtUbFactor * dtMax
}
