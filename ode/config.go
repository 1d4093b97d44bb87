// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"github.com/cpmech/gosl/chk"
)

// Config holds the constants controlling order and step-size selection.
// It is set once at construction and never mutated by the solver.
type Config struct {

	// order and retries
	Qmax      int // maximum BDF order
	MaxDtIter int // consecutive rejections before falling back to order 1

	// step-size bounds
	DtMax      float64 // maximum step size; 0 means use tmax - t0
	DtMin      float64 // smallest acceptable step size
	DtLbFactor float64 // first step lower bound: dtMax / DtLbFactor
	DtUbFactor float64 // first step upper bound: dtMax * DtUbFactor

	// step growth control
	Threshold   float64 // hysteresis: keep dt unless growth exceeds this
	EtaMax      float64 // largest growth factor after the first step
	EtaMaxFirst float64 // largest growth factor on the first step
	EtaMin      float64 // smallest shrink factor after an error test failure
	EtaMaxFail  float64 // cap on eta after repeated error test failures
	EtaCF       float64 // shrink factor after a convergence failure

	// local error estimation
	BiasQm1 float64 // safety bias for the order q-1 candidate
	BiasQ   float64 // safety bias for the order q candidate
	BiasQp1 float64 // safety bias for the order q+1 candidate
	Addon   float64 // regularisation added to the eta denominators

	// nonlinear solver
	NlsCoef float64 // safety coefficient for the corrector convergence test
	NmaxIt  int     // maximum iterations of the default nonlinear solver
}

// NewConfig returns the default configuration
func NewConfig() *Config {
	return &Config{
		Qmax:        5,
		MaxDtIter:   4,
		DtMin:       1e-14,
		DtLbFactor:  100.0,
		DtUbFactor:  0.1,
		Threshold:   1.5,
		EtaMax:      10.0,
		EtaMaxFirst: 1e4,
		EtaMin:      0.1,
		EtaMaxFail:  0.2,
		EtaCF:       0.25,
		BiasQm1:     6.0,
		BiasQ:       6.0,
		BiasQp1:     10.0,
		Addon:       1e-6,
		NlsCoef:     0.1,
		NmaxIt:      10,
	}
}

// Validate checks the configuration constants
func (o *Config) Validate() (err error) {
	if o.Qmax < 1 || o.Qmax > 5 {
		return chk.Err("config: Qmax=%d is outside [1,5]", o.Qmax)
	}
	if o.MaxDtIter < 1 {
		return chk.Err("config: MaxDtIter=%d must be at least 1", o.MaxDtIter)
	}
	if o.DtMin <= 0 {
		return chk.Err("config: DtMin=%g must be positive", o.DtMin)
	}
	if o.DtMax < 0 {
		return chk.Err("config: DtMax=%g cannot be negative", o.DtMax)
	}
	if o.Threshold < 1 {
		return chk.Err("config: Threshold=%g must be at least 1", o.Threshold)
	}
	if o.EtaMin <= 0 || o.EtaMin >= 1 {
		return chk.Err("config: EtaMin=%g is outside (0,1)", o.EtaMin)
	}
	if o.EtaMax <= 1 {
		return chk.Err("config: EtaMax=%g must exceed 1", o.EtaMax)
	}
	return
}
