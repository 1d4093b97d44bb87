// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gode/ode"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for one integration run
type Data struct {
	Desc    string `json:"desc"`    // description of the run
	Problem string `json:"problem"` // problem key; e.g. "decay", "stiffpair", "bruss2d"
}

// SolverData holds the integrator parameters
type SolverData struct {

	// tolerances
	Rtol float64 `json:"rtol"` // relative tolerance
	Atol float64 `json:"atol"` // absolute tolerance (same for all components)

	// step and order control
	Tmax      float64 `json:"tmax"`      // final time
	DtMax     float64 `json:"dtmax"`     // largest allowed step; 0 => tmax
	DtMin     float64 `json:"dtmin"`     // smallest allowed step
	Qmax      int     `json:"qmax"`      // maximum BDF order
	MaxDtIter int     `json:"maxdtiter"` // rejections before order fallback
	NmaxIt    int     `json:"nmaxit"`    // nonlinear solver iteration budget
	ShowT     bool    `json:"showt"`     // show time progress
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.Rtol = 1e-6
	o.Atol = 1e-8
	o.Tmax = 1.0
}

// Simulation holds one integration run read from a .sim file
type Simulation struct {
	Data   Data       `json:"data"`
	Solver SolverData `json:"solver"`
	Key    string     // simulation key; e.g. mysim.sim => mysim
}

// ReadSim reads a simulation file
func ReadSim(simfilepath string) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Solver.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)
	return &o
}

// Config builds the solver constants from the input parameters; zero-valued
// entries keep their defaults
func (o *Simulation) Config() (cfg *ode.Config) {
	cfg = ode.NewConfig()
	if o.Solver.Qmax > 0 {
		cfg.Qmax = o.Solver.Qmax
	}
	if o.Solver.MaxDtIter > 0 {
		cfg.MaxDtIter = o.Solver.MaxDtIter
	}
	if o.Solver.NmaxIt > 0 {
		cfg.NmaxIt = o.Solver.NmaxIt
	}
	if o.Solver.DtMax > 0 {
		cfg.DtMax = o.Solver.DtMax
	}
	if o.Solver.DtMin > 0 {
		cfg.DtMin = o.Solver.DtMin
	}
	return
}

// AbsTol expands the scalar absolute tolerance to all n components
func (o *Simulation) AbsTol(n int) (absTol []float64) {
	absTol = make([]float64, n)
	for i := 0; i < n; i++ {
		absTol[i] = o.Solver.Atol
	}
	return
}
