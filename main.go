// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gode/inp"
	"github.com/cpmech/gode/ode"
	"github.com/cpmech/gode/problems"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/decay", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.PfWhite("\nGode -- Go Ordinary Differential Equation solvers\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// profiling?
	defer utl.DoProf(false)()

	// simulation data
	sim := inp.ReadSim(fnamepath)
	prob, err := problems.Get(sim.Data.Problem)
	if err != nil {
		chk.Panic("cannot allocate problem:\n%v", err)
	}

	// solver
	absTol := sim.AbsTol(prob.N)
	sol, err := ode.NewBDF(prob.Fcn, prob.Jac, nil, prob.Y0, absTol, sim.Solver.Rtol, sim.Config())
	if err != nil {
		chk.Panic("cannot allocate solver:\n%v", err)
	}
	sol.Verbose = sim.Solver.ShowT && verbose

	// scratch buffers
	y := make([]float64, prob.N)
	copy(y, prob.Y0)
	fv := make([]float64, prob.N)
	d := make([]float64, prob.N)
	var jv la.Triplet
	jv.Init(prob.N, prob.N, prob.Nnz)

	// integrate
	err = sol.Compute(nil, nil, fv, &jv, d, y, sim.Solver.Tmax)
	if err != nil {
		chk.Panic("integration failed:\n%v", err)
	}

	// report
	if verbose {
		s := sol.Stat
		io.Pf("\n%q (%s) integrated up to t = %g\n", sim.Data.Problem, prob.Desc, s.LastTime)
		io.Pf("number of steps         = %d\n", s.Nsteps)
		io.Pf("number of rejections    = %d\n", s.Nreject)
		io.Pf("number of F evaluations = %d\n", s.Nfeval)
		io.Pf("number of J evaluations = %d\n", s.Njeval)
		io.Pf("largest order reached   = %d\n", s.Qmax)
		io.Pf("last step size          = %g\n", s.LastDt)
		if prob.N <= 4 {
			io.Pforan("y(tmax) = %v\n", y)
		}
	}
}
