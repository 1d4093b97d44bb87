// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim := ReadSim("data/decay.sim")
	if sim == nil {
		tst.Errorf("cannot read decay.sim")
		return
	}
	io.Pforan("sim = %+v\n", sim)
	if sim.Key != "decay" {
		tst.Errorf("wrong key: %q", sim.Key)
		return
	}
	if sim.Data.Problem != "decay" {
		tst.Errorf("wrong problem: %q", sim.Data.Problem)
		return
	}
	chk.Scalar(tst, "rtol", 1e-15, sim.Solver.Rtol, 1e-6)
	chk.Scalar(tst, "atol", 1e-15, sim.Solver.Atol, 1e-8)
	chk.Scalar(tst, "tmax", 1e-15, sim.Solver.Tmax, 1.0)

	// defaults carry into the configuration
	cfg := sim.Config()
	if cfg.Qmax != 5 {
		tst.Errorf("wrong qmax: %d", cfg.Qmax)
		return
	}
	chk.Vector(tst, "absTol", 1e-15, sim.AbsTol(3), []float64{1e-8, 1e-8, 1e-8})
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. overriding solver constants")

	sim := ReadSim("data/bruss2d.sim")
	if sim == nil {
		tst.Errorf("cannot read bruss2d.sim")
		return
	}
	cfg := sim.Config()
	if cfg.NmaxIt != 15 {
		tst.Errorf("nmaxit was not carried over: %d", cfg.NmaxIt)
		return
	}
	chk.Scalar(tst, "tmax", 1e-15, sim.Solver.Tmax, 0.5)
}
