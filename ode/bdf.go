// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// BDF is an implicit linear-multistep integrator for stiff systems, with
// variable order (1..5) and variable step size. One instance owns its
// history, weights and scratch buffers exclusively; a given instance must
// not run more than one step at a time.
type BDF struct {

	// problem definition
	fcn Cb_fcn
	jac Cb_jac

	// components
	conf *Config
	nls  NonLinSolver
	wts  *Weights
	hist *Nordsieck
	ctl  *Controller
	cor  *Corrector

	// statistics and options
	Stat    Stat
	Verbose bool // show time progress

	// scratch
	n    int
	u    []float64
	ftmp []float64
}

// NewBDF allocates the solver.
//  Input:
//   fcn, jac -- the problem functional F and its Jacobian J (sparse)
//   nls      -- nonlinear solver for the corrector equation; nil => Newton
//   y0       -- initial state (length defines the system size)
//   absTol   -- absolute tolerance per component (same length as y0)
//   relTol   -- scalar relative tolerance
//   conf     -- solver constants; nil => defaults
func NewBDF(fcn Cb_fcn, jac Cb_jac, nls NonLinSolver, y0, absTol []float64, relTol float64, conf *Config) (o *BDF, err error) {

	// check dimensions
	n := len(y0)
	if n < 1 {
		return nil, failErr(DimensionMismatch, "initial state is empty")
	}
	if len(absTol) != n {
		return nil, failErr(DimensionMismatch, "len(absTol) = %d differs from system size N = %d", len(absTol), n)
	}

	// configuration
	if conf == nil {
		conf = NewConfig()
	}
	if err = conf.Validate(); err != nil {
		return nil, chk.Err("bdf: invalid configuration: %v", err)
	}

	// components
	o = new(BDF)
	o.n = n
	o.fcn = fcn
	o.jac = jac
	o.conf = conf
	o.wts = new(Weights)
	o.wts.Init(relTol, absTol)
	if err = o.wts.Eval(y0); err != nil {
		return nil, err
	}
	o.hist = NewNordsieck(n, conf)
	o.ctl = NewController(conf, o.hist, n)
	o.cor = NewCorrector(fcn, jac, o.hist, &o.Stat)
	o.nls = nls
	if o.nls == nil {
		o.nls = NewNewton(n, conf)
	}

	// scratch
	o.u = make([]float64, n)
	o.ftmp = make([]float64, n)
	return
}

// accessors
func (o *BDF) T() float64       { return o.ctl.t }
func (o *BDF) Dt() float64      { return o.ctl.dt }
func (o *BDF) Q() int           { return o.hist.q }
func (o *BDF) Phase() StepPhase { return o.ctl.phase }

// Compute advances the solution until tmax.
//  Input:
//   fcn, jac -- problem pair for this run; nil => pair given at construction
//   fv       -- scratch for residual evaluations (length N, caller-owned)
//   jv       -- scratch for Jacobian evaluations (caller-owned; must be
//               initialised with enough capacity for the problem)
//   d        -- scratch for the correction vector (length N, caller-owned)
//   y        -- in: state at the current time; out: state at min(tfinal, tmax)
// Only fatal failures are returned; convergence and error-test failures
// are handled internally by shrinking the step.
func (o *BDF) Compute(fcn Cb_fcn, jac Cb_jac, fv []float64, jv *la.Triplet, d, y []float64, tmax float64) (err error) {

	// the fatal state is terminal
	if o.ctl.phase == Fatal {
		return failErr(FatalIntegrationFailure, "the integrator is in a fatal state and cannot be reused")
	}

	// check dimensions
	if len(y) != o.n || len(fv) != o.n || len(d) != o.n {
		return failErr(DimensionMismatch, "scratch or state vectors disagree with N = %d: len(y)=%d len(fv)=%d len(d)=%d", o.n, len(y), len(fv), len(d))
	}

	// bind problem and scratch
	if fcn != nil {
		o.cor.fcn = fcn
	} else {
		fcn = o.fcn
	}
	if jac != nil {
		o.cor.jac = jac
	}
	o.cor.Set(fv, jv)

	// nothing to do
	if tmax <= o.ctl.t {
		return
	}

	// first call: initial step size and history
	if o.ctl.nist == 0 && o.ctl.nreject == 0 {
		if err = o.wts.Eval(y); err != nil {
			return
		}
		if err = fcn(o.ftmp, o.ctl.t, y); err != nil {
			return chk.Err("bdf: cannot evaluate functional at the initial state: %v", err)
		}
		o.Stat.Nfeval++
		dtMax := o.conf.DtMax
		if dtMax <= 0 {
			dtMax = tmax - o.ctl.t
		}
		dt := initialTimeStep(o.ctl.t, tmax, dtMax, o.ftmp, o.wts.W, o.conf)
		o.hist.LoadFirst(y, o.ftmp, dt)
		o.ctl.Init(dt, dtMax)
	}

	// time loop
	for o.ctl.t < tmax {

		// clamp the last step to land on tmax
		if o.ctl.t+o.ctl.dt > tmax {
			eta := (tmax - o.ctl.t) / o.ctl.dt
			if eta < 1e-10 {
				// the remaining interval is roundoff; snap to tmax
				o.ctl.t = tmax
				break
			}
			o.hist.Rescale(eta)
			o.ctl.ApplyEta(eta)
		}

		// one internal step with retries
		if err = o.step(d); err != nil {
			o.syncStat()
			return
		}
	}

	// results
	copy(y, o.hist.zn[0])
	o.syncStat()
	return
}

// step performs one internal step, retrying with smaller steps (and, if
// needed, lower order) until the trial is accepted or the retries are
// exhausted
func (o *BDF) step(d []float64) (err error) {

	// weights from the last accepted solution
	if err = o.wts.Eval(o.hist.zn[0]); err != nil {
		o.ctl.phase = Fatal
		return
	}

	for {

		// predictor
		o.ctl.phase = Predicting
		o.hist.SetCoeffs(o.ctl.dt, o.ctl.qNextChange, o.conf.NlsCoef)
		o.hist.Predict()
		tnew := o.ctl.t + o.ctl.dt

		// corrector: external nonlinear solve of G(u) = 0
		o.ctl.phase = Correcting
		o.cor.StartStep(o.ctl.dt)
		copy(o.u, o.hist.zn[0])
		nit, errnls := o.nls.Solve(o.u, o.cor.G, o.cor.H, o.wts.W, o.hist.tq[4], tnew)
		o.Stat.Nitnls += nit
		if errnls != nil {
			if err = o.reject(true); err != nil {
				return
			}
			continue
		}

		// local truncation error test
		for i := 0; i < o.n; i++ {
			d[i] = o.u[i] - o.hist.zn[0][i]
		}
		if _, ok := o.ctl.TestLocalError(d, o.wts.W); !ok {
			if err = o.reject(false); err != nil {
				return
			}
			continue
		}

		// accept: fold the correction into the history and retune (q, dt)
		o.ctl.BeginAccept()
		firstStep := o.ctl.nist == 1
		o.hist.CompleteStep(o.ctl.dt, d, o.ctl.qNextChange, firstStep)
		dq, eta := o.ctl.PrepareNext(d, o.wts.W)
		if dq > 0 {
			o.hist.IncreaseOrder(o.ctl.dt)
		} else if dq < 0 {
			o.hist.DecreaseOrder(o.ctl.dt)
		}
		if eta != 1 {
			o.hist.Rescale(eta)
			o.ctl.ApplyEta(eta)
		}
		if o.hist.q > o.Stat.Qmax {
			o.Stat.Qmax = o.hist.q
		}
		o.ctl.EndStep()
		if o.Verbose {
			io.PfWhite("%30.15f\r", o.ctl.t)
		}
		return nil
	}
}

// reject rolls the history back and shrinks the step, falling back to
// order 1 after too many consecutive rejections; it returns a terminal
// error when the step size hits its floor
func (o *BDF) reject(convFail bool) (err error) {
	o.hist.Rollback()
	eta, forceOrderOne, rerr := o.ctl.Reject(convFail)
	if rerr != nil {
		return failErr(FatalIntegrationFailure, "cannot complete step at t = %g: %v", o.ctl.t, rerr)
	}
	if forceOrderOne {
		newdt := eta * o.ctl.dt
		if err = o.cor.fcn(o.ftmp, o.ctl.t, o.hist.zn[0]); err != nil {
			o.ctl.phase = Fatal
			return failErr(FatalIntegrationFailure, "cannot rebuild history at order 1: %v", err)
		}
		o.Stat.Nfeval++
		o.hist.LoadFirst(o.hist.zn[0], o.ftmp, newdt)
		o.ctl.ForcedOrderOne(newdt)
		return nil
	}
	o.hist.Rescale(eta)
	o.ctl.ApplyEta(eta)
	return nil
}

// syncStat copies the controller counters into the statistics
func (o *BDF) syncStat() {
	o.Stat.Nsteps = o.ctl.nist
	o.Stat.Naccept = o.ctl.naccept
	o.Stat.Nreject = o.ctl.nreject
	o.Stat.LastDt = o.ctl.dt
	o.Stat.LastTime = o.ctl.t
}
