// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// StepPhase enumerates the states of the step controller
type StepPhase int

const (
	Predicting StepPhase = iota + 1
	Correcting
	ErrorTesting
	Accepting
	Rejecting
	OrderChanging
	Fatal
)

func (p StepPhase) String() string {
	switch p {
	case Predicting:
		return "predicting"
	case Correcting:
		return "correcting"
	case ErrorTesting:
		return "error-testing"
	case Accepting:
		return "accepting"
	case Rejecting:
		return "rejecting"
	case OrderChanging:
		return "order-changing"
	case Fatal:
		return "fatal"
	}
	return "unknown"
}

// Controller is the feedback state machine that accepts or rejects trial
// steps and selects the next order and step size
type Controller struct {

	// collaborators
	cfg  *Config
	hist *Nordsieck

	// state
	phase       StepPhase
	t           float64 // current time
	dt          float64 // current step size
	dtNext      float64 // step size selected for the next step
	dtMax       float64 // upper bound on dt
	qNextChange int     // steps to take before considering an order change
	nist        int     // number of accepted internal steps
	naccept     int     // accepted steps (same as nist; kept for symmetry)
	nreject     int     // rejected steps
	nfail       int     // consecutive rejections in the current step attempt
	fellBack    bool    // order was already forced down to 1 in this attempt

	// local error and growth candidates
	dsm    float64 // normalised local error of the last trial
	etaq   float64 // growth factor at the same order
	etaqm1 float64 // growth factor at order q-1
	etaqp1 float64 // growth factor at order q+1
	eta    float64 // chosen growth factor

	// scratch
	tmp []float64
}

// NewController allocates the controller
func NewController(cfg *Config, hist *Nordsieck, n int) (o *Controller) {
	o = new(Controller)
	o.cfg = cfg
	o.hist = hist
	o.tmp = make([]float64, n)
	o.phase = Predicting
	return
}

// Init sets the initial step size and the bound on dt
func (o *Controller) Init(dt, dtMax float64) {
	o.dt = dt
	o.dtNext = dt
	o.dtMax = dtMax
	o.qNextChange = o.hist.q + 1
	o.phase = Predicting
}

// accessors
func (o *Controller) T() float64       { return o.t }
func (o *Controller) Dt() float64      { return o.dt }
func (o *Controller) DtMax() float64   { return o.dtMax }
func (o *Controller) Phase() StepPhase { return o.phase }
func (o *Controller) Nist() int        { return o.nist }
func (o *Controller) Naccept() int     { return o.naccept }
func (o *Controller) Nreject() int     { return o.nreject }

// TestLocalError computes the normalised local error estimate of the
// correction acor and decides acceptance: accept iff εq ≤ 1
func (o *Controller) TestLocalError(acor, w []float64) (dsm float64, ok bool) {
	o.phase = ErrorTesting
	o.dsm = WrmsNorm(acor, w) * o.hist.tq[2]
	return o.dsm, o.dsm <= 1
}

// Reject handles a failed trial step (convergence failure or error test
// failure). It returns the shrink factor to apply to dt, whether the order
// must be forced down to 1, and a terminal error when dt cannot shrink any
// further.
func (o *Controller) Reject(convFail bool) (eta float64, forceOrderOne bool, err error) {
	o.phase = Rejecting
	o.nreject++
	o.nfail++
	if o.dt <= o.cfg.DtMin*(1.0+1e-12) {
		o.phase = Fatal
		err = failErr(StepSizeUnderflow, "dt = %g cannot be reduced below dtMin = %g at t = %g", o.dt, o.cfg.DtMin, o.t)
		return
	}
	if convFail {
		eta = utl.Max(o.cfg.EtaCF, o.cfg.DtMin/o.dt)
	} else {
		eta = 1.0 / (math.Pow(o.cfg.BiasQ*o.dsm, 1.0/float64(o.hist.q+1)) + o.cfg.Addon)
		eta = utl.Max(eta, utl.Max(o.cfg.EtaMin, o.cfg.DtMin/o.dt))
		if o.nfail >= 2 {
			eta = utl.Min(eta, o.cfg.EtaMaxFail)
		}
	}
	if o.nfail >= o.cfg.MaxDtIter && o.hist.q > 1 && !o.fellBack {
		forceOrderOne = true
		o.fellBack = true
	}
	o.eta = eta
	return
}

// ApplyEta records a step-size change dt → η・dt (history rescaling is the
// caller's responsibility)
func (o *Controller) ApplyEta(eta float64) {
	o.dt *= eta
	o.dtNext = o.dt
}

// ForcedOrderOne records the fallback to order 1 with a fresh step size
func (o *Controller) ForcedOrderOne(dt float64) {
	o.phase = OrderChanging
	o.dt = dt
	o.dtNext = dt
	o.qNextChange = 2
}

// BeginAccept advances time and the step counters; the history update
// (CompleteStep) must follow with the decremented qNextChange
func (o *Controller) BeginAccept() {
	o.phase = Accepting
	o.t += o.dt
	o.nist++
	o.naccept++
	o.qNextChange--
}

// PrepareNext evaluates the candidate growth factors and selects the
// order/step pair for the next step. It returns the order increment
// (-1, 0 or +1) and the growth factor to apply. Growth is suppressed right
// after a failed attempt and unless it exceeds the hysteresis threshold.
func (o *Controller) PrepareNext(acor, w []float64) (dq int, eta float64) {

	// no growth right after failures
	if o.nfail > 0 || o.fellBack {
		if o.qNextChange < 2 {
			o.qNextChange = 2
		}
		o.eta = 1
		o.dtNext = o.dt
		return 0, 1
	}

	q := o.hist.q
	o.etaq = 1.0 / (math.Pow(o.cfg.BiasQ*o.dsm, 1.0/float64(q+1)) + o.cfg.Addon)
	o.etaqm1, o.etaqp1 = 0, 0
	o.eta = o.etaq

	// candidate orders q-1 and q+1 are only considered once the order has
	// been held for q+1 steps
	if o.qNextChange == 0 {
		o.qNextChange = 2
		if q > 1 {
			ddn := WrmsNorm(o.hist.zn[q], w) * o.hist.tq[1]
			o.etaqm1 = 1.0 / (math.Pow(o.cfg.BiasQm1*ddn, 1.0/float64(q)) + o.cfg.Addon)
		}
		if q < o.hist.qmax && o.hist.saved && o.hist.tqSaved[5] > 0 {
			cquot := (o.hist.tq[5] / o.hist.tqSaved[5]) * math.Pow(o.dt/o.hist.pdt[2], float64(q+1))
			for i := 0; i < len(acor); i++ {
				o.tmp[i] = acor[i] - cquot*o.hist.zn[o.hist.qmax][i]
			}
			dup := WrmsNorm(o.tmp, w) * o.hist.tq[3]
			o.etaqp1 = 1.0 / (math.Pow(o.cfg.BiasQp1*dup, 1.0/float64(q+2)) + o.cfg.Addon)
		}
		if o.etaq >= o.etaqp1 {
			if o.etaq <= o.etaqm1 {
				dq, o.eta = -1, o.etaqm1
			}
		} else {
			if o.etaqp1 > o.etaqm1 {
				dq, o.eta = 1, o.etaqp1
			} else {
				dq, o.eta = -1, o.etaqm1
			}
		}
	}

	// hysteresis: keep dt and order unless the best candidate is a clear win
	if o.eta < o.cfg.Threshold {
		o.eta = 1
		o.dtNext = o.dt
		return 0, 1
	}
	etamax := o.cfg.EtaMax
	if o.nist <= 1 {
		etamax = o.cfg.EtaMaxFirst
	}
	o.eta = utl.Min(o.eta, etamax)
	o.eta = utl.Min(o.eta, o.dtMax/o.dt)
	if dq > 0 {
		o.hist.SaveCorrection(acor)
	}
	if dq != 0 {
		o.phase = OrderChanging
		o.qNextChange = q + dq + 1
	}
	o.dtNext = o.dt * o.eta
	return dq, o.eta
}

// EndStep closes an accepted step attempt
func (o *Controller) EndStep() {
	o.nfail = 0
	o.fellBack = false
	o.phase = Predicting
}
