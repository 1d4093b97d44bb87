// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_ctrl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ctrl01. local error test")

	cfg := NewConfig()
	hist := NewNordsieck(1, cfg)
	hist.LoadFirst([]float64{1}, []float64{-1}, 0.1)
	hist.SetCoeffs(0.1, 2, cfg.NlsCoef) // tq2 = 0.5 at order 1
	ctl := NewController(cfg, hist, 1)
	ctl.Init(0.1, 1.0)

	w := []float64{1}
	dsm, ok := ctl.TestLocalError([]float64{1}, w)
	chk.Scalar(tst, "εq (accept)", 1e-15, dsm, 0.5)
	if !ok {
		tst.Errorf("step with εq = %g should have been accepted", dsm)
		return
	}

	dsm, ok = ctl.TestLocalError([]float64{3}, w)
	chk.Scalar(tst, "εq (reject)", 1e-15, dsm, 1.5)
	if ok {
		tst.Errorf("step with εq = %g should have been rejected", dsm)
	}
}

func Test_ctrl02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ctrl02. hysteresis keeps dt on marginal gains")

	cfg := NewConfig()
	hist := NewNordsieck(1, cfg)
	hist.LoadFirst([]float64{1}, []float64{-1}, 0.1)
	hist.SetCoeffs(0.1, 2, cfg.NlsCoef)
	ctl := NewController(cfg, hist, 1)
	ctl.Init(0.1, 1.0)

	// εq = 0.1 gives ηq ≈ 1.29 < threshold => keep dt and order
	w := []float64{1}
	if _, ok := ctl.TestLocalError([]float64{0.2}, w); !ok {
		tst.Errorf("trial should have passed the error test")
		return
	}
	ctl.BeginAccept()
	if ctl.Nist() != 1 || ctl.Naccept() != 1 {
		tst.Errorf("wrong counters: nist = %d, naccept = %d", ctl.Nist(), ctl.Naccept())
		return
	}
	dq, eta := ctl.PrepareNext([]float64{0.2}, w)
	if dq != 0 {
		tst.Errorf("order should not change: dq = %d", dq)
		return
	}
	chk.Scalar(tst, "η", 1e-15, eta, 1)
	chk.Scalar(tst, "dt", 1e-15, ctl.Dt(), 0.1)
}

func Test_ctrl03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ctrl03. growth is clamped by dtMax")

	cfg := NewConfig()
	hist := NewNordsieck(1, cfg)
	hist.LoadFirst([]float64{1}, []float64{-1}, 0.1)
	hist.SetCoeffs(0.1, 2, cfg.NlsCoef)
	ctl := NewController(cfg, hist, 1)
	ctl.Init(0.1, 1.0)
	chk.Scalar(tst, "dtMax", 1e-15, ctl.DtMax(), 1.0)

	// a tiny error estimate asks for a large η; dtMax/dt = 10 wins
	w := []float64{1}
	ctl.TestLocalError([]float64{1e-6}, w)
	ctl.BeginAccept()
	dq, eta := ctl.PrepareNext([]float64{1e-6}, w)
	if dq != 0 {
		tst.Errorf("order should not change: dq = %d", dq)
		return
	}
	chk.Scalar(tst, "η", 1e-15, eta, 10)
	chk.Scalar(tst, "dtNext", 1e-15, ctl.dtNext, 1.0)
}

func Test_ctrl04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ctrl04. shrink factors on rejection")

	cfg := NewConfig()
	hist := NewNordsieck(1, cfg)
	hist.LoadFirst([]float64{1}, []float64{-1}, 1e-3)
	hist.SetCoeffs(1e-3, 2, cfg.NlsCoef)
	ctl := NewController(cfg, hist, 1)
	ctl.Init(1e-3, 1.0)

	// error test failure with εq = 2
	w := []float64{1}
	if _, ok := ctl.TestLocalError([]float64{4}, w); ok {
		tst.Errorf("trial should have failed the error test")
		return
	}
	eta, force, err := ctl.Reject(false)
	if err != nil {
		tst.Errorf("Reject failed: %v", err)
		return
	}
	if force {
		tst.Errorf("fallback to order 1 should not trigger at order 1")
		return
	}
	chk.Scalar(tst, "η (1st fail)", 1e-6, eta, 1.0/(math.Sqrt(12.0)+cfg.Addon))
	if ctl.Phase() != Rejecting {
		tst.Errorf("phase should be rejecting: %v", ctl.Phase())
		return
	}

	// repeated failures cap the factor harder
	eta, _, err = ctl.Reject(false)
	if err != nil {
		tst.Errorf("Reject failed: %v", err)
		return
	}
	chk.Scalar(tst, "η (2nd fail)", 1e-15, eta, cfg.EtaMaxFail)

	// convergence failures use a fixed factor
	eta, _, err = ctl.Reject(true)
	if err != nil {
		tst.Errorf("Reject failed: %v", err)
		return
	}
	chk.Scalar(tst, "η (conv fail)", 1e-15, eta, cfg.EtaCF)
	if ctl.Nreject() != 3 {
		tst.Errorf("wrong rejection count: %d", ctl.Nreject())
	}
}

func Test_ctrl05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ctrl05. step size underflow is terminal")

	cfg := NewConfig()
	hist := NewNordsieck(1, cfg)
	ctl := NewController(cfg, hist, 1)
	ctl.Init(cfg.DtMin, 1.0)

	_, _, err := ctl.Reject(true)
	if err == nil {
		tst.Errorf("Reject at dt = dtMin should have failed")
		return
	}
	if Kind(err) != StepSizeUnderflow {
		tst.Errorf("wrong failure kind: %v", err)
		return
	}
	if ctl.Phase() != Fatal {
		tst.Errorf("phase should be fatal: %v", ctl.Phase())
	}
}

func Test_ctrl06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ctrl06. fallback to order 1 after repeated rejections")

	cfg := NewConfig()
	hist := NewNordsieck(1, cfg)
	hist.q = 3
	ctl := NewController(cfg, hist, 1)
	ctl.Init(0.1, 1.0)

	for i := 1; i < cfg.MaxDtIter; i++ {
		_, force, err := ctl.Reject(true)
		if err != nil {
			tst.Errorf("Reject failed: %v", err)
			return
		}
		if force {
			tst.Errorf("fallback triggered too early: nfail = %d", i)
			return
		}
	}
	_, force, err := ctl.Reject(true)
	if err != nil {
		tst.Errorf("Reject failed: %v", err)
		return
	}
	if !force {
		tst.Errorf("fallback should trigger after %d rejections", cfg.MaxDtIter)
		return
	}

	// only once per step attempt
	ctl.ForcedOrderOne(0.01)
	if ctl.qNextChange != 2 {
		tst.Errorf("qNextChange should be 2 after the fallback: %d", ctl.qNextChange)
		return
	}
	_, force, err = ctl.Reject(true)
	if err != nil {
		tst.Errorf("Reject failed: %v", err)
		return
	}
	if force {
		tst.Errorf("fallback should not trigger twice in the same attempt")
	}
}
