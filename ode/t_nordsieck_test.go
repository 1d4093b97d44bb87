// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_nord01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nord01. update polynomial at order 1")

	cfg := NewConfig()
	h := 0.1
	o := NewNordsieck(1, cfg)
	o.LoadFirst([]float64{1}, []float64{-1}, h)
	o.SetCoeffs(h, 2, cfg.NlsCoef)
	chk.Vector(tst, "l", 1e-15, o.l[:2], []float64{1, 1})
	chk.Scalar(tst, "γ", 1e-15, o.Gamma(), h)
	chk.Scalar(tst, "tq2", 1e-15, o.tq[2], 0.5)
	chk.Scalar(tst, "tq4", 1e-15, o.tq[4], 0.2)
	chk.Scalar(tst, "tq5", 1e-15, o.tq[5], 2)
}

func Test_nord02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nord02. update polynomial at order 2, equal steps")

	cfg := NewConfig()
	h := 0.25
	o := NewNordsieck(1, cfg)
	o.LoadFirst([]float64{1}, []float64{-1}, h)
	o.q = 2
	o.pdt[1] = h
	o.pdt[2] = h
	o.SetCoeffs(h, 1, cfg.NlsCoef)
	chk.Vector(tst, "l", 1e-15, o.l[:3], []float64{1, 1.5, 0.5})
	chk.Scalar(tst, "γ", 1e-15, o.Gamma(), 2.0*h/3.0)
	chk.Scalar(tst, "tq1", 1e-15, o.tq[1], 1)
	chk.Scalar(tst, "tq2", 1e-15, o.tq[2], 2.0/9.0)
	chk.Scalar(tst, "tq3", 1e-15, o.tq[3], 3.0/22.0)
	chk.Scalar(tst, "tq5", 1e-15, o.tq[5], 6)
}

func Test_nord03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nord03. rollback undoes the prediction")

	cfg := NewConfig()
	o := NewNordsieck(2, cfg)
	o.q = 3
	vals := [][]float64{
		{1, 2},
		{0.1, -0.2},
		{0.01, 0.03},
		{-0.004, 0.002},
	}
	for j := 0; j < 4; j++ {
		copy(o.zn[j], vals[j])
	}
	o.Predict()
	chk.Vector(tst, "zn0 (predicted)", 1e-15, o.zn[0], []float64{1.106, 1.832})
	o.Rollback()
	for j := 0; j < 4; j++ {
		chk.Vector(tst, "zn (restored)", 1e-14, o.zn[j], vals[j])
	}
}

func Test_nord04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nord04. order-1 step: predict, correct, shift ring")

	cfg := NewConfig()
	h := 0.5
	o := NewNordsieck(1, cfg)
	o.LoadFirst([]float64{2}, []float64{-2}, h)
	o.SetCoeffs(h, 1, cfg.NlsCoef)
	o.Predict()
	chk.Vector(tst, "zn0", 1e-15, o.Yn(), []float64{1})
	chk.Vector(tst, "zn1", 1e-15, o.zn[1], []float64{-1})

	acor := []float64{0.1}
	o.CompleteStep(h, acor, 1, true)
	chk.Vector(tst, "zn0", 1e-15, o.Yn(), []float64{1.1})
	chk.Vector(tst, "zn1", 1e-15, o.zn[1], []float64{-0.9})
	chk.Scalar(tst, "pdt1", 1e-17, o.pdt[1], h)
	if !o.saved {
		tst.Errorf("correction should have been saved for the order-raise candidate")
		return
	}
	chk.Vector(tst, "saved acor", 1e-17, o.zn[o.qmax], acor)
}

func Test_nord05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nord05. rescaling after dt change")

	cfg := NewConfig()
	o := NewNordsieck(1, cfg)
	o.q = 2
	copy(o.zn[0], []float64{3})
	copy(o.zn[1], []float64{2})
	copy(o.zn[2], []float64{4})
	o.Rescale(0.5)
	chk.Vector(tst, "zn0", 1e-15, o.zn[0], []float64{3})
	chk.Vector(tst, "zn1", 1e-15, o.zn[1], []float64{1})
	chk.Vector(tst, "zn2", 1e-15, o.zn[2], []float64{1})
}

func Test_nord06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nord06. order raise and drop")

	cfg := NewConfig()
	h := 0.5
	o := NewNordsieck(1, cfg)
	o.LoadFirst([]float64{1}, []float64{-1}, h)
	o.pdt[1] = h
	o.SaveCorrection([]float64{0.1})

	// q: 1 -> 2 starts the new column from zero: the multiplier on the
	// saved correction is (-α0 - α1)/Π = (1 - 1)/1 = 0
	o.IncreaseOrder(h)
	if o.Q() != 2 {
		tst.Errorf("order should be 2: q = %d", o.Q())
		return
	}
	chk.Vector(tst, "zn2 (raised)", 1e-17, o.zn[2], []float64{0})

	// q: 2 -> 3 with equal past steps seeds half the saved correction
	// ((-α0 - α1)/Π = (1.5 - 0.5)/2) and folds it into the lower column
	o.pdt[2] = h
	o.SaveCorrection([]float64{0.1})
	o.IncreaseOrder(h)
	if o.Q() != 3 {
		tst.Errorf("order should be 3: q = %d", o.Q())
		return
	}
	chk.Vector(tst, "zn3 (raised)", 1e-15, o.zn[3], []float64{0.05})
	chk.Vector(tst, "zn2 (fixed up)", 1e-15, o.zn[2], []float64{0.05})

	// q: 3 -> 2 folds the dropped column back and zeroes it
	o.DecreaseOrder(h)
	if o.Q() != 2 {
		tst.Errorf("order should be 2: q = %d", o.Q())
		return
	}
	chk.Vector(tst, "zn2 (dropped)", 1e-15, o.zn[2], []float64{0})
	chk.Vector(tst, "zn3 (dropped)", 1e-17, o.zn[3], []float64{0})
}
