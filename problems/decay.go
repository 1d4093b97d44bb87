// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"github.com/cpmech/gosl/la"
)

// add problem to factory
func init() {
	allocators["decay"] = func() *Problem {
		p := &Problem{
			Name: "decay",
			Desc: "scalar exponential decay: y' = -y, y(0) = 1",
			N:    1,
			Nnz:  1,
			Y0:   []float64{1},
		}
		p.Fcn = func(f []float64, t float64, y []float64, args ...interface{}) error {
			f[0] = -y[0]
			return nil
		}
		p.Jac = func(dfdy *la.Triplet, t float64, y []float64, args ...interface{}) error {
			dfdy.Start()
			dfdy.Put(0, 0, -1)
			return nil
		}
		return p
	}
}
