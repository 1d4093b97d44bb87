// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"github.com/cpmech/gosl/la"
)

// stiffpair is the classic stiff linear pair with eigenvalues -1 and -1000:
//   y0' =  998・y0 + 1998・y1
//   y1' = -999・y0 - 1999・y1
// with y(0) = {1, 0}; closed form in the ana package
func init() {
	allocators["stiffpair"] = func() *Problem {
		p := &Problem{
			Name: "stiffpair",
			Desc: "stiff 2x2 linear system with eigenvalues -1 and -1000",
			N:    2,
			Nnz:  4,
			Y0:   []float64{1, 0},
		}
		p.Fcn = func(f []float64, t float64, y []float64, args ...interface{}) error {
			f[0] = 998*y[0] + 1998*y[1]
			f[1] = -999*y[0] - 1999*y[1]
			return nil
		}
		p.Jac = func(dfdy *la.Triplet, t float64, y []float64, args ...interface{}) error {
			dfdy.Start()
			dfdy.Put(0, 0, 998)
			dfdy.Put(0, 1, 1998)
			dfdy.Put(1, 0, -999)
			dfdy.Put(1, 1, -1999)
			return nil
		}
		return p
	}
}
