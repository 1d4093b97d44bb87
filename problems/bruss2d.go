// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"github.com/cpmech/gosl/la"
)

// Bruss2D is the two-dimensional Brusselator reaction-diffusion system
// discretised on an nside x nside grid with reflecting boundaries:
//   u' = B + u²v - (A+1)u + α(nside-1)²・∇²u
//   v' = Au - u²v + α(nside-1)²・∇²v
// with A = 3.4, B = 1, α = 0.002 and initial condition
// u(0,x,y) = 2 + 0.25y, v(0,x,y) = 1 + 0.8x. The state interleaves the
// species: y[2i] = u of cell i, y[2i+1] = v of cell i.
type Bruss2D struct {
	A, B  float64
	Alpha float64
	Nside int
	diff  float64 // α・(nside-1)²
}

// neighbours returns the four neighbour cell indices with reflection
func (o *Bruss2D) neighbours(idx int) (top, right, bottom, left int) {
	n := o.Nside
	top, right, bottom, left = idx-n, idx+1, idx+n, idx-1
	if top < 0 {
		top = bottom
	} else if bottom >= n*n {
		bottom = top
	}
	if m := idx % n; m == 0 {
		left = right
	} else if n-m == 1 {
		right = left
	}
	return
}

// NewBruss2D allocates the Brusselator with standard parameters
func NewBruss2D(nside int) (o *Bruss2D) {
	o = new(Bruss2D)
	o.A, o.B, o.Alpha = 3.4, 1.0, 0.002
	o.Nside = nside
	n1 := float64(nside) - 1.0
	o.diff = o.Alpha * n1 * n1
	return
}

// Initial returns the interleaved initial state
func (o *Bruss2D) Initial() (y0 []float64) {
	n := o.Nside
	n1 := float64(n) - 1.0
	y0 = make([]float64, 2*n*n)
	for i := 0; i < n*n; i++ {
		x := float64(i%n) / n1
		y := float64(i/n) / n1
		y0[2*i] = 2.0 + 0.25*y
		y0[2*i+1] = 1.0 + 0.8*x
	}
	return
}

// Fcn computes the right-hand side
func (o *Bruss2D) Fcn(f []float64, t float64, y []float64, args ...interface{}) error {
	ncell := o.Nside * o.Nside
	for i := 0; i < ncell; i++ {
		top, right, bottom, left := o.neighbours(i)
		u, v := y[2*i], y[2*i+1]
		f[2*i] = o.B + u*u*v - (o.A+1.0)*u + o.diff*(y[2*top]+y[2*bottom]+y[2*left]+y[2*right]-4.0*u)
		f[2*i+1] = o.A*u - u*u*v + o.diff*(y[2*top+1]+y[2*bottom+1]+y[2*left+1]+y[2*right+1]-4.0*v)
	}
	return nil
}

// Jac computes the sparse Jacobian
func (o *Bruss2D) Jac(dfdy *la.Triplet, t float64, y []float64, args ...interface{}) error {
	ncell := o.Nside * o.Nside
	dfdy.Start()
	for i := 0; i < ncell; i++ {
		top, right, bottom, left := o.neighbours(i)
		u, v := y[2*i], y[2*i+1]
		iu, iv := 2*i, 2*i+1
		dfdy.Put(iu, iu, 2.0*u*v-(o.A+1.0)-4.0*o.diff)
		dfdy.Put(iu, iv, u*u)
		dfdy.Put(iv, iu, o.A-2.0*u*v)
		dfdy.Put(iv, iv, -u*u-4.0*o.diff)
		for _, nb := range []int{top, right, bottom, left} {
			dfdy.Put(iu, 2*nb, o.diff)
			dfdy.Put(iv, 2*nb+1, o.diff)
		}
	}
	return nil
}

// add problem to factory
func init() {
	allocators["bruss2d"] = func() *Problem {
		b := NewBruss2D(6)
		ncell := b.Nside * b.Nside
		return &Problem{
			Name: "bruss2d",
			Desc: "2D Brusselator reaction-diffusion on a 6x6 grid",
			N:    2 * ncell,
			Nnz:  12 * ncell,
			Y0:   b.Initial(),
			Fcn:  b.Fcn,
			Jac:  b.Jac,
		}
	}
}
