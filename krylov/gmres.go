// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/linalg"
	"github.com/flkong15/su2/precond"
)

// GMRES is the restarted generalised minimal residual method. The plain
// variant preconditions on the left and spans the subspace with the
// preconditioned residuals; the flexible variant (FGMRES) preconditions on
// the right and keeps the preconditioned directions, which makes it safe
// with preconditioners that change between applications (sweeps with
// evolving halo data).
type GMRES struct {
	Flexible bool
}

// set factory
func init() {
	solverallocators["gmres"] = func() Solver {
		return &GMRES{}
	}
	solverallocators["fgmres"] = func() Solver {
		return &GMRES{Flexible: true}
	}
}

// givens holds one plane rotation
type givens struct {
	c, s float64
}

// drotg computes the rotation zeroing b in (a, b)
func drotg(a, b float64) givens {
	if b == 0 {
		return givens{c: 1, s: 0}
	}
	if math.Abs(b) > math.Abs(a) {
		tmp := -a / b
		s := 1 / math.Sqrt(1+tmp*tmp)
		return givens{c: tmp * s, s: s}
	}
	tmp := -b / a
	c := 1 / math.Sqrt(1+tmp*tmp)
	return givens{c: c, s: tmp * c}
}

// rotvec applies a rotation to (x, y)
func rotvec(x, y float64, g givens) (rx, ry float64) {
	rx = g.c*x - g.s*y
	ry = g.s*x + g.c*y
	return
}

// Solve iterates on A*x = b until the true residual norm falls below
// Tol times the initial one
func (o *GMRES) Solve(op Operator, m precond.Preconditioner, b, x *linalg.Vector, ctx comm.Context, cfg Settings) (rep Report, err error) {
	cfg = cfg.withDefaults()
	kmax := cfg.Restart

	// Krylov basis and, for the flexible variant, the preconditioned
	// directions z[i] = M⁻¹ v[i]
	v := make([]*linalg.Vector, kmax+1)
	for i := range v {
		v[i] = newWork(x)
	}
	var z []*linalg.Vector
	var aw *linalg.Vector
	if o.Flexible {
		z = make([]*linalg.Vector, kmax)
		for i := range z {
			z[i] = newWork(x)
		}
	} else {
		aw = newWork(x)
	}
	r := newWork(x)
	w := newWork(x)

	// Hessenberg matrix (column-major), rotations and rotated rhs
	ldh := kmax + 1
	h := make([]float64, ldh*kmax)
	givs := make([]givens, kmax)
	s := make([]float64, kmax+1)
	y := make([]float64, kmax)

	// initial residual
	r.CopyFrom(b)
	op.ApplySub(x, r)
	rep.MatVecs++
	res := r.Norm(ctx)
	rep.Residual = res
	if res == 0 {
		rep.Converged = true
		return
	}
	target := cfg.Tol * res
	if cfg.Monitor && ctx.Root() {
		io.Pf("%6s%25s\n", "it", "residual")
		io.Pf("%6d%25.15e\n", 0, res)
	}

	for rep.Iterations < cfg.MaxIt {

		// first direction of the cycle
		if o.Flexible {
			v[0].CopyFrom(r)
		} else {
			m.Apply(r, v[0])
			rep.PrecApplies++
		}
		β := v[0].Norm(ctx)
		if β == 0 {
			// the preconditioner annihilated a nonzero residual
			rep.Diverged = true
			err = chk.Err("linear solver diverged: preconditioned residual vanished while the true residual is %g", res)
			return
		}
		v[0].Scale(1 / β)
		for i := range s {
			s[i] = 0
		}
		s[0] = β

		// inner cycle: grow the subspace until restart, exhaustion or a
		// small estimated residual
		k := 0
		for ; k < kmax && rep.Iterations < cfg.MaxIt; k++ {
			rep.Iterations++

			// w = A M⁻¹ v[k] (flexible) or M⁻¹ A v[k] (plain)
			if o.Flexible {
				m.Apply(v[k], z[k])
				op.Apply(z[k], w)
			} else {
				op.Apply(v[k], aw)
				m.Apply(aw, w)
			}
			rep.MatVecs++
			rep.PrecApplies++

			// modified Gram-Schmidt against the previous directions
			hcol := h[k*ldh : (k+1)*ldh]
			for j := 0; j <= k; j++ {
				hcol[j] = w.Dot(v[j], ctx)
				w.PlusAX(-hcol[j], v[j])
			}
			wnorm := w.Norm(ctx)
			hcol[k+1] = wnorm
			if wnorm > 0 {
				v[k+1].CopyFrom(w)
				v[k+1].Scale(1 / wnorm)
			} else {
				v[k+1].Fill(0) // exact solution inside the subspace
			}

			// rotate the new column into triangular form
			for j := 0; j < k; j++ {
				hcol[j], hcol[j+1] = rotvec(hcol[j], hcol[j+1], givs[j])
			}
			givs[k] = drotg(hcol[k], hcol[k+1])
			hcol[k], hcol[k+1] = rotvec(hcol[k], hcol[k+1], givs[k])
			s[k], s[k+1] = rotvec(s[k], s[k+1], givs[k])

			// estimated residual norm of the least-squares problem
			est := math.Abs(s[k+1])
			if cfg.Monitor && ctx.Root() {
				io.Pf("%6d%25.15e\n", rep.Iterations, est)
			}
			if est <= target {
				k++
				break
			}
		}

		// solve the triangular system H*y = s for the k directions built
		for j := k - 1; j >= 0; j-- {
			sum := s[j]
			for l := j + 1; l < k; l++ {
				sum -= h[l*ldh+j] * y[l]
			}
			y[j] = sum / h[j*ldh+j]
		}

		// update the solution
		for j := 0; j < k; j++ {
			if o.Flexible {
				x.PlusAX(y[j], z[j])
			} else {
				x.PlusAX(y[j], v[j])
			}
		}

		// true residual decides convergence and seeds the next cycle
		r.CopyFrom(b)
		op.ApplySub(x, r)
		rep.MatVecs++
		res = r.Norm(ctx)
		rep.Residual = res
		if math.IsNaN(res) || math.IsInf(res, 0) {
			rep.Diverged = true
			err = chk.Err("linear solver diverged: residual is not finite after %d iterations", rep.Iterations)
			return
		}
		if res <= target {
			rep.Converged = true
			return
		}
	}

	err = chk.Err("linear solver did not converge after %d iterations: residual=%g target=%g", rep.Iterations, res, target)
	return
}
