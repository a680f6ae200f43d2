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

// dlamchE is the unit roundoff; denominators below its square count as a
// recurrence breakdown
const dlamchE = 1.0 / (1 << 53)

// BCGSTAB is the stabilised bi-conjugate gradient method. Each iteration
// costs two products and two preconditioner applications. A vanishing ρ or ω
// breaks the recurrence; the method then restarts from the current residual
// and reports divergence if a breakdown happens again.
type BCGSTAB struct {
}

// set factory
func init() {
	solverallocators["bcgstab"] = func() Solver {
		return new(BCGSTAB)
	}
}

// Solve iterates on A*x = b until the true residual norm falls below
// Tol times the initial one
func (o *BCGSTAB) Solve(op Operator, m precond.Preconditioner, b, x *linalg.Vector, ctx comm.Context, cfg Settings) (rep Report, err error) {
	cfg = cfg.withDefaults()

	r := newWork(x)
	rt := newWork(x)
	p := newWork(x)
	v := newWork(x)
	t := newWork(x)
	phat := newWork(x)
	shat := newWork(x)

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

	// restart the recurrence with the current residual as a fresh shadow
	// direction; a repeated breakdown gives up
	first := true
	breakdown := func() bool {
		rep.Breakdowns++
		if rep.Breakdowns > 1 {
			return false
		}
		rt.CopyFrom(r)
		first = true
		return true
	}

	// trueResidual recomputes r = b - A*x, deciding final convergence
	trueResidual := func() {
		r.CopyFrom(b)
		op.ApplySub(x, r)
		rep.MatVecs++
		res = r.Norm(ctx)
		rep.Residual = res
	}

	rt.CopyFrom(r)
	var ρ, ρold, α, ω float64
	for rep.Iterations < cfg.MaxIt {

		ρ = rt.Dot(r, ctx)
		if math.Abs(ρ) < dlamchE*dlamchE {
			if !breakdown() {
				rep.Diverged = true
				err = chk.Err("linear solver diverged: repeated recurrence breakdown after %d iterations", rep.Iterations)
				return
			}
			continue
		}
		if first {
			p.CopyFrom(r)
			first = false
		} else {
			β := (ρ / ρold) * (α / ω)
			p.PlusAX(-ω, v)
			p.Scale(β)
			p.PlusAX(1, r)
		}
		rep.Iterations++

		// half step: x + α*phat annihilates the shadow component
		m.Apply(p, phat)
		op.Apply(phat, v)
		rep.MatVecs++
		rep.PrecApplies++
		den := rt.Dot(v, ctx)
		if math.Abs(den) < dlamchE*dlamchE {
			if !breakdown() {
				rep.Diverged = true
				err = chk.Err("linear solver diverged: repeated recurrence breakdown after %d iterations", rep.Iterations)
				return
			}
			continue
		}
		α = ρ / den
		r.PlusAX(-α, v) // r is now the intermediate residual s
		res = r.Norm(ctx)
		rep.Residual = res
		if res <= target {
			x.PlusAX(α, phat)
			trueResidual()
			if cfg.Monitor && ctx.Root() {
				io.Pf("%6d%25.15e\n", rep.Iterations, res)
			}
			if res <= target {
				rep.Converged = true
				return
			}
			rt.CopyFrom(r) // rounding drift: restart and keep iterating
			first = true
			continue
		}

		// stabilisation step
		m.Apply(r, shat)
		op.Apply(shat, t)
		rep.MatVecs++
		rep.PrecApplies++
		tt := t.Dot(t, ctx)
		if tt == 0 {
			x.PlusAX(α, phat)
			trueResidual()
			if !breakdown() {
				rep.Diverged = true
				err = chk.Err("linear solver diverged: repeated recurrence breakdown after %d iterations", rep.Iterations)
				return
			}
			continue
		}
		ω = t.Dot(r, ctx) / tt
		x.PlusAX(α, phat)
		x.PlusAX(ω, shat)
		r.PlusAX(-ω, t)
		res = r.Norm(ctx)
		rep.Residual = res
		if cfg.Monitor && ctx.Root() {
			io.Pf("%6d%25.15e\n", rep.Iterations, res)
		}
		if math.IsNaN(res) || math.IsInf(res, 0) {
			rep.Diverged = true
			err = chk.Err("linear solver diverged: residual is not finite after %d iterations", rep.Iterations)
			return
		}
		if res <= target {
			trueResidual()
			if res <= target {
				rep.Converged = true
				return
			}
			rt.CopyFrom(r)
			first = true
			continue
		}
		if math.Abs(ω) < dlamchE*dlamchE {
			if !breakdown() {
				rep.Diverged = true
				err = chk.Err("linear solver diverged: repeated recurrence breakdown after %d iterations", rep.Iterations)
				return
			}
			continue
		}
		ρold = ρ
	}

	err = chk.Err("linear solver did not converge after %d iterations: residual=%g target=%g", rep.Iterations, res, target)
	return
}
