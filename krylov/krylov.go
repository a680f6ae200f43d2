// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package krylov implements the iterative solution of the distributed
// block-sparse systems assembled by implicit schemes. The methods see the
// matrix only through the Operator interface and the preconditioner through
// package precond, so they contain no communication of their own beyond the
// reductions hidden in vector dot products.
package krylov

import (
	"github.com/cpmech/gosl/chk"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/linalg"
	"github.com/flkong15/su2/precond"
)

// Operator groups the named product operations of the distributed system
// matrix. All operations are collective.
type Operator interface {
	Apply(x, y *linalg.Vector)           // y = A*x
	ApplyAdd(x, y *linalg.Vector)        // y += A*x
	ApplySub(x, y *linalg.Vector)        // y -= A*x
	ApplyTransposed(x, y *linalg.Vector) // y = transpose(A)*x
}

// Settings holds the configuration of one linear solve. The zero value is
// usable: missing entries are filled by withDefaults.
type Settings struct {
	Type    string  // Krylov method: "gmres", "fgmres" or "bcgstab"
	Precond string  // preconditioner name; see precond.New
	Tol     float64 // relative tolerance on the residual norm
	MaxIt   int     // maximum number of iterations over all restart cycles
	Restart int     // Krylov subspace size between restarts (gmres/fgmres)
	LineRat float64 // linelet anisotropy threshold; 0 = default
	Kernel  string  // dense block kernel name; "" keeps the matrix default
	Monitor bool    // print the residual history on the root processor
}

// withDefaults returns o with unset entries replaced by the defaults
func (o Settings) withDefaults() Settings {
	if o.Type == "" {
		o.Type = "fgmres"
	}
	if o.Precond == "" {
		o.Precond = "ilu"
	}
	if o.Tol <= 0 {
		o.Tol = 1e-8
	}
	if o.MaxIt < 1 {
		o.MaxIt = 100
	}
	if o.Restart < 1 {
		o.Restart = 30
	}
	return o
}

// Report summarises a linear solve
type Report struct {
	Iterations  int     // outer iterations performed (Krylov directions built)
	Residual    float64 // norm of the final true residual b - A*x
	Converged   bool    // residual reduced below Tol * initial residual
	Diverged    bool    // residual became non-finite or breakdowns repeated
	Breakdowns  int     // recurrence restarts forced by vanishing denominators
	MatVecs     int     // matrix-vector products performed
	PrecApplies int     // preconditioner applications performed
}

// Solver runs one Krylov method on A*x = b, improving x in place
type Solver interface {
	Solve(op Operator, m precond.Preconditioner, b, x *linalg.Vector, ctx comm.Context, cfg Settings) (Report, error)
}

// solverallocators holds the available Krylov method makers
var solverallocators = make(map[string]func() Solver)

// NewSolver returns a Krylov method by name
func NewSolver(name string) Solver {
	allocator, ok := solverallocators[name]
	if !ok {
		chk.Panic("cannot find Krylov solver named %q", name)
	}
	return allocator()
}

// Solve configures and runs a complete linear solve on A*x = b, starting
// from the current content of x: it selects the block kernel, builds the
// preconditioner and iterates until convergence or exhaustion. Collective.
// A non-nil error reports non-convergence or divergence; both are
// recoverable (the caller may retry with a smaller time step) and the
// report carries the final residual either way.
func Solve(a *linalg.Matrix, b, x *linalg.Vector, cfg Settings) (rep Report, err error) {
	cfg = cfg.withDefaults()
	if cfg.Kernel != "" {
		if err = a.SetKernel(cfg.Kernel); err != nil {
			return
		}
	}
	op := linalg.NewMatVecProduct(a)
	m := precond.New(cfg.Precond, a)
	if ll, ok := m.(*precond.Linelet); ok {
		ll.Ratio = cfg.LineRat
	}
	m.Build()
	solver := NewSolver(cfg.Type)
	return solver.Solve(op, m, b, x, a.Ctx, cfg)
}

// newWork allocates a zeroed vector shaped like x
func newWork(x *linalg.Vector) *linalg.Vector {
	return linalg.NewVector(x.NBlk, x.NBlkDomain, x.NVar)
}
