// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package precond provides the preconditioners of the Krylov solvers. Each
// preconditioner wraps a matrix and applies an approximate inverse of it to
// residual vectors. The heavy numerical work lives with the matrix storage
// in package linalg; this package selects, builds and applies.
package precond

import (
	"github.com/cpmech/gosl/chk"

	"github.com/flkong15/su2/linalg"
)

// Preconditioner applies an approximate inverse of the system matrix
type Preconditioner interface {

	// Build recomputes the preconditioner from the current matrix values;
	// it must be called again whenever the values change
	Build()

	// Apply computes z = M⁻¹ * r. Build must have been called before. Apply
	// is repeatable: same r, same z, no hidden state updates.
	Apply(r, z *linalg.Vector)
}

// allocators holds the available preconditioner makers
var allocators = make(map[string]func(a *linalg.Matrix) Preconditioner)

// New returns a preconditioner by name:
//  "none"    -- identity (no preconditioning)
//  "jacobi"  -- block-Jacobi with inverted diagonal blocks
//  "lusgs"   -- symmetric lower-upper sweeps
//  "ilu"     -- incomplete factorisation with zero fill-in
//  "linelet" -- exact solves along strongly coupled chains
func New(name string, a *linalg.Matrix) Preconditioner {
	allocator, ok := allocators[name]
	if !ok {
		chk.Panic("cannot find preconditioner named %q", name)
	}
	return allocator(a)
}
