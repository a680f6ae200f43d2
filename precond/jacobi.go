// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package precond

import "github.com/flkong15/su2/linalg"

// Jacobi is the block-Jacobi preconditioner: z[i] = inv(D[i]) * r[i] with
// the diagonal blocks inverted at Build time. Singular diagonals fall back
// to the identity; NumSingular reports how many.
type Jacobi struct {
	A     *linalg.Matrix
	nsing int
}

// set factory
func init() {
	allocators["jacobi"] = func(a *linalg.Matrix) Preconditioner {
		return &Jacobi{A: a}
	}
}

func (o *Jacobi) Build() {
	o.nsing = o.A.BuildJacobiPreconditioner()
}

func (o *Jacobi) Apply(r, z *linalg.Vector) {
	o.A.ComputeJacobiPreconditioner(r, z)
}

// NumSingular returns the number of diagonal blocks that could not be
// inverted during the last Build
func (o *Jacobi) NumSingular() int { return o.nsing }
