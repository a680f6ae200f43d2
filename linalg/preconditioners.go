// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "github.com/cpmech/gosl/chk"

// This file holds the preconditioner computations that work directly on the
// matrix storage: block-Jacobi and the symmetric lower-upper sweep (LU-SGS).
// The incomplete factorisation and the linelet solver live in their own
// files. All Build* methods read the current matrix values and must be
// called again whenever the values change; the Compute* methods apply the
// preconditioner to a residual and have no side effects besides scratch use.

// BuildJacobiPreconditioner inverts all owned diagonal blocks and stores the
// inverses. Numerically singular blocks are replaced by the identity so the
// sweep stays usable; their count is returned for diagnostics.
func (o *Matrix) BuildJacobiPreconditioner() (nsingular int) {
	chk.IntAssert(o.Neq, o.Nvr)
	n2 := o.Nvr * o.Nvr
	if o.invDiag == nil {
		o.invDiag = make([]float64, o.Ndo*n2)
	}
	for i := 0; i < o.Ndo; i++ {
		inv := o.invDiag[i*n2 : (i+1)*n2]
		if err := o.InverseDiagonalBlock(i, inv, false); err != nil {
			for m := range inv {
				inv[m] = 0
			}
			for iv := 0; iv < o.Nvr; iv++ {
				inv[iv*o.Nvr+iv] = 1
			}
			nsingular++
		}
	}
	return
}

// ComputeJacobiPreconditioner applies the block-Jacobi preconditioner:
// z[i] = inv(D[i]) * r[i] for every owned block. Local operation; no
// communication.
func (o *Matrix) ComputeJacobiPreconditioner(r, z *Vector) {
	if o.invDiag == nil {
		chk.Panic("Jacobi preconditioner was not built")
	}
	o.checkPrecondVecs(r, z)
	n2 := o.Nvr * o.Nvr
	for i := 0; i < o.Ndo; i++ {
		o.kern.Gemv(o.invDiag[i*n2:(i+1)*n2], r.Block(i), z.Block(i))
	}
}

// ComputeLUSGSPreconditioner applies one symmetric lower-upper sweep:
//
//	forward   z[i] = inv(D[i]) * (r[i] - sum_{j<i} A[i,j]*z[j])
//	backward  z[i] = inv(D[i]) * (D[i]*z[i] - sum_{j>i} A[i,j]*z[j])
//
// Halo columns always sit in the upper part, so the forward sweep is purely
// local; the halo copies of z are reconciled once between the sweeps and
// once at the end. Collective: every processor must call it together.
func (o *Matrix) ComputeLUSGSPreconditioner(r, z *Vector) {
	chk.IntAssert(o.Neq, o.Nvr)
	o.checkPrecondVecs(r, z)

	// forward sweep
	for i := 0; i < o.Ndo; i++ {
		o.LowerProduct(z, i, o.aux)
		ri := r.Block(i)
		zi := z.Block(i)
		for m := range zi {
			zi[m] = ri[m] - o.aux[m]
		}
		o.copyDiagBlock(i, o.blk2, false)
		o.gaussSolve(o.blk2, zi)
	}

	o.xchg.Refresh(z)

	// backward sweep
	for i := o.Ndo - 1; i >= 0; i-- {
		o.DiagonalProduct(z, i, o.aux)
		o.UpperProduct(z, i, o.aux2)
		zi := z.Block(i)
		for m := range zi {
			zi[m] = o.aux[m] - o.aux2[m]
		}
		o.copyDiagBlock(i, o.blk2, false)
		o.gaussSolve(o.blk2, zi)
	}

	o.xchg.Refresh(z)
}

// checkPrecondVecs panics unless r and z are shaped for preconditioner
// applications with o
func (o *Matrix) checkPrecondVecs(r, z *Vector) {
	chk.IntAssert(r.NVar, o.Nvr)
	chk.IntAssert(r.NBlk, o.Nbk)
	chk.IntAssert(r.NBlkDomain, o.Ndo)
	chk.IntAssert(z.NVar, o.Nvr)
	chk.IntAssert(z.NBlk, o.Nbk)
	chk.IntAssert(z.NBlkDomain, o.Ndo)
}
