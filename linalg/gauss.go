// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// pivotTol is the relative threshold below which a pivot is considered
// numerically zero and replaced by a regularised value of the same sign
const pivotTol = 1e-13

// blockScale returns the magnitude reference for pivot checks on a block
func blockScale(b []float64) (scale float64) {
	scale = 1.0
	for _, v := range b {
		a := math.Abs(v)
		if a > scale {
			scale = a
		}
	}
	return
}

// regularisePivot substitutes a safe value when |piv| falls below
// pivotTol*scale, keeping the sign. It reports whether the substitution
// happened.
func regularisePivot(piv, scale float64) (float64, bool) {
	tol := pivotTol * scale
	if math.Abs(piv) < tol {
		if piv < 0 {
			return -tol, true
		}
		return tol, true
	}
	return piv, false
}

// gaussSolve solves blk*x = rhs for one square NVar block, overwriting rhs
// with x and destroying blk. No row exchanges are performed. Near-zero
// pivots are regularised and counted so the caller can flag the block as
// singular instead of producing NaN.
func (o *Matrix) gaussSolve(blk, rhs []float64) (nreg int) {
	n := o.Nvr
	scale := blockScale(blk)

	// forward elimination
	for j := 0; j < n-1; j++ {
		piv, reg := regularisePivot(blk[j*n+j], scale)
		if reg {
			blk[j*n+j] = piv
			nreg++
		}
		for i := j + 1; i < n; i++ {
			w := blk[i*n+j] / piv
			blk[i*n+j] = w
			for k := j + 1; k < n; k++ {
				blk[i*n+k] -= w * blk[j*n+k]
			}
			rhs[i] -= w * rhs[j]
		}
	}

	// back substitution
	for i := n - 1; i >= 0; i-- {
		piv, reg := regularisePivot(blk[i*n+i], scale)
		if reg {
			blk[i*n+i] = piv
			nreg++
		}
		sum := rhs[i]
		for k := i + 1; k < n; k++ {
			sum -= blk[i*n+k] * rhs[k]
		}
		rhs[i] = sum / piv
	}
	o.nRegular += nreg
	return
}

// gaussInverse computes inv = 1/blk for one square NVar block by
// Gauss-Jordan elimination, destroying blk. Returns the number of
// regularised pivots.
func (o *Matrix) gaussInverse(blk, inv []float64) (nreg int) {
	n := o.Nvr
	scale := blockScale(blk)

	// start from the identity
	for m := range inv[:n*n] {
		inv[m] = 0
	}
	for i := 0; i < n; i++ {
		inv[i*n+i] = 1
	}

	for j := 0; j < n; j++ {
		piv, reg := regularisePivot(blk[j*n+j], scale)
		if reg {
			blk[j*n+j] = piv
			nreg++
		}
		coef := 1.0 / piv
		for k := 0; k < n; k++ {
			blk[j*n+k] *= coef
			inv[j*n+k] *= coef
		}
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			w := blk[i*n+j]
			if w == 0 {
				continue
			}
			for k := 0; k < n; k++ {
				blk[i*n+k] -= w * blk[j*n+k]
				inv[i*n+k] -= w * inv[j*n+k]
			}
		}
	}
	o.nRegular += nreg
	return
}

// copyDiagBlock copies the diagonal block of row i into dst, transposing it
// when asked
func (o *Matrix) copyDiagBlock(i int, dst []float64, transposed bool) {
	src := o.Vals[o.DiaPtr[i]*o.bsz():]
	n := o.Nvr
	if transposed {
		for iv := 0; iv < n; iv++ {
			for jv := 0; jv < n; jv++ {
				dst[iv*n+jv] = src[jv*n+iv]
			}
		}
		return
	}
	copy(dst[:n*n], src[:n*n])
}

// GaussElimination solves D*x = rhs where D is the diagonal block of owned
// row i, overwriting rhs with x. With transposed=true it solves with the
// transpose of D instead, as needed by adjoint sweeps. The matrix values are
// not modified. A non-nil error reports that the block is numerically
// singular; rhs then holds the solution of the regularised block.
func (o *Matrix) GaussElimination(i int, rhs []float64, transposed bool) (err error) {
	chk.IntAssert(o.Neq, o.Nvr)
	chk.IntAssert(len(rhs), o.Nvr)
	o.copyDiagBlock(i, o.blk2, transposed)
	if n := o.gaussSolve(o.blk2, rhs); n > 0 {
		return chk.Err("singular diagonal block of row %d: %d pivot(s) regularised", i, n)
	}
	return
}

// InverseDiagonalBlock computes inv = 1/D where D is the diagonal block of
// owned row i (or its transpose). A non-nil error reports a numerically
// singular block; inv then holds the inverse of the regularised block.
func (o *Matrix) InverseDiagonalBlock(i int, inv []float64, transposed bool) (err error) {
	chk.IntAssert(o.Neq, o.Nvr)
	chk.IntAssert(len(inv), o.Nvr*o.Nvr)
	o.copyDiagBlock(i, o.blk2, transposed)
	if n := o.gaussInverse(o.blk2, inv); n > 0 {
		return chk.Err("singular diagonal block of row %d: %d pivot(s) regularised", i, n)
	}
	return
}
