// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "github.com/cpmech/gosl/chk"

// Incomplete lower-upper factorisation with zero fill-in, ILU(0). The factor
// shares the sparsity pattern of the matrix restricted to owned columns:
// halo columns are dropped, so across processors the preconditioner acts in
// block-Jacobi fashion and its applications need no communication.
//
// The factorisation stores, in one array, the strictly lower factors
// L[i,j] = A[i,j]*inv(U[j,j]) and the upper part U including the diagonal.
// Entries produced outside the pattern are discarded (zero fill-in).

// allocIlu builds the ILU pattern on first use: the matrix pattern without
// halo columns, plus the entry map from matrix storage to factor storage
func (o *Matrix) allocIlu() {
	if o.rowPtrIlu != nil {
		return
	}
	ndo := o.Ndo
	o.rowPtrIlu = make([]int, ndo+1)
	o.diaPtrIlu = make([]int, ndo)
	o.a2ilu = make([]int, len(o.ColInd))
	nnz := 0
	for i := 0; i < ndo; i++ {
		o.rowPtrIlu[i] = nnz
		for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
			if o.ColInd[k] < ndo {
				o.a2ilu[k] = nnz
				nnz++
			} else {
				o.a2ilu[k] = -1
			}
		}
	}
	o.rowPtrIlu[ndo] = nnz
	o.colIndIlu = make([]int, nnz)
	for i := 0; i < ndo; i++ {
		for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
			if kilu := o.a2ilu[k]; kilu >= 0 {
				o.colIndIlu[kilu] = o.ColInd[k]
				if o.ColInd[k] == i {
					o.diaPtrIlu[i] = kilu
				}
			}
		}
	}
	o.valsIlu = make([]float64, nnz*o.Nvr*o.Nvr)
}

// iluBlock returns a view of factor entry k
func (o *Matrix) iluBlock(k int) []float64 {
	n2 := o.Nvr * o.Nvr
	return o.valsIlu[k*n2 : (k+1)*n2]
}

// entryIndexIlu returns the factor entry index of block (i,j), or -1
func (o *Matrix) entryIndexIlu(i, j int) int {
	for k := o.rowPtrIlu[i]; k < o.rowPtrIlu[i+1]; k++ {
		if o.colIndIlu[k] == j {
			return k
		}
	}
	return -1
}

// BuildILUPreconditioner copies the current matrix values into the factor
// storage and computes the ILU(0) factorisation in place. Call again after
// every change of the matrix values. Near-zero pivots met while inverting
// the running diagonal are regularised and counted (see
// NumRegularisedPivots).
func (o *Matrix) BuildILUPreconditioner() {
	chk.IntAssert(o.Neq, o.Nvr)
	o.allocIlu()
	bsz := o.bsz()

	// load current values, dropping halo columns
	for k, kilu := range o.a2ilu {
		if kilu >= 0 {
			copy(o.iluBlock(kilu), o.Vals[k*bsz:(k+1)*bsz])
		}
	}

	// factorise row by row; rows above the running one are already final
	inv := o.blk3
	weight := o.blk
	for i := 1; i < o.Ndo; i++ {
		for k := o.rowPtrIlu[i]; k < o.diaPtrIlu[i]; k++ {
			j := o.colIndIlu[k]

			// weight = A[i,j] * inv(U[j,j])
			o.copyIluDiag(j, o.blk2)
			o.gaussInverse(o.blk2, inv)
			o.kern.Gemm(o.iluBlock(k), inv, weight)
			copy(o.iluBlock(k), weight)

			// eliminate: A[i,c] -= weight * U[j,c] for stored entries c > j
			for ku := o.diaPtrIlu[j] + 1; ku < o.rowPtrIlu[j+1]; ku++ {
				c := o.colIndIlu[ku]
				kic := o.entryIndexIlu(i, c)
				if kic < 0 {
					continue
				}
				o.kern.Gemm(weight, o.iluBlock(ku), o.blk2)
				dst := o.iluBlock(kic)
				for m := range dst {
					dst[m] -= o.blk2[m]
				}
			}
		}
	}
}

// copyIluDiag copies the factor diagonal block of row i into dst
func (o *Matrix) copyIluDiag(i int, dst []float64) {
	n2 := o.Nvr * o.Nvr
	copy(dst[:n2], o.valsIlu[o.diaPtrIlu[i]*n2:])
}

// ComputeILUPreconditioner applies the factorisation: z = inv(U)*inv(L)*r
// over the owned blocks. Local operation; no communication.
func (o *Matrix) ComputeILUPreconditioner(r, z *Vector) {
	if o.valsIlu == nil {
		chk.Panic("ILU preconditioner was not built")
	}
	o.checkPrecondVecs(r, z)
	copy(z.OwnedValues(), r.OwnedValues())

	// forward solve with unit lower factor: z[i] -= L[i,j]*z[j], j < i
	for i := 1; i < o.Ndo; i++ {
		zi := z.Block(i)
		for k := o.rowPtrIlu[i]; k < o.diaPtrIlu[i]; k++ {
			o.kern.GemvSub(o.iluBlock(k), z.Block(o.colIndIlu[k]), zi)
		}
	}

	// backward solve: z[i] = inv(U[i,i]) * (z[i] - sum_{j>i} U[i,j]*z[j])
	for i := o.Ndo - 1; i >= 0; i-- {
		zi := z.Block(i)
		copy(o.aux, zi)
		for k := o.diaPtrIlu[i] + 1; k < o.rowPtrIlu[i+1]; k++ {
			o.kern.GemvSub(o.iluBlock(k), z.Block(o.colIndIlu[k]), o.aux)
		}
		o.copyIluDiag(i, o.blk2)
		o.gaussSolve(o.blk2, o.aux)
		copy(zi, o.aux)
	}
}
