// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// blasKernel implements BlockKernel on top of the registered BLAS
// implementation. For the small blocks of coupled systems (nVar around 5 to
// 10) it pays off when an optimised BLAS is registered; with the pure Go
// reference it is roughly equivalent to the naive kernel.
type blasKernel struct {
	nvar int
	neqn int
}

func (o *blasKernel) Gemv(a, x, y []float64) {
	bi := blas64.Implementation()
	bi.Dgemv(blas.NoTrans, o.nvar, o.neqn, 1, a, o.neqn, x, 1, 0, y, 1)
}

func (o *blasKernel) GemvAdd(a, x, y []float64) {
	bi := blas64.Implementation()
	bi.Dgemv(blas.NoTrans, o.nvar, o.neqn, 1, a, o.neqn, x, 1, 1, y, 1)
}

func (o *blasKernel) GemvSub(a, x, y []float64) {
	bi := blas64.Implementation()
	bi.Dgemv(blas.NoTrans, o.nvar, o.neqn, -1, a, o.neqn, x, 1, 1, y, 1)
}

func (o *blasKernel) GemvTransAdd(a, x, y []float64) {
	bi := blas64.Implementation()
	bi.Dgemv(blas.Trans, o.nvar, o.neqn, 1, a, o.neqn, x, 1, 1, y, 1)
}

func (o *blasKernel) Gemm(a, b, c []float64) {
	bi := blas64.Implementation()
	n := o.nvar
	bi.Dgemm(blas.NoTrans, blas.NoTrans, n, n, n, 1, a, n, b, n, 0, c, n)
}
