// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

// MatVecProduct is the distributed matrix-vector product: it reconciles the
// halo copies of the input before the local compute and of the output after
// it, so callers always observe consistent vectors. All methods are
// collective; every processor of the matrix group must call them together.
type MatVecProduct struct {
	A *Matrix
}

// NewMatVecProduct wraps a matrix as a distributed product operator
func NewMatVecProduct(a *Matrix) *MatVecProduct {
	return &MatVecProduct{A: a}
}

// Apply computes y = A*x
func (o *MatVecProduct) Apply(x, y *Vector) {
	o.A.xchg.Refresh(x)
	o.A.Product(x, y)
	o.A.xchg.Refresh(y)
}

// ApplyAdd computes y += A*x
func (o *MatVecProduct) ApplyAdd(x, y *Vector) {
	o.A.xchg.Refresh(x)
	o.A.ProductAdd(x, y)
	o.A.xchg.Refresh(y)
}

// ApplySub computes y -= A*x; this is how residuals r = b - A*x are formed
func (o *MatVecProduct) ApplySub(x, y *Vector) {
	o.A.xchg.Refresh(x)
	o.A.ProductSub(x, y)
	o.A.xchg.Refresh(y)
}

// ApplyTransposed computes y = transpose(A)*x. The local scatter leaves
// contributions on halo columns; they are reduced onto their owners and the
// halo copies refreshed afterwards.
func (o *MatVecProduct) ApplyTransposed(x, y *Vector) {
	o.A.xchg.Refresh(x)
	o.A.ProductTransposed(x, y)
	o.A.xchg.Reduce(y)
	o.A.xchg.Refresh(y)
}
