// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/part"
)

// Matrix is the distributed block-sparse matrix in block compressed-row
// format. Each processor stores the rows of its owned unknowns only. Column
// indices are local: columns below NBlkDomain refer to owned unknowns and
// columns from NBlkDomain on refer to halo unknowns owned by neighbour
// processors, in the order given by HaloGlobal. Every block has NVar rows and
// NEqn columns and is stored row-major in the flat Vals slice.
//
// The sparsity pattern is fixed at construction; values change freely via the
// block set/add operations. Preconditioner data (inverted diagonals, the
// incomplete factorisation, linelet structures) lives alongside the matrix
// and is rebuilt on demand from the current values.
type Matrix struct {

	// essential
	Ctx comm.Context             // processor group
	Ptn *part.LinearPartitioner  // row ownership
	Nvr int                      // NVar: rows per block
	Neq int                      // NEqn: columns per block
	Ndo int                      // NBlkDomain: owned block rows
	Nbk int                      // NBlk: owned + halo block columns
	Hgl []int                    // HaloGlobal: global index of each halo column

	// block compressed-row pattern and values
	RowPtr []int      // [Ndo+1] start of each row in ColInd/Vals
	ColInd []int      // [nnz] local column index of each entry, ascending per row
	DiaPtr []int      // [Ndo] entry index of the diagonal block of each row
	Vals   []float64  // [nnz*Nvr*Neq] flat block values

	// incomplete factorisation (allocated by BuildILUPreconditioner)
	rowPtrIlu []int
	colIndIlu []int
	diaPtrIlu []int
	valsIlu   []float64
	a2ilu     []int // entry index in ILU arrays for each entry of A; -1 for halo columns

	// inverted diagonal blocks (allocated by BuildJacobiPreconditioner)
	invDiag []float64

	// linelet structures (allocated by BuildLineletPreconditioner)
	lines   [][]int   // owned points of each line, in chain order
	inLine  []bool    // whether each owned point belongs to a line
	lineDia []float64 // [maxLineLen*Nvr*Nvr] modified diagonals of the running line
	lineRhs []float64 // [maxLineLen*Nvr] right-hand side of the running line

	// machinery
	kern BlockKernel // dense block products
	xchg *Exchanger  // halo reconciliation

	// scratch (kernels are single-threaded per processor)
	blk  []float64 // Nvr*Neq
	blk2 []float64
	blk3 []float64
	aux  []float64 // Nvr
	aux2 []float64

	// diagnostics
	nRegular int // pivots regularised since construction
}

// NewMatrix builds the local part of a distributed block matrix.
//  ctx        -- processor group
//  ptn        -- partition assigning global block rows to processors
//  nvar, neqn -- block dimensions (rows, columns per block)
//  pattern    -- for each owned row, the local column indices of its nonzero
//                blocks. The diagonal is included automatically if absent.
//                Columns at NBlkDomain and beyond refer to halo unknowns.
//  haloGlobal -- global indices of the halo unknowns, defining the local
//                index NBlkDomain+k for haloGlobal[k]. Must not contain
//                indices owned by this processor.
// Structural mistakes are programming errors and panic.
func NewMatrix(ctx comm.Context, ptn *part.LinearPartitioner, nvar, neqn int, pattern [][]int, haloGlobal []int) (o *Matrix) {

	// dimensions
	ndo := ptn.SizeOnRank[ctx.Rank]
	chk.IntAssert(len(pattern), ndo)
	nbk := ndo + len(haloGlobal)
	if nvar < 1 || neqn < 1 {
		chk.Panic("invalid block dimensions: nvar=%d neqn=%d", nvar, neqn)
	}

	// halo indices must be valid and foreign
	first := ptn.CumSizeBeforeRank[ctx.Rank]
	last := first + ndo
	for _, g := range haloGlobal {
		if g < 0 || g >= ptn.GlobalCount {
			chk.Panic("halo index %d is out of the global range [0,%d)", g, ptn.GlobalCount)
		}
		if g >= first && g < last {
			chk.Panic("halo index %d is owned by this processor (rank %d)", g, ctx.Rank)
		}
	}

	o = new(Matrix)
	o.Ctx = ctx
	o.Ptn = ptn
	o.Nvr = nvar
	o.Neq = neqn
	o.Ndo = ndo
	o.Nbk = nbk
	o.Hgl = make([]int, len(haloGlobal))
	copy(o.Hgl, haloGlobal)

	// assemble pattern: per-row sorted unique columns with the diagonal present
	o.RowPtr = make([]int, ndo+1)
	cols := make([][]int, ndo)
	nnz := 0
	for i := 0; i < ndo; i++ {
		set := make(map[int]bool)
		set[i] = true
		for _, j := range pattern[i] {
			if j < 0 || j >= nbk {
				chk.Panic("row %d references column %d outside the local range [0,%d)", i, j, nbk)
			}
			set[j] = true
		}
		cols[i] = make([]int, 0, len(set))
		for j := range set {
			cols[i] = append(cols[i], j)
		}
		sort.Ints(cols[i])
		nnz += len(cols[i])
	}
	o.ColInd = make([]int, nnz)
	o.DiaPtr = make([]int, ndo)
	k := 0
	for i := 0; i < ndo; i++ {
		o.RowPtr[i] = k
		for _, j := range cols[i] {
			if j == i {
				o.DiaPtr[i] = k
			}
			o.ColInd[k] = j
			k++
		}
	}
	o.RowPtr[ndo] = k
	o.Vals = make([]float64, nnz*nvar*neqn)

	// machinery
	o.kern, _ = NewBlockKernel("", nvar, neqn)
	o.xchg = NewExchanger(ctx, ptn, o.Hgl, nvar)
	o.blk = make([]float64, nvar*neqn)
	o.blk2 = make([]float64, nvar*neqn)
	o.blk3 = make([]float64, nvar*neqn)
	o.aux = make([]float64, nvar)
	o.aux2 = make([]float64, nvar)
	return
}

// SetKernel selects the dense block kernel by name ("naive" or "blas")
func (o *Matrix) SetKernel(name string) (err error) {
	kern, err := NewBlockKernel(name, o.Nvr, o.Neq)
	if err != nil {
		return
	}
	o.kern = kern
	return
}

// NewCompatVector returns a zeroed vector shaped for products with o
func (o *Matrix) NewCompatVector() *Vector {
	return NewVector(o.Nbk, o.Ndo, o.Nvr)
}

// bsz returns the number of values in one block
func (o *Matrix) bsz() int { return o.Nvr * o.Neq }

// entryIndex returns the entry index of block (i,j), or -1 if the pattern
// does not contain it
func (o *Matrix) entryIndex(i, j int) int {
	for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
		if o.ColInd[k] == j {
			return k
		}
	}
	return -1
}

// GetBlock returns a view of block (i,j), or nil if the pattern does not
// contain it
func (o *Matrix) GetBlock(i, j int) []float64 {
	k := o.entryIndex(i, j)
	if k < 0 {
		return nil
	}
	return o.Vals[k*o.bsz() : (k+1)*o.bsz()]
}

// SetBlock copies b into block (i,j). Blocks outside the pattern are
// silently skipped so assembly loops need not special-case boundaries.
func (o *Matrix) SetBlock(i, j int, b []float64) {
	k := o.entryIndex(i, j)
	if k < 0 {
		return
	}
	chk.IntAssert(len(b), o.bsz())
	copy(o.Vals[k*o.bsz():(k+1)*o.bsz()], b)
}

// SetBlockTransposed copies the transpose of b into block (i,j); b is read
// as an Neq x Nvr block. Used when a contribution is assembled in the
// transposed orientation.
func (o *Matrix) SetBlockTransposed(i, j int, b []float64) {
	k := o.entryIndex(i, j)
	if k < 0 {
		return
	}
	chk.IntAssert(len(b), o.bsz())
	dst := o.Vals[k*o.bsz():]
	for iv := 0; iv < o.Nvr; iv++ {
		for jv := 0; jv < o.Neq; jv++ {
			dst[iv*o.Neq+jv] = b[jv*o.Nvr+iv]
		}
	}
}

// AddBlock adds b to block (i,j). The pair must exist in the pattern.
func (o *Matrix) AddBlock(i, j int, b []float64) {
	k := o.entryIndex(i, j)
	if k < 0 {
		chk.Panic("block (%d,%d) is not in the sparsity pattern", i, j)
	}
	chk.IntAssert(len(b), o.bsz())
	dst := o.Vals[k*o.bsz():]
	for m, v := range b {
		dst[m] += v
	}
}

// SubtractBlock subtracts b from block (i,j). The pair must exist in the
// pattern.
func (o *Matrix) SubtractBlock(i, j int, b []float64) {
	k := o.entryIndex(i, j)
	if k < 0 {
		chk.Panic("block (%d,%d) is not in the sparsity pattern", i, j)
	}
	chk.IntAssert(len(b), o.bsz())
	dst := o.Vals[k*o.bsz():]
	for m, v := range b {
		dst[m] -= v
	}
}

// AddVal2Diag adds val to every diagonal coefficient of the diagonal block
// of row i. This is how pseudo-time terms enter the system.
func (o *Matrix) AddVal2Diag(i int, val float64) {
	dst := o.Vals[o.DiaPtr[i]*o.bsz():]
	for iv := 0; iv < o.Nvr; iv++ {
		dst[iv*o.Neq+iv] += val
	}
}

// SetVal2Diag sets every diagonal coefficient of the diagonal block of row i
// to val
func (o *Matrix) SetVal2Diag(i int, val float64) {
	dst := o.Vals[o.DiaPtr[i]*o.bsz():]
	for iv := 0; iv < o.Nvr; iv++ {
		dst[iv*o.Neq+iv] = val
	}
}

// SetValZero zeroes all matrix values, keeping the pattern
func (o *Matrix) SetValZero() {
	for k := range o.Vals {
		o.Vals[k] = 0
	}
}

// ScaleVals multiplies all stored coefficients by α
func (o *Matrix) ScaleVals(α float64) {
	floats.Scale(α, o.Vals)
}

// DeleteValsRowi zeroes the scalar equation i (a row within the blocks of
// block-row i/NVar) and sets its diagonal coefficient to one. Used to impose
// strong boundary conditions on single equations.
func (o *Matrix) DeleteValsRowi(i int) {
	bi := i / o.Nvr
	row := i % o.Nvr
	if bi >= o.Ndo {
		chk.Panic("equation %d belongs to block row %d which is not owned here (owned rows: %d)", i, bi, o.Ndo)
	}
	for k := o.RowPtr[bi]; k < o.RowPtr[bi+1]; k++ {
		dst := o.Vals[k*o.bsz():]
		for jv := 0; jv < o.Neq; jv++ {
			dst[row*o.Neq+jv] = 0
		}
		if o.ColInd[k] == bi {
			dst[row*o.Neq+row] = 1
		}
	}
}

// LowerProduct computes dst = sum of A[row,j]*x[j] over entries with j < row
func (o *Matrix) LowerProduct(x *Vector, row int, dst []float64) {
	for m := range dst {
		dst[m] = 0
	}
	for k := o.RowPtr[row]; k < o.DiaPtr[row]; k++ {
		o.kern.GemvAdd(o.Vals[k*o.bsz():(k+1)*o.bsz()], x.Block(o.ColInd[k]), dst)
	}
}

// UpperProduct computes dst = sum of A[row,j]*x[j] over entries with j > row,
// halo columns included
func (o *Matrix) UpperProduct(x *Vector, row int, dst []float64) {
	for m := range dst {
		dst[m] = 0
	}
	for k := o.DiaPtr[row] + 1; k < o.RowPtr[row+1]; k++ {
		o.kern.GemvAdd(o.Vals[k*o.bsz():(k+1)*o.bsz()], x.Block(o.ColInd[k]), dst)
	}
}

// DiagonalProduct computes dst = A[row,row]*x[row]
func (o *Matrix) DiagonalProduct(x *Vector, row int, dst []float64) {
	k := o.DiaPtr[row]
	o.kern.Gemv(o.Vals[k*o.bsz():(k+1)*o.bsz()], x.Block(row), dst)
}

// Product computes y = A*x over the owned rows, reading whatever halo values
// x currently holds. No communication happens here; see MatVecProduct for
// the reconciled product.
func (o *Matrix) Product(x, y *Vector) {
	o.checkProductDims(x, y)
	for i := 0; i < o.Ndo; i++ {
		yi := y.Block(i)
		for m := range yi {
			yi[m] = 0
		}
		for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
			o.kern.GemvAdd(o.Vals[k*o.bsz():(k+1)*o.bsz()], x.Block(o.ColInd[k]), yi)
		}
	}
}

// ProductAdd computes y += A*x over the owned rows (local part only)
func (o *Matrix) ProductAdd(x, y *Vector) {
	o.checkProductDims(x, y)
	for i := 0; i < o.Ndo; i++ {
		yi := y.Block(i)
		for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
			o.kern.GemvAdd(o.Vals[k*o.bsz():(k+1)*o.bsz()], x.Block(o.ColInd[k]), yi)
		}
	}
}

// ProductSub computes y -= A*x over the owned rows (local part only)
func (o *Matrix) ProductSub(x, y *Vector) {
	o.checkProductDims(x, y)
	for i := 0; i < o.Ndo; i++ {
		yi := y.Block(i)
		for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
			o.kern.GemvSub(o.Vals[k*o.bsz():(k+1)*o.bsz()], x.Block(o.ColInd[k]), yi)
		}
	}
}

// ProductTransposed computes the local scatter of y = transpose(A)*x: every
// owned row i adds transpose(A[i,j])*x[i] into y[j]. Contributions landing on
// halo columns belong to other processors and must be reduced onto their
// owners afterwards; MatVecProduct.ApplyTransposed does that.
func (o *Matrix) ProductTransposed(x, y *Vector) {
	o.checkProductDims(y, x) // roles swap: x spans rows, y spans columns
	for m := range y.Values {
		y.Values[m] = 0
	}
	for i := 0; i < o.Ndo; i++ {
		xi := x.Block(i)
		for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
			o.kern.GemvTransAdd(o.Vals[k*o.bsz():(k+1)*o.bsz()], xi, y.Block(o.ColInd[k]))
		}
	}
}

// MatrixMatrixProduct computes c = a*b for square blocks
func (o *Matrix) MatrixMatrixProduct(a, b, c []float64) {
	o.kern.Gemm(a, b, c)
}

// NumRegularisedPivots returns how many near-zero pivots had to be
// regularised on this processor since construction
func (o *Matrix) NumRegularisedPivots() int { return o.nRegular }

// checkProductDims panics unless x is a valid input (column space) and y a
// valid output (row space) for products with o
func (o *Matrix) checkProductDims(x, y *Vector) {
	chk.IntAssert(x.NVar, o.Neq)
	chk.IntAssert(x.NBlk, o.Nbk)
	chk.IntAssert(y.NVar, o.Nvr)
	chk.IntAssert(y.NBlk, o.Nbk)
}
