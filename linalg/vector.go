// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linalg implements the distributed block-sparse linear algebra used
// by the implicit solvers: block compressed-row matrix storage, dense block
// kernels, incomplete-LU factorisation, preconditioner computations and the
// halo exchange that reconciles vector data across processors.
package linalg

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"

	"github.com/flkong15/su2/comm"
)

// Vector holds the local part of a distributed block vector: one nVar-length
// block per unknown owned by this processor, followed by the halo blocks
// mirroring neighbour-owned unknowns referenced by local matrix rows. Halo
// blocks are read-only from the local point of view; they are refreshed by an
// Exchanger after every update performed by their owners.
type Vector struct {
	NVar       int       // number of values per block
	NBlk       int       // local blocks: owned + halo
	NBlkDomain int       // owned blocks
	Values     []float64 // [NBlk*NVar] flat storage, block-contiguous
}

// NewVector allocates a local block vector with nblk blocks of which the
// first nblkDomain are owned by this processor
func NewVector(nblk, nblkDomain, nvar int) (o *Vector) {
	if nblkDomain < 0 || nblk < nblkDomain || nvar < 1 {
		chk.Panic("invalid vector dimensions: nblk=%d nblkDomain=%d nvar=%d", nblk, nblkDomain, nvar)
	}
	o = new(Vector)
	o.NVar = nvar
	o.NBlk = nblk
	o.NBlkDomain = nblkDomain
	o.Values = make([]float64, nblk*nvar)
	return
}

// Block returns the slice holding block i (a view, not a copy)
func (o *Vector) Block(i int) []float64 {
	return o.Values[i*o.NVar : (i+1)*o.NVar]
}

// OwnedValues returns the slice holding the owned blocks only
func (o *Vector) OwnedValues() []float64 {
	return o.Values[:o.NBlkDomain*o.NVar]
}

// Compat panics unless x has exactly the same shape as o. Shape mismatches
// are programming errors and fail fast.
func (o *Vector) Compat(x *Vector) {
	chk.IntAssert(x.NVar, o.NVar)
	chk.IntAssert(x.NBlk, o.NBlk)
	chk.IntAssert(x.NBlkDomain, o.NBlkDomain)
}

// Fill sets all values (owned and halo) to s
func (o *Vector) Fill(s float64) {
	for i := range o.Values {
		o.Values[i] = s
	}
}

// Clone returns a deep copy
func (o *Vector) Clone() (x *Vector) {
	x = NewVector(o.NBlk, o.NBlkDomain, o.NVar)
	copy(x.Values, o.Values)
	return
}

// CopyFrom copies all values of x into o
func (o *Vector) CopyFrom(x *Vector) {
	o.Compat(x)
	copy(o.Values, x.Values)
}

// Scale multiplies all values by α
func (o *Vector) Scale(α float64) {
	floats.Scale(α, o.Values)
}

// PlusAX adds α*x to o; i.e. o += α*x
func (o *Vector) PlusAX(α float64, x *Vector) {
	o.Compat(x)
	floats.AddScaled(o.Values, α, x.Values)
}

// EqualsAXPlusBY sets o = α*x + β*y
func (o *Vector) EqualsAXPlusBY(α float64, x *Vector, β float64, y *Vector) {
	o.Compat(x)
	o.Compat(y)
	for i := range o.Values {
		o.Values[i] = α*x.Values[i] + β*y.Values[i]
	}
}

// Dot returns the global dot product of o and x. Only owned blocks enter the
// local sum; the halo copies belong to their owners and must not be counted
// twice. The result is reduced over the whole group and is therefore
// identical on every processor.
func (o *Vector) Dot(x *Vector, ctx comm.Context) float64 {
	o.Compat(x)
	return ctx.SumScalar(floats.Dot(o.OwnedValues(), x.OwnedValues()))
}

// Norm returns the global Euclidean norm of o
func (o *Vector) Norm(ctx comm.Context) float64 {
	return math.Sqrt(o.Dot(o, ctx))
}

// IsFinite tells whether all owned values are finite (no NaN and no Inf)
func (o *Vector) IsFinite() bool {
	for _, v := range o.OwnedValues() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
