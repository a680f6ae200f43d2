// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/part"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// pentaCoef returns the coefficient of the scalar pentadiagonal test system
// linking global unknowns i and j: diagonally dominant, symmetric
func pentaCoef(i, j int) float64 {
	d := i - j
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 4.0
	case 1:
		return -1.0
	case 2:
		return -0.5
	}
	return 0
}

// pentaSystem assembles the local rows of the n-unknown scalar pentadiagonal
// system on the calling processor, with right-hand side b = ones
func pentaSystem(ctx comm.Context, n int) (a *Matrix, b *Vector) {
	ptn := part.NewLinearPartitioner(n, 0, ctx.Size, true)
	ndo := ptn.SizeOnRank[ctx.Rank]
	first := ptn.CumSizeBeforeRank[ctx.Rank]

	// local numbering: owned first, halo slots in encounter order
	var halo []int
	haloSlot := make(map[int]int)
	local := func(g int) int {
		if g >= first && g < first+ndo {
			return g - first
		}
		if s, ok := haloSlot[g]; ok {
			return s
		}
		s := ndo + len(halo)
		haloSlot[g] = s
		halo = append(halo, g)
		return s
	}

	pattern := make([][]int, ndo)
	for i := 0; i < ndo; i++ {
		gi := first + i
		for gj := gi - 2; gj <= gi+2; gj++ {
			if gj < 0 || gj >= n {
				continue
			}
			pattern[i] = append(pattern[i], local(gj))
		}
	}

	a = NewMatrix(ctx, ptn, 1, 1, pattern, halo)
	for i := 0; i < ndo; i++ {
		gi := first + i
		for gj := gi - 2; gj <= gi+2; gj++ {
			if gj < 0 || gj >= n {
				continue
			}
			a.SetBlock(i, local(gj), []float64{pentaCoef(gi, gj)})
		}
	}

	b = a.NewCompatVector()
	for i := 0; i < ndo; i++ {
		b.Block(i)[0] = 1.0
	}
	return
}

// blockTriDia and blockTriOff give the 2x2 blocks of the serial block
// tridiagonal test system; the diagonal dominates so all factorisations are
// well behaved
func blockTriDia(i int) []float64 {
	return []float64{10 + float64(i), 1, 2, 12 + float64(i)}
}

func blockTriOff(i, j int) []float64 {
	s := 1.0
	if j < i {
		s = -1.0
	}
	return []float64{s * 1.5, 0.25, -0.5, s * 2.0}
}

// blockTriSystem assembles a serial block tridiagonal system with n points
// and 2x2 blocks
func blockTriSystem(n int) (a *Matrix) {
	ctx := comm.Single()
	ptn := part.NewLinearPartitioner(n, 0, 1, true)
	pattern := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i - 1; j <= i+1; j++ {
			if j < 0 || j >= n {
				continue
			}
			pattern[i] = append(pattern[i], j)
		}
	}
	a = NewMatrix(ctx, ptn, 2, 2, pattern, nil)
	for i := 0; i < n; i++ {
		a.SetBlock(i, i, blockTriDia(i))
		if i > 0 {
			a.SetBlock(i, i-1, blockTriOff(i, i-1))
		}
		if i < n-1 {
			a.SetBlock(i, i+1, blockTriOff(i, i+1))
		}
	}
	return
}

// denseFromMatrix expands a serial matrix into a dense row-major array of
// scalar coefficients, for reference computations in tests
func denseFromMatrix(a *Matrix) (d []float64, nrow, ncol int) {
	nrow = a.Ndo * a.Nvr
	ncol = a.Nbk * a.Neq
	d = make([]float64, nrow*ncol)
	for i := 0; i < a.Ndo; i++ {
		for k := a.RowPtr[i]; k < a.RowPtr[i+1]; k++ {
			j := a.ColInd[k]
			blk := a.Vals[k*a.bsz() : (k+1)*a.bsz()]
			for iv := 0; iv < a.Nvr; iv++ {
				for jv := 0; jv < a.Neq; jv++ {
					d[(i*a.Nvr+iv)*ncol+j*a.Neq+jv] = blk[iv*a.Neq+jv]
				}
			}
		}
	}
	return
}

// denseMatVec computes y = d*x for a dense row-major array
func denseMatVec(d []float64, nrow, ncol int, x, y []float64) {
	for i := 0; i < nrow; i++ {
		sum := 0.0
		for j := 0; j < ncol; j++ {
			sum += d[i*ncol+j] * x[j]
		}
		y[i] = sum
	}
}
