// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/linalg"
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
// linking global unknowns i and j
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
func pentaSystem(ctx comm.Context, n int) (a *linalg.Matrix, b *linalg.Vector) {
	ptn := part.NewLinearPartitioner(n, 0, ctx.Size, true)
	ndo := ptn.SizeOnRank[ctx.Rank]
	first := ptn.CumSizeBeforeRank[ctx.Rank]

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

	a = linalg.NewMatrix(ctx, ptn, 1, 1, pattern, halo)
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

// blockTriSystem assembles a serial block tridiagonal system with n points,
// 2x2 blocks and right-hand side b = ones
func blockTriSystem(n int) (a *linalg.Matrix, b *linalg.Vector) {
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
	a = linalg.NewMatrix(ctx, ptn, 2, 2, pattern, nil)
	for i := 0; i < n; i++ {
		a.SetBlock(i, i, []float64{10 + float64(i), 1, 2, 12 + float64(i)})
		if i > 0 {
			a.SetBlock(i, i-1, []float64{-1.5, 0.25, -0.5, -2})
		}
		if i < n-1 {
			a.SetBlock(i, i+1, []float64{1.5, 0.25, -0.5, 2})
		}
	}
	b = a.NewCompatVector()
	for i := 0; i < n*2; i++ {
		b.OwnedValues()[i] = 1.0
	}
	return
}

// residual returns the norm of b - A*x, including halo exchanges
func residual(a *linalg.Matrix, b, x *linalg.Vector) float64 {
	op := linalg.NewMatVecProduct(a)
	r := a.NewCompatVector()
	r.CopyFrom(b)
	op.ApplySub(x, r)
	return r.Norm(a.Ctx)
}
