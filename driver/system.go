// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/inp"
	"github.com/flkong15/su2/linalg"
	"github.com/flkong15/su2/part"
)

// Assemble builds the local rows of the banded model system described by the
// grid data: point i couples to point j with strength
// Coupling * Decay^(|i-j|-1) for |i-j| <= Bandwidth, and each point block
// carries Diagonal on its diagonal. The right-hand side is all ones and the
// returned solution vector is zero. Collective: every processor of the group
// assembles its own range of the 1-D split.
func Assemble(ctx comm.Context, g inp.GridData) (a *linalg.Matrix, b, x *linalg.Vector) {

	ptn := part.NewLinearPartitioner(g.Npoints, 0, ctx.Size, true)
	ndo := ptn.SizeOnRank[ctx.Rank]
	first := ptn.CumSizeBeforeRank[ctx.Rank]

	// coupling strength by point distance
	coef := func(d int) float64 {
		if d < 0 {
			d = -d
		}
		if d == 0 || d > g.Bandwidth {
			return 0
		}
		c := g.Coupling
		for k := 1; k < d; k++ {
			c *= g.Decay
		}
		return c
	}

	// local numbering: owned points first, halo slots in encounter order
	var halo []int
	haloSlot := make(map[int]int)
	local := func(gi int) int {
		if gi >= first && gi < first+ndo {
			return gi - first
		}
		if s, ok := haloSlot[gi]; ok {
			return s
		}
		s := ndo + len(halo)
		haloSlot[gi] = s
		halo = append(halo, gi)
		return s
	}

	pattern := make([][]int, ndo)
	for i := 0; i < ndo; i++ {
		gi := first + i
		for gj := gi - g.Bandwidth; gj <= gi+g.Bandwidth; gj++ {
			if gj < 0 || gj >= g.Npoints {
				continue
			}
			pattern[i] = append(pattern[i], local(gj))
		}
	}
	a = linalg.NewMatrix(ctx, ptn, g.Nvar, g.Nvar, pattern, halo)

	// set blocks: the coupling value sits on the diagonal of each block
	blk := make([]float64, g.Nvar*g.Nvar)
	setdia := func(v float64) {
		for k := range blk {
			blk[k] = 0
		}
		for iv := 0; iv < g.Nvar; iv++ {
			blk[iv*g.Nvar+iv] = v
		}
	}
	for i := 0; i < ndo; i++ {
		gi := first + i
		for gj := gi - g.Bandwidth; gj <= gi+g.Bandwidth; gj++ {
			if gj < 0 || gj >= g.Npoints {
				continue
			}
			if gj == gi {
				setdia(g.Diagonal)
			} else {
				setdia(coef(gi - gj))
			}
			a.SetBlock(i, local(gj), blk)
		}
	}

	// unit right-hand side and zero initial guess
	b = a.NewCompatVector()
	for i := 0; i < ndo; i++ {
		for iv := 0; iv < g.Nvar; iv++ {
			b.Block(i)[iv] = 1.0
		}
	}
	x = a.NewCompatVector()
	return
}
