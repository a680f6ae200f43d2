// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Linelet preconditioner. Strongly coupled chains of owned points are
// detected on the matrix graph and each chain is solved exactly as a block
// tridiagonal system (Thomas algorithm), ignoring couplings that leave the
// chain. Points outside any chain fall back to a diagonal solve. Chains
// never cross processor boundaries, so applications are local.

// defaultLineletRatio is the anisotropy threshold used when the caller does
// not provide one: a coupling starts or extends a line when its strength is
// at least this factor times the mean strength of the point's weak
// couplings (those left after removing the two dominant ones)
const defaultLineletRatio = 10.0

// blockFrob returns the Frobenius norm of a block
func blockFrob(b []float64) float64 {
	sum := 0.0
	for _, v := range b {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// strongestNeighbour returns the owned neighbour of point i with the largest
// coupling strength among candidates not yet visited, together with that
// strength and the mean strength of the point's weak couplings. An interior
// point of a chain has two dominant couplings (to the previous and to the
// next point), so the two largest couplings are left out of the mean; smean
// is zero when nothing remains. Returns j = -1 when i has no unvisited owned
// neighbour.
func (o *Matrix) strongestNeighbour(i int, strength []float64, visited []bool) (j int, smax, smean float64) {
	j = -1
	nall := 0
	ssum := 0.0
	s1, s2 := 0.0, 0.0 // two largest couplings of i
	for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
		c := o.ColInd[k]
		if c == i {
			continue
		}
		s := strength[k]
		if c < o.Ndo && !visited[c] && s > smax {
			j = c
			smax = s
		}
		ssum += s
		nall++
		if s > s1 {
			s1, s2 = s, s1
		} else if s > s2 {
			s2 = s
		}
	}
	switch {
	case nall == 2:
		smean = ssum - s1
	case nall > 2:
		smean = (ssum - s1 - s2) / float64(nall-2)
	}
	return
}

// BuildLineletPreconditioner detects the lines from the current matrix
// values and allocates the solver scratch. Rebuild only when the coupling
// structure changes substantially; applications always read the current
// values. minRatio <= 0 selects the default anisotropy threshold.
// The number of detected lines on this processor is returned.
func (o *Matrix) BuildLineletPreconditioner(minRatio float64) (nlines int) {
	chk.IntAssert(o.Neq, o.Nvr)
	if minRatio <= 0 {
		minRatio = defaultLineletRatio
	}

	// coupling strengths of all off-diagonal entries
	strength := make([]float64, len(o.ColInd))
	for i := 0; i < o.Ndo; i++ {
		for k := o.RowPtr[i]; k < o.RowPtr[i+1]; k++ {
			if o.ColInd[k] != i {
				strength[k] = blockFrob(o.Vals[k*o.bsz() : (k+1)*o.bsz()])
			}
		}
	}

	// greedy chain growth. a line extends from its end point to the
	// strongest unvisited owned neighbour, provided that coupling dominates
	// the point's remaining ones by the given ratio. the reverse coupling
	// must exist in the pattern for the tridiagonal solve along the chain.
	accept := func(cur, j int, smax, smean float64) bool {
		if j < 0 || smax <= 0 {
			return false
		}
		if o.entryIndex(j, cur) < 0 {
			return false
		}
		if smean == 0 {
			return true // single neighbour
		}
		return smax >= minRatio*smean
	}
	visited := make([]bool, o.Ndo)
	o.lines = nil
	o.inLine = make([]bool, o.Ndo)
	maxlen := 0
	for seed := 0; seed < o.Ndo; seed++ {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		line := []int{seed}

		// extend the tail
		for cur := seed; ; {
			j, smax, smean := o.strongestNeighbour(cur, strength, visited)
			if !accept(cur, j, smax, smean) {
				break
			}
			visited[j] = true
			line = append(line, j)
			cur = j
		}

		// extend the head: the seed may sit in the middle of a chain
		for cur := seed; ; {
			j, smax, smean := o.strongestNeighbour(cur, strength, visited)
			if !accept(cur, j, smax, smean) {
				break
			}
			visited[j] = true
			line = append([]int{j}, line...)
			cur = j
		}

		if len(line) < 2 {
			continue
		}
		o.lines = append(o.lines, line)
		for _, p := range line {
			o.inLine[p] = true
		}
		if len(line) > maxlen {
			maxlen = len(line)
		}
	}

	o.lineDia = make([]float64, maxlen*o.Nvr*o.Nvr)
	o.lineRhs = make([]float64, maxlen*o.Nvr)
	return len(o.lines)
}

// LineletInfo returns, for this processor, the number of lines and the
// number of owned points belonging to a line
func (o *Matrix) LineletInfo() (nlines, npoints int) {
	for _, line := range o.lines {
		npoints += len(line)
	}
	return len(o.lines), npoints
}

// ComputeLineletPreconditioner applies the linelet preconditioner: exact
// block tridiagonal solves along the detected lines and diagonal solves
// everywhere else. Local operation; no communication.
func (o *Matrix) ComputeLineletPreconditioner(r, z *Vector) {
	if o.inLine == nil {
		chk.Panic("linelet preconditioner was not built")
	}
	o.checkPrecondVecs(r, z)
	n2 := o.Nvr * o.Nvr
	nv := o.Nvr

	// off-line points: diagonal solve
	for i := 0; i < o.Ndo; i++ {
		if o.inLine[i] {
			continue
		}
		zi := z.Block(i)
		copy(zi, r.Block(i))
		o.copyDiagBlock(i, o.blk2, false)
		o.gaussSolve(o.blk2, zi)
	}

	// lines: Thomas elimination on the chain, dropping off-chain couplings
	for _, line := range o.lines {
		m := len(line)

		// load diagonals and right-hand side
		for k, p := range line {
			copy(o.lineDia[k*n2:(k+1)*n2], o.Vals[o.DiaPtr[p]*o.bsz():(o.DiaPtr[p]+1)*o.bsz()])
			copy(o.lineRhs[k*nv:(k+1)*nv], r.Block(p))
		}

		// forward elimination
		for k := 1; k < m; k++ {
			low := o.GetBlock(line[k], line[k-1])
			up := o.GetBlock(line[k-1], line[k])

			// weight = low * inv(dia[k-1])
			copy(o.blk2, o.lineDia[(k-1)*n2:k*n2])
			o.gaussInverse(o.blk2, o.blk3)
			o.kern.Gemm(low, o.blk3, o.blk)

			// dia[k] -= weight * up
			o.kern.Gemm(o.blk, up, o.blk2)
			dst := o.lineDia[k*n2 : (k+1)*n2]
			for q := range dst {
				dst[q] -= o.blk2[q]
			}

			// rhs[k] -= weight * rhs[k-1]
			o.kern.GemvSub(o.blk, o.lineRhs[(k-1)*nv:k*nv], o.lineRhs[k*nv:(k+1)*nv])
		}

		// back substitution
		for k := m - 1; k >= 0; k-- {
			rhs := o.lineRhs[k*nv : (k+1)*nv]
			if k < m-1 {
				up := o.GetBlock(line[k], line[k+1])
				o.kern.GemvSub(up, z.Block(line[k+1]), rhs)
			}
			copy(o.blk2, o.lineDia[k*n2:(k+1)*n2])
			o.gaussSolve(o.blk2, rhs)
			copy(z.Block(line[k]), rhs)
		}
	}
}
