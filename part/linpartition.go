// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package part provides the linear partitioning of a contiguous global index
// range over the processors participating in a distributed computation.
package part

import "github.com/cpmech/gosl/chk"

// LinearPartitioner divides a global count of unknowns as evenly as possible
// into contiguous per-processor ranges. It is constructed once per
// (globalCount, size, disjoint) combination and is immutable afterwards.
//
//	globalCount = 10, size = 3  =>  SizeOnRank = [4, 3, 3]
//	                                CumSizeBeforeRank = [0, 4, 7, 10]
type LinearPartitioner struct {

	// input
	Size        int  // number of processors
	GlobalCount int  // total number of unknowns over all processors
	Disjoint    bool // ranges do NOT share their boundary index

	// computed
	FirstIndex        []int // [size] first global index on each processor
	LastIndex         []int // [size] last global index on each processor
	SizeOnRank        []int // [size] number of unknowns on each processor
	CumSizeBeforeRank []int // [size+1] cumulative number of unknowns before each processor
}

// NewLinearPartitioner computes a new linear partitioning
//
//	Input:
//	 globalCount -- total number of unknowns; may be smaller than size
//	 offset      -- value added to the first global index of processor # 0
//	 size        -- number of processors; must be at least 1
//	 disjoint    -- remove the one-index overlap between consecutive ranges
func NewLinearPartitioner(globalCount, offset, size int, disjoint bool) (o *LinearPartitioner) {

	// check
	if size < 1 {
		chk.Panic("number of processors must be at least 1. size=%d is invalid", size)
	}
	if globalCount < 0 {
		chk.Panic("global count cannot be negative. globalCount=%d is invalid", globalCount)
	}

	// allocate
	o = new(LinearPartitioner)
	o.Size = size
	o.GlobalCount = globalCount
	o.Disjoint = disjoint
	o.FirstIndex = make([]int, size)
	o.LastIndex = make([]int, size)
	o.SizeOnRank = make([]int, size)
	o.CumSizeBeforeRank = make([]int, size+1)

	// number of unknowns per processor: remainder unknowns are balanced
	// over the first processors, one each
	quotient := 0
	if globalCount >= size {
		quotient = globalCount / size
	}
	remainder := globalCount % size
	for i := 0; i < size; i++ {
		o.SizeOnRank[i] = quotient
		if i < remainder {
			o.SizeOnRank[i]++
		}
	}

	// beginning/end indices and cumulative counts. without the disjoint
	// flag, the last index of processor i equals the first of processor i+1
	adjust := 0
	if disjoint {
		adjust = 1
	}
	o.FirstIndex[0] = offset
	o.LastIndex[0] = o.FirstIndex[0] + o.SizeOnRank[0] - adjust
	o.CumSizeBeforeRank[0] = 0
	for i := 1; i < size; i++ {
		o.FirstIndex[i] = o.LastIndex[i-1] + adjust
		o.LastIndex[i] = o.FirstIndex[i] + o.SizeOnRank[i] - adjust
		o.CumSizeBeforeRank[i] = o.CumSizeBeforeRank[i-1] + o.SizeOnRank[i-1]
	}
	o.CumSizeBeforeRank[size] = globalCount
	return
}

// RankContainingIndex returns the processor owning a global index; i.e. the
// unique rank r with CumSizeBeforeRank[r] <= index < CumSizeBeforeRank[r+1].
// The initial guess assumes balanced loads and is then walked up or down,
// skipping empty partitions; amortised O(1), worst case O(size).
func (o *LinearPartitioner) RankContainingIndex(index int) (rank int) {

	// check
	if index < 0 || index >= o.GlobalCount {
		chk.Panic("global index %d is outside [0,%d)", index, o.GlobalCount)
	}

	// initial guess; guard against empty partition # 0 and against
	// overshooting the number of processors
	rank = 0
	if o.SizeOnRank[0] > 0 {
		rank = index / o.SizeOnRank[0]
	}
	if rank > o.Size-1 {
		rank = o.Size - 1
	}

	// walk up or down to the containing interval
	if index >= o.CumSizeBeforeRank[rank] {
		for index >= o.CumSizeBeforeRank[rank+1] {
			rank++
		}
	} else {
		for index < o.CumSizeBeforeRank[rank] {
			rank--
		}
	}
	return
}

// IndexBelongsToRank tells whether a global index falls within the range
// owned by the given processor
func (o *LinearPartitioner) IndexBelongsToRank(index, rank int) bool {
	return index >= o.CumSizeBeforeRank[rank] && index < o.CumSizeBeforeRank[rank+1]
}

// LocalIndex converts a global index to the local numbering of its owner
func (o *LinearPartitioner) LocalIndex(index, rank int) (local int) {
	if !o.IndexBelongsToRank(index, rank) {
		chk.Panic("global index %d does not belong to processor %d", index, rank)
	}
	return index - o.CumSizeBeforeRank[rank]
}
