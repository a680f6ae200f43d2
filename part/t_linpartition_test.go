// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package part

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_linpart01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linpart01. balanced split with remainder")

	o := NewLinearPartitioner(10, 0, 3, true)
	chk.Ints(tst, "SizeOnRank", o.SizeOnRank, []int{4, 3, 3})
	chk.Ints(tst, "FirstIndex", o.FirstIndex, []int{0, 4, 7})
	chk.Ints(tst, "LastIndex", o.LastIndex, []int{3, 6, 9})
	chk.Ints(tst, "CumSizeBeforeRank", o.CumSizeBeforeRank, []int{0, 4, 7, 10})
}

func Test_linpart02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linpart02. non-disjoint ranges share boundary index")

	o := NewLinearPartitioner(10, 0, 3, false)
	chk.Ints(tst, "SizeOnRank", o.SizeOnRank, []int{4, 3, 3})
	chk.Ints(tst, "FirstIndex", o.FirstIndex, []int{0, 4, 7})
	chk.Ints(tst, "LastIndex", o.LastIndex, []int{4, 7, 10})
	for i := 1; i < o.Size; i++ {
		if o.FirstIndex[i] != o.LastIndex[i-1] {
			tst.Errorf("first index of rank %d must equal last index of rank %d", i, i-1)
			return
		}
	}
}

func Test_linpart03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linpart03. completeness over many (count,size) pairs")

	for _, globalCount := range []int{0, 1, 2, 3, 5, 7, 16, 100, 101, 1023} {
		for _, size := range []int{1, 2, 3, 4, 7, 8, 13} {
			o := NewLinearPartitioner(globalCount, 0, size, true)

			// sum of local sizes recovers the global count
			sum := 0
			for _, n := range o.SizeOnRank {
				sum += n
			}
			if sum != globalCount {
				tst.Errorf("sum(SizeOnRank)=%d must equal globalCount=%d (size=%d)", sum, globalCount, size)
				return
			}

			// cumulative counts are non-decreasing and end at the global count
			for i := 0; i < size; i++ {
				if o.CumSizeBeforeRank[i+1] < o.CumSizeBeforeRank[i] {
					tst.Errorf("CumSizeBeforeRank must be non-decreasing (count=%d size=%d)", globalCount, size)
					return
				}
			}
			if o.CumSizeBeforeRank[size] != globalCount {
				tst.Errorf("CumSizeBeforeRank[size]=%d must equal globalCount=%d", o.CumSizeBeforeRank[size], globalCount)
				return
			}
		}
	}
}

func Test_linpart04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linpart04. rank lookup over all indices")

	for _, globalCount := range []int{1, 2, 3, 5, 16, 100, 101} {
		for _, size := range []int{1, 2, 3, 4, 7, 13} {
			o := NewLinearPartitioner(globalCount, 0, size, true)
			for index := 0; index < globalCount; index++ {
				r := o.RankContainingIndex(index)
				if !o.IndexBelongsToRank(index, r) {
					tst.Errorf("index %d assigned to rank %d outside [%d,%d)", index, r,
						o.CumSizeBeforeRank[r], o.CumSizeBeforeRank[r+1])
					return
				}
				if o.LocalIndex(index, r) != index-o.CumSizeBeforeRank[r] {
					tst.Errorf("local index of %d on rank %d is wrong", index, r)
					return
				}
			}
		}
	}

	// empty partitions: more processors than unknowns
	o := NewLinearPartitioner(2, 0, 5, true)
	chk.Ints(tst, "SizeOnRank", o.SizeOnRank, []int{1, 1, 0, 0, 0})
	chk.Ints(tst, "CumSizeBeforeRank", o.CumSizeBeforeRank, []int{0, 1, 2, 2, 2, 2})
	if r := o.RankContainingIndex(1); r != 1 {
		tst.Errorf("rank containing index 1 must be 1. got %d", r)
	}
}

func Test_linpart05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linpart05. scenario from the pentadiagonal example")

	o := NewLinearPartitioner(5, 0, 2, true)
	chk.Ints(tst, "SizeOnRank", o.SizeOnRank, []int{3, 2})
	chk.Ints(tst, "CumSizeBeforeRank", o.CumSizeBeforeRank, []int{0, 3, 5})
	chk.Ints(tst, "FirstIndex", o.FirstIndex, []int{0, 3})
	chk.Ints(tst, "LastIndex", o.LastIndex, []int{2, 4})
	io.Pforan("SizeOnRank = %v\n", o.SizeOnRank)
}
