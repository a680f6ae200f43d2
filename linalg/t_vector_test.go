// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/flkong15/su2/comm"
)

func Test_vector01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vector01. block views and elementary operations")

	v := NewVector(3, 2, 2) // 2 owned + 1 halo block, 2 values each
	if len(v.Values) != 6 {
		tst.Errorf("wrong storage length: %d\n", len(v.Values))
		return
	}

	// block views alias the storage
	v.Block(0)[0] = 1
	v.Block(0)[1] = 2
	v.Block(1)[0] = 3
	v.Block(1)[1] = 4
	v.Block(2)[0] = 5
	v.Block(2)[1] = 6
	chk.Vector(tst, "values", 1e-17, v.Values, []float64{1, 2, 3, 4, 5, 6})
	chk.Vector(tst, "owned", 1e-17, v.OwnedValues(), []float64{1, 2, 3, 4})

	// clone and copy
	w := v.Clone()
	chk.Vector(tst, "clone", 1e-17, w.Values, v.Values)
	w.Fill(0)
	chk.Vector(tst, "fill", 1e-17, w.Values, []float64{0, 0, 0, 0, 0, 0})
	w.CopyFrom(v)
	chk.Vector(tst, "copy", 1e-17, w.Values, v.Values)

	// axpy-type updates
	w.Scale(2)
	chk.Vector(tst, "scale", 1e-17, w.Values, []float64{2, 4, 6, 8, 10, 12})
	w.PlusAX(-1, v)
	chk.Vector(tst, "plusAX", 1e-17, w.Values, v.Values)

	u := NewVector(3, 2, 2)
	u.EqualsAXPlusBY(2, v, -1, w)
	chk.Vector(tst, "aXplusBY", 1e-17, u.Values, v.Values)

	// finiteness
	if !u.IsFinite() {
		tst.Errorf("finite vector reported as not finite\n")
		return
	}
	u.Block(0)[0] = 1e308 * 10 // overflow to +Inf
	if u.IsFinite() {
		tst.Errorf("infinite value not detected\n")
	}
}

func Test_vector02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vector02. dot products ignore halo blocks")

	ctx := comm.Single()
	v := NewVector(4, 3, 1)
	w := NewVector(4, 3, 1)
	copy(v.Values, []float64{1, 2, 3, 99}) // last block is halo
	copy(w.Values, []float64{4, 5, 6, 99})

	chk.Scalar(tst, "dot", 1e-15, v.Dot(w, ctx), 4+10+18)
	chk.Scalar(tst, "norm", 1e-15, w.Norm(ctx), 8.774964387392123) // sqrt(77)
}

func Test_vector03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vector03. distributed dot product over two processors")

	// global vectors: v = [1,2,3,4,5], w = [2,2,2,2,2]  =>  v.w = 30
	ctxs := comm.NewGroup(2)
	results := make([]float64, 2)
	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(ctx comm.Context) {
			defer wg.Done()
			var v, w *Vector
			if ctx.Rank == 0 {
				v = NewVector(4, 3, 1) // owns [1,2,3], one halo slot
				w = NewVector(4, 3, 1)
				copy(v.Values, []float64{1, 2, 3, -123})
				copy(w.Values, []float64{2, 2, 2, -123})
			} else {
				v = NewVector(3, 2, 1) // owns [4,5], one halo slot
				w = NewVector(3, 2, 1)
				copy(v.Values, []float64{4, 5, -123})
				copy(w.Values, []float64{2, 2, -123})
			}
			results[ctx.Rank] = v.Dot(w, ctx)
		}(ctxs[r])
	}
	wg.Wait()

	chk.Scalar(tst, "dot on rank 0", 1e-15, results[0], 30)
	chk.Scalar(tst, "dot on rank 1", 1e-15, results[1], 30)
}
