// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/cpmech/gosl/chk"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/part"
)

// Exchanger reconciles the halo blocks of distributed vectors. At
// construction every processor announces which global indices it needs from
// neighbours; the announcements are joined into one shared slot layout via
// sum-reductions so that all processors agree on who reads and writes each
// slot. Afterwards each Refresh or Reduce costs a single reduction over the
// slot buffer.
//
// Ownership follows the cumulative counts of the partitioner, which are
// disjoint regardless of the partitioner's boundary-sharing mode.
type Exchanger struct {
	ctx   comm.Context
	nvar  int
	ndo   int // owned blocks on this processor
	first int // global index of the first owned block
	nhalo int // halo blocks on this processor

	slot0 int   // first slot of this processor in the shared layout
	req   []int // [nslots] global index requested by each slot, all processors

	buf []float64 // [nslots*nvar] shared transfer buffer
	wsp []float64 // workspace for the reduction
}

// NewExchanger agrees on the shared slot layout for the given halo requests.
// Collective: every processor of ctx must call it with its own haloGlobal.
func NewExchanger(ctx comm.Context, ptn *part.LinearPartitioner, haloGlobal []int, nvar int) (o *Exchanger) {
	o = new(Exchanger)
	o.ctx = ctx
	o.nvar = nvar
	o.ndo = ptn.SizeOnRank[ctx.Rank]
	o.first = ptn.CumSizeBeforeRank[ctx.Rank]
	o.nhalo = len(haloGlobal)

	// announce per-processor request counts
	counts := make([]float64, ctx.Size)
	counts[ctx.Rank] = float64(o.nhalo)
	wsp := make([]float64, ctx.Size)
	ctx.AllReduceSum(counts, wsp)
	nslots := 0
	for r, c := range counts {
		if r == ctx.Rank {
			o.slot0 = nslots
		}
		nslots += int(c)
	}
	if nslots == 0 {
		return
	}

	// join the requested indices into the agreed layout
	reqs := make([]float64, nslots)
	for k, g := range haloGlobal {
		reqs[o.slot0+k] = float64(g)
	}
	o.wsp = make([]float64, nslots)
	ctx.AllReduceSum(reqs, o.wsp)
	o.req = make([]int, nslots)
	for k, g := range reqs {
		o.req[k] = int(g)
	}

	o.buf = make([]float64, nslots*nvar)
	o.wsp = make([]float64, nslots*nvar)
	return
}

// checkVec panics unless v has the block layout this exchanger was built for
func (o *Exchanger) checkVec(v *Vector) {
	chk.IntAssert(v.NVar, o.nvar)
	chk.IntAssert(v.NBlkDomain, o.ndo)
	chk.IntAssert(v.NBlk, o.ndo+o.nhalo)
}

// owns tells whether global block g is owned by this processor and returns
// its local index
func (o *Exchanger) owns(g int) (local int, ok bool) {
	local = g - o.first
	ok = local >= 0 && local < o.ndo
	return
}

// Refresh overwrites the halo blocks of v with the current values held by
// their owners. Collective: every processor must call it with its own v.
// Owned blocks are never modified.
func (o *Exchanger) Refresh(v *Vector) {
	o.checkVec(v)
	if len(o.req) == 0 {
		return
	}
	for m := range o.buf {
		o.buf[m] = 0
	}
	for k, g := range o.req {
		if i, ok := o.owns(g); ok {
			copy(o.buf[k*o.nvar:(k+1)*o.nvar], v.Block(i))
		}
	}
	o.ctx.AllReduceSum(o.buf, o.wsp)
	for h := 0; h < o.nhalo; h++ {
		k := o.slot0 + h
		copy(v.Block(o.ndo+h), o.buf[k*o.nvar:(k+1)*o.nvar])
	}
}

// Reduce folds the halo blocks of v back onto their owners, adding all
// contributions into the owned blocks, and zeroes the consumed halo blocks.
// This is the reverse of Refresh and serves transposed products, where local
// rows scatter into columns owned elsewhere. Collective.
func (o *Exchanger) Reduce(v *Vector) {
	o.checkVec(v)
	if len(o.req) == 0 {
		return
	}
	for m := range o.buf {
		o.buf[m] = 0
	}
	for h := 0; h < o.nhalo; h++ {
		k := o.slot0 + h
		copy(o.buf[k*o.nvar:(k+1)*o.nvar], v.Block(o.ndo+h))
		hb := v.Block(o.ndo + h)
		for m := range hb {
			hb[m] = 0
		}
	}
	o.ctx.AllReduceSum(o.buf, o.wsp)
	for k, g := range o.req {
		if i, ok := o.owns(g); ok {
			dst := v.Block(i)
			for m := 0; m < o.nvar; m++ {
				dst[m] += o.buf[k*o.nvar+m]
			}
		}
	}
}

// NumHalo returns the number of halo blocks of this processor
func (o *Exchanger) NumHalo() int { return o.nhalo }
