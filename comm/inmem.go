// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"sync"

	"github.com/cpmech/gosl/chk"
)

// group is an in-process Communicator: the processors of the group are
// goroutines within one process. It exists so that distributed algorithms
// can be exercised (and tested) without an MPI installation.
type group struct {
	size int

	mu      sync.Mutex
	cond    *sync.Cond
	joined  int       // processors that contributed to the round in flight
	round   int       // completed-round counter
	acc     []float64 // accumulating sum of the round in flight
	result  []float64 // sum of the last completed round
}

// NewGroup returns the contexts of an in-process group with the given number
// of processors. Each context must be driven by exactly one goroutine; the
// collectives block until every member of the group has joined, giving the
// same synchronisation points as a true message-passing run.
func NewGroup(size int) (ctxs []Context) {
	if size < 1 {
		chk.Panic("group size must be at least 1. size=%d is invalid", size)
	}
	g := &group{size: size}
	g.cond = sync.NewCond(&g.mu)
	ctxs = make([]Context, size)
	for rank := 0; rank < size; rank++ {
		ctxs[rank] = Context{Rank: rank, Size: size, Comm: g}
	}
	return
}

// AllReduceSum implements the blocking element-wise global sum. The last
// processor to join completes the round and wakes the others; a processor
// cannot start the next round before copying out the current result, so
// successive rounds never race.
func (g *group) AllReduceSum(x, w []float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.joined == 0 {
		g.acc = append(g.acc[:0], x...)
	} else {
		chk.IntAssert(len(g.acc), len(x))
		for i, v := range x {
			g.acc[i] += v
		}
	}
	g.joined++

	if g.joined == g.size {
		g.result = append(g.result[:0], g.acc...)
		g.joined = 0
		g.round++
		g.cond.Broadcast()
	} else {
		round := g.round
		for round == g.round {
			g.cond.Wait()
		}
	}
	copy(x, g.result)
}
