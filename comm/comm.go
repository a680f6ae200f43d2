// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package comm provides the distributed context shared by the linear algebra
// components: the rank/size of this processor and the transport used to
// reconcile vector data across the group. Collectives are synchronous and
// blocking; a processor never reads reconciled data before the whole group
// has contributed.
package comm

import "github.com/cpmech/gosl/chk"

// Communicator is the message transport of a group of processors. The only
// collective the solver needs is the element-wise global sum: halo exchange,
// dot products and norms are all built on it.
type Communicator interface {

	// AllReduceSum sums x element-wise over all processors of the group,
	// placing the result in x on every processor. w is a workspace with the
	// same length as x. The call blocks until the whole group has joined.
	AllReduceSum(x, w []float64)
}

// Context identifies one processor within a group and carries the group's
// transport. It replaces process-wide rank/communicator globals: every
// distributed operation receives a Context value explicitly.
type Context struct {
	Rank int          // this processor number
	Size int          // total number of processors
	Comm Communicator // transport shared by the group
}

// Single returns the context of a serial (one-processor) run
func Single() Context {
	return Context{Rank: 0, Size: 1, Comm: serial{}}
}

// Root tells whether this processor is the root (rank == 0)
func (o Context) Root() bool { return o.Rank == 0 }

// Distr tells whether the run is distributed over more than one processor
func (o Context) Distr() bool { return o.Size > 1 }

// AllReduceSum sums x element-wise over the group, in place. Serial runs
// return immediately: the local values already are the global sum.
func (o Context) AllReduceSum(x, w []float64) {
	if !o.Distr() {
		return
	}
	chk.IntAssert(len(w), len(x))
	o.Comm.AllReduceSum(x, w)
}

// SumScalar returns the global sum of one scalar per processor
func (o Context) SumScalar(val float64) float64 {
	if !o.Distr() {
		return val
	}
	x := []float64{val}
	w := []float64{0}
	o.Comm.AllReduceSum(x, w)
	return x[0]
}

// serial implements Communicator for one-processor runs
type serial struct{}

func (serial) AllReduceSum(x, w []float64) {}
