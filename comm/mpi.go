// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import "github.com/cpmech/gosl/mpi"

// mpicomm adapts gosl's MPI wrapper to the Communicator interface. A failed
// MPI call aborts the process; there is no partial-failure recovery at this
// layer.
type mpicomm struct{}

func (mpicomm) AllReduceSum(x, w []float64) {
	mpi.AllReduceSum(x, w)
}

// NewMPIContext returns the context of this processor within an MPI run.
// mpi.Start must have been called beforehand (e.g. by the main program).
func NewMPIContext() Context {
	return Context{Rank: mpi.Rank(), Size: mpi.Size(), Comm: mpicomm{}}
}
