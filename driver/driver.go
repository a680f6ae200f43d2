// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package driver assembles the model implicit system described by a (.sim)
// file and drives its solution with the distributed Krylov methods
package driver

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/inp"
	"github.com/flkong15/su2/krylov"
	"github.com/flkong15/su2/linalg"
)

// Driver holds all data for one linear solve driven from a simulation file
type Driver struct {
	Sim     *inp.Simulation // simulation data
	Ctx     comm.Context    // this processor within the group
	A       *linalg.Matrix  // assembled system matrix
	B       *linalg.Vector  // right-hand side
	X       *linalg.Vector  // solution; starts at zero, improved by Run
	Report  krylov.Report   // results of the last Run
	Verbose bool            // show messages (root processor only)
}

// NewDriver returns a new Driver structure
//  Input:
//   simfilepath   -- simulation (.sim) filename including full path
//   alias         -- word to be appended to simulation key
//   allowParallel -- allow parallel execution; otherwise, run in serial mode
//                    regardless whether MPI is on or not
//   verbose       -- show messages
func NewDriver(simfilepath, alias string, allowParallel, verbose bool) (o *Driver) {

	// new driver object
	o = new(Driver)

	// read input data
	o.Sim = inp.ReadSim(simfilepath, alias)
	if o.Sim == nil {
		chk.Panic("cannot read simulation input data")
	}

	// multiprocessing data
	o.Ctx = comm.Single()
	if mpi.IsOn() && allowParallel {
		o.Ctx = comm.NewMPIContext()
	}
	o.Verbose = verbose && o.Ctx.Root()

	// assemble the system
	o.A, o.B, o.X = Assemble(o.Ctx, o.Sim.Grid)
	return
}

// Run solves the assembled system
func (o *Driver) Run() (err error) {

	// settings from input data
	ls := o.Sim.LinSol
	cfg := krylov.Settings{
		Type:    ls.Name,
		Precond: ls.Prec,
		Tol:     ls.Tol,
		MaxIt:   ls.MaxIt,
		Restart: ls.Restart,
		LineRat: ls.LineRat,
		Kernel:  ls.Kernel,
		Monitor: o.Sim.Data.Verbose,
	}

	// solve
	cputime := time.Now()
	o.Report, err = krylov.Solve(o.A, o.B, o.X, cfg)
	if err != nil {
		return
	}

	// message
	if o.Verbose {
		io.Pf("\n%v\n", io.ArgsTable(
			"converged", "converged", o.Report.Converged,
			"iterations", "iterations", o.Report.Iterations,
			"final residual", "residual", o.Report.Residual,
			"matrix-vector products", "matvecs", o.Report.MatVecs,
			"preconditioner applications", "precapplies", o.Report.PrecApplies,
		))
		io.Pflmag("cpu time   = %v\n", time.Now().Sub(cputime))
	}
	return
}
