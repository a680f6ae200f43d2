// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore
// +build ignore

package main

import (
	"github.com/cpmech/gosl/io"

	"github.com/flkong15/su2/comm"
	"github.com/flkong15/su2/driver"
	"github.com/flkong15/su2/inp"
	"github.com/flkong15/su2/krylov"
)

// PrecBench solves the system of a .sim file with every combination of
// Krylov method and preconditioner, printing one summary row per run.
func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	simfn, _ := io.ArgToFilename(0, "../inp/data/penta5", ".sim", true)
	tol := io.ArgToFloat(1, 1e-8)
	maxit := io.ArgToInt(2, 200)

	// print input data
	io.Pf("\n%s\n", io.ArgsTable(
		"simulation filename", "simfn", simfn,
		"relative tolerance", "tol", tol,
		"maximum iterations", "maxit", maxit,
	))

	// run all combinations on the same assembled system
	sim := inp.ReadSim(simfn, "")
	methods := []string{"gmres", "fgmres", "bcgstab"}
	precs := []string{"none", "jacobi", "lusgs", "ilu", "linelet"}
	io.Pf("%10s%10s%6s%7s%8s%8s%25s\n", "method", "prec", "conv", "iters", "matvec", "psolve", "residual")
	for _, mtd := range methods {
		for _, prc := range precs {
			a, b, x := driver.Assemble(comm.Single(), sim.Grid)
			rep, err := krylov.Solve(a, b, x, krylov.Settings{
				Type:    mtd,
				Precond: prc,
				Tol:     tol,
				MaxIt:   maxit,
			})
			conv := "yes"
			if err != nil {
				conv = "no"
			}
			io.Pf("%10s%10s%6s%7d%8d%8d%25.15e\n", mtd, prc, conv, rep.Iterations, rep.MatVecs, rep.PrecApplies, rep.Residual)
		}
	}
}
