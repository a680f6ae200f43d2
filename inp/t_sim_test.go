// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
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

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read simulation file")

	sim := ReadSim("data/penta5.sim", "")
	if sim == nil {
		tst.Errorf("cannot read simulation file")
		return
	}
	if chk.Verbose {
		sim.GetInfo(os.Stdout)
		io.Pf("\n")
	}

	if sim.Key != "penta5" {
		tst.Errorf("key=%q is wrong", sim.Key)
	}
	if sim.Data.Desc == "" || sim.Data.Verbose {
		tst.Errorf("data block was not read: %+v", sim.Data)
	}
	if sim.Grid.Npoints != 5 || sim.Grid.Nvar != 1 || sim.Grid.Bandwidth != 2 {
		tst.Errorf("grid block was not read: %+v", sim.Grid)
	}
	chk.Scalar(tst, "diagonal", 1e-17, sim.Grid.Diagonal, 4.0)
	chk.Scalar(tst, "coupling", 1e-17, sim.Grid.Coupling, -1.0)
	chk.Scalar(tst, "decay", 1e-17, sim.Grid.Decay, 0.5)
	if sim.LinSol.Name != "gmres" || sim.LinSol.Prec != "ilu" {
		tst.Errorf("linsol block was not read: %+v", sim.LinSol)
	}
	chk.Scalar(tst, "tol", 1e-17, sim.LinSol.Tol, 1e-10)
	if sim.LinSol.MaxIt != 40 || sim.LinSol.Restart != 30 {
		tst.Errorf("linsol numbers are wrong: %+v", sim.LinSol)
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. defaults fill missing entries")

	sim := ReadSim("data/defaults.sim", "check")
	if sim == nil {
		tst.Errorf("cannot read simulation file")
		return
	}
	if sim.Key != "defaults-check" {
		tst.Errorf("key=%q is wrong", sim.Key)
	}
	if sim.LinSol.Name != "fgmres" || sim.LinSol.Prec != "ilu" || sim.LinSol.Kernel != "" {
		tst.Errorf("linsol defaults are wrong: %+v", sim.LinSol)
	}
	chk.Scalar(tst, "tol default", 1e-17, sim.LinSol.Tol, 1e-8)
	if sim.LinSol.MaxIt != 100 || sim.LinSol.Restart != 30 {
		tst.Errorf("linsol defaults are wrong: %+v", sim.LinSol)
	}
	if sim.Grid.Npoints != 5 || sim.Grid.Nvar != 1 || sim.Grid.Bandwidth != 2 {
		tst.Errorf("grid defaults are wrong: %+v", sim.Grid)
	}
}
