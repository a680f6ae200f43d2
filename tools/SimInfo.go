// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore
// +build ignore

package main

import (
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/flkong15/su2/inp"
)

// SimInfo prints the content of a .sim file after defaults are applied.
func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	simfn, _ := io.ArgToFilename(0, "../inp/data/penta5", ".sim", true)

	// show information
	sim := inp.ReadSim(simfn, "")
	io.Pf("%s:\n", sim.Key)
	err := sim.GetInfo(os.Stdout)
	if err != nil {
		io.PfRed("cannot format simulation data: %v\n", err)
	}
	io.Pf("\n")
}
