// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	Verbose bool   `json:"verbose"` // show residual history and summary tables
}

// GridData describes the model implicit system assembled by the driver: a
// banded block system over a 1-D chain of points. Point i couples to point j
// with strength Coupling * Decay^(|i-j|-1) up to Bandwidth points away;
// Diagonal sits on the main diagonal of each block.
type GridData struct {
	Npoints   int     `json:"npoints"`   // number of points (global block rows)
	Nvar      int     `json:"nvar"`      // number of unknowns per point (block size)
	Bandwidth int     `json:"bandwidth"` // couplings reach this many points to each side
	Diagonal  float64 `json:"diagonal"`  // diagonal value of each point block
	Coupling  float64 `json:"coupling"`  // strength of the first-neighbour coupling
	Decay     float64 `json:"decay"`     // attenuation per extra point of distance
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name    string  `json:"name"`    // Krylov method: "gmres", "fgmres" or "bcgstab"
	Prec    string  `json:"prec"`    // preconditioner: "none", "jacobi", "lusgs", "ilu" or "linelet"
	Kernel  string  `json:"kernel"`  // dense block kernel: "" (default), "naive" or "blas"
	Tol     float64 `json:"tol"`     // relative residual tolerance
	MaxIt   int     `json:"maxit"`   // maximum number of Krylov iterations
	Restart int     `json:"restart"` // restart length for gmres/fgmres
	LineRat float64 `json:"linerat"` // linelet anisotropy ratio; 0 = default
}

// Simulation holds all simulation data
type Simulation struct {

	// input data
	Data   Data       `json:"data"`   // global information
	Grid   GridData   `json:"grid"`   // model system description
	LinSol LinSolData `json:"linsol"` // linear solver data

	// derived
	Key string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Grid.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	o.Key = io.FnKey(filepath.Base(simfilepath))
	if alias != "" {
		o.Key += "-" + alias
	}

	// check grid
	if o.Grid.Npoints < 1 || o.Grid.Nvar < 1 || o.Grid.Bandwidth < 0 {
		chk.Panic("ReadSim: grid data is invalid: npoints=%d nvar=%d bandwidth=%d", o.Grid.Npoints, o.Grid.Nvar, o.Grid.Bandwidth)
	}
	return &o
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// SetDefault sets defaults values
func (o *GridData) SetDefault() {
	o.Npoints = 5
	o.Nvar = 1
	o.Bandwidth = 2
	o.Diagonal = 4.0
	o.Coupling = -1.0
	o.Decay = 0.5
}

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "fgmres"
	o.Prec = "ilu"
	o.Tol = 1e-8
	o.MaxIt = 100
	o.Restart = 30
}
