// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package precond

import "github.com/flkong15/su2/linalg"

// Linelet solves exactly along chains of strongly coupled unknowns and
// applies a diagonal solve elsewhere. Ratio is the anisotropy threshold for
// the chain detection; zero selects the built-in default.
type Linelet struct {
	A      *linalg.Matrix
	Ratio  float64
	nlines int
}

// set factory
func init() {
	allocators["linelet"] = func(a *linalg.Matrix) Preconditioner {
		return &Linelet{A: a}
	}
}

func (o *Linelet) Build() {
	o.nlines = o.A.BuildLineletPreconditioner(o.Ratio)
}

func (o *Linelet) Apply(r, z *linalg.Vector) {
	o.A.ComputeLineletPreconditioner(r, z)
}

// Info returns the number of detected lines and of points inside lines on
// this processor, as of the last Build
func (o *Linelet) Info() (nlines, npoints int) {
	return o.A.LineletInfo()
}
