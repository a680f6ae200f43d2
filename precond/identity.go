// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package precond

import "github.com/flkong15/su2/linalg"

// Identity is the do-nothing preconditioner: z = r. It keeps the solver
// loops uniform when no preconditioning is wanted.
type Identity struct {
}

// set factory
func init() {
	allocators["none"] = func(a *linalg.Matrix) Preconditioner {
		return new(Identity)
	}
}

func (o *Identity) Build() {
}

func (o *Identity) Apply(r, z *linalg.Vector) {
	z.CopyFrom(r)
}
