// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package precond

import "github.com/flkong15/su2/linalg"

// ILU is the incomplete factorisation preconditioner with zero fill-in.
// Across processors it acts block-Jacobi: each processor factors its owned
// sub-block, so applications need no communication.
type ILU struct {
	A *linalg.Matrix
}

// set factory
func init() {
	allocators["ilu"] = func(a *linalg.Matrix) Preconditioner {
		return &ILU{A: a}
	}
}

func (o *ILU) Build() {
	o.A.BuildILUPreconditioner()
}

func (o *ILU) Apply(r, z *linalg.Vector) {
	o.A.ComputeILUPreconditioner(r, z)
}
