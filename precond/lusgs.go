// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package precond

import "github.com/flkong15/su2/linalg"

// LUSGS is the symmetric lower-upper sweep preconditioner. It has no stored
// factors: the sweeps read the current matrix values directly, so Build has
// nothing to do. Applications are collective (the partial solution is
// reconciled between the sweeps).
type LUSGS struct {
	A *linalg.Matrix
}

// set factory
func init() {
	allocators["lusgs"] = func(a *linalg.Matrix) Preconditioner {
		return &LUSGS{A: a}
	}
}

func (o *LUSGS) Build() {
}

func (o *LUSGS) Apply(r, z *linalg.Vector) {
	o.A.ComputeLUSGSPreconditioner(r, z)
}
