// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "github.com/cpmech/gosl/chk"

// BlockKernel computes the dense products of one matrix block. Blocks have
// nVar rows and nEqn columns and are stored row-major in flat slices. The
// kernel is chosen once per matrix so the hot loops never branch on the
// implementation.
//
// Implementations must tolerate aliasing only between calls, never within a
// call: a, x and y must not overlap.
type BlockKernel interface {

	// Gemv computes y = A*x
	Gemv(a, x, y []float64)

	// GemvAdd computes y += A*x
	GemvAdd(a, x, y []float64)

	// GemvSub computes y -= A*x
	GemvSub(a, x, y []float64)

	// GemvTransAdd computes y += transpose(A)*x
	GemvTransAdd(a, x, y []float64)

	// Gemm computes C = A*B for square nVar x nVar blocks
	Gemm(a, b, c []float64)
}

// kernelallocators holds the available block kernel makers
var kernelallocators = map[string]func(nvar, neqn int) BlockKernel{
	"naive": func(nvar, neqn int) BlockKernel { return &naiveKernel{nvar, neqn} },
	"blas":  func(nvar, neqn int) BlockKernel { return &blasKernel{nvar: nvar, neqn: neqn} },
}

// NewBlockKernel returns a block kernel for nVar x nEqn blocks.
//  name -- "naive" or "blas"; "" defaults to "naive"
func NewBlockKernel(name string, nvar, neqn int) (BlockKernel, error) {
	if name == "" {
		name = "naive"
	}
	allocator, ok := kernelallocators[name]
	if !ok {
		return nil, chk.Err("cannot find block kernel named %q", name)
	}
	return allocator(nvar, neqn), nil
}

// naiveKernel implements BlockKernel with plain loops. It is the portable
// default and the reference for the optimised implementations.
type naiveKernel struct {
	nvar int
	neqn int
}

func (o *naiveKernel) Gemv(a, x, y []float64) {
	for i := 0; i < o.nvar; i++ {
		sum := 0.0
		for j := 0; j < o.neqn; j++ {
			sum += a[i*o.neqn+j] * x[j]
		}
		y[i] = sum
	}
}

func (o *naiveKernel) GemvAdd(a, x, y []float64) {
	for i := 0; i < o.nvar; i++ {
		sum := 0.0
		for j := 0; j < o.neqn; j++ {
			sum += a[i*o.neqn+j] * x[j]
		}
		y[i] += sum
	}
}

func (o *naiveKernel) GemvSub(a, x, y []float64) {
	for i := 0; i < o.nvar; i++ {
		sum := 0.0
		for j := 0; j < o.neqn; j++ {
			sum += a[i*o.neqn+j] * x[j]
		}
		y[i] -= sum
	}
}

func (o *naiveKernel) GemvTransAdd(a, x, y []float64) {
	for i := 0; i < o.nvar; i++ {
		for j := 0; j < o.neqn; j++ {
			y[j] += a[i*o.neqn+j] * x[i]
		}
	}
}

func (o *naiveKernel) Gemm(a, b, c []float64) {
	n := o.nvar
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += a[i*n+k] * b[k*n+j]
			}
			c[i*n+j] = sum
		}
	}
}
