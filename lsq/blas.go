// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import "gonum.org/v1/gonum/blas/gonum"

// Level 1 BLAS on strided column-major storage. A non-positive length is a no-op.
var impl gonum.Implementation

func daxpy(n int, da float64, dx []float64, incx int, dy []float64, incy int) {
	if n > 0 {
		impl.Daxpy(n, da, dx, incx, dy, incy)
	}
}

func ddot(n int, dx []float64, incx int, dy []float64, incy int) float64 {
	if n <= 0 {
		return 0
	}
	return impl.Ddot(n, dx, incx, dy, incy)
}

func dcopy(n int, dx []float64, incx int, dy []float64, incy int) {
	if n > 0 {
		impl.Dcopy(n, dx, incx, dy, incy)
	}
}

func dnrm2(n int, x []float64, incx int) float64 {
	if n <= 0 {
		return 0
	}
	return impl.Dnrm2(n, x, incx)
}
