// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

// LDP finds the least distance point
//
//	𝚖𝚒𝚗 ‖ 𝐱 ‖₂  subject to  𝐆𝐱 ≥ 𝐡
//
// for the m × n column-major 𝐆 (Lawson & Hanson, chapter 23, section 5).
//
// The dual is the NNLS problem 𝚖𝚒𝚗 ‖ 𝐔𝐮 - 𝐞ₙ₊₁ ‖₂ over 𝐮 ≥ 0, where column i
// of the (n+1) × m matrix 𝐔 is row i of 𝐆 followed by hᵢ. With 𝐫 its residual,
// 𝐱 = -𝐫[:n]/𝐫ₙ and the multipliers are 𝛌 = 𝐮/(1 - 𝐡ᵀ𝐮), so that 𝐱 = 𝐆ᵀ𝛌.
// A zero residual means the constraints admit no point at all.
//
// g and h are left untouched.
func LDP(g []float64, m, n int, h []float64, maxIter int) (x, lambda []float64, mode Mode) {
	if n <= 0 || m < 0 || len(g) < m*n || len(h) < m {
		return nil, nil, BadArgument
	}
	x = make([]float64, n)
	if m == 0 {
		return x, nil, HasSolution
	}

	k := n + 1
	u := make([]float64, k*m)
	for i := 0; i < m; i++ {
		ci := u[k*i : k*i+k]
		dcopy(n, g[i:], m, ci, 1)
		ci[n] = h[i]
	}
	b := make([]float64, k)
	b[n] = 1

	lambda, _, rnorm, mode := NNLS(u, k, m, b, maxIter)
	if mode != HasSolution {
		return nil, nil, mode
	}

	fac := 1 - ddot(m, h, 1, lambda, 1)
	if rnorm <= 0 || !(fac >= eps) {
		return nil, nil, ConsIncompatible
	}
	for i := range lambda {
		lambda[i] /= fac
	}
	for j := 0; j < n; j++ {
		x[j] = ddot(m, g[m*j:], 1, lambda, 1)
	}
	return x, lambda, HasSolution
}
