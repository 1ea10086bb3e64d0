// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import "math"

// NNLS solves
//
//	𝚖𝚒𝚗 ‖ 𝐀𝐱 - 𝐛 ‖₂  subject to  𝐱 ≥ 0
//
// for the m × n column-major 𝐀 with the active set method of
// Lawson & Hanson (chapter 23, algorithm 23.10).
//
// Columns enter the passive set ℙ one at a time and are triangularized in
// place by Householder reflections, so a and b are overwritten.
// A column leaving ℙ is removed with Givens rotations.
//
// The returned w is the dual vector 𝐀ᵀ(𝐛 - 𝐀𝐱): zero on ℙ and non-positive
// on the zero set at a solution. rnorm is the residual ‖ 𝐀𝐱 - 𝐛 ‖₂.
// maxIter bounds the inner loop, zero selects 3n.
func NNLS(a []float64, m, n int, b []float64, maxIter int) (x, w []float64, rnorm float64, mode Mode) {
	if m <= 0 || n <= 0 || len(a) < m*n || len(b) < m {
		return nil, nil, math.NaN(), BadArgument
	}
	if maxIter <= 0 {
		maxIter = 3 * n
	}
	const factor = 0.01

	col := func(j int) []float64 { return a[m*j : m*j+m] }

	x = make([]float64, n)
	w = make([]float64, n)
	z := make([]float64, m)

	// set[:np] is ℙ in triangularization order, set[np:] is the zero set
	set := make([]int, n)
	for j := range set {
		set[j] = j
	}
	np := 0

	// solve the leading np × np triangle against z
	backSolve := func() {
		for k := np - 1; k >= 0; k-- {
			ck := col(set[k])
			z[k] /= ck[k]
			daxpy(k, -z[k], ck, 1, z, 1)
		}
	}

	// drop set[q] from ℙ and restore the triangle
	release := func(q int) {
		out := set[q]
		x[out] = 0
		for k := q + 1; k < np; k++ {
			in := set[k]
			set[k-1] = in
			ci := col(in)
			c, s, sig := g1(ci[k-1], ci[k])
			ci[k-1], ci[k] = sig, 0
			for l := 0; l < n; l++ {
				if l != in {
					cl := col(l)
					cl[k-1], cl[k] = g2(c, s, cl[k-1], cl[k])
				}
			}
			b[k-1], b[k] = g2(c, s, b[k-1], b[k])
		}
		np--
		set[np] = out
	}

	iter := 0
	mode = HasSolution

outer:
	for np < n && np < m {
		for _, j := range set[np:] {
			w[j] = ddot(m-np, col(j)[np:], 1, b[np:], 1)
		}

		// move the most promising column into ℙ
		for {
			t, best := -1, 0.0
			for k := np; k < n; k++ {
				if j := set[k]; w[j] > best {
					t, best = k, w[j]
				}
			}
			if t < 0 {
				break outer
			}

			j := set[t]
			cj := col(j)
			pivot := cj[np]
			up := h1(np, np+1, m, cj, 1)
			if math.Abs(cj[np])*factor >= dnrm2(np, cj, 1)*eps {
				copy(z, b[:m])
				h2(np, np+1, m, cj, 1, up, z, 1, 1, 1)
				if z[np]/cj[np] > 0 {
					copy(b[:m], z)
					set[t], set[np] = set[np], j
					np++
					for _, k := range set[np:] {
						h2(np-1, np, m, cj, 1, up, col(k), 1, m, 1)
					}
					clear(cj[np:])
					w[j] = 0
					break
				}
			}
			// dependent or wrong signed, keep it in the zero set
			cj[np] = pivot
			w[j] = 0
		}

		for {
			copy(z, b[:m])
			backSolve()
			if iter++; iter > maxIter {
				mode = NNLSExceedMaxIter
				break outer
			}

			alpha, q := 2.0, -1
			for k := 0; k < np; k++ {
				if z[k] <= 0 {
					l := set[k]
					if s := -x[l] / (z[k] - x[l]); s < alpha {
						alpha, q = s, k
					}
				}
			}
			if q < 0 {
				for k := 0; k < np; k++ {
					x[set[k]] = z[k]
				}
				continue outer
			}

			// step toward z until the first coefficient hits zero
			for k := 0; k < np; k++ {
				l := set[k]
				x[l] += alpha * (z[k] - x[l])
			}
			for q >= 0 {
				release(q)
				q = -1
				for k := 0; k < np; k++ {
					if x[set[k]] <= 0 {
						q = k
						break
					}
				}
			}
		}
	}

	if np < m {
		rnorm = dnrm2(m-np, b[np:], 1)
	} else {
		clear(w)
	}
	return x, w, rnorm, mode
}
