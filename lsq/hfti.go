// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import "math"

// HFTI computes the minimal length solution of
//
//	𝚖𝚒𝚗 ‖ 𝐀𝐗 - 𝐁 ‖_F
//
// for the m × n column-major 𝐀 and the m × nb right hand sides 𝐁, using
// Householder QR with column pivoting (Lawson & Hanson, chapter 14).
//
// Diagonal entries of R no larger than tau in magnitude truncate the pseudo rank.
// a is overwritten and b is left untouched; b may be nil when nb is zero.
//
// The solution 𝐗 is n × nb column-major and rnorm[j] is the residual of column j.
// perm is the column order chosen by pivoting, so perm[:rank] names a maximal
// set of independent columns of 𝐀.
func HFTI(a []float64, m, n int, b []float64, nb int, tau float64) (x []float64, rank int, rnorm []float64, perm []int) {
	if m < 0 || n < 0 || nb < 0 || len(a) < m*n || len(b) < m*nb {
		return nil, 0, nil, nil
	}
	const factor = 0.001

	k := min(m, n)
	ldw := max(m, n)
	work := make([]float64, ldw*nb)
	for j := 0; j < nb; j++ {
		copy(work[ldw*j:], b[m*j:m*j+m])
	}

	norms := make([]float64, n)
	pivot := make([]int, k)
	perm = make([]int, n)
	for j := range perm {
		perm[j] = j
	}

	var top float64
	for j := 0; j < k; j++ {
		// downdate the trailing column norms, recomputing them once they lose precision
		l := j
		if j > 0 {
			for c := j; c < n; c++ {
				t := a[j-1+m*c]
				norms[c] -= t * t
				if norms[c] > norms[l] {
					l = c
				}
			}
		}
		if j == 0 || factor*norms[l] < top*eps {
			l = j
			for c := j; c < n; c++ {
				cc := a[m*c : m*c+m]
				norms[c] = ddot(m-j, cc[j:], 1, cc[j:], 1)
				if norms[c] > norms[l] {
					l = c
				}
			}
			top = norms[l]
		}

		pivot[j] = l
		if l != j {
			cj, cl := a[m*j:m*j+m], a[m*l:m*l+m]
			for i := range cj {
				cj[i], cl[i] = cl[i], cj[i]
			}
			norms[l] = norms[j]
			perm[j], perm[l] = perm[l], perm[j]
		}

		cj := a[m*j:]
		up := h1(j, j+1, m, cj, 1)
		norms[j] = up
		h2(j, j+1, m, cj, 1, up, a[m*(j+1):], 1, m, n-j-1)
		h2(j, j+1, m, cj, 1, up, work, 1, ldw, nb)
	}

	rank = k
	for j := 0; j < k; j++ {
		if math.Abs(a[j+m*j]) <= tau {
			rank = j
			break
		}
	}

	rnorm = make([]float64, nb)
	for j := 0; j < nb; j++ {
		rnorm[j] = dnrm2(m-rank, work[ldw*j+rank:], 1)
	}

	// [R₁₁ R₁₂] = [W 0]K folds the dependent columns into the leading triangle
	var kup []float64
	if rank > 0 && rank < n {
		kup = make([]float64, rank)
		for i := rank - 1; i >= 0; i-- {
			kup[i] = h1(i, rank, n, a[i:], m)
			h2(i, rank, n, a[i:], m, kup[i], a, m, 1, i)
		}
	}

	x = make([]float64, n*nb)
	for jb := 0; jb < nb; jb++ {
		cb := work[ldw*jb : ldw*jb+ldw]
		for i := rank - 1; i >= 0; i-- {
			s := cb[i]
			for c := i + 1; c < rank; c++ {
				s -= a[i+m*c] * cb[c]
			}
			cb[i] = s / a[i+m*i]
		}
		clear(cb[rank:n])
		for i := 0; i < len(kup); i++ {
			h2(i, rank, n, a[i:], m, kup[i], cb, 1, ldw, 1)
		}
		for j := k - 1; j >= 0; j-- {
			if l := pivot[j]; l != j {
				cb[j], cb[l] = cb[l], cb[j]
			}
		}
		copy(x[n*jb:], cb[:n])
	}
	return x, rank, rnorm, perm
}
