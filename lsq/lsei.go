// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import "math"

// LSI solves
//
//	𝚖𝚒𝚗 ½‖ 𝐄𝐱 - 𝐟 ‖₂²  subject to  𝐆𝐱 ≥ 𝐡
//
// for the me × n column-major 𝐄 of full column rank and the mg × n 𝐆
// (Lawson & Hanson, chapter 23, section 6).
//
// With 𝐄 = 𝐐[𝐑; 0] and 𝐳 = 𝐑𝐱 - (𝐐ᵀ𝐟)[:n] the problem becomes the least
// distance problem 𝚖𝚒𝚗 ‖ 𝐳 ‖₂ subject to 𝐆𝐑⁻¹𝐳 ≥ 𝐡 - 𝐆𝐑⁻¹(𝐐ᵀ𝐟)[:n],
// whose multipliers are those of the original constraints.
//
// e, f, g and h are overwritten.
func LSI(e []float64, me, n int, f []float64, g []float64, mg int, h []float64, maxIter int) (x, lambda []float64, mode Mode) {
	if n <= 0 || me < 0 || mg < 0 || len(e) < me*n || len(f) < me || len(g) < mg*n || len(h) < mg {
		return nil, nil, BadArgument
	}
	if me < n {
		return nil, nil, LSISingularE
	}

	for j := 0; j < n; j++ {
		cj := e[me*j:]
		up := h1(j, j+1, me, cj, 1)
		h2(j, j+1, me, cj, 1, up, e[me*(j+1):], 1, me, n-j-1)
		h2(j, j+1, me, cj, 1, up, f, 1, 1, 1)
	}
	for j := 0; j < n; j++ {
		if d := math.Abs(e[j+me*j]); !(d >= eps) {
			return nil, nil, LSISingularE
		}
	}

	// 𝐆 ← 𝐆𝐑⁻¹ row by row, then shift 𝐡
	for i := 0; i < mg; i++ {
		for j := 0; j < n; j++ {
			gij := i + mg*j
			g[gij] = (g[gij] - ddot(j, g[i:], mg, e[me*j:], 1)) / e[j+me*j]
		}
		h[i] -= ddot(n, g[i:], mg, f, 1)
	}

	x, lambda, mode = LDP(g, mg, n, h, maxIter)
	if mode != HasSolution {
		return nil, nil, mode
	}

	// 𝐑𝐱 = 𝐳 + (𝐐ᵀ𝐟)[:n]
	for i := n - 1; i >= 0; i-- {
		s := x[i] + f[i]
		for k := i + 1; k < n; k++ {
			s -= e[i+me*k] * x[k]
		}
		x[i] = s / e[i+me*i]
	}
	return x, lambda, HasSolution
}

// LSEI solves
//
//	𝚖𝚒𝚗 ½‖ 𝐄𝐱 - 𝐟 ‖₂²  subject to  𝐂𝐱 = 𝐝  and  𝐆𝐱 ≥ 𝐡
//
// where 𝐂 (mc × n), 𝐄 (me × n) and 𝐆 (mg × n) are column-major and 𝐂 has full
// row rank mc ≤ n (Lawson & Hanson, chapter 20 and 23).
//
// Reflections 𝐊 applied from the right reduce 𝐂 to the lower triangle [𝐂̃₁ 0].
// In the coordinates 𝐲 = 𝐊ᵀ𝐱 the equalities fix 𝐲₁ by forward substitution and
// the remaining 𝐲₂ solves an LSI problem in n - mc variables, or an unconstrained
// least squares problem through HFTI when there are no inequalities.
// When mc = n the equalities alone fix 𝐱 and the inequalities are not consulted.
//
// The multipliers satisfy 𝐄ᵀ(𝐄𝐱 - 𝐟) = 𝐂ᵀ𝛍 + 𝐆ᵀ𝛌 with 𝛌 ≥ 0.
// All six slices are overwritten.
func LSEI(c, d, e, f, g, h []float64, mc, me, mg, n int, maxIter int) (x, mu, lambda []float64, mode Mode) {
	if n <= 0 || mc < 0 || me < 0 || mg < 0 || mc > n ||
		len(c) < mc*n || len(d) < mc || len(e) < me*n || len(f) < me ||
		len(g) < mg*n || len(h) < mg {
		return nil, nil, nil, BadArgument
	}

	// triangularize the rows of 𝐂 and carry 𝐄 and 𝐆 along
	kup := make([]float64, mc)
	for i := 0; i < mc; i++ {
		ri := c[i:]
		kup[i] = h1(i, i+1, n, ri, mc)
		h2(i, i+1, n, ri, mc, kup[i], c[i+1:], mc, 1, mc-i-1)
		h2(i, i+1, n, ri, mc, kup[i], e, me, 1, me)
		h2(i, i+1, n, ri, mc, kup[i], g, mg, 1, mg)
	}

	y := make([]float64, n)
	for i := 0; i < mc; i++ {
		diag := c[i+mc*i]
		if !(math.Abs(diag) >= eps) {
			return nil, nil, nil, LSEISingularC
		}
		y[i] = (d[i] - ddot(i, c[i:], mc, y, 1)) / diag
	}

	lambda = make([]float64, mg)
	if l := n - mc; l > 0 {
		// 𝐄₂𝐲₂ ≈ 𝐟 - 𝐄₁𝐲₁ and 𝐆₂𝐲₂ ≥ 𝐡 - 𝐆₁𝐲₁
		rf := append([]float64(nil), f[:me]...)
		for i := 0; i < me; i++ {
			rf[i] -= ddot(mc, e[i:], me, y, 1)
		}
		er := append([]float64(nil), e[me*mc:me*n]...)

		var y2 []float64
		if mg > 0 {
			gr := append([]float64(nil), g[mg*mc:mg*n]...)
			for i := 0; i < mg; i++ {
				h[i] -= ddot(mc, g[i:], mg, y, 1)
			}
			y2, lambda, mode = LSI(er, me, l, rf, gr, mg, h, maxIter)
			if mode != HasSolution {
				return nil, nil, nil, mode
			}
		} else {
			var rank int
			y2, rank, _, _ = HFTI(er, me, l, rf, 1, sqrtEps)
			if rank != l {
				return nil, nil, nil, HFTIRankDefect
			}
		}
		copy(y[mc:], y2)
	}

	if mc > 0 {
		// 𝐄̃₁ᵀ𝐫 - 𝐆̃₁ᵀ𝛌 = 𝐂̃₁ᵀ𝛍 with 𝐫 = 𝐄̃𝐲 - 𝐟
		r := make([]float64, me)
		for i := 0; i < me; i++ {
			r[i] = ddot(n, e[i:], me, y, 1) - f[i]
		}
		mu = make([]float64, mc)
		for i := 0; i < mc; i++ {
			mu[i] = ddot(me, e[me*i:], 1, r, 1) - ddot(mg, g[mg*i:], 1, lambda, 1)
		}
		for i := mc - 1; i >= 0; i-- {
			mu[i] = (mu[i] - ddot(mc-i-1, c[i+1+mc*i:], 1, mu[i+1:], 1)) / c[i+mc*i]
		}
	}

	// 𝐱 = 𝐊𝐲
	for i := mc - 1; i >= 0; i-- {
		h2(i, i+1, n, c[i:], mc, kup[i], y, 1, 1, 1)
	}
	return y, mu, lambda, HasSolution
}
