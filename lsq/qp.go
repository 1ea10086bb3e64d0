// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import "math"

// Problem is the dense least-distance form
//
//	𝚖𝚒𝚗 ½‖ 𝐄𝐱 - 𝐟 ‖₂²  subject to  𝐂𝐱 = 𝐝  and  𝐆𝐱 ≥ 𝐡
//
// with 𝐄 (ME × N), 𝐂 (MC × N) and 𝐆 (MG × N) stored column-major.
// Solve never writes to the slices of a Problem.
type Problem struct {
	N int

	ME int
	E  []float64
	F  []float64

	MC int
	C  []float64
	D  []float64

	MG int
	G  []float64
	H  []float64
}

// Solution is the outcome of Solve.
// Mu and Lambda satisfy 𝐄ᵀ(𝐄𝐱 - 𝐟) = 𝐂ᵀ𝛍 + 𝐆ᵀ𝛌 with 𝛌 ≥ 0.
type Solution struct {
	X      []float64
	Mu     []float64
	Lambda []float64
	Norm   float64 // ‖ 𝐄𝐱 - 𝐟 ‖₂
	Mode   Mode
}

func (p *Problem) valid() bool {
	n := p.N
	return n >= 1 && p.ME >= 0 && p.MC >= 0 && p.MG >= 0 && p.MC <= n &&
		len(p.E) >= p.ME*n && len(p.F) >= p.ME &&
		len(p.C) >= p.MC*n && len(p.D) >= p.MC &&
		len(p.G) >= p.MG*n && len(p.H) >= p.MG
}

// Solve runs LSEI on a private copy of p.
// maxIter bounds the NNLS iterations inside LDP, zero selects 3n.
func Solve(p *Problem, maxIter int) *Solution {
	if !p.valid() {
		return &Solution{Norm: math.NaN(), Mode: BadArgument}
	}

	n, mc, me, mg := p.N, p.MC, p.ME, p.MG
	c := append([]float64(nil), p.C[:mc*n]...)
	d := append([]float64(nil), p.D[:mc]...)
	e := append([]float64(nil), p.E[:me*n]...)
	f := append([]float64(nil), p.F[:me]...)
	g := append([]float64(nil), p.G[:mg*n]...)
	h := append([]float64(nil), p.H[:mg]...)

	x, mu, lambda, mode := LSEI(c, d, e, f, g, h, mc, me, mg, n, maxIter)
	sol := &Solution{X: x, Mu: mu, Lambda: lambda, Norm: math.NaN(), Mode: mode}
	if mode != HasSolution {
		sol.X = make([]float64, n)
		return sol
	}

	var ss float64
	for i := 0; i < me; i++ {
		r := ddot(n, p.E[i:], me, x, 1) - p.F[i]
		ss += r * r
	}
	sol.Norm = math.Sqrt(ss)
	return sol
}
