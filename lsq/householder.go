// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import "math"

// Householder reflections and Givens rotations from
// C.L. Lawson, R.J. Hanson, 'Solving least squares problems', chapters 3 and 10.
//
// Vectors live in strided storage: element i of v is v[i*inc].

// h1 builds the reflection 𝐐 = 𝐈 - 𝐮𝐮ᵀ/(s·uₚ) that maps v onto s·𝐞ₚ while
// zeroing elements l..m-1 and leaving the others alone.
// On return v[p] holds s, elements l..m-1 of v hold those of 𝐮, and uₚ is returned.
// Nothing happens unless 0 ≤ p < l < m, or when the elements involved are all zero.
func h1(p, l, m int, v []float64, inc int) (up float64) {
	if p < 0 || p >= l || l >= m {
		return
	}
	vp := v[p*inc]
	scale := math.Abs(vp)
	for i := l; i < m; i++ {
		scale = math.Max(scale, math.Abs(v[i*inc]))
	}
	if scale <= zero {
		return
	}

	// scaled sum of squares avoids overflow
	r := vp / scale
	ss := r * r
	for i := l; i < m; i++ {
		r = v[i*inc] / scale
		ss += r * r
	}
	s := scale * math.Sqrt(ss)
	if vp > zero {
		s = -s
	}
	v[p*inc] = s
	return vp - s
}

// h2 applies the reflection built by h1 to ncv vectors stored in c.
// Element i of vector k is c[k*icv+i*ice]; each becomes 𝐜 + (𝐮ᵀ𝐜)/(s·uₚ)·𝐮.
func h2(p, l, m int, u []float64, iue int, up float64, c []float64, ice, icv, ncv int) {
	if p < 0 || p >= l || l >= m || ncv <= 0 {
		return
	}
	b := u[p*iue] * up
	if b >= zero {
		// identity reflection
		return
	}
	b = one / b

	for k := 0; k < ncv; k++ {
		base := k * icv
		jp := base + p*ice
		sm := c[jp] * up
		for i := l; i < m; i++ {
			sm += c[base+i*ice] * u[i*iue]
		}
		if sm == zero {
			continue
		}
		sm *= b
		c[jp] += sm * up
		for i := l; i < m; i++ {
			c[base+i*ice] += sm * u[i*iue]
		}
	}
}

// g1 returns the rotation
//
//	⎡ c s⎤⎡a⎤ = ⎡σ⎤    σ = (a² + b²)¹ᐟ²
//	⎣-s c⎦⎣b⎦   ⎣0⎦
//
// used to annihilate subdiagonal entries during NNLS updates.
func g1(a, b float64) (c, s, sig float64) {
	xa, xb := math.Abs(a), math.Abs(b)
	switch {
	case xa > xb:
		t := b / a
		y := math.Sqrt(1 + t*t)
		c = math.Copysign(1/y, a)
		s = c * t
		sig = xa * y
	case xb > 0:
		t := a / b
		y := math.Sqrt(1 + t*t)
		s = math.Copysign(1/y, b)
		c = s * t
		sig = xb * y
	default:
		s = 1
	}
	return
}

// g2 applies the rotation (c, s) to the pair (x, y).
func g2(c, s float64, x, y float64) (float64, float64) {
	return c*x + s*y, -s*x + c*y
}
