// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestHouseholderReflects(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	for trial := 0; trial < 50; trial++ {
		m := 2 + rnd.Intn(6)
		p := rnd.Intn(m - 1)
		l := p + 1
		v := make([]float64, m)
		for i := range v {
			v[i] = rnd.NormFloat64()
		}
		orig := append([]float64(nil), v...)

		u := append([]float64(nil), v...)
		up := h1(p, l, m, u, 1)
		s := u[p]

		var want float64
		for i := p; i < m; i++ {
			want += orig[i] * orig[i]
		}
		require.InDelta(t, math.Sqrt(want), math.Abs(s), 1e-12)

		// applying 𝐐 to v gives s·𝐞ₚ below p
		c := append([]float64(nil), orig...)
		h2(p, l, m, u, 1, up, c, 1, 1, 1)
		assert.InDelta(t, s, c[p], 1e-12)
		for i := l; i < m; i++ {
			assert.InDelta(t, 0, c[i], 1e-12)
		}
		assert.Equal(t, orig[:p], c[:p])

		// 𝐐 is orthogonal
		w := make([]float64, m)
		for i := range w {
			w[i] = rnd.NormFloat64()
		}
		n0 := floats.Norm(w, 2)
		h2(p, l, m, u, 1, up, w, 1, 1, 1)
		assert.InDelta(t, n0, floats.Norm(w, 2), 1e-12)
	}
}

func TestHouseholderStrided(t *testing.T) {
	// two columns of a 3×2 column-major matrix, reflected through its first column
	a := []float64{
		3, 4, 0,
		1, 1, 1,
	}
	up := h1(0, 1, 3, a, 1)
	assert.InDelta(t, -5, a[0], 1e-15)
	h2(0, 1, 3, a, 1, up, a[3:], 1, 3, 1)
	assert.InDelta(t, math.Sqrt(3), floats.Norm(a[3:], 2), 1e-12)
	assert.InDelta(t, -(3+4)/5.0, a[3], 1e-12)
}

func TestHouseholderNoop(t *testing.T) {
	v := []float64{1, 2, 3}
	assert.Zero(t, h1(1, 1, 3, v, 1))
	assert.Zero(t, h1(0, 3, 3, v, 1))
	assert.Zero(t, h1(0, 1, 3, []float64{0, 0, 0}, 1))
	assert.Equal(t, []float64{1, 2, 3}, v)

	c := []float64{1, 2, 3}
	h2(0, 1, 3, v, 1, 0, c, 1, 1, 1)
	assert.Equal(t, []float64{1, 2, 3}, c)
}

func TestGivens(t *testing.T) {
	for _, ab := range [][2]float64{{3, 4}, {-4, 3}, {1e-3, -2}, {0, 5}, {7, 0}} {
		c, s, sig := g1(ab[0], ab[1])
		assert.InDelta(t, 1, c*c+s*s, 1e-15)
		assert.InDelta(t, math.Hypot(ab[0], ab[1]), sig, 1e-12)
		x, y := g2(c, s, ab[0], ab[1])
		assert.InDelta(t, sig, x, 1e-12)
		assert.InDelta(t, 0, y, 1e-12)
	}
	c, s, sig := g1(0, 0)
	assert.Equal(t, [3]float64{0, 1, 0}, [3]float64{c, s, sig})
}
