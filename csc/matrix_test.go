// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomMatrix(rnd *rand.Rand, r, c int, density float64) *Matrix {
	t := NewTriplet(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if rnd.Float64() < density {
				t.Append(i, j, rnd.NormFloat64())
			}
		}
	}
	return t.Compress()
}

func TestZeros(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {0, 3}, {4, 0}, {2, 5}} {
		z := Zeros(dims[0], dims[1])
		r, c := z.Dims()
		assert.Equal(t, dims[0], r)
		assert.Equal(t, dims[1], c)
		assert.Zero(t, z.NNZ())
		assert.Len(t, z.colPtr, c+1)
	}
	assert.Panics(t, func() { Zeros(-1, 2) })
}

func TestFromRow(t *testing.T) {
	a := FromRow([]float64{0, 1.5, 0, -2})
	r, c := a.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 4, c)
	assert.Equal(t, 2, a.NNZ())
	assert.Equal(t, []int{0, 0, 1, 1, 2}, a.colPtr)
	assert.Equal(t, 1.5, a.At(0, 1))
	assert.Equal(t, -2.0, a.At(0, 3))
	assert.Zero(t, a.At(0, 2))

	empty := FromRow(nil)
	r, c = empty.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 0, c)
}

func TestNewValidates(t *testing.T) {
	a := New(2, 2, []int{0, 1, 3}, []int{1, 0, 1}, []float64{4, 5, 6})
	assert.Equal(t, 4.0, a.At(1, 0))
	assert.Equal(t, 5.0, a.At(0, 1))
	assert.Equal(t, 6.0, a.At(1, 1))
	assert.Zero(t, a.At(0, 0))

	assert.Panics(t, func() { New(2, 2, []int{0, 1}, []int{0}, []float64{1}) })
	assert.Panics(t, func() { New(2, 2, []int{0, 2, 1}, []int{0, 1}, []float64{1, 2}) })
	assert.Panics(t, func() { New(2, 1, []int{0, 1}, []int{2}, []float64{1}) })
	assert.Panics(t, func() { New(2, 1, []int{0, 2}, []int{1, 0}, []float64{1, 2}) })
}

func TestNegate(t *testing.T) {
	a := FromRows(3, [][]float64{
		{1, 0, -2},
		{0, 3, 0},
	})
	n := a.Negate()
	assert.Equal(t, a.colPtr, n.colPtr)
	assert.Equal(t, a.rowIdx, n.rowIdx)
	a.Do(func(i, j int, v float64) {
		assert.Equal(t, -v, n.At(i, j))
	})
	// the receiver is left untouched
	assert.Equal(t, 1.0, a.At(0, 0))
}

func TestTripletCompress(t *testing.T) {
	tr := NewTriplet(3, 2)
	tr.Append(2, 1, 1)
	tr.Append(0, 1, 2)
	tr.Append(2, 1, 3)
	tr.Append(1, 0, 5)
	tr.Append(1, 0, -5)
	a := tr.Compress()

	assert.Equal(t, 5, tr.Len())
	assert.Equal(t, 2, a.NNZ())
	assert.Equal(t, 2.0, a.At(0, 1))
	assert.Equal(t, 4.0, a.At(2, 1))
	assert.Zero(t, a.At(1, 0))
	assert.Panics(t, func() { tr.Append(3, 0, 1) })
	assert.Panics(t, func() { tr.Append(0, 2, 1) })
}

func TestMulVec(t *testing.T) {
	a := FromRows(3, [][]float64{
		{1, 2, 0},
		{0, -1, 4},
	})
	assert.Equal(t, []float64{5, 10}, a.MulVec([]float64{1, 2, 3}))
	assert.Equal(t, []float64{1, 1, 4}, a.MulTransVec([]float64{1, 1}))
	assert.Panics(t, func() { a.MulVec([]float64{1}) })
}

func TestGonumInterop(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	a := randomMatrix(rnd, 4, 6, 0.4)
	d := a.Dense()

	assert.True(t, mat.Equal(a, d))
	assert.True(t, mat.Equal(a.T(), d.T()))
	assert.True(t, mat.Equal(a.Transpose(), d.T()))
	assert.True(t, a.Transpose().Transpose().Equal(a))
}

func TestSymmetric(t *testing.T) {
	p := FromRows(2, [][]float64{
		{2, 1},
		{1, 3},
	})
	assert.True(t, p.Symmetric(0))
	assert.False(t, FromRows(2, [][]float64{{2, 1}, {0, 3}}).Symmetric(1e-12))
	assert.False(t, Zeros(1, 2).Symmetric(0))
	assert.True(t, Identity(3).Symmetric(0))
}
