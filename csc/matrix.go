// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is an r × c sparse matrix stored in compressed sparse column form.
//
// The nonzeros of column j are held in rowIdx[colPtr[j]:colPtr[j+1]] and
// values[colPtr[j]:colPtr[j+1]], with row indices ascending inside a column.
//
// A Matrix is never modified once built. Every operation returning a Matrix
// allocates a new one, so a value can be shared freely between models.
type Matrix struct {
	r, c   int
	colPtr []int     // c + 1
	rowIdx []int     // nnz
	values []float64 // nnz
}

var _ mat.Matrix = (*Matrix)(nil)

// Zeros returns the r × c matrix without stored entries.
func Zeros(r, c int) *Matrix {
	if r < 0 || c < 0 {
		panic(fmt.Sprintf("csc: negative dimension %d×%d", r, c))
	}
	return &Matrix{r: r, c: c, colPtr: make([]int, c+1)}
}

// New creates a matrix from its compressed column arrays.
// The arrays are owned by the returned matrix and must not be modified afterward.
// New panics when the arrays violate the storage invariants.
func New(r, c int, colPtr, rowIdx []int, values []float64) *Matrix {
	if r < 0 || c < 0 {
		panic(fmt.Sprintf("csc: negative dimension %d×%d", r, c))
	}
	switch {
	case len(colPtr) != c+1:
		panic(fmt.Sprintf("csc: column pointer length %d, want %d", len(colPtr), c+1))
	case colPtr[0] != 0:
		panic("csc: column pointer must start at zero")
	case len(rowIdx) != len(values) || colPtr[c] != len(values):
		panic(fmt.Sprintf("csc: %d row indices and %d values for %d nonzeros", len(rowIdx), len(values), colPtr[c]))
	}
	for j := 0; j < c; j++ {
		if colPtr[j] > colPtr[j+1] {
			panic(fmt.Sprintf("csc: column pointer decreases at column %d", j))
		}
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			i := rowIdx[k]
			if i < 0 || i >= r {
				panic(fmt.Sprintf("csc: row index %d out of range [0,%d) in column %d", i, r, j))
			}
			if k > colPtr[j] && rowIdx[k-1] >= i {
				panic(fmt.Sprintf("csc: row indices not ascending in column %d", j))
			}
		}
	}
	return &Matrix{r: r, c: c, colPtr: colPtr, rowIdx: rowIdx, values: values}
}

// Identity returns the n × n identity matrix.
func Identity(n int) *Matrix {
	t := NewTriplet(n, n)
	for i := 0; i < n; i++ {
		t.Append(i, i, 1)
	}
	return t.Compress()
}

// FromRow returns the 1 × len(values) matrix holding a single row.
// Zero coefficients are not stored.
func FromRow(values []float64) *Matrix {
	n := len(values)
	a := &Matrix{r: 1, c: n, colPtr: make([]int, n+1)}
	for j, v := range values {
		if v != 0 {
			a.rowIdx = append(a.rowIdx, 0)
			a.values = append(a.values, v)
		}
		a.colPtr[j+1] = len(a.values)
	}
	return a
}

// FromRows returns the matrix whose i-th row is rows[i].
// All rows must have length c; zero coefficients are not stored.
func FromRows(c int, rows [][]float64) *Matrix {
	t := NewTriplet(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			panic(fmt.Sprintf("csc: row %d has length %d, want %d", i, len(row), c))
		}
		for j, v := range row {
			if v != 0 {
				t.Append(i, j, v)
			}
		}
	}
	return t.Compress()
}

// Dims returns the number of rows and columns.
func (a *Matrix) Dims() (r, c int) {
	return a.r, a.c
}

// NNZ returns the number of stored entries.
func (a *Matrix) NNZ() int {
	return len(a.values)
}

// At returns the element at row i and column j.
func (a *Matrix) At(i, j int) float64 {
	if uint(i) >= uint(a.r) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(a.c) {
		panic(mat.ErrColAccess)
	}
	lo, hi := a.colPtr[j], a.colPtr[j+1]
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch k := a.rowIdx[mid]; {
		case k == i:
			return a.values[mid]
		case k < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// T returns the implicit transpose of the matrix.
func (a *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: a}
}

// Do calls fn for every stored entry in column-major order.
func (a *Matrix) Do(fn func(i, j int, v float64)) {
	for j := 0; j < a.c; j++ {
		for k := a.colPtr[j]; k < a.colPtr[j+1]; k++ {
			fn(a.rowIdx[k], j, a.values[k])
		}
	}
}

// Dense returns a dense copy of the matrix.
func (a *Matrix) Dense() *mat.Dense {
	if a.r == 0 || a.c == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(a.r, a.c, nil)
	a.Do(func(i, j int, v float64) {
		d.Set(i, j, v)
	})
	return d
}

// Negate returns a matrix with the same sparsity pattern and every stored value negated.
func (a *Matrix) Negate() *Matrix {
	return a.Scale(-1)
}

// Scale returns alpha × a with the sparsity pattern of a.
func (a *Matrix) Scale(alpha float64) *Matrix {
	s := a.clone()
	for k := range s.values {
		s.values[k] *= alpha
	}
	return s
}

// Transpose returns the explicit c × r transpose.
func (a *Matrix) Transpose() *Matrix {
	t := NewTriplet(a.c, a.r)
	a.Do(func(i, j int, v float64) {
		t.Append(j, i, v)
	})
	return t.Compress()
}

// MulVec computes 𝐲 = 𝐀𝐱.
func (a *Matrix) MulVec(x []float64) []float64 {
	if len(x) != a.c {
		panic(mat.ErrShape)
	}
	y := make([]float64, a.r)
	a.Do(func(i, j int, v float64) {
		y[i] += v * x[j]
	})
	return y
}

// MulTransVec computes 𝐲 = 𝐀ᵀ𝐱.
func (a *Matrix) MulTransVec(x []float64) []float64 {
	if len(x) != a.r {
		panic(mat.ErrShape)
	}
	y := make([]float64, a.c)
	a.Do(func(i, j int, v float64) {
		y[j] += v * x[i]
	})
	return y
}

// Equal reports whether a and b have identical shape, sparsity pattern and stored values.
func (a *Matrix) Equal(b *Matrix) bool {
	if a.r != b.r || a.c != b.c || len(a.values) != len(b.values) {
		return false
	}
	for j := range a.colPtr {
		if a.colPtr[j] != b.colPtr[j] {
			return false
		}
	}
	for k := range a.values {
		if a.rowIdx[k] != b.rowIdx[k] || a.values[k] != b.values[k] {
			return false
		}
	}
	return true
}

// Symmetric reports whether a is square and |aᵢⱼ - aⱼᵢ| ≤ tol for all entries.
func (a *Matrix) Symmetric(tol float64) bool {
	if a.r != a.c {
		return false
	}
	ok := true
	a.Do(func(i, j int, v float64) {
		if ok && math.Abs(v-a.At(j, i)) > tol {
			ok = false
		}
	})
	return ok
}

func (a *Matrix) clone() *Matrix {
	return &Matrix{
		r:      a.r,
		c:      a.c,
		colPtr: append([]int(nil), a.colPtr...),
		rowIdx: append([]int(nil), a.rowIdx...),
		values: append([]float64(nil), a.values...),
	}
}

// String formats the shape and entry count, e.g. "csc(3×4, nnz=5)".
func (a *Matrix) String() string {
	return fmt.Sprintf("csc(%d×%d, nnz=%d)", a.r, a.c, len(a.values))
}
