// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csc

import "fmt"

// HCat composes [ 𝐋 𝐑 ] side by side.
//
//	  n₁   n₂
//	 ┌┴┐  ┌┴┐
//	[ 𝐋 ﹕ 𝐑 ] ]╴m
//
// The columns of right follow the columns of left and row indices are unchanged.
// HCat panics if the row counts differ.
func HCat(left, right *Matrix) *Matrix {
	if left.r != right.r {
		panic(fmt.Sprintf("csc: hcat row mismatch %d×%d | %d×%d", left.r, left.c, right.r, right.c))
	}
	nl, nr := len(left.values), len(right.values)
	out := &Matrix{
		r:      left.r,
		c:      left.c + right.c,
		colPtr: make([]int, 0, left.c+right.c+1),
		rowIdx: make([]int, 0, nl+nr),
		values: make([]float64, 0, nl+nr),
	}
	out.colPtr = append(out.colPtr, left.colPtr...)
	for _, p := range right.colPtr[1:] {
		out.colPtr = append(out.colPtr, p+nl)
	}
	out.rowIdx = append(append(out.rowIdx, left.rowIdx...), right.rowIdx...)
	out.values = append(append(out.values, left.values...), right.values...)
	return out
}

// VCat stacks top over bottom.
//
//	⎡ 𝐓 ⎤ ]╴m₁
//	⎣ 𝐁 ⎦ ]╴m₂
//
// The row indices of bottom are shifted by the row count of top.
// VCat panics if the column counts differ.
func VCat(top, bottom *Matrix) *Matrix {
	if top.c != bottom.c {
		panic(fmt.Sprintf("csc: vcat column mismatch %d×%d / %d×%d", top.r, top.c, bottom.r, bottom.c))
	}
	nnz := len(top.values) + len(bottom.values)
	out := &Matrix{
		r:      top.r + bottom.r,
		c:      top.c,
		colPtr: make([]int, top.c+1),
		rowIdx: make([]int, 0, nnz),
		values: make([]float64, 0, nnz),
	}
	for j := 0; j < top.c; j++ {
		t0, t1 := top.colPtr[j], top.colPtr[j+1]
		b0, b1 := bottom.colPtr[j], bottom.colPtr[j+1]
		out.rowIdx = append(out.rowIdx, top.rowIdx[t0:t1]...)
		out.values = append(out.values, top.values[t0:t1]...)
		for k := b0; k < b1; k++ {
			out.rowIdx = append(out.rowIdx, bottom.rowIdx[k]+top.r)
		}
		out.values = append(out.values, bottom.values[b0:b1]...)
		out.colPtr[j+1] = len(out.values)
	}
	return out
}

// BlockDiag returns the block diagonal embedding
//
//	⎡ 𝐀 ೦ ⎤
//	⎣ ೦ 𝐁 ⎦
//
// built from the concatenation primitives.
func BlockDiag(a, b *Matrix) *Matrix {
	top := HCat(a, Zeros(a.r, b.c))
	bottom := HCat(Zeros(b.r, a.c), b)
	return VCat(top, bottom)
}

// Select returns the submatrix of a made of the given rows and columns, in the given order.
// Select panics if an index is out of range.
func Select(a *Matrix, rows, cols []int) *Matrix {
	pos := make([]int, a.r)
	for i := range pos {
		pos[i] = -1
	}
	for k, i := range rows {
		if i < 0 || i >= a.r {
			panic(fmt.Sprintf("csc: select row %d out of range [0,%d)", i, a.r))
		}
		pos[i] = k
	}
	t := NewTriplet(len(rows), len(cols))
	for k, j := range cols {
		if j < 0 || j >= a.c {
			panic(fmt.Sprintf("csc: select column %d out of range [0,%d)", j, a.c))
		}
		for p := a.colPtr[j]; p < a.colPtr[j+1]; p++ {
			if i := pos[a.rowIdx[p]]; i >= 0 {
				t.Append(i, k, a.values[p])
			}
		}
	}
	return t.Compress()
}
