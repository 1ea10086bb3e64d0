// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csc

import (
	"fmt"
	"sort"
)

type triplet struct {
	i, j int
	v    float64
}

// Triplet is a growable list of (row, column, value) entries.
// It defers compaction until Compress is called.
type Triplet struct {
	r, c int
	data []triplet
}

// NewTriplet returns an empty r × c triplet list.
func NewTriplet(r, c int) *Triplet {
	if r < 0 || c < 0 {
		panic(fmt.Sprintf("csc: negative dimension %d×%d", r, c))
	}
	return &Triplet{r: r, c: c}
}

// Dims returns the number of rows and columns.
func (t *Triplet) Dims() (r, c int) {
	return t.r, t.c
}

// Len returns the number of appended entries, duplicates included.
func (t *Triplet) Len() int {
	return len(t.data)
}

// Append records v at (i, j). Entries at the same position are summed by Compress.
func (t *Triplet) Append(i, j int, v float64) {
	if i < 0 || t.r <= i {
		panic("csc: row index out of range")
	}
	if j < 0 || t.c <= j {
		panic("csc: column index out of range")
	}
	t.data = append(t.data, triplet{i, j, v})
}

// Compress builds the compressed column matrix.
// Duplicate entries are summed and entries summing to zero are dropped.
func (t *Triplet) Compress() *Matrix {
	data := append([]triplet(nil), t.data...)
	sort.Slice(data, func(a, b int) bool {
		if data[a].j != data[b].j {
			return data[a].j < data[b].j
		}
		return data[a].i < data[b].i
	})

	m := &Matrix{r: t.r, c: t.c, colPtr: make([]int, t.c+1)}
	for k := 0; k < len(data); {
		e := data[k]
		for k++; k < len(data) && data[k].i == e.i && data[k].j == e.j; k++ {
			e.v += data[k].v
		}
		if e.v != 0 {
			m.rowIdx = append(m.rowIdx, e.i)
			m.values = append(m.values, e.v)
			m.colPtr[e.j+1]++
		}
	}
	for j := 0; j < t.c; j++ {
		m.colPtr[j+1] += m.colPtr[j]
	}
	return m
}
