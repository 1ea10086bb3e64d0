// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveProjection(t *testing.T) {
	// project (1, 2) onto { x₁ + x₂ = 1, x ≥ 0 }
	p := &Problem{
		N:  2,
		ME: 2, E: []float64{1, 0, 0, 1}, F: []float64{1, 2},
		MC: 1, C: []float64{1, 1}, D: []float64{1},
		MG: 2, G: []float64{1, 0, 0, 1}, H: []float64{0, 0},
	}
	e := append([]float64(nil), p.E...)
	h := append([]float64(nil), p.H...)

	sol := Solve(p, 0)
	require.Equal(t, HasSolution, sol.Mode)
	assert.InDeltaSlice(t, []float64{0, 1}, sol.X, 1e-10)
	assert.InDeltaSlice(t, []float64{-1}, sol.Mu, 1e-10)
	assert.InDeltaSlice(t, []float64{0, 0}, sol.Lambda, 1e-10)
	assert.InDelta(t, 1.4142135623730951, sol.Norm, 1e-10)

	// inputs are left untouched
	assert.Equal(t, e, p.E)
	assert.Equal(t, h, p.H)
}

func TestSolveActiveInequality(t *testing.T) {
	// 𝚖𝚒𝚗 ½(x - 3)²  subject to  -x ≥ -1
	p := &Problem{
		N:  1,
		ME: 1, E: []float64{1}, F: []float64{3},
		MG: 1, G: []float64{-1}, H: []float64{-1},
	}
	sol := Solve(p, 0)
	require.Equal(t, HasSolution, sol.Mode)
	assert.InDeltaSlice(t, []float64{1}, sol.X, 1e-10)
	// x - f = -2 = Gᵀλ
	assert.InDeltaSlice(t, []float64{2}, sol.Lambda, 1e-10)
	assert.Empty(t, sol.Mu)
}

func TestSolveIncompatible(t *testing.T) {
	// x ≥ 1 and -x ≥ 0
	p := &Problem{
		N:  1,
		ME: 1, E: []float64{1}, F: []float64{0},
		MG: 2, G: []float64{1, -1}, H: []float64{1, 0},
	}
	sol := Solve(p, 0)
	assert.Equal(t, ConsIncompatible, sol.Mode)
}

func TestSolveBadArgument(t *testing.T) {
	assert.Equal(t, BadArgument, Solve(&Problem{}, 0).Mode)
	assert.Equal(t, BadArgument, Solve(&Problem{N: 2, ME: 2, E: []float64{1}}, 0).Mode)
	assert.Equal(t, BadArgument, Solve(&Problem{N: 1, MC: 2, C: []float64{1, 1}, D: []float64{0, 0}}, 0).Mode)
}
