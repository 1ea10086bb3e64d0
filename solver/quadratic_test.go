// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/curioloop/conic/cone"
	"github.com/curioloop/conic/csc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadraticProjection(t *testing.T) {
	// project (1, 2) onto x₀ + x₁ ≤ 1
	p := &Problem{
		P: csc.Identity(2),
		Q: []float64{-1, -2},
		A: csc.FromRow([]float64{1, 1}),
		B: []float64{1},
		K: []cone.Tag{cone.Nonnegative(1)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	requireOptimal(t, p, r, 1e-9)
	assert.InDeltaSlice(t, []float64{0, 1}, r.Primal, 1e-9)
	assert.InDeltaSlice(t, []float64{1}, r.Dual, 1e-9)
	assert.InDelta(t, -1.5, r.Objective, 1e-9)
}

func TestQuadraticEquality(t *testing.T) {
	// minimize ½‖x‖² subject to x₀ + x₁ = 2
	p := &Problem{
		P: csc.Identity(2),
		Q: []float64{0, 0},
		A: csc.FromRow([]float64{1, 1}),
		B: []float64{2},
		K: []cone.Tag{cone.Zero(1)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	requireOptimal(t, p, r, 1e-9)
	assert.InDeltaSlice(t, []float64{1, 1}, r.Primal, 1e-9)
	assert.InDeltaSlice(t, []float64{-1}, r.Dual, 1e-9)
	assert.InDelta(t, 1, r.Objective, 1e-9)
}

func TestQuadraticMixed(t *testing.T) {
	// minimize ½(2x₀² + x₁²) - 4x₀ - 4x₁ subject to x₀ - x₁ = 0, x ≥ 0, x₀ ≤ 1
	p := &Problem{
		P: csc.FromRows(2, [][]float64{{2, 0}, {0, 1}}),
		Q: []float64{-4, -4},
		A: csc.FromRows(2, [][]float64{
			{1, -1},
			{-1, 0},
			{0, -1},
			{1, 0},
		}),
		B: []float64{0, 0, 0, 1},
		K: []cone.Tag{cone.Zero(1), cone.Nonnegative(3)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	requireOptimal(t, p, r, 1e-8)
	assert.InDeltaSlice(t, []float64{1, 1}, r.Primal, 1e-8)
	assert.InDelta(t, -6.5, r.Objective, 1e-8)
}

func TestQuadraticInfeasible(t *testing.T) {
	p := &Problem{
		P: csc.Identity(1),
		Q: []float64{0},
		A: csc.FromRows(1, [][]float64{{-1}, {1}}),
		B: []float64{-5, 1},
		K: []cone.Tag{cone.Nonnegative(2)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	assert.Equal(t, PrimalInfeasible, r.Status)
}

func TestQuadraticFixedByEqualities(t *testing.T) {
	// x₀ = 3 leaves no freedom, x₀ ≤ 1 must still be honoured
	p := &Problem{
		P: csc.Identity(1),
		Q: []float64{0},
		A: csc.FromRows(1, [][]float64{{1}, {1}}),
		B: []float64{3, 1},
		K: []cone.Tag{cone.Zero(1), cone.Nonnegative(1)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	assert.Equal(t, PrimalInfeasible, r.Status)
}

func TestQuadraticSemidefinite(t *testing.T) {
	// minimize x₀² + x₁ subject to x₁ ≥ 1 and |x₀| ≤ 5, only x₀ carries a quadratic term
	p := &Problem{
		P: csc.FromRows(2, [][]float64{{2, 0}, {0, 0}}),
		Q: []float64{0, 1},
		A: csc.FromRows(2, [][]float64{
			{0, -1},
			{1, 0},
			{-1, 0},
		}),
		B: []float64{-1, 5, 5},
		K: []cone.Tag{cone.Nonnegative(3)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	requireOptimal(t, p, r, 1e-7)
	assert.InDeltaSlice(t, []float64{0, 1}, r.Primal, 1e-7)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, r.Dual, 1e-7)
	assert.InDelta(t, 1, r.Objective, 1e-7)
}

func TestQuadraticSemidefiniteUnbounded(t *testing.T) {
	// minimize x₀² - x₁ subject to x₁ ≥ 1 and |x₀| ≤ 5 descends along x₁ forever
	p := &Problem{
		P: csc.FromRows(2, [][]float64{{2, 0}, {0, 0}}),
		Q: []float64{0, -1},
		A: csc.FromRows(2, [][]float64{
			{0, -1},
			{1, 0},
			{-1, 0},
		}),
		B: []float64{-1, 5, 5},
		K: []cone.Tag{cone.Nonnegative(3)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	assert.Equal(t, DualInfeasible, r.Status)
	assert.True(t, math.IsNaN(r.Objective))

	// without constraints as well
	p = &Problem{
		P: csc.FromRows(2, [][]float64{{1, 0}, {0, 0}}),
		Q: []float64{0, -1},
		A: csc.Zeros(0, 2),
		B: []float64{},
	}
	r, err = Quadratic{}.Solve(p)
	require.NoError(t, err)
	assert.Equal(t, DualInfeasible, r.Status)
}

func TestQuadraticLinearObjective(t *testing.T) {
	// 𝐏 = 0 is semidefinite too
	p := twoVariableLP()
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	requireOptimal(t, p, r, 1e-7)
	assert.InDeltaSlice(t, []float64{6, 4}, r.Primal, 1e-7)
	assert.InDeltaSlice(t, []float64{0, 0, 1, 1}, r.Dual, 1e-7)
	assert.InDelta(t, -14, r.Objective, 1e-7)
}

func TestQuadraticIndefinite(t *testing.T) {
	p := &Problem{
		P: csc.FromRows(2, [][]float64{{1, 0}, {0, -1}}),
		Q: []float64{0, 0},
		A: csc.Zeros(0, 2),
		B: []float64{},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	assert.Equal(t, NumericalError, r.Status)
}

func TestQuadraticRedundantEqualities(t *testing.T) {
	// x = 2 and 2x = 4 over one variable
	p := &Problem{
		P: csc.Identity(1),
		Q: []float64{0},
		A: csc.FromRows(1, [][]float64{{1}, {2}}),
		B: []float64{2, 4},
		K: []cone.Tag{cone.Zero(2)},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	requireOptimal(t, p, r, 1e-9)
	assert.InDeltaSlice(t, []float64{2}, r.Primal, 1e-9)
}

func TestQuadraticUsesSymmetricPart(t *testing.T) {
	// the symmetric part of [[2, 2], [0, 2]] is [[2, 1], [1, 2]]
	p := &Problem{
		P: csc.FromRows(2, [][]float64{{2, 2}, {0, 2}}),
		Q: []float64{-3, -3},
		A: csc.Zeros(0, 2),
		B: []float64{},
	}
	r, err := Quadratic{}.Solve(p)
	require.NoError(t, err)
	requireOptimal(t, &Problem{
		P: csc.FromRows(2, [][]float64{{2, 1}, {1, 2}}),
		Q: p.Q, A: p.A, B: p.B,
	}, r, 1e-9)
	assert.InDeltaSlice(t, []float64{1, 1}, r.Primal, 1e-9)
}

func TestAutoDispatch(t *testing.T) {
	lp := twoVariableLP()
	r, err := Auto{}.Solve(lp)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{6, 4}, r.Primal, 1e-9)

	qp := twoVariableLP()
	qp.P = csc.Identity(2).Scale(0.01)
	r, err = Auto{}.Solve(qp)
	require.NoError(t, err)
	requireOptimal(t, qp, r, 1e-7)
	assert.InDeltaSlice(t, []float64{6, 4}, r.Primal, 1e-7)
	assert.InDeltaSlice(t, []float64{0, 0, 0.94, 1.02}, r.Dual, 1e-7)
}
