// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cone

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	z := Zero(2)
	assert.Equal(t, ZeroKind, z.Kind())
	assert.Equal(t, 2, z.Width())
	assert.Equal(t, "Zero(2)", z.String())
	assert.True(t, z.Valid())

	n := Nonnegative(1)
	assert.Equal(t, NonnegativeKind, n.Kind())
	assert.Equal(t, "Nonnegative(1)", n.String())

	assert.False(t, Tag{}.Valid())
	assert.Panics(t, func() { Zero(0) })
	assert.Panics(t, func() { Nonnegative(-1) })
}

func TestContains(t *testing.T) {
	tests := []struct {
		tag  Tag
		s    []float64
		want bool
	}{
		{Zero(2), []float64{0, 1e-10}, true},
		{Zero(2), []float64{0, 1e-3}, false},
		{Zero(1), []float64{0, 0}, false},
		{Nonnegative(3), []float64{0, 2, -1e-10}, true},
		{Nonnegative(1), []float64{-0.5}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tag.Contains(tt.s, 1e-8), "%v %v", tt.tag, tt.s)
	}
}

func TestDimAndSplit(t *testing.T) {
	tags := []Tag{Zero(1), Nonnegative(3), Zero(2)}
	assert.Equal(t, 6, Dim(tags))
	assert.Zero(t, Dim(nil))

	var got [][2]int
	Split(tags, func(_ Tag, lo, hi int) {
		got = append(got, [2]int{lo, hi})
	})
	assert.Equal(t, [][2]int{{0, 1}, {1, 4}, {4, 6}}, got)
}

func TestParseRelation(t *testing.T) {
	for s, want := range map[string]Relation{"=": Eq, "==": Eq, " <= ": Leq, ">=": Geq} {
		rel, err := ParseRelation(s)
		require.NoError(t, err)
		assert.Equal(t, want, rel)
	}
	_, err := ParseRelation("<")
	assert.True(t, errors.Is(err, ErrRelation))
}

func TestLower(t *testing.T) {
	row := []float64{1, -2, 0}

	r, b, tag := Lower(Eq, row, 3)
	assert.Equal(t, row, r)
	assert.Equal(t, 3.0, b)
	assert.Equal(t, Zero(1), tag)

	r, b, tag = Lower(Leq, row, 3)
	assert.Equal(t, row, r)
	assert.Equal(t, 3.0, b)
	assert.Equal(t, Nonnegative(1), tag)

	r, b, tag = Lower(Geq, row, 3)
	assert.Equal(t, []float64{-1, 2, 0}, r)
	assert.Equal(t, -3.0, b)
	assert.Equal(t, Nonnegative(1), tag)

	// input is never aliased
	r[0] = 42
	assert.Equal(t, 1.0, row[0])
}

// 𝐫ᵀ𝐱 ≥ b holds exactly when the lowered row satisfies b' - 𝐫'ᵀ𝐱 ≥ 0.
func TestGeqLoweringFeasibleSet(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for trial := 0; trial < 500; trial++ {
		n := 1 + rnd.Intn(5)
		row := make([]float64, n)
		x := make([]float64, n)
		for i := range row {
			row[i] = float64(rnd.Intn(7) - 3)
			x[i] = float64(rnd.Intn(9) - 4)
		}
		rhs := float64(rnd.Intn(11) - 5)

		lowered, b, tag := Lower(Geq, row, rhs)
		var dot, loweredDot float64
		for i := range x {
			dot += row[i] * x[i]
			loweredDot += lowered[i] * x[i]
		}
		slack := []float64{b - loweredDot}
		assert.Equal(t, dot >= rhs, tag.Contains(slack, 0), "row=%v x=%v rhs=%v", row, x, rhs)
	}
}
