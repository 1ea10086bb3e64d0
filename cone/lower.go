// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cone

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Relation is the comparison of a user constraint 𝐫ᵀ𝐱 ⋄ b.
type Relation int

const (
	Eq  Relation = iota // 𝐫ᵀ𝐱 = b
	Leq                 // 𝐫ᵀ𝐱 ≤ b
	Geq                 // 𝐫ᵀ𝐱 ≥ b
)

// ErrRelation is returned by ParseRelation for an unknown operator.
var ErrRelation = errors.New("cone: unknown relation")

func (r Relation) String() string {
	switch r {
	case Eq:
		return "="
	case Leq:
		return "<="
	case Geq:
		return ">="
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// ParseRelation parses "=", "==", "<=" or ">=".
func ParseRelation(s string) (Relation, error) {
	switch strings.TrimSpace(s) {
	case "=", "==":
		return Eq, nil
	case "<=", "≤":
		return Leq, nil
	case ">=", "≥":
		return Geq, nil
	}
	return 0, errors.Wrapf(ErrRelation, "%q", s)
}

// Lower translates 𝐫ᵀ𝐱 ⋄ b into the canonical row, right-hand side and cone.
//   - 𝐫ᵀ𝐱 = b  →  (𝐫, b, Zero(1))
//   - 𝐫ᵀ𝐱 ≤ b  →  (𝐫, b, Nonnegative(1))       with 𝐬 = b - 𝐫ᵀ𝐱 ≥ 0
//   - 𝐫ᵀ𝐱 ≥ b  →  (-𝐫, -b, Nonnegative(1))     since 𝐫ᵀ𝐱 ≥ b ⇔ (-𝐫)ᵀ𝐱 ≤ -b
//
// The returned row never aliases row.
func Lower(rel Relation, row []float64, rhs float64) ([]float64, float64, Tag) {
	switch rel {
	case Eq:
		return append([]float64(nil), row...), rhs, Zero(1)
	case Leq:
		return append([]float64(nil), row...), rhs, Nonnegative(1)
	case Geq:
		r, b := Flip(row, rhs)
		return r, b, Nonnegative(1)
	}
	panic(fmt.Sprintf("cone: cannot lower %v", rel))
}

// Flip returns (-row, -rhs), turning a ≥ row into the equivalent ≤ row.
func Flip(row []float64, rhs float64) ([]float64, float64) {
	neg := make([]float64, len(row))
	for i, v := range row {
		neg[i] = -v
	}
	return neg, -rhs
}
