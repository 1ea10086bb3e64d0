// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cone defines the closed set of cones a conic model may use and the
// lowering of relational constraints into them.
//
// A constraint block 𝐀ᵢ𝐱 + 𝐬ᵢ = 𝐛ᵢ is paired with a cone tag and the solver
// requires 𝐬ᵢ ∈ 𝒦ᵢ:
//   - Zero(w)        : 𝐬ᵢ = 0  (equality rows)
//   - Nonnegative(w) : 𝐬ᵢ ≥ 0  (rows 𝐀ᵢ𝐱 ≤ 𝐛ᵢ)
//
// Tags are consumed in order as consecutive row blocks, so a tag list must
// follow the physical row order of the constraint matrix.
package cone

import (
	"fmt"
	"math"
)

// Kind identifies a cone family.
type Kind uint8

const (
	// ZeroKind is the cone {0}ʷ of equality rows.
	ZeroKind Kind = iota
	// NonnegativeKind is the orthant ℝʷ₊ of inequality rows.
	NonnegativeKind
)

func (k Kind) String() string {
	switch k {
	case ZeroKind:
		return "Zero"
	case NonnegativeKind:
		return "Nonnegative"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Tag is a cone of a given kind spanning width consecutive rows.
// The zero value is not a valid tag; use Zero or Nonnegative.
type Tag struct {
	kind  Kind
	width int
}

// Zero returns the equality cone over width rows.
func Zero(width int) Tag {
	return newTag(ZeroKind, width)
}

// Nonnegative returns the nonnegative orthant over width rows.
func Nonnegative(width int) Tag {
	return newTag(NonnegativeKind, width)
}

func newTag(kind Kind, width int) Tag {
	if width < 1 {
		panic(fmt.Sprintf("cone: %v width %d must be positive", kind, width))
	}
	return Tag{kind: kind, width: width}
}

// Kind returns the cone family.
func (t Tag) Kind() Kind { return t.kind }

// Width returns the number of rows covered by the cone.
func (t Tag) Width() int { return t.width }

// Valid reports whether t was built by Zero or Nonnegative.
func (t Tag) Valid() bool {
	return t.width > 0 && (t.kind == ZeroKind || t.kind == NonnegativeKind)
}

func (t Tag) String() string {
	return fmt.Sprintf("%v(%d)", t.kind, t.width)
}

// Contains reports whether the slack block s lies in the cone within tol.
func (t Tag) Contains(s []float64, tol float64) bool {
	if len(s) != t.width {
		return false
	}
	for _, v := range s {
		switch {
		case math.IsNaN(v):
			return false
		case t.kind == ZeroKind && math.Abs(v) > tol:
			return false
		case t.kind == NonnegativeKind && v < -tol:
			return false
		}
	}
	return true
}

// Dim returns the total number of rows covered by tags.
func Dim(tags []Tag) (rows int) {
	for _, t := range tags {
		rows += t.width
	}
	return
}

// Split calls fn with the row range [lo, hi) owned by each tag, in order.
func Split(tags []Tag, fn func(t Tag, lo, hi int)) {
	lo := 0
	for _, t := range tags {
		fn(t, lo, lo+t.width)
		lo += t.width
	}
}
