// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/pkg/errors"
)

// Settings specifies the numerical tolerances shared by the backends.
// A zero field selects its default.
type Settings struct {
	// Reduced cost tolerance of the simplex iterations.
	Tolerance float64
	// A solution is rejected when some slack leaves its cone by more than FeasibilityTol.
	FeasibilityTol float64
	// The maximum number of NNLS iterations in the quadratic kernel, zero selects 3n.
	MaxIterations int
	// Skip the dual recovery of the simplex backend and leave Dual zero.
	SkipDual bool
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		Tolerance:      1e-10,
		FeasibilityTol: 1e-7,
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.Tolerance == 0 {
		s.Tolerance = def.Tolerance
	}
	if s.FeasibilityTol == 0 {
		s.FeasibilityTol = def.FeasibilityTol
	}
	return s
}

// Validate reports settings no backend can work with.
func (s Settings) Validate() error {
	switch {
	case s.Tolerance < 0:
		return errors.New("solver: tolerance must not be negative")
	case s.FeasibilityTol < 0:
		return errors.New("solver: feasibility tolerance must not be negative")
	case s.MaxIterations < 0:
		return errors.New("solver: max iterations must not be negative")
	}
	return nil
}
