// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver solves conic problems of the form
//
//	𝚖𝚒𝚗 ½𝐱ᵀ𝐏𝐱 + 𝐪ᵀ𝐱  subject to  𝐀𝐱 + 𝐬 = 𝐛,  𝐬 ∈ 𝒦
//
// where 𝒦 is a product of the cones listed in cone.
//
// The dual vector 𝐳 follows the convention 𝐏𝐱 + 𝐪 + 𝐀ᵀ𝐳 = 0 with 𝐳 ∈ 𝒦*,
// so 𝐳 is free on Zero rows and nonnegative on Nonnegative rows.
//
// Backends:
//   - Simplex handles problems whose quadratic term is empty
//   - Quadratic handles a positive definite quadratic term
//   - Auto picks one of the two from the stored nonzeros of 𝐏
package solver

import (
	"fmt"

	"github.com/curioloop/conic/cone"
	"github.com/curioloop/conic/csc"
	"github.com/pkg/errors"
)

// Status reports how a solve ended.
type Status int

const (
	// Solved means an optimal point was found.
	Solved Status = iota
	// PrimalInfeasible means no 𝐱 satisfies the constraints.
	PrimalInfeasible
	// DualInfeasible means the objective is unbounded below on the feasible set.
	DualInfeasible
	// NumericalError means the kernel failed to reach a verdict.
	NumericalError
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "Solved"
	case PrimalInfeasible:
		return "PrimalInfeasible"
	case DualInfeasible:
		return "DualInfeasible"
	case NumericalError:
		return "NumericalError"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var (
	// ErrShape is returned when the problem data do not fit together.
	ErrShape = errors.New("solver: malformed problem")
	// ErrQuadratic is returned by Simplex when 𝐏 has stored nonzeros.
	ErrQuadratic = errors.New("solver: simplex cannot take a quadratic term")
)

// Problem is the conic tuple (𝐏, 𝐪, 𝐀, 𝐛, 𝒦).
type Problem struct {
	P *csc.Matrix // n × n
	Q []float64   // n
	A *csc.Matrix // m × n
	B []float64   // m
	K []cone.Tag  // Σ width = m, in row order
}

// Dims returns the number of variables and constraint rows.
func (p *Problem) Dims() (n, m int) {
	if p.A != nil {
		m, n = p.A.Dims()
	}
	return
}

// Validate checks every shape relation between the members of p.
func (p *Problem) Validate() error {
	switch {
	case p == nil:
		return errors.Wrap(ErrShape, "nil problem")
	case p.P == nil || p.A == nil:
		return errors.Wrap(ErrShape, "nil matrix")
	}
	m, n := p.A.Dims()
	pr, pc := p.P.Dims()
	switch {
	case pr != n || pc != n:
		return errors.Wrapf(ErrShape, "P is %d×%d, want %d×%d", pr, pc, n, n)
	case len(p.Q) != n:
		return errors.Wrapf(ErrShape, "len(q) = %d, want %d", len(p.Q), n)
	case len(p.B) != m:
		return errors.Wrapf(ErrShape, "len(b) = %d, want %d", len(p.B), m)
	case cone.Dim(p.K) != m:
		return errors.Wrapf(ErrShape, "cones cover %d rows, want %d", cone.Dim(p.K), m)
	}
	for i, t := range p.K {
		if !t.Valid() {
			return errors.Wrapf(ErrShape, "cone %d is not a valid tag", i)
		}
	}
	return nil
}

// Result is the outcome of a solve. Primal has length n, Dual and Slack length m.
// When Status is not Solved the vectors are zero and Objective is NaN.
type Result struct {
	Primal    []float64
	Dual      []float64
	Slack     []float64
	Objective float64
	Status    Status
}

// Solver solves a conic problem.
// An error is returned only for malformed input, never for an infeasible problem.
type Solver interface {
	Solve(p *Problem) (*Result, error)
}

// Func adapts a plain function to Solver.
type Func func(p *Problem) (*Result, error)

// Solve calls f(p).
func (f Func) Solve(p *Problem) (*Result, error) {
	return f(p)
}
