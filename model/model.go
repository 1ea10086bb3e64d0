// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model builds conic problems one variable block and one constraint at a time.
//
// A Model holds
//
//	𝚖𝚒𝚗 ½𝐱ᵀ𝐏𝐱 + 𝐪ᵀ𝐱  subject to  𝐀𝐱 + 𝐬 = 𝐛,  𝐬 ∈ 𝒦
//
// and keeps 𝐏 square of side n, 𝐀 with n columns and one cone per row block
// after every call. Builder calls report shape errors immediately; Solve hands a
// snapshot of the problem to a solver.Solver.
//
// A Model is not safe for concurrent use.
package model

import (
	"fmt"

	"github.com/curioloop/conic/cone"
	"github.com/curioloop/conic/csc"
	"github.com/curioloop/conic/solver"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Sense is the direction of the objective last set.
type Sense int

const (
	Min Sense = iota
	Max
)

func (s Sense) String() string {
	switch s {
	case Min:
		return "minimize"
	case Max:
		return "maximize"
	}
	return fmt.Sprintf("Sense(%d)", int(s))
}

// Option configures a Model.
type Option func(*Model)

// WithSolver selects the backend used by Solve. The default is solver.Auto.
func WithSolver(s solver.Solver) Option {
	return func(md *Model) {
		md.solver = s
	}
}

// Model accumulates variables, constraints and an objective.
type Model struct {
	n, m int

	p *csc.Matrix // n × n
	q []float64   // n

	a *csc.Matrix // m × n
	b []float64   // m
	k []cone.Tag  // Σ width = m

	sense  Sense
	solver solver.Solver
}

// New returns an empty model.
func New(opts ...Option) *Model {
	md := &Model{
		p:      csc.Zeros(0, 0),
		a:      csc.Zeros(0, 0),
		solver: solver.Auto{},
	}
	for _, opt := range opts {
		opt(md)
	}
	return md
}

// AddVariables declares count new variables and returns the index of the first one.
// The new variables get zero objective terms and zero coefficients in every existing row.
// AddVariables panics if count is not positive.
func (md *Model) AddVariables(count int) int {
	if count <= 0 {
		panic(fmt.Sprintf("model: variable count %d must be positive", count))
	}
	first := md.n
	md.p = csc.BlockDiag(md.p, csc.Zeros(count, count))
	md.q = append(md.q, make([]float64, count)...)
	md.a = csc.HCat(md.a, csc.Zeros(md.m, count))
	md.n += count
	glog.V(2).Infof("model: variables [%d,%d)", first, md.n)
	return first
}

// AddConstraint appends the row 𝐫ᵀ𝐱 + s = rhs with s in tag, which must have width 1.
func (md *Model) AddConstraint(row []float64, rhs float64, tag cone.Tag) error {
	if !tag.Valid() || tag.Width() != 1 {
		return errors.Wrapf(ErrConeWidth, "single row under %v", tag)
	}
	if len(row) != md.n {
		return errors.Wrapf(ErrRowLength, "row %d has %d coefficients, want %d", md.m, len(row), md.n)
	}
	md.push(csc.FromRow(row), []float64{rhs}, tag)
	return nil
}

// AddConstraintBlock appends tag.Width() rows sharing the cone tag.
func (md *Model) AddConstraintBlock(rows [][]float64, rhs []float64, tag cone.Tag) error {
	if !tag.Valid() || len(rows) != tag.Width() || len(rhs) != tag.Width() {
		return errors.Wrapf(ErrConeWidth, "%d rows and %d right-hand sides under %v", len(rows), len(rhs), tag)
	}
	for i, row := range rows {
		if len(row) != md.n {
			return errors.Wrapf(ErrRowLength, "row %d has %d coefficients, want %d", md.m+i, len(row), md.n)
		}
	}
	md.push(csc.FromRows(md.n, rows), append([]float64(nil), rhs...), tag)
	return nil
}

func (md *Model) push(block *csc.Matrix, rhs []float64, tag cone.Tag) {
	md.a = csc.VCat(md.a, block)
	md.b = append(md.b, rhs...)
	md.k = append(md.k, tag)
	md.m += tag.Width()
	glog.V(2).Infof("model: rows [%d,%d) in %v", md.m-tag.Width(), md.m, tag)
}

// AddConstraintEq appends 𝐫ᵀ𝐱 = rhs.
func (md *Model) AddConstraintEq(row []float64, rhs float64) error {
	return md.AddConstraint(row, rhs, cone.Zero(1))
}

// AddConstraintLeq appends 𝐫ᵀ𝐱 ≤ rhs, stored as 𝐫ᵀ𝐱 + s = rhs with s ≥ 0.
func (md *Model) AddConstraintLeq(row []float64, rhs float64) error {
	return md.AddConstraint(row, rhs, cone.Nonnegative(1))
}

// AddConstraintGeq appends 𝐫ᵀ𝐱 ≥ rhs, stored as (-𝐫)ᵀ𝐱 ≤ -rhs.
func (md *Model) AddConstraintGeq(row []float64, rhs float64) error {
	neg, negRHS := cone.Flip(row, rhs)
	return md.AddConstraintLeq(neg, negRHS)
}

// AddRelation appends 𝐫ᵀ𝐱 ⋄ rhs for the relation ⋄.
func (md *Model) AddRelation(rel cone.Relation, row []float64, rhs float64) error {
	switch rel {
	case cone.Eq, cone.Leq, cone.Geq:
	default:
		return errors.Wrapf(cone.ErrRelation, "%v", rel)
	}
	r, b, tag := cone.Lower(rel, row, rhs)
	return md.AddConstraint(r, b, tag)
}

// Minimize replaces the objective with ½𝐱ᵀ𝐏𝐱 + 𝐪ᵀ𝐱.
// A nil P or q stands for zeros sized to the current variable count.
func (md *Model) Minimize(p *csc.Matrix, q []float64) error {
	return md.setObjective(Min, p, q)
}

// Maximize replaces the objective with the minimization of -½𝐱ᵀ𝐏𝐱 - 𝐪ᵀ𝐱.
// Solve reports the minimized value; negate it to present the maximum.
func (md *Model) Maximize(p *csc.Matrix, q []float64) error {
	if p != nil {
		p = p.Negate()
	}
	if q != nil {
		neg := make([]float64, len(q))
		for i, v := range q {
			neg[i] = -v
		}
		q = neg
	}
	return md.setObjective(Max, p, q)
}

func (md *Model) setObjective(sense Sense, p *csc.Matrix, q []float64) error {
	if p == nil {
		p = csc.Zeros(md.n, md.n)
	} else if r, c := p.Dims(); r != md.n || c != md.n {
		return errors.Wrapf(ErrObjectiveShape, "P is %d×%d, want %d×%d", r, c, md.n, md.n)
	}
	if q == nil {
		q = make([]float64, md.n)
	} else if len(q) != md.n {
		return errors.Wrapf(ErrObjectiveShape, "len(q) = %d, want %d", len(q), md.n)
	} else {
		q = append([]float64(nil), q...)
	}
	md.p, md.q, md.sense = p, q, sense
	return nil
}

// Solve hands the current problem to the solver. The model is left unchanged.
// The returned objective is the minimized one whatever the Sense.
func (md *Model) Solve() (*solver.Result, error) {
	res, err := md.solver.Solve(md.Problem())
	if err != nil {
		return nil, errors.Wrap(err, "model: solve")
	}
	glog.V(1).Infof("model: %d variables, %d rows: %v objective %g", md.n, md.m, res.Status, res.Objective)
	return res, nil
}

// Problem returns a snapshot of the conic data. Later builder calls do not affect it.
func (md *Model) Problem() *solver.Problem {
	return &solver.Problem{
		P: md.p,
		Q: append([]float64(nil), md.q...),
		A: md.a,
		B: append([]float64(nil), md.b...),
		K: append([]cone.Tag(nil), md.k...),
	}
}

// NumVariables returns the number of declared variables.
func (md *Model) NumVariables() int { return md.n }

// NumConstraints returns the number of constraint rows.
func (md *Model) NumConstraints() int { return md.m }

// Sense returns the direction of the objective last set.
func (md *Model) Sense() Sense { return md.sense }

// Objective returns 𝐏 and a copy of 𝐪 in minimization form.
func (md *Model) Objective() (*csc.Matrix, []float64) {
	return md.p, append([]float64(nil), md.q...)
}

// Constraints returns 𝐀 together with copies of 𝐛 and 𝒦.
func (md *Model) Constraints() (*csc.Matrix, []float64, []cone.Tag) {
	return md.a, append([]float64(nil), md.b...), append([]cone.Tag(nil), md.k...)
}
