// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/curioloop/conic/csc"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Simplex solves problems with an empty quadratic term using the simplex method of gonum.
//
// The conic rows are rewritten in general form
//
//	𝚖𝚒𝚗 𝐪ᵀ𝐱  subject to  𝐆𝐱 ≤ 𝐡  (Nonnegative rows)  and  𝐀ₑ𝐱 = 𝐛ₑ  (Zero rows)
//
// and lp.Convert turns it into standard form over 𝐱 = 𝐱⁺ - 𝐱⁻.
// Rows and columns without nonzeros are removed first since lp.Simplex rejects them.
//
// The dual vector comes from a second simplex run on
//
//	𝚖𝚒𝚗 𝐛ᵀ𝐳  subject to  𝐀ᵀ𝐳 = -𝐪,  𝐳ᵢ ≥ 0 on Nonnegative rows
//
// whose optimal value is the negated primal optimum. When it fails Dual is left zero.
type Simplex struct {
	Settings Settings
}

// Solve implements Solver.
func (s Simplex) Solve(p *Problem) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if nnz := p.P.NNZ(); nnz > 0 {
		return nil, errors.Wrapf(ErrQuadratic, "P has %d nonzeros", nnz)
	}
	set := s.Settings.withDefaults()
	if err := set.Validate(); err != nil {
		return nil, err
	}

	n, m := p.Dims()
	if n == 0 {
		return trivial(p, set.FeasibilityTol), nil
	}

	ps := newPresolve(p, set.FeasibilityTol)
	if ps.status != Solved {
		glog.V(1).Info("simplex: an empty constraint row cannot hold")
		return failed(p, ps.status), nil
	}
	glog.V(2).Infof("simplex: %d×%d presolved to %d equality and %d inequality rows over %d columns",
		m, n, len(ps.eq), len(ps.ineq), len(ps.cols))

	x := make([]float64, n)
	if len(ps.cols) > 0 {
		st, xr := primalLP(p, ps, set)
		if st != Solved {
			return failed(p, st), nil
		}
		for k, j := range ps.cols {
			x[j] = xr[k]
		}
	}

	// A variable absent from every row with nonzero cost drives the objective to -∞.
	for _, j := range ps.emptyCols {
		if p.Q[j] != 0 {
			glog.V(1).Infof("simplex: variable %d is unconstrained with cost %g", j, p.Q[j])
			return failed(p, DualInfeasible), nil
		}
	}

	z := make([]float64, m)
	if !set.SkipDual && len(ps.cols) > 0 {
		dualLP(p, ps, set, z)
	}
	return solved(p, x, z, set.FeasibilityTol, NumericalError), nil
}

func primalLP(p *Problem, ps *presolve, set Settings) (Status, []float64) {
	nc := len(ps.cols)
	c := pick(p.Q, ps.cols)
	h, b := pick(p.B, ps.ineq), pick(p.B, ps.eq)

	// lp.Convert wants untyped nil for an absent block.
	var g, a mat.Matrix
	if len(ps.ineq) > 0 {
		g = csc.Select(p.A, ps.ineq, ps.cols)
	}
	if len(ps.eq) > 0 {
		a = csc.Select(p.A, ps.eq, ps.cols)
	}

	cs, as, bs := lp.Convert(c, g, h, a, b)
	if r, cc := as.Dims(); r > cc {
		glog.Warningf("simplex: %d standard form rows exceed %d columns", r, cc)
		return NumericalError, nil
	}

	_, xs, err := lp.Simplex(cs, as, bs, set.Tolerance, nil)
	if st := lpStatus(err); st != Solved {
		return st, nil
	}

	// 𝐱 = 𝐱⁺ - 𝐱⁻
	x := make([]float64, nc)
	for k := range x {
		x[k] = xs[k] - xs[nc+k]
	}
	return Solved, x
}

// dualLP stores the solution of the dual linear program into z.
//
// The standard form variables are [𝐳ᵢ, 𝐳ₑ⁺, 𝐳ₑ⁻] with
//
//	[ 𝐆ᵀ ﹕ 𝐀ₑᵀ ﹕ -𝐀ₑᵀ ] 𝐳 = -𝐪   and cost  [ 𝐡 ﹕ 𝐛ₑ ﹕ -𝐛ₑ ]
func dualLP(p *Problem, ps *presolve, set Settings, z []float64) {
	mi, me := len(ps.ineq), len(ps.eq)
	gt := csc.Select(p.A, ps.ineq, ps.cols).Transpose()
	at := csc.Select(p.A, ps.eq, ps.cols).Transpose()
	std := csc.HCat(csc.HCat(gt, at), at.Negate())

	rows, cols := std.Dims()
	if rows > cols {
		glog.V(1).Infof("simplex: dual has %d rows over %d columns, skipped", rows, cols)
		return
	}

	be := pick(p.B, ps.eq)
	c := make([]float64, 0, cols)
	c = append(c, pick(p.B, ps.ineq)...)
	c = append(c, be...)
	for _, v := range be {
		c = append(c, -v)
	}
	rhs := pick(p.Q, ps.cols)
	for k := range rhs {
		rhs[k] = -rhs[k]
	}

	_, zs, err := lp.Simplex(c, std.Dense(), rhs, set.Tolerance, nil)
	if err != nil {
		glog.Warningf("simplex: dual recovery failed: %v", err)
		return
	}
	for k, i := range ps.ineq {
		z[i] = zs[k]
	}
	for k, i := range ps.eq {
		z[i] = zs[mi+k] - zs[mi+me+k]
	}
}

func lpStatus(err error) Status {
	switch {
	case err == nil:
		return Solved
	case errors.Is(err, lp.ErrInfeasible):
		return PrimalInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return DualInfeasible
	}
	glog.Warningf("simplex: %v", err)
	return NumericalError
}

func pick(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = v[i]
	}
	return out
}
