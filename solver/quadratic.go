// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/curioloop/conic/cone"
	"github.com/curioloop/conic/csc"
	"github.com/curioloop/conic/lsq"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// eigenTol scales the largest eigenvalue of 𝐏 into the threshold below which
	// an eigenvalue counts as zero.
	eigenTol = 1e-9
	// proxScale is the proximal weight ρ relative to the smallest positive eigenvalue.
	proxScale = 1e-2
	// maxProximal bounds the proximal iterations on a semidefinite 𝐏.
	maxProximal = 500
)

// Quadratic solves convex problems through the LSEI least-squares kernel.
//
// With the Cholesky factor 𝐏 = 𝐔ᵀ𝐔 the objective becomes
//
//	½𝐱ᵀ𝐏𝐱 + 𝐪ᵀ𝐱 = ½‖ 𝐔𝐱 - 𝐟 ‖₂² - ½‖ 𝐟 ‖₂²   where  𝐔ᵀ𝐟 = -𝐪
//
// and the conic rows map to LSEI constraints 𝐂𝐱 = 𝐝 (Zero rows) and -𝐀ᵢ𝐱 ≥ -𝐛ᵢ
// (Nonnegative rows). The LSEI multipliers satisfy 𝐏𝐱 + 𝐪 = 𝐂ᵀ𝛍 - 𝐀ᵢᵀ𝛌,
// hence 𝐳ₑ = -𝛍 and 𝐳ᵢ = 𝛌.
//
// Only the symmetric part of 𝐏 is used. When it is singular but positive semidefinite
// the problem is solved by proximal point iterations
//
//	𝐱ₖ₊₁ = 𝚊𝚛𝚐𝚖𝚒𝚗 ½𝐱ᵀ(𝐏 + ρ𝐈)𝐱 + (𝐪 - ρ𝐱ₖ)ᵀ𝐱
//
// each of which is strictly convex, after an LP over the null space of 𝐏 rules out
// a direction of unbounded descent. An indefinite 𝐏 yields NumericalError.
type Quadratic struct {
	Settings Settings
}

// Solve implements Solver.
func (s Quadratic) Solve(p *Problem) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	set := s.Settings.withDefaults()
	if err := set.Validate(); err != nil {
		return nil, err
	}

	n, _ := p.Dims()
	if n == 0 {
		return trivial(p, set.FeasibilityTol), nil
	}

	ps := newPresolve(p, set.FeasibilityTol)
	if ps.status != Solved {
		glog.V(1).Info("quadratic: presolve found the constraints infeasible")
		return failed(p, ps.status), nil
	}
	sym := symmetricPart(p)
	var chol mat.Cholesky
	if chol.Factorize(sym) {
		x, z, st := s.step(p, ps, &chol, p.Q, set)
		if st != Solved {
			return failed(p, st), nil
		}
		// When the equalities fix 𝐱 the inequalities are not seen by LSEI, the cone check catches them.
		return solved(p, x, z, set.FeasibilityTol, PrimalInfeasible), nil
	}
	return s.semidefinite(p, ps, sym, set), nil
}

// step solves the strictly convex problem with 𝐏 = 𝐔ᵀ𝐔 factored by chol and linear term q.
func (s Quadratic) step(p *Problem, ps *presolve, chol *mat.Cholesky, q []float64, set Settings) (x, z []float64, st Status) {
	n, m := p.Dims()
	var u mat.TriDense
	chol.UTo(&u)

	// 𝐔ᵀ𝐟 = -𝐪
	var f mat.VecDense
	negQ := mat.NewVecDense(n, append([]float64(nil), q...))
	negQ.ScaleVec(-1, negQ)
	if err := f.SolveVec(u.TTri(), negQ); err != nil {
		glog.Warningf("quadratic: %v", err)
		return nil, nil, NumericalError
	}

	mc, mg := len(ps.eq), len(ps.ineq)
	qp := &lsq.Problem{
		N:  n,
		ME: n, E: colMajor(&u, n, n), F: f.RawVector().Data,
		MC: mc, C: make([]float64, mc*n), D: pick(p.B, ps.eq),
		MG: mg, G: make([]float64, mg*n), H: pick(p.B, ps.ineq),
	}
	for k, i := range ps.eq {
		for j := 0; j < n; j++ {
			qp.C[k+mc*j] = p.A.At(i, j)
		}
	}
	for k, i := range ps.ineq {
		for j := 0; j < n; j++ {
			qp.G[k+mg*j] = -p.A.At(i, j)
		}
		qp.H[k] = -qp.H[k]
	}

	sol := lsq.Solve(qp, set.MaxIterations)
	switch sol.Mode {
	case lsq.HasSolution:
	case lsq.ConsIncompatible:
		return nil, nil, PrimalInfeasible
	default:
		glog.Warningf("quadratic: least-squares kernel stopped with %v", sol.Mode)
		return nil, nil, NumericalError
	}
	glog.V(2).Infof("quadratic: residual ‖Ux - f‖ = %g", sol.Norm)

	z = make([]float64, m)
	for k, i := range ps.eq {
		z[i] = -sol.Mu[k]
	}
	for k, i := range ps.ineq {
		z[i] = sol.Lambda[k]
	}
	return sol.X, z, Solved
}

// semidefinite handles a 𝐏 whose Cholesky factorization failed.
func (s Quadratic) semidefinite(p *Problem, ps *presolve, sym *mat.SymDense, set Settings) *Result {
	n, _ := p.Dims()
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		glog.Warning("quadratic: eigen decomposition of P did not converge")
		return failed(p, NumericalError)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	scale := 1.0
	for _, v := range vals {
		scale = math.Max(scale, math.Abs(v))
	}
	cut := eigenTol * scale
	var rangeIdx []int
	low := math.Inf(1)
	for k, v := range vals {
		if v < -cut {
			glog.Warningf("quadratic: P has eigenvalue %g and is not convex", v)
			return failed(p, NumericalError)
		}
		if v > cut {
			rangeIdx = append(rangeIdx, k)
			low = math.Min(low, v)
		}
	}
	rho := 1.0
	if len(rangeIdx) > 0 {
		rho = proxScale * low
	}
	glog.V(1).Infof("quadratic: P has rank %d of %d, proximal weight %g", len(rangeIdx), n, rho)

	reg := mat.NewSymDense(n, nil)
	reg.CopySym(sym)
	for j := 0; j < n; j++ {
		reg.SetSym(j, j, reg.At(j, j)+rho)
	}
	var chol mat.Cholesky
	if !chol.Factorize(reg) {
		glog.Warning("quadratic: regularized P is not positive definite")
		return failed(p, NumericalError)
	}

	x := make([]float64, n)
	q := make([]float64, n)
	for it := 0; it < maxProximal; it++ {
		for j := range q {
			q[j] = p.Q[j] - rho*x[j]
		}
		next, z, st := s.step(p, ps, &chol, q, set)
		if st != Solved {
			return failed(p, st)
		}
		if it == 0 && unbounded(p, ps, &vecs, rangeIdx, set) {
			return failed(p, DualInfeasible)
		}

		move := floats.Distance(next, x, math.Inf(1))
		x = next
		if move <= set.FeasibilityTol*(1+floats.Norm(x, math.Inf(1))) {
			glog.V(2).Infof("quadratic: proximal iterations converged after %d steps", it+1)
			return solved(p, x, z, set.FeasibilityTol, PrimalInfeasible)
		}
	}
	glog.Warningf("quadratic: proximal iterations did not settle within %d steps", maxProximal)
	return failed(p, NumericalError)
}

// unbounded reports whether some 𝐝 with 𝐏𝐝 = 0, 𝐀ₑ𝐝 = 0 and 𝐀ᵢ𝐝 ≤ 0 has 𝐪ᵀ𝐝 < 0.
// Over a feasible problem such a recession direction drives the objective to -∞.
// The box |𝐝| ≤ 1 keeps the LP bounded.
func unbounded(p *Problem, ps *presolve, vecs *mat.Dense, rangeIdx []int, set Settings) bool {
	n, _ := p.Dims()

	// the part of 𝐪 outside the range of 𝐏
	qn := append([]float64(nil), p.Q...)
	for _, k := range rangeIdx {
		v := mat.Col(nil, k, vecs)
		floats.AddScaled(qn, -floats.Dot(v, p.Q), v)
	}
	qmax := floats.Norm(p.Q, math.Inf(1))
	if floats.Norm(qn, math.Inf(1)) <= set.FeasibilityTol*(1+qmax) {
		return false
	}

	var rows [][]float64
	row := func(i int) []float64 {
		r := make([]float64, n)
		for j := range r {
			r[j] = p.A.At(i, j)
		}
		return r
	}
	for _, k := range rangeIdx {
		rows = append(rows, mat.Col(nil, k, vecs))
	}
	for _, i := range ps.eq {
		rows = append(rows, row(i))
	}
	zero := len(rows)
	for _, i := range ps.ineq {
		rows = append(rows, row(i))
	}
	for j := 0; j < n; j++ {
		up, down := make([]float64, n), make([]float64, n)
		up[j], down[j] = 1, -1
		rows = append(rows, up, down)
	}

	b := make([]float64, len(rows))
	for k := zero + len(ps.ineq); k < len(b); k++ {
		b[k] = 1
	}
	var k []cone.Tag
	if zero > 0 {
		k = append(k, cone.Zero(zero))
	}
	k = append(k, cone.Nonnegative(len(rows)-zero))

	rec := &Problem{
		P: csc.Zeros(n, n),
		Q: p.Q,
		A: csc.FromRows(n, rows),
		B: b,
		K: k,
	}
	res, err := Simplex{Settings: Settings{
		Tolerance:      set.Tolerance,
		FeasibilityTol: set.FeasibilityTol,
		SkipDual:       true,
	}}.Solve(rec)
	if err != nil {
		glog.Warningf("quadratic: recession LP: %v", err)
		return false
	}
	if res.Status != Solved {
		glog.Warningf("quadratic: recession LP ended with %v", res.Status)
		return false
	}
	glog.V(2).Infof("quadratic: steepest recession slope %g", res.Objective)
	return res.Objective < -set.FeasibilityTol*(1+qmax)
}

// symmetricPart returns ½(𝐏 + 𝐏ᵀ).
func symmetricPart(p *Problem) *mat.SymDense {
	n, _ := p.Dims()
	d := p.P.Dense()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(d.At(i, j)+d.At(j, i)))
		}
	}
	return sym
}

func colMajor(a mat.Matrix, r, c int) []float64 {
	out := make([]float64, r*c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			out[i+r*j] = a.At(i, j)
		}
	}
	return out
}
