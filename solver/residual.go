// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"sort"

	"github.com/curioloop/conic/cone"
	"github.com/curioloop/conic/lsq"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// rankTol scales the largest magnitude of [𝐀ₑ 𝐛ₑ] into the pseudo rank threshold.
const rankTol = 1e-9

// slackOf returns 𝐬 = 𝐛 - 𝐀𝐱.
func slackOf(p *Problem, x []float64) []float64 {
	s := p.A.MulVec(x)
	floats.Scale(-1, s)
	floats.Add(s, p.B)
	return s
}

// objectiveOf returns ½𝐱ᵀ𝐏𝐱 + 𝐪ᵀ𝐱.
func objectiveOf(p *Problem, x []float64) float64 {
	return 0.5*floats.Dot(x, p.P.MulVec(x)) + floats.Dot(p.Q, x)
}

func inCones(k []cone.Tag, s []float64, tol float64) bool {
	ok := true
	cone.Split(k, func(t cone.Tag, lo, hi int) {
		ok = ok && t.Contains(s[lo:hi], tol)
	})
	return ok
}

func failed(p *Problem, st Status) *Result {
	n, m := p.Dims()
	return &Result{
		Primal:    make([]float64, n),
		Dual:      make([]float64, m),
		Slack:     make([]float64, m),
		Objective: math.NaN(),
		Status:    st,
	}
}

// solved assembles the result for 𝐱 and 𝐳, or reports bad when the slack leaves 𝒦.
func solved(p *Problem, x, z []float64, tol float64, bad Status) *Result {
	s := slackOf(p, x)
	if !inCones(p.K, s, tol) {
		return failed(p, bad)
	}
	return &Result{
		Primal:    x,
		Dual:      z,
		Slack:     s,
		Objective: objectiveOf(p, x),
		Status:    Solved,
	}
}

// trivial solves a problem without variables: 𝐬 = 𝐛 is the only candidate.
func trivial(p *Problem, tol float64) *Result {
	_, m := p.Dims()
	if !inCones(p.K, p.B, tol) {
		return failed(p, PrimalInfeasible)
	}
	return &Result{
		Primal: []float64{},
		Dual:   make([]float64, m),
		Slack:  append([]float64{}, p.B...),
		Status: Solved,
	}
}

// rowKinds splits the row indices by cone kind.
func rowKinds(k []cone.Tag) (eq, ineq []int) {
	cone.Split(k, func(t cone.Tag, lo, hi int) {
		for i := lo; i < hi; i++ {
			if t.Kind() == cone.ZeroKind {
				eq = append(eq, i)
			} else {
				ineq = append(ineq, i)
			}
		}
	})
	return
}

// presolve drops the rows of 𝐀 without nonzeros after checking 0 + s = b against their cone,
// reduces the Zero rows to an independent subset and reports the columns of 𝐀 without nonzeros.
// Rows left out of eq and ineq keep a zero dual.
type presolve struct {
	eq, ineq  []int // kept rows
	cols      []int // kept columns
	emptyCols []int
	status    Status
}

func newPresolve(p *Problem, tol float64) *presolve {
	n, m := p.Dims()
	rowNZ, colNZ := make([]int, m), make([]int, n)
	p.A.Do(func(i, j int, v float64) {
		if v != 0 {
			rowNZ[i]++
			colNZ[j]++
		}
	})

	ps := &presolve{status: Solved}
	eq, ineq := rowKinds(p.K)
	for _, i := range eq {
		switch {
		case rowNZ[i] > 0:
			ps.eq = append(ps.eq, i)
		case math.Abs(p.B[i]) > tol:
			ps.status = PrimalInfeasible
		}
	}
	for _, i := range ineq {
		switch {
		case rowNZ[i] > 0:
			ps.ineq = append(ps.ineq, i)
		case p.B[i] < -tol:
			ps.status = PrimalInfeasible
		}
	}
	if ps.status == Solved {
		ps.independent(p, tol)
	}
	for j := 0; j < n; j++ {
		if colNZ[j] > 0 {
			ps.cols = append(ps.cols, j)
		} else {
			ps.emptyCols = append(ps.emptyCols, j)
		}
	}
	return ps
}

// independent keeps a maximal set of linearly independent Zero rows, chosen by
// the column pivoting of HFTI on 𝐀ₑᵀ. A dependent row is consistent when appending
// 𝐛ₑ to 𝐀ₑ does not raise the rank, otherwise the problem is PrimalInfeasible.
func (ps *presolve) independent(p *Problem, tol float64) {
	me := len(ps.eq)
	if me < 2 {
		return
	}
	n, m := p.Dims()
	pos := make([]int, m)
	for i := range pos {
		pos[i] = -1
	}
	for k, i := range ps.eq {
		pos[i] = k
	}

	// column k of at is row eq[k] of 𝐀, ab appends bᵢ
	at := make([]float64, n*me)
	ab := make([]float64, (n+1)*me)
	scale := 1.0
	p.A.Do(func(i, j int, v float64) {
		if k := pos[i]; k >= 0 {
			at[j+n*k] = v
			ab[j+(n+1)*k] = v
			scale = math.Max(scale, math.Abs(v))
		}
	})
	for k, i := range ps.eq {
		ab[n+(n+1)*k] = p.B[i]
		scale = math.Max(scale, math.Abs(p.B[i]))
	}

	tau := rankTol * scale
	_, rank, _, perm := lsq.HFTI(at, n, me, nil, 0, tau)
	_, rankB, _, _ := lsq.HFTI(ab, n+1, me, nil, 0, math.Max(tau, tol))
	if rankB > rank {
		glog.V(1).Infof("presolve: %d equality rows of rank %d disagree on b", me, rank)
		ps.status = PrimalInfeasible
		return
	}
	if rank == me {
		return
	}

	keep := make([]int, rank)
	for k, c := range perm[:rank] {
		keep[k] = ps.eq[c]
	}
	sort.Ints(keep)
	glog.V(1).Infof("presolve: dropped %d dependent equality rows", me-rank)
	ps.eq = keep
}
