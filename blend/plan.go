// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blend plans how much of each oil goes into each product so that
// revenue is maximal under supply limits and product quality bounds.
//
// Every (oil, product) pair gets one quantity variable x(o,p) and the plan is
//
//	𝚖𝚊𝚡 Σ price(p)·x(o,p)
//	  s.t.  x(o,p) ≥ 0
//	        Σₚ x(o,p) ≤ qy_max(o)                    for each oil
//	        Σₒ (pn(o) - pn_min(p))·x(o,p) ≥ 0         for each product with a PN floor
//	        Σₒ (rvp(o) - rvp_max(p))·x(o,p) ≤ 0       for each product with an RVP cap
package blend

import (
	"fmt"

	"github.com/curioloop/conic/cone"
	"github.com/curioloop/conic/model"
	"github.com/curioloop/conic/solver"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ErrEmpty is returned when there is no oil or no product to plan for.
var ErrEmpty = errors.New("blend: no oils or no products")

// Variable identifies the quantity of Oil blended into Product.
type Variable struct {
	Index   int
	Oil     string
	Product string
}

// Constraint is one row of the plan as it was added to the model.
type Constraint struct {
	Label string
	Coef  []float64
	Rel   cone.Relation
	RHS   float64
}

func (c Constraint) String() string {
	return fmt.Sprintf("%v * x %v %g: %s", c.Coef, c.Rel, c.RHS, c.Label)
}

// Plan is a blending model ready to be solved.
type Plan struct {
	Oils        []Oil
	Products    []Product
	Variables   []Variable
	Constraints []Constraint
	Prices      []float64

	md *model.Model
}

// NewPlan builds the blending model. Variables are ordered oil-major in input order.
func NewPlan(oils []Oil, products []Product, opts ...model.Option) (*Plan, error) {
	if len(oils) == 0 || len(products) == 0 {
		return nil, errors.Wrapf(ErrEmpty, "%d oils, %d products", len(oils), len(products))
	}
	pl := &Plan{Oils: oils, Products: products, md: model.New(opts...)}
	n := len(oils) * len(products)
	first := pl.md.AddVariables(n)
	pl.Prices = make([]float64, n)
	for i, o := range oils {
		for j, p := range products {
			k := i*len(products) + j
			pl.Variables = append(pl.Variables, Variable{
				Index:   first + k,
				Oil:     o.Name,
				Product: p.Name,
			})
			pl.Prices[k] = p.Price
		}
	}

	for k, v := range pl.Variables {
		coef := make([]float64, n)
		coef[k] = 1
		if err := pl.add(fmt.Sprintf("%s/%s nonnegative", v.Oil, v.Product), coef, cone.Geq, 0); err != nil {
			return nil, err
		}
	}

	for i, o := range oils {
		coef := make([]float64, n)
		for j := range products {
			coef[i*len(products)+j] = 1
		}
		if err := pl.add(o.Name+" supply", coef, cone.Leq, o.MaxQuantity); err != nil {
			return nil, err
		}
	}

	for j, p := range products {
		if p.MinPN == nil {
			continue
		}
		coef := make([]float64, n)
		for i, o := range oils {
			coef[i*len(products)+j] = o.PN - *p.MinPN
		}
		if err := pl.add(p.Name+" PN floor", coef, cone.Geq, 0); err != nil {
			return nil, err
		}
	}

	for j, p := range products {
		if p.MaxRVP == nil {
			continue
		}
		coef := make([]float64, n)
		for i, o := range oils {
			coef[i*len(products)+j] = o.RVP - *p.MaxRVP
		}
		if err := pl.add(p.Name+" RVP cap", coef, cone.Leq, 0); err != nil {
			return nil, err
		}
	}

	if err := pl.md.Maximize(nil, pl.Prices); err != nil {
		return nil, err
	}
	glog.V(1).Infof("blend: %d variables, %d constraints", n, len(pl.Constraints))
	return pl, nil
}

func (pl *Plan) add(label string, coef []float64, rel cone.Relation, rhs float64) error {
	if err := pl.md.AddRelation(rel, coef, rhs); err != nil {
		return errors.Wrap(err, label)
	}
	pl.Constraints = append(pl.Constraints, Constraint{Label: label, Coef: coef, Rel: rel, RHS: rhs})
	return nil
}

// Model returns the underlying conic model.
func (pl *Plan) Model() *model.Model { return pl.md }

// Allocation is the quantity of one oil blended into one product.
type Allocation struct {
	Variable
	Quantity float64
}

// Solution is a solved plan.
type Solution struct {
	Status      solver.Status
	Revenue     float64
	Allocations []Allocation
	Result      *solver.Result
}

// Solve runs the model. Revenue is the negated minimized objective.
func (pl *Plan) Solve() (*Solution, error) {
	res, err := pl.md.Solve()
	if err != nil {
		return nil, err
	}
	sol := &Solution{Status: res.Status, Revenue: -res.Objective, Result: res}
	for _, v := range pl.Variables {
		sol.Allocations = append(sol.Allocations, Allocation{Variable: v, Quantity: res.Primal[v.Index]})
	}
	if res.Status != solver.Solved {
		glog.Warningf("blend: plan not solved: %v", res.Status)
	}
	return sol, nil
}
