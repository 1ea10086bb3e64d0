// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model_test

import (
	"fmt"

	"github.com/curioloop/conic/model"
)

func Example() {
	md := model.New()
	x := md.AddVariables(2)
	_ = md.AddConstraintGeq([]float64{1, 0}, 0)
	_ = md.AddConstraintGeq([]float64{0, 1}, 0)
	_ = md.AddConstraintLeq([]float64{1, 1}, 10)
	_ = md.AddConstraintLeq([]float64{0, 1}, 4)
	_ = md.Maximize(nil, []float64{1, 2})

	res, err := md.Solve()
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Status)
	fmt.Printf("x = (%.4g, %.4g)\n", res.Primal[x], res.Primal[x+1])
	fmt.Printf("maximum = %.4g\n", -res.Objective)
	// Output:
	// Solved
	// x = (6, 4)
	// maximum = 14
}
