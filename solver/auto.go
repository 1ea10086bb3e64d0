// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/golang/glog"

// Auto sends problems with stored nonzeros in 𝐏 to Quadratic and the rest to Simplex.
type Auto struct {
	Settings Settings
}

// Solve implements Solver.
func (s Auto) Solve(p *Problem) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.P.NNZ() > 0 {
		glog.V(1).Infof("auto: quadratic backend, P has %d nonzeros", p.P.NNZ())
		return Quadratic(s).Solve(p)
	}
	glog.V(1).Info("auto: simplex backend")
	return Simplex(s).Solve(p)
}
