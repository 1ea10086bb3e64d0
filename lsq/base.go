// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lsq holds the dense least squares kernels behind the quadratic
// backend. Each follows Lawson & Hanson, 'Solving least squares problems'
// and takes column-major matrices whose leading dimension is the row count.
//
// A convex QP 𝚖𝚒𝚗 ½𝐱ᵀ𝐏𝐱 + 𝐪ᵀ𝐱 with 𝐏 = 𝐔ᵀ𝐔 is the least squares problem
// 𝚖𝚒𝚗 ½‖ 𝐔𝐱 - 𝐟 ‖₂² with 𝐔ᵀ𝐟 = -𝐪. Zero cone rows 𝐀𝐱 = 𝐛 become the
// equalities of LSEI and Nonnegative rows 𝐀𝐱 ≤ 𝐛 become -𝐀𝐱 ≥ -𝐛.
// Solve is that entry point.
package lsq

import (
	"fmt"
	"math"
)

const (
	zero = 0.0
	one  = 1.0
	eps  = 0x1p-52
)

var sqrtEps = math.Sqrt(eps)

// Mode is the exit state of a kernel.
type Mode int

const (
	HasSolution       Mode = iota
	BadArgument            // dimensions or slice lengths do not fit
	NNLSExceedMaxIter      // NNLS ran out of iterations
	ConsIncompatible       // no point satisfies the inequalities
	LSISingularE           // 𝐄 lacks full column rank
	LSEISingularC          // 𝐂 lacks full row rank
	HFTIRankDefect         // 𝐄 lacks full column rank and there are no inequalities
)

var modeNames = [...]string{
	HasSolution:       "HasSolution",
	BadArgument:       "BadArgument",
	NNLSExceedMaxIter: "NNLSExceedMaxIter",
	ConsIncompatible:  "ConsIncompatible",
	LSISingularE:      "LSISingularE",
	LSEISingularC:     "LSEISingularC",
	HFTIRankDefect:    "HFTIRankDefect",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}
