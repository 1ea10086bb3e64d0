// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csc provides an immutable compressed sparse column matrix with block
// composition (horizontal and vertical concatenation), the storage used to grow
// the quadratic objective and the constraint matrix of a conic model.
//
// Shape violations are programming errors and panic, following gonum/mat.
package csc
