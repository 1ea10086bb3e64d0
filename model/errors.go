// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/pkg/errors"

var (
	// ErrRowLength is returned when a constraint row does not have one coefficient per variable.
	ErrRowLength = errors.New("model: row length does not match variable count")
	// ErrConeWidth is returned when the rows of a constraint do not match the width of its cone.
	ErrConeWidth = errors.New("model: rows do not match cone width")
	// ErrObjectiveShape is returned when P or q do not match the variable count.
	ErrObjectiveShape = errors.New("model: objective shape does not match variable count")
)
