// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blend

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Round4 rounds v to four decimal places.
func Round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0 // drop -0
	}
	return r
}

// WriteCSV writes one line per allocation with the header oil,product,var_idx,qy(solution).
func WriteCSV(w io.Writer, sol *Solution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"oil", "product", "var_idx", "qy(solution)"}); err != nil {
		return errors.Wrap(err, "blend: write csv")
	}
	for _, a := range sol.Allocations {
		rec := []string{
			a.Oil,
			a.Product,
			strconv.Itoa(a.Index),
			strconv.FormatFloat(Round4(a.Quantity), 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "blend: write csv")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "blend: write csv")
}
