// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blend

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrColumn is returned when a required CSV column is missing from the header.
var ErrColumn = errors.New("blend: missing column")

// Oil is a base stock with its octane number (PN), vapour pressure (RVP) and available quantity.
type Oil struct {
	Name        string
	PN          float64
	RVP         float64
	MaxQuantity float64
}

// Product is a blend sold at Price. A nil bound is not enforced.
type Product struct {
	Name   string
	MinPN  *float64
	MaxRVP *float64
	Price  float64
}

// table is a CSV body addressed by header name.
type table struct {
	col  map[string]int
	rows [][]string
}

func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "blend: read csv")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrColumn, "empty input")
	}
	t := &table{col: make(map[string]int), rows: records[1:]}
	for i, h := range records[0] {
		t.col[strings.TrimSpace(h)] = i
	}
	for _, name := range required {
		if _, ok := t.col[name]; !ok {
			return nil, errors.Wrapf(ErrColumn, "%q", name)
		}
	}
	return t, nil
}

func (t *table) cell(row int, name string) string {
	return strings.TrimSpace(t.rows[row][t.col[name]])
}

func (t *table) float(row int, name string) (float64, error) {
	s := t.cell(row, name)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "blend: line %d column %s", row+2, name)
	}
	return v, nil
}

// optional returns nil for an empty cell.
func (t *table) optional(row int, name string) (*float64, error) {
	if t.cell(row, name) == "" {
		return nil, nil
	}
	v, err := t.float(row, name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadOils parses the columns name, pn, rvp and qy_max.
func ReadOils(r io.Reader) ([]Oil, error) {
	t, err := readTable(r, "name", "pn", "rvp", "qy_max")
	if err != nil {
		return nil, err
	}
	oils := make([]Oil, len(t.rows))
	for i := range t.rows {
		o := &oils[i]
		o.Name = t.cell(i, "name")
		if o.PN, err = t.float(i, "pn"); err != nil {
			return nil, err
		}
		if o.RVP, err = t.float(i, "rvp"); err != nil {
			return nil, err
		}
		if o.MaxQuantity, err = t.float(i, "qy_max"); err != nil {
			return nil, err
		}
	}
	return oils, nil
}

// ReadProducts parses the columns name, pn_min, rvp_max and price.
// Empty pn_min or rvp_max cells leave the bound unset.
func ReadProducts(r io.Reader) ([]Product, error) {
	t, err := readTable(r, "name", "pn_min", "rvp_max", "price")
	if err != nil {
		return nil, err
	}
	products := make([]Product, len(t.rows))
	for i := range t.rows {
		p := &products[i]
		p.Name = t.cell(i, "name")
		if p.MinPN, err = t.optional(i, "pn_min"); err != nil {
			return nil, err
		}
		if p.MaxRVP, err = t.optional(i, "rvp_max"); err != nil {
			return nil, err
		}
		if p.Price, err = t.float(i, "price"); err != nil {
			return nil, err
		}
	}
	return products, nil
}
