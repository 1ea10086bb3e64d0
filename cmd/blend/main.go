// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command blend maximizes the revenue of blending oils into products.
//
//	blend [glog flags] <oils.csv> <products.csv> [solution.csv]
//
// oils.csv has the columns name,pn,rvp,qy_max and products.csv has
// name,pn_min,rvp_max,price, where an empty pn_min or rvp_max means no bound.
// The allocation is printed and optionally written to solution.csv.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/curioloop/conic/blend"
	"github.com/curioloop/conic/solver"
	log "github.com/golang/glog"
	"github.com/pkg/errors"
)

func main() {
	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()
	code := run(flag.Args(), os.Stdout, os.Stderr)
	log.Flush()
	os.Exit(code)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: blend <oils.csv> <products.csv> [solution.csv]")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 || len(args) > 3 {
		usage(stderr)
		return 1
	}
	if err := blendFiles(args, stdout); err != nil {
		log.Errorf("blend: %v", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func blendFiles(args []string, w io.Writer) error {
	oils, err := readFile(args[0], blend.ReadOils)
	if err != nil {
		return err
	}
	products, err := readFile(args[1], blend.ReadProducts)
	if err != nil {
		return err
	}
	printInputs(w, oils, products)

	pl, err := blend.NewPlan(oils, products)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, c := range pl.Constraints {
		fmt.Fprintln(w, c)
	}
	fmt.Fprintf(w, "objective: maximize %v * x\n", pl.Prices)

	sol, err := pl.Solve()
	if err != nil {
		return err
	}
	res := sol.Result
	fmt.Fprintf(w, "Solution (x)    = %v\n", res.Primal)
	fmt.Fprintf(w, "Multipliers (z) = %v\n", res.Dual)
	fmt.Fprintf(w, "Slacks (s)      = %v\n", res.Slack)
	fmt.Fprintln(w)
	if sol.Status != solver.Solved {
		return errors.Errorf("blend: solver finished with status %v", sol.Status)
	}
	fmt.Fprintf(w, "optimal_value: %v\n", blend.Round4(sol.Revenue))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "oil\tproduct\tvar_idx\tqy(solution)")
	for _, a := range sol.Allocations {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\n", a.Oil, a.Product, a.Index, blend.Round4(a.Quantity))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(args) == 3 {
		f, err := os.Create(args[2])
		if err != nil {
			return errors.Wrap(err, "blend: create solution file")
		}
		if err := blend.WriteCSV(f, sol); err != nil {
			f.Close()
			return err
		}
		return errors.Wrap(f.Close(), "blend: close solution file")
	}
	return nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "blend: open input")
	}
	defer f.Close()
	recs, err := read(f)
	return recs, errors.Wrap(err, path)
}

func printInputs(w io.Writer, oils []blend.Oil, products []blend.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tpn\trvp\tqy_max")
	for _, o := range oils {
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n", o.Name, o.PN, o.RVP, o.MaxQuantity)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "name\tpn_min\trvp_max\tprice")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", p.Name, bound(p.MinPN), bound(p.MaxRVP), p.Price)
	}
	tw.Flush()
}

func bound(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
