// Package summary computes per-program mean and standard error of the mean
// for benchmark measurement tables.
package summary

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// ProgramColumn is the column that assigns a row to a program.
const ProgramColumn = "program"

// Programs benchmarked by the reference setup, in output row order.
const (
	Balances  = "balances"
	Whitelist = "whitelist"
	Merkle    = "merkle"
)

// Measured phases, in output column order.
const (
	Compilation = "compilation"
	Setup       = "setup"
	Witness     = "witness"
	Proof       = "proof"
)

// Labels fixes the rows (Programs) and column groups (Measurements) of a
// Result. Order is significant.
type Labels struct {
	Programs     []string
	Measurements []string
}

// DefaultLabels returns the reference program and measurement labels.
func DefaultLabels() Labels {
	return Labels{
		Programs:     []string{Balances, Whitelist, Merkle},
		Measurements: []string{Compilation, Setup, Witness, Proof},
	}
}

// Options tunes Aggregate.
type Options struct {
	// Jobs is the number of cells computed concurrently. Values below 2
	// compute every cell on the calling goroutine.
	Jobs int
}

// Value is a float that may be missing.
type Value struct {
	Float float64
	Valid bool
}

// Stat holds the summary of one program/measurement group.
type Stat struct {
	Mean   Value
	StdErr Value
}

// Row is one program's summary, with one Stat per measurement.
type Row struct {
	Program string
	Stats   []Stat
}

// Result is the aggregate table: one Row per program in label order.
type Result struct {
	Measurements []string
	Rows         []Row
}

// Header returns the column names of the flattened result table.
func (r *Result) Header() []string {
	h := make([]string, 0, 1+2*len(r.Measurements))
	h = append(h, ProgramColumn)
	for _, m := range r.Measurements {
		h = append(h, m+"_mean", m+"_stderr")
	}
	return h
}

// Aggregate summarises tbl for every program/measurement pair in labels.
// Rows whose program matches no label are ignored. The program column and
// every measurement column must be present.
func Aggregate(ctx context.Context, tbl *Table, labels Labels, opts Options) (*Result, error) {
	progCol, err := tbl.Column(ProgramColumn)
	if err != nil {
		return nil, err
	}
	measCols := make([]int, len(labels.Measurements))
	for i, m := range labels.Measurements {
		if measCols[i], err = tbl.Column(m); err != nil {
			return nil, err
		}
	}

	byProgram := make(map[string][]int, len(labels.Programs))
	for _, p := range labels.Programs {
		byProgram[p] = nil
	}
	for i := range tbl.Records {
		p := tbl.cell(i, progCol)
		if rows, ok := byProgram[p]; ok {
			byProgram[p] = append(rows, i)
		}
	}

	res := &Result{
		Measurements: labels.Measurements,
		Rows:         make([]Row, len(labels.Programs)),
	}
	for pi, p := range labels.Programs {
		res.Rows[pi] = Row{Program: p, Stats: make([]Stat, len(labels.Measurements))}
	}

	// Each cell is written by exactly one call.
	fill := func(pi, mi int) {
		rows := byProgram[labels.Programs[pi]]
		res.Rows[pi].Stats[mi] = summarize(tbl.floats(rows, measCols[mi]))
	}

	if opts.Jobs < 2 {
		for pi := range labels.Programs {
			for mi := range labels.Measurements {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				fill(pi, mi)
			}
		}
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for pi := range labels.Programs {
		for mi := range labels.Measurements {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fill(pi, mi)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// summarize returns the mean of x and its standard error. The mean needs at
// least one value; the standard error needs two.
func summarize(x []float64) Stat {
	var s Stat
	n := len(x)
	if n == 0 {
		return s
	}
	mean, variance := stat.MeanVariance(x, nil)
	s.Mean = Value{Float: mean, Valid: true}
	if n < 2 {
		return s
	}
	std := math.Sqrt(math.Max(variance, 0))
	s.StdErr = Value{Float: stat.StdErr(std, float64(n)), Valid: true}
	return s
}
