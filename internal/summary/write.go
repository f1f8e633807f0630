package summary

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// WriteCSV writes res as CSV: the header, one record per program, and a
// final blank line. Missing values are empty fields. Nothing is written to w
// if the table cannot be rendered.
func WriteCSV(w io.Writer, res *Result) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(res.Header()); err != nil {
		return err
	}
	for _, rec := range res.Records() {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("could not render result: %w", err)
	}
	buf.WriteByte('\n')

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("could not write result: %w", err)
	}
	return nil
}

// Records returns the formatted data records of res, aligned with Header.
func (r *Result) Records() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make([]string, 0, 1+2*len(row.Stats))
		rec = append(rec, row.Program)
		for _, s := range row.Stats {
			rec = append(rec, FormatValue(s.Mean), FormatValue(s.StdErr))
		}
		out = append(out, rec)
	}
	return out
}

// FormatValue renders v with FormatFloat, or as "" when it is missing.
func FormatValue(v Value) string {
	if !v.Valid || math.IsNaN(v.Float) {
		return ""
	}
	return FormatFloat(v.Float)
}

// FormatFloat renders f in its shortest round-trip form. Integral values keep
// a ".0" suffix, and magnitudes below 1e-4 or from 1e16 up use exponent
// notation, e.g. 11.0, 0.25, 1e-05, 1.5e+16.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
