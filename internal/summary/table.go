package summary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// naMarkers are cell values read as missing rather than as numbers.
var naMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// Table is a fully materialised CSV table. Records never hold more fields
// than Header; shorter records are treated as missing trailing cells.
type Table struct {
	Header  []string
	Records [][]string
	index   map[string]int
}

// ReadTable reads all of r as CSV. The first record is the header.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("no columns to parse from input")}
	}
	if err != nil {
		return nil, csvError(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Header: header, index: make(map[string]int, len(header))}
	for i, name := range header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(header), len(rec)),
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("could not read input: %w", err)
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, &ParseError{Column: name}
	}
	return i, nil
}

// Len returns the number of data records.
func (t *Table) Len() int { return len(t.Records) }

func (t *Table) cell(row, col int) string {
	rec := t.Records[row]
	if col >= len(rec) {
		return ""
	}
	return rec[col]
}

// floats collects the numeric values of column col over rows. Missing and
// non-numeric cells are skipped.
func (t *Table) floats(rows []int, col int) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := parseCell(t.cell(row, col)); ok {
			out = append(out, v)
		}
	}
	return out
}

func parseCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if _, na := naMarkers[s]; na {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
