package summary

import "fmt"

// ParseError reports input that is not usable as a measurement table:
// malformed CSV, a row wider than the header, or a missing column.
type ParseError struct {
	// Line is the 1-based input line, or 0 when the error is not tied to one.
	Line int
	// Column names the missing column, if that is the problem.
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("parse error: missing column %q", e.Column)
	case e.Line > 0:
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("parse error: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
