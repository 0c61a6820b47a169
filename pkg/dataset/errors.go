package dataset

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn is returned when a requested column is not in the header.
var ErrUnknownColumn = errors.New("unknown column")

// ErrNoNumericColumn is returned when a table has no column with numeric data.
var ErrNoNumericColumn = errors.New("no numeric column found")

// ParseError reports a value that could not be read as a number.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: invalid number %q", e.Line, e.Column, e.Value)
	}
	return fmt.Sprintf("line %d: invalid number %q", e.Line, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
