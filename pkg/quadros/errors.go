package quadros

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the input file is neither .xlsx nor .xls.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// ParseError represents a workbook that cannot be opened or read. Fatal for
// the run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read workbook %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps a workbook read failure.
func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}
