package converter

import "fmt"

// ConversionError reports a row that could not be transformed. No output is
// produced when Convert returns one.
type ConversionError struct {
	// Row is the source line of the offending row.
	Row int

	// Field is the input column that failed.
	Field string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed at row %d (%s): %v", e.Row, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
