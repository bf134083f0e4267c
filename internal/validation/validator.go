// =============================================================================
// FitNotes2Hevy - Input Validation
// =============================================================================
//
// This module checks that a parsed table really is a FitNotes workout export
// before any transformation runs. It is callable on its own so a caller can
// reject a bad upload eagerly, before the user asks for a conversion.
//
// CHECKS (in order):
//   1. Every required column is present in the header
//   2. The table has at least one data row
//   3. At least one row has a Date
//   4. At least one row has an Exercise
//
// The first failing check is returned. Later checks are not run.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
)

// exportHint tells the user how to produce a valid file at the source.
const exportHint = "Please upload a CSV file exported from FitNotes. " +
	"Go to FitNotes → Settings → Spreadsheet Export → Workout Data."

// =============================================================================
// ERROR TYPES
// =============================================================================

// SchemaError reports an input whose columns do not match the FitNotes export.
type SchemaError struct {
	// Missing lists the absent required columns, in required-column order.
	Missing []string

	// Reason describes a problem other than missing columns, such as a
	// required column with no values at all.
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid file format. This doesn't appear to be a FitNotes export. "+
			"Missing columns: %s.\n\n%s", strings.Join(e.Missing, ", "), exportHint)
	}
	return e.Reason
}

// EmptyInputError reports an input with a header but no data rows.
type EmptyInputError struct {
	SourceFile string
}

// Error implements the error interface.
func (e *EmptyInputError) Error() string {
	return "the file is empty. Please upload a FitNotes export with workout data."
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks that table is a usable FitNotes export.
//
// RETURNS:
//   - nil if the table can be converted.
//   - *SchemaError if required columns are missing, or Date/Exercise are empty
//     in every row.
//   - *EmptyInputError if the table has no data rows.
func Validate(table *types.Table) error {
	if table == nil {
		return &EmptyInputError{}
	}

	if missing := MissingColumns(table); len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}

	if len(table.Rows) == 0 {
		return &EmptyInputError{SourceFile: table.SourceFile}
	}

	if allEmpty(table, types.ColDate) {
		return &SchemaError{Reason: "no valid dates found in the file"}
	}

	if allEmpty(table, types.ColExercise) {
		return &SchemaError{Reason: "no exercises found in the file"}
	}

	return nil
}

// MissingColumns returns the required columns absent from the table header.
func MissingColumns(table *types.Table) []string {
	var missing []string
	for _, col := range types.RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// allEmpty reports whether column has no value in any row.
func allEmpty(table *types.Table, column string) bool {
	for _, row := range table.Rows {
		if row.Fields[column] != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// IsInputError reports whether err is one of the validation errors above.
// Callers use it to tell a bad upload apart from an internal failure.
func IsInputError(err error) bool {
	var schemaErr *SchemaError
	var emptyErr *EmptyInputError
	return errors.As(err, &schemaErr) || errors.As(err, &emptyErr)
}
