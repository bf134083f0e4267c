// =============================================================================
// FitNotes2Hevy - CSV Writer Module
// =============================================================================
//
// This module renders converted records in the Hevy/Strong import format.
//
// FORMAT:
//   "Workout #";"Date";"Workout Name";...;"Workout Notes"
//   "1";"2024-12-31 21:00:00";"Workout";...;"Imported from FitNotes"
//
//   - Fields are separated by semicolons
//   - Every field is quoted, including numbers and empty values
//   - A quote inside a field is doubled
//   - Lines end with "\n"
//
// The importer expects the fixed column order of types.OutputColumns.
//
// =============================================================================

package csvwriter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls the output layout.
type Options struct {
	// Delimiter separates fields.
	// Default: ';'
	Delimiter rune

	// LineEnding terminates every line.
	// Default: "\n"
	LineEnding string

	// IncludeHeader writes the column names as the first line.
	// Default: true
	IncludeHeader bool
}

// DefaultOptions returns the options the Hevy importer accepts.
func DefaultOptions() Options {
	return Options{
		Delimiter:     ';',
		LineEnding:    "\n",
		IncludeHeader: true,
	}
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate renders records with the default options.
func Generate(records []types.OutputRecord) ([]byte, error) {
	return GenerateWithOptions(records, DefaultOptions())
}

// GenerateWithOptions renders records with custom options.
func GenerateWithOptions(records []types.OutputRecord, options Options) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(&buffer, records, options); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Write streams records to w.
//
// PARAMETERS:
//   - w: The destination.
//   - records: The converted records, already in output order.
//   - options: The output layout.
//
// RETURNS:
//   - An error if w fails or the delimiter is unusable.
func Write(w io.Writer, records []types.OutputRecord, options Options) error {
	if options.Delimiter == 0 || options.Delimiter == '"' || options.Delimiter == '\n' || options.Delimiter == '\r' {
		return fmt.Errorf("invalid delimiter %q", options.Delimiter)
	}
	if options.LineEnding == "" {
		options.LineEnding = "\n"
	}

	bw := bufio.NewWriter(w)
	if options.IncludeHeader {
		writeLine(bw, types.OutputColumns, options)
	}
	for _, rec := range records {
		writeLine(bw, rec.Values(), options)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeLine writes one quoted, delimited line. Errors surface on Flush.
func writeLine(w *bufio.Writer, fields []string, options Options) {
	for i, field := range fields {
		if i > 0 {
			w.WriteRune(options.Delimiter)
		}
		w.WriteString(quote(field))
	}
	w.WriteString(options.LineEnding)
}

// quote wraps s in double quotes, doubling any quote inside it.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
