// =============================================================================
// FitNotes2Hevy - CSV Parser Module
// =============================================================================
//
// This module reads a FitNotes spreadsheet export (comma-separated, header
// row first) into a types.Table. It handles:
//   - A leading UTF-8 byte order mark (common when the export passed through
//     a spreadsheet program)
//   - Non-UTF-8 exports, decoded through golang.org/x/text
//   - Ragged rows and lazily quoted fields
//   - Blank lines between data rows
//
// Column names are kept exactly as written (case-sensitive); cell values are
// trimmed. Extra columns are carried along and ignored downstream.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings controls how an input file is decoded.
type Settings struct {
	// Encoding is the character encoding of the file, by WHATWG label
	// ("utf-8", "windows-1252", "iso-8859-1", ...). Empty means UTF-8.
	Encoding string

	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
}

// DefaultSettings returns the settings for a stock FitNotes export.
func DefaultSettings() Settings {
	return Settings{Encoding: "utf-8", Delimiter: ','}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Decoding settings.
//
// RETURNS:
//   - The parsed table. SourceFile is set to filePath.
//   - An error if the file cannot be opened, decoded or parsed.
func Parse(filePath string, settings Settings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath
	return table, nil
}

// ParseReader reads CSV data from r.
//
// A completely empty input yields a table with no headers and no rows; the
// validator reports that as missing columns.
func ParseReader(r io.Reader, settings Settings) (*types.Table, error) {
	dec, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(r, dec.NewDecoder()))
	configureReader(csvReader, settings)

	table := &types.Table{}
	for {
		raw, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := csvReader.FieldPos(0)

		if table.Headers == nil {
			table.Headers = cleanHeaders(raw)
			continue
		}
		if row, ok := buildRow(raw, table.Headers, line); ok {
			table.Rows = append(table.Rows, row)
		}
	}

	return table, nil
}

// CheckEncoding reports whether label names a supported input encoding.
func CheckEncoding(label string) error {
	_, err := decoderFor(label)
	return err
}

// decoderFor resolves an encoding label. UTF-8 strips a leading BOM.
func decoderFor(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported input encoding %q: %w", label, err)
	}
	return enc, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) {
	reader.Comma = ','
	if settings.Delimiter != 0 {
		reader.Comma = settings.Delimiter
	}

	// Spreadsheet round-trips leave ragged rows and stray quotes behind.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders trims header names. Blank headers get a positional name so
// they can never collide with a real column.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// buildRow converts one raw record to a types.Row. Blank records are dropped.
func buildRow(raw []string, headers []string, line int) (types.Row, bool) {
	if isRowEmpty(raw) {
		return types.Row{}, false
	}

	fields := make(map[string]string, len(headers))
	for col, header := range headers {
		if col < len(raw) {
			fields[header] = strings.TrimSpace(raw[col])
		} else {
			fields[header] = ""
		}
	}

	return types.Row{Number: line, Fields: fields}, true
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
