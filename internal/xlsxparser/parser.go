// =============================================================================
// FitNotes2Hevy - XLSX Input Parser
// =============================================================================
//
// FitNotes exports CSV, but users often open the export in a spreadsheet
// program and save it back as a workbook. This module reads such a workbook
// into the same types.Table the CSV parser produces, so the rest of the
// pipeline cannot tell the two apart.
//
// WORKBOOK LAYOUT (Expected):
//   | Column A   | Column B | Column C | ... | Column J |
//   |------------|----------|----------|-----|----------|
//   | Date       | Exercise | Category | ... | Comment  |
//   | 2025-01-01 | Squat    | Legs     | ... |          |
//
//   The header is the first non-empty row of the sheet. Column order does not
//   matter; names must match the CSV export exactly.
//
// DATE CELLS:
//   A spreadsheet program usually turns the ISO date text into a real date
//   cell. Raw cell values are read, and a numeric Date cell is converted from
//   its Excel serial form back to YYYY-MM-DD.
//
// TIME CELLS:
//   The Time column ("0:01:30") is likewise stored as a fraction of a day.
//   A fractional Time cell is written back as H:MM:SS. Whole numbers are
//   left alone and read as seconds.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the first sheet of an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//   - sheet: The sheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The parsed table with SourceFile set.
//   - An error if the workbook cannot be opened or read.
func Parse(path, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	table, err := parseWorkbook(f, sheet)
	if err != nil {
		return nil, err
	}
	table.SourceFile = path
	return table, nil
}

// ParseReader reads a workbook from r.
func ParseReader(r io.Reader, sheet string) (*types.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f, sheet)
}

func parseWorkbook(f *excelize.File, sheet string) (*types.Table, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}

	table := &types.Table{}
	for i, raw := range rows {
		if isRowEmpty(raw) {
			continue
		}

		if table.Headers == nil {
			table.Headers = cleanHeaders(raw)
			continue
		}

		fields := make(map[string]string, len(table.Headers))
		for col, header := range table.Headers {
			value := ""
			if col < len(raw) {
				value = strings.TrimSpace(raw[col])
			}
			switch header {
			case types.ColDate:
				value = normalizeDate(value)
			case types.ColTime:
				value = normalizeTime(value)
			}
			fields[header] = value
		}

		table.Rows = append(table.Rows, types.Row{Number: i + 1, Fields: fields})
	}

	return table, nil
}

// normalizeDate turns an Excel date serial into YYYY-MM-DD.
// Text values are returned unchanged.
func normalizeDate(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02")
}

// normalizeTime turns a fractional day serial into H:MM:SS, rounded to the
// second. Text and whole numbers are returned unchanged.
func normalizeTime(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 0 || serial == math.Trunc(serial) {
		return value
	}
	secs := int(math.Round(serial * 86400))
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// cleanHeaders trims header names and names blank header cells by position.
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

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
