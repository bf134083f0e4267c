// =============================================================================
// FitNotes2Hevy - Mapping Report
// =============================================================================
//
// This module writes an XLSX workbook describing how the exercises in an
// export were mapped, so a user can review names before importing into Hevy.
//
// WORKBOOK LAYOUT:
//   Sheet "Mappings":
//     FitNotes Exercise | Hevy Exercise | Status   | Sets
//     Squat             | Back Squat    | Mapped   | 12
//     Sled Push         | Sled Push     | Unmapped | 3
//
//   Sheet "Summary" (only after a conversion):
//     Field             | Value
//     Input             | FitNotes_Export.csv
//     Rows              | 240
//     ...
//
// =============================================================================

package report

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
)

const (
	// MappingsSheet is the name of the per-exercise sheet.
	MappingsSheet = "Mappings"

	// SummarySheet is the name of the conversion summary sheet.
	SummarySheet = "Summary"

	statusMapped   = "Mapped"
	statusUnmapped = "Unmapped"
)

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// Entry is one row of the Mappings sheet.
type Entry struct {
	FitNotes string
	Hevy     string
	Mapped   bool
	Sets     int
}

// Status returns "Mapped" or "Unmapped".
func (e Entry) Status() string {
	if e.Mapped {
		return statusMapped
	}
	return statusUnmapped
}

// Summary describes a finished conversion.
type Summary struct {
	RunID       string
	Input       string
	Output      string
	Rows        int
	Workouts    int
	Exercises   int
	Unmapped    int
	GeneratedAt time.Time
}

// BuildEntries counts the sets of every distinct exercise name and resolves
// it against mapping. Entries are sorted by FitNotes name.
func BuildEntries(exercises []string, mapping mappings.Mapping) []Entry {
	counts := make(map[string]int)
	for _, name := range exercises {
		if name != "" {
			counts[name]++
		}
	}

	entries := make([]Entry, 0, len(counts))
	for name, n := range counts {
		target, ok := mapping.Lookup(name)
		if !ok {
			target = name
		}
		entries = append(entries, Entry{FitNotes: name, Hevy: target, Mapped: ok, Sets: n})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].FitNotes < entries[j].FitNotes })
	return entries
}

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// Build creates the workbook. summary may be nil, in which case only the
// Mappings sheet is written. The caller must Close the returned file.
func Build(entries []Entry, summary *Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", MappingsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeMappings(f, entries, header); err != nil {
		f.Close()
		return nil, err
	}

	if summary != nil {
		if err := writeSummary(f, summary, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// Write builds the workbook and saves it to path.
func Write(path string, entries []Entry, summary *Summary) error {
	f, err := Build(entries, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// writeMappings fills the Mappings sheet.
func writeMappings(f *excelize.File, entries []Entry, header int) error {
	rows := [][]interface{}{{"FitNotes Exercise", "Hevy Exercise", "Status", "Sets"}}
	for _, e := range entries {
		rows = append(rows, []interface{}{e.FitNotes, e.Hevy, e.Status(), e.Sets})
	}
	if err := setRows(f, MappingsSheet, rows); err != nil {
		return err
	}

	if err := f.SetCellStyle(MappingsSheet, "A1", "D1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(MappingsSheet, "A", "B", 36); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(4, len(rows))
	if err != nil {
		return err
	}
	if err := f.AutoFilter(MappingsSheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("failed to add filter: %w", err)
	}
	return nil
}

// writeSummary adds the Summary sheet.
func writeSummary(f *excelize.File, s *Summary, header int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	generated := s.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	rows := [][]interface{}{
		{"Field", "Value"},
		{"Run ID", s.RunID},
		{"Input", s.Input},
		{"Output", s.Output},
		{"Rows", strconv.Itoa(s.Rows)},
		{"Workouts", strconv.Itoa(s.Workouts)},
		{"Exercises", strconv.Itoa(s.Exercises)},
		{"Unmapped exercises", strconv.Itoa(s.Unmapped)},
		{"Generated", generated.Format(time.RFC3339)},
	}
	if err := setRows(f, SummarySheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}

// setRows writes rows starting at A1.
func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
