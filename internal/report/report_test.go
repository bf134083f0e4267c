package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
)

// TestBuildEntries verifies counting, resolution and sorting.
func TestBuildEntries(t *testing.T) {
	got := BuildEntries(
		[]string{"Squat", "Sled Push", "Squat", "", "Bird Dogs"},
		mappings.Mapping{"Squat": "Back Squat", "Bird Dogs": "Bird Dog"},
	)
	want := []Entry{
		{FitNotes: "Bird Dogs", Hevy: "Bird Dog", Mapped: true, Sets: 1},
		{FitNotes: "Sled Push", Hevy: "Sled Push", Mapped: false, Sets: 1},
		{FitNotes: "Squat", Hevy: "Back Squat", Mapped: true, Sets: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

// TestWriteWorkbook verifies both sheets round-trip through a saved file.
func TestWriteWorkbook(t *testing.T) {
	entries := []Entry{
		{FitNotes: "Squat", Hevy: "Back Squat", Mapped: true, Sets: 2},
		{FitNotes: "Sled Push", Hevy: "Sled Push", Sets: 1},
	}
	summary := &Summary{
		RunID:       "run-1",
		Input:       "export.csv",
		Output:      "hevy.csv",
		Rows:        3,
		Workouts:    1,
		Exercises:   2,
		Unmapped:    1,
		GeneratedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Write(path, entries, summary); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(MappingsSheet)
	if err != nil {
		t.Fatal(err)
	}
	wantRows := [][]string{
		{"FitNotes Exercise", "Hevy Exercise", "Status", "Sets"},
		{"Squat", "Back Squat", "Mapped", "2"},
		{"Sled Push", "Sled Push", "Unmapped", "1"},
	}
	if diff := cmp.Diff(wantRows, rows); diff != "" {
		t.Errorf("mappings sheet mismatch (-want +got):\n%s", diff)
	}

	value, err := f.GetCellValue(SummarySheet, "B2")
	if err != nil {
		t.Fatal(err)
	}
	if value != "run-1" {
		t.Errorf("run id = %q, want run-1", value)
	}
	generated, _ := f.GetCellValue(SummarySheet, "B9")
	if generated != "2025-01-01T12:00:00Z" {
		t.Errorf("generated = %q", generated)
	}
}

// TestBuildWithoutSummary verifies a preview workbook has only one sheet.
func TestBuildWithoutSummary(t *testing.T) {
	f, err := Build(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{MappingsSheet}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
}
