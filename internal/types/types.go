// =============================================================================
// FitNotes2Hevy - Shared Types
// =============================================================================
//
// This package contains the record types shared by the parsers, the validator,
// the converter and the writers. Keeping them here avoids import cycles
// between those packages.
//
// =============================================================================

package types

import "strconv"

// =============================================================================
// COLUMN NAMES
// =============================================================================

// FitNotes export columns. Names are case-sensitive.
const (
	ColDate         = "Date"
	ColExercise     = "Exercise"
	ColCategory     = "Category"
	ColWeight       = "Weight"
	ColWeightUnit   = "Weight Unit"
	ColReps         = "Reps"
	ColDistance     = "Distance"
	ColDistanceUnit = "Distance Unit"
	ColTime         = "Time"
	ColComment      = "Comment"
)

// RequiredColumns lists the columns every FitNotes export must carry.
// Comment is optional.
var RequiredColumns = []string{
	ColDate,
	ColExercise,
	ColCategory,
	ColWeight,
	ColWeightUnit,
	ColReps,
	ColDistance,
	ColDistanceUnit,
	ColTime,
}

// OutputColumns is the fixed Hevy/Strong header, in output order.
var OutputColumns = []string{
	"Workout #",
	"Date",
	"Workout Name",
	"Duration (sec)",
	"Exercise Name",
	"Set Order",
	"Weight (kg)",
	"Reps",
	"RPE",
	"Distance (meters)",
	"Seconds",
	"Notes",
	"Workout Notes",
}

// =============================================================================
// INPUT TABLE
// =============================================================================

// Table is a parsed input file: its header row and its data rows.
type Table struct {
	// SourceFile is the path the table was read from, if any.
	SourceFile string

	// Headers contains the column names in file order.
	Headers []string

	// Rows contains the data rows in file order. Blank rows are not included.
	Rows []Row
}

// Row is a single data row keyed by column name.
type Row struct {
	// Number is the 1-based line in the source file where the row starts.
	// The header is line 1.
	Number int

	// Fields maps column name to trimmed cell value. A null cell is "".
	Fields map[string]string
}

// HasColumn reports whether the table header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Records converts the rows to InputRecords. Missing columns read as "".
func (t *Table) Records() []InputRecord {
	records := make([]InputRecord, len(t.Rows))
	for i, row := range t.Rows {
		f := row.Fields
		records[i] = InputRecord{
			Row:          row.Number,
			Date:         f[ColDate],
			Exercise:     f[ColExercise],
			Category:     f[ColCategory],
			Weight:       f[ColWeight],
			WeightUnit:   f[ColWeightUnit],
			Reps:         f[ColReps],
			Distance:     f[ColDistance],
			DistanceUnit: f[ColDistanceUnit],
			Time:         f[ColTime],
			Comment:      f[ColComment],
		}
	}
	return records
}

// =============================================================================
// RECORDS
// =============================================================================

// InputRecord is one logged set from a FitNotes export.
// Every nullable field uses "" for null.
type InputRecord struct {
	Row          int
	Date         string
	Exercise     string
	Category     string
	Weight       string
	WeightUnit   string
	Reps         string
	Distance     string
	DistanceUnit string
	Time         string
	Comment      string
}

// OutputRecord is one set in Hevy/Strong import format.
type OutputRecord struct {
	WorkoutNumber   int
	Date            string
	WorkoutName     string
	DurationSeconds int
	ExerciseName    string
	SetOrder        int
	Weight          string
	Reps            string
	RPE             string
	Distance        string
	Seconds         string
	Notes           string
	WorkoutNotes    string
}

// Values renders the record in OutputColumns order.
func (r OutputRecord) Values() []string {
	return []string{
		strconv.Itoa(r.WorkoutNumber),
		r.Date,
		r.WorkoutName,
		strconv.Itoa(r.DurationSeconds),
		r.ExerciseName,
		strconv.Itoa(r.SetOrder),
		r.Weight,
		r.Reps,
		r.RPE,
		r.Distance,
		r.Seconds,
		r.Notes,
		r.WorkoutNotes,
	}
}
