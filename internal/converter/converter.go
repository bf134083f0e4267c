// =============================================================================
// FitNotes2Hevy - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It turns a parsed FitNotes
// export into Hevy/Strong import records.
//
// CONVERSION PIPELINE:
//   1. Validate the table (columns present, rows present, dates present)
//   2. Skip rows without a Date or Exercise, reject unparseable dates
//   3. Group rows into workouts and put them in output order
//   4. Derive every output field for each row
//   5. Collect statistics, including exercises with no mapping
//
// Apart from skipped blank rows the conversion is all-or-nothing: any failing
// row aborts it and no records are returned. The converter holds no mutable
// state and may be reused.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alanjonesit/FitNotes2Hevy/internal/logging"
	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
	"github.com/alanjonesit/FitNotes2Hevy/internal/validation"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a successful conversion.
type Result struct {
	// Records are the output rows in output order.
	Records []types.OutputRecord

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about a conversion.
type Stats struct {
	// RowsProcessed is the number of input rows converted.
	RowsProcessed int

	// Workouts is the number of distinct workout dates.
	Workouts int

	// Exercises is the number of distinct output exercise names.
	Exercises int

	// SkippedRows lists the row numbers dropped for a missing Date or
	// Exercise.
	SkippedRows []int

	// UnmappedExercises lists the input exercise names with no mapping,
	// sorted. They are written under their original name.
	UnmappedExercises []string

	// ProcessingTime is the time taken by Convert.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts FitNotes tables using a fixed mapping and settings.
type Converter struct {
	mapping  mappings.Mapping
	settings Settings
	rules    RuleSets
	log      *slog.Logger

	// Parsed once from settings.
	durationSeconds int
	workoutClock    time.Duration
}

// Option customizes a Converter.
type Option func(*Converter)

// WithRules replaces the default unit-conversion rule sets.
func WithRules(rules RuleSets) Option {
	return func(c *Converter) { c.rules = rules }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Converter.
//
// PARAMETERS:
//   - mapping: The merged FitNotes -> Hevy exercise names. Only read.
//   - settings: The per-run constants. Validated here.
//   - opts: Optional rule sets and logger.
//
// RETURNS:
//   - A new Converter.
//   - An error if the settings are invalid.
func New(mapping mappings.Mapping, settings Settings, opts ...Option) (*Converter, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	duration, _ := ParseDuration(settings.Duration)
	clock, _ := ParseWorkoutTime(settings.WorkoutTime)

	if mapping == nil {
		mapping = mappings.Mapping{}
	}

	c := &Converter{
		mapping:         mapping,
		settings:        settings,
		rules:           DefaultRules(),
		log:             logging.Discard(),
		durationSeconds: duration,
		workoutClock:    clock,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Convert runs the conversion pipeline over table.
//
// RETURNS:
//   - The output records and statistics.
//   - A *validation.SchemaError or *validation.EmptyInputError for an input
//     that is not a usable FitNotes export, or a *ConversionError naming the
//     first row that could not be converted.
func (c *Converter) Convert(table *types.Table) (*Result, error) {
	start := time.Now()

	// =========================================================================
	// STEP 1: VALIDATE
	// =========================================================================

	if err := validation.Validate(table); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: CHECK ROWS
	// =========================================================================

	// Rows missing a Date or an Exercise are skipped. A Date that is present
	// but unparseable fails the run.
	var records []types.InputRecord
	var skipped []int
	for _, rec := range table.Records() {
		if rec.Date == "" || rec.Exercise == "" {
			skipped = append(skipped, rec.Row)
			continue
		}
		if _, err := parseDate(rec.Date); err != nil {
			return nil, &ConversionError{Row: rec.Row, Field: types.ColDate, Err: err}
		}
		records = append(records, rec)
	}
	if len(skipped) > 0 {
		c.log.Warn("skipped rows without a date or exercise",
			"count", len(skipped), "rows", skipped)
	}
	if len(records) == 0 {
		return nil, &validation.SchemaError{Reason: "no row has both a date and an exercise"}
	}

	// =========================================================================
	// STEP 3: GROUP AND ORDER
	// =========================================================================

	rows := orderRecords(records, c.mapping)

	// =========================================================================
	// STEP 4: DERIVE FIELDS
	// =========================================================================

	out := make([]types.OutputRecord, 0, len(rows))
	workouts := make(map[int]bool)
	exercises := make(map[string]bool)
	for _, row := range rows {
		rec, err := c.transform(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
		workouts[rec.WorkoutNumber] = true
		exercises[rec.ExerciseName] = true
	}

	// =========================================================================
	// STEP 5: STATISTICS
	// =========================================================================

	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Exercise
	}
	unmapped := c.mapping.Unmapped(names)
	if len(unmapped) > 0 {
		c.log.Warn("exercises without a mapping kept their FitNotes name",
			"count", len(unmapped), "unmapped", unmapped)
	}

	result := &Result{
		Records: out,
		Stats: Stats{
			RowsProcessed:     len(out),
			Workouts:          len(workouts),
			Exercises:         len(exercises),
			SkippedRows:       skipped,
			UnmappedExercises: unmapped,
			ProcessingTime:    time.Since(start),
		},
	}

	c.log.Debug("conversion complete",
		"rows", result.Stats.RowsProcessed,
		"workouts", result.Stats.Workouts,
		"exercises", result.Stats.Exercises)

	return result, nil
}
