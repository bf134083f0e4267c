// =============================================================================
// FitNotes2Hevy - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which runs the whole pipeline for
// one FitNotes export.
//
// COMMAND USAGE:
//   fitnotes2hevy convert -i FitNotes_Export.csv [-o hevy.csv] [flags]
//
// PIPELINE:
//   1. Load and merge the exercise mapping tiers
//   2. Parse the input (.csv or .xlsx)
//   3. Validate and convert
//   4. Write the Hevy CSV (atomically, and only if conversion succeeded)
//   5. Optionally write the XLSX mapping report
//   6. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alanjonesit/FitNotes2Hevy/internal/config"
	"github.com/alanjonesit/FitNotes2Hevy/internal/converter"
	"github.com/alanjonesit/FitNotes2Hevy/internal/csvwriter"
	"github.com/alanjonesit/FitNotes2Hevy/internal/logging"
	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
	"github.com/alanjonesit/FitNotes2Hevy/internal/report"
	"github.com/alanjonesit/FitNotes2Hevy/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputPath  string
	outputPath string
	reportPath string
	dryRun     bool
)

// stdoutPath writes the converted CSV to standard output.
const stdoutPath = "-"

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a FitNotes export to a Hevy import file",
	Long: `The convert command reads a FitNotes export, renames exercises using the
mapping files and writes a semicolon-separated CSV that Hevy imports as Strong
data.

Every set is placed in a workout per day, starting at the configured workout
time in your timezone. Exercises without a mapping keep their FitNotes name
and are listed after the run.

Nothing is written if any row fails to convert.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "FitNotes export (.csv or .xlsx)")
	flags.StringVarP(&outputPath, "output", "o", "",
		"Output CSV path, or - for stdout (default: output.dir/output.file_name_format)")
	flags.StringVar(&reportPath, "report", "", "Also write an XLSX mapping report to this path")
	flags.BoolVar(&dryRun, "dry-run", false, "Convert and report without writing the output file")

	flags.Float64P("timezone", "z", 0, "Timezone offset from UTC in hours, e.g. 10 or 5.5")
	flags.StringP("time", "t", "", "Workout start time, HH:MM or HH:MM:SS")
	flags.String("workout-name", "", "Workout name")
	flags.String("duration", "", "Workout duration: 60m, 3600s or 3600")
	flags.String("workout-notes", "", "Workout notes")
	flags.String("encoding", "", "Input CSV encoding, e.g. utf-8 or windows-1252")
	flags.String("sheet", "", "Sheet to read from an .xlsx input (default: first sheet)")

	bindFlag(config.KeyTimezone, flags.Lookup("timezone"))
	bindFlag(config.KeyWorkoutTime, flags.Lookup("time"))
	bindFlag(config.KeyWorkoutName, flags.Lookup("workout-name"))
	bindFlag(config.KeyDuration, flags.Lookup("duration"))
	bindFlag(config.KeyWorkoutNotes, flags.Lookup("workout-notes"))
	bindFlag(config.KeyInputEncoding, flags.Lookup("encoding"))
	bindFlag(config.KeyInputSheet, flags.Lookup("sheet"))

	convertCmd.MarkFlagRequired("input")
}

// =============================================================================
// MAIN CONVERT FUNCTION
// =============================================================================

// runConvert executes the conversion. The CSV goes to stdout only when
// requested with -o -; the summary then moves to stderr.
func runConvert(stdout, stderr io.Writer) error {
	start := time.Now()
	runID := uuid.NewString()
	log := logging.WithRun(logger, runID)

	log.Info("starting conversion", "input", inputPath)

	// =========================================================================
	// STEP 1: LOAD MAPPINGS
	// =========================================================================

	mapping, err := mappings.Load(cfg.MappingSources(), log)
	if err != nil {
		return fmt.Errorf("failed to load exercise mappings: %w", err)
	}
	log.Debug("exercise mappings ready", "count", len(mapping))

	// =========================================================================
	// STEP 2: PARSE INPUT
	// =========================================================================

	table, err := readTable(inputPath, cfg)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	log.Debug("parsed input", "rows", len(table.Rows), "columns", len(table.Headers))

	// =========================================================================
	// STEP 3: CONVERT
	// =========================================================================

	conv, err := converter.New(mapping, cfg.Settings(),
		converter.WithRules(cfg.RuleSets()),
		converter.WithLogger(log))
	if err != nil {
		return err
	}

	result, err := conv.Convert(table)
	if err != nil {
		return err
	}

	data, err := csvwriter.Generate(result.Records)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 4: WRITE OUTPUT
	// =========================================================================

	target := outputPath
	if target == "" {
		name := utils.GenerateOutputFileName(cfg.Output.FileNameFormat, start,
			map[string]string{"input": utils.InputStem(inputPath)})
		target = filepath.Join(cfg.Output.Dir, name)
	}

	summaryOut := stdout
	switch {
	case dryRun:
		log.Info("dry run, output not written", "output", target)
	case target == stdoutPath:
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		summaryOut = stderr
	default:
		if utils.FileExists(target) {
			log.Warn("overwriting existing file", "output", target)
		}
		if err := utils.WriteFileAtomic(target, data); err != nil {
			return err
		}
		log.Info("wrote output", "output", target, "rows", result.Stats.RowsProcessed)
	}

	// =========================================================================
	// STEP 5: REPORT
	// =========================================================================

	if reportPath != "" {
		summary := &report.Summary{
			RunID:       runID,
			Input:       inputPath,
			Output:      target,
			Rows:        result.Stats.RowsProcessed,
			Workouts:    result.Stats.Workouts,
			Exercises:   result.Stats.Exercises,
			Unmapped:    len(result.Stats.UnmappedExercises),
			GeneratedAt: start,
		}
		entries := report.BuildEntries(exerciseNames(table), mapping)
		if err := report.Write(reportPath, entries, summary); err != nil {
			return err
		}
		log.Info("wrote mapping report", "path", reportPath)
	}

	// =========================================================================
	// STEP 6: SUMMARY
	// =========================================================================

	return utils.WriteSummary(summaryOut, utils.ConversionSummary{
		RunID:             runID,
		InputFile:         inputPath,
		OutputFile:        target,
		Rows:              result.Stats.RowsProcessed,
		Workouts:          result.Stats.Workouts,
		Exercises:         result.Stats.Exercises,
		SkippedRows:       result.Stats.SkippedRows,
		UnmappedExercises: result.Stats.UnmappedExercises,
		ProcessTime:       time.Since(start),
		DryRun:            dryRun,
	})
}
