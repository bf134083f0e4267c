// =============================================================================
// FitNotes2Hevy - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a conversion:
//   - Naming output files from a placeholder format
//   - Creating output directories
//   - Writing output atomically, so a failed run leaves no partial file
//   - Printing the conversion summary shown after a run
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - now as 2006-01-02T15-04-05
//     {date}      - now as 2006-01-02
//     {input}     - The input file name without directory or extension
//   - now: The time used for {timestamp} and {date}.
//   - params: Extra placeholder values, e.g. {"input": "export"}.
//
// RETURNS:
//   - The generated file name, always ending in ".csv".
//
// EXAMPLE:
//
//	format: "hevy_import_{timestamp}.csv"
//	output: "hevy_import_2025-11-19T10-20-01.csv"
func GenerateOutputFileName(format string, now time.Time, params map[string]string) string {
	replacements := map[string]string{
		"{timestamp}": now.Format("2006-01-02T15-04-05"),
		"{date}":      now.Format("2006-01-02"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	// One pass, so placeholder text inside a substituted value stays literal.
	placeholders := make([]string, 0, len(replacements))
	for placeholder := range replacements {
		placeholders = append(placeholders, placeholder)
	}
	sort.Strings(placeholders)
	pairs := make([]string, 0, 2*len(placeholders))
	for _, placeholder := range placeholders {
		pairs = append(pairs, placeholder, replacements[placeholder])
	}
	result := strings.NewReplacer(pairs...).Replace(format)

	if !strings.HasSuffix(strings.ToLower(result), ".csv") {
		result += ".csv"
	}
	return result
}

// InputStem returns the file name of path without directory or extension.
func InputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// FILE WRITING
// =============================================================================

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place. On any error path is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// CONVERSION SUMMARY
// =============================================================================

// ConversionSummary describes one finished conversion.
type ConversionSummary struct {
	RunID             string
	InputFile         string
	OutputFile        string
	Rows              int
	Workouts          int
	Exercises         int
	SkippedRows       []int
	UnmappedExercises []string
	ProcessTime       time.Duration
	DryRun            bool
}

// WriteSummary prints a human-readable summary to w.
func WriteSummary(w io.Writer, s ConversionSummary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Converted %s\n", s.InputFile)
	if s.DryRun {
		fmt.Fprintf(bw, "  Output:     (dry run, nothing written)\n")
	} else {
		fmt.Fprintf(bw, "  Output:     %s\n", s.OutputFile)
	}
	fmt.Fprintf(bw, "  Sets:       %d\n", s.Rows)
	fmt.Fprintf(bw, "  Workouts:   %d\n", s.Workouts)
	fmt.Fprintf(bw, "  Exercises:  %d\n", s.Exercises)
	fmt.Fprintf(bw, "  Time:       %s\n", s.ProcessTime.Round(time.Millisecond))

	if n := len(s.SkippedRows); n > 0 {
		fmt.Fprintf(bw, "\n%d row(s) without a date or exercise were skipped: %v\n", n, s.SkippedRows)
	}

	if n := len(s.UnmappedExercises); n > 0 {
		fmt.Fprintf(bw, "\n%d exercise(s) have no Hevy mapping and keep their FitNotes name:\n", n)
		for _, name := range s.UnmappedExercises {
			fmt.Fprintf(bw, "  - %s\n", name)
		}
		fmt.Fprintf(bw, "Add them with: fitnotes2hevy mappings add \"<FitNotes name>\" \"<Hevy name>\"\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
