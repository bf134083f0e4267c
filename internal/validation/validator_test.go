package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
)

func fullHeaders() []string {
	return append(append([]string{}, types.RequiredColumns...), types.ColComment)
}

func row(n int, date, exercise string) types.Row {
	return types.Row{Number: n, Fields: map[string]string{
		types.ColDate:     date,
		types.ColExercise: exercise,
	}}
}

// TestValidateAcceptsExport verifies that a table with every required column
// and at least one dated exercise passes.
func TestValidateAcceptsExport(t *testing.T) {
	table := &types.Table{
		Headers: fullHeaders(),
		Rows:    []types.Row{row(2, "2025-01-01", "Squat")},
	}
	if err := Validate(table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestValidateMissingColumns verifies that each missing required column is
// named exactly, for every single-column omission and for a multi-column one.
func TestValidateMissingColumns(t *testing.T) {
	for _, drop := range types.RequiredColumns {
		t.Run(drop, func(t *testing.T) {
			var headers []string
			for _, h := range fullHeaders() {
				if h != drop {
					headers = append(headers, h)
				}
			}
			err := Validate(&types.Table{Headers: headers, Rows: []types.Row{row(2, "2025-01-01", "Squat")}})

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("err = %v, want *SchemaError", err)
			}
			if diff := cmp.Diff([]string{drop}, schemaErr.Missing); diff != "" {
				t.Errorf("missing columns mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(err.Error(), drop) {
				t.Errorf("message %q does not name %q", err.Error(), drop)
			}
		})
	}

	err := Validate(&types.Table{Headers: []string{"Date", "Exercise", "Comment"}})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
	want := []string{"Category", "Weight", "Weight Unit", "Reps", "Distance", "Distance Unit", "Time"}
	if diff := cmp.Diff(want, schemaErr.Missing); diff != "" {
		t.Errorf("missing columns mismatch (-want +got):\n%s", diff)
	}
}

// TestValidateEmpty verifies that a header-only table is an EmptyInputError,
// and that column checks run first.
func TestValidateEmpty(t *testing.T) {
	err := Validate(&types.Table{Headers: fullHeaders()})
	var emptyErr *EmptyInputError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err = %v, want *EmptyInputError", err)
	}

	err = Validate(&types.Table{Headers: []string{"Date"}})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError when columns are missing on an empty table", err)
	}
}

// TestValidateAllEmptyDateOrExercise verifies the all-null column checks.
func TestValidateAllEmptyDateOrExercise(t *testing.T) {
	tests := []struct {
		name string
		rows []types.Row
		want string
	}{
		{"no dates", []types.Row{row(2, "", "Squat"), row(3, "", "Bench")}, "no valid dates"},
		{"no exercises", []types.Row{row(2, "2025-01-01", ""), row(3, "2025-01-02", "")}, "no exercises"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&types.Table{Headers: fullHeaders(), Rows: tt.rows})
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("err = %v, want *SchemaError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

// TestIsInputError verifies wrapped validation errors are still recognised.
func TestIsInputError(t *testing.T) {
	wrapped := fmt.Errorf("reading upload: %w", &EmptyInputError{})
	if !IsInputError(wrapped) {
		t.Error("wrapped EmptyInputError not recognised")
	}
	if IsInputError(errors.New("disk full")) {
		t.Error("plain error recognised as input error")
	}
}
