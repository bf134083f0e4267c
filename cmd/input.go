package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/alanjonesit/FitNotes2Hevy/internal/config"
	"github.com/alanjonesit/FitNotes2Hevy/internal/csvparser"
	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
	"github.com/alanjonesit/FitNotes2Hevy/internal/xlsxparser"
)

// bindFlag routes a flag through the override layer. Binding only fails for
// a nil flag, which is a programming error.
func bindFlag(key string, flag *pflag.Flag) {
	if err := overrides.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}

// readTable parses a FitNotes export. .xlsx files go through the workbook
// parser; anything else is read as CSV.
func readTable(path string, c *config.Config) (*types.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsxparser.Parse(path, c.Input.Sheet)
	}
	return csvparser.Parse(path, c.CSVSettings())
}

// exerciseNames returns the Exercise column of every row, in row order.
func exerciseNames(table *types.Table) []string {
	names := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		names[i] = row.Fields[types.ColExercise]
	}
	return names
}
