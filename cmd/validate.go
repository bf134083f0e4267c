package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
	"github.com/alanjonesit/FitNotes2Hevy/internal/validation"
)

// validateInput is the optional export checked by 'validate'.
var validateInput string

// validateCmd checks the configuration, the mapping files and optionally an
// export, without converting anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration, mapping files and (optionally) an export",
	Long: `The validate command loads the configuration and every mapping tier and
reports problems without writing any file. With --input it also checks that
the file is a FitNotes workout export.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "FitNotes export to check")
}

func runValidate(out io.Writer) error {
	fmt.Fprintln(out, "Configuration: OK")

	mapping, err := mappings.Load(cfg.MappingSources(), logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Mappings:      OK (%d exercises from %s)\n", len(mapping), cfg.Mappings.Dir)

	if validateInput == "" {
		return nil
	}

	table, err := readTable(validateInput, cfg)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", validateInput, err)
	}
	if err := validation.Validate(table); err != nil {
		return err
	}

	unmapped := mapping.Unmapped(exerciseNames(table))
	fmt.Fprintf(out, "Input:         OK (%d sets, %d unmapped exercises)\n", len(table.Rows), len(unmapped))
	return nil
}
