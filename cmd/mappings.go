// =============================================================================
// FitNotes2Hevy - Mappings Commands
// =============================================================================
//
// COMMAND USAGE:
//   fitnotes2hevy mappings check [--exercises list.txt ...]
//   fitnotes2hevy mappings preview -i export.csv [--xlsx report.xlsx]
//   fitnotes2hevy mappings add "<FitNotes name>" "<Hevy name>"
//   fitnotes2hevy mappings remove "<FitNotes name>" ...
//   fitnotes2hevy mappings import shared.json
//
// check   - Tier sizes, and which names in exercise lists lack a mapping
// preview - How every exercise in an export will be renamed
// add     - Save an override to the user tier (custom.json)
// remove  - Delete overrides from the user tier
// import  - Merge a JSON mapping file into the user tier
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
	"github.com/alanjonesit/FitNotes2Hevy/internal/report"
)

var (
	exerciseLists []string
	previewInput  string
	previewXLSX   string
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Inspect and extend the exercise name mappings",
}

var mappingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report tier sizes and exercises without a mapping",
	Long: `The check command loads each mapping tier and prints how many exercises it
maps. With --exercises (one name per line, repeatable) it lists the names that
no tier maps and fails if there are any.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMappingsCheck(cmd.OutOrStdout())
	},
}

var mappingsPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show how the exercises in an export will be renamed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMappingsPreview(cmd.OutOrStdout())
	},
}

var mappingsAddCmd = &cobra.Command{
	Use:   "add <fitnotes-name> <hevy-name>",
	Short: "Save a mapping to the user tier",
	Long: `The add command writes a FitNotes -> Hevy mapping to custom.json in the
mappings directory, creating the file if needed. Comment keys (starting with
"_") already in the file are kept.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMappingsAdd(cmd.OutOrStdout(), args[0], args[1])
	},
}

var mappingsRemoveCmd = &cobra.Command{
	Use:   "remove <fitnotes-name>...",
	Short: "Delete mappings from the user tier",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMappingsRemove(cmd.OutOrStdout(), args)
	},
}

var mappingsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Merge a JSON mapping file into the user tier",
	Long: `The import command reads a FitNotes -> Hevy JSON object and merges it into
custom.json. Imported entries replace existing ones with the same FitNotes name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMappingsImport(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(mappingsCmd)
	mappingsCmd.AddCommand(mappingsCheckCmd, mappingsPreviewCmd, mappingsAddCmd,
		mappingsRemoveCmd, mappingsImportCmd)

	mappingsCheckCmd.Flags().StringSliceVar(&exerciseLists, "exercises", nil,
		"Exercise list to check, one name per line (repeatable)")

	mappingsPreviewCmd.Flags().StringVarP(&previewInput, "input", "i", "", "FitNotes export (.csv or .xlsx)")
	mappingsPreviewCmd.Flags().StringVar(&previewXLSX, "xlsx", "", "Also write the preview as an XLSX workbook")
	mappingsPreviewCmd.MarkFlagRequired("input")
}

// =============================================================================
// CHECK
// =============================================================================

func runMappingsCheck(out io.Writer) error {
	var tables []map[string]string
	for _, src := range cfg.MappingSources() {
		entries, err := mappings.LoadFile(src.Tier, src.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(out, "%-14s %s (missing)\n", src.Tier.String()+":", src.Path)
			continue
		case err != nil:
			return err
		}
		if src.Tier == mappings.TierUser {
			entries = mappings.StripComments(entries)
		}
		fmt.Fprintf(out, "%-14s %s (%d exercises)\n", src.Tier.String()+":", src.Path, len(entries))
		tables = append(tables, entries)
	}

	mapping := mappings.Merge(tables...)
	fmt.Fprintf(out, "%-14s %d exercises\n", "merged:", len(mapping))

	var missing int
	for _, list := range exerciseLists {
		names, err := mappings.ReadExerciseList(list)
		if err != nil {
			return err
		}
		unmapped := mapping.Unmapped(names)
		fmt.Fprintf(out, "\n%s: %d/%d mapped\n", list, len(names)-len(unmapped), len(names))
		for _, name := range unmapped {
			fmt.Fprintf(out, "  - %s\n", name)
		}
		missing += len(unmapped)
	}

	if missing > 0 {
		return fmt.Errorf("%d exercise(s) have no mapping", missing)
	}
	return nil
}

// =============================================================================
// PREVIEW
// =============================================================================

func runMappingsPreview(out io.Writer) error {
	mapping, err := mappings.Load(cfg.MappingSources(), logger)
	if err != nil {
		return err
	}
	table, err := readTable(previewInput, cfg)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", previewInput, err)
	}

	entries := report.BuildEntries(exerciseNames(table), mapping)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FITNOTES EXERCISE\tHEVY EXERCISE\tSTATUS\tSETS")
	unmapped := 0
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.FitNotes, e.Hevy, e.Status(), e.Sets)
		if !e.Mapped {
			unmapped++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d exercises, %d unmapped\n", len(entries), unmapped)

	if previewXLSX != "" {
		if err := report.Write(previewXLSX, entries, nil); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", previewXLSX)
	}
	return nil
}

// =============================================================================
// ADD
// =============================================================================

func runMappingsAdd(out io.Writer, fitnotesName, hevyName string) error {
	path := userTierPath()
	changed, err := mappings.AddUserMappings(path, map[string]string{fitnotesName: hevyName})
	if err != nil {
		return err
	}

	if changed == 0 {
		fmt.Fprintf(out, "%q already maps to %q in %s\n", fitnotesName, hevyName, path)
		return nil
	}
	logger.Info("saved user mapping", "fitnotes", fitnotesName, "hevy", hevyName, "path", path)
	fmt.Fprintf(out, "Saved %q -> %q to %s\n", fitnotesName, hevyName, path)
	return nil
}

// =============================================================================
// REMOVE / IMPORT
// =============================================================================

func runMappingsRemove(out io.Writer, names []string) error {
	path := userTierPath()
	removed, err := mappings.RemoveUserMappings(path, names)
	if err != nil {
		return err
	}
	logger.Info("removed user mappings", "count", removed, "path", path)
	fmt.Fprintf(out, "Removed %d mapping(s) from %s\n", removed, path)
	return nil
}

func runMappingsImport(out io.Writer, src string) error {
	path := userTierPath()
	changed, err := mappings.ImportUserMappings(path, src)
	if err != nil {
		return err
	}
	logger.Info("imported user mappings", "source", src, "changed", changed, "path", path)
	fmt.Fprintf(out, "Imported %s: %d mapping(s) added or changed in %s\n", src, changed, path)
	return nil
}

func userTierPath() string {
	return filepath.Join(cfg.Mappings.Dir, cfg.Mappings.User)
}
