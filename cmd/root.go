// =============================================================================
// FitNotes2Hevy - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (fitnotes2hevy)
//   ├── convertCmd  (fitnotes2hevy convert)
//   ├── validateCmd (fitnotes2hevy validate)
//   ├── mappingsCmd (fitnotes2hevy mappings)
//   │   ├── check
//   │   ├── preview
//   │   ├── add
//   │   ├── remove
//   │   └── import
//   └── versionCmd  (fitnotes2hevy version)
//
// CONFIGURATION:
//   Before any command runs, the root command:
//   1. Loads config.yaml (or the --config file)
//   2. Applies FITNOTES2HEVY_* environment variables and explicit flags
//   3. Validates the result
//   4. Sets up logging on stderr
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alanjonesit/FitNotes2Hevy/internal/config"
	"github.com/alanjonesit/FitNotes2Hevy/internal/logging"
	"github.com/alanjonesit/FitNotes2Hevy/internal/validation"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// overrides collects environment variables and bound flags.
var overrides = config.NewViper()

// cfg and logger are ready once initConfig has run.
var (
	cfg    *config.Config
	logger *slog.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fitnotes2hevy",
	Short: "Convert FitNotes workout exports to the Hevy/Strong CSV import format",
	Long: `fitnotes2hevy converts a FitNotes spreadsheet export (Settings → Spreadsheet
Export → Workout Data) into a CSV file that Hevy can import as Strong data.

Exercise names are translated with three mapping files, later files winning:
  default.json  - stock FitNotes exercises
  extra.json    - common custom exercises
  custom.json   - your own overrides (optional)

Example Usage:
  fitnotes2hevy convert -i FitNotes_Export.csv
  fitnotes2hevy convert -i export.csv -o hevy.csv --timezone 5.5 --time 18:00
  fitnotes2hevy mappings preview -i export.csv
  fitnotes2hevy mappings add "Sled Push" "Sled Push"`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called once by main.main().
//
// EXIT CODES:
//   - 0: success
//   - 1: configuration, I/O or conversion failure
//   - 2: the input is not a usable FitNotes export
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if validation.IsInputError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", config.DefaultPath,
		"Path to the configuration file (optional unless given explicitly)")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	flags.String("mappings-dir", "",
		"Directory holding default.json, extra.json and custom.json")
	flags.String("log-format", "",
		"Log format: text or json")

	bindFlag(config.KeyMappingsDir, flags.Lookup("mappings-dir"))
	bindFlag(config.KeyLogFormat, flags.Lookup("log-format"))
}

// initConfig loads, overrides and validates the configuration and sets up
// logging.
func initConfig(cmd *cobra.Command) error {
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOptional(cfgFile)
	}
	if err != nil {
		return err
	}

	if err := config.ApplyOverrides(cfg, overrides); err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "path", cfgFile, "mappings_dir", cfg.Mappings.Dir)
	return nil
}
