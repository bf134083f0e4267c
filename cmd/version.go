// =============================================================================
// FitNotes2Hevy - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   fitnotes2hevy version
//
// OUTPUT:
//   FitNotes2Hevy
//   Version:    1.0.0
//   Build Date: 2025-11-19
//   Go Version: go1.24.11
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These are set at build time:
//   go build -ldflags "-X 'github.com/alanjonesit/FitNotes2Hevy/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// versionCmd prints build information. It needs no configuration.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },

	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "FitNotes2Hevy")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
