// =============================================================================
// FitNotes2Hevy - Main Entry Point
// =============================================================================
//
// USAGE:
//   fitnotes2hevy convert -i export.csv  - Convert a FitNotes export
//   fitnotes2hevy validate               - Check config and mapping files
//   fitnotes2hevy mappings ...           - Inspect and extend exercise mappings
//   fitnotes2hevy version                - Display the application version
//
// LAYOUT:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Conversion logic, parsers, writers, config
//   - pkg/           : File helpers
//   - data/mappings/ : Exercise name mapping tiers
//
// =============================================================================

package main

import (
	"github.com/alanjonesit/FitNotes2Hevy/cmd"
)

func main() {
	cmd.Execute()
}
