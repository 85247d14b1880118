// Package commands implements the codex-peon CLI: the notify-hook
// entry point plus the local controls for pausing, switching packs,
// previewing sounds, and editing configuration.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// peonDirFlag overrides the peon home directory, mirroring the
	// CODEX_PEON_DIR environment variable.
	peonDirFlag string

	// debugFlag mirrors log output to stderr at debug level.
	debugFlag bool
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "codex-peon",
	Short: "Codex notify sound hook and controls",
	Long: `codex-peon plays short sound cues for Codex agent events.

It runs as a notify hook (a JSON payload as the first argument) and
doubles as the control CLI for pausing sounds, switching sound packs,
previewing categories, and editing the policy configuration.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&peonDirFlag, "dir", "",
		"Peon home directory (default: $CODEX_PEON_DIR or "+
			"~/.codex/hooks/codex-peon)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&debugFlag, "debug", false,
		"Mirror debug logs to stderr",
	)
}
