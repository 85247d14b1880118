package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display the version, commit hash, and build metadata.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// runVersion prints the version and build information.
func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("codex-peon version %s", build.Version())

	if build.Commit != "" {
		fmt.Printf(" commit=%s", build.Commit)
	}
	if build.GoVersion != "" {
		fmt.Printf(" go=%s", build.GoVersion)
	}

	fmt.Println()
}
