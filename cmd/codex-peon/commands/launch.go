package commands

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/build"
)

var launchCmd = &cobra.Command{
	Use:   "launch [-- codex args...]",
	Short: "Play greeting (if enabled) and launch codex",
	Long: `Play the greeting sound when the greeting mode permits launch
greetings, then replace this process with the codex executable,
forwarding any remaining arguments. Use -- before codex flags.`,
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	log, flush := build.NewLogger(dir, debugFlag)

	d, cleanup := newDispatcher(dir, log)
	d.PlayLaunchGreeting()

	// Flush before exec replaces the process image.
	cleanup()
	flush()

	// The one user-visible hard failure: codex missing from PATH.
	codexExe, err := exec.LookPath("codex")
	if err != nil {
		return fmt.Errorf("'codex' executable not found on PATH")
	}

	argv := append([]string{codexExe}, args...)
	if err := syscall.Exec(codexExe, argv, os.Environ()); err != nil {
		return fmt.Errorf("failed to exec codex: %w", err)
	}

	return nil
}
