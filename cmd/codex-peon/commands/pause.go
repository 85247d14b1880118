package commands

import (
	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/config"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Mute sounds",
	Long:  `Mute all playback until resume, without touching config.`,
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Unmute sounds",
	RunE:  runResume,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle mute",
	RunE:  runToggle,
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(toggleCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	if err := config.SetPaused(dir, true); err != nil {
		return err
	}

	printPeonf("sounds paused")

	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	if err := config.SetPaused(dir, false); err != nil {
		return err
	}

	printPeonf("sounds resumed")

	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	if config.Paused(dir) {
		return runResume(cmd, args)
	}

	return runPause(cmd, args)
}
