package commands

import (
	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/config"
)

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable hook playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable hook playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func setEnabled(enabled bool) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	cfg.Enabled = enabled
	if err := config.Save(dir, cfg); err != nil {
		return err
	}

	if enabled {
		printPeonf("enabled")
	} else {
		printPeonf("disabled")
	}

	return nil
}
