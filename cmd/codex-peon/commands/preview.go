package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/build"
	"github.com/roasbeef/codex-peon/internal/category"
	"github.com/roasbeef/codex-peon/internal/sound"
)

var previewCmd = &cobra.Command{
	Use:   "preview [category]",
	Short: "Play a test sound",
	Long: `Pick and play a sound for the given category (default
acknowledge), bypassing cooldown and overlap gates. Consecutive
previews still avoid repeating the same file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cat := category.Acknowledge
	if len(args) == 1 {
		cat = category.Category(args[0])
		if !category.Valid(cat) {
			return fmt.Errorf("category must be one of: %v",
				category.All)
		}
	}

	dir, err := peonDir()
	if err != nil {
		return err
	}

	log, flush := build.NewLogger(dir, debugFlag)
	defer flush()

	d, cleanup := newDispatcher(dir, log)
	defer cleanup()

	selOpt := d.Preview(cat)
	if selOpt.IsNone() {
		return fmt.Errorf("no sound found for category %q", cat)
	}
	sel := selOpt.UnwrapOr(sound.Selection{})

	printPeonf("played %s -> %s", sel.Category, sel.File)

	return nil
}
