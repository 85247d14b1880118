package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/build"
)

// historyLimit is the number of journal entries to show.
var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent dispatch decisions",
	Long: `Show recent entries from the playback journal: what each
event classified as, what was chosen after overrides, and whether a
sound played.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(
		&historyLimit, "limit", "n", 20,
		"Number of entries to show",
	)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	log, flush := build.NewLogger(dir, debugFlag)
	defer flush()

	jnl := openJournal(dir, log)
	if jnl == nil {
		return fmt.Errorf("journal unavailable")
	}
	defer jnl.Close()

	entries, err := jnl.Recent(historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		printPeonf("no journal entries yet")
		return nil
	}

	for _, e := range entries {
		ts := time.Unix(int64(e.Timestamp), 0).Format(time.DateTime)

		line := fmt.Sprintf("%s  %-14s %-14s %s",
			ts, e.Thread, e.Chosen, e.Describe())
		if e.SoundFile != "" {
			line += " -> " + e.SoundFile
		}
		fmt.Println(line)
	}

	return nil
}
