package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/build"
	"github.com/roasbeef/codex-peon/internal/config"
	"github.com/roasbeef/codex-peon/internal/journal"
)

// outcomeWindow is how far back the status command counts journal
// outcomes.
const outcomeWindow = 24 * time.Hour

// outcomeWindowStart returns the unix-seconds floor for the status
// outcome counts.
func outcomeWindowStart(now time.Time) float64 {
	return float64(now.Add(-outcomeWindow).Unix())
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status",
	Long: `Show whether sounds are active, the current pack, and recent
dispatch outcomes from the playback journal.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	stateLabel := "active"
	if config.Paused(dir) {
		stateLabel = "paused"
	}

	printPeonf("%s, pack=%s, enabled=%v",
		stateLabel, cfg.ActivePack, cfg.Enabled)

	log, flush := build.NewLogger(dir, debugFlag)
	defer flush()

	jnl := openJournal(dir, log)
	if jnl == nil {
		return nil
	}
	defer jnl.Close()

	counts, err := jnl.OutcomeCounts(outcomeWindowStart(time.Now()))
	if err != nil || len(counts) == 0 {
		return nil
	}

	fmt.Println("outcomes (last 24h):")
	for _, outcome := range []journal.Outcome{
		journal.OutcomePlayed, journal.OutcomeCooldown,
		journal.OutcomeOverlap, journal.OutcomeNoSound,
		journal.OutcomeNoCategory,
	} {
		if n := counts[outcome]; n > 0 {
			fmt.Printf("  %-12s %d\n",
				journal.Entry{Outcome: outcome}.Describe(), n)
		}
	}

	return nil
}
