package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/build"
)

var hookCmd = &cobra.Command{
	Use:   "hook [payload]",
	Short: "Process a notify-hook payload",
	Long: `Process a single Codex notify-hook JSON payload.

The payload is taken from the first argument, or read from stdin when
no argument is given. Only "agent-turn-complete" events trigger
playback; any other or malformed payload is ignored. This command never
fails: the hook contract is "no playback, no crash".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, args []string) error {
	var raw []byte
	if len(args) == 1 {
		raw = []byte(args[0])
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			// Nothing to process; the hook stays silent.
			return nil
		}
		raw = data
	}

	return HandleHookPayload(raw)
}

// HandleHookPayload dispatches one raw hook payload. It is called both
// by the hook subcommand and by main when the first argument is a bare
// JSON object (the original hook invocation shape). Always returns nil;
// hook failures must never surface to the agent.
func HandleHookPayload(raw []byte) error {
	dir, err := peonDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "codex-peon: %v\n", err)
		return nil
	}

	log, flush := build.NewLogger(dir, debugFlag)
	defer flush()

	d, cleanup := newDispatcher(dir, log)
	defer cleanup()

	res := d.HandleEvent(raw)
	if res.Processed {
		log.Info("hook event handled",
			"thread", res.Thread,
			"chosen", res.Chosen,
			"outcome", res.Outcome,
		)
	}

	return nil
}
