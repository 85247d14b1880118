package commands

import (
	"fmt"
	"log/slog"

	"github.com/roasbeef/codex-peon/internal/config"
	"github.com/roasbeef/codex-peon/internal/dispatch"
	"github.com/roasbeef/codex-peon/internal/journal"
	"github.com/roasbeef/codex-peon/internal/player"
	"github.com/roasbeef/codex-peon/internal/sound"
	"github.com/roasbeef/codex-peon/internal/state"
)

// peonDir resolves the peon home directory from the --dir flag or the
// environment/home default.
func peonDir() (string, error) {
	if peonDirFlag != "" {
		return peonDirFlag, nil
	}

	return config.DefaultDir()
}

// openJournal opens the playback journal under dir. The journal is
// observability only, so failures degrade to a nil recorder with a
// warning instead of failing the command.
func openJournal(dir string, log *slog.Logger) *journal.Store {
	store, err := journal.Open(dir)
	if err != nil {
		log.Warn("journal unavailable", "err", err)
		return nil
	}

	return store
}

// newDispatcher wires a dispatcher over the given peon home dir. The
// returned cleanup closes the journal and flushes logs.
func newDispatcher(dir string, log *slog.Logger) (*dispatch.Dispatcher,
	func()) {

	jnl := openJournal(dir, log)

	// A nil *journal.Store must stay a nil interface value.
	var recorder dispatch.Recorder
	if jnl != nil {
		recorder = jnl
	}

	d := dispatch.NewDispatcher(dispatch.DispatcherConfig{
		Config: dispatch.DirConfigProvider{Dir: dir},
		State:  state.NewFileStore(dir),
		Sounds: sound.NewDirProvider(sound.PacksDir(dir)),
		Player: player.NewExecPlayer(log),
		Paused: func() bool {
			return config.Paused(dir)
		},
		Journal: recorder,
		Logger:  log,
	})

	cleanup := func() {
		if jnl != nil {
			_ = jnl.Close()
		}
	}

	return d, cleanup
}

// printPeonf prints a user-facing status line with the codex-peon
// prefix the original hook used.
func printPeonf(format string, args ...any) {
	fmt.Printf("codex-peon: "+format+"\n", args...)
}
