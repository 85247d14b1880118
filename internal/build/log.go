package build

import (
	"io"
	"log/slog"
	"os"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
)

// NewLogger builds the process logger: a btclog handler writing to the
// rotating file under <dir>/logs, mirrored to stderr when debug is on.
// Stdout is never written to, since hook output on stdout belongs to
// the hook protocol.
//
// The returned cleanup flushes the rotator and must be called before
// exit. Logging setup failures fall back to a stderr-only logger rather
// than failing the invocation.
func NewLogger(dir string, debug bool) (*slog.Logger, func()) {
	level := btclog.LevelInfo
	if debug {
		level = btclog.LevelDebug
	}

	rotating, err := NewRotatingLogWriter(dir)
	if err != nil {
		handler := btclogv2.NewDefaultHandler(os.Stderr)
		handler.SetLevel(level)

		return slog.New(handler), func() {}
	}

	var w io.Writer = rotating
	if debug {
		w = io.MultiWriter(rotating, os.Stderr)
	}

	handler := btclogv2.NewDefaultHandler(w)
	handler.SetLevel(level)

	cleanup := func() {
		_ = rotating.Close()
	}

	return slog.New(handler), cleanup
}
