package build

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
)

const (
	// defaultMaxLogFiles is the number of rotated log files kept on
	// disk before the oldest is deleted.
	defaultMaxLogFiles = 3

	// defaultMaxLogFileSizeMB is the size a log file may reach before
	// rotation, in megabytes. Hook invocations log a handful of lines
	// each, so these stay small.
	defaultMaxLogFileSizeMB = 5

	// LogFilename is the log file name inside the logs directory.
	LogFilename = "codex-peon.log"
)

// RotatingLogWriter is an io.Writer feeding a size-limited, gzip
// compressed log file rotation under the peon logs directory.
type RotatingLogWriter struct {
	pipe *io.PipeWriter
	rot  *rotator.Rotator
}

// NewRotatingLogWriter creates the logs directory under the peon home
// dir and starts the rotator goroutine.
func NewRotatingLogWriter(dir string) (*RotatingLogWriter, error) {
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w",
			err)
	}

	rot, err := rotator.New(
		filepath.Join(logDir, LogFilename),
		defaultMaxLogFileSizeMB*1024, false, defaultMaxLogFiles,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create log rotator: %w",
			err)
	}
	rot.SetCompressor(gzip.NewWriter(nil), ".gz")

	pr, pw := io.Pipe()
	go func() {
		if err := rot.Run(pr); err != nil {
			fmt.Fprintf(os.Stderr,
				"log rotator stopped: %v\n", err)
		}
	}()

	return &RotatingLogWriter{
		pipe: pw,
		rot:  rot,
	}, nil
}

// Write feeds the rotator pipe.
func (w *RotatingLogWriter) Write(p []byte) (int, error) {
	return w.pipe.Write(p)
}

// Close flushes and stops the rotator.
func (w *RotatingLogWriter) Close() error {
	return w.pipe.Close()
}
