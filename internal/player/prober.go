package player

import (
	"os"
	"syscall"
)

// Prober answers whether a previously recorded playback process is
// still running. The probe must be non-blocking: it only asks the
// kernel whether the pid exists, never waits on it.
type Prober interface {
	// Alive reports whether the process with the given pid is still
	// running. Non-positive pids are never alive.
	Alive(pid int) bool
}

// SignalProber probes liveness with a null signal, the conventional
// non-destructive existence check.
type SignalProber struct{}

// Alive sends signal 0 to the pid and reports whether delivery would
// succeed.
func (SignalProber) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return proc.Signal(syscall.Signal(0)) == nil
}

// Ensure SignalProber implements Prober at compile time.
var _ Prober = (*SignalProber)(nil)
