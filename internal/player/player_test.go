package player

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSignalProberSelf verifies the probe sees our own live process.
func TestSignalProberSelf(t *testing.T) {
	t.Parallel()

	require.True(t, SignalProber{}.Alive(os.Getpid()))
}

// TestSignalProberDeadProcess verifies a reaped child is reported dead.
func TestSignalProberDeadProcess(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("true")
	require.NoError(t, cmd.Start())
	require.NoError(t, cmd.Wait())

	require.False(t, SignalProber{}.Alive(cmd.Process.Pid))
}

// TestSignalProberInvalidPIDs verifies non-positive pids never count as
// alive.
func TestSignalProberInvalidPIDs(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, -4242} {
		require.False(t, SignalProber{}.Alive(pid), "pid %d", pid)
	}
}

// TestFormatVolume verifies the volume rendering used on player command
// lines.
func TestFormatVolume(t *testing.T) {
	t.Parallel()

	tests := []struct {
		volume float64
		want   string
	}{
		{0, "0"},
		{0.5, "0.5"},
		{1, "1"},
		{0.25, "0.25"},
	}
	for _, test := range tests {
		require.Equal(t, test.want, formatVolume(test.volume))
	}
}

// TestDetectPlatformKnown verifies detection lands on a defined
// platform value for the host.
func TestDetectPlatformKnown(t *testing.T) {
	t.Parallel()

	switch p := DetectPlatform(); p {
	case PlatformMac, PlatformLinux, PlatformWSL, PlatformUnknown:
	default:
		t.Fatalf("unexpected platform %q", p)
	}
}
