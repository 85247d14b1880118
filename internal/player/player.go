// Package player launches platform audio playback as fire-and-forget
// subprocesses and probes whether a previous playback process is still
// alive. Nothing here waits on playback; once started, a sound cannot
// be cancelled, only refused via overlap prevention upstream.
package player

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Platform identifies the audio backend family for the host.
type Platform string

const (
	// PlatformMac plays through afplay.
	PlatformMac Platform = "mac"

	// PlatformLinux plays through the first of paplay, aplay, or
	// ffplay found on PATH.
	PlatformLinux Platform = "linux"

	// PlatformWSL plays through powershell.exe's MediaPlayer from
	// inside a WSL environment.
	PlatformWSL Platform = "wsl"

	// PlatformUnknown has no audio backend; playback degrades to a
	// terminal bell.
	PlatformUnknown Platform = "unknown"
)

// Player starts playback of a sound file. Implementations must not
// block on playback completing.
type Player interface {
	// Play starts playback of the file at path with the given volume
	// in [0, 1] and returns the playback process id, or None when no
	// audio backend could be launched. Callers treat None as a played
	// attempt for cooldown purposes; the player emits a terminal bell
	// so the user still gets a minimal cue.
	Play(path string, volume float64) fn.Option[int]
}

// ExecPlayer shells out to the platform audio command.
type ExecPlayer struct {
	platform Platform
	log      *slog.Logger
}

// NewExecPlayer detects the host platform and returns a Player for it.
func NewExecPlayer(log *slog.Logger) *ExecPlayer {
	if log == nil {
		log = slog.Default()
	}

	return &ExecPlayer{
		platform: DetectPlatform(),
		log:      log.With("component", "player"),
	}
}

// DetectPlatform classifies the host for audio backend selection.
func DetectPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMac

	case "linux":
		if isWSL() {
			return PlatformWSL
		}
		return PlatformLinux

	default:
		return PlatformUnknown
	}
}

// isWSL reports whether the Linux kernel release identifies a WSL
// environment.
func isWSL() bool {
	data, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return false
	}

	rel := strings.ToLower(string(data))

	return strings.Contains(rel, "microsoft") ||
		strings.Contains(rel, "wsl")
}

// Play launches the platform audio command for the sound file and
// returns its pid without waiting for playback to finish. When no
// backend is available the terminal bell is written to stderr and None
// is returned.
func (p *ExecPlayer) Play(path string, volume float64) fn.Option[int] {
	var pid fn.Option[int]

	switch p.platform {
	case PlatformMac:
		pid = p.start(
			"afplay", "-v", formatVolume(volume), path,
		)

	case PlatformLinux:
		pid = p.playLinux(path)

	case PlatformWSL:
		pid = p.playWSL(path, volume)
	}

	if pid.IsNone() {
		// Minimal local alert when no platform player exists.
		fmt.Fprint(os.Stderr, "\a")
	}

	return pid
}

// playLinux tries the known Linux CLI players in preference order.
func (p *ExecPlayer) playLinux(path string) fn.Option[int] {
	candidates := [][]string{
		{"paplay", path},
		{"aplay", path},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path},
	}

	for _, cmd := range candidates {
		if _, err := exec.LookPath(cmd[0]); err != nil {
			continue
		}

		return p.start(cmd[0], cmd[1:]...)
	}

	return fn.None[int]()
}

// playWSL converts the sound path to a Windows path and plays it via a
// short-lived powershell MediaPlayer process. MediaPlayer handles wav
// and mp3 and plays asynchronously once opened, so the script sleeps
// long enough to cover a short cue before closing.
func (p *ExecPlayer) playWSL(path string, volume float64) fn.Option[int] {
	if _, err := exec.LookPath("powershell.exe"); err != nil {
		return fn.None[int]()
	}
	if _, err := exec.LookPath("wslpath"); err != nil {
		return fn.None[int]()
	}

	out, err := exec.Command("wslpath", "-w", path).Output()
	if err != nil {
		p.log.Debug("wslpath conversion failed", "path", path,
			"err", err)
		return fn.None[int]()
	}
	winPath := strings.ReplaceAll(
		strings.TrimSpace(string(out)), `\`, "/",
	)

	script := "Add-Type -AssemblyName PresentationCore; " +
		"$p = New-Object System.Windows.Media.MediaPlayer; " +
		fmt.Sprintf("$p.Open([Uri]::new('file:///%s')); ", winPath) +
		fmt.Sprintf("$p.Volume = %s; ", formatVolume(volume)) +
		"Start-Sleep -Milliseconds 150; " +
		"$p.Play(); " +
		"Start-Sleep -Seconds 3; " +
		"$p.Close()"

	return p.start(
		"powershell.exe", "-NoProfile", "-NonInteractive",
		"-Command", script,
	)
}

// start launches the command detached from our stdio and returns its
// pid. Failures are logged and reported as None; the dispatcher treats
// the attempt as played either way.
func (p *ExecPlayer) start(name string, args ...string) fn.Option[int] {
	if _, err := exec.LookPath(name); err != nil {
		return fn.None[int]()
	}

	cmd := exec.Command(name, args...)

	// Leave stdio nil so the child inherits /dev/null; playback output
	// must never leak into the hook protocol on stdout.
	if err := cmd.Start(); err != nil {
		p.log.Debug("failed to start playback", "cmd", name,
			"err", err)
		return fn.None[int]()
	}

	return fn.Some(cmd.Process.Pid)
}

// formatVolume renders a volume float the way the audio CLIs expect.
func formatVolume(volume float64) string {
	return strconv.FormatFloat(volume, 'g', -1, 64)
}

// Ensure ExecPlayer implements Player at compile time.
var _ Player = (*ExecPlayer)(nil)
