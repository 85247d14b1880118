// Package build houses build metadata and the logging backend shared by
// every codex-peon entry point.
package build

import "fmt"

// Version components. Bumped manually on release.
const (
	appMajor uint = 0
	appMinor uint = 2
	appPatch uint = 0

	// appPreRelease marks the release as unstable when non-empty.
	appPreRelease = "beta"
)

var (
	// Commit is the full git commit hash, injected at build time via
	// -ldflags.
	Commit string

	// GoVersion is the Go toolchain version used for the build,
	// injected at build time via -ldflags.
	GoVersion string
)

// Version returns the application version as a properly formed string.
func Version() string {
	version := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)

	if appPreRelease != "" {
		version = fmt.Sprintf("%s-%s", version, appPreRelease)
	}

	return version
}
