// Package sound resolves sound packs: manifest loading, pack listing,
// and the category-fallback file selection with anti-repeat memory.
package sound

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/roasbeef/codex-peon/internal/category"
)

const (
	// DefaultPack is the pack name used when the configured pack has
	// no usable manifest.
	DefaultPack = "peon"

	// manifestFilename is the per-pack manifest file name.
	manifestFilename = "manifest.json"

	// soundsSubdir is the per-pack directory holding the audio files.
	soundsSubdir = "sounds"
)

// Manifest describes a sound pack: its identity and the sound files
// available per category.
type Manifest struct {
	Name        string                                  `json:"name"`
	DisplayName string                                  `json:"display_name"`
	Categories  map[category.Category]ManifestCategory `json:"categories"`
}

// ManifestCategory lists the sounds available for one category.
type ManifestCategory struct {
	Sounds []ManifestSound `json:"sounds"`
}

// ManifestSound is a single playable entry: the file name under the
// pack's sounds directory and the spoken line it contains.
type ManifestSound struct {
	File string `json:"file"`
	Line string `json:"line"`
}

// PackInfo is a pack listing entry.
type PackInfo struct {
	Name        string
	DisplayName string
}

// PacksDir returns the packs directory inside the peon home dir.
func PacksDir(dir string) string {
	return filepath.Join(dir, "packs")
}

// LoadManifest reads and parses the manifest for the named pack under
// packsDir. Returns nil when the manifest is missing or malformed;
// callers treat that as "pack unavailable", never as a hard failure.
func LoadManifest(packsDir, pack string) *Manifest {
	data, err := os.ReadFile(
		filepath.Join(packsDir, pack, manifestFilename),
	)
	if err != nil {
		return nil
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}

	return &m
}

// ListPacks scans packsDir for directories with a parseable manifest
// and returns them sorted by pack name. Malformed manifests are
// skipped.
func ListPacks(packsDir string) []PackInfo {
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		return nil
	}

	var packs []PackInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		m := LoadManifest(packsDir, entry.Name())
		if m == nil {
			continue
		}

		name := m.Name
		if name == "" {
			name = entry.Name()
		}
		display := m.DisplayName
		if display == "" {
			display = name
		}

		packs = append(packs, PackInfo{
			Name:        name,
			DisplayName: display,
		})
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].Name < packs[j].Name
	})

	return packs
}
