package sound

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/codex-peon/internal/category"
	"github.com/roasbeef/codex-peon/internal/state"
)

// writePack creates a pack with one sound per listed category.
func writePack(t *testing.T, packsDir, name string,
	cats map[category.Category][]string) {

	t.Helper()

	soundsDir := filepath.Join(packsDir, name, "sounds")
	require.NoError(t, os.MkdirAll(soundsDir, 0o700))

	manifest := Manifest{
		Name:        name,
		DisplayName: "Test " + name,
		Categories:  make(map[category.Category]ManifestCategory),
	}

	for cat, files := range cats {
		var sounds []ManifestSound
		for _, file := range files {
			sounds = append(sounds, ManifestSound{
				File: file,
				Line: string(cat),
			})

			err := os.WriteFile(
				filepath.Join(soundsDir, file), nil, 0o600,
			)
			require.NoError(t, err)
		}
		manifest.Categories[cat] = ManifestCategory{Sounds: sounds}
	}

	data, err := json.Marshal(manifest)
	require.NoError(t, err)

	err = os.WriteFile(
		filepath.Join(packsDir, name, "manifest.json"), data, 0o600,
	)
	require.NoError(t, err)
}

// fullPack lists one file per category.
func fullPack() map[category.Category][]string {
	cats := make(map[category.Category][]string)
	for _, cat := range category.All {
		cats[cat] = []string{string(cat) + ".wav"}
	}

	return cats
}

// TestPickDirectHit verifies the requested category's own sound wins
// when present.
func TestPickDirectHit(t *testing.T) {
	t.Parallel()

	packsDir := t.TempDir()
	writePack(t, packsDir, "peon", fullPack())

	p := NewDirProvider(packsDir)
	st := state.New()

	selOpt := p.Pick("peon", category.Error, st)
	require.True(t, selOpt.IsSome())

	sel := selOpt.UnwrapOr(Selection{})
	require.Equal(t, category.Error, sel.Category)
	require.Equal(t, "error.wav", sel.File)
	require.FileExists(t, sel.Path)
}

// TestPickWalksFallbackChain verifies a category missing from the
// manifest resolves through its fallback chain.
func TestPickWalksFallbackChain(t *testing.T) {
	t.Parallel()

	packsDir := t.TempDir()
	writePack(t, packsDir, "peon", map[category.Category][]string{
		category.Complete: {"complete.wav"},
	})

	p := NewDirProvider(packsDir)
	st := state.New()

	// greeting -> acknowledge -> complete.
	selOpt := p.Pick("peon", category.Greeting, st)
	require.True(t, selOpt.IsSome())
	require.Equal(t, category.Complete,
		selOpt.UnwrapOr(Selection{}).Category)
}

// TestPickAvoidsImmediateRepeat verifies the last-played file is
// excluded when alternatives exist.
func TestPickAvoidsImmediateRepeat(t *testing.T) {
	t.Parallel()

	packsDir := t.TempDir()
	writePack(t, packsDir, "peon", map[category.Category][]string{
		category.Acknowledge: {"a.wav", "b.wav"},
	})

	p := NewDirProvider(packsDir)
	st := state.New()

	var prev string
	for i := 0; i < 8; i++ {
		selOpt := p.Pick("peon", category.Acknowledge, st)
		require.True(t, selOpt.IsSome())

		file := selOpt.UnwrapOr(Selection{}).File
		if prev != "" {
			require.NotEqual(t, prev, file,
				"round %d repeated %s", i, file)
		}
		prev = file
	}
}

// TestPickSingleFileCanRepeat verifies a category with one file plays
// it every time.
func TestPickSingleFileCanRepeat(t *testing.T) {
	t.Parallel()

	packsDir := t.TempDir()
	writePack(t, packsDir, "peon", map[category.Category][]string{
		category.Acknowledge: {"only.wav"},
	})

	p := NewDirProvider(packsDir)
	st := state.New()

	for i := 0; i < 3; i++ {
		selOpt := p.Pick("peon", category.Acknowledge, st)
		require.True(t, selOpt.IsSome())
		require.Equal(t, "only.wav",
			selOpt.UnwrapOr(Selection{}).File)
	}
}

// TestPickFallsBackToDefaultPack verifies an unknown configured pack
// falls back to the default pack's manifest.
func TestPickFallsBackToDefaultPack(t *testing.T) {
	t.Parallel()

	packsDir := t.TempDir()
	writePack(t, packsDir, DefaultPack, fullPack())

	p := NewDirProvider(packsDir)
	st := state.New()

	selOpt := p.Pick("nope", category.Complete, st)
	require.True(t, selOpt.IsSome())
	require.Equal(t, "complete.wav",
		selOpt.UnwrapOr(Selection{}).File)
}

// TestPickNothingResolves verifies None when no manifest exists at
// all.
func TestPickNothingResolves(t *testing.T) {
	t.Parallel()

	p := NewDirProvider(t.TempDir())

	selOpt := p.Pick("peon", category.Greeting, state.New())
	require.True(t, selOpt.IsNone())
}

// TestPickSkipsMissingFiles verifies a manifest entry whose file is
// absent on disk is skipped in favor of the fallback chain.
func TestPickSkipsMissingFiles(t *testing.T) {
	t.Parallel()

	packsDir := t.TempDir()
	writePack(t, packsDir, "peon", map[category.Category][]string{
		category.Greeting:    {"greeting.wav"},
		category.Acknowledge: {"ack.wav"},
	})

	// Remove greeting's file from disk, leaving the manifest entry.
	require.NoError(t, os.Remove(filepath.Join(
		packsDir, "peon", "sounds", "greeting.wav",
	)))

	p := NewDirProvider(packsDir)
	st := state.New()

	selOpt := p.Pick("peon", category.Greeting, st)
	require.True(t, selOpt.IsSome())
	require.Equal(t, category.Acknowledge,
		selOpt.UnwrapOr(Selection{}).Category)
}

// TestListPacks verifies listing skips malformed manifests and sorts
// by name.
func TestListPacks(t *testing.T) {
	t.Parallel()

	packsDir := t.TempDir()
	writePack(t, packsDir, "zebra", fullPack())
	writePack(t, packsDir, "peon", fullPack())

	// A directory without a manifest is skipped.
	require.NoError(t, os.MkdirAll(
		filepath.Join(packsDir, "broken"), 0o700,
	))

	packs := ListPacks(packsDir)
	require.Len(t, packs, 2)
	require.Equal(t, "peon", packs[0].Name)
	require.Equal(t, "zebra", packs[1].Name)
	require.Equal(t, "Test peon", packs[0].DisplayName)
}

// TestListPacksEmptyDir verifies a missing packs dir lists nothing.
func TestListPacksEmptyDir(t *testing.T) {
	t.Parallel()

	require.Nil(t, ListPacks(
		filepath.Join(t.TempDir(), "missing"),
	))
}
