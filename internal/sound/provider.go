package sound

import (
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/roasbeef/codex-peon/internal/category"
	"github.com/roasbeef/codex-peon/internal/state"
)

// Selection is a resolved sound: the absolute file path and the
// category the file was actually drawn from, which may be a fallback of
// the requested category.
type Selection struct {
	// Path is the absolute path of the sound file.
	Path string

	// File is the manifest-relative file name, recorded for
	// anti-repeat tracking.
	File string

	// Category is the manifest category the file came from.
	Category category.Category
}

// Provider picks a playable sound for a category. Implementations walk
// the category fallback chain at the pack level and avoid repeating the
// last file played for the same pack and category when alternatives
// exist.
type Provider interface {
	// Pick resolves a sound for the pack and category, updating the
	// anti-repeat memory in st. Returns None when no manifest,
	// category, or file resolves.
	Pick(pack string, cat category.Category,
		st *state.State) fn.Option[Selection]
}

// DirProvider resolves sounds from a packs directory on disk.
type DirProvider struct {
	packsDir string
}

// NewDirProvider returns a Provider rooted at the given packs
// directory.
func NewDirProvider(packsDir string) *DirProvider {
	return &DirProvider{
		packsDir: packsDir,
	}
}

// Pick resolves a sound file for the given pack and category. The
// configured pack is tried first, falling back to the default pack when
// its manifest is unusable. Within the manifest, the category fallback
// chain is walked in order; the first category with an existing file on
// disk wins. The last file played for the same pack:category is avoided
// when alternatives exist.
func (p *DirProvider) Pick(pack string, cat category.Category,
	st *state.State) fn.Option[Selection] {

	manifest := LoadManifest(p.packsDir, pack)
	if manifest == nil {
		pack = DefaultPack
		manifest = LoadManifest(p.packsDir, pack)
	}
	if manifest == nil || manifest.Categories == nil {
		return fn.None[Selection]()
	}

	for _, candidate := range category.ResolutionOrder(cat) {
		entry, ok := manifest.Categories[candidate]
		if !ok {
			continue
		}

		files := make([]string, 0, len(entry.Sounds))
		for _, s := range entry.Sounds {
			if s.File != "" {
				files = append(files, s.File)
			}
		}
		if len(files) == 0 {
			continue
		}

		picked := p.choose(files, st, pack, candidate)

		soundPath := filepath.Join(
			p.packsDir, pack, soundsSubdir, picked,
		)
		if _, err := os.Stat(soundPath); err != nil {
			continue
		}

		return fn.Some(Selection{
			Path:     soundPath,
			File:     picked,
			Category: candidate,
		})
	}

	return fn.None[Selection]()
}

// choose picks a file at random, excluding the last-played file for the
// pack and category when more than one option exists, and records the
// pick in the anti-repeat memory.
func (p *DirProvider) choose(files []string, st *state.State, pack string,
	cat category.Category) string {

	key := state.LastPlayedKey(pack, cat)

	candidates := files
	if len(files) > 1 {
		last := st.LastPlayed[key]

		fresh := make([]string, 0, len(files))
		for _, f := range files {
			if f != last {
				fresh = append(fresh, f)
			}
		}
		if len(fresh) > 0 {
			candidates = fresh
		}
	}

	picked := candidates[rand.IntN(len(candidates))]
	st.LastPlayed[key] = picked

	return picked
}

// Ensure DirProvider implements Provider at compile time.
var _ Provider = (*DirProvider)(nil)
