// Package state holds the durable per-invocation session state: which
// threads have been seen, recent turn timestamps, cooldown clocks, and
// the last playback process. Every hook invocation loads the state,
// mutates it, and writes it back; concurrent invocations race with
// last-writer-wins semantics, which is an accepted risk rather than a
// designed guarantee.
package state

import (
	"github.com/roasbeef/codex-peon/internal/category"
)

const (
	// MaxSeenThreads caps the seen-thread set. Oldest entries are
	// evicted first.
	MaxSeenThreads = 256

	// MaxTurnTimestamps caps the per-thread rapid-turn window.
	MaxTurnTimestamps = 32
)

// State is the mutable session record shared across hook invocations.
// All bounded collections silently truncate to their caps so the state
// file stays small regardless of run length.
type State struct {
	// LastPlayed maps "pack:category" to the last sound file picked,
	// used to avoid immediate repeats.
	LastPlayed map[string]string `json:"last_played"`

	// LastCategoryTS maps category to the unix time it last played,
	// driving per-category cooldowns.
	LastCategoryTS map[category.Category]float64 `json:"last_category_ts"`

	// SeenThreads is an ordered set of thread keys that have produced
	// at least one event, oldest first.
	SeenThreads []string `json:"seen_threads"`

	// TurnTimestamps maps thread key to recent turn times inside the
	// annoyed window.
	TurnTimestamps map[string][]float64 `json:"turn_timestamps"`

	// LastEventTS is the unix time of the most recent processed event
	// across all threads.
	LastEventTS float64 `json:"last_event_ts"`

	// PlaybackPID is the process id of the most recent playback
	// launch, or nil when none is recorded. Used only as a liveness
	// marker for overlap prevention.
	PlaybackPID *int `json:"playback_pid"`
}

// New returns an empty session state with all maps initialized.
func New() *State {
	return &State{
		LastPlayed:     make(map[string]string),
		LastCategoryTS: make(map[category.Category]float64),
		TurnTimestamps: make(map[string][]float64),
	}
}

// ensureMaps re-initializes any maps a hand-edited or truncated state
// file may have left nil.
func (s *State) ensureMaps() {
	if s.LastPlayed == nil {
		s.LastPlayed = make(map[string]string)
	}
	if s.LastCategoryTS == nil {
		s.LastCategoryTS = make(map[category.Category]float64)
	}
	if s.TurnTimestamps == nil {
		s.TurnTimestamps = make(map[string][]float64)
	}
}

// ThreadSeen reports whether the thread key is already in the seen set.
func (s *State) ThreadSeen(thread string) bool {
	for _, seen := range s.SeenThreads {
		if seen == thread {
			return true
		}
	}

	return false
}

// MarkThreadSeen appends the thread key to the seen set, evicting the
// oldest entries beyond MaxSeenThreads.
func (s *State) MarkThreadSeen(thread string) {
	s.SeenThreads = append(s.SeenThreads, thread)
	if n := len(s.SeenThreads); n > MaxSeenThreads {
		s.SeenThreads = s.SeenThreads[n-MaxSeenThreads:]
	}
}

// RecordTurn keeps only the prior timestamps for the thread that fall
// within window seconds of now, appends now, truncates to the last
// MaxTurnTimestamps entries, and returns the retained count including
// the new entry. The caller compares the count against the annoyed
// threshold.
func (s *State) RecordTurn(thread string, now, window float64) int {
	s.ensureMaps()

	kept := make([]float64, 0, len(s.TurnTimestamps[thread])+1)
	for _, ts := range s.TurnTimestamps[thread] {
		if now-ts <= window {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)

	count := len(kept)
	if count > MaxTurnTimestamps {
		kept = kept[count-MaxTurnTimestamps:]
	}
	s.TurnTimestamps[thread] = kept

	return count
}

// LastPlayedKey builds the anti-repeat map key for a pack and category.
func LastPlayedKey(pack string, cat category.Category) string {
	return pack + ":" + string(cat)
}

// Store persists session state between hook invocations. Durability is
// the implementation's concern; it must tolerate concurrent overwrite
// since hook invocations are unsynchronized.
type Store interface {
	// Load returns the current session state, or a fresh state when
	// nothing usable is persisted.
	Load() (*State, error)

	// Save persists the session state.
	Save(*State) error
}
