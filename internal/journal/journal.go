// Package journal records one row per processed hook event into a
// local SQLite database, giving the status and history commands a view
// of what the dispatcher decided and why. The journal is observability
// only: failures here are logged and swallowed so a broken database can
// never block a sound from playing.
package journal

import (
	"github.com/roasbeef/codex-peon/internal/category"
)

// Outcome is the terminal result of one admission run.
type Outcome string

const (
	// OutcomePlayed means a playback attempt was made.
	OutcomePlayed Outcome = "played"

	// OutcomeNoCategory means the fallback chain was exhausted with no
	// enabled category.
	OutcomeNoCategory Outcome = "no_category"

	// OutcomeCooldown means the resolved category was still cooling
	// down.
	OutcomeCooldown Outcome = "cooldown"

	// OutcomeOverlap means a previous playback process was still
	// alive.
	OutcomeOverlap Outcome = "overlap"

	// OutcomeNoSound means no manifest, category, or file resolved to
	// a playable sound.
	OutcomeNoSound Outcome = "no_sound"
)

// Entry is one journal row: the classification trail of a single
// processed event.
type Entry struct {
	// ID is a random identifier assigned at insert.
	ID string

	// Timestamp is the unix time the event was processed.
	Timestamp float64

	// Thread is the thread key the event arrived on.
	Thread string

	// Classified is the category the keyword classifier produced.
	Classified category.Category

	// Chosen is the category after greeting/annoyed overrides.
	Chosen category.Category

	// Resolved is the enabled category after fallback, empty when the
	// chain was exhausted.
	Resolved category.Category

	// Outcome is the admission result.
	Outcome Outcome

	// SoundFile is the manifest file name that played, empty when
	// nothing played.
	SoundFile string

	// PID is the playback process id, zero when none was recorded.
	PID int
}
