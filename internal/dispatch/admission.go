package dispatch

import (
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/roasbeef/codex-peon/internal/category"
	"github.com/roasbeef/codex-peon/internal/config"
	"github.com/roasbeef/codex-peon/internal/journal"
	"github.com/roasbeef/codex-peon/internal/sound"
	"github.com/roasbeef/codex-peon/internal/state"
)

// decision is the result of one admission run.
type decision struct {
	// outcome records which gate terminated admission.
	outcome journal.Outcome

	// resolved is the enabled category after fallback, empty when the
	// chain was exhausted.
	resolved category.Category

	// selection is the sound that played, set only for a played
	// outcome.
	selection fn.Option[sound.Selection]

	// pid is the playback process id, set only when playback launched
	// with a live backend.
	pid fn.Option[int]
}

// played reports whether a playback attempt was made.
func (d decision) played() bool {
	return d.outcome == journal.OutcomePlayed
}

// resolveEnabled walks the category and its fallback chain, returning
// the first category enabled in config, or None when every link in the
// chain is disabled.
func resolveEnabled(cfg *config.Config,
	cat category.Category) fn.Option[category.Category] {

	for _, candidate := range category.ResolutionOrder(cat) {
		if cfg.CategoryEnabled(candidate) {
			return fn.Some(candidate)
		}
	}

	return fn.None[category.Category]()
}

// onCooldown reports whether the resolved category is still inside its
// cooldown window. A category that has never played is never on
// cooldown.
func onCooldown(cfg *config.Config, st *state.State,
	cat category.Category, now float64) bool {

	cooldown := cfg.CooldownFor(cat)
	if cooldown <= 0 {
		return false
	}

	last := st.LastCategoryTS[cat]
	if last <= 0 {
		return false
	}

	return now-last < cooldown
}

// overlapBlocked reports whether a previous playback process is still
// alive while overlap prevention is on. A recorded pid that is no
// longer running is cleared as a side effect, so stale markers never
// block playback twice.
func (d *Dispatcher) overlapBlocked(cfg *config.Config,
	st *state.State) bool {

	if !cfg.PreventOverlap {
		return false
	}

	if st.PlaybackPID != nil && d.prober.Alive(*st.PlaybackPID) {
		return true
	}

	st.PlaybackPID = nil

	return false
}

// maybePlay runs the admission gates in order for the chosen category:
// fallback resolution, cooldown, overlap, sound selection, playback.
// Each gate short-circuits to a no-op decision. On playback the actual
// category used (which may be a pack-level fallback of the resolved
// one) gets its cooldown stamped and the returned pid, if any, becomes
// the new overlap marker. A playback launch with no backend still
// counts as played so a broken audio setup is not hammered retry after
// retry.
func (d *Dispatcher) maybePlay(cfg *config.Config, st *state.State,
	cat category.Category, now float64) decision {

	resolvedOpt := resolveEnabled(cfg, cat)
	if resolvedOpt.IsNone() {
		return decision{outcome: journal.OutcomeNoCategory}
	}
	resolved := resolvedOpt.UnwrapOr(cat)

	if onCooldown(cfg, st, resolved, now) {
		return decision{
			outcome:  journal.OutcomeCooldown,
			resolved: resolved,
		}
	}

	if d.overlapBlocked(cfg, st) {
		return decision{
			outcome:  journal.OutcomeOverlap,
			resolved: resolved,
		}
	}

	selOpt := d.sounds.Pick(cfg.ActivePack, resolved, st)
	if selOpt.IsNone() {
		return decision{
			outcome:  journal.OutcomeNoSound,
			resolved: resolved,
		}
	}
	sel := selOpt.UnwrapOr(sound.Selection{})

	pidOpt := d.player.Play(sel.Path, cfg.Volume)

	st.PlaybackPID = nil
	pidOpt.WhenSome(func(pid int) {
		st.PlaybackPID = &pid
	})
	st.LastCategoryTS[sel.Category] = now

	return decision{
		outcome:   journal.OutcomePlayed,
		resolved:  resolved,
		selection: selOpt,
		pid:       pidOpt,
	}
}
