// Package dispatch implements the event decision core: classifying an
// inbound hook event, updating the burst and greeting trackers, and
// admitting at most one playback per event through the fallback,
// cooldown, and overlap gates. All failure paths degrade to "no
// playback, no crash"; nothing in this package returns an error to the
// hook entry point.
package dispatch

import (
	"log/slog"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/roasbeef/codex-peon/internal/category"
	"github.com/roasbeef/codex-peon/internal/config"
	"github.com/roasbeef/codex-peon/internal/journal"
	"github.com/roasbeef/codex-peon/internal/player"
	"github.com/roasbeef/codex-peon/internal/sound"
	"github.com/roasbeef/codex-peon/internal/state"
)

// ConfigProvider supplies a fully-defaulted config snapshot. One
// snapshot is loaded per event; the decision procedure never re-reads
// config mid-flight.
type ConfigProvider interface {
	// Load returns the merged configuration snapshot.
	Load() (*config.Config, error)
}

// DirConfigProvider loads the merged config.json from a peon home
// directory.
type DirConfigProvider struct {
	// Dir is the peon home directory.
	Dir string
}

// Load returns the merged configuration snapshot from Dir.
func (p DirConfigProvider) Load() (*config.Config, error) {
	return config.Load(p.Dir)
}

// Recorder receives one journal entry per processed event. Append
// errors are logged by the dispatcher and otherwise ignored.
type Recorder interface {
	// Append records a journal entry.
	Append(journal.Entry) error
}

// DispatcherConfig wires the dispatcher's collaborators. Zero-valued
// optional fields (Prober, Paused, Journal, Clock, Logger) get safe
// defaults.
type DispatcherConfig struct {
	// Config supplies the policy snapshot per event.
	Config ConfigProvider

	// State persists session state between invocations.
	State state.Store

	// Sounds resolves pack sound files.
	Sounds sound.Provider

	// Player launches playback.
	Player player.Player

	// Prober checks recorded playback pids for liveness.
	Prober player.Prober

	// Paused reports the external pause flag. Nil means never paused.
	Paused func() bool

	// Journal records decision outcomes. Nil disables journaling.
	Journal Recorder

	// Clock returns now. Nil means time.Now; tests inject a fake.
	Clock func() time.Time

	// Logger receives structured dispatch logs.
	Logger *slog.Logger
}

// Dispatcher is the per-event orchestration core.
type Dispatcher struct {
	cfg     ConfigProvider
	state   state.Store
	sounds  sound.Provider
	player  player.Player
	prober  player.Prober
	paused  func() bool
	journal Recorder
	clock   func() time.Time
	log     *slog.Logger
}

// NewDispatcher creates a dispatcher from the given collaborators.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Prober == nil {
		cfg.Prober = player.SignalProber{}
	}
	if cfg.Paused == nil {
		cfg.Paused = func() bool { return false }
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Dispatcher{
		cfg:     cfg.Config,
		state:   cfg.State,
		sounds:  cfg.Sounds,
		player:  cfg.Player,
		prober:  cfg.Prober,
		paused:  cfg.Paused,
		journal: cfg.Journal,
		clock:   cfg.Clock,
		log:     cfg.Logger.With("component", "dispatch"),
	}
}

// Result summarizes what one entry point invocation decided. It is a
// success/no-op signal, never an error: malformed or foreign events
// simply come back with Processed false.
type Result struct {
	// Processed is true when the event passed the type, enabled, and
	// pause gates and ran through admission.
	Processed bool

	// Thread is the thread key the event arrived on.
	Thread string

	// Classified is the keyword classifier's category.
	Classified category.Category

	// Chosen is the category after greeting/annoyed overrides.
	Chosen category.Category

	// Resolved is the enabled category after fallback, empty when the
	// chain was exhausted.
	Resolved category.Category

	// Outcome is the admission outcome, empty when not processed.
	Outcome journal.Outcome

	// Played is true when a playback attempt was made.
	Played bool

	// SoundFile is the manifest file that played, when one did.
	SoundFile string
}

// HandleEvent processes one raw hook payload end to end: parse, gate,
// track, choose a category, admit, journal, and persist state. State is
// saved whenever trackers ran, whether or not playback occurred; an
// event that aborts at admission still advances the event clock and
// thread set.
func (d *Dispatcher) HandleEvent(raw []byte) Result {
	payload := parsePayload(raw)
	if payload == nil || payload.Type != EventTypeTurnComplete {
		return Result{}
	}

	cfg := d.loadConfig()
	if !cfg.Enabled || d.paused() {
		return Result{}
	}

	st := d.loadState()
	now := unixSeconds(d.clock())
	thread := payload.threadKey()

	// Both trackers run unconditionally; their side effects are part
	// of the event clock whether or not anything plays.
	rapidCount := trackRapidTurns(
		st, thread, now, cfg.AnnoyedWindowSeconds,
	)
	sessionStart := isSessionStart(
		st, thread, now, cfg.SessionStartIdleSeconds,
	)

	classified := category.Classify(
		payload.LastAssistantMessage, cfg.Keywords,
	)
	chosen := chooseCategory(
		cfg, classified, sessionStart, rapidCount,
	)

	dec := d.maybePlay(cfg, st, chosen, now)

	d.record(journal.Entry{
		Timestamp:  now,
		Thread:     thread,
		Classified: classified,
		Chosen:     chosen,
		Resolved:   dec.resolved,
		Outcome:    dec.outcome,
		SoundFile:  selectionFile(dec.selection),
		PID:        dec.pid.UnwrapOr(0),
	})

	d.saveState(st)

	d.log.Debug("event dispatched",
		"thread", thread,
		"classified", classified,
		"chosen", chosen,
		"outcome", dec.outcome,
	)

	return Result{
		Processed:  true,
		Thread:     thread,
		Classified: classified,
		Chosen:     chosen,
		Resolved:   dec.resolved,
		Outcome:    dec.outcome,
		Played:     dec.played(),
		SoundFile:  selectionFile(dec.selection),
	}
}

// chooseCategory applies the priority ladder: turn-start greetings
// first, then the priority categories (which bypass annoyance), then
// the annoyed override, then the classified category as-is.
func chooseCategory(cfg *config.Config, classified category.Category,
	sessionStart bool, rapidCount int) category.Category {

	if sessionStart && cfg.GreetOnTurnStart() {
		return category.Greeting
	}

	switch classified {
	case category.Permission, category.Error, category.ResourceLimit:
		return classified
	}

	if rapidCount >= cfg.AnnoyedThreshold &&
		cfg.CategoryEnabled(category.Annoyed) {

		return category.Annoyed
	}

	return classified
}

// PlayLaunchGreeting plays the greeting category on behalf of the
// launch wrapper, honoring the enabled flag, pause flag, and greeting
// mode. Turn-start trackers are not touched; this is not an event.
func (d *Dispatcher) PlayLaunchGreeting() Result {
	cfg := d.loadConfig()
	if !cfg.Enabled || d.paused() || !cfg.GreetOnLaunch() {
		return Result{}
	}

	st := d.loadState()
	now := unixSeconds(d.clock())

	dec := d.maybePlay(cfg, st, category.Greeting, now)
	d.saveState(st)

	return Result{
		Processed: true,
		Chosen:    category.Greeting,
		Resolved:  dec.resolved,
		Outcome:   dec.outcome,
		Played:    dec.played(),
		SoundFile: selectionFile(dec.selection),
	}
}

// Preview picks and plays a sound for the category directly, bypassing
// every admission gate. Anti-repeat memory still advances and is
// persisted so consecutive previews vary.
func (d *Dispatcher) Preview(
	cat category.Category) fn.Option[sound.Selection] {

	cfg := d.loadConfig()
	st := d.loadState()

	selOpt := d.sounds.Pick(cfg.ActivePack, cat, st)
	selOpt.WhenSome(func(sel sound.Selection) {
		d.player.Play(sel.Path, cfg.Volume)
	})

	d.saveState(st)

	return selOpt
}

// loadConfig returns the config snapshot, falling back to defaults so
// a failing provider never blocks dispatch.
func (d *Dispatcher) loadConfig() *config.Config {
	cfg, err := d.cfg.Load()
	if err != nil {
		d.log.Warn("config load failed, using defaults", "err", err)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return cfg
}

// loadState returns the session state, falling back to a fresh state.
func (d *Dispatcher) loadState() *state.State {
	st, err := d.state.Load()
	if err != nil || st == nil {
		if err != nil {
			d.log.Warn("state load failed, starting fresh",
				"err", err)
		}
		st = state.New()
	}

	return st
}

// saveState persists the session state; failures are logged, never
// surfaced.
func (d *Dispatcher) saveState(st *state.State) {
	if err := d.state.Save(st); err != nil {
		d.log.Warn("state save failed", "err", err)
	}
}

// record appends a journal entry when a recorder is wired; failures are
// logged, never surfaced.
func (d *Dispatcher) record(e journal.Entry) {
	if d.journal == nil {
		return
	}

	if err := d.journal.Append(e); err != nil {
		d.log.Warn("journal append failed", "err", err)
	}
}

// selectionFile extracts the manifest file name from an optional
// selection.
func selectionFile(sel fn.Option[sound.Selection]) string {
	var file string
	sel.WhenSome(func(s sound.Selection) {
		file = s.File
	})

	return file
}

// unixSeconds converts a time to float unix seconds, the clock unit the
// state file and cooldown math use.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
