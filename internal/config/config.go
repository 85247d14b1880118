// Package config holds the codex-peon policy configuration: which
// categories may play, cooldowns, burst thresholds, and keyword lists
// for the classifier. Configuration is a read-mostly snapshot reloaded
// on every invocation and merged over built-in defaults, so a missing
// or partially written config.json never breaks dispatch.
package config

import (
	"encoding/json"
	"strings"

	"github.com/roasbeef/codex-peon/internal/category"
)

// GreetingMode controls when the greeting category is eligible to play.
type GreetingMode string

const (
	// GreetLaunch plays a greeting only via the launch wrapper.
	GreetLaunch GreetingMode = "launch"

	// GreetTurnStart plays a greeting on the first completed turn of a
	// thread or after an idle gap.
	GreetTurnStart GreetingMode = "turn_start"

	// GreetBoth enables both launch and turn-start greetings.
	GreetBoth GreetingMode = "both"

	// GreetOff disables greetings entirely.
	GreetOff GreetingMode = "off"
)

// CooldownDefaultKey is the cooldowns_seconds entry used for any
// category without an explicit cooldown of its own.
const CooldownDefaultKey = "default"

// Config is the fully populated policy snapshot consumed by the
// dispatcher. Load always returns a Config with every field set, so
// callers never need to re-check for missing keys.
type Config struct {
	// ActivePack names the sound pack used for playback.
	ActivePack string `json:"active_pack"`

	// Volume is the playback volume in [0, 1].
	Volume float64 `json:"volume"`

	// Enabled globally gates hook playback.
	Enabled bool `json:"enabled"`

	// GreetingMode controls greeting eligibility.
	GreetingMode GreetingMode `json:"greeting_mode"`

	// Categories are per-category enable switches. A category missing
	// from the map counts as enabled.
	Categories map[category.Category]bool `json:"categories"`

	// AnnoyedThreshold is the rapid-turn count at which the annoyed
	// category fires. Always >= 2.
	AnnoyedThreshold int `json:"annoyed_threshold"`

	// AnnoyedWindowSeconds is the rolling window for rapid-turn
	// counting. Always >= 1.
	AnnoyedWindowSeconds float64 `json:"annoyed_window_seconds"`

	// SessionStartIdleSeconds is the idle gap after which a thread is
	// treated as a fresh session. Always >= 1.
	SessionStartIdleSeconds float64 `json:"session_start_idle_seconds"`

	// PreventOverlap refuses new playback while a previous playback
	// process is still alive.
	PreventOverlap bool `json:"prevent_overlap"`

	// CooldownsSeconds maps category name to minimum seconds between
	// plays, with a "default" entry for unlisted categories.
	CooldownsSeconds map[string]float64 `json:"cooldowns_seconds"`

	// Keywords are the classifier keyword lists for the priority
	// categories (resource_limit, permission, error).
	Keywords map[category.Category][]string `json:"keywords"`

	// extra carries config.json keys outside the known schema, so the
	// Load/Save round-trip never destroys user additions to the file.
	extra map[string]json.RawMessage
}

// DefaultConfig returns the built-in configuration. The returned value
// shares no state with other callers.
func DefaultConfig() *Config {
	return &Config{
		ActivePack:   "peon",
		Volume:       0.5,
		Enabled:      true,
		GreetingMode: GreetLaunch,
		Categories: map[category.Category]bool{
			category.Greeting:      true,
			category.Acknowledge:   true,
			category.Complete:      true,
			category.Permission:    true,
			category.Error:         true,
			category.ResourceLimit: true,
			category.Annoyed:       true,
		},
		AnnoyedThreshold:        3,
		AnnoyedWindowSeconds:    10,
		SessionStartIdleSeconds: 120,
		PreventOverlap:          true,
		CooldownsSeconds: map[string]float64{
			CooldownDefaultKey:             0,
			string(category.Greeting):      0,
			string(category.Acknowledge):   0,
			string(category.Complete):      0,
			string(category.Permission):    0,
			string(category.Error):         0,
			string(category.ResourceLimit): 0,
			string(category.Annoyed):       0,
		},
		Keywords: map[category.Category][]string{
			category.Permission: {
				"needs your approval",
				"need your approval",
				"approval requested",
				"approve this",
				"approve the command",
				"approve running",
				"allow this command",
				"permission prompt",
			},
			category.Error: {
				"error",
				"failed",
				"unable",
				"cannot",
				"can't",
				"denied",
				"permission denied",
				"not found",
				"timed out",
				"exception",
			},
			category.ResourceLimit: {
				"rate limit",
				"quota",
				"429",
				"token limit",
				"context length",
				"context window",
			},
		},
	}
}

// normalize clamps all numeric ranges and coerces enum fields to valid
// values. Validation happens here, at load time, rather than at every
// point of use.
func (c *Config) normalize() {
	c.Volume = clampFloat(c.Volume, 0, 1)

	if c.AnnoyedThreshold < 2 {
		c.AnnoyedThreshold = 2
	}
	if c.AnnoyedWindowSeconds < 1 {
		c.AnnoyedWindowSeconds = 1
	}
	if c.SessionStartIdleSeconds < 1 {
		c.SessionStartIdleSeconds = 1
	}

	mode := GreetingMode(strings.ToLower(strings.TrimSpace(
		string(c.GreetingMode),
	)))
	switch mode {
	case GreetLaunch, GreetTurnStart, GreetBoth, GreetOff:
		c.GreetingMode = mode
	default:
		c.GreetingMode = GreetLaunch
	}

	for key, secs := range c.CooldownsSeconds {
		if secs < 0 {
			c.CooldownsSeconds[key] = 0
		}
	}
}

// CategoryEnabled reports whether the given category may play. Unknown
// or unlisted categories default to enabled.
func (c *Config) CategoryEnabled(cat category.Category) bool {
	enabled, ok := c.Categories[cat]
	if !ok {
		return true
	}

	return enabled
}

// CooldownFor returns the cooldown in seconds for the given category,
// falling back to the "default" entry when the category has no explicit
// cooldown of its own.
func (c *Config) CooldownFor(cat category.Category) float64 {
	if secs, ok := c.CooldownsSeconds[string(cat)]; ok {
		return secs
	}

	return c.CooldownsSeconds[CooldownDefaultKey]
}

// GreetOnTurnStart reports whether the greeting mode permits greetings
// on the first turn of a thread.
func (c *Config) GreetOnTurnStart() bool {
	return c.GreetingMode == GreetTurnStart || c.GreetingMode == GreetBoth
}

// GreetOnLaunch reports whether the greeting mode permits greetings
// from the launch wrapper.
func (c *Config) GreetOnLaunch() bool {
	return c.GreetingMode == GreetLaunch || c.GreetingMode == GreetBoth
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
