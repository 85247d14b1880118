package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/codex-peon/internal/category"
)

// TestLoadMissingFileYieldsDefaults verifies a fresh directory loads
// the built-in defaults and persists a fully populated config file.
func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "peon", cfg.ActivePack)
	require.Equal(t, 0.5, cfg.Volume)
	require.True(t, cfg.Enabled)
	require.Equal(t, GreetLaunch, cfg.GreetingMode)
	require.Equal(t, 3, cfg.AnnoyedThreshold)
	require.True(t, cfg.PreventOverlap)

	// The merged snapshot must have been written back.
	_, err = os.Stat(Path(dir))
	require.NoError(t, err)
}

// TestLoadMergesPartialFile verifies that keys present in the file
// override defaults while missing keys stay defaulted.
func TestLoadMergesPartialFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"volume": 0.9,
		"greeting_mode": "both",
		"categories": {"error": false},
		"cooldowns_seconds": {"acknowledge": 5}
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, 0.9, cfg.Volume)
	require.Equal(t, GreetBoth, cfg.GreetingMode)

	// Map merge is key-wise: error switched off, others defaulted.
	require.False(t, cfg.CategoryEnabled(category.Error))
	require.True(t, cfg.CategoryEnabled(category.Permission))

	require.Equal(t, 5.0, cfg.CooldownFor(category.Acknowledge))
	require.Equal(t, 0.0, cfg.CooldownFor(category.Greeting))

	// Untouched scalars keep their defaults.
	require.Equal(t, "peon", cfg.ActivePack)
	require.Equal(t, 3, cfg.AnnoyedThreshold)
}

// TestLoadMalformedFileYieldsDefaults verifies a corrupt config file
// degrades to defaults instead of failing.
func TestLoadMalformedFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `{not json`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "peon", cfg.ActivePack)
	require.True(t, cfg.Enabled)
}

// TestLoadClampsRanges verifies out-of-range values are clamped at
// load time.
func TestLoadClampsRanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"volume": 7.5,
		"annoyed_threshold": 0,
		"annoyed_window_seconds": 0.1,
		"session_start_idle_seconds": -3,
		"greeting_mode": "sometimes",
		"cooldowns_seconds": {"error": -10}
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, 1.0, cfg.Volume)
	require.Equal(t, 2, cfg.AnnoyedThreshold)
	require.Equal(t, 1.0, cfg.AnnoyedWindowSeconds)
	require.Equal(t, 1.0, cfg.SessionStartIdleSeconds)
	require.Equal(t, GreetLaunch, cfg.GreetingMode)
	require.Equal(t, 0.0, cfg.CooldownFor(category.Error))
}

// TestCooldownDefaultFallback verifies unlisted categories use the
// "default" cooldown entry.
func TestCooldownDefaultFallback(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CooldownsSeconds = map[string]float64{
		CooldownDefaultKey: 42,
	}

	require.Equal(t, 42.0, cfg.CooldownFor(category.Annoyed))
}

// TestCategoryEnabledDefaultsTrue verifies categories missing from the
// switch map count as enabled.
func TestCategoryEnabledDefaultsTrue(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	delete(cfg.Categories, category.Complete)

	require.True(t, cfg.CategoryEnabled(category.Complete))
}

// TestGreetingModeHelpers verifies mode predicates.
func TestGreetingModeHelpers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mode      GreetingMode
		turnStart bool
		launch    bool
	}{
		{GreetLaunch, false, true},
		{GreetTurnStart, true, false},
		{GreetBoth, true, true},
		{GreetOff, false, false},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.GreetingMode = tc.mode

		require.Equal(t, tc.turnStart, cfg.GreetOnTurnStart(),
			"mode %s", tc.mode)
		require.Equal(t, tc.launch, cfg.GreetOnLaunch(),
			"mode %s", tc.mode)
	}
}

// TestSetAndGetKey verifies dot-path round trips through the file.
func TestSetAndGetKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, SetKey(dir, "volume", 0.7))

	value, err := GetKey(dir, "volume")
	require.NoError(t, err)
	require.Equal(t, 0.7, value)

	require.NoError(t,
		SetKey(dir, "cooldowns_seconds.acknowledge", 12.0))

	value, err = GetKey(dir, "cooldowns_seconds.acknowledge")
	require.NoError(t, err)
	require.Equal(t, 12.0, value)
}

// TestGetKeyNotFound verifies unknown paths return ErrKeyNotFound.
func TestGetKeyNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := GetKey(dir, "no.such.key")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

// TestSetKeyEmpty verifies an empty dot path is rejected.
func TestSetKeyEmpty(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, SetKey(t.TempDir(), "", 1), ErrEmptyKey)
}

// TestKeywordAddRemove verifies keyword mutations persist through the
// config file.
func TestKeywordAddRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	term := "approve this command"

	added, err := AddKeyword(dir, category.Permission, term)
	require.NoError(t, err)
	require.True(t, added)

	// A second add is a no-op.
	added, err = AddKeyword(dir, category.Permission, term)
	require.NoError(t, err)
	require.False(t, added)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Contains(t, cfg.Keywords[category.Permission], term)

	removed, err := RemoveKeyword(dir, category.Permission, term)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = RemoveKeyword(dir, category.Permission, term)
	require.NoError(t, err)
	require.False(t, removed)

	cfg, err = Load(dir)
	require.NoError(t, err)
	require.NotContains(t, cfg.Keywords[category.Permission], term)
}

// TestParseValue verifies JSON literal parsing with raw-string
// fallback.
func TestParseValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.7, ParseValue("0.7"))
	require.Equal(t, true, ParseValue("true"))
	require.Equal(t, "loud", ParseValue("loud"))
	require.Equal(t, []any{"a"}, ParseValue(`["a"]`))
}

// TestPauseFlag verifies the pause sentinel lifecycle.
func TestPauseFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.False(t, Paused(dir))
	require.NoError(t, SetPaused(dir, true))
	require.True(t, Paused(dir))

	// Pausing twice is fine.
	require.NoError(t, SetPaused(dir, true))

	require.NoError(t, SetPaused(dir, false))
	require.False(t, Paused(dir))

	// Resuming when not paused is fine.
	require.NoError(t, SetPaused(dir, false))
}

// TestLoadPreservesUnknownKeys verifies user-added keys in config.json
// survive the load-time write-back and later saves.
func TestLoadPreservesUnknownKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"volume": 0.8,
		"custom_section": {"nested": 7},
		"custom_flag": true
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 0.8, cfg.Volume)

	// Load rewrote the file; the unknown keys must still be there.
	value, err := GetKey(dir, "custom_section.nested")
	require.NoError(t, err)
	require.Equal(t, float64(7), value)

	value, err = GetKey(dir, "custom_flag")
	require.NoError(t, err)
	require.Equal(t, true, value)

	// A load-modify-save cycle keeps them too.
	cfg, err = Load(dir)
	require.NoError(t, err)
	cfg.Enabled = false
	require.NoError(t, Save(dir, cfg))

	value, err = GetKey(dir, "custom_section.nested")
	require.NoError(t, err)
	require.Equal(t, float64(7), value)

	cfg, err = Load(dir)
	require.NoError(t, err)
	require.False(t, cfg.Enabled)
}

// TestSetKeyNonSchemaRoundTrip verifies a non-schema key written with
// SetKey reads back with GetKey even after the config is reloaded.
func TestSetKeyNonSchemaRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, SetKey(dir, "custom", float64(1)))

	value, err := GetKey(dir, "custom")
	require.NoError(t, err)
	require.Equal(t, float64(1), value)

	// Reload rewrites config.json; the key must survive that.
	_, err = Load(dir)
	require.NoError(t, err)

	value, err = GetKey(dir, "custom")
	require.NoError(t, err)
	require.Equal(t, float64(1), value)
}

// writeConfig writes raw JSON as the config file for a test dir.
func writeConfig(t *testing.T, dir, raw string) {
	t.Helper()

	err := os.WriteFile(
		filepath.Join(dir, ConfigFilename), []byte(raw), 0o600,
	)
	require.NoError(t, err)
}
