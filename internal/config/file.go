package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roasbeef/codex-peon/internal/category"
)

const (
	// ConfigFilename is the name of the config file inside the peon
	// home directory.
	ConfigFilename = "config.json"

	// pausedFilename is the sentinel file that mutes all playback
	// while present.
	pausedFilename = ".paused"

	// DirEnvVar overrides the default peon home directory.
	DirEnvVar = "CODEX_PEON_DIR"
)

// DefaultDir returns the peon home directory: $CODEX_PEON_DIR when set,
// otherwise ~/.codex/hooks/codex-peon.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnvVar); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".codex", "hooks", "codex-peon"), nil
}

// Path returns the config file path inside the given peon home dir.
func Path(dir string) string {
	return filepath.Join(dir, ConfigFilename)
}

// fileConfig mirrors Config with optional fields, so that only keys
// actually present in config.json override the defaults.
type fileConfig struct {
	ActivePack              *string                        `json:"active_pack"`
	Volume                  *float64                       `json:"volume"`
	Enabled                 *bool                          `json:"enabled"`
	GreetingMode            *string                        `json:"greeting_mode"`
	Categories              map[category.Category]bool     `json:"categories"`
	AnnoyedThreshold        *int                           `json:"annoyed_threshold"`
	AnnoyedWindowSeconds    *float64                       `json:"annoyed_window_seconds"`
	SessionStartIdleSeconds *float64                       `json:"session_start_idle_seconds"`
	PreventOverlap          *bool                          `json:"prevent_overlap"`
	CooldownsSeconds        map[string]float64             `json:"cooldowns_seconds"`
	Keywords                map[category.Category][]string `json:"keywords"`
}

// Load reads config.json from the given peon home directory, merges it
// over the built-in defaults, clamps all ranges, and writes the merged
// snapshot back so the on-disk file is always fully populated and
// editable. A missing or malformed file yields the defaults.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(Path(dir)); err == nil {
		var fc fileConfig
		if err := json.Unmarshal(data, &fc); err == nil {
			mergeFile(cfg, &fc)
			cfg.extra = extraKeys(data)
		}
	}

	cfg.normalize()

	// Keep the config durable if missing or corrupt so users can edit
	// it immediately. A write failure is non-fatal for dispatch.
	if err := Save(dir, cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes the config snapshot to config.json under dir, creating
// the directory if needed. Unknown keys captured at load time are
// written back alongside the schema fields.
func Save(dir string, cfg *Config) error {
	doc, err := cfg.document()
	if err != nil {
		return err
	}

	return writeJSONFile(Path(dir), doc)
}

// document renders the config as a generic JSON object, overlaying the
// schema fields onto any preserved unknown keys.
func (c *Config) document() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage, len(c.extra))
	for key, raw := range c.extra {
		doc[key] = raw
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var typed map[string]json.RawMessage
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	for key, raw := range typed {
		doc[key] = raw
	}

	return doc, nil
}

// schemaKeys returns the set of top-level keys the typed Config
// marshals, used to tell schema fields apart from user additions.
func schemaKeys() map[string]struct{} {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		return nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	keys := make(map[string]struct{}, len(doc))
	for key := range doc {
		keys[key] = struct{}{}
	}

	return keys
}

// extraKeys extracts the top-level keys of a raw config file that are
// not part of the schema. Returns nil when there are none.
func extraKeys(data []byte) map[string]json.RawMessage {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	known := schemaKeys()
	for key := range doc {
		if _, ok := known[key]; ok {
			delete(doc, key)
		}
	}
	if len(doc) == 0 {
		return nil
	}

	return doc
}

// mergeFile overlays the optional file fields onto the default config.
// Scalar fields replace wholesale; the categories and cooldown maps
// merge key-wise; keyword lists replace per category.
func mergeFile(cfg *Config, fc *fileConfig) {
	if fc.ActivePack != nil {
		cfg.ActivePack = *fc.ActivePack
	}
	if fc.Volume != nil {
		cfg.Volume = *fc.Volume
	}
	if fc.Enabled != nil {
		cfg.Enabled = *fc.Enabled
	}
	if fc.GreetingMode != nil {
		cfg.GreetingMode = GreetingMode(*fc.GreetingMode)
	}
	if fc.AnnoyedThreshold != nil {
		cfg.AnnoyedThreshold = *fc.AnnoyedThreshold
	}
	if fc.AnnoyedWindowSeconds != nil {
		cfg.AnnoyedWindowSeconds = *fc.AnnoyedWindowSeconds
	}
	if fc.SessionStartIdleSeconds != nil {
		cfg.SessionStartIdleSeconds = *fc.SessionStartIdleSeconds
	}
	if fc.PreventOverlap != nil {
		cfg.PreventOverlap = *fc.PreventOverlap
	}

	for cat, enabled := range fc.Categories {
		cfg.Categories[cat] = enabled
	}
	for key, secs := range fc.CooldownsSeconds {
		cfg.CooldownsSeconds[key] = secs
	}
	for cat, terms := range fc.Keywords {
		cfg.Keywords[cat] = terms
	}
}

// Paused reports whether the pause sentinel file exists in dir.
func Paused(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, pausedFilename))
	return err == nil
}

// SetPaused creates or removes the pause sentinel file.
func SetPaused(dir string, paused bool) error {
	path := filepath.Join(dir, pausedFilename)

	if !paused {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove pause file: %w",
				err)
		}

		return nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create peon dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create pause file: %w", err)
	}

	return f.Close()
}

// writeJSONFile marshals v with indentation and writes it to path,
// creating parent directories as needed.
func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
