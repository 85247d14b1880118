package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roasbeef/codex-peon/internal/category"
)

var (
	// ErrKeyNotFound is returned when a dot-path key does not exist in
	// the config document.
	ErrKeyNotFound = errors.New("config key not found")

	// ErrEmptyKey is returned when an empty dot-path is given.
	ErrEmptyKey = errors.New("config key cannot be empty")
)

// splitKeyPath splits a dot-path like "cooldowns_seconds.acknowledge"
// into its parts, dropping empty segments.
func splitKeyPath(key string) []string {
	var parts []string
	for _, part := range strings.Split(key, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

// Document returns the merged config as a generic JSON document for
// dot-path access by the config command. Unknown keys preserved from
// the file are part of the document.
func Document(dir string) (map[string]any, error) {
	cfg, err := Load(dir)
	if err != nil {
		return nil, err
	}

	raw, err := cfg.document()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return doc, nil
}

// GetKey resolves a dot-path inside the merged config document.
func GetKey(dir, key string) (any, error) {
	doc, err := Document(dir)
	if err != nil {
		return nil, err
	}

	var cur any = doc
	for _, part := range splitKeyPath(key) {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}

		cur, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
	}

	return cur, nil
}

// SetKey sets a dot-path inside the config document and persists it.
// Intermediate objects are created as needed. Values that fall outside
// the valid ranges are clamped on the next Load.
func SetKey(dir, key string, value any) error {
	parts := splitKeyPath(key)
	if len(parts) == 0 {
		return ErrEmptyKey
	}

	doc, err := Document(dir)
	if err != nil {
		return err
	}

	cur := doc
	for _, part := range parts[:len(parts)-1] {
		child, ok := cur[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			cur[part] = child
		}
		cur = child
	}
	cur[parts[len(parts)-1]] = value

	return writeJSONFile(Path(dir), doc)
}

// ParseValue interprets a raw command-line value as a JSON literal,
// falling back to the raw string when it does not parse.
func ParseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	return v
}

// AddKeyword appends a keyword term to the given category's classifier
// list. Returns false when the term was already present.
func AddKeyword(dir string, cat category.Category, term string) (bool,
	error) {

	cfg, err := Load(dir)
	if err != nil {
		return false, err
	}

	for _, existing := range cfg.Keywords[cat] {
		if existing == term {
			return false, nil
		}
	}

	cfg.Keywords[cat] = append(cfg.Keywords[cat], term)

	return true, Save(dir, cfg)
}

// RemoveKeyword removes a keyword term from the given category's
// classifier list. Returns false when the term was not present.
func RemoveKeyword(dir string, cat category.Category, term string) (bool,
	error) {

	cfg, err := Load(dir)
	if err != nil {
		return false, err
	}

	terms := cfg.Keywords[cat]
	kept := make([]string, 0, len(terms))
	for _, existing := range terms {
		if existing != term {
			kept = append(kept, existing)
		}
	}

	if len(kept) == len(terms) {
		return false, nil
	}

	cfg.Keywords[cat] = kept

	return true, Save(dir, cfg)
}
