// Package category defines the closed set of sound categories and the
// keyword classifier that maps assistant output onto them.
package category

import "strings"

// Category identifies one of the seven sound categories a dispatched
// event can resolve to.
type Category string

const (
	// Greeting plays at session start or via the launch wrapper.
	Greeting Category = "greeting"

	// Acknowledge is the default category for an ordinary completed
	// turn.
	Acknowledge Category = "acknowledge"

	// Complete marks a finished unit of work.
	Complete Category = "complete"

	// Permission signals that the agent is waiting on an approval
	// prompt.
	Permission Category = "permission"

	// Error signals a failure reported in the assistant output.
	Error Category = "error"

	// ResourceLimit signals a rate limit, quota, or context window
	// exhaustion.
	ResourceLimit Category = "resource_limit"

	// Annoyed is a synthetic category triggered by rapid repeated
	// turns within a short window.
	Annoyed Category = "annoyed"
)

// All lists every category in display order.
var All = []Category{
	Greeting, Acknowledge, Complete, Permission, Error, ResourceLimit,
	Annoyed,
}

// Valid reports whether c is one of the known categories.
func Valid(c Category) bool {
	for _, known := range All {
		if c == known {
			return true
		}
	}

	return false
}

// fallbackTable maps each category to the ordered alternates tried when
// the category itself is disabled or has no playable sound. Kept as data
// so tests can enumerate every chain.
var fallbackTable = map[Category][]Category{
	Greeting:      {Acknowledge, Complete},
	Acknowledge:   {Complete},
	Complete:      {Acknowledge},
	Permission:    {Acknowledge, Complete},
	Error:         {Acknowledge, Complete},
	ResourceLimit: {Acknowledge, Complete},
	Annoyed:       {Acknowledge, Complete},
}

// Fallbacks returns the ordered fallback chain for the given category,
// not including the category itself. Unknown categories have no chain.
func Fallbacks(c Category) []Category {
	chain := fallbackTable[c]

	out := make([]Category, len(chain))
	copy(out, chain)

	return out
}

// ResolutionOrder returns the category followed by its fallback chain,
// which is the order both the admission policy and the sound provider
// walk when resolving a playable category.
func ResolutionOrder(c Category) []Category {
	return append([]Category{c}, Fallbacks(c)...)
}

// classifyPriority is the fixed order the classifier scans keyword
// categories in. The first match wins, so more specific signals
// (resource limits) are checked before generic failure text.
var classifyPriority = []Category{ResourceLimit, Permission, Error}

// Classify maps free-text assistant output to a category using the
// configured keyword lists. Matching is a case-insensitive substring
// test. Text that matches nothing, including empty text, classifies as
// Acknowledge. Pure; no side effects.
func Classify(text string, keywords map[Category][]string) Category {
	lowered := strings.ToLower(text)

	for _, cat := range classifyPriority {
		for _, term := range keywords[cat] {
			if term == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(term)) {
				return cat
			}
		}
	}

	return Acknowledge
}
