package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// testKeywords is a minimal keyword config exercising all three
// priority categories.
var testKeywords = map[Category][]string{
	Permission:    {"needs your approval", "approve this"},
	Error:         {"error", "failed", "not found"},
	ResourceLimit: {"rate limit", "context window", "429"},
}

// TestClassifyPriorityOrder verifies that resource_limit beats
// permission beats error when multiple keyword lists match.
func TestClassifyPriorityOrder(t *testing.T) {
	t.Parallel()

	// "rate limit error" matches both resource_limit and error.
	require.Equal(t, ResourceLimit,
		Classify("hit a rate limit error", testKeywords))

	// "approve this failed" matches both permission and error.
	require.Equal(t, Permission,
		Classify("approve this failed command", testKeywords))

	require.Equal(t, Error,
		Classify("the build failed", testKeywords))
}

// TestClassifyCaseInsensitive verifies matching ignores case on both
// sides.
func TestClassifyCaseInsensitive(t *testing.T) {
	t.Parallel()

	require.Equal(t, Error,
		Classify("Operation FAILED badly", testKeywords))

	upper := map[Category][]string{
		Error: {"FAILED"},
	}
	require.Equal(t, Error, Classify("it failed", upper))
}

// TestClassifyDefaultsToAcknowledge verifies unmatched and empty text
// classify as acknowledge.
func TestClassifyDefaultsToAcknowledge(t *testing.T) {
	t.Parallel()

	require.Equal(t, Acknowledge, Classify("all done", testKeywords))
	require.Equal(t, Acknowledge, Classify("", testKeywords))
	require.Equal(t, Acknowledge, Classify("anything", nil))
}

// TestClassifyIgnoresEmptyTerms verifies empty keyword terms never
// match.
func TestClassifyIgnoresEmptyTerms(t *testing.T) {
	t.Parallel()

	keywords := map[Category][]string{
		Error: {""},
	}
	require.Equal(t, Acknowledge, Classify("whatever", keywords))
}

// TestClassifyTotality verifies that classify always returns one of
// the seven known categories for arbitrary text and keyword configs.
func TestClassifyTotality(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")

		keywords := make(map[Category][]string)
		for _, cat := range All {
			if rapid.Bool().Draw(t, "has_"+string(cat)) {
				keywords[cat] = rapid.SliceOfN(
					rapid.String(), 0, 4,
				).Draw(t, "terms_"+string(cat))
			}
		}

		got := Classify(text, keywords)
		require.True(t, Valid(got),
			"classify returned unknown category %q", got)
	})
}

// TestFallbackChains enumerates every fallback chain and checks the
// fixed topology: every chain ends in the acknowledge/complete pair
// and never references the category itself.
func TestFallbackChains(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Category{Acknowledge, Complete},
		Fallbacks(Greeting))
	require.Equal(t, []Category{Complete}, Fallbacks(Acknowledge))
	require.Equal(t, []Category{Acknowledge}, Fallbacks(Complete))

	for _, cat := range []Category{
		Permission, Error, ResourceLimit, Annoyed,
	} {
		require.Equal(t, []Category{Acknowledge, Complete},
			Fallbacks(cat), "chain for %s", cat)
	}

	for _, cat := range All {
		for _, alt := range Fallbacks(cat) {
			require.NotEqual(t, cat, alt,
				"%s falls back to itself", cat)
			require.True(t, Valid(alt))
		}
	}
}

// TestResolutionOrder verifies the category itself always leads its
// resolution order.
func TestResolutionOrder(t *testing.T) {
	t.Parallel()

	for _, cat := range All {
		order := ResolutionOrder(cat)
		require.Equal(t, cat, order[0])
		require.Len(t, order, len(Fallbacks(cat))+1)
	}
}

// TestFallbacksCopies verifies callers cannot mutate the fallback
// table through the returned slice.
func TestFallbacksCopies(t *testing.T) {
	t.Parallel()

	chain := Fallbacks(Greeting)
	chain[0] = Category(strings.ToUpper(string(chain[0])))

	require.Equal(t, []Category{Acknowledge, Complete},
		Fallbacks(Greeting))
}
