package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestOutcomeWindowStart verifies the status counting floor sits 24
// hours behind now.
func TestOutcomeWindowStart(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	start := outcomeWindowStart(now)
	require.Equal(t, float64(now.Unix())-24*60*60, start)
	require.Less(t, start, float64(now.Unix()))
}
