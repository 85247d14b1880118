package dispatch

import (
	"github.com/roasbeef/codex-peon/internal/state"
)

// Greeting and annoyance are both derived from the same event clock but
// answer different questions: recency of this thread versus density of
// recent turns. The two trackers below are therefore computed
// independently even though they share the state and a single now.

// trackRapidTurns updates the rolling per-thread turn window and
// returns the number of turns retained inside it, including the one
// being recorded. The window is clamped to at least one second.
func trackRapidTurns(st *state.State, thread string, now,
	window float64) int {

	if window < 1 {
		window = 1
	}

	return st.RecordTurn(thread, now, window)
}

// isSessionStart reports whether this event should be treated as a
// session start: the thread is new, or the gap since the last processed
// event meets the idle threshold. A thread with no prior event
// timestamp always counts as idle. The last-event clock is advanced to
// now on every call, whether or not a session start is detected.
func isSessionStart(st *state.State, thread string, now,
	idle float64) bool {

	if idle < 1 {
		idle = 1
	}

	known := st.ThreadSeen(thread)
	if !known {
		st.MarkThreadSeen(thread)
	}

	lastEvent := st.LastEventTS
	st.LastEventTS = now

	idleGap := true
	if lastEvent > 0 {
		idleGap = now-lastEvent >= idle
	}

	return !known || idleGap
}
