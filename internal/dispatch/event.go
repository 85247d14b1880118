package dispatch

import (
	"encoding/json"
	"strings"
)

// EventTypeTurnComplete is the only hook event type that triggers
// dispatch; everything else is silently ignored.
const EventTypeTurnComplete = "agent-turn-complete"

// DefaultThreadKey is used when an event carries no usable thread id,
// so threadless events still share one rolling history.
const DefaultThreadKey = "__default__"

// hookPayload is the inbound notify-hook event shape. Unknown fields
// are ignored.
type hookPayload struct {
	Type                 string `json:"type"`
	ThreadID             string `json:"thread-id"`
	LastAssistantMessage string `json:"last-assistant-message"`
}

// parsePayload decodes a raw hook payload. Malformed JSON yields nil,
// which callers treat as handled rather than an error.
func parsePayload(raw []byte) *hookPayload {
	var p hookPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}

	return &p
}

// threadKey returns the trimmed thread id, or DefaultThreadKey when the
// payload has none.
func (p *hookPayload) threadKey() string {
	key := strings.TrimSpace(p.ThreadID)
	if key == "" {
		return DefaultThreadKey
	}

	return key
}
