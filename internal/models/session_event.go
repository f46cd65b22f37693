package models

import "time"

// Session event types.
const (
	EventStart      = "START"
	EventIteration  = "ITERATION"
	EventFetchError = "FETCH_ERROR"
	EventAutoStop   = "AUTO_STOP"
	EventStop       = "STOP"
)

// SessionEvent is a single monitoring journal entry.
type SessionEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Mode        string    `json:"mode"`
	SessionID   string    `json:"session_id,omitempty"`
	Type        string    `json:"type"`        // START | ITERATION | FETCH_ERROR | AUTO_STOP | STOP
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
