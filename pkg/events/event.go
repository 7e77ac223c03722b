package events

import "time"

// Event types emitted by the recommendation domain. Subjects on the bus
// are these codes prefixed with the stream namespace.
const (
	TypeProfileRebuilt   = "profile.rebuilt"
	TypeFeedbackRecorded = "feedback.recorded"
	TypeGameEmbedded     = "game.embedded"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "profile.rebuilt").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
