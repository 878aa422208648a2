package events

import "time"

// Event defines the contract for everything published to the operator bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "DEV_FEEDBACK").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// NewDevFeedback is raised when a user finalizes the dev feedback tool.
// The transport gateway forwards it to the operator.
func NewDevFeedback(userID, text string) Event {
	return BaseEvent{
		Type: "DEV_FEEDBACK",
		Data: map[string]interface{}{
			"user_id": userID,
			"text":    text,
		},
		OccurredAt: time.Now(),
	}
}

// NewBroadcast is raised when the operator confirms a broadcast. Delivery
// to end users is the gateway's job.
func NewBroadcast(text string) Event {
	return BaseEvent{
		Type: "BROADCAST",
		Data: map[string]interface{}{
			"text": text,
		},
		OccurredAt: time.Now(),
	}
}
