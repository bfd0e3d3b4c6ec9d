// Package events defines the realtime wire protocol: client events sent
// over the socket, server events received from it, and the session
// configuration types both directions share.
package events

import (
	"github.com/goccy/go-json"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// Event is any realtime protocol event, client or server originated.
type Event interface {
	EventType() string
}

// BaseEvent carries the fields present on every event.
type BaseEvent struct {
	EventID string `json:"event_id,omitempty"`
	Type    string `json:"type"`
}

func (e BaseEvent) EventType() string { return e.Type }

// NewBaseEvent returns a base with a fresh event ID.
func NewBaseEvent(eventType string) BaseEvent {
	id, err := nanoid.New()
	if err != nil {
		panic(err)
	}
	return BaseEvent{EventID: "evt_" + id, Type: eventType}
}

// Parse unmarshals raw event data into a concrete event type.
func Parse[T any](data []byte) (*T, error) {
	var x T
	if err := json.Unmarshal(data, &x); err != nil {
		return nil, err
	}
	return &x, nil
}
