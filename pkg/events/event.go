package events

import (
	"context"
	"time"
)

// Event is one notebook lifecycle occurrence worth announcing outside the
// process.
type Event interface {
	// EventType returns the subject suffix (e.g. "notebook.created").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Announcer delivers events to whatever bus is configured. A failed
// announcement must never fail the operation that produced it.
type Announcer interface {
	Announce(ctx context.Context, event Event)
}

// NopAnnouncer drops every event. Used when no external bus is configured.
type NopAnnouncer struct{}

func (NopAnnouncer) Announce(context.Context, Event) {}

type baseEvent struct {
	eventType  string
	data       map[string]interface{}
	occurredAt time.Time
}

func (e baseEvent) EventType() string               { return e.eventType }
func (e baseEvent) Payload() map[string]interface{} { return e.data }
func (e baseEvent) Timestamp() time.Time            { return e.occurredAt }

func newEvent(eventType string, data map[string]interface{}) Event {
	return baseEvent{eventType: eventType, data: data, occurredAt: time.Now()}
}

func NotebookCreated(name string) Event {
	return newEvent("notebook.created", map[string]interface{}{
		"notebook": name,
	})
}

func NotebookDeleted(name string) Event {
	return newEvent("notebook.deleted", map[string]interface{}{
		"notebook": name,
	})
}

func FileProcessed(notebook, originalFilename string, chunks int) Event {
	return newEvent("notebook.file.processed", map[string]interface{}{
		"notebook": notebook,
		"file":     originalFilename,
		"chunks":   chunks,
	})
}
