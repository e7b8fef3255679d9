// Package event defines event types for decoupling the roster feature's
// model, controller, and views. Events flow one way: the model publishes,
// listeners react.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "roster.changed").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// Event type identifiers published by the roster model.
const (
	TypeRosterChanged   = "roster.changed"
	TypeEditingChanged  = "roster.editing_changed"
	TypeCapacityChanged = "roster.capacity_changed"
	TypeSaveCompleted   = "teams.save_completed"
)

// RosterChangedEvent is emitted after any mutation of the member list
// (add, delete, rename). Members is a snapshot copy.
type RosterChangedEvent struct {
	baseEvent
	Members []string
}

// NewRosterChangedEvent creates a RosterChangedEvent from a member snapshot.
func NewRosterChangedEvent(members []string) RosterChangedEvent {
	snapshot := make([]string, len(members))
	copy(snapshot, members)
	return RosterChangedEvent{
		baseEvent: newBaseEvent(TypeRosterChanged),
		Members:   snapshot,
	}
}

// EditingChangedEvent is emitted when a row enters or leaves edit mode.
// Index is -1 when no row is being edited.
type EditingChangedEvent struct {
	baseEvent
	Index int
}

// NewEditingChangedEvent creates an EditingChangedEvent.
func NewEditingChangedEvent(index int) EditingChangedEvent {
	return EditingChangedEvent{
		baseEvent: newBaseEvent(TypeEditingChanged),
		Index:     index,
	}
}

// CapacityChangedEvent is emitted when the roster capacity is updated
// (a new total was set or confirmed).
type CapacityChangedEvent struct {
	baseEvent
	Total     int
	Confirmed bool
}

// NewCapacityChangedEvent creates a CapacityChangedEvent.
func NewCapacityChangedEvent(total int, confirmed bool) CapacityChangedEvent {
	return CapacityChangedEvent{
		baseEvent: newBaseEvent(TypeCapacityChanged),
		Total:     total,
		Confirmed: confirmed,
	}
}

// SaveCompletedEvent is emitted when the persistence call for a finished
// split returns.
type SaveCompletedEvent struct {
	baseEvent
	Success bool
	Message string
}

// NewSaveCompletedEvent creates a SaveCompletedEvent.
func NewSaveCompletedEvent(success bool, message string) SaveCompletedEvent {
	return SaveCompletedEvent{
		baseEvent: newBaseEvent(TypeSaveCompleted),
		Success:   success,
		Message:   message,
	}
}
