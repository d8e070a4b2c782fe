package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// PetAdmitted is raised when a shelter takes in a new pet.
type PetAdmitted struct {
	BaseEvent
	PetID     int64
	ShelterID int64
	Name      string
}

func (e PetAdmitted) EventName() string {
	return "pets.pet.admitted"
}

// PetStatusChanged is raised by adoption decisions.
type PetStatusChanged struct {
	BaseEvent
	PetID      int64
	FromStatus Status
	ToStatus   Status
}

func (e PetStatusChanged) EventName() string {
	return "pets.pet.status_changed"
}

// AggregateWithEvents is implemented by aggregates that track domain events.
type AggregateWithEvents interface {
	Events() []Event
	ClearEvents()
}
