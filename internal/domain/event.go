package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across owner-checked operations.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a resource is missing or owned by
	// someone else; callers cannot distinguish the two cases.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when request fields fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Event represents an event with a guest list. OwnerID is set at creation and
// never changes.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the
// repository on create.
func NewEvent(name string, date time.Time, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		Date:      date,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventDetail bundles an event with its guest list.
type EventDetail struct {
	Event  *Event   `json:"event"`
	Guests []*Guest `json:"guests"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
}

// EventService defines organizer-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventDetail(ctx context.Context, eventID, ownerID string) (*EventDetail, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
}
