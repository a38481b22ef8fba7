package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for guest operations.
var (
	// ErrDuplicateGuest is returned by the single-guest path when the
	// (event_id, email) pair already exists.
	ErrDuplicateGuest = errors.New("guest with this email already exists for this event")
	// ErrMalformedCSV is returned when an uploaded guest list cannot be parsed
	// as CSV with the required Name and Email columns.
	ErrMalformedCSV = errors.New("csv must include name and email columns")
)

// Guest represents one invitee of an event. (EventID, Email) is unique; that
// pair is the sole deduplication key for imports.
// swagger:model Guest
type Guest struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CheckedIn bool      `json:"checked_in"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGuest returns a new Guest with the given fields. ID is set by the
// repository on create.
func NewGuest(eventID, name, email string, createdAt, updatedAt time.Time) *Guest {
	return &Guest{
		EventID:   eventID,
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ImportRow is one parsed row of a guest-list submission. Line is the 1-based
// line number in the source file, used in skip messages.
type ImportRow struct {
	Line  int
	Name  string
	Email string
}

// ImportSummary reports the outcome of a bulk guest import. Errors holds one
// human-readable message per skipped row, in input order.
// swagger:model ImportSummary
type ImportSummary struct {
	Added      int      `json:"added"`
	Duplicates int      `json:"duplicates"`
	Invalid    int      `json:"invalid"`
	Errors     []string `json:"errors"`
}

// GuestRepository defines storage operations for guests. Duplicate handling
// rides entirely on the database's unique constraint over (event_id, email),
// which keeps concurrent imports race-safe without application locking.
type GuestRepository interface {
	// Insert writes one guest. inserted is false when the (event_id, email)
	// pair already exists; that outcome is not an error.
	Insert(ctx context.Context, guest *Guest) (inserted bool, err error)
	// InsertIgnoreDuplicates writes a batch in one statement, silently skipping
	// rows whose (event_id, email) already exists, and returns the number of
	// rows actually inserted.
	InsertIgnoreDuplicates(ctx context.Context, guests []*Guest) (added int, err error)
	ListByEventID(ctx context.Context, eventID string) ([]*Guest, error)
	// UpdateCheckedIn sets the check-in flag of a guest, but only when the
	// guest belongs to an event owned by ownerID. Returns ErrNotFound when no
	// row matches (missing guest and foreign guest are indistinguishable).
	UpdateCheckedIn(ctx context.Context, guestID, ownerID string, checkedIn bool) (*Guest, error)
}

// GuestService defines guest management operations, including the import
// reconciler. Every operation checks that ownerID owns the target event;
// a missing event and someone else's event both surface as ErrForbidden.
type GuestService interface {
	AddGuest(ctx context.Context, eventID, ownerID, name, email string) (*Guest, error)
	ImportGuests(ctx context.Context, eventID, ownerID string, rows []ImportRow) (*ImportSummary, error)
	ListGuests(ctx context.Context, eventID, ownerID string) ([]*Guest, error)
	SetCheckedIn(ctx context.Context, guestID, ownerID string, checkedIn bool) (*Guest, error)
	// SendInvitations emails every guest of the event. Per-address failures are
	// collected in failed, not returned as an error.
	SendInvitations(ctx context.Context, eventID, ownerID string) (sent int, failed []string, err error)
}
