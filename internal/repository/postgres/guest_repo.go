package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"guestlist/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{
		DB: db,
	}
}

// Insert writes one guest. ON CONFLICT DO NOTHING makes the write race-safe:
// when the (event_id, email) pair already exists, no row comes back and
// inserted is false. A concurrent insert of the same pair can also surface as
// a 23505; that is the same duplicate outcome, not an error.
func (r *guestRepository) Insert(ctx context.Context, g *domain.Guest) (bool, error) {
	query := `
		INSERT INTO guests (event_id, name, email, checked_in, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $5)
		ON CONFLICT (event_id, email) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, g.EventID, g.Name, g.Email, g.CreatedAt, g.UpdatedAt).Scan(&g.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *guestRepository) InsertIgnoreDuplicates(ctx context.Context, guests []*domain.Guest) (int, error) {
	if len(guests) == 0 {
		return 0, nil
	}

	valueClauses := make([]string, 0, len(guests))
	args := make([]interface{}, 0, len(guests)*5)
	n := 1
	for _, g := range guests {
		valueClauses = append(valueClauses, fmt.Sprintf("($%d, $%d, $%d, FALSE, $%d, $%d)", n, n+1, n+2, n+3, n+4))
		args = append(args, g.EventID, g.Name, g.Email, g.CreatedAt, g.UpdatedAt)
		n += 5
	}
	query := fmt.Sprintf(`
		INSERT INTO guests (event_id, name, email, checked_in, created_at, updated_at)
		VALUES %s
		ON CONFLICT (event_id, email) DO NOTHING
		RETURNING id
	`, strings.Join(valueClauses, ", "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	added := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		added++
	}
	return added, rows.Err()
}

func (r *guestRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	query := `
		SELECT id, event_id, name, email, checked_in, created_at, updated_at
		FROM guests
		WHERE event_id = $1
		ORDER BY name, email
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g := &domain.Guest{}
		if err := rows.Scan(&g.ID, &g.EventID, &g.Name, &g.Email, &g.CheckedIn, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// UpdateCheckedIn flips the check-in flag. The ownership subquery keeps the
// write row-scoped to events the caller owns; a guest of someone else's event
// matches zero rows, same as a missing guest.
func (r *guestRepository) UpdateCheckedIn(ctx context.Context, guestID, ownerID string, checkedIn bool) (*domain.Guest, error) {
	query := `
		UPDATE guests SET checked_in = $1, updated_at = NOW()
		WHERE id = $2
		  AND event_id IN (SELECT id FROM events WHERE owner_id = $3)
		RETURNING id, event_id, name, email, checked_in, created_at, updated_at
	`
	g := &domain.Guest{}
	err := r.DB.QueryRowContext(ctx, query, checkedIn, guestID, ownerID).
		Scan(&g.ID, &g.EventID, &g.Name, &g.Email, &g.CheckedIn, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}
