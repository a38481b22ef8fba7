package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"guestlist/internal/domain"
)

// emailPattern is deliberately minimal: non-space characters, an @, a domain
// with at least one dot. Full RFC 5322 validation is not the goal; the unique
// constraint on (event_id, email) is what actually protects the data.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type guestService struct {
	eventRepo      domain.EventRepository
	guestRepo      domain.GuestRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewGuestService creates a GuestService with the given repositories.
func NewGuestService(
	eventRepo domain.EventRepository,
	guestRepo domain.GuestRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.GuestService {
	return &guestService{
		eventRepo:      eventRepo,
		guestRepo:      guestRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// authorizeEvent loads the event and checks ownership. A missing event and an
// event owned by someone else both return ErrForbidden, so callers cannot
// probe which events exist.
func (s *guestService) authorizeEvent(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *guestService) AddGuest(ctx context.Context, eventID, ownerID, name, email string) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.authorizeEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	guest := domain.NewGuest(eventID, name, email, now, now)
	inserted, err := s.guestRepo.Insert(ctx, guest)
	if err != nil {
		return nil, fmt.Errorf("insert guest: %w", err)
	}
	if !inserted {
		return nil, domain.ErrDuplicateGuest
	}
	return guest, nil
}

// ImportGuests validates and deduplicates a batch of rows for one event. Row
// failures never abort the batch: invalid rows are counted and reported in the
// summary while the rest proceed to a single insert-if-absent write. Added is
// the store-reported insert count; duplicates is what the unique constraint
// silently dropped, including duplicates within the batch itself.
func (s *guestService) ImportGuests(ctx context.Context, eventID, ownerID string, rows []domain.ImportRow) (*domain.ImportSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.authorizeEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}

	summary := &domain.ImportSummary{Errors: []string{}}
	now := time.Now()
	toInsert := make([]*domain.Guest, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		email := strings.TrimSpace(row.Email)
		if name == "" || email == "" {
			summary.Invalid++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("row %d skipped: missing name or email (name=%q, email=%q)", row.Line, row.Name, row.Email))
			continue
		}
		if !emailPattern.MatchString(email) {
			summary.Invalid++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("row %d skipped: invalid email %q", row.Line, email))
			continue
		}
		toInsert = append(toInsert, domain.NewGuest(eventID, name, email, now, now))
	}

	if len(toInsert) == 0 {
		return summary, nil
	}

	added, err := s.guestRepo.InsertIgnoreDuplicates(ctx, toInsert)
	if err != nil {
		return nil, fmt.Errorf("bulk insert guests: %w", err)
	}
	summary.Added = added
	summary.Duplicates = len(toInsert) - added
	return summary, nil
}

func (s *guestService) ListGuests(ctx context.Context, eventID, ownerID string) ([]*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.authorizeEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	guests, err := s.guestRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, nil
}

func (s *guestService) SetCheckedIn(ctx context.Context, guestID, ownerID string, checkedIn bool) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Ownership is enforced inside the update itself; no separate lookup.
	guest, err := s.guestRepo.UpdateCheckedIn(ctx, guestID, ownerID, checkedIn)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update checked_in: %w", err)
	}
	return guest, nil
}

func (s *guestService) SendInvitations(ctx context.Context, eventID, ownerID string) (int, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.authorizeEvent(ctx, eventID, ownerID)
	if err != nil {
		return 0, nil, err
	}

	hostName := "Your host"
	if owner, err := s.userRepo.GetByID(ctx, ownerID); err == nil && owner != nil {
		if n := strings.TrimSpace(owner.Name); n != "" {
			hostName = n
		} else if owner.Email != "" {
			hostName = owner.Email
		}
	}

	guests, err := s.guestRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return 0, nil, fmt.Errorf("list guests: %w", err)
	}

	sent := 0
	var failed []string
	for _, g := range guests {
		data := &domain.GuestInvitationEmailData{
			GuestName:  g.Name,
			GuestEmail: g.Email,
			EventName:  event.Name,
			EventDate:  event.Date.Format("Monday, 2 January 2006"),
			HostName:   hostName,
		}
		if err := s.emailService.SendGuestInvitation(ctx, data); err != nil {
			failed = append(failed, g.Email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}
