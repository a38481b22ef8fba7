package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"guestlist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture(t *testing.T) (domain.EventService, *fakeEventRepo, *fakeGuestRepo) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	guestRepo := newFakeGuestRepo(eventRepo)
	svc := NewEventService(eventRepo, guestRepo, 2*time.Second)
	return svc, eventRepo, guestRepo
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, eventRepo, _ := newEventFixture(t)
		event := &domain.Event{
			Name:    "  Launch Party  ",
			Date:    time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
			OwnerID: "owner-1",
		}
		err := svc.CreateEvent(ctx, event)
		require.NoError(t, err)
		assert.Equal(t, "Launch Party", event.Name)
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.CreatedAt.IsZero())
		assert.Len(t, eventRepo.byID, 1)
	})

	t.Run("missing name", func(t *testing.T) {
		svc, eventRepo, _ := newEventFixture(t)
		event := &domain.Event{
			Name:    "   ",
			Date:    time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
			OwnerID: "owner-1",
		}
		err := svc.CreateEvent(ctx, event)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, eventRepo.byID)
	})

	t.Run("missing date", func(t *testing.T) {
		svc, _, _ := newEventFixture(t)
		event := &domain.Event{Name: "Launch Party", OwnerID: "owner-1"}
		err := svc.CreateEvent(ctx, event)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing owner", func(t *testing.T) {
		svc, _, _ := newEventFixture(t)
		event := &domain.Event{
			Name: "Launch Party",
			Date: time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
		}
		err := svc.CreateEvent(ctx, event)
		require.Error(t, err)
	})

	t.Run("repo error", func(t *testing.T) {
		svc, eventRepo, _ := newEventFixture(t)
		eventRepo.err = errors.New("connection reset")
		event := &domain.Event{
			Name:    "Launch Party",
			Date:    time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
			OwnerID: "owner-1",
		}
		err := svc.CreateEvent(ctx, event)
		require.Error(t, err)
	})
}

func TestEventService_GetEventDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("success with guests", func(t *testing.T) {
		svc, eventRepo, guestRepo := newEventFixture(t)
		event := seedEvent(t, eventRepo, "owner-1")
		_, err := guestRepo.Insert(ctx, domain.NewGuest(event.ID, "Ada", "ada@example.com", time.Now(), time.Now()))
		require.NoError(t, err)

		detail, err := svc.GetEventDetail(ctx, event.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, event.ID, detail.Event.ID)
		require.Len(t, detail.Guests, 1)
		assert.Equal(t, "ada@example.com", detail.Guests[0].Email)
	})

	t.Run("guest list never nil", func(t *testing.T) {
		svc, eventRepo, _ := newEventFixture(t)
		event := seedEvent(t, eventRepo, "owner-1")

		detail, err := svc.GetEventDetail(ctx, event.ID, "owner-1")
		require.NoError(t, err)
		require.NotNil(t, detail.Guests)
		assert.Empty(t, detail.Guests)
	})

	t.Run("missing event", func(t *testing.T) {
		svc, _, _ := newEventFixture(t)

		detail, err := svc.GetEventDetail(ctx, "ev-missing", "owner-1")
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, detail)
	})

	t.Run("foreign event looks the same as a missing one", func(t *testing.T) {
		svc, eventRepo, _ := newEventFixture(t)
		event := seedEvent(t, eventRepo, "owner-1")

		detail, err := svc.GetEventDetail(ctx, event.ID, "intruder")
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, detail)
	})
}

func TestEventService_ListEventsByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner's events", func(t *testing.T) {
		svc, eventRepo, _ := newEventFixture(t)
		seedEvent(t, eventRepo, "owner-1")
		seedEvent(t, eventRepo, "owner-1")
		seedEvent(t, eventRepo, "owner-2")

		events, err := svc.ListEventsByOwner(ctx, "owner-1")
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		svc, _, _ := newEventFixture(t)

		events, err := svc.ListEventsByOwner(ctx, "owner-1")
		require.NoError(t, err)
		require.NotNil(t, events)
		assert.Empty(t, events)
	})
}
