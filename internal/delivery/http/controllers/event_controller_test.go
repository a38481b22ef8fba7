package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"guestlist/internal/delivery/http/helpers"
	"guestlist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr       error
	lastCreated     *domain.Event
	detailErr       error
	detailResult    *domain.EventDetail
	lastDetailID    string
	lastDetailOwner string
	listErr         error
	listResult      []*domain.Event
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreated = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-created"
	return nil
}

func (f *fakeEventService) GetEventDetail(ctx context.Context, eventID, ownerID string) (*domain.EventDetail, error) {
	f.lastDetailID = eventID
	f.lastDetailOwner = ownerID
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detailResult, nil
}

func (f *fakeEventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func TestEventController_CreateEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc)

		body := `{"name":"Launch Party","date":"2026-09-12T18:00:00Z"}`
		req := authedRequest(http.MethodPost, "/events", strings.NewReader(body), "user-1")
		rr := httptest.NewRecorder()
		c.CreateEvent(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, svc.lastCreated)
		assert.Equal(t, "Launch Party", svc.lastCreated.Name)
		assert.Equal(t, "user-1", svc.lastCreated.OwnerID)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})

		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		c.CreateEvent(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing name and date", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc)

		req := authedRequest(http.MethodPost, "/events", strings.NewReader(`{}`), "user-1")
		rr := httptest.NewRecorder()
		c.CreateEvent(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, svc.lastCreated, "service must not be called")
	})

	t.Run("service rejects input", func(t *testing.T) {
		svc := &fakeEventService{createErr: domain.ErrInvalidInput}
		c := NewEventController(testLogger, svc)

		body := `{"name":"Launch Party","date":"2026-09-12T18:00:00Z"}`
		req := authedRequest(http.MethodPost, "/events", strings.NewReader(body), "user-1")
		rr := httptest.NewRecorder()
		c.CreateEvent(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &fakeEventService{createErr: errors.New("connection reset")}
		c := NewEventController(testLogger, svc)

		body := `{"name":"Launch Party","date":"2026-09-12T18:00:00Z"}`
		req := authedRequest(http.MethodPost, "/events", strings.NewReader(body), "user-1")
		rr := httptest.NewRecorder()
		c.CreateEvent(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.NotContains(t, envelope.Error.Message, "connection reset")
	})
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{
			listResult: []*domain.Event{
				{ID: "ev-1", Name: "Launch Party", OwnerID: "user-1", Date: time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)},
			},
		}
		c := NewEventController(testLogger, svc)

		req := authedRequest(http.MethodGet, "/events", nil, "user-1")
		rr := httptest.NewRecorder()
		c.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Data []*domain.Event `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Launch Party", resp.Data[0].Name)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})

		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		rr := httptest.NewRecorder()
		c.ListEvents(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestEventController_GetEventDetail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{
			detailResult: &domain.EventDetail{
				Event:  &domain.Event{ID: testEventID, Name: "Launch Party", OwnerID: "user-1"},
				Guests: []*domain.Guest{{ID: testGuestID, EventID: testEventID, Name: "Ada", Email: "ada@example.com"}},
			},
		}
		c := NewEventController(testLogger, svc)

		req := authedRequest(http.MethodGet, "/events/"+testEventID, nil, "user-1")
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()
		c.GetEventDetail(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, testEventID, svc.lastDetailID)
		assert.Equal(t, "user-1", svc.lastDetailOwner)
		var resp struct {
			Data domain.EventDetail `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.NotNil(t, resp.Data.Event)
		require.Len(t, resp.Data.Guests, 1)
	})

	t.Run("invalid event id", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})

		req := authedRequest(http.MethodGet, "/events/nope", nil, "user-1")
		req.SetPathValue("eventID", "nope")
		rr := httptest.NewRecorder()
		c.GetEventDetail(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("foreign or missing event", func(t *testing.T) {
		svc := &fakeEventService{detailErr: domain.ErrForbidden}
		c := NewEventController(testLogger, svc)

		req := authedRequest(http.MethodGet, "/events/"+testEventID, nil, "intruder")
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()
		c.GetEventDetail(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})
}
