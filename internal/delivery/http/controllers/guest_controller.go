package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"guestlist/internal/delivery/http/helpers"
	"guestlist/internal/delivery/http/middleware"
	"guestlist/internal/domain"
	"guestlist/internal/services"
)

// maxImportSize caps uploaded CSV files at 5 MiB.
const maxImportSize = 5 << 20

type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// AddGuestRequest is the request body for POST /guests.
type AddGuestRequest struct {
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *AddGuestRequest) Validate() []string {
	var errs []string
	if r.EventID == "" {
		errs = append(errs, "event_id is required")
	} else if uuid.Validate(r.EventID) != nil {
		errs = append(errs, "event_id must be a valid UUID")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// AddGuest godoc
// @Summary Add a single guest to an event
// @Description Adds one guest to the guest list of an event owned by the authenticated user. Returns 409 when a guest with the same email already exists for the event.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddGuestRequest true "Guest data"
// @Success 201 {object} helpers.APIResponse "data contains the created guest"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests [post]
func (c *GuestController) AddGuest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req AddGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	guest, err := c.Service.AddGuest(r.Context(), req.EventID, userID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found or you do not have permission to add guests to it")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid name or email")
		case errors.Is(err, domain.ErrDuplicateGuest):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "guest with this email already exists for this event")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to add guest")
		}
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, guest)
}

// ImportGuests godoc
// @Summary Bulk import guests from a CSV file
// @Description Imports guests from a multipart CSV upload (fields: file, eventId). The CSV must have case-insensitive Name and Email header columns. Invalid rows are skipped and reported; rows duplicating an existing (event, email) pair are counted as duplicates.
// @Tags guests
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param eventId formData string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains added, duplicates, invalid, errors"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/import [post]
func (c *GuestController) ImportGuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	eventID := r.FormValue("eventId")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file or eventId")
		return
	}
	if uuid.Validate(eventID) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId must be a valid UUID")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file or eventId")
		return
	}
	defer file.Close()

	rows, err := services.ParseGuestCSV(file)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedCSV) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "csv must include Name and Email columns")
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "failed to parse csv file")
		return
	}

	summary, err := c.Service.ImportGuests(r.Context(), eventID, userID, rows)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found or you do not have permission to add guests to it")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "a server error occurred during import")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// ListGuests godoc
// @Summary List the guests of an event
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of guests"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if uuid.Validate(eventID) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	guests, err := c.Service.ListGuests(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list guests")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, guests)
}

// SetCheckedInRequest is the request body for PUT /guests/{guestID}.
type SetCheckedInRequest struct {
	CheckedIn *bool `json:"checked_in"`
}

// Validate implements helpers.Validator.
func (r *SetCheckedInRequest) Validate() []string {
	if r.CheckedIn == nil {
		return []string{"checked_in is required and must be a boolean"}
	}
	return nil
}

// SetCheckedIn godoc
// @Summary Update a guest's check-in status
// @Description Sets checked_in for a guest belonging to an event owned by the authenticated user.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guestID path string true "Guest ID (UUID)"
// @Param body body SetCheckedInRequest true "Check-in flag"
// @Success 200 {object} helpers.APIResponse "data contains the updated guest"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/{guestID} [put]
func (c *GuestController) SetCheckedIn(w http.ResponseWriter, r *http.Request) {
	guestID := r.PathValue("guestID")
	if uuid.Validate(guestID) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid guestID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SetCheckedInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	guest, err := c.Service.SetCheckedIn(r.Context(), guestID, userID, *req.CheckedIn)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "guest not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to update guest")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// SendInvitationsResponse is the data payload for POST /events/{eventID}/invitations.
type SendInvitationsResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// SendInvitations godoc
// @Summary Email an invitation to every guest of an event
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains sent count and failed addresses"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *GuestController) SendInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if uuid.Validate(eventID) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	sent, failed, err := c.Service.SendInvitations(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to send invitations")
		return
	}
	if failed == nil {
		failed = []string{}
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, SendInvitationsResponse{Sent: sent, Failed: failed})
}
