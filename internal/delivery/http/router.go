package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guestlist/internal/delivery/http/controllers"
	"guestlist/internal/delivery/http/middleware"
	"guestlist/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	guestController *controllers.GuestController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", requireAuth(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.GetEventDetail))
	mux.HandleFunc("GET /events/{eventID}/guests", requireAuth(guestController.ListGuests))
	mux.HandleFunc("POST /events/{eventID}/invitations", requireAuth(guestController.SendInvitations))

	// Guests
	mux.HandleFunc("POST /guests", requireAuth(guestController.AddGuest))
	mux.HandleFunc("POST /guests/import", requireAuth(guestController.ImportGuests))
	mux.HandleFunc("PUT /guests/{guestID}", requireAuth(guestController.SetCheckedIn))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
