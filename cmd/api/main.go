// Package main is the entrypoint for the guestlist API server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"guestlist/config"
	_ "guestlist/docs"
	authadapter "guestlist/internal/adapters/auth"
	"guestlist/internal/adapters/email"
	delivery "guestlist/internal/delivery/http"
	"guestlist/internal/delivery/http/controllers"
	"guestlist/internal/delivery/http/middleware"
	"guestlist/internal/repository/postgres"
	"guestlist/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Guestlist API
// @version 1.0
// @description Event guest management: events, guest CSV import, door check-in.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	jwtExpiry, err := time.ParseDuration(cfg.JWTExpiry)
	if err != nil {
		logger.Warn("invalid JWT_EXPIRY, falling back to 24h", "value", cfg.JWTExpiry)
		jwtExpiry = 24 * time.Hour
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	guestRepo := postgres.NewGuestRepository(db)

	hasher := authadapter.NewBcryptHasher(10)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	authService := services.NewAuthService(userRepo, hasher, issuer, jwtExpiry)
	eventService := services.NewEventService(eventRepo, guestRepo, serviceTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	guestService := services.NewGuestService(eventRepo, guestRepo, userRepo, emailService, serviceTimeout)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)
	guestController := controllers.NewGuestController(logger, guestService)

	mux := delivery.NewRouter(logger, verifier, authController, eventController, guestController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
