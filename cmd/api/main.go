package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/haseab/retrace-frontend-sub001/internal/auth"
	"github.com/haseab/retrace-frontend-sub001/internal/config"
	"github.com/haseab/retrace-frontend-sub001/internal/database"
	"github.com/haseab/retrace-frontend-sub001/internal/handlers"
	middlewareCustom "github.com/haseab/retrace-frontend-sub001/internal/middleware"
	"github.com/haseab/retrace-frontend-sub001/internal/repositories"
	"github.com/haseab/retrace-frontend-sub001/internal/routes"
	"github.com/haseab/retrace-frontend-sub001/internal/services"
	pkglogger "github.com/haseab/retrace-frontend-sub001/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	if cfg.Auth.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set, all logins will fail with a configuration error")
	}
	if cfg.Auth.BearerToken == "" {
		logger.Warn("API_BEARER_TOKEN not set, all API requests will fail with a configuration error")
	}

	if err := database.Migrate(&cfg.Database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	noteRepo := repositories.NewNoteRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	screenshotRepo := repositories.NewScreenshotRepository(db)
	downloadRepo := repositories.NewDownloadRepository(db)
	faqRepo := repositories.NewFAQRepository(db)

	// Optional operator notification via SES
	var emailService services.EmailService
	if cfg.Email.NotifyAddress != "" && cfg.Email.FromAddress != "" {
		sesService, err := services.NewAWSSESEmailService(
			cfg.Email.AWSRegion,
			cfg.Email.FromAddress,
			cfg.Email.NotifyAddress,
			logger,
		)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		emailService = sesService
	}

	feedbackService := services.NewFeedbackService(feedbackRepo, emailService, logger)

	// Admin gate components. The tracker is constructed here and injected,
	// never shared module state.
	tracker := auth.NewAttemptTracker(auth.TrackerConfig{
		MaxAttempts:     cfg.Auth.MaxAttempts,
		AttemptWindow:   cfg.Auth.AttemptWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})
	verifier := auth.NewCredentialVerifier(cfg.Auth.AdminPasswordHash)
	sessions := auth.NewSessionIssuer(cfg.Auth.SessionMaxAge, !cfg.Server.IsLocal())
	timing := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelayMs:   cfg.Auth.TimingDelayBaseMs,
		RandomDelayMs: cfg.Auth.TimingDelayRandomMs,
	})
	bearer := auth.NewBearerAuthorizer(cfg.Auth.BearerToken)
	auditLogger := pkglogger.NewAuditLogger(logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(tracker, verifier, sessions, timing, auditLogger)
	noteHandler := handlers.NewNoteHandler(noteRepo)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, screenshotRepo)
	siteHandler := handlers.NewSiteHandler(downloadRepo, faqRepo)

	// Router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, authHandler, noteHandler, feedbackHandler, siteHandler, bearer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
