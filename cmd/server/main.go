package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pageturners/api/internal/config"
	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/handler"
	"github.com/pageturners/api/internal/jobs"
	"github.com/pageturners/api/internal/middleware"
	"github.com/pageturners/api/internal/repository"
	"github.com/pageturners/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, logger)
	membershipService := service.NewMembershipService(clubRepo, userRepo, notificationService, logger)
	eventService := service.NewEventService(eventRepo, clubRepo, userRepo, notificationService, logger)

	// Start the event status sweep
	eventStatusProcessor := jobs.NewEventStatusProcessor(eventService, cfg.Sweep.Interval, logger)
	eventStatusProcessor.Start()
	defer eventStatusProcessor.Stop()

	// Initialize handlers
	clubHandler := handler.NewClubHandler(membershipService)
	eventHandler := handler.NewEventHandler(eventService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	adminHandler := handler.NewAdminHandler(eventService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	identity := middleware.Identity

	// Club endpoints
	mux.Handle("POST /v1/clubs", identity(http.HandlerFunc(clubHandler.Create)))
	mux.Handle("GET /v1/clubs/{clubId}", identity(http.HandlerFunc(clubHandler.Get)))
	mux.Handle("PATCH /v1/clubs/{clubId}", identity(http.HandlerFunc(clubHandler.Update)))
	mux.Handle("DELETE /v1/clubs/{clubId}", identity(http.HandlerFunc(clubHandler.Delete)))

	// Membership endpoints
	mux.Handle("POST /v1/clubs/{clubId}/members", identity(http.HandlerFunc(clubHandler.Join)))
	mux.Handle("DELETE /v1/clubs/{clubId}/members/me", identity(http.HandlerFunc(clubHandler.Leave)))
	mux.Handle("GET /v1/clubs/{clubId}/members", identity(http.HandlerFunc(clubHandler.ListMembers)))
	mux.Handle("PUT /v1/clubs/{clubId}/members/{userId}/role", identity(http.HandlerFunc(clubHandler.SetMemberRole)))
	mux.Handle("PUT /v1/clubs/{clubId}/rsvp", identity(http.HandlerFunc(clubHandler.MeetingRSVP)))

	// Event endpoints
	mux.Handle("POST /v1/clubs/{clubId}/events", identity(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /v1/events", identity(http.HandlerFunc(eventHandler.List)))
	mux.Handle("GET /v1/events/{eventId}", identity(http.HandlerFunc(eventHandler.Get)))
	mux.Handle("PATCH /v1/events/{eventId}", identity(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("PUT /v1/events/{eventId}/rsvp", identity(http.HandlerFunc(eventHandler.Rsvp)))
	mux.Handle("POST /v1/events/{eventId}/cancel", identity(http.HandlerFunc(eventHandler.Cancel)))

	// Notification endpoints
	mux.Handle("GET /v1/notifications", identity(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("GET /v1/notifications/unread-count", identity(http.HandlerFunc(notificationHandler.UnreadCount)))
	mux.Handle("POST /v1/notifications/{notificationId}/read", identity(http.HandlerFunc(notificationHandler.MarkRead)))

	// Operational endpoints, enabled only when an admin key is configured
	if cfg.Admin.KeyHash != "" {
		adminKey := middleware.AdminKey(cfg.Admin.KeyHash)
		mux.Handle("POST /v1/admin/events/sweep", adminKey(http.HandlerFunc(adminHandler.SweepEvents)))
		mux.Handle("GET /v1/admin/events/stats", adminKey(http.HandlerFunc(adminHandler.EventStats)))
	} else {
		slog.Warn("ADMIN_KEY_HASH not set, admin endpoints disabled")
	}

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
