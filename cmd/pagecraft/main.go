// Package main is the entry point for the PageCraft API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pagecraft/internal/auth"
	"pagecraft/internal/config"
	"pagecraft/internal/database"
	"pagecraft/internal/handlers"
	"pagecraft/internal/middleware"
	"pagecraft/internal/router"
	"pagecraft/internal/service"
	"pagecraft/internal/store"
	"pagecraft/internal/valkey"
)

// authRateLimitPrefix namespaces the shared auth rate-limit counters.
const authRateLimitPrefix = "ratelimit:auth:"

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"valkey", cfg.UseValkey(),
	)

	ctx := context.Background()

	// Connect to PostgreSQL.
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create the first admin account (no-op unless configured and the
	// users table is empty).
	if err := database.Seed(ctx, db, database.SeedAdmin{
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	}); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Auth rate limiting: shared counters in Valkey when configured,
	// per-process buckets otherwise.
	var limiter middleware.Limiter
	if cfg.UseValkey() {
		valkeyClient, err := valkey.Connect(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		limiter = middleware.NewValkeyLimiter(valkeyClient, authRateLimitPrefix, cfg.AuthRateLimit, cfg.AuthRateWindow)
	} else {
		slog.Warn("valkey not configured, auth rate limits are per process")
		memLimiter := middleware.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	// Initialize data stores and services.
	userStore := store.NewUserStore(db)
	contentStore := store.NewContentStore(db)
	tokens := auth.NewTokens([]byte(cfg.JWTSecret), cfg.JWTTTL)

	accounts := service.NewAccounts(userStore, tokens)

	// Set up the Chi router with all middleware and routes.
	r := router.New(accounts, router.Handlers{
		Users:   handlers.NewUsers(accounts),
		Content: handlers.NewContent(service.NewContent(contentStore)),
		Stats:   handlers.NewStats(service.NewStats(userStore, contentStore)),
		Admin:   handlers.NewAdmin(service.NewAdmin(userStore)),
	}, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		HSTS:        !cfg.IsDev(),
		AuthLimiter: limiter,
		TrustProxy:  cfg.TrustProxy,
	})

	// Create the HTTP server with sensible timeouts. Reads allow for large
	// editor payloads.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
