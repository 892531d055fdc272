package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venue-console/internal/config"
	"venue-console/internal/observability"
	"venue-console/internal/repository/postgres"
	"venue-console/internal/stubserver"
)

func main() {
	cfg := config.Load()
	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	slog.Info("starting stub backend")

	opts := stubserver.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		OpenAPISpec:    cfg.OpenAPISpec,
		LoginRPS:       5,
		LoginBurst:     10,
	}

	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		stopStats := postgres.StartPoolStatsReporter(db, 15*time.Second)
		defer stopStats()

		opts.Orders = postgres.NewOrderRepository(db)
		slog.Info("connected to postgresql, using database-backed order store")
	} else {
		slog.Info("DATABASE_URL not set, using in-memory order store")
	}

	srv := stubserver.New(opts)
	defer srv.Close()

	seedUsers(srv)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("stub backend listening", slog.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	slog.Info("server stopped gracefully")
}

// seedUsers registers the development accounts. Credentials come from the
// environment so the defaults never leak into a real deployment.
func seedUsers(srv *stubserver.Server) {
	adminUser := envOr("SEED_ADMIN_USERNAME", "admin")
	adminPass := envOr("SEED_ADMIN_PASSWORD", "admin-dev-password")
	staffUser := envOr("SEED_STAFF_USERNAME", "staff")
	staffPass := envOr("SEED_STAFF_PASSWORD", "staff-dev-password")

	srv.Seed(adminUser, adminUser+"@example.com", adminPass, true)
	srv.Seed(staffUser, staffUser+"@example.com", staffPass, false)

	slog.Info("seeded development users",
		slog.String("admin", adminUser),
		slog.String("staff", staffUser))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
