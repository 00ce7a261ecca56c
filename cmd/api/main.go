package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Prateek11234/hrms/internal/app"
	"github.com/Prateek11234/hrms/internal/config"
	"github.com/Prateek11234/hrms/internal/domain/attendance"
	appHTTP "github.com/Prateek11234/hrms/internal/handler/http"
	"github.com/Prateek11234/hrms/internal/pkg/database"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := appHTTP.NewLogger("hrms-api", version, cfg.App.Env, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := attendance.ParsePolicy(cfg.Attendance.MarkPolicy)
	if err != nil {
		slog.Error("Invalid attendance mark policy", "error", err)
		os.Exit(1)
	}

	var repos app.Repositories
	switch cfg.Store.Type {
	case config.StorePostgres:
		dsn := cfg.DatabaseURL()
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, dsn); err != nil {
				slog.Error("Failed to run migrations", "error", err)
				os.Exit(1)
			}
		}
		db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			slog.Error("Error connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		repos = app.NewPostgresRepositories(db)
	case config.StoreMemory:
		slog.Warn("Using in-memory store, data is lost on restart")
		repos = app.NewMemoryRepositories()
	default:
		slog.Error("Unsupported store type", "store", cfg.Store.Type)
		os.Exit(1)
	}

	router := app.NewHandler(repos, app.Options{
		MarkPolicy:     policy,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Type, "mark_policy", policy.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
