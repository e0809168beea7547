// Package main implements the entry point for the Taskwell API server,
// a task management backend with JWT authentication, author-owned task
// mutations and worker assignment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/taskwell/taskwell-api/internal/config"
	"github.com/taskwell/taskwell-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run wires the application together and either executes a migration
// command or serves HTTP until shutdown.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	ctx := context.Background()

	if migrateCmd != "" {
		return app.runMigrations(ctx, migrateCmd)
	}

	// Apply pending migrations before accepting traffic.
	if err := app.runMigrations(ctx, "up"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
