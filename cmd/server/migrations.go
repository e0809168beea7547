package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// migrationsDir is the path to the goose SQL migrations, relative to the
// working directory the server is started from.
const migrationsDir = "migrations"

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "goose")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "goose")
}

// runMigrations executes the given goose command (up, down, status,
// version) against the application database.
func (app *application) runMigrations(ctx context.Context, command string) error {
	// A correlation ID ties together all log lines of one migration run.
	migrationLogger := app.logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("starting migration operation")

	goose.SetLogger(&slogGooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, app.db, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, app.db, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, app.db, migrationsDir)
	case "version":
		err = goose.VersionContext(ctx, app.db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %q", command)
	}

	if err != nil {
		migrationLogger.Error("migration operation failed",
			"error", err,
			"duration", time.Since(startTime))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("migration operation completed",
		"duration", time.Since(startTime))
	return nil
}
