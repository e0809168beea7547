package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskwell/taskwell-api/internal/config"
	"github.com/taskwell/taskwell-api/internal/platform/postgres"
	"github.com/taskwell/taskwell-api/internal/service"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	tokenService auth.TokenService
	hasher       auth.PasswordHasher
	authService  service.AuthService
	taskService  service.TaskService
}

// newApplication builds the dependency graph: database, stores and
// services. The caller owns the returned application and must call
// cleanup when done.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	hasher := auth.NewBcryptHasher(0)

	authService, err := service.NewAuthService(userStore, tokenService, hasher, logger)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	taskService, err := service.NewTaskService(db, taskStore, userStore, logger)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		userStore:    userStore,
		taskStore:    taskStore,
		tokenService: tokenService,
		hasher:       hasher,
		authService:  authService,
		taskService:  taskService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
