package main

import (
	"bytes"
	"database/sql"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskwell/taskwell-api/internal/config"
	"github.com/taskwell/taskwell-api/internal/platform/postgres"
	"github.com/taskwell/taskwell-api/internal/service"
	"github.com/taskwell/taskwell-api/internal/service/auth"
)

// testApplication wires a real dependency graph against a database handle
// that is never connected. Only routes that stop before the store layer
// are exercised here.
func testApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		Auth: config.AuthConfig{
			TokenSigningKey: base64.StdEncoding.EncodeToString(
				[]byte("router-test-signing-key-with-32+bytes!!")),
			TokenLifetimeMinutes: 60,
		},
	}

	logger := slog.Default()

	// sql.Open does not dial; no database is needed for these tests.
	db, err := sql.Open("pgx", "postgres://localhost:5432/unused")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	require.NoError(t, err)

	authService, err := service.NewAuthService(userStore, tokenService, auth.NewBcryptHasher(0), logger)
	require.NoError(t, err)

	taskService, err := service.NewTaskService(db, taskStore, userStore, logger)
	require.NoError(t, err)

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		userStore:    userStore,
		taskStore:    taskStore,
		tokenService: tokenService,
		hasher:       auth.NewBcryptHasher(0),
		authService:  authService,
		taskService:  taskService,
	}
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	router := testApplication(t).setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	router := testApplication(t).setupRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/task"},
		{http.MethodPost, "/task?title=x"},
		{http.MethodPut, "/task?taskID=x"},
		{http.MethodDelete, "/task?taskID=x"},
		{http.MethodPut, "/task/status?taskID=x&status=Done"},
		{http.MethodPut, "/task/worker?taskID=x&email=y"},
		{http.MethodDelete, "/task/worker?taskID=x&email=y"},
	}

	for _, route := range routes {
		route := route
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestRouterRejectsGarbageToken(t *testing.T) {
	t.Parallel()

	router := testApplication(t).setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/task", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouterSignupValidation(t *testing.T) {
	t.Parallel()

	router := testApplication(t).setupRouter()

	body := []byte(`{"email":"not-an-email","username":"newbie","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
