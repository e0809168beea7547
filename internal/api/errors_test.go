package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"failed credentials", auth.ErrAuthenticationFailed, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusForbidden},
		{"expired token", auth.ErrExpiredToken, http.StatusForbidden},
		{"missing token", auth.ErrMissingToken, http.StatusForbidden},
		{"unauthorized operation", domain.ErrUnauthorized, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"title exists", store.ErrTitleExists, http.StatusConflict},
		{"worker exists", store.ErrWorkerExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid priority", domain.ErrInvalidPriority, http.StatusBadRequest},
		{"empty title", domain.ErrEmptyTitle, http.StatusBadRequest},
		{"password too short", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"unknown error", errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}

	t.Run("wrapped errors keep their mapping", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("failed to edit task: %w", store.ErrTaskNotFound)
		assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))
	})
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"failed credentials", auth.ErrAuthenticationFailed, "Invalid credentials"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"title exists", store.ErrTitleExists, "You already have a task with this title"},
		{"worker exists", store.ErrWorkerExists, "Worker is already assigned to this task"},
		{"unknown error never leaks", errors.New("pq: connection to host db:5432 refused"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	t.Run("extracts field and tag", func(t *testing.T) {
		t.Parallel()
		err := errors.New(
			"Key: 'SignUpRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag")
		assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))
	})

	t.Run("falls back to a generic message", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
	})
}
