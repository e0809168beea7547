package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/api/middleware"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

// getIdentity extracts the authenticated identity placed in the context by
// the auth middleware. It writes an error response and returns false if the
// identity is missing, which indicates a routing mistake rather than a
// client error.
func getIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return auth.Identity{}, false
	}
	return identity, true
}

// getQueryUUID extracts and parses a UUID from the query string.
func getQueryUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPathEmail extracts the email path parameter.
func getPathEmail(r *http.Request) (string, error) {
	email := chi.URLParam(r, "email")
	if email == "" {
		return "", domain.NewValidationError("email", "is required", domain.ErrValidation)
	}
	return email, nil
}

// getPageParams reads the optional page and size query parameters.
// Absent or malformed values fall back to the store defaults; out-of-range
// values are clamped by PageParams.Normalize.
func getPageParams(r *http.Request) store.PageParams {
	params := store.PageParams{}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			params.Page = page
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			params.Size = size
		}
	}

	return params.Normalize()
}

// getStatusFilter parses the status query parameter into a task filter.
func getStatusFilter(r *http.Request) (store.TaskFilter, error) {
	status, err := domain.ParseTaskStatus(r.URL.Query().Get("status"))
	if err != nil {
		return store.TaskFilter{}, err
	}
	return store.TaskFilter{Status: &status}, nil
}

// getPriorityFilter parses the priority query parameter into a task filter.
func getPriorityFilter(r *http.Request) (store.TaskFilter, error) {
	priority, err := domain.ParseTaskPriority(r.URL.Query().Get("priority"))
	if err != nil {
		return store.TaskFilter{}, err
	}
	return store.TaskFilter{Priority: &priority}, nil
}
