package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandlerSignUp(t *testing.T) {
	t.Parallel()

	t.Run("returns token with 201", func(t *testing.T) {
		t.Parallel()
		authService := new(MockAuthService)
		handler := NewAuthHandler(authService)

		authService.On("SignUp", mock.Anything, "new@example.com", "newbie", "secret123").
			Return("signed-token", nil)

		w := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Email:    "new@example.com",
			Username: "newbie",
			Password: "secret123",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("taken email maps to 409", func(t *testing.T) {
		t.Parallel()
		authService := new(MockAuthService)
		handler := NewAuthHandler(authService)

		authService.On("SignUp", mock.Anything, "taken@example.com", "newbie", "secret123").
			Return("", store.ErrEmailExists)

		w := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Email:    "taken@example.com",
			Username: "newbie",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Email already exists")
	})

	t.Run("invalid payload maps to 400", func(t *testing.T) {
		t.Parallel()
		authService := new(MockAuthService)
		handler := NewAuthHandler(authService)

		w := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Email:    "not-an-email",
			Username: "newbie",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		authService.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		t.Parallel()
		authService := new(MockAuthService)
		handler := NewAuthHandler(authService)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		handler.SignUp(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerSignIn(t *testing.T) {
	t.Parallel()

	t.Run("returns token with 200", func(t *testing.T) {
		t.Parallel()
		authService := new(MockAuthService)
		handler := NewAuthHandler(authService)

		authService.On("SignIn", mock.Anything, "user@example.com", "secret123").
			Return("signed-token", nil)

		w := postJSON(t, handler.SignIn, "/auth/signin", SignInRequest{
			Email:    "user@example.com",
			Password: "secret123",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		t.Parallel()
		authService := new(MockAuthService)
		handler := NewAuthHandler(authService)

		authService.On("SignIn", mock.Anything, "user@example.com", "wrongpw").
			Return("", auth.ErrAuthenticationFailed)

		w := postJSON(t, handler.SignIn, "/auth/signin", SignInRequest{
			Email:    "user@example.com",
			Password: "wrongpw",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})
}
