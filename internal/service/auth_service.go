package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

// AuthService provides account creation and credential verification.
// Both operations issue a signed token on success, so a fresh signup is
// immediately usable without a separate signin.
type AuthService interface {
	// SignUp registers a new user and returns a token for the new account.
	// Returns store.ErrEmailExists if the email is already taken, and
	// domain validation errors for invalid input.
	SignUp(ctx context.Context, email, nickname, password string) (string, error)

	// SignIn verifies the credentials and returns a fresh token.
	// An unknown email and a wrong password both return
	// auth.ErrAuthenticationFailed; callers cannot probe which accounts
	// exist.
	SignIn(ctx context.Context, email, password string) (string, error)
}

// authServiceImpl implements the AuthService interface.
type authServiceImpl struct {
	userStore    store.UserStore
	tokenService auth.TokenService
	hasher       auth.PasswordHasher
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService.
// It returns an error if any of the required dependencies are nil.
func NewAuthService(
	userStore store.UserStore,
	tokenService auth.TokenService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (AuthService, error) {
	if userStore == nil {
		return nil, errors.New("userStore cannot be nil")
	}
	if tokenService == nil {
		return nil, errors.New("tokenService cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		userStore:    userStore,
		tokenService: tokenService,
		hasher:       hasher,
		logger:       logger.With(slog.String("component", "auth_service")),
	}, nil
}

// SignUp implements AuthService.SignUp
func (s *authServiceImpl) SignUp(ctx context.Context, email, nickname, password string) (string, error) {
	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check email availability",
			"error", err)
		return "", fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		s.logger.Debug("signup rejected: email already taken")
		return "", store.ErrEmailExists
	}

	user, err := domain.NewUser(nickname, email, password)
	if err != nil {
		s.logger.Debug("signup rejected: invalid user data",
			"error", err)
		return "", err
	}

	// The plaintext password never reaches the store.
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err)
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		// A concurrent signup with the same email loses the race here.
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("signup rejected: email already taken")
			return "", store.ErrEmailExists
		}
		s.logger.Error("failed to create user",
			"error", err,
			"user_id", user.ID)
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenService.GenerateToken(ctx, user)
	if err != nil {
		s.logger.Error("failed to generate token after signup",
			"error", err,
			"user_id", user.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user signed up",
		"user_id", user.ID)
	return token, nil
}

// SignIn implements AuthService.SignIn
func (s *authServiceImpl) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("signin failed: unknown email")
			return "", auth.ErrAuthenticationFailed
		}
		s.logger.Error("failed to look up user for signin",
			"error", err)
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("signin failed: password mismatch",
			"user_id", user.ID)
		return "", auth.ErrAuthenticationFailed
	}

	token, err := s.tokenService.GenerateToken(ctx, user)
	if err != nil {
		s.logger.Error("failed to generate token after signin",
			"error", err,
			"user_id", user.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user signed in",
		"user_id", user.ID)
	return token, nil
}
