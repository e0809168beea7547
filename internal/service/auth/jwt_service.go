package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
)

// TokenService defines operations for managing JWT authentication tokens.
type TokenService interface {
	// GenerateToken creates a signed JWT carrying the user's identity
	// claims. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken verifies the provided token string and extracts the
	// claims. Returns an error if validation fails (expired, invalid
	// signature, malformed structure, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with the identity fields the
// task system embeds at issuance: id, email and role, with the user's
// nickname as the subject.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Email is the user's login email, the identity every ownership check
	// resolves against.
	Email string `json:"email,omitempty"`

	// Role is the user's role as of issuance.
	Role string `json:"role,omitempty"`

	// Standard registered JWT claims; Subject carries the nickname.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity is the authenticated-user view reconstructed from token claims.
// It is trusted as of issuance time; there is no revocation list and no
// store lookup on the request path.
type Identity struct {
	UserID   uuid.UUID
	Nickname string
	Email    string
	Role     string
}

// Identity projects the claims into an Identity.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:   c.UserID,
		Nickname: c.Subject,
		Email:    c.Email,
		Role:     c.Role,
	}
}
