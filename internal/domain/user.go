package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmptyNickname    = errors.New("nickname cannot be empty")
	ErrNicknameTooShort = errors.New("nickname must be at least 3 characters long")
	ErrNicknameTooLong  = errors.New("nickname must be at most 50 characters long")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
)

// DefaultRole is assigned to every user created through signup.
const DefaultRole = "User"

// User represents a registered user of the task system.
// The email address doubles as the login name and must be unique.
type User struct {
	ID             uuid.UUID `json:"id"`
	Nickname       string    `json:"nickname"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, only set transiently during signup
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given nickname, email and plaintext
// password. It generates a new UUID, assigns the default role and sets the
// creation/update timestamps. Returns an error if validation fails.
//
// NOTE: the caller is responsible for hashing the password before the user
// is persisted; stores only ever see HashedPassword.
func NewUser(nickname, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Nickname:  nickname,
		Email:     email,
		Password:  password,
		Role:      DefaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	switch {
	case u.Nickname == "":
		return ErrEmptyNickname
	case len(u.Nickname) < 3:
		return ErrNicknameTooShort
	case len(u.Nickname) > 50:
		return ErrNicknameTooLong
	}

	// During signup the plaintext password is validated; existing users
	// loaded from the store carry only the hash.
	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validateEmailFormat performs basic validation of email format: a single
// "@" with a non-empty local part and a dotted domain. Intentionally
// lenient; the store's unique index is the real gatekeeper.
func validateEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}

	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
