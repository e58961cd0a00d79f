package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the identity store.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials or a token cannot be verified.
	ErrUserUnauthorized = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	// ErrUsernameRequired is returned when registering without a username.
	ErrUsernameRequired = fmt.Errorf("%w: username cannot be empty", domain.ErrValidation)
	// ErrPasswordTooShort is returned when registering with a weak password.
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// User is a registered identity. Only the bcrypt hash of the password is kept.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	CreatedAt      time.Time `json:"created"`
}

// NewUser creates a new User with a hashed password.
func NewUser(username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
