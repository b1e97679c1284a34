// Package user contains the account entity. Registration and session
// handling are thin plumbing around it; the resolution pipeline only ever
// sees a user ID.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUsername = errors.New("username must be between 3 and 50 characters")
	ErrInvalidEmail    = errors.New("email address is not valid")
	ErrEmptyPassword   = errors.New("password hash must not be empty")
	ErrUserNotFound    = errors.New("user not found")
)

// User represents a registered account
type User struct {
	id           uuid.UUID
	username     string
	email        string
	passwordHash string
	createdAt    time.Time
}

// NewUser creates a user with a pre-hashed password
func NewUser(username, email, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return nil, ErrInvalidUsername
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}

	return &User{
		id:           uuid.New(),
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    time.Now(),
	}, nil
}

// Restore rebuilds a persisted user. Used by repositories only.
func Restore(id uuid.UUID, username, email, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

// ID returns the user's unique identifier
func (u *User) ID() uuid.UUID {
	return u.id
}

// Username returns the unique username
func (u *User) Username() string {
	return u.username
}

// Email returns the account email
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the bcrypt hash
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// CreatedAt returns when the account was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}
