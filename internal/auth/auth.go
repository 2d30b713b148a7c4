// Package auth authenticates users and issues signed session tokens that carry a CSRF token.
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is returned when a username or password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized is returned when a session token is missing, expired or revoked.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("username already taken")
	// ErrInvalidInput is returned when a username or password fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned by Lookup for unknown usernames.
	ErrNotFound = errors.New("user not found")
)

// User is an account that owns a weekly plan.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the authenticated state returned by Login and Check.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CSRFToken string    `json:"csrf_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Provider is the login/logout/session-check contract the HTTP layer depends on.
type Provider interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Check(ctx context.Context, token string) (*Session, error)
}
