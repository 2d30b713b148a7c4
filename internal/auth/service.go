package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"meal-planner/internal/auth/authdb"
	"meal-planner/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 64
)

// Service implements Provider over the users table and HS256 session tokens. Logged-out
// token IDs are remembered until the token would have expired anyway.
type Service struct {
	queries *authdb.Queries
	secret  []byte
	ttl     time.Duration
	revoked *cache.Cache
	now     func() time.Time
	logger  *log.Logger
}

var _ Provider = (*Service)(nil)

// NewService creates a new Service.
func NewService(d *sql.DB, secret string, ttl time.Duration) *Service {
	return &Service{
		queries: authdb.New(d),
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: cache.New(ttl, time.Hour),
		now:     time.Now,
		logger:  logging.New("auth"),
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username must be between 1 and %d characters", ErrInvalidInput, maxUsernameLength)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.queries.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	id, err := s.queries.InsertUser(ctx, authdb.InsertUserParams{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Info("user registered", "user", username, "id", id)
	return &User{ID: id, Username: username, CreatedAt: now}, nil
}

// Login verifies the credentials and returns a fresh session.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	row, err := s.queries.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login", "user", row.Username)
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(User{ID: row.ID, Username: row.Username, CreatedAt: row.CreatedAt}, s.now())
}

// Logout revokes the token. Logging out an invalid token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	s.revoked.Set(claims.ID, struct{}{}, remaining)
	return nil
}

// Check validates a token and returns its session.
func (s *Service) Check(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return nil, fmt.Errorf("%w: session logged out", ErrUnauthorized)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrUnauthorized)
	}
	if _, err := s.queries.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		Username:  claims.Username,
		CSRFToken: claims.CSRF,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Lookup returns the user with the given username, or ErrNotFound.
func (s *Service) Lookup(ctx context.Context, username string) (*User, error) {
	row, err := s.queries.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &User{ID: row.ID, Username: row.Username, CreatedAt: row.CreatedAt}, nil
}
