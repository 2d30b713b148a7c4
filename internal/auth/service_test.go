package auth

import (
	"context"
	"testing"
	"time"

	"meal-planner/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := database.NewTestDB(t)
	return NewService(db.SQL, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	user, err := s.Register(ctx, " alice ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)

	t.Run("Duplicate", func(t *testing.T) {
		_, err := s.Register(ctx, "ALICE", "another password")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, err := s.Register(ctx, "bob", "short")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := s.Login(ctx, "alice", "wrong password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := s.Login(ctx, "mallory", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("SessionRoundTrip", func(t *testing.T) {
		session, err := s.Login(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.NotEmpty(t, session.CSRFToken)
		assert.Equal(t, user.ID, session.UserID)

		checked, err := s.Check(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.CSRFToken, checked.CSRFToken)
		assert.Equal(t, "alice", checked.Username)

		require.NoError(t, s.Logout(ctx, session.Token))
		_, err = s.Check(ctx, session.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("EachLoginHasItsOwnCSRF", func(t *testing.T) {
		a, err := s.Login(ctx, "alice", "correct horse")
		require.NoError(t, err)
		b, err := s.Login(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.NotEqual(t, a.CSRFToken, b.CSRFToken)
	})
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Register(ctx, "carol", "long enough")
	require.NoError(t, err)
	session, err := s.Login(ctx, "carol", "long enough")
	require.NoError(t, err)

	t.Run("Empty", func(t *testing.T) {
		_, err := s.Check(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := s.Check(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := &Service{queries: s.queries, secret: []byte("other"), ttl: time.Hour, revoked: s.revoked, now: time.Now, logger: s.logger}
		_, err := other.Check(ctx, session.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Expired", func(t *testing.T) {
		s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { s.now = time.Now }()
		_, err := s.Check(ctx, session.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("LogoutInvalidToken", func(t *testing.T) {
		assert.NoError(t, s.Logout(ctx, "not-a-token"))
	})
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	created, err := s.Register(ctx, "dave", "long enough")
	require.NoError(t, err)

	user, err := s.Lookup(ctx, "DAVE")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = s.Lookup(ctx, "erin")
	assert.ErrorIs(t, err, ErrNotFound)
}
