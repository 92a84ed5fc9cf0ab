package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]uint
	findErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]uint)}
}

func (s *memoryStore) Save(_ context.Context, sessionID string, userID uint, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = userID
	return nil
}

func (s *memoryStore) Find(_ context.Context, sessionID string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return 0, false, s.findErr
	}
	id, ok := s.entries[sessionID]
	return id, ok, nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoginResolveLogout(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	m := NewManager(store, "secret", time.Hour, quietLogger())

	_, ok := m.Resolve(ctx, "")
	assert.False(t, ok, "no token is anonymous")

	ticket, err := m.Login(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Token)
	assert.True(t, ticket.ExpiresAt.After(time.Now()))

	userID, ok := m.Resolve(ctx, ticket.Token)
	require.True(t, ok)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, m.Logout(ctx, ticket.Token))
	_, ok = m.Resolve(ctx, ticket.Token)
	assert.False(t, ok, "revoked token must not resolve")
	assert.Empty(t, store.entries)
}

func TestLoginRejectsZeroUser(t *testing.T) {
	m := NewManager(newMemoryStore(), "secret", time.Hour, quietLogger())
	_, err := m.Login(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestResolveDegradesToAnonymous(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	m := NewManager(store, "secret", time.Hour, quietLogger())
	ticket, err := m.Login(ctx, 5)
	require.NoError(t, err)

	other := NewManager(store, "other-secret", time.Hour, quietLogger())
	_, ok := other.Resolve(ctx, ticket.Token)
	assert.False(t, ok, "foreign signature")

	_, ok = m.Resolve(ctx, "garbage")
	assert.False(t, ok, "unparseable token")

	for sid := range store.entries {
		store.entries[sid] = 6
	}
	_, ok = m.Resolve(ctx, ticket.Token)
	assert.False(t, ok, "session bound to another user")

	store.findErr = errors.New("store down")
	_, ok = m.Resolve(ctx, ticket.Token)
	assert.False(t, ok, "store failure")
}

func TestLogoutIgnoresUnknownTokens(t *testing.T) {
	m := NewManager(newMemoryStore(), "secret", time.Hour, quietLogger())
	assert.NoError(t, m.Logout(context.Background(), ""))
	assert.NoError(t, m.Logout(context.Background(), "garbage"))
}

func TestLookupSeparatesRevokedFromUnavailable(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	m := NewManager(store, "secret", time.Hour, quietLogger())

	ticket, err := m.Login(ctx, 3)
	require.NoError(t, err)

	userID, err := m.Lookup(ctx, ticket.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)

	_, err = m.Lookup(ctx, "garbage")
	assert.ErrorIs(t, err, ErrNoSession)

	storeErr := errors.New("store down")
	store.findErr = storeErr
	_, err = m.Lookup(ctx, ticket.Token)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrNoSession)

	store.findErr = nil
	require.NoError(t, m.Logout(ctx, ticket.Token))
	_, err = m.Lookup(ctx, ticket.Token)
	assert.ErrorIs(t, err, ErrNoSession)
}
