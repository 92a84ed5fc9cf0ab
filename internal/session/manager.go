// Package session establishes and restores the logged-in identity.
//
// A session is a random id kept in a Store with a TTL, referenced from a
// signed token the client carries in a cookie. Logging out deletes the stored
// id, so a copied cookie stops working even before it expires.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gopher-blog/internal/pkg/jwtutil"
)

var (
	ErrInvalidUser = errors.New("invalid user id")
	// ErrNoSession means the token is unusable for good: it does not parse,
	// or its session was revoked or expired.
	ErrNoSession = errors.New("no such session")
)

// Store persists session id -> user id mappings.
type Store interface {
	Save(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	// Find reports found=false for unknown or expired ids.
	Find(ctx context.Context, sessionID string) (userID uint, found bool, err error)
	Delete(ctx context.Context, sessionID string) error
}

type Ticket struct {
	Token     string
	ExpiresAt time.Time
}

type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	log    logrus.FieldLogger
}

func NewManager(store Store, secret string, ttl time.Duration, log logrus.FieldLogger) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
		log:    log,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Login moves the caller from anonymous to authenticated as userID.
func (m *Manager) Login(ctx context.Context, userID uint) (*Ticket, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	sessionID := uuid.NewString()
	if err := m.store.Save(ctx, sessionID, userID, m.ttl); err != nil {
		return nil, fmt.Errorf("save session failed: %w", err)
	}
	token, expiresAt, err := jwtutil.GenerateToken(m.secret, m.ttl, userID, sessionID)
	if err != nil {
		_ = m.store.Delete(ctx, sessionID)
		return nil, err
	}
	return &Ticket{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout invalidates the session behind token. Tokens that do not parse are
// ignored, there is nothing to revoke.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := jwtutil.ParseToken(m.secret, token)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	return nil
}

// Lookup maps a token back to a user id. It returns ErrNoSession when the
// token can never resolve, and a wrapped store error when the answer is
// unknown for now.
func (m *Manager) Lookup(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrNoSession
	}
	claims, err := jwtutil.ParseToken(m.secret, token)
	if err != nil {
		return 0, ErrNoSession
	}
	userID, found, err := m.store.Find(ctx, claims.SessionID)
	if err != nil {
		return 0, fmt.Errorf("find session failed: %w", err)
	}
	if !found || userID != claims.UserID {
		return 0, ErrNoSession
	}
	return userID, nil
}

// Resolve is Lookup that never fails: anything wrong with the token or the
// store degrades to anonymous.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, bool) {
	userID, err := m.Lookup(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.WithError(err).Warn("session lookup failed")
		}
		return 0, false
	}
	return userID, true
}
