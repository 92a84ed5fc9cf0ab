// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gopher-blog/internal/config"
	"gopher-blog/internal/platform/database"
)

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(context.Background(), config.DriverSQLite, ":memory:", Logger())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Logger discards everything.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Config returns defaults suitable for tests.
func Config() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "gopher-blog-test", Env: "test", GinMode: "test"},
		Auth: config.AuthConfig{
			SecretKey:           "test-secret",
			SessionExpireMinute: 60,
			SessionStore:        config.SessionStoreDatabase,
			AdminUserID:         1,
			CookieName:          "blog_session",
		},
		Blog: config.BlogConfig{
			Title:            "Test Blog",
			SiteURL:          "http://blog.test",
			EditAuthorPolicy: config.EditAuthorReassign,
		},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
	}
}

// MemorySessionStore is an in-process session.Store.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]uint
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]uint)}
}

func (s *MemorySessionStore) Save(_ context.Context, sessionID string, userID uint, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = userID
	return nil
}

func (s *MemorySessionStore) Find(_ context.Context, sessionID string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.entries[sessionID]
	return id, ok, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
