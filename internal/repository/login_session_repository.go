package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gopher-blog/internal/model"
)

// LoginSessionRepository is the database backed session store.
type LoginSessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLoginSessionRepository(db *gorm.DB) *LoginSessionRepository {
	return &LoginSessionRepository{db: db, now: time.Now}
}

func (r *LoginSessionRepository) Save(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	now := r.now()
	session := &model.LoginSession{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create login session failed: %w", err)
	}
	return nil
}

func (r *LoginSessionRepository) Find(ctx context.Context, sessionID string) (uint, bool, error) {
	var session model.LoginSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", sessionID, r.now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query login session failed: %w", err)
	}
	return session.UserID, true, nil
}

func (r *LoginSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&model.LoginSession{}).Error; err != nil {
		return fmt.Errorf("delete login session failed: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry and returns how many went.
func (r *LoginSessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", r.now()).Delete(&model.LoginSession{})
	if result.Error != nil {
		return 0, fmt.Errorf("purge login sessions failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
