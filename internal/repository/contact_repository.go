package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gopher-blog/internal/model"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create contact message failed: %w", err)
	}
	return nil
}

func (r *ContactRepository) ListRecent(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var messages []model.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list contact messages failed: %w", err)
	}
	return messages, nil
}
