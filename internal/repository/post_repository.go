package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopher-blog/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts post. A taken title yields ErrDuplicate.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(post).Error; err != nil {
		if err := translate(err); errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

// List returns every post ordered by id.
func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts by author failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

// Update overwrites the editable fields and the author of post id. The date
// column is never touched. It returns nil, nil when the post does not exist.
func (r *PostRepository) Update(ctx context.Context, id uint, fields model.PostFields, authorID uint) (*model.Post, error) {
	var updated *model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("query post by id failed: %w", err)
		}

		if err := tx.Model(&post).Select("title", "subtitle", "body", "img_url", "author_id").Updates(model.Post{
			Title:    fields.Title,
			Subtitle: fields.Subtitle,
			Body:     fields.Body,
			ImgURL:   fields.ImgURL,
			AuthorID: authorID,
		}).Error; err != nil {
			if err := translate(err); errors.Is(err, ErrDuplicate) {
				return err
			}
			return fmt.Errorf("update post failed: %w", err)
		}
		post.Title = fields.Title
		post.Subtitle = fields.Subtitle
		post.Body = fields.Body
		post.ImgURL = fields.ImgURL
		post.AuthorID = authorID
		updated = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes post id for good. It reports false when nothing matched.
func (r *PostRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete post failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
