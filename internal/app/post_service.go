package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gopher-blog/internal/config"
	"gopher-blog/internal/model"
	"gopher-blog/internal/repository"
)

// PostCache caches the full listing per generation. Invalidate must move to a
// new generation, so entries filled under an older one are never read again.
type PostCache interface {
	Generation(ctx context.Context) (int64, error)
	GetPosts(ctx context.Context, gen int64) ([]model.Post, bool, error)
	SetPosts(ctx context.Context, gen int64, posts []model.Post) error
	Invalidate(ctx context.Context) error
}

type PostService struct {
	postRepo     *repository.PostRepository
	userRepo     *repository.UserRepository
	cache        PostCache
	gate         *AdminGate
	authorPolicy string
	now          func() time.Time
	log          logrus.FieldLogger
}

// PostDetail is a post together with its explicitly loaded author. Author is
// nil when the user row is gone.
type PostDetail struct {
	model.Post
	Author *model.User
}

func NewPostService(
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	cache PostCache,
	gate *AdminGate,
	authorPolicy string,
	log logrus.FieldLogger,
) *PostService {
	if authorPolicy == "" {
		authorPolicy = config.EditAuthorReassign
	}
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		cache:        cache,
		gate:         gate,
		authorPolicy: authorPolicy,
		now:          time.Now,
		log:          log,
	}
}

// List returns all posts in id order. The cache generation is taken before
// the database read, so a write committed in between makes the filled entry
// unreachable instead of stale.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	if s.cache == nil {
		return s.postRepo.List(ctx)
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.WithError(err).Warn("read post cache generation failed")
		return s.postRepo.List(ctx)
	}
	posts, ok, err := s.cache.GetPosts(ctx, gen)
	if err != nil {
		s.log.WithError(err).Warn("read post cache failed")
	} else if ok {
		return posts, nil
	}

	posts, err = s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetPosts(ctx, gen, posts); err != nil {
		s.log.WithError(err).Warn("fill post cache failed")
	}
	return posts, nil
}

// ListDetails is List with authors attached.
func (s *PostService) ListDetails(ctx context.Context) ([]PostDetail, error) {
	posts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(posts))
	seen := make(map[uint]bool, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}
	authors, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]PostDetail, 0, len(posts))
	for _, p := range posts {
		d := PostDetail{Post: p}
		if a, ok := authors[p.AuthorID]; ok {
			author := a
			d.Author = &author
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]model.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

func (s *PostService) Get(ctx context.Context, id uint) (*model.Post, error) {
	if id == 0 {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Detail(ctx context.Context, id uint) (*PostDetail, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: *post, Author: author}, nil
}

// Create stores a new post by actor, stamped with today's date.
func (s *PostService) Create(ctx context.Context, actor *model.User, fields model.PostFields) (*model.Post, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}
	fields, err := cleanFields(fields)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Body:     fields.Body,
		ImgURL:   fields.ImgURL,
		Date:     s.now().Format(model.PostDateLayout),
		AuthorID: actor.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"post_id": post.ID, "author_id": actor.ID}).Info("post created")
	return post, nil
}

// Update overwrites the editable fields of post id. The creation date stays.
// Whether the author becomes actor depends on the configured policy.
func (s *PostService) Update(ctx context.Context, actor *model.User, id uint, fields model.PostFields) (*model.Post, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}
	fields, err := cleanFields(fields)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	authorID := existing.AuthorID
	if s.authorPolicy == config.EditAuthorReassign {
		authorID = actor.ID
	}

	post, err := s.postRepo.Update(ctx, id, fields, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTitleExists
		}
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"post_id": post.ID, "author_id": post.AuthorID}).Info("post updated")
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return err
	}
	deleted, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}

	s.invalidate(ctx)
	s.log.WithField("post_id", id).Info("post deleted")
	return nil
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("invalidate post cache failed")
	}
}

func cleanFields(fields model.PostFields) (model.PostFields, error) {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Subtitle = strings.TrimSpace(fields.Subtitle)
	fields.ImgURL = strings.TrimSpace(fields.ImgURL)
	if fields.Title == "" || fields.Subtitle == "" || fields.ImgURL == "" || strings.TrimSpace(fields.Body) == "" {
		return fields, ErrInvalidInput
	}
	return fields, nil
}
