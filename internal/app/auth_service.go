package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"gopher-blog/internal/model"
	"gopher-blog/internal/pkg/password"
	"gopher-blog/internal/repository"
	"gopher-blog/internal/session"
)

type AuthService struct {
	userRepo *repository.UserRepository
	sessions *session.Manager
	log      logrus.FieldLogger
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User   *model.User
	Ticket *session.Ticket
}

func NewAuthService(userRepo *repository.UserRepository, sessions *session.Manager, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		log:      log,
	}
}

// NormalizeEmail is applied on register and login, making emails
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and logs them in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	digest, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: digest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent registration
			return nil, ErrEmailExists
		}
		return nil, err
	}

	ticket, err := s.sessions.Login(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")
	return &AuthResult{User: user, Ticket: ticket}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrEmailNotFound
	}
	if !password.Verify(input.Password, user.Password) {
		s.log.WithField("user_id", user.ID).Warn("login with incorrect password")
		return nil, ErrIncorrectPassword
	}

	ticket, err := s.sessions.Login(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &AuthResult{User: user, Ticket: ticket}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Logout(ctx, token)
}

// Identify resolves the session token to a user. It returns
// session.ErrNoSession when the token is invalid, revoked or expired, or when
// its user has since disappeared. Other errors are transient.
func (s *AuthService) Identify(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, session.ErrNoSession
	}
	return user, nil
}

// CurrentUser is Identify with every failure degraded to nil.
func (s *AuthService) CurrentUser(ctx context.Context, token string) *model.User {
	user, err := s.Identify(ctx, token)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			s.log.WithError(err).Warn("resolve current user failed")
		}
		return nil
	}
	return user
}
