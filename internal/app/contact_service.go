package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gopher-blog/internal/model"
)

// ContactPublisher hands a contact message to whatever delivers it.
type ContactPublisher interface {
	Publish(ctx context.Context, msg model.ContactMessage) error
}

type ContactService struct {
	publisher ContactPublisher
	log       logrus.FieldLogger
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func NewContactService(publisher ContactPublisher, log logrus.FieldLogger) *ContactService {
	return &ContactService{publisher: publisher, log: log}
}

func (s *ContactService) Submit(ctx context.Context, input ContactInput) error {
	msg := model.ContactMessage{
		Name:      strings.TrimSpace(input.Name),
		Email:     NormalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: time.Now(),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return ErrInvalidInput
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("enqueue contact message failed: %w", err)
	}
	s.log.WithField("email", msg.Email).Info("contact message accepted")
	return nil
}
