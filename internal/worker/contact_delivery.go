package worker

import (
	"context"

	"github.com/sirupsen/logrus"

	"gopher-blog/internal/model"
	"gopher-blog/internal/repository"
)

type ContactNotifier interface {
	SendContactNotification(msg model.ContactMessage) error
}

// ContactDelivery stores a contact message and notifies the owner. Storing
// comes first so a mail outage never loses a message.
type ContactDelivery struct {
	repo     *repository.ContactRepository
	notifier ContactNotifier
	log      logrus.FieldLogger
}

func NewContactDelivery(repo *repository.ContactRepository, notifier ContactNotifier, log logrus.FieldLogger) *ContactDelivery {
	return &ContactDelivery{repo: repo, notifier: notifier, log: log}
}

func (d *ContactDelivery) Deliver(ctx context.Context, msg model.ContactMessage) error {
	msg.ID = 0
	if err := d.repo.Create(ctx, &msg); err != nil {
		return err
	}
	if err := d.notifier.SendContactNotification(msg); err != nil {
		d.log.WithError(err).WithField("contact_id", msg.ID).Warn("contact stored but notification failed")
	}
	return nil
}

// Publish delivers synchronously. It is used in place of the queue when
// RabbitMQ is disabled.
func (d *ContactDelivery) Publish(ctx context.Context, msg model.ContactMessage) error {
	return d.Deliver(ctx, msg)
}
