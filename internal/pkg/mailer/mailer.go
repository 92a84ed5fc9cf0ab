package mailer

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"gopher-blog/internal/config"
	"gopher-blog/internal/model"
)

// Sender delivers mail through an SMTP relay.
type Sender struct {
	cfg    config.MailConfig
	logger logrus.FieldLogger
}

func NewSender(cfg config.MailConfig, logger logrus.FieldLogger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendContactNotification forwards a contact form submission to the blog
// owner, with Reply-To set to the visitor.
func (s *Sender) SendContactNotification(msg model.ContactMessage) error {
	if s.cfg.OwnerAddress == "" {
		return nil
	}
	e := ContactEmail(s.cfg.From, s.cfg.OwnerAddress, msg)

	addr := s.cfg.SMTPHost + ":" + strconv.Itoa(s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.WithError(err).Errorf("failed to send contact notification from %s", msg.Email)
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	s.logger.Infof("contact notification sent to %s", s.cfg.OwnerAddress)
	return nil
}

func ContactEmail(from, to string, msg model.ContactMessage) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.ReplyTo = []string{msg.Email}
	e.Subject = fmt.Sprintf("New message from %s", msg.Name)

	body := fmt.Sprintf("Name: %s\nEmail: %s\n", msg.Name, msg.Email)
	if msg.Phone != "" {
		body += fmt.Sprintf("Phone: %s\n", msg.Phone)
	}
	body += "\n" + msg.Message + "\n"
	e.Text = []byte(body)
	return e
}
