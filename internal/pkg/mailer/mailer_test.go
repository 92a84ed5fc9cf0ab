package mailer

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopher-blog/internal/config"
	"gopher-blog/internal/model"
)

func TestContactEmail(t *testing.T) {
	e := ContactEmail("blog@x.com", "owner@x.com", model.ContactMessage{
		Name: "Bob", Email: "bob@x.com", Phone: "555", Message: "hello",
	})

	assert.Equal(t, "blog@x.com", e.From)
	assert.Equal(t, []string{"owner@x.com"}, e.To)
	assert.Equal(t, []string{"bob@x.com"}, e.ReplyTo)
	assert.Equal(t, "New message from Bob", e.Subject)
	assert.Contains(t, string(e.Text), "Phone: 555")
	assert.Contains(t, string(e.Text), "hello")

	raw, err := e.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Subject: New message from Bob")
}

func TestSendWithoutOwnerIsNoop(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(config.MailConfig{SMTPHost: "127.0.0.1", SMTPPort: 1}, log)
	assert.NoError(t, s.SendContactNotification(model.ContactMessage{Name: "Bob", Email: "b@x.com", Message: "hi"}))
}
