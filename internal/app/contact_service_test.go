package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopher-blog/internal/model"
	"gopher-blog/internal/testutil"
)

type recordingPublisher struct {
	published []model.ContactMessage
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, msg model.ContactMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func TestContactSubmit(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewContactService(pub, testutil.Logger())

	err := svc.Submit(context.Background(), ContactInput{
		Name: " Bob ", Email: "Bob@X.com", Phone: "555", Message: "hello there",
	})
	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "Bob", pub.published[0].Name)
	assert.Equal(t, "bob@x.com", pub.published[0].Email)
	assert.False(t, pub.published[0].CreatedAt.IsZero())
}

func TestContactSubmitErrors(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewContactService(pub, testutil.Logger())

	err := svc.Submit(context.Background(), ContactInput{Name: "Bob", Email: "b@x.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	pub.err = errors.New("broker down")
	err = svc.Submit(context.Background(), ContactInput{Name: "Bob", Email: "b@x.com", Message: "hi"})
	assert.Error(t, err)
	assert.Empty(t, pub.published)
}
