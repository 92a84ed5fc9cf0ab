package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gopher-blog/internal/model"
	"gopher-blog/internal/repository"
	"gopher-blog/internal/session"
	"gopher-blog/internal/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB, *testutil.MemorySessionStore) {
	t.Helper()
	db := testutil.NewDB(t)
	store := testutil.NewMemorySessionStore()
	manager := session.NewManager(store, "secret", time.Hour, testutil.Logger())
	return NewAuthService(repository.NewUserRepository(db), manager, testutil.Logger()), db, store
}

func TestRegisterCreatesAndAuthenticates(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	result, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotZero(t, result.User.ID)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.NotEqual(t, "secret1", result.User.Password, "plaintext must never be stored")

	current := svc.CurrentUser(ctx, result.Ticket.Token)
	require.NotNil(t, current)
	assert.Equal(t, result.User.ID, current.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Alice again", Email: " A@X.com ", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailExists)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRequiresFields(t *testing.T) {
	svc, _, _ := newAuthService(t)
	tests := []RegisterInput{
		{Name: "", Email: "a@x.com", Password: "secret1"},
		{Name: "Alice", Email: "  ", Password: "secret1"},
		{Name: "Alice", Email: "a@x.com", Password: ""},
	}
	for _, in := range tests {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newAuthService(t)

	registered, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, registered.Ticket.Token))
	assert.Nil(t, svc.CurrentUser(ctx, registered.Ticket.Token))
	assert.Equal(t, 0, store.Len())

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{"wrong password", LoginInput{Email: "a@x.com", Password: "wrong"}, ErrIncorrectPassword},
		{"unknown email", LoginInput{Email: "b@x.com", Password: "secret1"}, ErrEmailNotFound},
		{"empty", LoginInput{}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			assert.Equal(t, 0, store.Len(), "failed logins leave the caller anonymous")
		})
	}

	result, err := svc.Login(ctx, LoginInput{Email: "A@x.com", Password: "secret1"})
	require.NoError(t, err)
	current := svc.CurrentUser(ctx, result.Ticket.Token)
	require.NotNil(t, current)
	assert.Equal(t, registered.User.ID, current.ID)
}

func TestCurrentUserDegradesWhenUserVanishes(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newAuthService(t)

	result, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, db.Delete(&model.User{}, result.User.ID).Error)

	assert.Nil(t, svc.CurrentUser(ctx, result.Ticket.Token))
	assert.Nil(t, svc.CurrentUser(ctx, "not-a-token"))
	assert.Nil(t, svc.CurrentUser(ctx, ""))

	_, err = svc.Identify(ctx, result.Ticket.Token)
	assert.ErrorIs(t, err, session.ErrNoSession)
}
