package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gopher-blog/internal/model"
)

func TestAdminGate(t *testing.T) {
	gate := NewAdminGate(1)
	tests := []struct {
		name    string
		user    *model.User
		wantErr error
	}{
		{"anonymous", nil, ErrForbidden},
		{"admin", &model.User{ID: 1}, nil},
		{"other user", &model.User{ID: 2}, ErrForbidden},
		{"unsaved user", &model.User{}, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.RequireAdmin(tt.user)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, gate.IsAdmin(tt.user))
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, gate.IsAdmin(tt.user))
			}
		})
	}
}
