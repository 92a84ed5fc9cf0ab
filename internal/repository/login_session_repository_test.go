package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopher-blog/internal/testutil"
)

func TestLoginSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLoginSessionRepository(testutil.NewDB(t))
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, "live", 1, time.Hour))
	require.NoError(t, repo.Save(ctx, "stale", 2, time.Minute))

	userID, found, err := repo.Find(ctx, "live")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint(1), userID)

	_, found, err = repo.Find(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, found)

	now = now.Add(10 * time.Minute)
	_, found, err = repo.Find(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, found, "expired sessions are not returned")

	purged, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	require.NoError(t, repo.Delete(ctx, "live"))
	_, found, err = repo.Find(ctx, "live")
	require.NoError(t, err)
	assert.False(t, found)
}
