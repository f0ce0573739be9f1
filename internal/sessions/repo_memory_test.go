package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness-backend/internal/wizard"
)

func newTestSession(id string) *Session {
	return &Session{ID: id, Wizard: wizard.New()}
}

func TestMemoryRepoIdleExpiry(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo(30 * time.Minute)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestSession("a")))

	now = now.Add(20 * time.Minute)
	_, err := repo.Get(ctx, "a")
	require.NoError(t, err, "activity within ttl")

	now = now.Add(20 * time.Minute)
	_, err = repo.Get(ctx, "a")
	require.NoError(t, err, "previous get refreshed the idle timer")

	now = now.Add(31 * time.Minute)
	_, err = repo.Get(ctx, "a")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 0, repo.Len())
}

func TestMemoryRepoSweep(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo(time.Hour)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestSession("old")))
	now = now.Add(50 * time.Minute)
	require.NoError(t, repo.Create(ctx, newTestSession("new")))

	assert.Equal(t, 1, repo.Sweep(ctx, now.Add(20*time.Minute)))
	assert.Equal(t, 1, repo.Len())
	_, err := repo.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestMemoryRepoDelete(t *testing.T) {
	repo := NewMemoryRepo(0)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newTestSession("a")))
	require.NoError(t, repo.Delete(ctx, "a"))
	assert.True(t, errors.Is(repo.Delete(ctx, "a"), ErrNotFound))
	_, err := repo.Get(ctx, "a")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryRepoZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo(0)
	repo.now = func() time.Time { return now }
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newTestSession("a")))
	assert.Equal(t, 0, repo.Sweep(ctx, now.Add(24*365*time.Hour)))
}
