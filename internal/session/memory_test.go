package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softveda-site/internal/domain"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	sess, err := store.Create(ctx, domain.UserIdentity(7, "A"))
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserIdentity(7, "A"), got.Identity)

	require.NoError(t, store.Destroy(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Destroy(ctx, sess.ID))
}

func TestMemoryStoreRejectsMixedIdentity(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Create(context.Background(), domain.Identity{Role: domain.RoleAdmin, AdminID: 1, UserID: 2})
	require.Error(t, err)
	assert.Zero(t, store.Len())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	expiring, err := store.Create(ctx, domain.AdminIdentity(1))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	fresh, err := store.Create(ctx, domain.AdminIdentity(2))
	require.NoError(t, err)

	now = now.Add(31 * time.Second)
	_, err = store.Get(ctx, expiring.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, fresh.ID)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Zero(t, store.Len())
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id, err := NewID()
		require.NoError(t, err)
		assert.Len(t, id, 43)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestMemoryStoreSweeperStops(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := store.Create(ctx, domain.UserIdentity(1, "A"))
	require.NoError(t, err)

	store.StartSweeper(ctx, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
}
