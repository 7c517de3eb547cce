package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client, zap.NewNop()), mr
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	acquired, err := locker.Acquire(ctx, "test:lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, locker.Release(ctx, "test:lock"))

	// Re-acquirable after release
	acquired, err = locker.Acquire(ctx, "test:lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

// TestRedisLocker_Contention verifies a held lock reports false, not an
// error, to a second acquirer.
func TestRedisLocker_Contention(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	other := NewRedisLocker(client, zap.NewNop())

	acquired, err := locker.Acquire(ctx, "test:lock", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	acquired, err = other.Acquire(ctx, "test:lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestRedisLocker_ReleaseNotOwned(t *testing.T) {
	locker, _ := newTestLocker(t)

	// Releasing a lock this instance never took is a no-op.
	assert.NoError(t, locker.Release(context.Background(), "never:taken"))
}

// TestRedisLocker_Expiry verifies a lock becomes available again after
// its TTL lapses.
func TestRedisLocker_Expiry(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	acquired, err := locker.Acquire(ctx, "test:lock", 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(time.Second)

	acquired, err = locker.Acquire(ctx, "test:lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}
