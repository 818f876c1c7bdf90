package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisLockExclusion(t *testing.T) {
	client := newTestRedisClient(t)
	ctx := context.Background()

	first := NewRedisLock(client, "/tmp/cache-a")
	require.NoError(t, first.Lock(ctx, time.Second))

	second := NewRedisLock(client, "/tmp/cache-a")
	lockCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	err := second.Lock(lockCtx, time.Second)
	require.Error(t, err, "second holder must not acquire while first holds the lock")

	require.NoError(t, first.Unlock(ctx))

	lockCtx2, cancel2 := context.WithTimeout(ctx, time.Second)
	defer cancel2()
	require.NoError(t, second.Lock(lockCtx2, time.Second))
	require.NoError(t, second.Unlock(ctx))
}

func TestRedisLockUnlockOnlyByOwner(t *testing.T) {
	client := newTestRedisClient(t)
	ctx := context.Background()

	owner := NewRedisLock(client, "/tmp/cache-b")
	require.NoError(t, owner.Lock(ctx, time.Second))

	impostor := NewRedisLock(client, "/tmp/cache-b")
	impostor.token = "wrong-token"
	require.NoError(t, impostor.Unlock(ctx)) // no-op, doesn't own the key

	stillLocked := NewRedisLock(client, "/tmp/cache-b")
	lockCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	require.Error(t, stillLocked.Lock(lockCtx, time.Second))
}
