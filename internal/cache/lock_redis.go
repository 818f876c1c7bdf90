package cache

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// RedisLock is the distributed alternative to DirLock for deployments where
// the cache directory is shared across machines (e.g. a network filesystem
// that does not honor flock semantics) and maintenance must still be
// serialized across processes on different hosts.
type RedisLock struct {
	client *redis.Client
	key    string
	token  string
}

// NewRedisLock constructs a lock bound to client, keyed by a fixed namespace
// derived from dir so unrelated cache directories never contend.
func NewRedisLock(client *redis.Client, dir string) *RedisLock {
	return &RedisLock{client: client, key: "kreuzberg:cache-lock:" + dir}
}

// Lock attempts to acquire the lock with the given lease ttl, retrying on a
// short interval until ctx is done. The lease ensures a crashed holder's lock
// is reclaimed rather than held forever.
func (l *RedisLock) Lock(ctx context.Context, ttl time.Duration) error {
	l.token = randomToken()
	for {
		ok, err := l.client.SetNX(ctx, l.key, l.token, ttl).Result()
		if err != nil {
			return domain.WrapError(domain.KindCache, err, "acquire redis lock %s", l.key)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return domain.WrapError(domain.KindCache, ctx.Err(), "acquire redis lock %s", l.key)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// unlockScript only deletes the key if it still holds this holder's token, so
// a lock whose lease already expired and was reacquired by another holder is
// never released out from under them.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// Unlock releases the lock if this holder still owns it.
func (l *RedisLock) Unlock(ctx context.Context) error {
	if err := l.client.Eval(ctx, unlockScript, []string{l.key}, l.token).Err(); err != nil {
		return domain.WrapError(domain.KindCache, err, "release redis lock %s", l.key)
	}
	return nil
}

func randomToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	const hex = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hex[c>>4]
		out[i*2+1] = hex[c&0xF]
	}
	return string(out)
}
