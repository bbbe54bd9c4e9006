package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

const (
	lockPrefix     = "lock:"
	defaultLockTTL = 10 * time.Second
	pollInterval   = 50 * time.Millisecond
	releaseTimeout = 2 * time.Second
)

// releaseScript deletes the key only while it still holds the caller's token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// LockClient is the subset of *redis.Client used by KeyLock.
type LockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// KeyLock is a best-effort mutual exclusion lock keyed by string. Each
// holder writes a random token; the key expires after ttl so a crashed
// holder cannot block others forever.
type KeyLock struct {
	client LockClient
	ttl    time.Duration
	wait   time.Duration
	log    zerolog.Logger
}

func NewKeyLock(client LockClient, ttl, wait time.Duration, log zerolog.Logger) *KeyLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &KeyLock{client: client, ttl: ttl, wait: wait, log: log}
}

// Lock blocks until key is acquired or the wait budget runs out, in which
// case it returns domain.ErrBusy. Redis failures are returned as-is.
func (l *KeyLock) Lock(ctx context.Context, key string) (func(), error) {
	full := lockPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, full, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", full, err)
		}
		if ok {
			return func() { l.release(full, token) }, nil
		}
		if !time.Now().Before(deadline) {
			return nil, domain.ErrBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// release runs on its own context: the request context may already be done.
func (l *KeyLock) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	n, err := l.client.Eval(ctx, releaseScript, []string{key}, token).Int64()
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("lock release failed")
		return
	}
	if n == 0 {
		l.log.Warn().Str("key", key).Msg("lock expired before release")
	}
}
