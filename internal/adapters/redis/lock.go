package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/berryair/concierge/pkg/ports"
)

// unlockScript releases the lock only when the holder token still matches,
// so a lock that expired and was re-acquired elsewhere is never deleted.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Locker implements ports.DistributedLocker with Redis SET NX PX.
type Locker struct {
	client *backend.Client
	prefix string
	retry  time.Duration
}

var _ ports.DistributedLocker = (*Locker)(nil)

// NewLocker creates a locker sharing the store's client.
func NewLocker(client *backend.Client, prefix string) *Locker {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Locker{
		client: client,
		prefix: prefix,
		retry:  50 * time.Millisecond,
	}
}

// Lock acquires the lock for key, polling until it succeeds or the context
// is canceled. The returned UnlockFunc must be called to release it.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func(ctx context.Context) error {
				return l.client.Eval(ctx, unlockScript, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
