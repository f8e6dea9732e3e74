package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/repository"
)

const lockKeyPrefix = "profile:lock:"

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another writer is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type profileLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileLocker(client *redis.Client, ttl time.Duration) repository.ProfileLocker {
	return &profileLocker{client: client, ttl: ttl}
}

func (l *profileLocker) Lock(ctx context.Context, userID string) (func(context.Context) error, error) {
	key := lockKeyPrefix + userID
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire profile lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrLockNotAcquired
	}

	unlock := func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("release profile lock: %w", err)
		}
		return nil
	}
	return unlock, nil
}
