package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/domain/inventory"
)

// releaseScript deletes the lock key only when it still holds our token,
// so an expired lock reacquired by another scan is never released by us.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// RedisScanLocker implements ScanLocker on Redis SETNX with a TTL.
// Suitable for distributed deployments where multiple instances accept
// scans for the same drums.
type RedisScanLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisScanLocker creates a Redis-backed scan locker and verifies
// connectivity before returning.
func NewRedisScanLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) (*RedisScanLocker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisScanLocker{
		client:    client,
		keyPrefix: "scan:lock:",
		ttl:       ttl,
		logger:    logger,
	}, nil
}

// Acquire takes the per-drum lock via SETNX. The TTL bounds how long a
// crashed instance can hold a drum hostage.
func (l *RedisScanLocker) Acquire(ctx context.Context, drumID int64) (func(), error) {
	key := fmt.Sprintf("%s%d", l.keyPrefix, drumID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire scan lock: %w", err)
	}
	if !ok {
		return nil, &inventory.ScanInProgressError{DrumID: drumID}
	}

	release := func() {
		// Best effort; TTL expiry is the backstop.
		if err := l.client.Eval(context.Background(), releaseScript, []string{key}, token).Err(); err != nil {
			l.logger.Warn("failed to release scan lock",
				zap.Int64("drum_id", drumID),
				zap.Error(err),
			)
		}
	}
	return release, nil
}

var _ inventory.ScanLocker = (*RedisScanLocker)(nil)
