package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/core/ports/primary"
)

const (
	lockKeyPrefix = "execution:lock:"
	lockValue     = "1"
)

// DefaultLockTTL bounds how long a stale lock can block re-execution.
// There is no renewal: an execution outliving the TTL is an accepted risk.
const DefaultLockTTL = 300 * time.Second

// ExecutionLocker implements the LockManager interface with Redis
type ExecutionLocker struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewExecutionLocker creates a new Redis execution locker
func NewExecutionLocker(redisClient *redis.Client, logger primary.Logger) *ExecutionLocker {
	return &ExecutionLocker{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Acquire sets the lock key if absent. A store failure reports the lock
// as not acquired: granting access on error would break mutual exclusion.
func (l *ExecutionLocker) Acquire(ctx context.Context, submissionID uuid.UUID, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}

	lockKey := fmt.Sprintf("%s%s", lockKeyPrefix, submissionID)
	acquired, err := l.redisClient.SetNX(ctx, lockKey, lockValue, ttl).Result()
	if err != nil {
		l.logger.Error("Failed to acquire execution lock", "submissionId", submissionID, "error", err)
		return false, fmt.Errorf("failed to acquire execution lock: %w", err)
	}

	return acquired, nil
}

// Release deletes the lock key. Failures are logged, never raised; the
// TTL expires stale locks without intervention.
func (l *ExecutionLocker) Release(ctx context.Context, submissionID uuid.UUID) {
	lockKey := fmt.Sprintf("%s%s", lockKeyPrefix, submissionID)
	if err := l.redisClient.Del(ctx, lockKey).Err(); err != nil {
		l.logger.Warn("Failed to release execution lock", "submissionId", submissionID, "error", err)
	}
}
