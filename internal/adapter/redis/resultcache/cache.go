package resultcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/core/ports/primary"
	"gitlab.com/codequest-2025.net/internal/domain"
)

const submissionKeyPrefix = "submission:"

// DefaultResultTTL is how long completed results stay cached.
const DefaultResultTTL = 3600 * time.Second

// SubmissionResultCache implements the ResultCache interface with Redis
type SubmissionResultCache struct {
	redisClient *redis.Client
	logger      primary.Logger
	ttl         time.Duration
}

// NewSubmissionResultCache creates a new Redis result cache
func NewSubmissionResultCache(redisClient *redis.Client, logger primary.Logger, ttl time.Duration) *SubmissionResultCache {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &SubmissionResultCache{
		redisClient: redisClient,
		logger:      logger,
		ttl:         ttl,
	}
}

// Set stores the result JSON under the submission's key with the cache TTL
func (c *SubmissionResultCache) Set(ctx context.Context, status domain.SubmissionStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		c.logger.Error("Failed to marshal submission result", "submissionId", status.SubmissionID, "error", err)
		return fmt.Errorf("failed to marshal submission result: %w", err)
	}

	key := fmt.Sprintf("%s%s", submissionKeyPrefix, status.SubmissionID)
	if err := c.redisClient.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to cache submission result", "submissionId", status.SubmissionID, "error", err)
		return fmt.Errorf("failed to cache submission result: %w", err)
	}

	return nil
}

// Get retrieves a cached result, (nil, nil) on a miss
func (c *SubmissionResultCache) Get(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionStatus, error) {
	key := fmt.Sprintf("%s%s", submissionKeyPrefix, submissionID)
	payload, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		c.logger.Error("Failed to get cached submission result", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get cached submission result: %w", err)
	}

	var status domain.SubmissionStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		c.logger.Error("Failed to unmarshal cached submission result", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal cached submission result: %w", err)
	}

	return &status, nil
}
