package progress

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

// Channel names are part of the external contract; the live-progress UI
// subscribes to them directly.
const (
	UpdateChannel   = "execution:update"
	CompleteChannel = "execution:complete"
	ErrorChannel    = "execution:error"
)

const (
	completeEventType = "execution_complete"
	errorEventType    = "execution_error"
)

type completeEnvelope struct {
	SubmissionID string                  `json:"submissionId"`
	Type         string                  `json:"type"`
	Result       domain.SubmissionStatus `json:"result"`
	Timestamp    string                  `json:"timestamp"`
}

type errorEnvelope struct {
	SubmissionID string `json:"submissionId"`
	Type         string `json:"type"`
	Error        string `json:"error"`
	Timestamp    string `json:"timestamp"`
}

// RedisProgressPublisher implements the ProgressPublisher interface with
// Redis pub/sub. Fire-and-forget relative to orchestration; its own
// calls still surface errors to the caller.
type RedisProgressPublisher struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewRedisProgressPublisher creates a new Redis progress publisher
func NewRedisProgressPublisher(redisClient *redis.Client, logger primary.Logger) *RedisProgressPublisher {
	return &RedisProgressPublisher{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishUpdate broadcasts a live progress event on the update channel
func (p *RedisProgressPublisher) PublishUpdate(ctx context.Context, event domain.ExecutionProgressEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal progress event", "submissionId", event.SubmissionID, "error", err)
		return fmt.Errorf("failed to marshal progress event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, UpdateChannel, payload).Err(); err != nil {
		p.logger.Error("Failed to publish progress event", "submissionId", event.SubmissionID, "error", err)
		return fmt.Errorf("failed to publish progress event: %w", err)
	}

	return nil
}

// PublishComplete broadcasts the final result envelope
func (p *RedisProgressPublisher) PublishComplete(ctx context.Context, submissionID uuid.UUID, result domain.SubmissionStatus) error {
	envelope := completeEnvelope{
		SubmissionID: submissionID.String(),
		Type:         completeEventType,
		Result:       result,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("Failed to marshal completion event", "submissionId", submissionID, "error", err)
		return fmt.Errorf("failed to marshal completion event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, CompleteChannel, payload).Err(); err != nil {
		p.logger.Error("Failed to publish completion event", "submissionId", submissionID, "error", err)
		return fmt.Errorf("failed to publish completion event: %w", err)
	}

	return nil
}

// PublishError broadcasts a terminal error envelope
func (p *RedisProgressPublisher) PublishError(ctx context.Context, submissionID uuid.UUID, message string) error {
	envelope := errorEnvelope{
		SubmissionID: submissionID.String(),
		Type:         errorEventType,
		Error:        message,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("Failed to marshal error event", "submissionId", submissionID, "error", err)
		return fmt.Errorf("failed to marshal error event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, ErrorChannel, payload).Err(); err != nil {
		p.logger.Error("Failed to publish error event", "submissionId", submissionID, "error", err)
		return fmt.Errorf("failed to publish error event: %w", err)
	}

	return nil
}
