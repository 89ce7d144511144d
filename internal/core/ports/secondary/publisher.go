package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/domain"
)

// ProgressPublisher broadcasts execution events to external observers.
// Best-effort broadcast, no delivery guarantee and no retry; a publish
// failure is returned for the caller to decide on.
type ProgressPublisher interface {
	// PublishUpdate broadcasts a live progress event
	PublishUpdate(ctx context.Context, event domain.ExecutionProgressEvent) error

	// PublishComplete broadcasts the final result of a submission
	PublishComplete(ctx context.Context, submissionID uuid.UUID, result domain.SubmissionStatus) error

	// PublishError broadcasts a terminal error for a submission
	PublishError(ctx context.Context, submissionID uuid.UUID, message string) error
}
