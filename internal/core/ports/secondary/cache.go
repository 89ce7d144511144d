package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/domain"
)

// ResultCache keeps completed submission results for a bounded time so
// repeated status fetches stay idempotent and cheap.
type ResultCache interface {
	// Set stores the result under the submission's key
	Set(ctx context.Context, status domain.SubmissionStatus) error

	// Get retrieves a cached result, (nil, nil) when absent
	Get(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionStatus, error)
}
