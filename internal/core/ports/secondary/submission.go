package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/domain"
)

// SubmissionRepository persists submission lifecycle state
type SubmissionRepository interface {
	// SaveSubmission inserts or updates a submission
	SaveSubmission(ctx context.Context, sub *domain.Submission) error

	// GetSubmission retrieves a submission by ID, (nil, nil) when absent
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)
}
