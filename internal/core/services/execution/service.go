package execution

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/domain"
)

// IExecutionService defines the interface for orchestrating submission execution
type IExecutionService interface {
	// Run creates a submission for the request and executes it end to end,
	// returning the full result to the synchronous caller.
	Run(ctx context.Context, req domain.RunRequest) (*domain.SubmissionStatus, error)

	// Execute runs an already-created submission against its challenge's
	// test cases. At most one execution may be in flight per submission;
	// a concurrent call fails with domain.ErrExecutionInProgress and
	// leaves the original submission untouched.
	Execute(ctx context.Context, sub *domain.Submission, stdin string) (*domain.SubmissionStatus, error)

	// GetStatus returns the result of a submission, cache first
	GetStatus(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionStatus, error)
}
