package secondary

import (
	"context"

	"gitlab.com/codequest-2025.net/internal/domain"
)

// ExecutorClient is the narrow contract to the external sandbox service.
type ExecutorClient interface {
	// Execute runs one (code, language, input) triple, blocking until
	// the sandbox answers. No retries here; the dispatcher owns per-test
	// failure handling.
	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error)
}
