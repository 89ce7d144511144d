package secondary

import (
	"context"

	"gitlab.com/codequest-2025.net/internal/domain"
)

// ChallengeRepository exposes the read-only challenge data the
// execution engine needs.
type ChallengeRepository interface {
	// GetTestCases returns the normalized test case set for a challenge
	GetTestCases(ctx context.Context, challengeID string) ([]domain.TestCase, error)
}
