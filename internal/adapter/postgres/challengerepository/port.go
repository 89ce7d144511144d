package challengerepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codequest-2025.net/internal/core/ports/primary"
	"gitlab.com/codequest-2025.net/internal/domain"
)

// ChallengeRepository implements the ChallengeRepository interface with
// PostgreSQL. Challenges are owned by the catalog collaborator; this
// subsystem only reads their test case documents.
type ChallengeRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewChallengeRepository creates a new PostgreSQL challenge repository
func NewChallengeRepository(db *sqlx.DB, logger primary.Logger) *ChallengeRepository {
	return &ChallengeRepository{
		db:     db,
		logger: logger,
	}
}

// GetTestCases reads the challenge's raw test case JSON and normalizes
// it, legacy field names included.
func (r *ChallengeRepository) GetTestCases(ctx context.Context, challengeID string) ([]domain.TestCase, error) {
	query := `SELECT test_cases FROM challenges WHERE id = $1`

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, challengeID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Challenge not found; caller treats as empty set
		}
		r.logger.Error("Failed to get challenge test cases", "challengeId", challengeID, "error", err)
		return nil, fmt.Errorf("failed to get challenge test cases: %w", err)
	}

	if len(raw) == 0 {
		return nil, nil
	}

	cases, err := domain.ParseTestCases(raw)
	if err != nil {
		r.logger.Error("Failed to parse challenge test cases", "challengeId", challengeID, "error", err)
		return nil, fmt.Errorf("failed to parse challenge test cases: %w", err)
	}

	return cases, nil
}
