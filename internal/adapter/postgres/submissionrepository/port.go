// package submissionrepository contains the PostgreSQL submission repository
package submissionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codequest-2025.net/internal/core/ports/primary"
	"gitlab.com/codequest-2025.net/internal/domain"
)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSubmission inserts or updates a submission. Results are stored as
// a JSON column next to the aggregate fields.
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, sub *domain.Submission) error {
	resultsJSON, err := json.Marshal(sub.Results)
	if err != nil {
		r.logger.Error("Failed to marshal submission results", "error", err)
		return fmt.Errorf("failed to marshal submission results: %w", err)
	}

	query := `
		INSERT INTO submissions (
			id, challenge_id, author_id, code, language, status, score,
			execution_time_ms, memory_used_mb, results, error_message,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			score = EXCLUDED.score,
			execution_time_ms = EXCLUDED.execution_time_ms,
			memory_used_mb = EXCLUDED.memory_used_mb,
			results = EXCLUDED.results,
			error_message = EXCLUDED.error_message,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		sub.ID,
		sub.ChallengeID,
		sub.AuthorID,
		sub.Code,
		sub.Language,
		sub.Status,
		sub.Score,
		sub.ExecutionTimeMs,
		sub.MemoryUsedMb,
		resultsJSON,
		sub.ErrorMessage,
		sub.CreatedAt,
		sub.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save submission", "submissionId", sub.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// GetSubmission retrieves a submission from PostgreSQL by ID
func (r *SubmissionRepository) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT id, challenge_id, author_id, code, language, status, score,
			execution_time_ms, memory_used_mb, results, error_message,
			created_at, updated_at
		FROM submissions
		WHERE id = $1
	`

	var sub domain.Submission
	var resultsJSON []byte
	var errorMessage sql.NullString

	row := r.db.QueryRowContext(ctx, query, submissionID)
	err := row.Scan(
		&sub.ID,
		&sub.ChallengeID,
		&sub.AuthorID,
		&sub.Code,
		&sub.Language,
		&sub.Status,
		&sub.Score,
		&sub.ExecutionTimeMs,
		&sub.MemoryUsedMb,
		&resultsJSON,
		&errorMessage,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		r.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &sub.Results); err != nil {
			r.logger.Error("Failed to unmarshal submission results", "submissionId", submissionID, "error", err)
			return nil, fmt.Errorf("failed to unmarshal submission results: %w", err)
		}
	}
	if errorMessage.Valid {
		sub.ErrorMessage = errorMessage.String
	}

	return &sub, nil
}
