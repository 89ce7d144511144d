package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/config"
	"gitlab.com/codequest-2025.net/internal/core/ports/primary"
	"gitlab.com/codequest-2025.net/internal/core/ports/secondary"
	"gitlab.com/codequest-2025.net/internal/domain"
)

var _ IExecutionService = (*ExecutionService)(nil)

// ExecutionService implements the execution orchestrator: it sequences
// create, lock, run, aggregate, publish, persist and unlock, with
// compensating actions on every failure path.
type ExecutionService struct {
	submissions secondary.SubmissionRepository
	challenges  secondary.ChallengeRepository
	locks       secondary.LockManager
	publisher   secondary.ProgressPublisher
	cache       secondary.ResultCache
	dispatcher  *Dispatcher
	logger      primary.Logger
	lockTTL     time.Duration
}

// NewExecutionService creates a new execution orchestration service
func NewExecutionService(
	submissions secondary.SubmissionRepository,
	challenges secondary.ChallengeRepository,
	locks secondary.LockManager,
	publisher secondary.ProgressPublisher,
	cache secondary.ResultCache,
	dispatcher *Dispatcher,
	logger primary.Logger,
	cfg *config.ExecutionConfig,
) *ExecutionService {
	return &ExecutionService{
		submissions: submissions,
		challenges:  challenges,
		locks:       locks,
		publisher:   publisher,
		cache:       cache,
		dispatcher:  dispatcher,
		logger:      logger,
		lockTTL:     cfg.LockTTL,
	}
}

// Run creates the pending submission record and executes it
func (s *ExecutionService) Run(ctx context.Context, req domain.RunRequest) (*domain.SubmissionStatus, error) {
	sub := domain.NewSubmission(req.ChallengeID, req.AuthorID, req.Code, req.Language)

	s.logger.Info("Starting submission execution",
		"submissionId", sub.ID,
		"challengeId", req.ChallengeID,
		"language", req.Language)

	if err := s.submissions.SaveSubmission(ctx, sub); err != nil {
		s.logger.Error("Failed to create submission", "challengeId", req.ChallengeID, "error", err)
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return s.Execute(ctx, sub, req.Stdin)
}

// Execute drives the state machine for one submission. The lock is
// released on every exit path; a duplicate request leaves the original
// submission's status untouched.
func (s *ExecutionService) Execute(ctx context.Context, sub *domain.Submission, stdin string) (*domain.SubmissionStatus, error) {
	acquired, err := s.locks.Acquire(ctx, sub.ID, s.lockTTL)
	if err != nil || !acquired {
		s.logger.Warn("Execution lock not acquired", "submissionId", sub.ID, "error", err)
		return nil, domain.ErrExecutionInProgress
	}
	defer s.locks.Release(ctx, sub.ID)

	status, err := s.execute(ctx, sub, stdin)
	if err != nil {
		s.fail(ctx, sub, err)
		return nil, err
	}

	return status, nil
}

func (s *ExecutionService) execute(ctx context.Context, sub *domain.Submission, stdin string) (*domain.SubmissionStatus, error) {
	sub.Status = domain.SubmissionRunning
	sub.UpdatedAt = time.Now()
	if err := s.submissions.SaveSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to mark submission running: %w", err)
	}

	testCases, err := s.challenges.GetTestCases(ctx, sub.ChallengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load test cases: %w", err)
	}
	if len(testCases) == 0 {
		return nil, domain.ErrNoTestCases
	}

	s.publishUpdate(ctx, sub, domain.ExecutionProgress{TotalTests: len(testCases)}, "")

	results := s.dispatcher.RunAll(ctx, sub, testCases, stdin)
	agg := Aggregate(results)

	sub.Status = agg.Status
	sub.Score = agg.Score
	sub.ExecutionTimeMs = agg.ExecutionTimeMs
	sub.MemoryUsedMb = agg.MemoryUsedMb
	sub.Results = results
	sub.UpdatedAt = time.Now()
	if err := s.submissions.SaveSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to persist submission result: %w", err)
	}

	status := sub.ToStatus()

	// Final update and completion are the last events published for the
	// submission; both are best effort.
	s.publishUpdate(ctx, sub, domain.ExecutionProgress{
		TotalTests:     len(results),
		CompletedTests: len(results),
		PassedTests:    agg.PassedTests,
		FailedTests:    agg.FailedTests,
	}, "")
	if err := s.publisher.PublishComplete(ctx, sub.ID, *status); err != nil {
		s.logger.Warn("Failed to publish completion event", "submissionId", sub.ID, "error", err)
	}
	if err := s.cache.Set(ctx, *status); err != nil {
		s.logger.Warn("Failed to cache submission result", "submissionId", sub.ID, "error", err)
	}

	s.logger.Info("Submission execution finished",
		"submissionId", sub.ID,
		"status", sub.Status,
		"score", sub.Score)

	return status, nil
}

// fail records the compensating FAILED state and broadcasts the error.
// Persist and publish are best effort here; the primary error wins.
func (s *ExecutionService) fail(ctx context.Context, sub *domain.Submission, cause error) {
	s.logger.Error("Submission execution failed", "submissionId", sub.ID, "error", cause)

	sub.Status = domain.SubmissionFailed
	sub.ErrorMessage = cause.Error()
	sub.UpdatedAt = time.Now()
	if err := s.submissions.SaveSubmission(ctx, sub); err != nil {
		s.logger.Error("Failed to persist failed submission", "submissionId", sub.ID, "error", err)
	}

	s.publishUpdate(ctx, sub, domain.ExecutionProgress{}, cause.Error())
	if err := s.publisher.PublishError(ctx, sub.ID, cause.Error()); err != nil {
		s.logger.Warn("Failed to publish error event", "submissionId", sub.ID, "error", err)
	}
}

func (s *ExecutionService) publishUpdate(ctx context.Context, sub *domain.Submission, progress domain.ExecutionProgress, errMsg string) {
	event := domain.ExecutionProgressEvent{
		SubmissionID: sub.ID,
		ChallengeID:  sub.ChallengeID,
		Status:       sub.Status,
		Progress:     progress,
		Error:        errMsg,
	}
	if err := s.publisher.PublishUpdate(ctx, event); err != nil {
		s.logger.Warn("Failed to publish progress update", "submissionId", sub.ID, "error", err)
	}
}

// GetStatus returns a submission's result, trying the cache before the
// repository. A cache failure degrades to a repository read.
func (s *ExecutionService) GetStatus(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionStatus, error) {
	cached, err := s.cache.Get(ctx, submissionID)
	if err != nil {
		s.logger.Warn("Result cache lookup failed", "submissionId", submissionID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	sub, err := s.submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrSubmissionNotFound
	}

	return sub.ToStatus(), nil
}
