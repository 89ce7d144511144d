package execution_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeExecutor struct {
	mu       sync.Mutex
	requests []domain.ExecutionRequest
	respond  func(req domain.ExecutionRequest) (*domain.ExecutionOutcome, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.respond(req)
}

func (f *fakeExecutor) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeExecutor) recordedRequests() []domain.ExecutionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ExecutionRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// echoExecutor answers every request with its input as stdout.
func echoExecutor() *fakeExecutor {
	return &fakeExecutor{
		respond: func(req domain.ExecutionRequest) (*domain.ExecutionOutcome, error) {
			return &domain.ExecutionOutcome{Stdout: req.Input}, nil
		},
	}
}

type fakePublisher struct {
	mu        sync.Mutex
	updates   []domain.ExecutionProgressEvent
	completes []domain.SubmissionStatus
	errs      []string
	failWith  error
}

func (f *fakePublisher) PublishUpdate(ctx context.Context, event domain.ExecutionProgressEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.updates = append(f.updates, event)
	return nil
}

func (f *fakePublisher) PublishComplete(ctx context.Context, submissionID uuid.UUID, result domain.SubmissionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.completes = append(f.completes, result)
	return nil
}

func (f *fakePublisher) PublishError(ctx context.Context, submissionID uuid.UUID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.errs = append(f.errs, message)
	return nil
}

func (f *fakePublisher) updateEvents() []domain.ExecutionProgressEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ExecutionProgressEvent, len(f.updates))
	copy(out, f.updates)
	return out
}

type fakeLockManager struct {
	mu       sync.Mutex
	held     map[uuid.UUID]bool
	acquires int
	releases int
	failWith error
}

func newFakeLockManager() *fakeLockManager {
	return &fakeLockManager{held: map[uuid.UUID]bool{}}
}

func (f *fakeLockManager) Acquire(ctx context.Context, submissionID uuid.UUID, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	if f.held[submissionID] {
		return false, nil
	}
	f.held[submissionID] = true
	f.acquires++
	return true, nil
}

func (f *fakeLockManager) Release(ctx context.Context, submissionID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, submissionID)
	f.releases++
}

type fakeSubmissionRepo struct {
	mu       sync.Mutex
	subs     map[uuid.UUID]domain.Submission
	statuses []domain.SubmissionStatusValue
	saves    int
	failOn   int // fail the nth save, 1-indexed; 0 disables
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: map[uuid.UUID]domain.Submission{}}
}

func (f *fakeSubmissionRepo) SaveSubmission(ctx context.Context, sub *domain.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.failOn != 0 && f.saves == f.failOn {
		return fmt.Errorf("save failed")
	}
	f.subs[sub.ID] = *sub
	f.statuses = append(f.statuses, sub.Status)
	return nil
}

func (f *fakeSubmissionRepo) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[submissionID]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (f *fakeSubmissionRepo) lastStatus() domain.SubmissionStatusValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.statuses) == 0 {
		return ""
	}
	return f.statuses[len(f.statuses)-1]
}

type fakeChallengeRepo struct {
	cases []domain.TestCase
	err   error
}

func (f *fakeChallengeRepo) GetTestCases(ctx context.Context, challengeID string) ([]domain.TestCase, error) {
	return f.cases, f.err
}

type fakeResultCache struct {
	mu     sync.Mutex
	store  map[uuid.UUID]domain.SubmissionStatus
	sets   int
	getErr error
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{store: map[uuid.UUID]domain.SubmissionStatus{}}
}

func (f *fakeResultCache) Set(ctx context.Context, status domain.SubmissionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[status.SubmissionID] = status
	f.sets++
	return nil
}

func (f *fakeResultCache) Get(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	status, ok := f.store[submissionID]
	if !ok {
		return nil, nil
	}
	return &status, nil
}
