package execution

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"gitlab.com/codequest-2025.net/internal/config"
	"gitlab.com/codequest-2025.net/internal/core/ports/primary"
	"gitlab.com/codequest-2025.net/internal/core/ports/secondary"
	"gitlab.com/codequest-2025.net/internal/domain"
)

// Dispatcher fans one submission's test cases out to the executor. The
// semaphore is process-wide and shared across every in-flight
// submission: the ceiling throttles the executor's load, not one
// submission's parallelism.
type Dispatcher struct {
	executor  secondary.ExecutorClient
	publisher secondary.ProgressPublisher
	logger    primary.Logger

	sem            *semaphore.Weighted
	timeoutSeconds int
	memoryLimitMb  int
}

// NewDispatcher creates a new test dispatcher
func NewDispatcher(
	executor secondary.ExecutorClient,
	publisher secondary.ProgressPublisher,
	logger primary.Logger,
	cfg *config.ExecutionConfig,
) *Dispatcher {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Dispatcher{
		executor:       executor,
		publisher:      publisher,
		logger:         logger,
		sem:            semaphore.NewWeighted(int64(maxConcurrency)),
		timeoutSeconds: cfg.TestTimeoutSec,
		memoryLimitMb:  cfg.MemoryLimitMb,
	}
}

// progressCounters tracks live completion counts for one dispatch. Test
// tasks run on parallel goroutines, so every update holds the mutex.
type progressCounters struct {
	mu        sync.Mutex
	completed int
	passed    int
	failed    int
}

func (c *progressCounters) record(passed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed++
	if passed {
		c.passed++
	} else {
		c.failed++
	}
}

func (c *progressCounters) snapshot(total int) domain.ExecutionProgress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ExecutionProgress{
		TotalTests:     total,
		CompletedTests: c.completed,
		PassedTests:    c.passed,
		FailedTests:    c.failed,
	}
}

// RunAll executes every test case and returns results in input order,
// regardless of completion order. A failing executor call is recorded as
// a failing result for that test case only; sibling tests are unaffected.
func (d *Dispatcher) RunAll(ctx context.Context, sub *domain.Submission, testCases []domain.TestCase, fallbackInput string) []domain.TestResult {
	results := make([]domain.TestResult, len(testCases))
	counters := &progressCounters{}

	var wg sync.WaitGroup
	for i, tc := range testCases {
		wg.Add(1)
		go func(idx int, tc domain.TestCase) {
			defer wg.Done()

			if err := d.sem.Acquire(ctx, 1); err != nil {
				results[idx] = synthesizeFailedResult(tc, fmt.Sprintf("execution cancelled: %v", err))
				counters.record(false)
				return
			}
			defer d.sem.Release(1)

			d.publishRunning(ctx, sub, counters, len(testCases), tc)
			results[idx] = d.runOne(ctx, sub, tc, fallbackInput)
			counters.record(results[idx].Passed)
		}(i, tc)
	}
	wg.Wait()

	return results
}

// publishRunning broadcasts the live counters and the test case about to
// run. A publish failure is logged; it never aborts the test task.
func (d *Dispatcher) publishRunning(ctx context.Context, sub *domain.Submission, counters *progressCounters, total int, tc domain.TestCase) {
	event := domain.ExecutionProgressEvent{
		SubmissionID: sub.ID,
		ChallengeID:  sub.ChallengeID,
		Status:       domain.SubmissionRunning,
		Progress:     counters.snapshot(total),
		CurrentTest:  &tc,
	}
	if err := d.publisher.PublishUpdate(ctx, event); err != nil {
		d.logger.Warn("Failed to publish progress update", "submissionId", sub.ID, "error", err)
	}
}

func (d *Dispatcher) runOne(ctx context.Context, sub *domain.Submission, tc domain.TestCase, fallbackInput string) domain.TestResult {
	input := tc.Input
	if input == "" {
		input = fallbackInput
	}

	outcome, err := d.executor.Execute(ctx, domain.ExecutionRequest{
		Language:       sub.Language,
		Code:           sub.Code,
		Input:          input,
		TimeoutSeconds: d.timeoutSeconds,
		MemoryLimitMb:  d.memoryLimitMb,
	})
	if err != nil {
		d.logger.Error("Executor call failed", "submissionId", sub.ID, "test", tc.Description, "error", err)
		return synthesizeFailedResult(tc, err.Error())
	}

	actual := strings.TrimSpace(outcome.Stdout)
	expected := strings.TrimSpace(tc.ExpectedOutput)

	result := domain.TestResult{
		Input:           tc.Input,
		ExpectedOutput:  tc.ExpectedOutput,
		ActualOutput:    actual,
		Passed:          actual == expected,
		Stdout:          outcome.Stdout,
		Stderr:          outcome.Stderr,
		ExitCode:        outcome.ExitCode,
		ExecutionTimeMs: outcome.ExecutionTimeMs,
		MemoryUsedMb:    outcome.MemoryUsedMb,
		Timeout:         outcome.Timeout,
		MemoryExceeded:  outcome.MemoryExceeded,
	}
	if outcome.ExitCode != 0 && !result.Passed {
		if outcome.Stderr != "" {
			result.Error = outcome.Stderr
		} else {
			result.Error = "process exited with a non-zero code"
		}
	}

	return result
}

// synthesizeFailedResult stands in for a test the executor never
// finished: empty output, exit code -1, zero timing and memory.
func synthesizeFailedResult(tc domain.TestCase, message string) domain.TestResult {
	return domain.TestResult{
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Passed:         false,
		ExitCode:       -1,
		Stderr:         message,
		Error:          message,
	}
}
