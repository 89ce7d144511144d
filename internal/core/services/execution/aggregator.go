package execution

import (
	"math"

	"gitlab.com/codequest-2025.net/internal/domain"
)

// AggregateResult folds per-test outcomes into the submission-level
// verdict, score and resource totals.
type AggregateResult struct {
	Status          domain.SubmissionStatusValue
	PassedTests     int
	FailedTests     int
	Score           int
	ExecutionTimeMs int64
	MemoryUsedMb    float64
}

// Aggregate computes the submission verdict from a result set. A mixed
// pass/fail outcome is still COMPLETED execution; FAILED means nothing
// passed. The orchestrator rejects empty test case sets before this
// stage, so the score is only defined for non-empty input.
func Aggregate(results []domain.TestResult) AggregateResult {
	agg := AggregateResult{}
	for _, r := range results {
		if r.Passed {
			agg.PassedTests++
		} else {
			agg.FailedTests++
		}
		agg.ExecutionTimeMs += r.ExecutionTimeMs
		if r.MemoryUsedMb > agg.MemoryUsedMb {
			agg.MemoryUsedMb = r.MemoryUsedMb
		}
	}

	if len(results) > 0 {
		agg.Score = int(math.Round(100 * float64(agg.PassedTests) / float64(len(results))))
	}

	agg.Status = domain.SubmissionCompleted
	if agg.PassedTests == 0 && len(results) > 0 {
		agg.Status = domain.SubmissionFailed
	}

	return agg
}
