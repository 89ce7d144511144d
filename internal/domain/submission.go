package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatusValue represents the lifecycle status of a submission
type SubmissionStatusValue string

const (
	SubmissionPending   SubmissionStatusValue = "PENDING"
	SubmissionRunning   SubmissionStatusValue = "RUNNING"
	SubmissionCompleted SubmissionStatusValue = "COMPLETED"
	SubmissionFailed    SubmissionStatusValue = "FAILED"
	// SubmissionTimeout is declared in the lifecycle contract but never
	// assigned by aggregation; per-test timeouts fold into the
	// COMPLETED/FAILED rule.
	SubmissionTimeout SubmissionStatusValue = "TIMEOUT"
)

// Submission represents one user's attempt at a challenge, tracked
// through its execution lifecycle. Only the orchestrator mutates it.
type Submission struct {
	ID              uuid.UUID
	ChallengeID     string
	AuthorID        string
	Code            string
	Language        string
	Status          SubmissionStatusValue
	Score           int
	ExecutionTimeMs int64
	MemoryUsedMb    float64
	Results         []TestResult
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSubmission creates a new pending submission
func NewSubmission(challengeID, authorID, code, language string) *Submission {
	now := time.Now()
	return &Submission{
		ID:          uuid.New(),
		ChallengeID: challengeID,
		AuthorID:    authorID,
		Code:        code,
		Language:    language,
		Status:      SubmissionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SubmissionStatus is the API-facing view of a submission's outcome,
// returned to the synchronous caller and kept in the result cache.
type SubmissionStatus struct {
	SubmissionID    uuid.UUID             `json:"submissionId"`
	Status          SubmissionStatusValue `json:"status"`
	TotalTests      int                   `json:"totalTests"`
	PassedTests     int                   `json:"passedTests"`
	FailedTests     int                   `json:"failedTests"`
	Score           int                   `json:"score"`
	ExecutionTimeMs int64                 `json:"executionTimeMs"`
	MemoryUsedMb    float64               `json:"memoryUsedMb"`
	Results         []TestResult          `json:"results"`
	ErrorMessage    string                `json:"error,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// ToStatus builds the API-facing view of the submission
func (s *Submission) ToStatus() *SubmissionStatus {
	passed := 0
	for _, r := range s.Results {
		if r.Passed {
			passed++
		}
	}
	return &SubmissionStatus{
		SubmissionID:    s.ID,
		Status:          s.Status,
		TotalTests:      len(s.Results),
		PassedTests:     passed,
		FailedTests:     len(s.Results) - passed,
		Score:           s.Score,
		ExecutionTimeMs: s.ExecutionTimeMs,
		MemoryUsedMb:    s.MemoryUsedMb,
		Results:         s.Results,
		ErrorMessage:    s.ErrorMessage,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// RunRequest carries one inbound execution request from the web layer
type RunRequest struct {
	ChallengeID string
	AuthorID    string
	Code        string
	Language    string
	Stdin       string
}
