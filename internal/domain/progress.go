package domain

import "github.com/google/uuid"

// ExecutionProgress is the live test counter tuple for one submission
type ExecutionProgress struct {
	TotalTests     int `json:"totalTests"`
	CompletedTests int `json:"completedTests"`
	PassedTests    int `json:"passedTests"`
	FailedTests    int `json:"failedTests"`
}

// ExecutionProgressEvent is broadcast while a submission executes.
// Purely informational; never persisted by this subsystem.
type ExecutionProgressEvent struct {
	SubmissionID uuid.UUID             `json:"submissionId"`
	ChallengeID  string                `json:"challengeId"`
	Status       SubmissionStatusValue `json:"status"`
	Progress     ExecutionProgress     `json:"progress"`
	CurrentTest  *TestCase             `json:"currentTest,omitempty"`
	Error        string                `json:"error,omitempty"`
}
