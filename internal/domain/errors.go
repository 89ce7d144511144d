package domain

import "errors"

var (
	// ErrExecutionInProgress rejects a duplicate run request while the
	// execution lock for the submission is still held. Non-fatal: the
	// original submission's status is left untouched.
	ErrExecutionInProgress = errors.New("execution already in progress for this submission")

	// ErrNoTestCases marks the precondition failure of a challenge with
	// an empty test case set. Fatal to the submission.
	ErrNoTestCases = errors.New("no test cases found for challenge")

	// ErrSubmissionNotFound is returned by status lookups for unknown ids.
	ErrSubmissionNotFound = errors.New("submission not found")
)
