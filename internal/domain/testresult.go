package domain

// TestResult records the outcome of one test case execution. Created
// once per test case, immutable after creation. Passed is exact string
// equality of trimmed actual vs. trimmed expected output.
type TestResult struct {
	Input           string  `json:"input"`
	ExpectedOutput  string  `json:"expected_output"`
	ActualOutput    string  `json:"actual_output"`
	Passed          bool    `json:"passed"`
	Stdout          string  `json:"stdout"`
	Stderr          string  `json:"stderr"`
	ExitCode        int     `json:"exit_code"`
	ExecutionTimeMs int64   `json:"execution_time_ms"`
	MemoryUsedMb    float64 `json:"memory_used_mb"`
	Timeout         bool    `json:"timeout"`
	MemoryExceeded  bool    `json:"memory_exceeded"`
	Error           string  `json:"error,omitempty"`
}
