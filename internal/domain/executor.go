package domain

// ExecutionRequest is one (code, language, input) triple submitted to
// the external sandbox service
type ExecutionRequest struct {
	Language       string `json:"language"`
	Code           string `json:"code"`
	Input          string `json:"input"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	MemoryLimitMb  int    `json:"memoryLimitMb"`
}

// ExecutionOutcome is the sandbox's verdict for a single run
type ExecutionOutcome struct {
	Stdout          string  `json:"stdout"`
	Stderr          string  `json:"stderr"`
	ExitCode        int     `json:"exitCode"`
	Timeout         bool    `json:"timeout"`
	MemoryExceeded  bool    `json:"memoryExceeded"`
	ExecutionTimeMs int64   `json:"executionTimeMs"`
	MemoryUsedMb    float64 `json:"memoryUsedMb"`
}
