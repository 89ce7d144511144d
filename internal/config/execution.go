package config

import "time"

// ExecutionConfig bounds the execution engine. MaxConcurrency throttles
// the external executor's load and is shared across every submission the
// process handles, not per submission.
type ExecutionConfig struct {
	MaxConcurrency int
	LockTTL        time.Duration
	ResultCacheTTL time.Duration
	TestTimeoutSec int
	MemoryLimitMb  int
}

func NewExecutionConfig() *ExecutionConfig {
	return &ExecutionConfig{
		MaxConcurrency: getIntEnv("EXECUTION_MAX_CONCURRENCY", 5),
		LockTTL:        time.Duration(getIntEnv("EXECUTION_LOCK_TTL_SEC", 300)) * time.Second,
		ResultCacheTTL: time.Duration(getIntEnv("RESULT_CACHE_TTL_SEC", 3600)) * time.Second,
		TestTimeoutSec: getIntEnv("TEST_TIMEOUT_SEC", 10),
		MemoryLimitMb:  getIntEnv("TEST_MEMORY_LIMIT_MB", 256),
	}
}
